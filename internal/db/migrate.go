package db

import (
	"database/sql"
	"fmt"
)

// Migrate runs all schema migrations. Statements are idempotent so the full
// list re-runs safely on every open.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS projects (
		id           TEXT PRIMARY KEY,
		short_id     TEXT NOT NULL UNIQUE,
		name         TEXT NOT NULL,
		efficiency   REAL NOT NULL DEFAULT 0,
		level1_label TEXT NOT NULL DEFAULT '',
		created_at   TEXT NOT NULL,
		updated_at   TEXT NOT NULL
	)`,

	// Newer unified representation: one row per container node. Parcel
	// numerics and codes ride in the attributes JSON blob, mirroring the
	// upstream payload shape.
	`CREATE TABLE IF NOT EXISTS container_nodes (
		project_id   TEXT NOT NULL REFERENCES projects(id) ON DELETE CASCADE,
		division_id  TEXT NOT NULL,
		level        INTEGER NOT NULL,
		display_name TEXT NOT NULL,
		sort_order   INTEGER NOT NULL DEFAULT 0,
		parent_id    TEXT,
		attributes   TEXT NOT NULL DEFAULT '{}',
		PRIMARY KEY (project_id, division_id)
	)`,

	`CREATE INDEX IF NOT EXISTS idx_container_nodes_parent ON container_nodes(project_id, parent_id)`,

	// Older flat representation. Area/phase numbers stay REAL on purpose:
	// the builder, not the store, decides what a malformed number means.
	`CREATE TABLE IF NOT EXISTS legacy_phases (
		project_id  TEXT NOT NULL REFERENCES projects(id) ON DELETE CASCADE,
		phase_id    TEXT NOT NULL,
		area_id     TEXT NOT NULL DEFAULT '',
		area_no     REAL,
		phase_no    REAL,
		phase_name  TEXT NOT NULL DEFAULT '',
		description TEXT NOT NULL DEFAULT '',
		PRIMARY KEY (project_id, phase_id)
	)`,

	`CREATE TABLE IF NOT EXISTS legacy_parcels (
		project_id   TEXT NOT NULL REFERENCES projects(id) ON DELETE CASCADE,
		parcel_id    TEXT NOT NULL,
		area_no      REAL,
		phase_no     REAL,
		phase_name   TEXT NOT NULL DEFAULT '',
		parcel_name  TEXT NOT NULL DEFAULT '',
		usecode      TEXT NOT NULL DEFAULT '',
		acres        REAL,
		units        REAL,
		frontfeet    REAL,
		lot_width    REAL,
		building_sf  REAL,
		product      TEXT NOT NULL DEFAULT '',
		family_name  TEXT NOT NULL DEFAULT '',
		type_code    TEXT NOT NULL DEFAULT '',
		product_code TEXT NOT NULL DEFAULT '',
		efficiency   REAL,
		PRIMARY KEY (project_id, parcel_id)
	)`,

	`CREATE INDEX IF NOT EXISTS idx_legacy_parcels_phase ON legacy_parcels(project_id, area_no, phase_no)`,

	`CREATE TABLE IF NOT EXISTS area_names (
		project_id TEXT NOT NULL REFERENCES projects(id) ON DELETE CASCADE,
		area_no    INTEGER NOT NULL,
		name       TEXT NOT NULL,
		PRIMARY KEY (project_id, area_no)
	)`,

	`CREATE TABLE IF NOT EXISTS families (
		id   TEXT PRIMARY KEY,
		code TEXT NOT NULL DEFAULT '',
		name TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS land_use_types (
		id        TEXT PRIMARY KEY,
		family_id TEXT NOT NULL REFERENCES families(id) ON DELETE CASCADE,
		code      TEXT NOT NULL DEFAULT '',
		name      TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_land_use_types_family ON land_use_types(family_id)`,

	`CREATE TABLE IF NOT EXISTS products (
		id      TEXT PRIMARY KEY,
		type_id TEXT NOT NULL REFERENCES land_use_types(id) ON DELETE CASCADE,
		code    TEXT NOT NULL DEFAULT '',
		name    TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_products_type ON products(type_id)`,
}
