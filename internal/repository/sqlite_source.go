package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/openparcel/parcelkit/internal/db"
	"github.com/openparcel/parcelkit/internal/hierarchy"
)

// SQLiteSourceRepo stores raw upstream payload rows. Pass a transaction's
// DBTX to make a Replace atomic with its surrounding work.
type SQLiteSourceRepo struct {
	db db.DBTX
}

func NewSQLiteSourceRepo(dbtx db.DBTX) *SQLiteSourceRepo {
	return &SQLiteSourceRepo{db: dbtx}
}

func (r *SQLiteSourceRepo) ReplaceContainers(ctx context.Context, projectID string, nodes []hierarchy.ContainerNode) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM container_nodes WHERE project_id = ?`, projectID); err != nil {
		return fmt.Errorf("clearing container nodes: %w", err)
	}
	query := `INSERT INTO container_nodes (project_id, division_id, level, display_name, sort_order, parent_id, attributes)
		VALUES (?, ?, ?, ?, ?, ?, ?)`
	for _, n := range nodes {
		attrs, err := json.Marshal(n.Attributes)
		if err != nil {
			return fmt.Errorf("encoding attributes for %q: %w", n.DivisionID, err)
		}
		if _, err := r.db.ExecContext(ctx, query,
			projectID, n.DivisionID, n.Level, n.DisplayName, n.SortOrder, n.ParentID, string(attrs),
		); err != nil {
			return fmt.Errorf("inserting container node %q: %w", n.DivisionID, err)
		}
	}
	return nil
}

func (r *SQLiteSourceRepo) ReplaceLegacy(ctx context.Context, projectID string, phases []hierarchy.LegacyPhaseRow, parcels []hierarchy.LegacyParcelRow) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM legacy_phases WHERE project_id = ?`, projectID); err != nil {
		return fmt.Errorf("clearing legacy phases: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, `DELETE FROM legacy_parcels WHERE project_id = ?`, projectID); err != nil {
		return fmt.Errorf("clearing legacy parcels: %w", err)
	}

	phaseQuery := `INSERT INTO legacy_phases (project_id, phase_id, area_id, area_no, phase_no, phase_name, description)
		VALUES (?, ?, ?, ?, ?, ?, ?)`
	for _, p := range phases {
		if _, err := r.db.ExecContext(ctx, phaseQuery,
			projectID, p.PhaseID, p.AreaID, finiteOrNull(p.AreaNo), finiteOrNull(p.PhaseNo), p.PhaseName, p.Description,
		); err != nil {
			return fmt.Errorf("inserting legacy phase %q: %w", p.PhaseID, err)
		}
	}

	parcelQuery := `INSERT INTO legacy_parcels (project_id, parcel_id, area_no, phase_no, phase_name, parcel_name,
		usecode, acres, units, frontfeet, lot_width, building_sf, product, family_name, type_code, product_code, efficiency)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	for _, p := range parcels {
		if _, err := r.db.ExecContext(ctx, parcelQuery,
			projectID, p.ParcelID, finiteOrNull(p.AreaNo), finiteOrNull(p.PhaseNo), p.PhaseName, p.ParcelName,
			p.UseCode,
			nullableFloatToValue(p.Acres),
			nullableFloatToValue(p.Units),
			nullableFloatToValue(p.FrontFeet),
			nullableFloatToValue(p.LotWidth),
			nullableFloatToValue(p.BuildingSF),
			p.Product, p.FamilyName, p.TypeCode, p.ProductCode,
			nullableFloatToValue(p.Efficiency),
		); err != nil {
			return fmt.Errorf("inserting legacy parcel %q: %w", p.ParcelID, err)
		}
	}
	return nil
}

func (r *SQLiteSourceRepo) ReplaceAreaNames(ctx context.Context, projectID string, names map[int]string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM area_names WHERE project_id = ?`, projectID); err != nil {
		return fmt.Errorf("clearing area names: %w", err)
	}
	for areaNo, name := range names {
		if _, err := r.db.ExecContext(ctx,
			`INSERT INTO area_names (project_id, area_no, name) VALUES (?, ?, ?)`,
			projectID, areaNo, name,
		); err != nil {
			return fmt.Errorf("inserting area name %d: %w", areaNo, err)
		}
	}
	return nil
}

// LoadSourceSet reloads a project's raw rows exactly as stored. NULL numeric
// columns come back as NaN so the builder applies its own malformed-row
// policy instead of the store inventing defaults.
func (r *SQLiteSourceRepo) LoadSourceSet(ctx context.Context, projectID string) (*hierarchy.SourceSet, error) {
	src := &hierarchy.SourceSet{AreaNames: make(map[int]string)}

	rows, err := r.db.QueryContext(ctx,
		`SELECT division_id, level, display_name, sort_order, parent_id, attributes
		 FROM container_nodes WHERE project_id = ? ORDER BY level, sort_order, division_id`, projectID)
	if err != nil {
		return nil, fmt.Errorf("loading container nodes: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var n hierarchy.ContainerNode
		var parentID sql.NullString
		var attrs string
		if err := rows.Scan(&n.DivisionID, &n.Level, &n.DisplayName, &n.SortOrder, &parentID, &attrs); err != nil {
			return nil, fmt.Errorf("scanning container node: %w", err)
		}
		n.ParentID = parentID.String
		if err := json.Unmarshal([]byte(attrs), &n.Attributes); err != nil {
			n.Attributes = nil // unreadable attributes degrade to defaults
		}
		src.Containers = append(src.Containers, n)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	phaseRows, err := r.db.QueryContext(ctx,
		`SELECT phase_id, area_id, area_no, phase_no, phase_name, description
		 FROM legacy_phases WHERE project_id = ?`, projectID)
	if err != nil {
		return nil, fmt.Errorf("loading legacy phases: %w", err)
	}
	defer phaseRows.Close()
	for phaseRows.Next() {
		var p hierarchy.LegacyPhaseRow
		var areaNo, phaseNo sql.NullFloat64
		if err := phaseRows.Scan(&p.PhaseID, &p.AreaID, &areaNo, &phaseNo, &p.PhaseName, &p.Description); err != nil {
			return nil, fmt.Errorf("scanning legacy phase: %w", err)
		}
		p.AreaNo = floatOrNaN(areaNo)
		p.PhaseNo = floatOrNaN(phaseNo)
		src.LegacyPhases = append(src.LegacyPhases, p)
	}
	if err := phaseRows.Err(); err != nil {
		return nil, err
	}

	parcelRows, err := r.db.QueryContext(ctx,
		`SELECT parcel_id, area_no, phase_no, phase_name, parcel_name, usecode,
			acres, units, frontfeet, lot_width, building_sf,
			product, family_name, type_code, product_code, efficiency
		 FROM legacy_parcels WHERE project_id = ?`, projectID)
	if err != nil {
		return nil, fmt.Errorf("loading legacy parcels: %w", err)
	}
	defer parcelRows.Close()
	for parcelRows.Next() {
		var p hierarchy.LegacyParcelRow
		var areaNo, phaseNo, acres, units, frontfeet, lotWidth, buildingSF, efficiency sql.NullFloat64
		if err := parcelRows.Scan(&p.ParcelID, &areaNo, &phaseNo, &p.PhaseName, &p.ParcelName, &p.UseCode,
			&acres, &units, &frontfeet, &lotWidth, &buildingSF,
			&p.Product, &p.FamilyName, &p.TypeCode, &p.ProductCode, &efficiency); err != nil {
			return nil, fmt.Errorf("scanning legacy parcel: %w", err)
		}
		p.AreaNo = floatOrNaN(areaNo)
		p.PhaseNo = floatOrNaN(phaseNo)
		p.Acres = floatFromNull(acres)
		p.Units = floatFromNull(units)
		p.FrontFeet = floatFromNull(frontfeet)
		p.LotWidth = floatFromNull(lotWidth)
		p.BuildingSF = floatFromNull(buildingSF)
		p.Efficiency = floatFromNull(efficiency)
		src.LegacyParcels = append(src.LegacyParcels, p)
	}
	if err := parcelRows.Err(); err != nil {
		return nil, err
	}

	nameRows, err := r.db.QueryContext(ctx,
		`SELECT area_no, name FROM area_names WHERE project_id = ?`, projectID)
	if err != nil {
		return nil, fmt.Errorf("loading area names: %w", err)
	}
	defer nameRows.Close()
	for nameRows.Next() {
		var areaNo int
		var name string
		if err := nameRows.Scan(&areaNo, &name); err != nil {
			return nil, fmt.Errorf("scanning area name: %w", err)
		}
		src.AreaNames[areaNo] = name
	}
	return src, nameRows.Err()
}

func (r *SQLiteSourceRepo) UpdateLegacyParcel(ctx context.Context, projectID, parcelID string, upd ParcelUpdate) error {
	set := ""
	var args []any
	appendSet := func(col string, val any) {
		if set != "" {
			set += ", "
		}
		set += col + " = ?"
		args = append(args, val)
	}

	if upd.Acres != nil {
		appendSet("acres", *upd.Acres)
	}
	if upd.Units != nil {
		appendSet("units", *upd.Units)
	}
	if upd.FrontFeet != nil {
		appendSet("frontfeet", *upd.FrontFeet)
	}
	if upd.LotWidth != nil {
		appendSet("lot_width", *upd.LotWidth)
	}
	if upd.BuildingSF != nil {
		appendSet("building_sf", *upd.BuildingSF)
	}
	if upd.Efficiency != nil {
		appendSet("efficiency", *upd.Efficiency)
	}
	if upd.FamilyName != nil {
		appendSet("family_name", *upd.FamilyName)
	}
	if upd.TypeCode != nil {
		appendSet("type_code", *upd.TypeCode)
	}
	if upd.ProductCode != nil {
		appendSet("product_code", *upd.ProductCode)
	}
	if set == "" {
		return nil
	}

	args = append(args, projectID, parcelID)
	res, err := r.db.ExecContext(ctx,
		`UPDATE legacy_parcels SET `+set+` WHERE project_id = ? AND parcel_id = ?`, args...)
	if err != nil {
		return fmt.Errorf("updating legacy parcel %q: %w", parcelID, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// UpdateContainerParcel merges field changes into a container node's
// attributes JSON under the canonical attribute keys.
func (r *SQLiteSourceRepo) UpdateContainerParcel(ctx context.Context, projectID, divisionID string, upd ParcelUpdate) error {
	var attrsJSON string
	err := r.db.QueryRowContext(ctx,
		`SELECT attributes FROM container_nodes WHERE project_id = ? AND division_id = ?`,
		projectID, divisionID).Scan(&attrsJSON)
	if err == sql.ErrNoRows {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("loading container attributes: %w", err)
	}

	attrs := make(map[string]any)
	if err := json.Unmarshal([]byte(attrsJSON), &attrs); err != nil {
		attrs = make(map[string]any)
	}

	setFloat := func(key string, v *float64) {
		if v != nil {
			attrs[key] = *v
		}
	}
	setString := func(key string, v *string) {
		if v != nil {
			attrs[key] = *v
		}
	}
	setFloat("acres", upd.Acres)
	setFloat("units", upd.Units)
	setFloat("frontfeet", upd.FrontFeet)
	setFloat("lot_width", upd.LotWidth)
	setFloat("building_sf", upd.BuildingSF)
	setFloat("efficiency", upd.Efficiency)
	setString("family_name", upd.FamilyName)
	setString("type_code", upd.TypeCode)
	setString("product_code", upd.ProductCode)

	encoded, err := json.Marshal(attrs)
	if err != nil {
		return fmt.Errorf("encoding container attributes: %w", err)
	}
	_, err = r.db.ExecContext(ctx,
		`UPDATE container_nodes SET attributes = ? WHERE project_id = ? AND division_id = ?`,
		string(encoded), projectID, divisionID)
	if err != nil {
		return fmt.Errorf("updating container attributes: %w", err)
	}
	return nil
}

// finiteOrNull stores a raw legacy number, mapping non-storable NaN to NULL.
func finiteOrNull(f float64) any {
	v := f
	return nullableFloatToValue(&v)
}
