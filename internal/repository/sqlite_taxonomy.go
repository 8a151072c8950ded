package repository

import (
	"context"
	"fmt"

	"github.com/openparcel/parcelkit/internal/db"
	"github.com/openparcel/parcelkit/internal/domain"
	"github.com/openparcel/parcelkit/internal/taxonomy"
)

// SQLiteTaxonomyRepo is the local taxonomy store. It doubles as the
// taxonomy.Source the cache fetches from, so a taxonomy import followed by
// Cache.Invalidate is all it takes to refresh resolutions.
type SQLiteTaxonomyRepo struct {
	db db.DBTX
}

func NewSQLiteTaxonomyRepo(dbtx db.DBTX) *SQLiteTaxonomyRepo {
	return &SQLiteTaxonomyRepo{db: dbtx}
}

func (r *SQLiteTaxonomyRepo) FetchFamilies(ctx context.Context) ([]taxonomy.FamilyRecord, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, code, name FROM families ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("fetching families: %w", err)
	}
	defer rows.Close()

	var records []taxonomy.FamilyRecord
	for rows.Next() {
		var rec taxonomy.FamilyRecord
		if err := rows.Scan(&rec.FamilyID, &rec.Code, &rec.Name); err != nil {
			return nil, fmt.Errorf("scanning family: %w", err)
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

func (r *SQLiteTaxonomyRepo) FetchTypes(ctx context.Context, familyID string) ([]taxonomy.TypeRecord, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, family_id, code, name FROM land_use_types WHERE family_id = ? ORDER BY name`, familyID)
	if err != nil {
		return nil, fmt.Errorf("fetching types: %w", err)
	}
	defer rows.Close()

	var records []taxonomy.TypeRecord
	for rows.Next() {
		var rec taxonomy.TypeRecord
		if err := rows.Scan(&rec.TypeID, &rec.FamilyID, &rec.Code, &rec.Name); err != nil {
			return nil, fmt.Errorf("scanning type: %w", err)
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

func (r *SQLiteTaxonomyRepo) FetchProducts(ctx context.Context, typeID string) ([]taxonomy.ProductRecord, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, type_id, code, name FROM products WHERE type_id = ? ORDER BY name`, typeID)
	if err != nil {
		return nil, fmt.Errorf("fetching products: %w", err)
	}
	defer rows.Close()

	var records []taxonomy.ProductRecord
	for rows.Next() {
		var rec taxonomy.ProductRecord
		if err := rows.Scan(&rec.ProductID, &rec.TypeID, &rec.Code, &rec.Name); err != nil {
			return nil, fmt.Errorf("scanning product: %w", err)
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

// ReplaceAll swaps the stored taxonomy for the file's contents. Records
// without a resolvable id are dropped here since they can never match; blank
// names are kept and left to the cache's normalization policy.
func (r *SQLiteTaxonomyRepo) ReplaceAll(ctx context.Context, file *taxonomy.File) error {
	for _, table := range []string{"products", "land_use_types", "families"} {
		if _, err := r.db.ExecContext(ctx, `DELETE FROM `+table); err != nil {
			return fmt.Errorf("clearing %s: %w", table, err)
		}
	}

	familyIDs := make(map[string]bool)
	for _, f := range file.Families {
		id := domain.CoalesceStr(f.FamilyID, f.ID)
		if id == "" {
			continue
		}
		if _, err := r.db.ExecContext(ctx,
			`INSERT OR IGNORE INTO families (id, code, name) VALUES (?, ?, ?)`,
			id, f.Code, f.Name,
		); err != nil {
			return fmt.Errorf("inserting family %q: %w", id, err)
		}
		familyIDs[id] = true
	}

	typeIDs := make(map[string]bool)
	for _, t := range file.Types {
		id := domain.CoalesceStr(t.TypeID, t.SubtypeID, t.ID)
		if id == "" || !familyIDs[t.FamilyID] {
			continue
		}
		if _, err := r.db.ExecContext(ctx,
			`INSERT OR IGNORE INTO land_use_types (id, family_id, code, name) VALUES (?, ?, ?, ?)`,
			id, t.FamilyID, t.Code, t.Name,
		); err != nil {
			return fmt.Errorf("inserting type %q: %w", id, err)
		}
		typeIDs[id] = true
	}

	for _, p := range file.Products {
		id := domain.CoalesceStr(p.ProductID, p.ID)
		if id == "" || !typeIDs[p.TypeID] {
			continue
		}
		if _, err := r.db.ExecContext(ctx,
			`INSERT OR IGNORE INTO products (id, type_id, code, name) VALUES (?, ?, ?, ?)`,
			id, p.TypeID, p.Code, p.Name,
		); err != nil {
			return fmt.Errorf("inserting product %q: %w", id, err)
		}
	}
	return nil
}

func (r *SQLiteTaxonomyRepo) CountRecords(ctx context.Context) (families, types, products int, err error) {
	if err = r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM families`).Scan(&families); err != nil {
		return 0, 0, 0, fmt.Errorf("counting families: %w", err)
	}
	if err = r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM land_use_types`).Scan(&types); err != nil {
		return 0, 0, 0, fmt.Errorf("counting types: %w", err)
	}
	if err = r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM products`).Scan(&products); err != nil {
		return 0, 0, 0, fmt.Errorf("counting products: %w", err)
	}
	return families, types, products, nil
}
