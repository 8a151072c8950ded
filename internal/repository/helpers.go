package repository

import (
	"database/sql"
	"math"
)

// nullableFloatToValue converts a *float64 to a value suitable for SQLite
// storage. Nil becomes SQL NULL; NaN is also stored as NULL since SQLite has
// no NaN representation.
func nullableFloatToValue(v *float64) any {
	if v == nil || math.IsNaN(*v) {
		return nil
	}
	return *v
}

// floatFromNull maps SQL NULL back to an absent *float64.
func floatFromNull(v sql.NullFloat64) *float64 {
	if !v.Valid {
		return nil
	}
	f := v.Float64
	return &f
}

// floatOrNaN maps SQL NULL to NaN for fields where the builder wants to see
// the malformed value rather than a default.
func floatOrNaN(v sql.NullFloat64) float64 {
	if !v.Valid {
		return math.NaN()
	}
	return v.Float64
}
