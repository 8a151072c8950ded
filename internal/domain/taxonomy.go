package domain

// Taxonomy value types. Codes are the stable join keys between parcels and
// the taxonomy; names are presentation-only and may diverge over time.

type Family struct {
	ID   string
	Code string
	Name string
}

type LandUseType struct {
	ID       string
	FamilyID string
	Code     string
	Name     string
}

type Product struct {
	ID     string
	TypeID string
	Code   string
	Name   string
}

// Selection is a parcel's resolved Family → Type → Product chain. Empty
// fields mean the corresponding stage did not match; Complete is the only
// signal of partial failure.
type Selection struct {
	FamilyID  string
	TypeID    string
	ProductID string
	// Complete is true when family and type both resolved and the type is
	// terminal: either it offers no products, or a product also resolved.
	Complete bool
}
