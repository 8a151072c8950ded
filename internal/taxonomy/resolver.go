package taxonomy

import (
	"context"
	"strings"

	"github.com/openparcel/parcelkit/internal/domain"
)

// Resolve reconstructs a parcel's Family → Type → Product chain against the
// cache. Each stage is independent: a miss at a later stage never discards an
// earlier match. Family names match case-insensitively; type and product
// match on Code, the stable join key (names are presentation-only and may
// diverge). Only fetch failures are errors; unmatched stages just stay empty
// and Complete carries the partial-failure signal.
func Resolve(ctx context.Context, parcel *domain.Parcel, cache *Cache) (domain.Selection, error) {
	var sel domain.Selection

	familyName := strings.TrimSpace(parcel.FamilyName)
	if familyName == "" {
		return sel, nil
	}

	families, err := cache.Families(ctx)
	if err != nil {
		return sel, err
	}
	for _, f := range families {
		if strings.EqualFold(f.Name, familyName) {
			sel.FamilyID = f.ID
			break
		}
	}
	if sel.FamilyID == "" {
		return sel, nil
	}

	types, err := cache.Types(ctx, sel.FamilyID)
	if err != nil {
		return sel, err
	}
	typeCode := strings.TrimSpace(parcel.TypeCode)
	if typeCode != "" {
		for _, ty := range types {
			if ty.Code == typeCode {
				sel.TypeID = ty.ID
				break
			}
		}
	}
	if sel.TypeID == "" {
		return sel, nil
	}

	products, err := cache.Products(ctx, sel.TypeID)
	if err != nil {
		return sel, err
	}
	productCode := strings.TrimSpace(parcel.ProductCode)
	if productCode != "" {
		for _, pr := range products {
			if pr.Code == productCode {
				sel.ProductID = pr.ID
				break
			}
		}
	}

	// A type with zero products is a valid terminal selection; a non-empty
	// product list requires a resolved product before the chain is complete.
	sel.Complete = len(products) == 0 || sel.ProductID != ""
	return sel, nil
}
