package formatter

import (
	"fmt"

	"github.com/openparcel/parcelkit/internal/domain"
)

// TaxonomyTreeData holds the full catalog keyed by parent id.
type TaxonomyTreeData struct {
	Families []domain.Family
	Types    map[string][]domain.LandUseType // family id -> types
	Products map[string][]domain.Product     // type id -> products
}

// FormatTaxonomyTree renders the Family → Type → Product catalog. Types with
// no products are terminal and carry no product branch.
func FormatTaxonomyTree(data TaxonomyTreeData) string {
	if len(data.Families) == 0 {
		return Dim("No taxonomy loaded. Run 'taxonomy import' first.")
	}

	var items []TreeItem
	for _, f := range data.Families {
		items = append(items, TreeItem{
			Title:  FamilyBadge(f.Name),
			Level:  0,
			Detail: f.Code,
		})
		types := data.Types[f.ID]
		for ti, lut := range types {
			products := data.Products[lut.ID]
			detail := lut.Code
			if len(products) == 0 {
				detail = fmt.Sprintf("%s, terminal", lut.Code)
			}
			items = append(items, TreeItem{
				Title:  lut.Name,
				Level:  1,
				IsLast: ti == len(types)-1,
				Detail: detail,
			})
			for pi, prod := range products {
				items = append(items, TreeItem{
					Title:  prod.Name,
					Level:  2,
					IsLast: pi == len(products)-1,
					Detail: prod.Code,
				})
			}
		}
	}

	return RenderBox("Taxonomy", RenderTree(items))
}
