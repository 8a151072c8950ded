package formatter

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/openparcel/parcelkit/internal/domain"
	"github.com/openparcel/parcelkit/internal/view"
)

// PlanTreeData holds everything needed to render a plan tree view.
type PlanTreeData struct {
	ProjectName string
	Source      domain.SourceKind
	Areas       []*domain.Area
}

// FormatPlanTree renders the canonical tree with per-node badges: acreage
// for parcels, parcel counts for phases, phase counts for areas.
func FormatPlanTree(data PlanTreeData) string {
	if len(data.Areas) == 0 {
		return RenderBox(data.ProjectName, Dim("No areas. Import source data first."))
	}

	var items []TreeItem
	for _, area := range data.Areas {
		items = append(items, TreeItem{
			Title:  Bold(area.DisplayName),
			Level:  0,
			Detail: fmt.Sprintf("%d phases", len(area.Phases)),
		})
		for pi, phase := range area.Phases {
			items = append(items, TreeItem{
				Title:  phase.DisplayName,
				Level:  1,
				IsLast: pi == len(area.Phases)-1,
				Detail: fmt.Sprintf("%d parcels", len(phase.Parcels)),
			})
			for ci, parcel := range phase.Parcels {
				detail := FormatAcres(parcel.Acres) + " ac"
				if parcel.IsResidential() && parcel.Units > 0 {
					detail = fmt.Sprintf("%d du, %s", parcel.Units, detail)
				}
				items = append(items, TreeItem{
					Title:  parcel.DisplayName,
					Level:  2,
					IsLast: ci == len(phase.Parcels)-1,
					Detail: detail,
					Muted:  parcel.FamilyName == "",
				})
			}
		}
	}

	header := StyleBold.Render(data.ProjectName) + "  " + SourceBadge(data.Source)
	return RenderBox("", header+"\n\n"+RenderTree(items))
}

// FormatRollupTiles renders one summary tile per visible area: gross acres
// (whole units), phase count, parcel count, and the residential unit sum.
func FormatRollupTiles(rollups []view.Rollup, areaNames map[int]string) string {
	if len(rollups) == 0 {
		return Dim("No visible areas.")
	}

	tileStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorDim).
		Padding(0, 2)

	tiles := make([]string, 0, len(rollups))
	for _, r := range rollups {
		name := areaNames[r.AreaNo]
		if name == "" {
			name = fmt.Sprintf("Area %d", r.AreaNo)
		}

		var b strings.Builder
		b.WriteString(StyleHeader.Render(name) + "\n")
		b.WriteString(fmt.Sprintf("%s %s\n", Bold(fmt.Sprintf("%d", r.GrossAcresRounded)), Dim("ac gross")))
		b.WriteString(fmt.Sprintf("%s %s\n", StyleFg.Render(fmt.Sprintf("%d", r.PhaseCount)), Dim("phases")))
		b.WriteString(fmt.Sprintf("%s %s\n", StyleFg.Render(fmt.Sprintf("%d", r.ParcelCount)), Dim("parcels")))
		b.WriteString(fmt.Sprintf("%s %s", StyleGreen.Render(fmt.Sprintf("%d", r.UnitSum)), Dim("units")))
		tiles = append(tiles, tileStyle.Render(b.String()))
	}

	return lipgloss.JoinHorizontal(lipgloss.Top, tiles...)
}
