package formatter

import (
	"fmt"
	"strings"

	"github.com/openparcel/parcelkit/internal/domain"
)

// ProjectInspectData holds a project plus tree summary counts for the
// inspect view.
type ProjectInspectData struct {
	Project     *domain.Project
	Source      domain.SourceKind
	AreaCount   int
	PhaseCount  int
	ParcelCount int
	GrossAcres  float64
	UnitSum     int
}

// FormatProjectList renders a styled project list inside a bordered box.
func FormatProjectList(projects []*domain.Project) string {
	headers := []string{"ID", "NAME", "EFFICIENCY", "LEVEL 1", "UPDATED"}
	rows := make([][]string, 0, len(projects))

	for _, p := range projects {
		id := p.ShortID
		if strings.TrimSpace(id) == "" {
			id = TruncID(p.ID)
		}

		eff := Dim(Undefined)
		if p.Efficiency > 0 {
			eff = fmt.Sprintf("%.2f", p.Efficiency)
		}

		rows = append(rows, []string{
			id,
			Bold(p.Name),
			eff,
			p.Level1LabelOrDefault(),
			Dim(HumanTimestamp(p.UpdatedAt)),
		})
	}

	return RenderBox("Projects", RenderTable(headers, rows))
}

// FormatProjectInspect renders a project metadata card with tree totals.
func FormatProjectInspect(data ProjectInspectData) string {
	p := data.Project

	var b strings.Builder
	b.WriteString(StyleBold.Render(p.Name) + "  " + Dim(p.ShortID) + "\n\n")
	b.WriteString(field("UUID", TruncID(p.ID)))
	b.WriteString(field("SOURCE", SourceBadge(data.Source)))
	if p.Efficiency > 0 {
		b.WriteString(field("EFF", fmt.Sprintf("%.2f", p.Efficiency)))
	}
	b.WriteString(field("LEVEL 1", p.Level1LabelOrDefault()))
	b.WriteString(field("UPDATED", HumanTimestamp(p.UpdatedAt)))
	b.WriteString("\n")
	b.WriteString(field("AREAS", fmt.Sprintf("%d", data.AreaCount)))
	b.WriteString(field("PHASES", fmt.Sprintf("%d", data.PhaseCount)))
	b.WriteString(field("PARCELS", fmt.Sprintf("%d", data.ParcelCount)))
	b.WriteString(field("GROSS", FormatAcres(data.GrossAcres)+" ac"))
	b.WriteString(field("UNITS", fmt.Sprintf("%d", data.UnitSum)))

	return RenderBox("", b.String())
}
