package formatter

import (
	"fmt"
	"strings"

	"github.com/openparcel/parcelkit/internal/domain"
)

// ParcelRow is one parcel plus its derived metrics, pre-computed by the
// caller. The ok flags distinguish a true zero from an undefined metric.
type ParcelRow struct {
	Parcel *domain.Parcel

	Density   float64
	DensityOK bool
	FrontFeet float64
	FrontOK   bool
	FAR       float64
	FAROK     bool

	Complete bool
}

// FormatParcelTable renders the parcel list with metric columns. Undefined
// metrics render as "--", never as zero.
func FormatParcelTable(rows []ParcelRow) string {
	if len(rows) == 0 {
		return Dim("No parcels match.")
	}

	headers := []string{"", "PARCEL", "FAMILY", "TYPE", "PRODUCT", "ACRES", "UNITS", "DU/AC", "FF/AC", "FAR"}
	data := make([][]string, 0, len(rows))

	for _, r := range rows {
		p := r.Parcel

		units := Dim(Undefined)
		if p.IsResidential() {
			units = fmt.Sprintf("%d", p.Units)
		}

		product := p.ProductCode
		if product == "" {
			product = Dim(Undefined)
		}

		data = append(data, []string{
			CompletenessMark(r.Complete),
			Bold(p.DisplayName),
			FamilyBadge(p.FamilyName),
			p.TypeCode,
			product,
			FormatAcres(p.Acres),
			units,
			FormatMetric(r.Density, r.DensityOK, 2),
			FormatMetric(r.FrontFeet, r.FrontOK, 1),
			FormatMetric(r.FAR, r.FAROK, 2),
		})
	}

	table := RenderTable(headers, data, 5, 6, 7, 8, 9)
	return RenderBox("Parcels", table)
}

// FormatParcelDetail renders a single-parcel card with raw attributes on the
// left and derived metrics plus the resolved taxonomy chain on the right.
func FormatParcelDetail(r ParcelRow, sel domain.Selection) string {
	p := r.Parcel

	var left strings.Builder
	left.WriteString(StyleBold.Render(p.DisplayName) + "\n")
	left.WriteString(Dim(p.SourceID) + "\n\n")
	left.WriteString(field("AREA", fmt.Sprintf("%d", p.AreaNo)))
	left.WriteString(field("PHASE", fmt.Sprintf("%d", p.PhaseNo)))
	left.WriteString(field("ACRES", FormatAcres(p.Acres)))
	if p.IsResidential() {
		left.WriteString(field("UNITS", fmt.Sprintf("%d", p.Units)))
	}
	if p.LotWidth > 0 {
		left.WriteString(field("LOT W", fmt.Sprintf("%.0f ft", p.LotWidth)))
	}
	if p.BuildingSF > 0 {
		left.WriteString(field("BLDG", fmt.Sprintf("%.0f sf", p.BuildingSF)))
	}
	if p.EfficiencyOverride != nil {
		left.WriteString(field("EFF", fmt.Sprintf("%.2f", *p.EfficiencyOverride)))
	}

	var right strings.Builder
	right.WriteString(CompletenessMark(r.Complete) + " ")
	if r.Complete {
		right.WriteString(StyleGreen.Render("classified") + "\n\n")
	} else {
		right.WriteString(StyleYellow.Render("incomplete") + "\n\n")
	}
	right.WriteString(field("FAMILY", FamilyBadge(p.FamilyName)))
	right.WriteString(field("TYPE", orDim(p.TypeCode)))
	right.WriteString(field("PRODUCT", orDim(p.ProductCode)))
	if sel.FamilyID != "" {
		right.WriteString("\n" + Dim("chain "+chainString(sel)) + "\n")
	}
	right.WriteString("\n")
	right.WriteString(field("DU/AC", FormatMetric(r.Density, r.DensityOK, 2)))
	right.WriteString(field("FF/AC", FormatMetric(r.FrontFeet, r.FrontOK, 1)))
	right.WriteString(field("FAR", FormatMetric(r.FAR, r.FAROK, 2)))

	return RenderBox("", left.String()+"\n"+right.String())
}

func field(label, value string) string {
	return fmt.Sprintf("%s  %s\n", StyleDim.Render(fmt.Sprintf("%-7s", label)), value)
}

func orDim(s string) string {
	if s == "" {
		return Dim(Undefined)
	}
	return s
}

func chainString(sel domain.Selection) string {
	parts := []string{sel.FamilyID}
	if sel.TypeID != "" {
		parts = append(parts, sel.TypeID)
	}
	if sel.ProductID != "" {
		parts = append(parts, sel.ProductID)
	}
	return strings.Join(parts, " › ")
}
