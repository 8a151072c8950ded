package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/pflag"

	"github.com/openparcel/parcelkit/internal/cli/formatter"
	"github.com/openparcel/parcelkit/internal/domain"
	"github.com/openparcel/parcelkit/internal/metrics"
	"github.com/openparcel/parcelkit/internal/view"
)

// parseViewFilter builds a view filter from the shared command flags.
// areasCSV is a comma-separated list of area numbers; phases repeat per name.
func parseViewFilter(areasCSV string, phases []string, useCode string) (view.Filter, error) {
	f := view.Filter{LandUseCode: strings.TrimSpace(useCode)}

	if areasCSV != "" {
		f.AreaNos = make(map[int]bool)
		for _, part := range strings.Split(areasCSV, ",") {
			n, err := strconv.Atoi(strings.TrimSpace(part))
			if err != nil {
				return view.Filter{}, fmt.Errorf("invalid area number %q", part)
			}
			f.AreaNos[n] = true
		}
	}

	if len(phases) > 0 {
		f.PhaseNames = make(map[string]bool, len(phases))
		for _, name := range phases {
			f.PhaseNames[name] = true
		}
	}

	return f, nil
}

// addFilterFlags registers the view-filter flags shared by plan and parcel
// commands.
func addFilterFlags(flags *pflag.FlagSet, areas *string, phases *[]string, useCode *string) {
	flags.StringVar(areas, "areas", "", "Comma-separated area numbers to show (e.g. 1,3)")
	flags.StringArrayVar(phases, "phase", nil, "Phase display name to show (repeatable)")
	flags.StringVar(useCode, "use-code", "", "Land-use type code to show (e.g. SFD)")
}

// buildParcelRow derives the metric columns for one parcel and resolves its
// taxonomy chain. Resolution errors degrade to an incomplete mark rather
// than failing the listing.
func buildParcelRow(ctx context.Context, app *App, project *domain.Project, parcel *domain.Parcel) formatter.ParcelRow {
	row := formatter.ParcelRow{Parcel: parcel}

	eff := parcel.Efficiency(project.Efficiency)
	row.Density, row.DensityOK = metrics.Density(float64(parcel.CountableUnits()), parcel.Acres, eff)
	if !parcel.IsResidential() {
		row.DensityOK = false
	}
	row.FrontFeet, row.FrontOK = metrics.FrontFeetPerAcre(float64(parcel.Units), parcel.LotWidth, parcel.Acres)
	row.FAR, row.FAROK = metrics.FloorAreaRatio(parcel.BuildingSF, parcel.Acres)

	if sel, err := app.Taxonomy.Resolve(ctx, parcel); err == nil {
		row.Complete = sel.Complete
	}

	return row
}

// areaNameIndex maps area numbers to display names for rollup tiles.
func areaNameIndex(areas []*domain.Area) map[int]string {
	names := make(map[int]string, len(areas))
	for _, a := range areas {
		names[a.SequenceNumber] = a.DisplayName
	}
	return names
}
