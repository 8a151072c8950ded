package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/openparcel/parcelkit/internal/cli/formatter"
	"github.com/openparcel/parcelkit/internal/domain"
	"github.com/openparcel/parcelkit/internal/service"
	"github.com/openparcel/parcelkit/internal/view"
)

func newPlanCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "plan",
		Short: "View the canonical plan tree",
	}

	cmd.AddCommand(
		newPlanTreeCmd(app),
		newPlanRollupCmd(app),
	)

	return cmd
}

func newPlanTreeCmd(app *App) *cobra.Command {
	var areas, useCode string
	var phases []string

	cmd := &cobra.Command{
		Use:     "tree ID",
		Aliases: []string{"show"},
		Short:   "Show the Area → Phase → Parcel tree",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			plan, filter, err := loadFilteredPlan(ctx, app, args[0], areas, phases, useCode)
			if err != nil {
				return err
			}

			visible := plan.Areas
			if !filterIsEmpty(filter) {
				visible = scopedTree(plan.Areas, filter)
			}

			fmt.Printf("%s\n", formatter.FormatPlanTree(formatter.PlanTreeData{
				ProjectName: plan.Project.Name,
				Source:      plan.Source,
				Areas:       visible,
			}))
			return nil
		},
	}

	addFilterFlags(cmd.Flags(), &areas, &phases, &useCode)

	return cmd
}

func newPlanRollupCmd(app *App) *cobra.Command {
	var areas, useCode string
	var phases []string

	cmd := &cobra.Command{
		Use:   "rollup ID",
		Short: "Show per-area summary tiles for the visible parcel set",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			plan, filter, err := loadFilteredPlan(ctx, app, args[0], areas, phases, useCode)
			if err != nil {
				return err
			}

			res := view.Apply(plan.Areas, filter)
			fmt.Printf("%s\n", formatter.FormatRollupTiles(res.Rollups, areaNameIndex(plan.Areas)))
			return nil
		},
	}

	addFilterFlags(cmd.Flags(), &areas, &phases, &useCode)

	return cmd
}

// loadFilteredPlan resolves the project, rebuilds its tree, and parses the
// shared filter flags.
func loadFilteredPlan(ctx context.Context, app *App, input, areas string, phases []string, useCode string) (*service.PlanView, view.Filter, error) {
	projectID, err := resolveProjectID(ctx, app, input)
	if err != nil {
		return nil, view.Filter{}, err
	}

	plan, err := app.Plans.BuildTree(ctx, projectID)
	if err != nil {
		return nil, view.Filter{}, err
	}

	filter, err := parseViewFilter(areas, phases, useCode)
	if err != nil {
		return nil, view.Filter{}, err
	}

	return plan, filter, nil
}

func filterIsEmpty(f view.Filter) bool {
	return len(f.AreaNos) == 0 && len(f.PhaseNames) == 0 && f.LandUseCode == ""
}

// scopedTree rebuilds a display tree containing only the nodes the filter
// admits. Shares parcels with the input; areas and phases are shallow copies
// so the canonical tree is never mutated.
func scopedTree(tree []*domain.Area, f view.Filter) []*domain.Area {
	res := view.Apply(tree, f)

	admitted := make(map[string]bool, len(res.Parcels))
	for _, p := range res.Parcels {
		admitted[p.ID] = true
	}

	var out []*domain.Area
	for _, area := range res.Areas {
		areaCopy := &domain.Area{
			ID:             area.ID,
			DisplayName:    area.DisplayName,
			SequenceNumber: area.SequenceNumber,
		}
		for _, phase := range area.Phases {
			var parcels []*domain.Parcel
			for _, parcel := range phase.Parcels {
				if admitted[parcel.ID] {
					parcels = append(parcels, parcel)
				}
			}
			if len(parcels) == 0 {
				continue
			}
			areaCopy.Phases = append(areaCopy.Phases, &domain.Phase{
				ID:             phase.ID,
				DisplayName:    phase.DisplayName,
				SequenceNumber: phase.SequenceNumber,
				AreaNo:         phase.AreaNo,
				Description:    phase.Description,
				Parcels:        parcels,
			})
		}
		out = append(out, areaCopy)
	}
	return out
}
