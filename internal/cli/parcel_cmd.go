package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/openparcel/parcelkit/internal/cli/formatter"
	"github.com/openparcel/parcelkit/internal/repository"
	"github.com/openparcel/parcelkit/internal/view"
)

func newParcelCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "parcel",
		Short: "List, inspect, and edit parcels",
	}

	cmd.AddCommand(
		newParcelListCmd(app),
		newParcelShowCmd(app),
		newParcelSetCmd(app),
		newParcelClassifyCmd(app),
	)

	return cmd
}

func newParcelListCmd(app *App) *cobra.Command {
	var areas, useCode string
	var phases []string

	cmd := &cobra.Command{
		Use:   "list ID",
		Short: "List parcels with derived metrics",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			plan, filter, err := loadFilteredPlan(ctx, app, args[0], areas, phases, useCode)
			if err != nil {
				return err
			}

			res := view.Apply(plan.Areas, filter)
			rows := make([]formatter.ParcelRow, 0, len(res.Parcels))
			for _, parcel := range res.Parcels {
				rows = append(rows, buildParcelRow(ctx, app, plan.Project, parcel))
			}

			fmt.Printf("%s\n", formatter.FormatParcelTable(rows))
			return nil
		},
	}

	addFilterFlags(cmd.Flags(), &areas, &phases, &useCode)

	return cmd
}

func newParcelShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show ID PARCEL",
		Short: "Show one parcel's attributes, metrics, and taxonomy chain",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			projectID, err := resolveProjectID(ctx, app, args[0])
			if err != nil {
				return err
			}

			project, err := app.Projects.GetByID(ctx, projectID)
			if err != nil {
				return err
			}
			parcel, err := app.Parcels.Get(ctx, projectID, args[1])
			if err != nil {
				return err
			}

			row := buildParcelRow(ctx, app, project, parcel)
			sel, err := app.Taxonomy.Resolve(ctx, parcel)
			if err != nil {
				return fmt.Errorf("resolving taxonomy: %w", err)
			}

			fmt.Printf("%s\n", formatter.FormatParcelDetail(row, sel))
			return nil
		},
	}
}

func newParcelSetCmd(app *App) *cobra.Command {
	var acres, units, frontFeet, lotWidth, buildingSF, efficiency float64
	var family, typeCode, productCode string

	cmd := &cobra.Command{
		Use:   "set ID PARCEL",
		Short: "Edit a parcel's stored source row",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			projectID, err := resolveProjectID(ctx, app, args[0])
			if err != nil {
				return err
			}

			var upd repository.ParcelUpdate
			changed := false
			setFloat := func(flag string, dst **float64, v float64) {
				if cmd.Flags().Changed(flag) {
					*dst = &v
					changed = true
				}
			}
			setStr := func(flag string, dst **string, v string) {
				if cmd.Flags().Changed(flag) {
					*dst = &v
					changed = true
				}
			}

			setFloat("acres", &upd.Acres, acres)
			setFloat("units", &upd.Units, units)
			setFloat("front-feet", &upd.FrontFeet, frontFeet)
			setFloat("lot-width", &upd.LotWidth, lotWidth)
			setFloat("building-sf", &upd.BuildingSF, buildingSF)
			setFloat("efficiency", &upd.Efficiency, efficiency)
			setStr("family", &upd.FamilyName, family)
			setStr("type", &upd.TypeCode, typeCode)
			setStr("product", &upd.ProductCode, productCode)

			if !changed {
				return fmt.Errorf("no fields to change; pass at least one flag")
			}

			if err := app.Parcels.Set(ctx, projectID, args[1], upd); err != nil {
				return err
			}

			fmt.Printf("Updated parcel %s\n", args[1])
			return nil
		},
	}

	cmd.Flags().Float64Var(&acres, "acres", 0, "Gross acreage")
	cmd.Flags().Float64Var(&units, "units", 0, "Dwelling unit count")
	cmd.Flags().Float64Var(&frontFeet, "front-feet", 0, "Lineal front footage")
	cmd.Flags().Float64Var(&lotWidth, "lot-width", 0, "Typical lot width (feet)")
	cmd.Flags().Float64Var(&buildingSF, "building-sf", 0, "Building square footage")
	cmd.Flags().Float64Var(&efficiency, "efficiency", 0, "Parcel-level efficiency override")
	cmd.Flags().StringVar(&family, "family", "", "Land-use family name")
	cmd.Flags().StringVar(&typeCode, "type", "", "Land-use type code")
	cmd.Flags().StringVar(&productCode, "product", "", "Product code")

	return cmd
}

func newParcelClassifyCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "classify ID PARCEL",
		Short: "Interactively assign the Family → Type → Product chain",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			projectID, err := resolveProjectID(ctx, app, args[0])
			if err != nil {
				return err
			}

			parcel, err := app.Parcels.Get(ctx, projectID, args[1])
			if err != nil {
				return err
			}

			choice, err := runClassifyWizard(ctx, app, parcel)
			if err != nil {
				return err
			}

			upd := repository.ParcelUpdate{
				FamilyName:  &choice.FamilyName,
				TypeCode:    &choice.TypeCode,
				ProductCode: &choice.ProductCode,
			}
			if err := app.Parcels.Set(ctx, projectID, args[1], upd); err != nil {
				return err
			}

			fmt.Printf("Classified parcel %s as %s / %s", args[1], choice.FamilyName, choice.TypeCode)
			if choice.ProductCode != "" {
				fmt.Printf(" / %s", choice.ProductCode)
			}
			fmt.Println()
			return nil
		},
	}
}
