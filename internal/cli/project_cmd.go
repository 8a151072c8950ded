package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/openparcel/parcelkit/internal/cli/formatter"
	"github.com/openparcel/parcelkit/internal/domain"
)

func newProjectCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "project",
		Short: "Manage projects",
	}

	cmd.AddCommand(
		newProjectAddCmd(app),
		newProjectListCmd(app),
		newProjectInspectCmd(app),
		newProjectUpdateCmd(app),
		newProjectRemoveCmd(app),
		newProjectImportCmd(app),
	)

	return cmd
}

func newProjectAddCmd(app *App) *cobra.Command {
	var name, shortID, label string
	var efficiency float64

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create a new project",
		RunE: func(cmd *cobra.Command, args []string) error {
			p := &domain.Project{
				ShortID:     strings.ToUpper(shortID),
				Name:        name,
				Efficiency:  efficiency,
				Level1Label: label,
			}

			if err := app.Projects.Create(context.Background(), p); err != nil {
				return err
			}

			fmt.Printf("Created project %s [%s]\n", p.Name, p.ShortID)
			return nil
		},
	}

	cmd.Flags().StringVar(&shortID, "id", "", "Short ID (2-8 uppercase letters + up to 4 digits, e.g. MESA02)")
	cmd.Flags().StringVar(&name, "name", "", "Project name")
	cmd.Flags().Float64Var(&efficiency, "efficiency", 0, "Planning-efficiency factor (0 < f <= 1)")
	cmd.Flags().StringVar(&label, "label", "", "Level-1 label for synthesized area names (default \"Area\")")
	_ = cmd.MarkFlagRequired("id")
	_ = cmd.MarkFlagRequired("name")

	return cmd
}

func newProjectListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List projects",
		RunE: func(cmd *cobra.Command, args []string) error {
			projects, err := app.Projects.List(context.Background())
			if err != nil {
				return err
			}

			if len(projects) == 0 {
				fmt.Println("No projects found.")
				return nil
			}

			fmt.Printf("%s\n", formatter.FormatProjectList(projects))
			return nil
		},
	}
}

func newProjectInspectCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "inspect ID",
		Short: "Show project details and tree totals",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			projectID, err := resolveProjectID(ctx, app, args[0])
			if err != nil {
				return err
			}

			plan, err := app.Plans.BuildTree(ctx, projectID)
			if err != nil {
				return err
			}

			data := formatter.ProjectInspectData{
				Project: plan.Project,
				Source:  plan.Source,
			}
			for _, area := range plan.Areas {
				data.AreaCount++
				for _, phase := range area.Phases {
					data.PhaseCount++
					for _, parcel := range phase.Parcels {
						data.ParcelCount++
						data.GrossAcres += parcel.Acres
						data.UnitSum += parcel.CountableUnits()
					}
				}
			}

			fmt.Printf("%s\n", formatter.FormatProjectInspect(data))
			return nil
		},
	}
}

func newProjectUpdateCmd(app *App) *cobra.Command {
	var name, shortID, label string
	var efficiency float64

	cmd := &cobra.Command{
		Use:   "update ID",
		Short: "Update a project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			projectID, err := resolveProjectID(ctx, app, args[0])
			if err != nil {
				return err
			}
			p, err := app.Projects.GetByID(ctx, projectID)
			if err != nil {
				return err
			}

			if cmd.Flags().Changed("id") {
				p.ShortID = strings.ToUpper(shortID)
				if err := p.ValidateShortID(); err != nil {
					return err
				}
			}
			if cmd.Flags().Changed("name") {
				p.Name = name
			}
			if cmd.Flags().Changed("efficiency") {
				p.Efficiency = efficiency
			}
			if cmd.Flags().Changed("label") {
				p.Level1Label = label
			}

			if err := app.Projects.Update(ctx, p); err != nil {
				return err
			}

			fmt.Printf("Updated project %s [%s]\n", p.Name, p.ShortID)
			return nil
		},
	}

	cmd.Flags().StringVar(&shortID, "id", "", "Short ID (2-8 uppercase letters + up to 4 digits)")
	cmd.Flags().StringVar(&name, "name", "", "Project name")
	cmd.Flags().Float64Var(&efficiency, "efficiency", 0, "Planning-efficiency factor")
	cmd.Flags().StringVar(&label, "label", "", "Level-1 label")

	return cmd
}

func newProjectRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "remove ID",
		Short: "Remove a project and its stored source rows",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			projectID, err := resolveProjectID(ctx, app, args[0])
			if err != nil {
				return err
			}
			if err := app.Projects.Delete(ctx, projectID); err != nil {
				return err
			}
			fmt.Printf("Removed project %s\n", projectID)
			return nil
		},
	}
}

func newProjectImportCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "import ID FILE",
		Short: "Import source rows from a JSON payload file",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			projectID, err := resolveProjectID(ctx, app, args[0])
			if err != nil {
				return err
			}

			result, err := app.Plans.ImportSources(ctx, projectID, args[1])
			if err != nil {
				return err
			}

			fmt.Printf("Imported %d container nodes, %d phases, %d parcels, %d area names\n",
				result.ContainerCount, result.PhaseCount, result.ParcelCount, result.AreaNameCount)
			return nil
		},
	}
}
