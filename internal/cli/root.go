package cli

import (
	"github.com/spf13/cobra"

	"github.com/openparcel/parcelkit/internal/service"
)

// App holds references to all service interfaces used by CLI commands.
type App struct {
	Projects service.ProjectService
	Plans    service.PlanService
	Parcels  service.ParcelService
	Taxonomy service.TaxonomyService

	// IsInteractive reports whether stdin is an interactive terminal.
	// When it is and no subcommand is given, the browser opens.
	IsInteractive func() bool
}

// NewRootCmd creates the top-level "parcelkit" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:   "parcelkit",
		Short: "Land plan hierarchy and taxonomy workbench",
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.IsInteractive != nil && app.IsInteractive() {
				return runBrowse(app, "")
			}
			return cmd.Help()
		},
	}

	root.AddCommand(
		newProjectCmd(app),
		newPlanCmd(app),
		newParcelCmd(app),
		newTaxonomyCmd(app),
		newBrowseCmd(app),
	)

	return root
}
