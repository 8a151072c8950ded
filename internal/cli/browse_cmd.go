package cli

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
)

func newBrowseCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "browse [ID]",
		Short: "Browse a plan tree interactively",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			input := ""
			if len(args) > 0 {
				input = args[0]
			}
			return runBrowse(app, input)
		},
	}
}

// runBrowse opens the tree browser. With no project argument it prompts,
// unless exactly one project exists.
func runBrowse(app *App, input string) error {
	ctx := context.Background()

	projectID, err := pickProject(ctx, app, input)
	if err != nil {
		return err
	}

	program := tea.NewProgram(newBrowseModel(app, projectID), tea.WithAltScreen())
	_, err = program.Run()
	return err
}

func pickProject(ctx context.Context, app *App, input string) (string, error) {
	if input != "" {
		return resolveProjectID(ctx, app, input)
	}

	projects, err := app.Projects.List(ctx)
	if err != nil {
		return "", err
	}
	switch len(projects) {
	case 0:
		return "", fmt.Errorf("no projects yet; run 'project add' first")
	case 1:
		return projects[0].ID, nil
	}

	options := make([]huh.Option[string], 0, len(projects))
	for _, p := range projects {
		label := p.Name
		if p.ShortID != "" {
			label = fmt.Sprintf("%s — %s", p.ShortID, p.Name)
		}
		options = append(options, huh.NewOption(label, p.ID))
	}

	var projectID string
	if err := selectForm("Which Project?", options, &projectID).RunWithContext(ctx); err != nil {
		return "", err
	}
	return projectID, nil
}
