package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/openparcel/parcelkit/internal/cli/formatter"
	"github.com/openparcel/parcelkit/internal/domain"
)

func newTaxonomyCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "taxonomy",
		Short: "Manage the land-use taxonomy catalog",
	}

	cmd.AddCommand(
		newTaxonomyImportCmd(app),
		newTaxonomyListCmd(app),
	)

	return cmd
}

func newTaxonomyImportCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "import FILE",
		Short: "Replace the taxonomy catalog from a JSON file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := app.Taxonomy.Import(context.Background(), args[0])
			if err != nil {
				return err
			}

			fmt.Printf("Imported %d families, %d types, %d products\n",
				result.FamilyCount, result.TypeCount, result.ProductCount)
			return nil
		},
	}
}

func newTaxonomyListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Show the Family → Type → Product catalog",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			families, err := app.Taxonomy.Families(ctx)
			if err != nil {
				return err
			}

			data := formatter.TaxonomyTreeData{
				Families: families,
				Types:    make(map[string][]domain.LandUseType),
				Products: make(map[string][]domain.Product),
			}
			for _, f := range families {
				types, err := app.Taxonomy.Types(ctx, f.ID)
				if err != nil {
					return err
				}
				data.Types[f.ID] = types
				for _, lut := range types {
					products, err := app.Taxonomy.Products(ctx, lut.ID)
					if err != nil {
						return err
					}
					data.Products[lut.ID] = products
				}
			}

			fmt.Printf("%s\n", formatter.FormatTaxonomyTree(data))
			return nil
		},
	}
}
