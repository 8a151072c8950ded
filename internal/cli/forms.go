package cli

import (
	"context"
	"fmt"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/openparcel/parcelkit/internal/cli/formatter"
	"github.com/openparcel/parcelkit/internal/domain"
)

// parcelkitHuhTheme returns a custom huh theme using the existing Gruvbox palette.
func parcelkitHuhTheme() *huh.Theme {
	t := huh.ThemeBase()

	// Focused state: orange accent
	t.Focused.Title = lipgloss.NewStyle().Foreground(formatter.ColorHeader).Bold(true)
	t.Focused.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorGreen)
	t.Focused.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.FocusedButton = lipgloss.NewStyle().Foreground(formatter.ColorFg).Background(formatter.ColorHeader).Padding(0, 1)
	t.Focused.BlurredButton = lipgloss.NewStyle().Foreground(formatter.ColorDim).Padding(0, 1)
	t.Focused.Description = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	// Blurred state: dimmed
	t.Blurred.Title = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	return t
}

// classifyChoice is the completed selection a classify wizard produces.
// ProductCode stays empty for terminal types.
type classifyChoice struct {
	FamilyName  string
	TypeCode    string
	ProductCode string
}

// runClassifyWizard walks the three catalog stages one form at a time, so
// each stage's options come from the previous stage's answer. A type with no
// products is terminal and skips the product stage.
func runClassifyWizard(ctx context.Context, app *App, parcel *domain.Parcel) (*classifyChoice, error) {
	families, err := app.Taxonomy.Families(ctx)
	if err != nil {
		return nil, err
	}
	if len(families) == 0 {
		return nil, fmt.Errorf("no taxonomy loaded; run 'taxonomy import' first")
	}

	familyByID := make(map[string]domain.Family, len(families))
	familyOpts := make([]huh.Option[string], 0, len(families))
	for _, f := range families {
		familyByID[f.ID] = f
		familyOpts = append(familyOpts, huh.NewOption(f.Name, f.ID))
	}

	var familyID string
	if err := selectForm("Family for "+parcel.DisplayName, familyOpts, &familyID).RunWithContext(ctx); err != nil {
		return nil, err
	}

	types, err := app.Taxonomy.Types(ctx, familyID)
	if err != nil {
		return nil, err
	}
	if len(types) == 0 {
		return nil, fmt.Errorf("family %q has no land-use types", familyByID[familyID].Name)
	}

	typeByID := make(map[string]domain.LandUseType, len(types))
	typeOpts := make([]huh.Option[string], 0, len(types))
	for _, lut := range types {
		typeByID[lut.ID] = lut
		typeOpts = append(typeOpts, huh.NewOption(fmt.Sprintf("%s — %s", lut.Code, lut.Name), lut.ID))
	}

	var typeID string
	if err := selectForm("Land-Use Type", typeOpts, &typeID).RunWithContext(ctx); err != nil {
		return nil, err
	}

	choice := &classifyChoice{
		FamilyName: familyByID[familyID].Name,
		TypeCode:   typeByID[typeID].Code,
	}

	products, err := app.Taxonomy.Products(ctx, typeID)
	if err != nil {
		return nil, err
	}
	if len(products) == 0 {
		return choice, nil
	}

	productByID := make(map[string]domain.Product, len(products))
	productOpts := make([]huh.Option[string], 0, len(products))
	for _, prod := range products {
		productByID[prod.ID] = prod
		productOpts = append(productOpts, huh.NewOption(fmt.Sprintf("%s — %s", prod.Code, prod.Name), prod.ID))
	}

	var productID string
	if err := selectForm("Product", productOpts, &productID).RunWithContext(ctx); err != nil {
		return nil, err
	}
	choice.ProductCode = productByID[productID].Code

	return choice, nil
}

// selectForm creates a themed single-select form.
func selectForm(title string, options []huh.Option[string], result *string) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title(title).
				Options(options...).
				Value(result),
		),
	).WithTheme(parcelkitHuhTheme()).WithShowHelp(false)
}
