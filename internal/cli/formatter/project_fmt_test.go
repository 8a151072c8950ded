package formatter

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/openparcel/parcelkit/internal/domain"
)

func TestFormatProjectList_UsesShortIDWhenPresent(t *testing.T) {
	now := time.Now().UTC()
	projects := []*domain.Project{
		{
			ID:        "12345678-aaaa-bbbb-cccc-1234567890ab",
			ShortID:   "MESA02",
			Name:      "Mesa Highlands",
			UpdatedAt: now,
		},
	}

	out := FormatProjectList(projects)

	assert.Contains(t, out, "MESA02")
	assert.NotContains(t, out, "12345678")
}

func TestFormatProjectList_FallsBackToUUIDPrefix(t *testing.T) {
	projects := []*domain.Project{
		{ID: "abcdef12-3456-7890-abcd-ef1234567890", Name: "Unnamed", UpdatedAt: time.Now()},
	}

	out := FormatProjectList(projects)

	assert.Contains(t, out, "abcdef12")
}

func TestFormatProjectList_UnconfiguredEfficiencyShowsPlaceholder(t *testing.T) {
	projects := []*domain.Project{
		{ID: "p1", ShortID: "AA01", Name: "No Factor", UpdatedAt: time.Now()},
	}

	out := FormatProjectList(projects)

	assert.Contains(t, out, Undefined)
}

func TestFormatProjectInspect_ShowsTotalsAndSource(t *testing.T) {
	out := FormatProjectInspect(ProjectInspectData{
		Project: &domain.Project{
			ID: "p1", ShortID: "MESA02", Name: "Mesa Highlands",
			Efficiency: 0.8, Level1Label: "Village", UpdatedAt: time.Now(),
		},
		Source:      domain.SourceContainer,
		AreaCount:   2,
		PhaseCount:  5,
		ParcelCount: 12,
		GrossAcres:  84.6,
		UnitSum:     310,
	})

	assert.Contains(t, out, "Mesa Highlands")
	assert.Contains(t, out, "containers")
	assert.Contains(t, out, "0.80")
	assert.Contains(t, out, "Village")
	assert.Contains(t, out, "84.6")
	assert.Contains(t, out, "310")
}

func TestFormatTaxonomyTree_TerminalTypeMarked(t *testing.T) {
	out := FormatTaxonomyTree(TaxonomyTreeData{
		Families: []domain.Family{{ID: "f-com", Code: "COM", Name: "Commercial"}},
		Types: map[string][]domain.LandUseType{
			"f-com": {{ID: "t-ret", FamilyID: "f-com", Code: "RET", Name: "Retail"}},
		},
	})

	assert.Contains(t, out, "Commercial")
	assert.Contains(t, out, "terminal")
}

func TestFormatTaxonomyTree_Empty(t *testing.T) {
	out := FormatTaxonomyTree(TaxonomyTreeData{})
	assert.Contains(t, out, "taxonomy import")
}
