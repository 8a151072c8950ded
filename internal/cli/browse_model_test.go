package cli

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openparcel/parcelkit/internal/domain"
	"github.com/openparcel/parcelkit/internal/hierarchy"
	"github.com/openparcel/parcelkit/internal/service"
	"github.com/openparcel/parcelkit/internal/testutil"
)

func loadedBrowseModel(t *testing.T) *browseModel {
	t.Helper()

	src := testutil.LegacySourceSet()
	src.Level1Label = domain.DefaultLevel1Label
	plan := &service.PlanView{
		Project: testutil.NewTestProject("Browse Test"),
		Areas:   hierarchy.Build(*src),
		Source:  domain.SourceLegacy,
	}
	require.NotEmpty(t, plan.Areas)

	m := newBrowseModel(nil, "p1")
	updated, _ := m.Update(planLoadedMsg{plan: plan})
	return updated.(*browseModel)
}

func keyMsg(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestBrowseModel_LoadsAndRendersTree(t *testing.T) {
	m := loadedBrowseModel(t)

	out := m.View()
	assert.Contains(t, out, "Browse Test")
	assert.Contains(t, out, "Area 1")
	assert.Contains(t, out, "Phase One")
	assert.Contains(t, out, "1.101")
}

func TestBrowseModel_CursorNavigation(t *testing.T) {
	m := loadedBrowseModel(t)

	updated, _ := m.Update(keyMsg("j"))
	m = updated.(*browseModel)
	assert.Equal(t, 1, m.cursor)

	updated, _ = m.Update(keyMsg("k"))
	m = updated.(*browseModel)
	assert.Equal(t, 0, m.cursor)

	// Cursor never goes negative.
	updated, _ = m.Update(keyMsg("k"))
	m = updated.(*browseModel)
	assert.Equal(t, 0, m.cursor)
}

func TestBrowseModel_CollapseArea(t *testing.T) {
	m := loadedBrowseModel(t)
	expanded := len(m.visibleRows())

	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = updated.(*browseModel)

	assert.Less(t, len(m.visibleRows()), expanded, "collapsing the first area hides its phases")
	assert.NotContains(t, m.View(), "Phase One")

	updated, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = updated.(*browseModel)
	assert.Equal(t, expanded, len(m.visibleRows()))
}

func TestBrowseModel_UseCodeCycling(t *testing.T) {
	m := loadedBrowseModel(t)
	require.Equal(t, []string{"RET", "SFD", "TH"}, m.useCodes)

	updated, _ := m.Update(keyMsg("u"))
	m = updated.(*browseModel)
	assert.Equal(t, "RET", m.useCode)
	assert.NotContains(t, m.View(), "1.101", "SFD parcel hidden under RET filter")

	// Cycle through the rest and back to no filter.
	for range m.useCodes {
		updated, _ = m.Update(keyMsg("u"))
		m = updated.(*browseModel)
	}
	assert.Empty(t, m.useCode)
}

func TestBrowseModel_PhaseFilter(t *testing.T) {
	m := loadedBrowseModel(t)

	updated, _ := m.Update(keyMsg("/"))
	m = updated.(*browseModel)
	assert.True(t, m.filtering)

	for _, r := range "ridge" {
		updated, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
		m = updated.(*browseModel)
	}
	updated, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = updated.(*browseModel)

	out := m.View()
	assert.Contains(t, out, "North Ridge")
	assert.NotContains(t, out, "Phase One")

	// Esc clears all filters.
	updated, _ = m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	m = updated.(*browseModel)
	assert.Contains(t, m.View(), "Phase One")
}

func TestBrowseModel_FooterRollup(t *testing.T) {
	m := loadedBrowseModel(t)

	out := m.View()
	// 10 + 5 + 3 acres across the fixture, 40 + 12 residential units.
	assert.Contains(t, out, "18.0")
	assert.Contains(t, out, "52")
}

func TestBrowseModel_QuitKey(t *testing.T) {
	m := loadedBrowseModel(t)

	_, cmd := m.Update(keyMsg("q"))
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}

func TestBrowseModel_LoadError(t *testing.T) {
	m := newBrowseModel(nil, "p1")

	updated, _ := m.Update(planLoadedMsg{err: assert.AnError})
	m = updated.(*browseModel)

	assert.Contains(t, m.View(), "Error")
}
