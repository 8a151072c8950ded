package cli

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/openparcel/parcelkit/internal/cli/formatter"
	"github.com/openparcel/parcelkit/internal/domain"
	"github.com/openparcel/parcelkit/internal/service"
	"github.com/openparcel/parcelkit/internal/view"
)

// planLoadedMsg signals that the canonical tree has been rebuilt.
type planLoadedMsg struct {
	plan *service.PlanView
	err  error
}

// browseRow is one visible line of the flattened tree.
type browseRow struct {
	area   *domain.Area
	phase  *domain.Phase
	parcel *domain.Parcel
}

func (r browseRow) nodeID() string {
	switch {
	case r.parcel != nil:
		return r.parcel.ID
	case r.phase != nil:
		return r.phase.ID
	default:
		return r.area.ID
	}
}

// browseModel is the interactive tree browser: cursor navigation, collapse
// toggles, a phase-name filter, and a use-code filter cycled from the codes
// present in the tree. The footer recomputes rollups for the visible set.
type browseModel struct {
	app       *App
	projectID string

	plan      *service.PlanView
	collapsed map[string]bool
	cursor    int
	loading   bool
	err       error

	filtering bool
	filter    textinput.Model
	useCode   string
	useCodes  []string // distinct codes in tree order, for cycling
}

func newBrowseModel(app *App, projectID string) *browseModel {
	ti := textinput.New()
	ti.Placeholder = "phase name"
	ti.Prompt = formatter.StyleYellow.Render("/ ")
	ti.CharLimit = 64

	return &browseModel{
		app:       app,
		projectID: projectID,
		collapsed: make(map[string]bool),
		loading:   true,
		filter:    ti,
	}
}

func (m *browseModel) Init() tea.Cmd {
	return m.loadPlan()
}

func (m *browseModel) loadPlan() tea.Cmd {
	app, projectID := m.app, m.projectID
	return func() tea.Msg {
		plan, err := app.Plans.BuildTree(context.Background(), projectID)
		return planLoadedMsg{plan: plan, err: err}
	}
}

func (m *browseModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case planLoadedMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.plan = msg.plan
		m.useCodes = distinctUseCodes(msg.plan.Areas)
		m.clampCursor()
		return m, nil

	case tea.KeyMsg:
		if m.filtering {
			return m.updateFilter(msg)
		}
		return m.updateNormal(msg)
	}
	return m, nil
}

func (m *browseModel) updateNormal(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.visibleRows())-1 {
			m.cursor++
		}
	case "enter", " ":
		rows := m.visibleRows()
		if m.cursor < len(rows) && rows[m.cursor].parcel == nil {
			id := rows[m.cursor].nodeID()
			m.collapsed[id] = !m.collapsed[id]
			m.clampCursor()
		}
	case "/":
		m.filtering = true
		m.filter.Focus()
		return m, textinput.Blink
	case "u":
		m.cycleUseCode()
		m.clampCursor()
	case "esc":
		m.filter.SetValue("")
		m.useCode = ""
		m.clampCursor()
	case "r":
		m.loading = true
		return m, m.loadPlan()
	}
	return m, nil
}

func (m *browseModel) updateFilter(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.filtering = false
		m.filter.SetValue("")
		m.filter.Blur()
		m.clampCursor()
		return m, nil
	case tea.KeyEnter:
		m.filtering = false
		m.filter.Blur()
		m.clampCursor()
		return m, nil
	}

	var cmd tea.Cmd
	m.filter, cmd = m.filter.Update(msg)
	m.cursor = 0
	return m, cmd
}

func (m *browseModel) cycleUseCode() {
	if len(m.useCodes) == 0 {
		return
	}
	if m.useCode == "" {
		m.useCode = m.useCodes[0]
		return
	}
	for i, code := range m.useCodes {
		if code == m.useCode {
			if i == len(m.useCodes)-1 {
				m.useCode = ""
			} else {
				m.useCode = m.useCodes[i+1]
			}
			return
		}
	}
	m.useCode = ""
}

// currentFilter translates the TUI state into an engine filter. The phase
// text box is a substring match, so it expands to the set of exact names it
// admits.
func (m *browseModel) currentFilter() view.Filter {
	f := view.Filter{LandUseCode: m.useCode}

	needle := strings.ToLower(strings.TrimSpace(m.filter.Value()))
	if needle == "" || m.plan == nil {
		return f
	}

	f.PhaseNames = make(map[string]bool)
	for _, area := range m.plan.Areas {
		for _, phase := range area.Phases {
			if strings.Contains(strings.ToLower(phase.DisplayName), needle) {
				f.PhaseNames[phase.DisplayName] = true
			}
		}
	}
	return f
}

// visibleRows flattens the filtered tree, honoring collapse state.
func (m *browseModel) visibleRows() []browseRow {
	if m.plan == nil {
		return nil
	}

	scoped := m.plan.Areas
	f := m.currentFilter()
	if len(f.PhaseNames) > 0 || f.LandUseCode != "" {
		scoped = scopedTree(scoped, f)
	}

	var rows []browseRow
	for _, area := range scoped {
		rows = append(rows, browseRow{area: area})
		if m.collapsed[area.ID] {
			continue
		}
		for _, phase := range area.Phases {
			rows = append(rows, browseRow{area: area, phase: phase})
			if m.collapsed[phase.ID] {
				continue
			}
			for _, parcel := range phase.Parcels {
				rows = append(rows, browseRow{area: area, phase: phase, parcel: parcel})
			}
		}
	}
	return rows
}

func (m *browseModel) clampCursor() {
	if n := len(m.visibleRows()); m.cursor >= n {
		m.cursor = n - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m *browseModel) View() string {
	if m.loading {
		return "\n  " + formatter.Dim("Rebuilding tree...")
	}
	if m.err != nil {
		return "\n  " + formatter.StyleRed.Render("Error: "+m.err.Error())
	}

	var b strings.Builder
	b.WriteString("\n  " + formatter.Bold(m.plan.Project.Name) + "  " + formatter.SourceBadge(m.plan.Source) + "\n")

	if m.filtering || m.filter.Value() != "" {
		b.WriteString("  " + m.filter.View() + "\n")
	}
	if m.useCode != "" {
		b.WriteString("  " + formatter.Dim("use code:") + " " + formatter.StyleBlue.Render(m.useCode) + "\n")
	}
	b.WriteString("\n")

	rows := m.visibleRows()
	if len(rows) == 0 {
		b.WriteString("  " + formatter.Dim("Nothing to show.") + "\n")
	}

	for i, row := range rows {
		cursor := "  "
		if i == m.cursor {
			cursor = formatter.StyleGreen.Render("▸ ")
		}
		b.WriteString(cursor + m.renderRow(row) + "\n")
	}

	b.WriteString("\n" + m.renderFooter())
	b.WriteString("\n  " + formatter.Dim("↑/↓ move · enter collapse · / filter · u use code · esc clear · r reload · q quit") + "\n")
	return b.String()
}

func (m *browseModel) renderRow(row browseRow) string {
	switch {
	case row.parcel != nil:
		p := row.parcel
		detail := formatter.FormatAcres(p.Acres) + " ac"
		if p.IsResidential() && p.Units > 0 {
			detail += fmt.Sprintf(" · %d du", p.Units)
		}
		return "    " + formatter.StyleFg.Render(p.DisplayName) + "  " + formatter.Dim(detail)
	case row.phase != nil:
		marker := "▾"
		if m.collapsed[row.phase.ID] {
			marker = "▸"
		}
		return "  " + formatter.Dim(marker+" ") + formatter.StyleFg.Render(row.phase.DisplayName) +
			"  " + formatter.Dim(fmt.Sprintf("%d parcels", len(row.phase.Parcels)))
	default:
		marker := "▾"
		if m.collapsed[row.area.ID] {
			marker = "▸"
		}
		return formatter.Dim(marker+" ") + formatter.Bold(row.area.DisplayName)
	}
}

// renderFooter shows the rollup line for the filtered parcel set.
func (m *browseModel) renderFooter() string {
	res := view.Apply(m.plan.Areas, m.currentFilter())

	var acres float64
	var parcels, units int
	for _, r := range res.Rollups {
		acres += r.GrossAcres
		parcels += r.ParcelCount
		units += r.UnitSum
	}

	return fmt.Sprintf("  %s %s · %s %s · %s %s",
		formatter.Bold(formatter.FormatAcres(acres)), formatter.Dim("ac"),
		formatter.Bold(fmt.Sprintf("%d", parcels)), formatter.Dim("parcels"),
		formatter.Bold(fmt.Sprintf("%d", units)), formatter.Dim("units"))
}

// distinctUseCodes collects the type codes present in the tree, sorted.
func distinctUseCodes(areas []*domain.Area) []string {
	seen := make(map[string]bool)
	var codes []string
	for _, area := range areas {
		for _, phase := range area.Phases {
			for _, parcel := range phase.Parcels {
				if parcel.TypeCode != "" && !seen[parcel.TypeCode] {
					seen[parcel.TypeCode] = true
					codes = append(codes, parcel.TypeCode)
				}
			}
		}
	}
	sort.Strings(codes)
	return codes
}
