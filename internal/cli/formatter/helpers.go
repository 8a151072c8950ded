package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/openparcel/parcelkit/internal/domain"
)

// RenderBox wraps content in a rounded-border box with an optional title.
func RenderBox(title string, content string) string {
	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorDim).
		PaddingLeft(2).
		PaddingRight(2).
		PaddingTop(1).
		PaddingBottom(1)

	if title != "" {
		titleRendered := StyleHeader.Render(strings.ToUpper(title))
		return boxStyle.Render(titleRendered + "\n\n" + content)
	}

	return boxStyle.Render(content)
}

// Undefined is the display token for metrics whose inputs make them
// meaningless. Zero is a real value; this is the absence of one.
const Undefined = "--"

// FormatMetric renders a derived metric, or Undefined when ok is false.
func FormatMetric(value float64, ok bool, decimals int) string {
	if !ok {
		return Dim(Undefined)
	}
	return fmt.Sprintf("%.*f", decimals, value)
}

// FormatAcres renders an acreage with one decimal; zero renders as "0.0".
func FormatAcres(acres float64) string {
	return fmt.Sprintf("%.1f", acres)
}

// CompletenessMark renders the taxonomy completeness indicator: a green
// check for fully resolved parcels, an amber warning otherwise.
func CompletenessMark(complete bool) string {
	if complete {
		return StyleGreen.Render("✔")
	}
	return StyleYellow.Render("!")
}

// SourceBadge labels which upstream representation a tree was built from.
func SourceBadge(kind domain.SourceKind) string {
	switch kind {
	case domain.SourceContainer:
		return StyleBlue.Render("containers")
	case domain.SourceLegacy:
		return StylePurple.Render("legacy")
	default:
		return Dim("none")
	}
}

// FamilyBadge returns a colored land-use family label.
func FamilyBadge(name string) string {
	switch {
	case name == "":
		return Dim(Undefined)
	case name == domain.FamilyResidential:
		return StyleGreen.Render(name)
	default:
		return StylePurple.Render(name)
	}
}

// TruncID returns the first 8 characters of an ID, dimmed.
func TruncID(id string) string {
	if len(id) > 8 {
		id = id[:8]
	}
	return StyleDim.Render(id)
}

// HumanTimestamp returns a human-friendly relative timestamp string.
func HumanTimestamp(t time.Time) string {
	diff := time.Since(t)

	switch {
	case diff < 0:
		return t.Format("Jan 2, 2006")
	case diff < time.Minute:
		return "Just now"
	case diff < time.Hour:
		return fmt.Sprintf("%dm ago", int(diff.Minutes()))
	case diff < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(diff.Hours()))
	default:
		return t.Format("Jan 2, 2006")
	}
}
