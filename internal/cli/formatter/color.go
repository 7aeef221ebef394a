package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/proposals/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

// Gruvbox-inspired color palette.
var (
	ColorGreen  = lipgloss.Color("#8ec07c")
	ColorYellow = lipgloss.Color("#fabd2f")
	ColorRed    = lipgloss.Color("#fb4934")
	ColorBlue   = lipgloss.Color("#83a598")
	ColorPurple = lipgloss.Color("#d3869b")
	ColorDim    = lipgloss.Color("#928374")
	ColorFg     = lipgloss.Color("#ebdbb2")
	ColorHeader = lipgloss.Color("#fe8019")
)

var (
	StyleGreen  = lipgloss.NewStyle().Foreground(ColorGreen)
	StyleYellow = lipgloss.NewStyle().Foreground(ColorYellow)
	StyleRed    = lipgloss.NewStyle().Foreground(ColorRed)
	StyleBlue   = lipgloss.NewStyle().Foreground(ColorBlue)
	StylePurple = lipgloss.NewStyle().Foreground(ColorPurple)
	StyleDim    = lipgloss.NewStyle().Foreground(ColorDim)
	StyleFg     = lipgloss.NewStyle().Foreground(ColorFg)
	StyleHeader = lipgloss.NewStyle().Foreground(ColorHeader).Bold(true)
	StyleBold   = lipgloss.NewStyle().Foreground(ColorFg).Bold(true)
)

// KindBadge returns the service line of a proposal as a colored label.
func KindBadge(kind domain.ProposalKind) string {
	switch kind {
	case domain.KindPABXSIP:
		return StyleBlue.Render("PABX/SIP")
	case domain.KindVM:
		return StylePurple.Render("VM")
	case domain.KindServiceDesk:
		return StyleYellow.Render("Service Desk")
	case domain.KindGeneric, "":
		return StyleDim.Render("Generic")
	default:
		return StyleDim.Render(string(kind))
	}
}

// StatusPill marks a record as new (created within the recent window) and/or
// edited since creation.
func StatusPill(p *domain.SavedProposal, now time.Time) string {
	var parts []string
	if p.IsRecent(now) {
		parts = append(parts, StyleGreen.Render("● New"))
	}
	if p.WasUpdated() {
		parts = append(parts, StyleYellow.Render(fmt.Sprintf("✎ v%d", p.Version)))
	}
	if len(parts) == 0 {
		return StyleDim.Render(fmt.Sprintf("v%d", p.Version))
	}
	return strings.Join(parts, " ")
}

// Header renders a section header with the orange header style and an underline.
func Header(text string) string {
	upper := strings.ToUpper(text)
	line := strings.Repeat("─", lipgloss.Width(upper))
	return fmt.Sprintf("%s\n%s", StyleHeader.Render(upper), StyleDim.Render(line))
}

// Dim renders text in the muted color.
func Dim(text string) string {
	return StyleDim.Render(text)
}

// Bold renders text in bold with the foreground color.
func Bold(text string) string {
	return StyleBold.Render(text)
}
