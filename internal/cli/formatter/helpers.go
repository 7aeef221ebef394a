package formatter

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
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
		return boxStyle.Render(StyleHeader.Render(strings.ToUpper(title)) + "\n\n" + content)
	}
	return boxStyle.Render(content)
}

// RelativeDateFrom describes t relative to now ("Today", "3d ago", "2w ago").
// Proposals only ever carry past dates, so future dates fall back to a
// calendar date.
func RelativeDateFrom(t, now time.Time) string {
	days := int(math.Round(now.Sub(t).Hours() / 24))
	switch {
	case days < 0:
		return t.Format("Jan 2, 2006")
	case days == 0:
		return "Today"
	case days == 1:
		return "Yesterday"
	case days < 14:
		return fmt.Sprintf("%dd ago", days)
	case days < 60:
		return fmt.Sprintf("%dw ago", days/7)
	default:
		return fmt.Sprintf("%dmo ago", days/30)
	}
}

// Timestamp renders t in the viewer's local zone to the minute.
func Timestamp(t time.Time) string {
	if t.IsZero() {
		return "--"
	}
	return t.Local().Format("2006-01-02 15:04")
}

// Money renders an amount with thousands separators and two decimals.
func Money(v float64) string {
	return humanize.FormatFloat("#,###.##", v)
}

// Size renders a byte count ("0 B", "12 kB").
func Size(n int64) string {
	if n <= 0 {
		return "0 B"
	}
	return humanize.Bytes(uint64(n))
}

// TruncID returns the first 8 characters of an ID, dimmed.
func TruncID(id string) string {
	if len(id) > 8 {
		id = id[:8]
	}
	return StyleDim.Render(id)
}

// Fallback returns s, or a dimmed "--" when s is blank.
func Fallback(s string) string {
	if strings.TrimSpace(s) == "" {
		return Dim("--")
	}
	return s
}
