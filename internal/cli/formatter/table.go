package formatter

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const colGap = 2

type tableOptions struct {
	rightAlign map[int]bool
}

// TableOption adjusts how RenderTable lays out columns.
type TableOption func(*tableOptions)

// AlignRight right-justifies the given columns (money, sizes, counts).
func AlignRight(cols ...int) TableOption {
	return func(o *tableOptions) {
		for _, c := range cols {
			o.rightAlign[c] = true
		}
	}
}

// RenderTable renders an aligned table with a header separator line. Widths
// are measured on visible text so styled cells line up.
func RenderTable(headers []string, rows [][]string, opts ...TableOption) string {
	if len(headers) == 0 {
		return ""
	}
	o := tableOptions{rightAlign: map[int]bool{}}
	for _, opt := range opts {
		opt(&o)
	}

	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = lipgloss.Width(h)
	}
	for _, row := range rows {
		for i := 0; i < len(headers) && i < len(row); i++ {
			widths[i] = max(widths[i], lipgloss.Width(row[i]))
		}
	}

	var b strings.Builder

	styled := make([]string, len(headers))
	for i, h := range headers {
		styled[i] = StyleHeader.Render(h)
	}
	writeRow(&b, styled, widths, o.rightAlign)

	seps := make([]string, len(widths))
	for i, w := range widths {
		seps[i] = StyleDim.Render(strings.Repeat("─", w))
	}
	writeRow(&b, seps, widths, nil)

	for _, row := range rows {
		writeRow(&b, row, widths, o.rightAlign)
	}

	return b.String()
}

func writeRow(b *strings.Builder, cells []string, widths []int, right map[int]bool) {
	last := len(widths) - 1
	for i := range widths {
		cell := ""
		if i < len(cells) {
			cell = cells[i]
		}
		pad := max(widths[i]-lipgloss.Width(cell), 0)
		if right[i] {
			b.WriteString(strings.Repeat(" ", pad))
			b.WriteString(cell)
		} else {
			b.WriteString(cell)
			if i < last {
				b.WriteString(strings.Repeat(" ", pad))
			}
		}
		if i < last {
			b.WriteString(strings.Repeat(" ", colGap))
		}
	}
	b.WriteString("\n")
}
