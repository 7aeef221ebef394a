package cli

import (
	"github.com/alexanderramin/proposals/internal/cli/formatter"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

func huhTheme() *huh.Theme {
	t := huh.ThemeBase()

	t.Focused.Title = lipgloss.NewStyle().Foreground(formatter.ColorHeader).Bold(true)
	t.Focused.Description = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Focused.FocusedButton = lipgloss.NewStyle().Foreground(formatter.ColorFg).Background(formatter.ColorRed).Padding(0, 1)
	t.Focused.BlurredButton = lipgloss.NewStyle().Foreground(formatter.ColorDim).Padding(0, 1)

	t.Blurred.Title = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	return t
}

// newConfirmForm builds the yes/no form ConfirmPrompt runs. Keep is the
// default answer.
func newConfirmForm(prompt string, result *bool) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(prompt).
				Affirmative("Delete").
				Negative("Keep").
				Value(result),
		),
	).WithTheme(huhTheme()).WithShowHelp(false)
}

// ConfirmPrompt asks prompt on the terminal and returns the answer.
func ConfirmPrompt(prompt string) (bool, error) {
	var ok bool
	if err := newConfirmForm(prompt, &ok).Run(); err != nil {
		return false, err
	}
	return ok, nil
}
