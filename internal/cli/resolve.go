package cli

import (
	"context"
	"fmt"
	"strings"
)

// resolveProposalID resolves an exact id or a unique id prefix, such as the
// 8-character form shown in listings.
func resolveProposalID(ctx context.Context, app *App, input string) (string, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return "", fmt.Errorf("proposal ID is required")
	}

	p, err := app.Proposals.Load(ctx, input)
	if err != nil {
		return "", err
	}
	if p != nil {
		return p.ID, nil
	}

	proposals, err := app.Proposals.List(ctx)
	if err != nil {
		return "", err
	}

	var matches []string
	for _, p := range proposals {
		if strings.HasPrefix(p.ID, input) {
			matches = append(matches, p.ID)
		}
	}

	switch len(matches) {
	case 0:
		return "", fmt.Errorf("proposal not found: %q", input)
	case 1:
		return matches[0], nil
	default:
		return "", fmt.Errorf("proposal ID prefix %q is ambiguous (%d matches)", input, len(matches))
	}
}
