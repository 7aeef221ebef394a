package cli

import (
	"context"
	"fmt"

	"github.com/alexanderramin/proposals/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newHistoryCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "history ID",
		Short: "Show archived versions of a proposal, oldest first",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			id, err := resolveProposalID(ctx, app, args[0])
			if err != nil {
				return err
			}
			p, err := app.Proposals.Load(ctx, id)
			if err != nil {
				return err
			}
			if p == nil {
				return fmt.Errorf("proposal not found: %q", id)
			}
			entries, err := app.Proposals.GetVersionHistory(ctx, id)
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatHistory(p, entries))
			return nil
		},
	}
}
