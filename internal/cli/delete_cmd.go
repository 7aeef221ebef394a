package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

func newDeleteCmd(app *App) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:     "delete ID",
		Aliases: []string{"rm"},
		Short:   "Delete a proposal and all of its versions",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			id, err := resolveProposalID(ctx, app, args[0])
			if err != nil {
				return err
			}

			if !yes {
				if !app.interactive() || app.Confirm == nil {
					return errors.New("refusing to delete without --yes when not running interactively")
				}
				p, err := app.Proposals.Load(ctx, id)
				if err != nil {
					return err
				}
				label := id
				if p != nil && p.ClientName != "" {
					label = fmt.Sprintf("%s (%s, %d version(s))", p.ClientName, p.DisplayID(), p.Version)
				}
				ok, err := app.Confirm(fmt.Sprintf("Delete proposal %s? This cannot be undone.", label))
				if err != nil {
					return err
				}
				if !ok {
					fmt.Fprintln(cmd.OutOrStdout(), "Cancelled.")
					return nil
				}
			}

			deleted, err := app.Proposals.Delete(ctx, id)
			if err != nil {
				return err
			}
			if !deleted {
				return fmt.Errorf("proposal not found: %q", id)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted proposal %s\n", id)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip the confirmation prompt")
	return cmd
}
