package cli

import (
	"context"
	"fmt"

	"github.com/alexanderramin/proposals/internal/cli/formatter"
	"github.com/alexanderramin/proposals/internal/importer"
	"github.com/spf13/cobra"
)

func newDiffCmd(app *App) *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "diff ID",
		Short: "Preview the changes saving a proposal file would record",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			id, err := resolveProposalID(ctx, app, args[0])
			if err != nil {
				return err
			}
			current, err := app.Proposals.Load(ctx, id)
			if err != nil {
				return err
			}
			if current == nil {
				return fmt.Errorf("proposal not found: %q", id)
			}

			f, err := importer.LoadProposalFile(file)
			if err != nil {
				return fmt.Errorf("reading proposal file: %w", err)
			}
			candidate, err := f.ToDomain()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			changes := app.Proposals.CompareVersions(current.Snapshot, candidate.Snapshot)
			if len(changes) == 0 {
				fmt.Fprintln(out, formatter.Dim("No changes against version "+fmt.Sprint(current.Version)+"."))
				return nil
			}
			fmt.Fprintln(out, formatter.Header(fmt.Sprintf("Changes against version %d", current.Version)))
			fmt.Fprintln(out, formatter.FormatChanges(changes))
			return nil
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "Proposal file (YAML or JSON)")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}
