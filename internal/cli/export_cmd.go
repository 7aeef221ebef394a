package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/alexanderramin/proposals/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newExportCmd(app *App) *cobra.Command {
	var (
		outPath string
		version int
	)

	cmd := &cobra.Command{
		Use:   "export ID",
		Short: "Write the stored document of a proposal to a file",
		Long: `Export writes the document of the current version, or of an archived
version with --version. Use --out - to write to standard output.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			id, err := resolveProposalID(ctx, app, args[0])
			if err != nil {
				return err
			}
			data, err := app.Proposals.ExportDocument(ctx, id, version)
			if err != nil {
				return err
			}

			if outPath == "-" {
				_, err := cmd.OutOrStdout().Write(data)
				return err
			}
			if err := os.WriteFile(outPath, data, 0o644); err != nil {
				return fmt.Errorf("writing document: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s to %s\n", formatter.Size(int64(len(data))), outPath)
			return nil
		},
	}

	cmd.Flags().StringVarP(&outPath, "out", "o", "", "Destination path, or - for stdout")
	cmd.Flags().IntVar(&version, "version", 0, "Archived version to export (default: current)")
	_ = cmd.MarkFlagRequired("out")
	return cmd
}
