package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/alexanderramin/proposals/internal/domain"
	"github.com/alexanderramin/proposals/internal/importer"
	"github.com/spf13/cobra"
)

func newSaveCmd(app *App) *cobra.Command {
	var (
		file          string
		document      string
		id            string
		expectVersion int
		changes       []string
	)

	cmd := &cobra.Command{
		Use:   "save",
		Short: "Save a proposal file as a new record or a new version",
		Long: `Save reads a proposal file (YAML or JSON) and stores it.

Without an id, or with an id that is not stored, a new record is created.
With a stored id, the current state is archived and the version is bumped.
The archived entry records the changes derived from the two snapshots
unless --change is given.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			p, err := loadProposalInput(file, document)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("id") {
				p.ID = id
			}
			if cmd.Flags().Changed("expect-version") {
				p.Version = expectVersion
			}

			var savedID string
			if cmd.Flags().Changed("change") {
				savedID, err = app.Proposals.SaveWithChanges(ctx, p, changes)
			} else {
				savedID, err = app.Proposals.Save(ctx, p)
			}
			if err != nil {
				return err
			}

			saved, err := app.Proposals.Load(ctx, savedID)
			if err != nil {
				return err
			}
			if saved == nil {
				return fmt.Errorf("proposal %s vanished after save", savedID)
			}

			out := cmd.OutOrStdout()
			if saved.Version == 1 {
				fmt.Fprintf(out, "Created proposal %s (%s)\n", saved.ID, saved.ClientName)
				return nil
			}
			fmt.Fprintf(out, "Saved proposal %s as version %d\n", saved.ID, saved.Version)
			if n := len(saved.VersionHistory); n > 0 {
				last := saved.VersionHistory[n-1]
				if len(last.Changes) > 0 {
					fmt.Fprintln(out, "Changes since the previous version:")
					for _, c := range last.Changes {
						fmt.Fprintf(out, "  • %s\n", c)
					}
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "Proposal file (YAML or JSON)")
	cmd.Flags().StringVar(&document, "document", "", "Rendered document to store (overrides the file's document)")
	cmd.Flags().StringVar(&id, "id", "", "Proposal ID to update (overrides the file's id)")
	cmd.Flags().IntVar(&expectVersion, "expect-version", 0, "Fail unless the stored version equals this")
	cmd.Flags().StringArrayVar(&changes, "change", nil, "Change description to record instead of the derived ones (repeatable)")
	_ = cmd.MarkFlagRequired("file")

	return cmd
}

// loadProposalInput reads a proposal file and its document. documentPath,
// when set, replaces the document the file names.
func loadProposalInput(path, documentPath string) (*domain.SavedProposal, error) {
	f, err := importer.LoadProposalFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading proposal file: %w", err)
	}
	p, err := f.ToDomain()
	if err != nil {
		return nil, err
	}

	if documentPath == "" {
		documentPath = f.DocumentPath()
	}
	if documentPath != "" {
		doc, err := os.ReadFile(documentPath)
		if err != nil {
			return nil, fmt.Errorf("reading document: %w", err)
		}
		p.Document = doc
	}
	return p, nil
}
