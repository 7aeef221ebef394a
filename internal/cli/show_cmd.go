package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/alexanderramin/proposals/internal/cli/formatter"
	"github.com/alexanderramin/proposals/internal/domain"
	"github.com/alexanderramin/proposals/internal/importer"
	"github.com/spf13/cobra"
)

func newShowCmd(app *App) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "show ID",
		Short: "Show the current state of a proposal",
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

			out := cmd.OutOrStdout()
			switch output {
			case "", "text":
				fmt.Fprintln(out, formatter.FormatProposalDetail(p, app.now()))
			case "json":
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(newProposalView(p))
			case "yaml":
				data, err := importer.FromDomain(p).Marshal()
				if err != nil {
					return err
				}
				_, err = out.Write(data)
				return err
			default:
				return fmt.Errorf("unknown output format %q (want text, json or yaml)", output)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "text", "Output format: text, json, yaml")
	return cmd
}

// proposalView is the JSON form of a record. Documents are reported by size
// only; use export for the bytes.
type proposalView struct {
	ID           string                  `json:"id"`
	Kind         domain.ProposalKind     `json:"kind"`
	ClientName   string                  `json:"clientName"`
	ProjectName  string                  `json:"projectName"`
	TotalValue   float64                 `json:"totalValue"`
	Version      int                     `json:"version"`
	CreatedAt    time.Time               `json:"createdAt"`
	UpdatedAt    time.Time               `json:"updatedAt"`
	DocumentSize int64                   `json:"documentSize"`
	Client       domain.ClientInfo       `json:"client"`
	Snapshot     domain.ProposalSnapshot `json:"snapshot"`
	History      []versionView           `json:"versionHistory"`
}

type versionView struct {
	Version      int       `json:"version"`
	CreatedAt    time.Time `json:"createdAt"`
	Changes      []string  `json:"changes"`
	DocumentSize int64     `json:"documentSize"`
}

func newProposalView(p *domain.SavedProposal) proposalView {
	v := proposalView{
		ID:           p.ID,
		Kind:         p.Kind,
		ClientName:   p.ClientName,
		ProjectName:  p.ProjectName,
		TotalValue:   p.TotalValue,
		Version:      p.Version,
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
		DocumentSize: p.DocumentSize,
		Client:       p.Client,
		Snapshot:     p.Snapshot,
		History:      make([]versionView, 0, len(p.VersionHistory)),
	}
	for _, e := range p.VersionHistory {
		v.History = append(v.History, versionView{
			Version:      e.Version,
			CreatedAt:    e.CreatedAt,
			Changes:      e.Changes,
			DocumentSize: e.DocumentSize,
		})
	}
	return v
}
