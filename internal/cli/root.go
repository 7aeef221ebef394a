package cli

import (
	"time"

	"github.com/alexanderramin/proposals/internal/metrics"
	"github.com/alexanderramin/proposals/internal/query"
	"github.com/alexanderramin/proposals/internal/service"
	"github.com/spf13/cobra"
)

// App holds what the commands need: the proposal service plus the
// process-level collaborators main wires in.
type App struct {
	Proposals service.ProposalService
	Metrics   *metrics.Metrics

	// PageSize is the default listing page size.
	PageSize int

	// IsInteractive reports whether stdin is a terminal. Destructive
	// commands only prompt when it returns true.
	IsInteractive func() bool
	// Confirm asks a yes/no question.
	Confirm func(prompt string) (bool, error)

	// Now defaults to time.Now.
	Now func() time.Time
}

func (a *App) now() time.Time {
	if a.Now != nil {
		return a.Now()
	}
	return time.Now()
}

func (a *App) pageSize() int {
	if a.PageSize > 0 {
		return a.PageSize
	}
	return query.DefaultPageSize
}

func (a *App) interactive() bool {
	return a.IsInteractive != nil && a.IsInteractive()
}

// NewRootCmd creates the top-level "proposals" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:           "proposals",
		Short:         "Versioned store for commercial proposals",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		newSaveCmd(app),
		newListCmd(app),
		newShowCmd(app),
		newHistoryCmd(app),
		newDiffCmd(app),
		newExportCmd(app),
		newDeleteCmd(app),
		newStatsCmd(app),
	)

	return root
}
