package cli

import (
	"context"
	"fmt"

	"github.com/alexanderramin/proposals/internal/cli/formatter"
	"github.com/alexanderramin/proposals/internal/metrics"
	"github.com/spf13/cobra"
)

func newStatsCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show storage usage and use-case counters",
		RunE: func(cmd *cobra.Command, args []string) error {
			usage, err := app.Proposals.Usage(context.Background())
			if err != nil {
				return err
			}

			var counts []metrics.UseCaseCount
			if app.Metrics != nil {
				app.Metrics.SetUsage(usage)
				counts, err = app.Metrics.UseCaseCounts()
				if err != nil {
					return err
				}
			}

			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatUsage(usage, counts))
			return nil
		},
	}
}
