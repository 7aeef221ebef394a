package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/alexanderramin/proposals/internal/cli/formatter"
	"github.com/alexanderramin/proposals/internal/query"
	"github.com/spf13/cobra"
)

const dateLayout = "2006-01-02"

func newListCmd(app *App) *cobra.Command {
	var (
		search   string
		from     string
		to       string
		kind     kindFlag
		page     int
		pageSize int
	)
	rng := rangeFlag{value: query.RangeAll}
	status := statusFlag{value: query.StatusAll}

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List saved proposals, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			now := app.now()

			fromDate, err := parseDate(from, now.Location())
			if err != nil {
				return fmt.Errorf("--from: %w", err)
			}
			toDate, err := parseDate(to, now.Location())
			if err != nil {
				return fmt.Errorf("--to: %w", err)
			}

			records, err := app.Proposals.Search(ctx, search)
			if err != nil {
				return err
			}

			size := app.pageSize()
			if pageSize > 0 {
				size = pageSize
			}
			b := query.NewBrowser(records, size)
			b.SetRange(rng.value)
			if !fromDate.IsZero() || !toDate.IsZero() {
				b.SetCustomRange(fromDate, toDate)
			}
			b.SetStatus(status.value)
			b.SetKind(kind.value)
			b.Goto(page)

			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatProposalList(b.Current(now), now))
			return nil
		},
	}

	cmd.Flags().StringVarP(&search, "search", "s", "", "Match client, project, company or contact (case-insensitive)")
	cmd.Flags().Var(&rng, "range", "Creation date range: all, today, last7, last30, custom")
	cmd.Flags().StringVar(&from, "from", "", "Custom range start (YYYY-MM-DD, inclusive)")
	cmd.Flags().StringVar(&to, "to", "", "Custom range end (YYYY-MM-DD, inclusive)")
	cmd.Flags().Var(&status, "status", "Status: all, recent, updated")
	cmd.Flags().Var(&kind, "kind", "Only this kind: pabx_sip, vm, service_desk, generic")
	cmd.Flags().IntVarP(&page, "page", "p", 1, "Page number")
	cmd.Flags().IntVar(&pageSize, "page-size", 0, "Proposals per page")

	return cmd
}

func parseDate(s string, loc *time.Location) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	t, err := time.ParseInLocation(dateLayout, s, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q (want YYYY-MM-DD)", s)
	}
	return t, nil
}
