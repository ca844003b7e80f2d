package main

import (
	"errors"
	"fmt"
	"sort"
	"strconv"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/jask/urna/internal/database/repository"
)

func auditCommand() *cobra.Command {
	var (
		limit   int
		kind    string
		session string
		summary bool
	)
	cmd := &cobra.Command{
		Use:   "audit",
		Short: "Show the local audit journal",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			e, err := commonRun(true)
			if err != nil {
				return err
			}
			defer e.Close()
			if e.audit == nil {
				return errors.New("audit journal disabled (audit.enabled = false)")
			}

			out := cmd.OutOrStdout()
			ctx := cmd.Context()
			if summary {
				counts, err := e.audit.Entries.CountByOutcome(ctx, kind)
				if err != nil {
					return err
				}
				table := tablewriter.NewWriter(out)
				table.SetHeader([]string{"Outcome", "Count"})
				outcomes := make([]string, 0, len(counts))
				for o := range counts {
					outcomes = append(outcomes, o)
				}
				sort.Strings(outcomes)
				for _, o := range outcomes {
					table.Append([]string{o, strconv.Itoa(counts[o])})
				}
				table.Render()
				return nil
			}

			entries, err := e.audit.Recent(ctx, repository.JournalFilters{
				SessionID: session,
				Kind:      kind,
				Limit:     limit,
			})
			if err != nil {
				return err
			}
			if len(entries) == 0 {
				color.New(color.FgYellow).Fprintln(out, "journal is empty")
				return nil
			}
			table := tablewriter.NewWriter(out)
			table.SetHeader([]string{"When", "Session", "Kind", "Outcome", "Detail", "Error"})
			for _, en := range entries {
				table.Append([]string{
					en.RecordedAt.Local().Format("2006-01-02 15:04:05"),
					en.SessionID,
					en.Kind,
					en.Outcome,
					en.Detail,
					en.Error,
				})
			}
			table.Render()
			fmt.Fprintf(out, "%d entries\n", len(entries))
			return nil
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "number of entries to show (0 = all)")
	cmd.Flags().StringVar(&kind, "kind", "", "only entries of this kind")
	cmd.Flags().StringVar(&session, "session", "", "only entries of this session id")
	cmd.Flags().BoolVar(&summary, "summary", false, "count entries by outcome")
	return cmd
}
