package main

import (
	"strconv"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

func officesCommand() *cobra.Command {
	var electionID int
	cmd := &cobra.Command{
		Use:   "offices",
		Short: "List the offices of the configured election",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			e, err := commonRun(false)
			if err != nil {
				return err
			}
			defer e.Close()

			if electionID <= 0 {
				electionID = e.cfg.Election.ID
			}
			offices, err := e.client.Offices(cmd.Context(), electionID)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(offices) == 0 {
				color.New(color.FgYellow).Fprintln(out, "no offices")
				return nil
			}
			table := tablewriter.NewWriter(out)
			table.SetHeader([]string{"ID", "Office"})
			for _, o := range offices {
				table.Append([]string{strconv.Itoa(o.ID), o.Name})
			}
			table.Render()
			return nil
		},
	}
	cmd.Flags().IntVar(&electionID, "election", 0, "election id (defaults to election.id)")
	return cmd
}
