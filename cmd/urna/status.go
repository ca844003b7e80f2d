package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/jask/urna/internal/backend"
)

func statusCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Report whether the backend holds election keys",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			e, err := commonRun(false)
			if err != nil {
				return err
			}
			defer e.Close()

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "backend: %s\n", e.cfg.Backend.URL)
			present, err := e.client.KeysStatus(cmd.Context())
			switch {
			case backend.IsTransport(err):
				color.New(color.FgRed).Fprintln(out, "unreachable")
				return err
			case err != nil:
				color.New(color.FgRed).Fprintln(out, "error")
				return err
			case present:
				color.New(color.FgGreen).Fprintln(out, "keys present")
			default:
				color.New(color.FgYellow).Fprintln(out, "keys missing")
			}
			return nil
		},
	}
}
