package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/jask/urna/internal/voting"
	"github.com/jask/urna/internal/workflow"
)

func uploadKeysCommand() *cobra.Command {
	var cryptoPath, privatePath, electionPath string
	cmd := &cobra.Command{
		Use:   "upload-keys",
		Short: "Upload the cryptography and private key files",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			e, err := commonRun(true)
			if err != nil {
				return err
			}
			defer e.Close()

			bundle, err := voting.ReadKeyBundle(cryptoPath, privatePath)
			if err != nil {
				return err
			}
			var dataset *voting.ElectionDataset
			if electionPath != "" {
				ds, err := voting.ReadElectionDataset(electionPath)
				if err != nil {
					return err
				}
				dataset = &ds
			}
			ev := e.runner().Run(cmd.Context(), workflow.UploadKeys{Bundle: bundle, Dataset: dataset})
			res, ok := ev.(workflow.KeysUploaded)
			if !ok {
				return fmt.Errorf("unexpected outcome %T", ev)
			}
			if res.Err != nil {
				return res.Err
			}
			out := cmd.OutOrStdout()
			color.New(color.FgGreen).Fprintln(out, "keys uploaded")
			fmt.Fprintf(out, "fingerprint: %s\n", bundle.Fingerprint())
			if res.Ack.Message != "" {
				fmt.Fprintln(out, res.Ack.Message)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&cryptoPath, "cryptography-key", "", "path to the cryptography key file")
	cmd.Flags().StringVar(&privatePath, "private-key", "", "path to the private key file")
	cmd.Flags().StringVar(&electionPath, "election-data", "", "optional election dataset sent with the keys")
	return cmd
}

func uploadElectionCommand() *cobra.Command {
	var path string
	cmd := &cobra.Command{
		Use:   "upload-election",
		Short: "Upload the election dataset",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			e, err := commonRun(true)
			if err != nil {
				return err
			}
			defer e.Close()

			ds, err := voting.ReadElectionDataset(path)
			if err != nil {
				return err
			}
			ev := e.runner().Run(cmd.Context(), workflow.UploadDataset{Dataset: ds})
			res, ok := ev.(workflow.DatasetUploaded)
			if !ok {
				return fmt.Errorf("unexpected outcome %T", ev)
			}
			if res.Err != nil {
				return res.Err
			}
			out := cmd.OutOrStdout()
			color.New(color.FgGreen).Fprintln(out, "election data uploaded")
			if res.Ack.Message != "" {
				fmt.Fprintln(out, res.Ack.Message)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&path, "file", "", "path to the election dataset")
	return cmd
}
