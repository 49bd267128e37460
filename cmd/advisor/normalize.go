package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/tbxark/styleadvisor/criteria"
	"github.com/tbxark/styleadvisor/export"
)

func newNormalizeCmd() *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "normalize [file]",
		Short: "Normalize a raw criteria record",
		Long: `Parse a raw criteria record, as the advisor emits it at the end of a
conversation, and print the normalized criteria. Reads stdin when no file is given.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var (
				data []byte
				err  error
			)
			if len(args) == 1 {
				data, err = os.ReadFile(args[0])
			} else {
				data, err = io.ReadAll(cmd.InOrStdin())
			}
			if err != nil {
				return fmt.Errorf("failed to read record: %w", err)
			}
			c, err := criteria.ParseAndNormalize(string(data))
			if err != nil {
				return err
			}
			exporter, err := export.NewExporter(format)
			if err != nil {
				return err
			}
			return exporter.Export(c, cmd.OutOrStdout())
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "json", "output format: json, yaml or md")
	return cmd
}
