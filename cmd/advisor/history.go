package main

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"github.com/tbxark/styleadvisor/config"
	"github.com/tbxark/styleadvisor/export"
)

func newHistoryCmd(global *globalOptions) *cobra.Command {
	var archivePath string
	cmd := &cobra.Command{
		Use:   "history",
		Short: "List criteria stored in the archive",
		Long: `List the criteria stored in the BoltDB archive. Works offline: no API
key is needed.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path := archivePath
			if path == "" {
				cfg, err := config.Load(global.configPath)
				if err != nil {
					return err
				}
				path = cfg.Archive
			}
			if path == "" {
				return errors.New("no archive configured: pass --archive or set archive in the config")
			}
			archive, err := export.OpenArchive(path)
			if err != nil {
				return err
			}
			defer func() { _ = archive.Close() }()

			records, err := archive.List()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(records) == 0 {
				_, err = out.Write([]byte(noticeStyle.Render("No criteria archived yet.") + "\n"))
				return err
			}
			table := tablewriter.NewTable(out)
			table.Header("#", "Created", "Type", "Style", "Season", "Budget", "Colors")
			for _, r := range records {
				budget := make([]string, 0, len(r.Criteria.Budget))
				for _, b := range r.Criteria.Budget {
					budget = append(budget, strconv.FormatFloat(b, 'f', -1, 64))
				}
				if err := table.Append(
					strconv.FormatUint(r.Seq, 10),
					r.CreatedAt.Local().Format(time.DateTime),
					r.Criteria.Type,
					r.Criteria.Style,
					r.Criteria.Season,
					strings.Join(budget, " - "),
					strings.Join(r.Criteria.Colors, ", "),
				); err != nil {
					return err
				}
			}
			return table.Render()
		},
	}
	cmd.Flags().StringVar(&archivePath, "archive", "", "path to the BoltDB archive")
	return cmd
}
