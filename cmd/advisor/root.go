package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
)

var version = "dev"

var (
	advisorStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("212"))
	userStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("62"))
	noticeStyle = lipgloss.NewStyle().
			Italic(true).
			Foreground(lipgloss.Color("243"))
	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42")).
			Bold(true)
	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")).
			Bold(true)
)

// globalOptions are the persistent flags shared by every subcommand.
type globalOptions struct {
	configPath string
	verbose    bool
}

func newRootCmd() *cobra.Command {
	opts := &globalOptions{}
	cmd := &cobra.Command{
		Use:   "advisor",
		Short: "Collect clothing preferences through a chat with a shopping advisor",
		Long: `A conversational shopping advisor that asks about the clothing you are
looking for and hands a normalized criteria record to product search.

Quick Start:
  advisor chat                         # chat, then print the criteria as JSON
  advisor chat --format md --out c.md  # write a markdown summary
  advisor chat --out-dir results       # one file per session, named by format
  advisor normalize record.json        # normalize a raw record offline
  advisor schema                       # print the raw record schema
  advisor history                      # list the archived criteria`,
		Version:      version,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			setVerbose(opts.verbose)
		},
	}
	cmd.PersistentFlags().StringVar(&opts.configPath, "config", "", "path to a JSON or YAML config file (default ./advisor.yaml if present)")
	cmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "enable debug logging")
	cmd.SetVersionTemplate(`{{printf "%s\n" .Version}}`)

	cmd.AddCommand(
		newChatCmd(opts),
		newNormalizeCmd(),
		newSchemaCmd(),
		newHistoryCmd(opts),
	)
	return cmd
}

func Execute() {
	if err := newRootCmd().Execute(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, errorStyle.Render("Error: "+err.Error()))
		os.Exit(1)
	}
}

func setVerbose(enabled bool) {
	if enabled {
		slog.SetLogLoggerLevel(slog.LevelDebug)
	} else {
		slog.SetLogLoggerLevel(slog.LevelWarn)
	}
}
