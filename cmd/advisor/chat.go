package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/cloudwego/eino/components/model"
	"github.com/spf13/cobra"
	"github.com/tbxark/styleadvisor"
	"github.com/tbxark/styleadvisor/config"
	"github.com/tbxark/styleadvisor/criteria"
	"github.com/tbxark/styleadvisor/dialogue"
	"github.com/tbxark/styleadvisor/export"
	"github.com/tbxark/styleadvisor/internal/provider"
)

type chatOptions struct {
	format  string
	out     string
	outDir  string
	archive string
}

func newChatCmd(global *globalOptions) *cobra.Command {
	opts := &chatOptions{}
	cmd := &cobra.Command{
		Use:   "chat",
		Short: "Start a conversation with the shopping advisor",
		Long: `Start a conversation with the shopping advisor on the terminal.

Type exit, quit or stop to leave without a result. When the advisor has
collected everything it needs, the criteria are exported in the chosen format
and, when an archive is configured, appended to it. Output files are only
created once a record exists.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(global.configPath)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("format") {
				cfg.Format = opts.format
			}
			if cmd.Flags().Changed("archive") {
				cfg.Archive = opts.archive
			}

			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			chatModel, err := provider.NewChatModel(ctx, cfg)
			if err != nil {
				return err
			}
			engine, err := styleadvisor.NewEngine(chatModel, engineOptions(cfg, chatModel)...)
			if err != nil {
				return err
			}

			consumer, closeConsumer, err := buildConsumer(cfg, opts, cmd.OutOrStdout())
			if err != nil {
				return err
			}
			defer closeConsumer()

			return runChat(ctx, engine, newStyledConsole(cmd.InOrStdin(), cmd.OutOrStdout()), cfg.DefaultCriteria(), consumer, cmd.ErrOrStderr())
		},
	}
	cmd.Flags().StringVarP(&opts.format, "format", "f", config.DefaultFormat, "output format: json, yaml or md")
	cmd.Flags().StringVarP(&opts.out, "out", "o", "", "write the criteria to this file instead of stdout")
	cmd.Flags().StringVar(&opts.outDir, "out-dir", "", "write the criteria to a timestamped file in this directory")
	cmd.Flags().StringVar(&opts.archive, "archive", "", "append completed criteria to this BoltDB archive")
	cmd.MarkFlagsMutuallyExclusive("out", "out-dir")
	return cmd
}

func engineOptions(cfg *config.Config, chatModel model.ToolCallingChatModel) []styleadvisor.Option {
	opts := []styleadvisor.Option{
		styleadvisor.WithGeneratorOptions(
			dialogue.WithModelName(cfg.Model),
			dialogue.WithMaxTokens(cfg.MaxTokens),
			dialogue.WithInstructionAsSystem(cfg.InstructionAsSystem),
		),
	}
	if cfg.Lang != "" {
		opts = append(opts, styleadvisor.WithInstructionOptions(dialogue.WithInstructionLang(cfg.Lang)))
	}
	if cfg.OpeningQuestion != "" {
		opts = append(opts, styleadvisor.WithOpeningQuestion(cfg.OpeningQuestion))
	}
	if cfg.RecoverMalformedRecord {
		opts = append(opts, styleadvisor.WithRecordRecovery(chatModel))
	}
	return opts
}

func buildConsumer(cfg *config.Config, opts *chatOptions, stdout io.Writer) (export.Consumer, func(), error) {
	exporter, err := export.NewExporter(cfg.Format)
	if err != nil {
		return nil, nil, err
	}
	var primary export.Consumer
	switch {
	case opts.out != "":
		primary = export.NewFile(exporter, opts.out)
	case opts.outDir != "":
		primary = export.NewFileInDir(exporter, opts.outDir)
	default:
		primary = export.NewWriter(exporter, stdout)
	}
	consumers := export.Multi{primary}
	if cfg.Archive == "" {
		return consumers, func() {}, nil
	}
	archive, err := export.OpenArchive(cfg.Archive)
	if err != nil {
		return nil, nil, err
	}
	consumers = append(consumers, archive)
	return consumers, func() {
		if err := archive.Close(); err != nil {
			slog.Warn("failed to close archive", "err", err)
		}
	}, nil
}

// runChat runs one session and hands a completed record to consumer.
func runChat(ctx context.Context, engine *styleadvisor.Engine, console styleadvisor.Console, defaults criteria.Criteria, consumer export.Consumer, status io.Writer) error {
	session := engine.NewSession()
	result, err := engine.Run(ctx, session, console)
	if err != nil {
		return err
	}
	if result == nil {
		slog.Debug("session ended without criteria", "session_id", session.ID)
		return nil
	}
	final, err := criteria.ApplyDefaults(*result, defaults)
	if err != nil {
		return err
	}
	if err := consumer.Accept(ctx, &final); err != nil {
		return fmt.Errorf("failed to hand off criteria: %w", err)
	}
	_, _ = fmt.Fprintln(status, successStyle.Render(fmt.Sprintf("Criteria collected after %d service call(s).", session.ServiceCalls())))
	return nil
}
