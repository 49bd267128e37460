package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"strings"

	"github.com/cloudwego/eino/adk"
	"github.com/cloudwego/eino/schema"
	"github.com/tbxark/styleadvisor"
	"github.com/tbxark/styleadvisor/agent"
	"github.com/tbxark/styleadvisor/config"
	"github.com/tbxark/styleadvisor/dialogue"
	"github.com/tbxark/styleadvisor/export"
	"github.com/tbxark/styleadvisor/internal/provider"
)

func main() {
	conf := flag.String("config", "", "path to config file")
	flag.Parse()
	cfg, err := config.Load(*conf)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	err = startApp(context.Background(), cfg)
	if err != nil {
		log.Fatalf("start app: %v", err)
	}
}

func startApp(ctx context.Context, cfg *config.Config) error {
	slog.SetLogLoggerLevel(slog.LevelInfo)
	cm, err := provider.NewChatModel(ctx, cfg)
	if err != nil {
		return err
	}
	engine, err := styleadvisor.NewEngine(cm, styleadvisor.WithGeneratorOptions(
		dialogue.WithModelName(cfg.Model),
		dialogue.WithMaxTokens(cfg.MaxTokens),
	))
	if err != nil {
		return err
	}
	advisor := agent.NewAgent(
		"StyleAdvisor",
		"An agent that collects clothing preferences for product search",
		engine,
		agent.NewMemorySessionStore(engine),
	)
	runner := adk.NewRunner(ctx, adk.RunnerConfig{
		Agent: advisor,
	})
	handoff := export.NewWriter(&export.MarkdownExporter{}, os.Stdout)

	chatCtx := agent.WithSessionKey(ctx, "console")
	session, err := advisor.Sessions().Load(chatCtx)
	if err != nil {
		return err
	}
	fmt.Printf("Advisor: %s\n", session.LatestQuestion())

	reader := bufio.NewReader(os.Stdin)
	for {
		fmt.Print("You: ")
		input, rErr := reader.ReadString('\n')
		if rErr != nil {
			fmt.Println("Input closed. Bye.")
			return nil
		}
		iter := runner.Run(chatCtx, []adk.Message{schema.UserMessage(strings.TrimSpace(input))})
		for {
			event, ok := iter.Next()
			if !ok {
				break
			}
			if event.Err != nil {
				return event.Err
			}
			msg, mErr := event.Output.MessageOutput.GetMessage()
			if mErr != nil {
				return mErr
			}
			fmt.Printf("\nAdvisor: %v\n======\n", msg.Content)
		}

		session, err = advisor.Sessions().Load(chatCtx)
		if err != nil {
			return err
		}
		if !session.Terminated() {
			continue
		}
		if result := session.Result(); result != nil {
			if err := handoff.Accept(chatCtx, result); err != nil {
				return err
			}
		}
		return advisor.Sessions().Clear(chatCtx)
	}
}
