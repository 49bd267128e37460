package testcases

import (
	"context"
	"os"
	"testing"

	"github.com/cloudwego/eino/components/model"
	"github.com/tbxark/styleadvisor"
	"github.com/tbxark/styleadvisor/config"
	"github.com/tbxark/styleadvisor/dialogue"
	"github.com/tbxark/styleadvisor/internal/provider"
)

func InitChatModel(t *testing.T) (model.ToolCallingChatModel, *config.Config) {
	if os.Getenv("STYLEADVISOR_RUN_LIVE_TESTS") != "1" {
		t.Skip("set STYLEADVISOR_RUN_LIVE_TESTS=1 to run live LLM tests")
		return nil, nil
	}
	path := os.Getenv("STYLEADVISOR_CONFIG")
	cfg, err := config.Load(path)
	if err != nil {
		t.Skipf("failed to load config: %v", err)
		return nil, nil
	}
	chatModel, err := provider.NewChatModel(context.Background(), cfg)
	if err != nil {
		t.Fatalf("failed to init chat model: %v", err)
		return nil, nil
	}
	return chatModel, cfg
}

func NewTestEngine(t *testing.T, opts ...styleadvisor.Option) *styleadvisor.Engine {
	chatModel, cfg := InitChatModel(t)
	if chatModel == nil {
		return nil
	}
	base := []styleadvisor.Option{
		styleadvisor.WithGeneratorOptions(
			dialogue.WithModelName(cfg.Model),
			dialogue.WithMaxTokens(cfg.MaxTokens),
		),
		styleadvisor.WithRecordRecovery(chatModel),
	}
	engine, err := styleadvisor.NewEngine(chatModel, append(base, opts...)...)
	if err != nil {
		t.Fatalf("failed to create engine: %v", err)
	}
	return engine
}
