// Package provider builds the chat model selected by the configuration.
package provider

import (
	"context"
	"fmt"

	"github.com/cloudwego/eino-ext/components/model/ark"
	"github.com/cloudwego/eino-ext/components/model/openai"
	"github.com/cloudwego/eino/components/model"
	"github.com/tbxark/styleadvisor/config"
)

// NewChatModel returns an OpenAI-compatible model (Anthropic's compatibility
// endpoint by default) or a Volcengine Ark model.
func NewChatModel(ctx context.Context, cfg *config.Config) (model.ToolCallingChatModel, error) {
	if err := cfg.RequireCredentials(); err != nil {
		return nil, err
	}
	maxTokens := cfg.MaxTokens
	switch cfg.Provider {
	case config.ProviderOpenAI:
		cm, err := openai.NewChatModel(ctx, &openai.ChatModelConfig{
			APIKey:    cfg.APIKey,
			Model:     cfg.Model,
			BaseURL:   cfg.BaseURL,
			MaxTokens: &maxTokens,
		})
		if err != nil {
			return nil, fmt.Errorf("init openai chat model: %w", err)
		}
		return cm, nil
	case config.ProviderArk:
		arkConfig := &ark.ChatModelConfig{
			APIKey:    cfg.APIKey,
			Model:     cfg.Model,
			MaxTokens: &maxTokens,
		}
		if cfg.BaseURL != config.DefaultBaseURL {
			arkConfig.BaseURL = cfg.BaseURL
		}
		cm, err := ark.NewChatModel(ctx, arkConfig)
		if err != nil {
			return nil, fmt.Errorf("init ark chat model: %w", err)
		}
		return cm, nil
	default:
		return nil, fmt.Errorf("unsupported provider %q", cfg.Provider)
	}
}
