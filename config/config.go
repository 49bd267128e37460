// Package config loads advisor settings from an optional config file, a .env
// file and ADVISOR_* environment variables.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"github.com/tbxark/styleadvisor/criteria"
)

const (
	ProviderOpenAI = "openai"
	ProviderArk    = "ark"

	DefaultBaseURL   = "https://api.anthropic.com/v1/"
	DefaultModel     = "claude-3-haiku-20240307"
	DefaultMaxTokens = 256
	DefaultFormat    = "json"

	envPrefix = "ADVISOR"
)

var ErrMissingAPIKey = errors.New("missing API key: set api_key, ADVISOR_API_KEY or the provider key (ANTHROPIC_API_KEY, OPENAI_API_KEY, ARK_API_KEY)")

type Config struct {
	Provider               string         `mapstructure:"provider"`
	APIKey                 string         `mapstructure:"api_key"`
	BaseURL                string         `mapstructure:"base_url"`
	Model                  string         `mapstructure:"model"`
	MaxTokens              int            `mapstructure:"max_tokens"`
	InstructionAsSystem    bool           `mapstructure:"instruction_as_system"`
	RecoverMalformedRecord bool           `mapstructure:"recover_malformed_record"`
	Lang                   string         `mapstructure:"lang"`
	OpeningQuestion        string         `mapstructure:"opening_question"`
	Format                 string         `mapstructure:"format"`
	Archive                string         `mapstructure:"archive"`
	Defaults               map[string]any `mapstructure:"defaults"`
}

// provider -> env vars consulted, in order, when api_key is empty
var providerKeyEnv = map[string][]string{
	ProviderOpenAI: {"ANTHROPIC_API_KEY", "OPENAI_API_KEY"},
	ProviderArk:    {"ARK_API_KEY"},
}

// Load reads path (JSON or YAML) when given, otherwise an optional
// advisor.{yaml,json} in the working directory. Environment wins over the file.
func Load(path string) (*Config, error) {
	loadEnvFile()

	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("error reading config %s: %w", path, err)
		}
	} else {
		v.SetConfigName("advisor")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("error reading config: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	cfg.Provider = strings.ToLower(strings.TrimSpace(cfg.Provider))
	if cfg.APIKey == "" {
		cfg.APIKey = apiKeyFromEnv(cfg.Provider)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	slog.Debug("config loaded", "file", v.ConfigFileUsed(), "provider", cfg.Provider, "model", cfg.Model)
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("provider", ProviderOpenAI)
	v.SetDefault("api_key", "")
	v.SetDefault("base_url", DefaultBaseURL)
	v.SetDefault("model", DefaultModel)
	v.SetDefault("max_tokens", DefaultMaxTokens)
	v.SetDefault("instruction_as_system", false)
	v.SetDefault("recover_malformed_record", false)
	v.SetDefault("lang", "")
	v.SetDefault("opening_question", "")
	v.SetDefault("format", DefaultFormat)
	v.SetDefault("archive", "")
}

func loadEnvFile() {
	if _, err := os.Stat(".env"); err != nil {
		return
	}
	if err := godotenv.Load(".env"); err != nil {
		slog.Warn("failed to load .env", "err", err)
		return
	}
	slog.Debug("loaded .env")
}

func apiKeyFromEnv(provider string) string {
	for _, name := range providerKeyEnv[provider] {
		if val := os.Getenv(name); val != "" {
			return val
		}
	}
	return ""
}

// Validate checks everything except credentials, so commands that never
// reach the model (history, normalize) run without a key.
func (c *Config) Validate() error {
	if _, ok := providerKeyEnv[c.Provider]; !ok {
		return fmt.Errorf("unsupported provider %q (supported: openai, ark)", c.Provider)
	}
	if c.Model == "" {
		return errors.New("model is required")
	}
	if c.MaxTokens <= 0 {
		return fmt.Errorf("max_tokens must be positive, got %d", c.MaxTokens)
	}
	switch c.Format {
	case "json", "yaml", "yml", "md", "markdown":
	default:
		return fmt.Errorf("unsupported format %q", c.Format)
	}
	return nil
}

// RequireCredentials reports ErrMissingAPIKey when no key was resolved.
func (c *Config) RequireCredentials() error {
	if c.APIKey == "" {
		return ErrMissingAPIKey
	}
	return nil
}

// DefaultCriteria normalizes the defaults section like any raw record.
func (c *Config) DefaultCriteria() criteria.Criteria {
	return criteria.Normalize(c.Defaults)
}
