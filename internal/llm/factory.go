package llm

import (
	"context"
	"fmt"

	"github.com/BetterCallFirewall/ShopAudit/internal/config"
	"go.uber.org/zap"
)

// NewProvider builds the provider selected in the configuration.
// Supports: gemini, openai, ollama, localai, lm-studio
func NewProvider(ctx context.Context, cfg config.LLMConfig, logger *zap.Logger) (Provider, error) {
	switch cfg.Provider {
	case "gemini":
		return NewGeminiProvider(ctx, GeminiConfig{
			APIKey:        cfg.ApiKey,
			Model:         cfg.Model,
			BaseURL:       cfg.BaseURL,
			DisableSearch: cfg.DisableSearch,
		}, logger)

	case "ollama":
		if cfg.BaseURL == "" {
			return nil, fmt.Errorf("%s provider requires a base URL", cfg.Provider)
		}
		return NewGenericProvider(GenericConfig{
			Name:    "ollama-" + cfg.Model,
			Model:   cfg.Model,
			BaseURL: cfg.BaseURL,
			Format:  FormatOllama,
		}), nil

	case "openai", "localai", "lm-studio":
		if cfg.BaseURL == "" {
			return nil, fmt.Errorf("%s provider requires a base URL", cfg.Provider)
		}
		return NewGenericProvider(GenericConfig{
			Name:    cfg.Provider,
			Model:   cfg.Model,
			BaseURL: cfg.BaseURL,
			APIKey:  cfg.ApiKey,
			Format:  FormatOpenAI,
		}), nil

	default:
		return nil, fmt.Errorf("unsupported provider: %s", cfg.Provider)
	}
}
