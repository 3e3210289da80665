package llm

import (
	"context"
	"fmt"
	"log/slog"
)

// New builds the configured client. It returns a nil client and no error
// when no provider is configured, so callers can degrade gracefully.
func New(ctx context.Context, cfg *Config) (Client, error) {
	if cfg == nil || !cfg.Configured() {
		slog.Warn("Language model not configured, model-backed features are disabled")
		return nil, nil
	}

	var (
		client Client
		err    error
	)
	switch cfg.Provider {
	case ProviderOpenAI:
		client, err = NewOpenAIClient(cfg.BaseURL, cfg.APIKey, WithOpenAIModel(cfg.Model))
	case ProviderGemini:
		client, err = NewGeminiClient(ctx, cfg.APIKey, cfg.Model)
	case ProviderOllama:
		client, err = NewOllamaClient(cfg.BaseURL, WithOllamaModel(cfg.Model))
	default:
		return nil, fmt.Errorf("unsupported llm provider: %s", cfg.Provider)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create %s client: %w", cfg.Provider, err)
	}

	slog.Info("Language model configured", "provider", cfg.Provider, "model", cfg.Model)
	return client, nil
}
