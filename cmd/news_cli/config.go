package main

import (
	"log/slog"
	"os"

	"github.com/DjordjeVuckovic/ai-news-hunter/internal/tracker"
	"github.com/DjordjeVuckovic/ai-news-hunter/pkg/config/env"
)

type AppConfig struct {
	ENV string
}

func NewAppConfig() *AppConfig {
	return &AppConfig{
		ENV: os.Getenv("ENV"),
	}
}

func (as *AppConfig) Load() (*tracker.Config, error) {
	err := env.LoadDotEnv(as.ENV, "cmd/news_cli/.env")
	if err != nil {
		slog.Debug("Failed to .env load environment variables, continuing with existing environment variables", "error", err)
	}

	return tracker.LoadConfig()
}
