package main

import (
	"log/slog"
	"os"

	"github.com/DjordjeVuckovic/ai-news-hunter/internal/api/server"
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

type NewsAPIConfig struct {
	Server  *server.Config
	Tracker *tracker.Config
}

func (as *AppConfig) Load() (*NewsAPIConfig, error) {
	err := env.LoadDotEnv(as.ENV, "cmd/news_api/.env")
	if err != nil {
		slog.Info("Failed to .env load environment variables, continuing with existing environment variables", "error", err)
	}

	serverCfg, err := server.LoadConfig()
	if err != nil {
		slog.Error("Failed to load server configuration from environment", "error", err)
		return nil, err
	}

	trackerCfg, err := tracker.LoadConfig()
	if err != nil {
		slog.Error("Failed to load tracker configuration from environment", "error", err)
		return nil, err
	}

	return &NewsAPIConfig{
		Server:  serverCfg,
		Tracker: trackerCfg,
	}, nil
}
