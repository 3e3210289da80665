package research

import (
	"log/slog"
	"os"
	"time"
)

const DefaultToolTimeout = 15 * time.Second

type Config struct {
	TavilyAPIKey  string
	YouTubeAPIKey string
	GitHubToken   string
	ToolTimeout   time.Duration
}

func LoadConfigFromEnv() Config {
	cfg := Config{
		TavilyAPIKey:  os.Getenv("TAVILY_API_KEY"),
		YouTubeAPIKey: os.Getenv("YOUTUBE_API_KEY"),
		GitHubToken:   os.Getenv("GITHUB_TOKEN"),
		ToolTimeout:   DefaultToolTimeout,
	}

	if raw := os.Getenv("RESEARCH_TOOL_TIMEOUT"); raw != "" {
		d, err := time.ParseDuration(raw)
		if err != nil || d <= 0 {
			slog.Warn("invalid RESEARCH_TOOL_TIMEOUT, using default", "value", raw, "default", DefaultToolTimeout)
		} else {
			cfg.ToolTimeout = d
		}
	}

	return cfg
}
