package fetcher

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/DjordjeVuckovic/ai-news-hunter/internal/source/arxiv"
	"github.com/DjordjeVuckovic/ai-news-hunter/pkg/httpclient"
	"golang.org/x/time/rate"
)

type Config struct {
	MaxResults      int
	BlogSourcesPath string
}

func LoadConfigFromEnv() Config {
	cfg := Config{
		MaxResults:      DefaultMaxResults,
		BlogSourcesPath: os.Getenv("BLOG_SOURCES_PATH"),
	}

	if raw := os.Getenv("FETCH_MAX_RESULTS"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			slog.Warn("invalid FETCH_MAX_RESULTS, using default", "value", raw, "default", DefaultMaxResults)
		} else {
			cfg.MaxResults = n
		}
	}

	return cfg
}

// Defaults builds the registry with every source fetcher. Blog sources are
// read from cfg.BlogSourcesPath when it is set.
func Defaults(cfg Config) (*Registry, error) {
	blogs := DefaultBlogSources
	if cfg.BlogSourcesPath != "" {
		f, err := os.Open(cfg.BlogSourcesPath)
		if err != nil {
			return nil, fmt.Errorf("failed to open blog sources: %w", err)
		}
		defer f.Close()

		blogs, err = LoadBlogSources(f)
		if err != nil {
			return nil, err
		}
		slog.Info("Loaded blog sources", "path", cfg.BlogSourcesPath, "count", len(blogs))
	}

	client := httpclient.New()

	return NewRegistry(
		NewArxivFetcher(arxiv.NewClient()),
		NewHuggingFaceFetcher(client),
		NewBlogFetcher(client, blogs),
		NewAggregatorFetcher(httpclient.New(httpclient.WithRateLimit(rate.Every(500*time.Millisecond), 2))),
	), nil
}
