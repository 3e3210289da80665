package tracker

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/DjordjeVuckovic/ai-news-hunter/internal/categorize"
	"github.com/DjordjeVuckovic/ai-news-hunter/internal/fetcher"
	"github.com/DjordjeVuckovic/ai-news-hunter/internal/ingest"
	"github.com/DjordjeVuckovic/ai-news-hunter/internal/llm"
	"github.com/DjordjeVuckovic/ai-news-hunter/internal/research"
	"github.com/DjordjeVuckovic/ai-news-hunter/internal/research/tools"
	"github.com/DjordjeVuckovic/ai-news-hunter/internal/storage/factory"
	"github.com/DjordjeVuckovic/ai-news-hunter/internal/summarize"
	"github.com/DjordjeVuckovic/ai-news-hunter/pkg/server"
)

type Config struct {
	Storage  *factory.StorageConfig
	LLM      *llm.Config
	Fetch    fetcher.Config
	Research research.Config
}

// LoadConfig reads every component's configuration from the environment.
func LoadConfig() (*Config, error) {
	storageCfg, err := factory.LoadEnv()
	if err != nil {
		return nil, fmt.Errorf("failed to load storage config: %w", err)
	}
	llmCfg, err := llm.LoadConfigFromEnv()
	if err != nil {
		return nil, fmt.Errorf("failed to load llm config: %w", err)
	}

	return &Config{
		Storage:  storageCfg,
		LLM:      llmCfg,
		Fetch:    fetcher.LoadConfigFromEnv(),
		Research: research.LoadConfigFromEnv(),
	}, nil
}

// App is a fully wired Service together with the resources it owns.
type App struct {
	Service *Service
	Health  server.HealthChecker

	storage *factory.Storage
}

func (a *App) Close() {
	if a.storage != nil {
		a.storage.Close()
	}
}

func Build(ctx context.Context, cfg *Config) (*App, error) {
	st, err := factory.New(ctx, cfg.Storage)
	if err != nil {
		return nil, err
	}

	client, err := llm.New(ctx, cfg.LLM)
	if err != nil {
		st.Close()
		return nil, err
	}

	registry, err := fetcher.Defaults(cfg.Fetch)
	if err != nil {
		st.Close()
		return nil, err
	}

	pipelineOpts := []ingest.PipelineOption{
		ingest.WithCategorizer(categorize.New(categorize.WithLLM(client))),
		ingest.WithMaxResults(cfg.Fetch.MaxResults),
	}
	if st.Indexer != nil {
		pipelineOpts = append(pipelineOpts, ingest.WithIndexer(st.Indexer))
	}
	pipeline := ingest.NewPipeline(registry, st.Store, pipelineOpts...)

	agent := research.NewAgent(
		research.NewRegistry(tools.Defaults(cfg.Research), research.WithToolTimeout(cfg.Research.ToolTimeout)),
		client,
	)

	svc := New(
		st.Store,
		pipeline,
		summarize.New(st.Store, client),
		agent,
		WithSearcher(st.Searcher),
		WithIndexer(st.Indexer),
	)

	slog.Info("Tracker ready",
		"sources", len(registry.Sources()),
		"research_tools", len(agent.Registry().Tools()),
		"llm", llm.Available(client))

	return &App{Service: svc, Health: st.Health, storage: st}, nil
}
