package factory

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/DjordjeVuckovic/ai-news-hunter/internal/storage"
	"github.com/DjordjeVuckovic/ai-news-hunter/internal/storage/es"
	"github.com/DjordjeVuckovic/ai-news-hunter/internal/storage/in_mem"
	"github.com/DjordjeVuckovic/ai-news-hunter/internal/storage/pg"
	"github.com/DjordjeVuckovic/ai-news-hunter/pkg/server"
)

// Storage bundles the article store with the optional search index built
// from a StorageConfig.
type Storage struct {
	Store storage.ArticleStore
	// Searcher is the store itself unless an external index is configured.
	Searcher storage.Searcher
	// Indexer is nil without an external index.
	Indexer storage.Indexer
	Health  server.HealthChecker

	closeFn func()
}

func (s *Storage) Close() {
	if s.closeFn != nil {
		s.closeFn()
	}
}

func New(ctx context.Context, cfg *StorageConfig) (*Storage, error) {
	st := &Storage{}

	switch cfg.Type {
	case storage.PG:
		if cfg.Pg == nil {
			return nil, fmt.Errorf("missing PostgreSQL configuration")
		}
		pool, err := pg.NewConnectionPool(ctx, *cfg.Pg)
		if err != nil {
			return nil, fmt.Errorf("failed to create PostgreSQL connection pool: %w", err)
		}
		st.Store = pg.NewStore(pool.GetConn())
		st.Health = pg.NewHealthChecker(pool)
		st.closeFn = pool.Close

	case storage.InMem:
		st.Store = in_mem.NewStore()
		st.Health = server.NewOkHealthChecker()

	default:
		return nil, fmt.Errorf(string(storage.ErrUnsupportedStorer), cfg.Type)
	}

	st.Searcher = st.Store

	if cfg.Es != nil {
		idx, err := es.NewIndex(ctx, *cfg.Es)
		if err != nil {
			st.Close()
			return nil, fmt.Errorf("failed to create Elasticsearch index: %w", err)
		}
		searcher, err := es.NewSearcher(*cfg.Es)
		if err != nil {
			st.Close()
			return nil, fmt.Errorf("failed to create Elasticsearch searcher: %w", err)
		}
		st.Indexer = idx
		st.Searcher = searcher
	}

	slog.Info("storage initialized", "config", cfg.String())
	return st, nil
}
