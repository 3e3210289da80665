package collector

import (
	"context"
	"log/slog"
	"time"

	"github.com/DjordjeVuckovic/ai-news-hunter/internal/domain"
	"github.com/DjordjeVuckovic/ai-news-hunter/internal/fetcher"
	"golang.org/x/sync/errgroup"
)

type Result[T any] struct {
	Result T
	Err    error
}

type Collector[T any] interface {
	Collect(ctx context.Context) (<-chan Result[T], error)
}

// SourceBatch is everything one fetcher returned. Articles may be non-empty
// even when the Result carrying it has an error.
type SourceBatch struct {
	Source   domain.Source
	Articles []domain.Article
	Elapsed  time.Duration
}

// FetchCollector runs its fetchers concurrently and emits one result per
// fetcher. A failing fetcher never stops the others.
type FetchCollector struct {
	fetchers   []fetcher.Fetcher
	maxResults int
}

func NewFetchCollector(fetchers []fetcher.Fetcher, maxResults int) *FetchCollector {
	if maxResults <= 0 {
		maxResults = fetcher.DefaultMaxResults
	}
	return &FetchCollector{fetchers: fetchers, maxResults: maxResults}
}

func (c *FetchCollector) Collect(ctx context.Context) (<-chan Result[SourceBatch], error) {
	results := make(chan Result[SourceBatch], len(c.fetchers))

	var g errgroup.Group
	for _, f := range c.fetchers {
		g.Go(func() error {
			start := time.Now()
			articles, err := f.Fetch(ctx, c.maxResults)
			batch := SourceBatch{
				Source:   f.Source(),
				Articles: articles,
				Elapsed:  time.Since(start),
			}
			if err != nil {
				slog.Warn("Fetcher failed",
					"source", f.Source(),
					"fetched", len(articles),
					"error", err)
			} else {
				slog.Debug("Fetcher done", "source", f.Source(), "fetched", len(articles), "elapsed", batch.Elapsed)
			}
			results <- Result[SourceBatch]{Result: batch, Err: err}
			return nil
		})
	}

	go func() {
		_ = g.Wait()
		close(results)
	}()

	return results, nil
}

// Drain reads ch until it is closed or ctx is done.
func Drain[T any](ctx context.Context, ch <-chan Result[T]) ([]Result[T], error) {
	var out []Result[T]
	for {
		select {
		case <-ctx.Done():
			return out, ctx.Err()
		case res, ok := <-ch:
			if !ok {
				return out, nil
			}
			out = append(out, res)
		}
	}
}
