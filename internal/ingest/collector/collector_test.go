package collector

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DjordjeVuckovic/ai-news-hunter/internal/domain"
	"github.com/DjordjeVuckovic/ai-news-hunter/internal/fetcher"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type slowFetcher struct {
	source domain.Source
	delay  time.Duration
	n      int
	err    error
	gotMax int
}

func (f *slowFetcher) Source() domain.Source { return f.source }

func (f *slowFetcher) Fetch(ctx context.Context, maxResults int) ([]domain.Article, error) {
	f.gotMax = maxResults
	select {
	case <-time.After(f.delay):
	case <-ctx.Done():
		return nil, ctx.Err()
	}
	out := make([]domain.Article, f.n)
	for i := range out {
		out[i] = domain.Article{Source: f.source}
	}
	return out, f.err
}

func TestFetchCollector_EmitsOneResultPerFetcher(t *testing.T) {
	slow := &slowFetcher{source: domain.SourceArxiv, delay: 50 * time.Millisecond, n: 2}
	failing := &slowFetcher{source: domain.SourceBlog, err: errors.New("boom")}
	c := NewFetchCollector([]fetcher.Fetcher{slow, failing}, 7)

	ch, err := c.Collect(context.Background())
	require.NoError(t, err)
	results, err := Drain(context.Background(), ch)
	require.NoError(t, err)
	require.Len(t, results, 2)

	bySource := map[domain.Source]Result[SourceBatch]{}
	for _, r := range results {
		bySource[r.Result.Source] = r
	}
	assert.NoError(t, bySource[domain.SourceArxiv].Err)
	assert.Len(t, bySource[domain.SourceArxiv].Result.Articles, 2)
	assert.EqualError(t, bySource[domain.SourceBlog].Err, "boom")
	assert.Equal(t, 7, slow.gotMax)
}

func TestFetchCollector_DefaultMax(t *testing.T) {
	f := &slowFetcher{source: domain.SourceArxiv}
	ch, err := NewFetchCollector([]fetcher.Fetcher{f}, 0).Collect(context.Background())
	require.NoError(t, err)
	_, err = Drain(context.Background(), ch)
	require.NoError(t, err)
	assert.Equal(t, fetcher.DefaultMaxResults, f.gotMax)
}

func TestDrain_StopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Drain(ctx, make(chan Result[int]))
	assert.ErrorIs(t, err, context.Canceled)
}
