//go:build integration

package pg

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/DjordjeVuckovic/ai-news-hunter/internal/domain"
	"github.com/DjordjeVuckovic/ai-news-hunter/pkg/pagination"
	pgtesting "github.com/DjordjeVuckovic/ai-news-hunter/pkg/testing"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newIntegrationStore(t *testing.T) *Store {
	t.Helper()
	ctx := context.Background()

	container := pgtesting.NewPGContainer(ctx, t)
	pool, err := NewConnectionPool(ctx, PoolConfig{ConnStr: container.ConnString, MaxConns: 4})
	require.NoError(t, err)
	t.Cleanup(pool.Close)
	require.True(t, NewHealthChecker(pool).Healthy(ctx))

	return NewStore(pool.GetConn())
}

func TestStoreIntegration_UpsertEnrichesExistingRow(t *testing.T) {
	store := newIntegrationStore(t)
	ctx := context.Background()

	first, err := store.Upsert(ctx, domain.Article{
		Source:   domain.SourceAggregator,
		SourceID: "hn:1",
		Title:    "New model released",
		URL:      "https://example.com/model",
	})
	require.NoError(t, err)
	assert.True(t, first.Inserted)

	second, err := store.Upsert(ctx, domain.Article{
		Source:   domain.SourceAggregator,
		SourceID: "hn:1",
		Title:    "ignored title",
		Abstract: "now with an abstract",
		URL:      "https://example.com/other",
	})
	require.NoError(t, err)
	assert.False(t, second.Inserted)
	assert.Equal(t, first.ID, second.ID)

	got, err := store.Get(ctx, first.ID)
	require.NoError(t, err)
	assert.Equal(t, "New model released", got.Title)
	assert.Equal(t, "now with an abstract", got.Abstract)
	assert.Equal(t, "https://example.com/model", got.URL)
}

func TestStoreIntegration_ConcurrentUpsertSameKey(t *testing.T) {
	store := newIntegrationStore(t)
	ctx := context.Background()

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		inserted int
	)
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			res, err := store.Upsert(ctx, domain.Article{
				Source:   domain.SourceArxiv,
				SourceID: "arxiv:2401.1",
				Title:    "Same paper",
				URL:      "https://arxiv.org/abs/2401.1",
			})
			if assert.NoError(t, err) && res.Inserted {
				mu.Lock()
				inserted++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, 1, inserted)

	page, err := store.List(ctx, domain.ArticleFilter{}, pagination.OffsetRequest{})
	require.NoError(t, err)
	assert.Equal(t, int64(1), page.Total)
}

func TestStoreIntegration_SummaryAndSearch(t *testing.T) {
	store := newIntegrationStore(t)
	ctx := context.Background()
	published := time.Now().UTC().Add(-time.Hour)

	res, err := store.Upsert(ctx, domain.Article{
		Source:      domain.SourceBlog,
		SourceID:    "openai:gpt",
		Title:       "Scaling transformers for robotics",
		Abstract:    "We study transformer scaling on robot manipulation.",
		URL:         "https://openai.com/blog/gpt",
		Categories:  []string{"Robotics", "LLM"},
		PublishedAt: &published,
	})
	require.NoError(t, err)

	s, err := store.SetSummary(ctx, res.ID, "first summary")
	require.NoError(t, err)
	assert.Equal(t, "first summary", s)

	s, err = store.SetSummary(ctx, res.ID, "second summary")
	require.NoError(t, err)
	assert.Equal(t, "first summary", s)

	hits, err := store.Search(ctx, "robot manipulation", 5)
	require.NoError(t, err)
	require.Len(t, hits, 1)
	assert.Equal(t, res.ID, hits[0].ID)

	page, err := store.List(ctx, domain.ArticleFilter{Category: "Robot"}, pagination.OffsetRequest{})
	require.NoError(t, err)
	assert.Zero(t, page.Total)

	bm, err := store.SetBookmark(ctx, res.ID, true)
	require.NoError(t, err)
	assert.True(t, bm.IsBookmarked)

	page, err = store.List(ctx, domain.ArticleFilter{Category: "Robotics", BookmarkedOnly: true, Days: 1}, pagination.OffsetRequest{})
	require.NoError(t, err)
	assert.Equal(t, int64(1), page.Total)

	counts, err := store.Categories(ctx)
	require.NoError(t, err)
	assert.Len(t, counts, 2)
}
