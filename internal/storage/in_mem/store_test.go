package in_mem

import (
	"context"
	"math"
	"sync"
	"testing"
	"time"

	"github.com/DjordjeVuckovic/ai-news-hunter/internal/apperr"
	"github.com/DjordjeVuckovic/ai-news-hunter/internal/domain"
	"github.com/DjordjeVuckovic/ai-news-hunter/pkg/pagination"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr(t time.Time) *time.Time { return &t }

func TestStore_UpsertIsIdempotentAndEnriches(t *testing.T) {
	s := NewStore()
	ctx := context.Background()

	first, err := s.Upsert(ctx, domain.Article{Source: domain.SourceBlog, SourceID: "meta:1", Title: "Llama", URL: "u"})
	require.NoError(t, err)
	assert.True(t, first.Inserted)

	second, err := s.Upsert(ctx, domain.Article{
		Source:   domain.SourceBlog,
		SourceID: "meta:1",
		Title:    "Llama 2",
		Abstract: "richer",
		Summary:  "must not be copied",
	})
	require.NoError(t, err)
	assert.False(t, second.Inserted)
	assert.Equal(t, first.ID, second.ID)

	got, err := s.Get(ctx, first.ID)
	require.NoError(t, err)
	assert.Equal(t, "Llama", got.Title)
	assert.Equal(t, "richer", got.Abstract)
	assert.Empty(t, got.Summary)
}

func TestStore_ConcurrentUpsertInsertsOnce(t *testing.T) {
	s := NewStore()
	ctx := context.Background()

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		inserted int
	)
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			res, _ := s.Upsert(ctx, domain.Article{Source: domain.SourceArxiv, SourceID: "arxiv:1", Title: "p"})
			if res.Inserted {
				mu.Lock()
				inserted++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, 1, inserted)
}

func TestStore_ListOrderingAndFilters(t *testing.T) {
	s := NewStore()
	now := time.Now().UTC()
	s.now = func() time.Time { return now }
	ctx := context.Background()

	_, _ = s.Upsert(ctx, domain.Article{Source: domain.SourceArxiv, SourceID: "old", Title: "old", PublishedAt: ptr(now.AddDate(0, 0, -10)), Categories: []string{"NLP"}})
	_, _ = s.Upsert(ctx, domain.Article{Source: domain.SourceArxiv, SourceID: "new", Title: "new", PublishedAt: ptr(now.Add(-time.Hour)), Categories: []string{"NLP", "LLM"}})
	_, _ = s.Upsert(ctx, domain.Article{Source: domain.SourceBlog, SourceID: "undated", Title: "undated", Categories: []string{"LLM"}})

	res, err := s.List(ctx, domain.ArticleFilter{}, pagination.OffsetRequest{})
	require.NoError(t, err)
	require.Len(t, res.Items, 3)
	assert.Equal(t, []string{"new", "old", "undated"}, []string{res.Items[0].Title, res.Items[1].Title, res.Items[2].Title})

	res, err = s.List(ctx, domain.ArticleFilter{Category: "NL"}, pagination.OffsetRequest{})
	require.NoError(t, err)
	assert.Zero(t, res.Total)

	res, err = s.List(ctx, domain.ArticleFilter{Category: "NLP", Days: 7}, pagination.OffsetRequest{})
	require.NoError(t, err)
	require.Len(t, res.Items, 1)
	assert.Equal(t, "new", res.Items[0].Title)

	res, err = s.List(ctx, domain.ArticleFilter{}, pagination.OffsetRequest{Page: 2, Size: 2})
	require.NoError(t, err)
	assert.Equal(t, int64(3), res.Total)
	assert.Len(t, res.Items, 1)
	assert.False(t, res.HasMore)
}

func TestStore_SummaryFirstWriteWins(t *testing.T) {
	s := NewStore()
	ctx := context.Background()
	res, _ := s.Upsert(ctx, domain.Article{Source: domain.SourceArxiv, SourceID: "1", Title: "t"})

	got, err := s.SetSummary(ctx, res.ID, "a")
	require.NoError(t, err)
	assert.Equal(t, "a", got)

	got, err = s.SetSummary(ctx, res.ID, "b")
	require.NoError(t, err)
	assert.Equal(t, "a", got)

	_, err = s.SetSummary(ctx, uuid.New(), "c")
	var nf *apperr.NotFoundError
	assert.ErrorAs(t, err, &nf)
}

func TestStore_BookmarkIdempotent(t *testing.T) {
	s := NewStore()
	ctx := context.Background()
	res, _ := s.Upsert(ctx, domain.Article{Source: domain.SourceArxiv, SourceID: "1", Title: "t"})

	for i := 0; i < 2; i++ {
		a, err := s.SetBookmark(ctx, res.ID, true)
		require.NoError(t, err)
		assert.True(t, a.IsBookmarked)
	}

	page, err := s.List(ctx, domain.ArticleFilter{BookmarkedOnly: true}, pagination.OffsetRequest{})
	require.NoError(t, err)
	assert.Equal(t, int64(1), page.Total)

	a, err := s.SetBookmark(ctx, res.ID, false)
	require.NoError(t, err)
	assert.False(t, a.IsBookmarked)
}

func TestStore_SearchRanksTitleMatchesFirst(t *testing.T) {
	s := NewStore()
	ctx := context.Background()
	_, _ = s.Upsert(ctx, domain.Article{Source: domain.SourceArxiv, SourceID: "1", Title: "Robotics today", Abstract: "x"})
	_, _ = s.Upsert(ctx, domain.Article{Source: domain.SourceArxiv, SourceID: "2", Title: "Other", Abstract: "robotics in the abstract"})
	_, _ = s.Upsert(ctx, domain.Article{Source: domain.SourceArxiv, SourceID: "3", Title: "Unrelated"})

	hits, err := s.Search(ctx, "Robotics", 10)
	require.NoError(t, err)
	require.Len(t, hits, 2)
	assert.Equal(t, "Robotics today", hits[0].Title)
	assert.Greater(t, hits[0].Rank, hits[1].Rank)
}

func TestStore_CategoriesAndRecentTitles(t *testing.T) {
	s := NewStore()
	ctx := context.Background()
	_, _ = s.Upsert(ctx, domain.Article{Source: domain.SourceArxiv, SourceID: "1", Title: "a", Categories: []string{"NLP", "LLM"}})
	_, _ = s.Upsert(ctx, domain.Article{Source: domain.SourceArxiv, SourceID: "2", Title: "b", Categories: []string{"NLP"}})

	counts, err := s.Categories(ctx)
	require.NoError(t, err)
	assert.Equal(t, []domain.CategoryCount{{Name: "NLP", Count: 2}, {Name: "LLM", Count: 1}}, counts)

	refs, err := s.RecentTitles(ctx, time.Now().Add(-time.Hour))
	require.NoError(t, err)
	assert.Len(t, refs, 2)

	refs, err = s.RecentTitles(ctx, time.Now().Add(time.Hour))
	require.NoError(t, err)
	assert.Empty(t, refs)
}

func TestStore_ListRejectsHugePage(t *testing.T) {
	s := NewStore()
	_, err := s.Upsert(context.Background(), domain.Article{Source: domain.SourceArxiv, SourceID: "1", Title: "t", URL: "u"})
	require.NoError(t, err)

	_, err = s.List(context.Background(), domain.ArticleFilter{}, pagination.OffsetRequest{Page: math.MaxInt/50 + 2, Size: 50})
	var ve *apperr.ValidationError
	assert.ErrorAs(t, err, &ve)
}
