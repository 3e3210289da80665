package tracker

import (
	"context"
	"math"
	"sync"
	"testing"

	"github.com/DjordjeVuckovic/ai-news-hunter/internal/apperr"
	"github.com/DjordjeVuckovic/ai-news-hunter/internal/domain"
	"github.com/DjordjeVuckovic/ai-news-hunter/internal/fetcher"
	"github.com/DjordjeVuckovic/ai-news-hunter/internal/ingest"
	"github.com/DjordjeVuckovic/ai-news-hunter/internal/llm/llmtest"
	"github.com/DjordjeVuckovic/ai-news-hunter/internal/research"
	"github.com/DjordjeVuckovic/ai-news-hunter/internal/storage/in_mem"
	"github.com/DjordjeVuckovic/ai-news-hunter/internal/summarize"
	"github.com/DjordjeVuckovic/ai-news-hunter/pkg/pagination"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type staticFetcher struct {
	articles []domain.Article
}

func (staticFetcher) Source() domain.Source { return domain.SourceArxiv }

func (f staticFetcher) Fetch(context.Context, int) ([]domain.Article, error) {
	return f.articles, nil
}

type echoTool struct{}

func (echoTool) Name() string         { return "echo" }
func (echoTool) Description() string  { return "echoes the query" }
func (echoTool) RequiresAPIKey() bool { return false }
func (echoTool) Available() bool      { return true }

func (echoTool) Search(_ context.Context, query string, _ int) (research.Results, error) {
	return research.List[string]{query}, nil
}

type recordingIndexer struct {
	mu      sync.Mutex
	indexed []domain.Article
}

func (r *recordingIndexer) IndexArticles(_ context.Context, articles []domain.Article) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.indexed = append(r.indexed, articles...)
	return nil
}

type fixture struct {
	svc     *Service
	store   *in_mem.Store
	llm     *llmtest.MockClient
	indexer *recordingIndexer
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := in_mem.NewStore()
	client := &llmtest.MockClient{}
	idx := &recordingIndexer{}

	pipeline := ingest.NewPipeline(fetcher.NewRegistry(staticFetcher{articles: []domain.Article{
		{Source: domain.SourceArxiv, SourceID: "arxiv:1", Title: "Retrieval augmented generation survey", Abstract: "RAG methods.", URL: "https://arxiv.org/abs/1", Categories: []string{"NLP"}},
		{Source: domain.SourceArxiv, SourceID: "arxiv:2", Title: "Humanoid robot locomotion", URL: "https://arxiv.org/abs/2", Categories: []string{"Robotics"}},
	}}), store)

	agent := research.NewAgent(research.NewRegistry([]research.Tool{echoTool{}}), nil)

	svc := New(store, pipeline, summarize.New(store, client), agent, WithIndexer(idx))
	return &fixture{svc: svc, store: store, llm: client, indexer: idx}
}

func (f *fixture) refresh(t *testing.T) []domain.Article {
	t.Helper()
	_, err := f.svc.FetchAll(context.Background())
	require.NoError(t, err)
	page, err := f.svc.ListArticles(context.Background(), domain.ArticleFilter{}, pagination.OffsetRequest{})
	require.NoError(t, err)
	return page.Items
}

func TestService_FetchOne(t *testing.T) {
	f := newFixture(t)

	report, err := f.svc.FetchOne(context.Background(), "ArXiv")
	require.NoError(t, err)
	assert.Equal(t, 2, report.Saved)

	_, err = f.svc.FetchOne(context.Background(), "twitter")
	var ve *apperr.ValidationError
	assert.ErrorAs(t, err, &ve)

	_, err = f.svc.FetchOne(context.Background(), "blog")
	assert.ErrorAs(t, err, &ve)

	assert.Equal(t, []domain.Source{domain.SourceArxiv}, f.svc.Sources())
}

func TestService_ListArticles(t *testing.T) {
	f := newFixture(t)
	f.refresh(t)

	page, err := f.svc.ListArticles(context.Background(), domain.ArticleFilter{Category: "Robotics"}, pagination.OffsetRequest{Page: 1, Size: 1})
	require.NoError(t, err)
	assert.Equal(t, int64(1), page.Total)
	assert.Equal(t, "arxiv:2", page.Items[0].SourceID)

	_, err = f.svc.ListArticles(context.Background(), domain.ArticleFilter{Source: "myspace"}, pagination.OffsetRequest{})
	var ve *apperr.ValidationError
	assert.ErrorAs(t, err, &ve)

	_, err = f.svc.ListArticles(context.Background(), domain.ArticleFilter{}, pagination.OffsetRequest{Page: math.MaxInt/50 + 2, Size: 50})
	assert.ErrorAs(t, err, &ve)

	_, err = f.svc.ListBookmarks(context.Background(), pagination.OffsetRequest{Page: pagination.PageMaxNumber + 1})
	assert.ErrorAs(t, err, &ve)
}

func TestService_SearchArticles(t *testing.T) {
	f := newFixture(t)
	f.refresh(t)

	hits, err := f.svc.SearchArticles(context.Background(), "  retrieval ", 0)
	require.NoError(t, err)
	require.Len(t, hits, 1)
	assert.Equal(t, "Retrieval augmented generation survey", hits[0].Title)

	tests := []struct {
		name  string
		query string
		limit int
	}{
		{name: "short query", query: "r", limit: 10},
		{name: "blank query", query: "   ", limit: 10},
		{name: "limit too large", query: "robot", limit: MaxSearchLimit + 1},
		{name: "negative limit", query: "robot", limit: -1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.svc.SearchArticles(context.Background(), tt.query, tt.limit)
			var ve *apperr.ValidationError
			assert.ErrorAs(t, err, &ve)
		})
	}
}

func TestService_SummarizeReindexes(t *testing.T) {
	f := newFixture(t)
	items := f.refresh(t)
	id := items[0].ID

	f.llm.On("Complete", mock.Anything, mock.Anything, mock.Anything).Return("Short summary.", nil).Once()

	res, err := f.svc.Summarize(context.Background(), id)
	require.NoError(t, err)
	assert.False(t, res.Cached)
	require.Len(t, f.indexer.indexed, 1)
	assert.Equal(t, "Short summary.", f.indexer.indexed[0].Summary)

	res, err = f.svc.Summarize(context.Background(), id)
	require.NoError(t, err)
	assert.True(t, res.Cached)
	assert.Len(t, f.indexer.indexed, 1)
	f.llm.AssertExpectations(t)
}

func TestService_Bookmarks(t *testing.T) {
	f := newFixture(t)
	items := f.refresh(t)
	id := items[0].ID

	a, err := f.svc.AddBookmark(context.Background(), id)
	require.NoError(t, err)
	assert.True(t, a.IsBookmarked)

	a, err = f.svc.AddBookmark(context.Background(), id)
	require.NoError(t, err)
	assert.True(t, a.IsBookmarked)

	page, err := f.svc.ListBookmarks(context.Background(), pagination.OffsetRequest{})
	require.NoError(t, err)
	assert.Equal(t, int64(1), page.Total)

	a, err = f.svc.RemoveBookmark(context.Background(), id)
	require.NoError(t, err)
	assert.False(t, a.IsBookmarked)

	_, err = f.svc.AddBookmark(context.Background(), uuid.New())
	var nf *apperr.NotFoundError
	assert.ErrorAs(t, err, &nf)
}

func TestService_ListCategories(t *testing.T) {
	f := newFixture(t)
	f.refresh(t)

	counts, err := f.svc.ListCategories(context.Background())
	require.NoError(t, err)
	assert.Len(t, counts, 2)
}

func TestService_Research(t *testing.T) {
	f := newFixture(t)

	resp, err := f.svc.ResearchSearch(context.Background(), "vision transformers", nil, 3)
	require.NoError(t, err)
	assert.False(t, resp.HasResponse())
	assert.Equal(t, 1, resp.Sources["echo"].Count)

	resp, err = f.svc.ResearchTool(context.Background(), " ECHO ", "diffusion", 0)
	require.NoError(t, err)
	assert.Equal(t, research.List[string]{"diffusion"}, resp.Sources["echo"].Results)

	_, err = f.svc.ResearchTool(context.Background(), "bing", "diffusion", 0)
	var ve *apperr.ValidationError
	assert.ErrorAs(t, err, &ve)

	infos := f.svc.ListResearchTools()
	require.Len(t, infos, 1)
	assert.Equal(t, "echo", infos[0].Name)
}
