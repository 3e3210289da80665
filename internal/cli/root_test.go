package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"testing"

	"github.com/DjordjeVuckovic/ai-news-hunter/internal/apperr"
	"github.com/DjordjeVuckovic/ai-news-hunter/internal/domain"
	"github.com/DjordjeVuckovic/ai-news-hunter/internal/fetcher"
	"github.com/DjordjeVuckovic/ai-news-hunter/internal/ingest"
	"github.com/DjordjeVuckovic/ai-news-hunter/internal/research"
	"github.com/DjordjeVuckovic/ai-news-hunter/internal/storage/in_mem"
	"github.com/DjordjeVuckovic/ai-news-hunter/internal/summarize"
	"github.com/DjordjeVuckovic/ai-news-hunter/internal/tracker"
	"github.com/DjordjeVuckovic/ai-news-hunter/pkg/pagination"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubFetcher struct {
	source   domain.Source
	articles []domain.Article
}

func (f stubFetcher) Source() domain.Source { return f.source }

func (f stubFetcher) Fetch(context.Context, int) ([]domain.Article, error) {
	return f.articles, nil
}

type stubTool struct{ name string }

func (t stubTool) Name() string         { return t.name }
func (t stubTool) Description() string  { return "stub " + t.name }
func (t stubTool) RequiresAPIKey() bool { return false }
func (t stubTool) Available() bool      { return true }

func (t stubTool) Search(_ context.Context, query string, _ int) (research.Results, error) {
	return research.List[string]{query}, nil
}

type harness struct {
	svc    *tracker.Service
	opened int
	closed int
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	store := in_mem.NewStore()
	registry := fetcher.NewRegistry(
		stubFetcher{source: domain.SourceArxiv, articles: []domain.Article{
			{Source: domain.SourceArxiv, SourceID: "arxiv:1", Title: "Sparse mixture of experts", URL: "https://arxiv.org/abs/1", Categories: []string{"NLP"}},
			{Source: domain.SourceArxiv, SourceID: "arxiv:2", Title: "Diffusion policies for robots", URL: "https://arxiv.org/abs/2", Categories: []string{"Robotics"}},
		}},
	)
	agent := research.NewAgent(research.NewRegistry([]research.Tool{stubTool{name: "arxiv"}}), nil)

	return &harness{
		svc: tracker.New(store, ingest.NewPipeline(registry, store), summarize.New(store, nil), agent),
	}
}

func (h *harness) open(context.Context) (Tracker, func(), error) {
	h.opened++
	return h.svc, func() { h.closed++ }, nil
}

func (h *harness) run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	cmd := NewRootCmd(h.open)
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func decode[T any](t *testing.T, raw string) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal([]byte(raw), &v))
	return v
}

func TestRefreshAndList(t *testing.T) {
	h := newHarness(t)

	out, err := h.run(t, "refresh")
	require.NoError(t, err)
	report := decode[domain.RefreshReport](t, out)
	assert.Equal(t, 2, report.Saved)
	assert.Equal(t, 1, h.opened)
	assert.Equal(t, 1, h.closed)

	out, err = h.run(t, "refresh", "arxiv")
	require.NoError(t, err)
	assert.Equal(t, 2, decode[domain.RefreshReport](t, out).Updated)

	out, err = h.run(t, "articles", "list", "--category", "Robotics")
	require.NoError(t, err)
	page := decode[pagination.OffsetResult[domain.Article]](t, out)
	require.Len(t, page.Items, 1)
	assert.Equal(t, "Diffusion policies for robots", page.Items[0].Title)

	_, err = h.run(t, "articles", "list", "--source", "myspace")
	var verr *apperr.ValidationError
	assert.ErrorAs(t, err, &verr)
}

func TestSearchAndBookmark(t *testing.T) {
	h := newHarness(t)
	_, err := h.run(t, "refresh")
	require.NoError(t, err)

	out, err := h.run(t, "articles", "search", "experts")
	require.NoError(t, err)
	hits := decode[[]domain.ArticleSearchHit](t, out)
	require.Len(t, hits, 1)

	out, err = h.run(t, "bookmark", "add", hits[0].ID.String())
	require.NoError(t, err)
	assert.True(t, decode[domain.Article](t, out).IsBookmarked)

	out, err = h.run(t, "articles", "ls", "--bookmarked")
	require.NoError(t, err)
	assert.Equal(t, int64(1), decode[pagination.OffsetResult[domain.Article]](t, out).Total)

	out, err = h.run(t, "bookmark", "remove", hits[0].ID.String())
	require.NoError(t, err)
	assert.False(t, decode[domain.Article](t, out).IsBookmarked)
}

func TestInvalidArguments(t *testing.T) {
	h := newHarness(t)

	_, err := h.run(t, "summarize", "nope")
	var verr *apperr.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Zero(t, h.opened, "tracker must not open for a malformed id")

	_, err = h.run(t, "articles", "search")
	assert.Error(t, err)

	_, err = h.run(t, "refresh", "twitter")
	assert.ErrorAs(t, err, &verr)
}

func TestResearchAndTools(t *testing.T) {
	h := newHarness(t)

	out, err := h.run(t, "tools")
	require.NoError(t, err)
	tools := decode[[]domain.ToolInfo](t, out)
	require.Len(t, tools, 1)

	out, err = h.run(t, "research", "state space models", "--tools", "arxiv")
	require.NoError(t, err)
	resp := decode[map[string]any](t, out)
	assert.Contains(t, resp["sources"], "arxiv")
}

func TestOpenFailure(t *testing.T) {
	cmd := NewRootCmd(func(context.Context) (Tracker, func(), error) {
		return nil, nil, errors.New("no database")
	})
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"categories"})

	err := cmd.ExecuteContext(context.Background())
	assert.ErrorContains(t, err, "failed to open tracker: no database")
}
