package tracker

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/DjordjeVuckovic/ai-news-hunter/internal/apperr"
	"github.com/DjordjeVuckovic/ai-news-hunter/internal/domain"
	"github.com/DjordjeVuckovic/ai-news-hunter/internal/ingest"
	"github.com/DjordjeVuckovic/ai-news-hunter/internal/research"
	"github.com/DjordjeVuckovic/ai-news-hunter/internal/storage"
	"github.com/DjordjeVuckovic/ai-news-hunter/internal/summarize"
	"github.com/DjordjeVuckovic/ai-news-hunter/pkg/pagination"
	"github.com/google/uuid"
)

const (
	DefaultSearchLimit = 50
	MaxSearchLimit     = 200
)

// Service is the core exposed to the HTTP and CLI shells. Every method
// returns a value or one of the apperr failures.
type Service struct {
	store      storage.ArticleStore
	searcher   storage.Searcher
	indexer    storage.Indexer
	pipeline   *ingest.Pipeline
	summarizer *summarize.Summarizer
	agent      *research.Agent
}

type Option func(*Service)

// WithSearcher serves article search from s instead of the store.
func WithSearcher(s storage.Searcher) Option {
	return func(svc *Service) {
		if s != nil {
			svc.searcher = s
		}
	}
}

// WithIndexer re-indexes articles whose summary was just generated.
func WithIndexer(idx storage.Indexer) Option {
	return func(svc *Service) {
		svc.indexer = idx
	}
}

func New(
	store storage.ArticleStore,
	pipeline *ingest.Pipeline,
	summarizer *summarize.Summarizer,
	agent *research.Agent,
	opts ...Option,
) *Service {
	svc := &Service{
		store:      store,
		searcher:   store,
		pipeline:   pipeline,
		summarizer: summarizer,
		agent:      agent,
	}
	for _, opt := range opts {
		opt(svc)
	}
	return svc
}

func (s *Service) FetchAll(ctx context.Context) (*domain.RefreshReport, error) {
	return s.pipeline.RefreshAll(ctx)
}

func (s *Service) FetchOne(ctx context.Context, source string) (*domain.RefreshReport, error) {
	src, ok := domain.ParseSource(source)
	if !ok {
		return nil, apperr.NewValidation(fmt.Sprintf("unknown source: %q", source))
	}
	return s.pipeline.Refresh(ctx, src)
}

// Sources lists the refreshable sources in registration order.
func (s *Service) Sources() []domain.Source {
	return s.pipeline.Sources()
}

func (s *Service) ListArticles(
	ctx context.Context,
	filter domain.ArticleFilter,
	page pagination.OffsetRequest,
) (*pagination.OffsetResult[domain.Article], error) {
	if err := filter.Validate(); err != nil {
		return nil, err
	}
	if err := page.Validate(); err != nil {
		return nil, apperr.NewValidationWrap("invalid page", err)
	}
	return s.store.List(ctx, filter, page)
}

func (s *Service) ListBookmarks(ctx context.Context, page pagination.OffsetRequest) (*pagination.OffsetResult[domain.Article], error) {
	return s.ListArticles(ctx, domain.ArticleFilter{BookmarkedOnly: true}, page)
}

func (s *Service) SearchArticles(ctx context.Context, query string, limit int) ([]domain.ArticleSearchHit, error) {
	query = strings.TrimSpace(query)
	if len([]rune(query)) < domain.MinSearchQuery {
		return nil, apperr.NewValidation(fmt.Sprintf("query must be at least %d characters", domain.MinSearchQuery))
	}
	switch {
	case limit == 0:
		limit = DefaultSearchLimit
	case limit < 0 || limit > MaxSearchLimit:
		return nil, apperr.NewValidation(fmt.Sprintf("limit must be between 1 and %d", MaxSearchLimit))
	}

	return s.searcher.Search(ctx, query, limit)
}

func (s *Service) GetArticle(ctx context.Context, id uuid.UUID) (*domain.Article, error) {
	return s.store.Get(ctx, id)
}

func (s *Service) Summarize(ctx context.Context, id uuid.UUID) (summarize.Result, error) {
	res, err := s.summarizer.Summarize(ctx, id)
	if err != nil {
		return summarize.Result{}, err
	}
	if !res.Cached {
		s.reindex(ctx, id)
	}
	return res, nil
}

func (s *Service) AddBookmark(ctx context.Context, id uuid.UUID) (*domain.Article, error) {
	return s.store.SetBookmark(ctx, id, true)
}

func (s *Service) RemoveBookmark(ctx context.Context, id uuid.UUID) (*domain.Article, error) {
	return s.store.SetBookmark(ctx, id, false)
}

func (s *Service) ListCategories(ctx context.Context) ([]domain.CategoryCount, error) {
	return s.store.Categories(ctx)
}

func (s *Service) ResearchSearch(ctx context.Context, query string, tools []string, maxResults int) (*domain.ResearchResponse, error) {
	return s.agent.Search(ctx, research.Request{
		Query:      query,
		Tools:      tools,
		MaxResults: maxResults,
	})
}

// ResearchTool runs one tool directly, without planning or synthesis.
func (s *Service) ResearchTool(ctx context.Context, name, query string, maxResults int) (*domain.ResearchResponse, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	outcome, err := s.agent.Registry().Invoke(ctx, name, query, maxResults)
	if err != nil {
		return nil, err
	}
	return &domain.ResearchResponse{
		Query:   strings.TrimSpace(query),
		Sources: map[string]domain.ToolOutcome{name: outcome},
	}, nil
}

func (s *Service) ListResearchTools() []domain.ToolInfo {
	return s.agent.Registry().Infos()
}

func (s *Service) reindex(ctx context.Context, id uuid.UUID) {
	if s.indexer == nil {
		return
	}
	a, err := s.store.Get(ctx, id)
	if err != nil {
		slog.Warn("Failed to load summarized article for indexing", "id", id, "error", err)
		return
	}
	if err := s.indexer.IndexArticles(ctx, []domain.Article{*a}); err != nil {
		slog.Warn("Failed to re-index summarized article", "id", id, "error", err)
	}
}
