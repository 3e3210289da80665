package ingest

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/DjordjeVuckovic/ai-news-hunter/internal/apperr"
	"github.com/DjordjeVuckovic/ai-news-hunter/internal/dedup"
	"github.com/DjordjeVuckovic/ai-news-hunter/internal/domain"
	"github.com/DjordjeVuckovic/ai-news-hunter/internal/fetcher"
	"github.com/DjordjeVuckovic/ai-news-hunter/internal/ingest/collector"
	"github.com/DjordjeVuckovic/ai-news-hunter/internal/metrics"
	"github.com/DjordjeVuckovic/ai-news-hunter/internal/storage"
	"github.com/google/uuid"
)

// DefaultRecentWindow bounds how far back persisted titles are compared for
// near-duplicates.
const DefaultRecentWindow = 30 * 24 * time.Hour

// Store is the part of the article store a refresh needs.
type Store interface {
	Upsert(ctx context.Context, article domain.Article) (storage.UpsertResult, error)
	Get(ctx context.Context, id uuid.UUID) (*domain.Article, error)
	ExistingKeys(ctx context.Context, keys []domain.ArticleKey) (map[domain.ArticleKey]uuid.UUID, error)
	RecentTitles(ctx context.Context, since time.Time) ([]domain.TitleRef, error)
}

type Categorizer interface {
	Categorize(ctx context.Context, article domain.Article) []string
}

type Pipeline struct {
	registry     *fetcher.Registry
	store        Store
	dedup        *dedup.Deduplicator
	categorizer  Categorizer
	indexer      storage.Indexer
	maxResults   int
	recentWindow time.Duration
	now          func() time.Time
}

type PipelineOption func(*Pipeline)

func WithCategorizer(c Categorizer) PipelineOption {
	return func(p *Pipeline) {
		p.categorizer = c
	}
}

// WithIndexer pushes stored articles into a search index after each refresh.
func WithIndexer(idx storage.Indexer) PipelineOption {
	return func(p *Pipeline) {
		p.indexer = idx
	}
}

func WithDeduplicator(d *dedup.Deduplicator) PipelineOption {
	return func(p *Pipeline) {
		p.dedup = d
	}
}

func WithMaxResults(n int) PipelineOption {
	return func(p *Pipeline) {
		if n > 0 {
			p.maxResults = n
		}
	}
}

func WithRecentWindow(d time.Duration) PipelineOption {
	return func(p *Pipeline) {
		p.recentWindow = d
	}
}

func WithClock(now func() time.Time) PipelineOption {
	return func(p *Pipeline) {
		p.now = now
	}
}

func NewPipeline(registry *fetcher.Registry, store Store, opts ...PipelineOption) *Pipeline {
	p := &Pipeline{
		registry:     registry,
		store:        store,
		dedup:        dedup.New(),
		maxResults:   fetcher.DefaultMaxResults,
		recentWindow: DefaultRecentWindow,
		now:          time.Now,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Sources lists the sources the pipeline can refresh.
func (p *Pipeline) Sources() []domain.Source {
	return p.registry.Sources()
}

// RefreshAll fetches every registered source.
func (p *Pipeline) RefreshAll(ctx context.Context) (*domain.RefreshReport, error) {
	return p.run(ctx, p.registry.All())
}

// Refresh fetches a single source.
func (p *Pipeline) Refresh(ctx context.Context, source domain.Source) (*domain.RefreshReport, error) {
	f, ok := p.registry.Get(source)
	if !ok {
		return nil, apperr.NewValidation(fmt.Sprintf("unknown source: %q", source))
	}
	return p.run(ctx, []fetcher.Fetcher{f})
}

func (p *Pipeline) run(ctx context.Context, fetchers []fetcher.Fetcher) (*domain.RefreshReport, error) {
	start := time.Now()

	results, err := collector.NewFetchCollector(fetchers, p.maxResults).Collect(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to collect articles: %w", err)
	}
	batches, err := collector.Drain(ctx, results)
	if err != nil {
		return nil, err
	}

	report := &domain.RefreshReport{Sources: make(map[domain.Source]domain.SourceOutcome, len(fetchers))}
	bySource := make(map[domain.Source][]domain.Article, len(batches))
	for _, res := range batches {
		outcome := outcomeOf(res)
		report.Sources[outcome.Source] = outcome
		bySource[outcome.Source] = res.Result.Articles
		metrics.RecordFetch(string(outcome.Source), string(outcome.Status), outcome.Fetched)
	}

	// registration order keeps first-seen dedup deterministic
	var fetched []domain.Article
	for _, f := range fetchers {
		fetched = append(fetched, bySource[f.Source()]...)
	}
	report.Fetched = len(fetched)

	unique := p.dedup.Dedupe(fetched)
	report.Unique = len(unique)

	stored, err := p.persist(ctx, unique, report)
	if err != nil {
		return nil, err
	}

	metrics.RecordStored(report.Saved, report.Updated)
	p.index(ctx, stored)

	slog.Info("Refresh completed",
		"sources", len(fetchers),
		"fetched", report.Fetched,
		"unique", report.Unique,
		"saved", report.Saved,
		"updated", report.Updated,
		"duration", time.Since(start))

	return report, nil
}

func outcomeOf(res collector.Result[collector.SourceBatch]) domain.SourceOutcome {
	batch := res.Result
	outcome := domain.SourceOutcome{
		Source:  batch.Source,
		Status:  domain.FetchSuccess,
		Fetched: len(batch.Articles),
	}
	if res.Err != nil {
		outcome.Status = domain.FetchError
		if len(batch.Articles) > 0 {
			outcome.Status = domain.FetchPartial
		}
		outcome.Error = apperr.NewSourceUnavailable(string(batch.Source), res.Err).Error()
	}
	return outcome
}

// persist stores the deduplicated batch. Candidates matching a persisted
// title from another source are re-keyed so the upsert enriches that row.
// Only articles new to the store are categorized.
func (p *Pipeline) persist(ctx context.Context, unique []domain.Article, report *domain.RefreshReport) ([]uuid.UUID, error) {
	if len(unique) == 0 {
		return nil, nil
	}

	now := p.now().UTC()

	recent, err := p.store.RecentTitles(ctx, now.Add(-p.recentWindow))
	if err != nil {
		return nil, err
	}
	candidates, rekeyed := p.dedup.AgainstExisting(unique, recent)
	if rekeyed > 0 {
		slog.Debug("Matched candidates to persisted articles", "count", rekeyed)
	}

	keys := make([]domain.ArticleKey, len(candidates))
	for i := range candidates {
		keys[i] = candidates[i].Key()
	}
	existing, err := p.store.ExistingKeys(ctx, keys)
	if err != nil {
		return nil, err
	}

	ids := make([]uuid.UUID, 0, len(candidates))
	// Re-keying can map several candidates onto one persisted row. Each still
	// enriches it, but the row is reported once.
	seen := make(map[domain.ArticleKey]struct{}, len(candidates))
	for _, a := range candidates {
		_, stored := existing[a.Key()]
		_, repeat := seen[a.Key()]
		if !stored && !repeat && p.categorizer != nil {
			a.Categories = domain.NormalizeCategories(a.Categories, p.categorizer.Categorize(ctx, a))
		}
		a.FetchedAt = now

		res, err := p.store.Upsert(ctx, a)
		if err != nil {
			return nil, err
		}
		if repeat {
			continue
		}
		seen[a.Key()] = struct{}{}

		if res.Inserted {
			report.Saved++
		} else {
			report.Updated++
		}
		ids = append(ids, res.ID)
	}

	return ids, nil
}

// index re-reads stored rows so enriched updates reach the search index.
// Index failures are logged; the store stays the source of truth.
func (p *Pipeline) index(ctx context.Context, ids []uuid.UUID) {
	if p.indexer == nil || len(ids) == 0 {
		return
	}

	articles := make([]domain.Article, 0, len(ids))
	for _, id := range ids {
		a, err := p.store.Get(ctx, id)
		if err != nil {
			slog.Warn("Skipping article for indexing", "id", id, "error", err)
			continue
		}
		articles = append(articles, *a)
	}

	if err := p.indexer.IndexArticles(ctx, articles); err != nil {
		slog.Error("Failed to index articles", "count", len(articles), "error", err)
	}
}
