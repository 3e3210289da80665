package in_mem

import (
	"context"
	"log/slog"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/DjordjeVuckovic/ai-news-hunter/internal/apperr"
	"github.com/DjordjeVuckovic/ai-news-hunter/internal/domain"
	"github.com/DjordjeVuckovic/ai-news-hunter/internal/storage"
	"github.com/DjordjeVuckovic/ai-news-hunter/pkg/pagination"
	"github.com/google/uuid"
)

var _ storage.ArticleStore = (*Store)(nil)

// Store keeps articles in process memory. It is meant for tests and local runs.
type Store struct {
	storageLock sync.RWMutex
	storage     map[uuid.UUID]domain.Article
	keys        map[domain.ArticleKey]uuid.UUID
	now         func() time.Time
}

func NewStore() *Store {
	return &Store{
		storage: make(map[uuid.UUID]domain.Article),
		keys:    make(map[domain.ArticleKey]uuid.UUID),
		now:     time.Now,
	}
}

func (s *Store) Upsert(_ context.Context, article domain.Article) (storage.UpsertResult, error) {
	s.storageLock.Lock()
	defer s.storageLock.Unlock()

	if id, ok := s.keys[article.Key()]; ok {
		existing := s.storage[id]
		enrich(&existing, article)
		s.storage[id] = existing
		return storage.UpsertResult{ID: id}, nil
	}

	if article.ID == uuid.Nil {
		article.ID = uuid.New()
	}
	if article.FetchedAt.IsZero() {
		article.FetchedAt = s.now().UTC()
	}
	article.Authors = cloneOrEmpty(article.Authors)
	article.Categories = domain.NormalizeCategories(article.Categories)
	article.Summary = ""
	article.IsBookmarked = false

	s.storage[article.ID] = article
	s.keys[article.Key()] = article.ID
	slog.Debug("saved article in memory", "id", article.ID, "source", article.Source, "title", article.Title)

	return storage.UpsertResult{ID: article.ID, Inserted: true}, nil
}

func enrich(dst *domain.Article, src domain.Article) {
	if dst.Abstract == "" {
		dst.Abstract = src.Abstract
	}
	if dst.Content == "" {
		dst.Content = src.Content
	}
	if dst.PDFURL == "" {
		dst.PDFURL = src.PDFURL
	}
	if dst.PublishedAt == nil {
		dst.PublishedAt = src.PublishedAt
	}
	if len(dst.Authors) == 0 {
		dst.Authors = cloneOrEmpty(src.Authors)
	}
}

func (s *Store) ExistingKeys(_ context.Context, keys []domain.ArticleKey) (map[domain.ArticleKey]uuid.UUID, error) {
	s.storageLock.RLock()
	defer s.storageLock.RUnlock()

	found := make(map[domain.ArticleKey]uuid.UUID, len(keys))
	for _, k := range keys {
		if id, ok := s.keys[k]; ok {
			found[k] = id
		}
	}
	return found, nil
}

func (s *Store) RecentTitles(_ context.Context, since time.Time) ([]domain.TitleRef, error) {
	s.storageLock.RLock()
	defer s.storageLock.RUnlock()

	refs := make([]domain.TitleRef, 0)
	for _, a := range s.storage {
		recent := !a.FetchedAt.Before(since) || (a.PublishedAt != nil && !a.PublishedAt.Before(since))
		if recent {
			refs = append(refs, domain.TitleRef{ID: a.ID, Key: a.Key(), Title: a.Title})
		}
	}
	return refs, nil
}

func (s *Store) Get(_ context.Context, id uuid.UUID) (*domain.Article, error) {
	s.storageLock.RLock()
	defer s.storageLock.RUnlock()

	a, ok := s.storage[id]
	if !ok {
		return nil, apperr.NewNotFound("article", id.String())
	}
	return &a, nil
}

func (s *Store) List(
	_ context.Context,
	filter domain.ArticleFilter,
	page pagination.OffsetRequest,
) (*pagination.OffsetResult[domain.Article], error) {
	if err := page.Validate(); err != nil {
		return nil, apperr.NewValidationWrap("invalid page", err)
	}
	after := filter.PublishedAfter(s.now().UTC())

	s.storageLock.RLock()
	matched := make([]domain.Article, 0)
	for _, a := range s.storage {
		if filter.Source != "" && a.Source != filter.Source {
			continue
		}
		if filter.Category != "" && !a.HasCategory(filter.Category) {
			continue
		}
		if after != nil && (a.PublishedAt == nil || a.PublishedAt.Before(*after)) {
			continue
		}
		if filter.BookmarkedOnly && !a.IsBookmarked {
			continue
		}
		matched = append(matched, a)
	}
	s.storageLock.RUnlock()

	slices.SortFunc(matched, compareRecency)

	total := int64(len(matched))
	start := min(page.Offset(), len(matched))
	end := min(start+page.Size, len(matched))

	return pagination.NewOffsetResult(matched[start:end], total, page), nil
}

// compareRecency orders by published date descending with undated articles
// last, then by fetch time descending.
func compareRecency(a, b domain.Article) int {
	switch {
	case a.PublishedAt != nil && b.PublishedAt == nil:
		return -1
	case a.PublishedAt == nil && b.PublishedAt != nil:
		return 1
	case a.PublishedAt != nil && b.PublishedAt != nil && !a.PublishedAt.Equal(*b.PublishedAt):
		return b.PublishedAt.Compare(*a.PublishedAt)
	}
	return b.FetchedAt.Compare(a.FetchedAt)
}

func (s *Store) Search(_ context.Context, query string, limit int) ([]domain.ArticleSearchHit, error) {
	terms := strings.Fields(strings.ToLower(query))
	if len(terms) == 0 {
		return []domain.ArticleSearchHit{}, nil
	}

	s.storageLock.RLock()
	hits := make([]domain.ArticleSearchHit, 0)
	for _, a := range s.storage {
		rank := score(a, terms)
		if rank == 0 {
			continue
		}
		hits = append(hits, domain.ArticleSearchHit{
			ID:          a.ID,
			Source:      a.Source,
			Title:       a.Title,
			Abstract:    a.Abstract,
			Summary:     a.Summary,
			URL:         a.URL,
			Categories:  a.Categories,
			PublishedAt: a.PublishedAt,
			Rank:        rank,
		})
	}
	s.storageLock.RUnlock()

	slices.SortFunc(hits, func(a, b domain.ArticleSearchHit) int {
		if a.Rank != b.Rank {
			if a.Rank > b.Rank {
				return -1
			}
			return 1
		}
		return strings.Compare(a.Title, b.Title)
	})
	if limit > 0 && len(hits) > limit {
		hits = hits[:limit]
	}
	return hits, nil
}

// score weights term occurrences the same way the postgres tsvector does:
// title over abstract over summary over content.
func score(a domain.Article, terms []string) float64 {
	fields := []struct {
		text   string
		weight float64
	}{
		{a.Title, 1.0},
		{a.Abstract, 0.4},
		{a.Summary, 0.2},
		{a.Content, 0.1},
	}

	var total float64
	for _, f := range fields {
		text := strings.ToLower(f.text)
		for _, t := range terms {
			total += f.weight * float64(strings.Count(text, t))
		}
	}
	return total
}

func (s *Store) SetSummary(_ context.Context, id uuid.UUID, summary string) (string, error) {
	s.storageLock.Lock()
	defer s.storageLock.Unlock()

	a, ok := s.storage[id]
	if !ok {
		return "", apperr.NewNotFound("article", id.String())
	}
	if a.Summary == "" {
		a.Summary = summary
		s.storage[id] = a
	}
	return a.Summary, nil
}

func (s *Store) SetBookmark(_ context.Context, id uuid.UUID, bookmarked bool) (*domain.Article, error) {
	s.storageLock.Lock()
	defer s.storageLock.Unlock()

	a, ok := s.storage[id]
	if !ok {
		return nil, apperr.NewNotFound("article", id.String())
	}
	a.IsBookmarked = bookmarked
	s.storage[id] = a
	return &a, nil
}

func (s *Store) Categories(_ context.Context) ([]domain.CategoryCount, error) {
	s.storageLock.RLock()
	counts := make(map[string]int64)
	for _, a := range s.storage {
		for _, c := range a.Categories {
			counts[c]++
		}
	}
	s.storageLock.RUnlock()

	out := make([]domain.CategoryCount, 0, len(counts))
	for name, n := range counts {
		out = append(out, domain.CategoryCount{Name: name, Count: n})
	}
	slices.SortFunc(out, func(a, b domain.CategoryCount) int {
		if a.Count != b.Count {
			if a.Count > b.Count {
				return -1
			}
			return 1
		}
		return strings.Compare(a.Name, b.Name)
	})
	return out, nil
}

func cloneOrEmpty(s []string) []string {
	if len(s) == 0 {
		return []string{}
	}
	return slices.Clone(s)
}
