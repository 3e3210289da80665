package storage

import (
	"context"
	"time"

	"github.com/DjordjeVuckovic/ai-news-hunter/internal/domain"
	"github.com/DjordjeVuckovic/ai-news-hunter/pkg/pagination"
	"github.com/google/uuid"
)

type Type string

const (
	PG    Type = "pg"
	InMem Type = "in_mem"
	// ES is only available as a search index next to a primary store.
	ES Type = "es"
)

type StorerError string

const (
	ErrUnsupportedStorer StorerError = "unsupported storer type: %s"
)

func (e StorerError) Error() string {
	return string(e)
}

type UpsertResult struct {
	ID       uuid.UUID
	Inserted bool
}

// Storer writes articles keyed by (source, source_id).
type Storer interface {
	// Upsert inserts the article if its key is absent. Otherwise it fills the
	// stored row's empty abstract, content, pdf url, authors and publish
	// date from the article, and leaves every other field untouched.
	Upsert(ctx context.Context, article domain.Article) (UpsertResult, error)
	SetSummary(ctx context.Context, id uuid.UUID, summary string) (string, error)
	SetBookmark(ctx context.Context, id uuid.UUID, bookmarked bool) (*domain.Article, error)
}

type Reader interface {
	Get(ctx context.Context, id uuid.UUID) (*domain.Article, error)
	List(ctx context.Context, filter domain.ArticleFilter, page pagination.OffsetRequest) (*pagination.OffsetResult[domain.Article], error)
	ExistingKeys(ctx context.Context, keys []domain.ArticleKey) (map[domain.ArticleKey]uuid.UUID, error)
	RecentTitles(ctx context.Context, since time.Time) ([]domain.TitleRef, error)
	Categories(ctx context.Context) ([]domain.CategoryCount, error)
}

// Searcher is a read-only full-text search over title, abstract, summary and content.
type Searcher interface {
	Search(ctx context.Context, query string, limit int) ([]domain.ArticleSearchHit, error)
}

// Indexer mirrors stored articles into an external search index.
type Indexer interface {
	IndexArticles(ctx context.Context, articles []domain.Article) error
}

type ArticleStore interface {
	Storer
	Reader
	Searcher
}
