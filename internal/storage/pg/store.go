package pg

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/DjordjeVuckovic/ai-news-hunter/internal/apperr"
	"github.com/DjordjeVuckovic/ai-news-hunter/internal/domain"
	"github.com/DjordjeVuckovic/ai-news-hunter/internal/storage"
	"github.com/DjordjeVuckovic/ai-news-hunter/pkg/pagination"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const articleColumns = `id, source, source_id, title, authors, COALESCE(abstract, ''), COALESCE(content, ''),
	COALESCE(summary, ''), url, COALESCE(pdf_url, ''), categories, published_at, fetched_at, is_bookmarked`

const upsertArticle = `
	INSERT INTO articles (id, source, source_id, title, authors, abstract, content, url, pdf_url, categories, published_at, fetched_at)
	VALUES ($1, $2, $3, $4, $5, NULLIF($6, ''), NULLIF($7, ''), $8, NULLIF($9, ''), $10, $11, $12)
	ON CONFLICT (source, source_id) DO UPDATE SET
		abstract     = COALESCE(articles.abstract, EXCLUDED.abstract),
		content      = COALESCE(articles.content, EXCLUDED.content),
		pdf_url      = COALESCE(articles.pdf_url, EXCLUDED.pdf_url),
		published_at = COALESCE(articles.published_at, EXCLUDED.published_at),
		authors      = CASE WHEN cardinality(articles.authors) = 0 THEN EXCLUDED.authors ELSE articles.authors END
	RETURNING id, (xmax = 0) AS inserted`

var _ storage.ArticleStore = (*Store)(nil)

type Store struct {
	db  DB
	now func() time.Time
}

type StoreOption func(*Store)

func WithClock(now func() time.Time) StoreOption {
	return func(s *Store) {
		s.now = now
	}
}

func NewStore(db DB, opts ...StoreOption) *Store {
	s := &Store{db: db, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Store) Upsert(ctx context.Context, article domain.Article) (storage.UpsertResult, error) {
	if article.ID == uuid.Nil {
		article.ID = uuid.New()
	}
	if article.FetchedAt.IsZero() {
		article.FetchedAt = s.now().UTC()
	}

	var res storage.UpsertResult
	err := s.db.QueryRow(
		ctx,
		upsertArticle,
		article.ID,
		string(article.Source),
		article.SourceID,
		article.Title,
		nonNil(article.Authors),
		article.Abstract,
		article.Content,
		article.URL,
		article.PDFURL,
		domain.NormalizeCategories(article.Categories),
		article.PublishedAt,
		article.FetchedAt,
	).Scan(&res.ID, &res.Inserted)
	if err != nil {
		return storage.UpsertResult{}, apperr.NewStoreFailure("upsert", err)
	}

	return res, nil
}

func (s *Store) ExistingKeys(ctx context.Context, keys []domain.ArticleKey) (map[domain.ArticleKey]uuid.UUID, error) {
	found := make(map[domain.ArticleKey]uuid.UUID, len(keys))
	if len(keys) == 0 {
		return found, nil
	}

	sources := make([]string, len(keys))
	ids := make([]string, len(keys))
	for i, k := range keys {
		sources[i] = string(k.Source)
		ids[i] = k.SourceID
	}

	rows, err := s.db.Query(ctx, `
		SELECT a.id, a.source, a.source_id
		FROM articles a
		JOIN unnest($1::text[], $2::text[]) AS k(source, source_id)
		  ON a.source = k.source AND a.source_id = k.source_id`,
		sources, ids,
	)
	if err != nil {
		return nil, apperr.NewStoreFailure("existing keys", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			id  uuid.UUID
			key domain.ArticleKey
			src string
		)
		if err := rows.Scan(&id, &src, &key.SourceID); err != nil {
			return nil, apperr.NewStoreFailure("existing keys", err)
		}
		key.Source = domain.Source(src)
		found[key] = id
	}
	if err := rows.Err(); err != nil {
		return nil, apperr.NewStoreFailure("existing keys", err)
	}

	return found, nil
}

func (s *Store) RecentTitles(ctx context.Context, since time.Time) ([]domain.TitleRef, error) {
	rows, err := s.db.Query(ctx, `
		SELECT id, source, source_id, title
		FROM articles
		WHERE fetched_at >= $1 OR published_at >= $1`,
		since,
	)
	if err != nil {
		return nil, apperr.NewStoreFailure("recent titles", err)
	}
	defer rows.Close()

	refs := make([]domain.TitleRef, 0)
	for rows.Next() {
		var (
			ref domain.TitleRef
			src string
		)
		if err := rows.Scan(&ref.ID, &src, &ref.Key.SourceID, &ref.Title); err != nil {
			return nil, apperr.NewStoreFailure("recent titles", err)
		}
		ref.Key.Source = domain.Source(src)
		refs = append(refs, ref)
	}
	if err := rows.Err(); err != nil {
		return nil, apperr.NewStoreFailure("recent titles", err)
	}

	return refs, nil
}

func (s *Store) Get(ctx context.Context, id uuid.UUID) (*domain.Article, error) {
	row := s.db.QueryRow(ctx, `SELECT `+articleColumns+` FROM articles WHERE id = $1`, id)

	article, err := scanArticle(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperr.NewNotFound("article", id.String())
	}
	if err != nil {
		return nil, apperr.NewStoreFailure("get", err)
	}

	return article, nil
}

func (s *Store) List(
	ctx context.Context,
	filter domain.ArticleFilter,
	page pagination.OffsetRequest,
) (*pagination.OffsetResult[domain.Article], error) {
	if err := page.Validate(); err != nil {
		return nil, apperr.NewValidationWrap("invalid page", err)
	}
	where, args := s.buildWhere(filter)

	var total int64
	if err := s.db.QueryRow(ctx, `SELECT COUNT(*) FROM articles`+where, args...).Scan(&total); err != nil {
		return nil, apperr.NewStoreFailure("count", err)
	}

	listArgs := append(args, page.Size, page.Offset())
	query := fmt.Sprintf(
		`SELECT %s FROM articles%s ORDER BY published_at DESC NULLS LAST, fetched_at DESC LIMIT $%d OFFSET $%d`,
		articleColumns, where, len(args)+1, len(args)+2,
	)

	slog.Debug("listing articles", "source", filter.Source, "category", filter.Category, "days", filter.Days, "page", page.Page)

	rows, err := s.db.Query(ctx, query, listArgs...)
	if err != nil {
		return nil, apperr.NewStoreFailure("list", err)
	}
	defer rows.Close()

	items := make([]domain.Article, 0, page.Size)
	for rows.Next() {
		a, err := scanArticle(rows)
		if err != nil {
			return nil, apperr.NewStoreFailure("list", err)
		}
		items = append(items, *a)
	}
	if err := rows.Err(); err != nil {
		return nil, apperr.NewStoreFailure("list", err)
	}

	return pagination.NewOffsetResult(items, total, page), nil
}

func (s *Store) buildWhere(filter domain.ArticleFilter) (string, []any) {
	var (
		conds []string
		args  []any
	)
	add := func(cond string, arg any) {
		args = append(args, arg)
		conds = append(conds, fmt.Sprintf(cond, len(args)))
	}

	if filter.Source != "" {
		add("source = $%d", string(filter.Source))
	}
	if filter.Category != "" {
		add("$%d = ANY(categories)", filter.Category)
	}
	if after := filter.PublishedAfter(s.now().UTC()); after != nil {
		add("published_at >= $%d", *after)
	}
	if filter.BookmarkedOnly {
		conds = append(conds, "is_bookmarked")
	}

	if len(conds) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

func (s *Store) Search(ctx context.Context, query string, limit int) ([]domain.ArticleSearchHit, error) {
	rows, err := s.db.Query(ctx, `
		SELECT id, source, title, COALESCE(abstract, ''), COALESCE(summary, ''), url, categories, published_at,
			ts_rank(search_vector, websearch_to_tsquery('english', $1))::float8 AS rank
		FROM articles
		WHERE search_vector @@ websearch_to_tsquery('english', $1)
		ORDER BY rank DESC, published_at DESC NULLS LAST
		LIMIT $2`,
		query, limit,
	)
	if err != nil {
		return nil, apperr.NewStoreFailure("search", err)
	}
	defer rows.Close()

	hits := make([]domain.ArticleSearchHit, 0)
	for rows.Next() {
		var (
			hit domain.ArticleSearchHit
			src string
		)
		if err := rows.Scan(
			&hit.ID,
			&src,
			&hit.Title,
			&hit.Abstract,
			&hit.Summary,
			&hit.URL,
			&hit.Categories,
			&hit.PublishedAt,
			&hit.Rank,
		); err != nil {
			return nil, apperr.NewStoreFailure("search", err)
		}
		hit.Source = domain.Source(src)
		hits = append(hits, hit)
	}
	if err := rows.Err(); err != nil {
		return nil, apperr.NewStoreFailure("search", err)
	}

	return hits, nil
}

// SetSummary stores summary only if the article has none yet and returns the
// summary that is persisted after the call.
func (s *Store) SetSummary(ctx context.Context, id uuid.UUID, summary string) (string, error) {
	var persisted string
	err := s.db.QueryRow(ctx, `
		UPDATE articles SET summary = COALESCE(summary, $2)
		WHERE id = $1
		RETURNING summary`,
		id, summary,
	).Scan(&persisted)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", apperr.NewNotFound("article", id.String())
	}
	if err != nil {
		return "", apperr.NewStoreFailure("set summary", err)
	}

	return persisted, nil
}

func (s *Store) SetBookmark(ctx context.Context, id uuid.UUID, bookmarked bool) (*domain.Article, error) {
	row := s.db.QueryRow(ctx, `UPDATE articles SET is_bookmarked = $2 WHERE id = $1 RETURNING `+articleColumns, id, bookmarked)

	article, err := scanArticle(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperr.NewNotFound("article", id.String())
	}
	if err != nil {
		return nil, apperr.NewStoreFailure("set bookmark", err)
	}

	return article, nil
}

func (s *Store) Categories(ctx context.Context) ([]domain.CategoryCount, error) {
	rows, err := s.db.Query(ctx, `
		SELECT c, COUNT(*) AS n
		FROM articles, unnest(categories) AS c
		GROUP BY c
		ORDER BY n DESC, c`)
	if err != nil {
		return nil, apperr.NewStoreFailure("categories", err)
	}
	defer rows.Close()

	counts := make([]domain.CategoryCount, 0)
	for rows.Next() {
		var cc domain.CategoryCount
		if err := rows.Scan(&cc.Name, &cc.Count); err != nil {
			return nil, apperr.NewStoreFailure("categories", err)
		}
		counts = append(counts, cc)
	}
	if err := rows.Err(); err != nil {
		return nil, apperr.NewStoreFailure("categories", err)
	}

	return counts, nil
}

func scanArticle(row pgx.Row) (*domain.Article, error) {
	var (
		a   domain.Article
		src string
	)
	err := row.Scan(
		&a.ID,
		&src,
		&a.SourceID,
		&a.Title,
		&a.Authors,
		&a.Abstract,
		&a.Content,
		&a.Summary,
		&a.URL,
		&a.PDFURL,
		&a.Categories,
		&a.PublishedAt,
		&a.FetchedAt,
		&a.IsBookmarked,
	)
	if err != nil {
		return nil, err
	}
	a.Source = domain.Source(src)
	a.Authors = nonNil(a.Authors)
	a.Categories = nonNil(a.Categories)
	return &a, nil
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
