package es

import (
	"time"

	"github.com/DjordjeVuckovic/ai-news-hunter/internal/domain"
	"github.com/google/uuid"
)

// ArticleDocument is the indexed shape of an article.
type ArticleDocument struct {
	ID          string     `json:"id"`
	Source      string     `json:"source"`
	SourceID    string     `json:"source_id"`
	Title       string     `json:"title"`
	Authors     []string   `json:"authors"`
	Abstract    string     `json:"abstract"`
	Content     string     `json:"content"`
	Summary     string     `json:"summary"`
	URL         string     `json:"url"`
	Categories  []string   `json:"categories"`
	PublishedAt *time.Time `json:"published_at,omitempty"`
	FetchedAt   time.Time  `json:"fetched_at"`
	IndexedAt   time.Time  `json:"indexed_at"`
}

func toDocument(a domain.Article, indexedAt time.Time) ArticleDocument {
	return ArticleDocument{
		ID:          a.ID.String(),
		Source:      string(a.Source),
		SourceID:    a.SourceID,
		Title:       a.Title,
		Authors:     a.Authors,
		Abstract:    a.Abstract,
		Content:     a.Content,
		Summary:     a.Summary,
		URL:         a.URL,
		Categories:  a.Categories,
		PublishedAt: a.PublishedAt,
		FetchedAt:   a.FetchedAt,
		IndexedAt:   indexedAt,
	}
}

func (d ArticleDocument) toHit(score float64) (domain.ArticleSearchHit, error) {
	id, err := uuid.Parse(d.ID)
	if err != nil {
		return domain.ArticleSearchHit{}, err
	}
	categories := d.Categories
	if categories == nil {
		categories = []string{}
	}
	return domain.ArticleSearchHit{
		ID:          id,
		Source:      domain.Source(d.Source),
		Title:       d.Title,
		Abstract:    d.Abstract,
		Summary:     d.Summary,
		URL:         d.URL,
		Categories:  categories,
		PublishedAt: d.PublishedAt,
		Rank:        score,
	}, nil
}
