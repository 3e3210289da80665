package domain

import (
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Source identifies the origin category of an article.
type Source string

const (
	// SourceArxiv is the academic paper feed.
	SourceArxiv Source = "arxiv"
	// SourceHuggingFace is the model-hub feed (blog and daily papers).
	SourceHuggingFace Source = "huggingface"
	SourceBlog        Source = "blog"
	// SourceAggregator covers link aggregators such as HackerNews and Reddit.
	SourceAggregator Source = "aggregator"
)

var Sources = []Source{SourceArxiv, SourceHuggingFace, SourceBlog, SourceAggregator}

func (s Source) Valid() bool {
	return slices.Contains(Sources, s)
}

func ParseSource(raw string) (Source, bool) {
	s := Source(strings.ToLower(strings.TrimSpace(raw)))
	return s, s.Valid()
}

type Article struct {
	ID           uuid.UUID  `json:"id"`
	Source       Source     `json:"source"`
	SourceID     string     `json:"source_id"`
	Title        string     `json:"title"`
	Authors      []string   `json:"authors"`
	Abstract     string     `json:"abstract,omitempty"`
	Content      string     `json:"content,omitempty"`
	Summary      string     `json:"summary,omitempty"`
	URL          string     `json:"url"`
	PDFURL       string     `json:"pdf_url,omitempty"`
	Categories   []string   `json:"categories"`
	PublishedAt  *time.Time `json:"published_at,omitempty"`
	FetchedAt    time.Time  `json:"fetched_at"`
	IsBookmarked bool       `json:"is_bookmarked"`
}

// ArticleKey is the authoritative dedup key of an article.
type ArticleKey struct {
	Source   Source
	SourceID string
}

func (a *Article) Key() ArticleKey {
	return ArticleKey{Source: a.Source, SourceID: a.SourceID}
}

// Richness counts the optional long-form fields that are populated.
func (a *Article) Richness() int {
	n := 0
	if strings.TrimSpace(a.Abstract) != "" {
		n++
	}
	if strings.TrimSpace(a.Content) != "" {
		n++
	}
	return n
}

func (a *Article) HasCategory(category string) bool {
	return slices.Contains(a.Categories, category)
}

// TitleRef is the minimal projection of a persisted article used for
// near-duplicate matching.
type TitleRef struct {
	ID    uuid.UUID
	Key   ArticleKey
	Title string
}

// ArticleSearchHit is one full-text search match.
type ArticleSearchHit struct {
	ID          uuid.UUID  `json:"id"`
	Source      Source     `json:"source"`
	Title       string     `json:"title"`
	Abstract    string     `json:"abstract,omitempty"`
	Summary     string     `json:"summary,omitempty"`
	URL         string     `json:"url"`
	Categories  []string   `json:"categories"`
	PublishedAt *time.Time `json:"published_at,omitempty"`
	Rank        float64    `json:"rank"`
}

type CategoryCount struct {
	Name  string `json:"name"`
	Count int64  `json:"count"`
}

// NormalizeCategories trims, drops empties and sorts a category list so it
// behaves as a set.
func NormalizeCategories(categories ...[]string) []string {
	seen := make(map[string]struct{})
	out := make([]string, 0)
	for _, list := range categories {
		for _, c := range list {
			c = strings.TrimSpace(c)
			if c == "" {
				continue
			}
			if _, ok := seen[c]; ok {
				continue
			}
			seen[c] = struct{}{}
			out = append(out, c)
		}
	}
	slices.Sort(out)
	return out
}
