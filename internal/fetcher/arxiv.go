package fetcher

import (
	"context"
	"fmt"

	"github.com/DjordjeVuckovic/ai-news-hunter/internal/domain"
	"github.com/DjordjeVuckovic/ai-news-hunter/internal/source/arxiv"
)

const arxivSourcePrefix = "arxiv:"

type ArxivFetcher struct {
	client      *arxiv.Client
	searchQuery string
}

type ArxivOption func(*ArxivFetcher)

func NewArxivFetcher(client *arxiv.Client, opts ...ArxivOption) *ArxivFetcher {
	f := &ArxivFetcher{
		client:      client,
		searchQuery: arxiv.DefaultCategoryQuery,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

func WithArxivQuery(q string) ArxivOption {
	return func(f *ArxivFetcher) {
		f.searchQuery = q
	}
}

func (f *ArxivFetcher) Source() domain.Source {
	return domain.SourceArxiv
}

func (f *ArxivFetcher) Fetch(ctx context.Context, maxResults int) ([]domain.Article, error) {
	entries, err := f.client.Query(ctx, arxiv.Query{
		SearchQuery: f.searchQuery,
		SortBy:      arxiv.SortBySubmittedDate,
		MaxResults:  maxResults,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch arxiv papers: %w", err)
	}

	articles := make([]domain.Article, 0, len(entries))
	for _, e := range entries {
		if e.Title == "" {
			continue
		}
		categories := make([]string, 0, len(e.Categories))
		for _, c := range e.Categories {
			categories = append(categories, arxiv.MapCategory(c))
		}

		articles = append(articles, domain.Article{
			Source:      domain.SourceArxiv,
			SourceID:    arxivSourcePrefix + e.ID,
			Title:       e.Title,
			Authors:     e.Authors,
			Abstract:    e.Abstract,
			URL:         e.URL,
			PDFURL:      e.PDFURL,
			Categories:  domain.NormalizeCategories(categories),
			PublishedAt: e.Published,
		})
	}

	return articles, nil
}
