package tools

import (
	"context"
	"fmt"

	"github.com/DjordjeVuckovic/ai-news-hunter/internal/research"
	"github.com/DjordjeVuckovic/ai-news-hunter/internal/source/arxiv"
	"github.com/DjordjeVuckovic/ai-news-hunter/pkg/stringsutil"
)

type Paper struct {
	Title     string   `json:"title"`
	Authors   []string `json:"authors"`
	Abstract  string   `json:"abstract"`
	URL       string   `json:"url"`
	PDFURL    string   `json:"pdf_url,omitempty"`
	Published string   `json:"published,omitempty"`
}

type Arxiv struct {
	client *arxiv.Client
}

func NewArxiv(client *arxiv.Client) *Arxiv {
	return &Arxiv{client: client}
}

func (t *Arxiv) Name() string { return "arxiv" }

func (t *Arxiv) Description() string {
	return "Search arXiv for academic papers and preprints about AI, machine learning, and related topics."
}

func (t *Arxiv) RequiresAPIKey() bool { return false }
func (t *Arxiv) Available() bool      { return true }

func (t *Arxiv) Search(ctx context.Context, query string, max int) (research.Results, error) {
	entries, err := t.client.Query(ctx, arxiv.Query{
		SearchQuery: withAIContext(query),
		SortBy:      arxiv.SortByRelevance,
		MaxResults:  max,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to search arxiv: %w", err)
	}

	papers := make(research.List[Paper], 0, len(entries))
	for _, e := range headOf(entries, max) {
		p := Paper{
			Title:    e.Title,
			Authors:  headOf(e.Authors, 3),
			Abstract: stringsutil.Truncate(e.Abstract, abstractMax),
			URL:      e.URL,
			PDFURL:   e.PDFURL,
		}
		if e.Published != nil {
			p.Published = e.Published.Format("2006-01-02")
		}
		papers = append(papers, p)
	}
	return papers, nil
}
