package tools

import (
	"context"
	"fmt"
	"net/url"
	"slices"
	"strconv"

	"github.com/DjordjeVuckovic/ai-news-hunter/internal/research"
	"github.com/DjordjeVuckovic/ai-news-hunter/pkg/httpclient"
)

const (
	DefaultWikipediaURL = "https://en.wikipedia.org/w/api.php"
	wikipediaMax        = 3
)

type WikiPage struct {
	Title   string `json:"title"`
	Summary string `json:"summary"`
	URL     string `json:"url"`
}

type Wikipedia struct {
	http    *httpclient.Client
	baseURL string
}

func NewWikipedia(client *httpclient.Client, opts ...Option) *Wikipedia {
	return &Wikipedia{http: client, baseURL: resolveBaseURL(DefaultWikipediaURL, opts)}
}

func (t *Wikipedia) Name() string { return "wikipedia" }

func (t *Wikipedia) Description() string {
	return "Search Wikipedia for general knowledge articles: background information, definitions, history, or broader context."
}

func (t *Wikipedia) RequiresAPIKey() bool { return false }
func (t *Wikipedia) Available() bool      { return true }

type wikiPage struct {
	Title   string `json:"title"`
	Index   int    `json:"index"`
	Extract string `json:"extract"`
	FullURL string `json:"fullurl"`
	Missing bool   `json:"missing"`
}

type wikiResponse struct {
	Query struct {
		Pages []wikiPage `json:"pages"`
	} `json:"query"`
}

func (t *Wikipedia) Search(ctx context.Context, query string, max int) (research.Results, error) {
	max = min(max, wikipediaMax)

	params := url.Values{}
	params.Set("action", "query")
	params.Set("format", "json")
	params.Set("formatversion", "2")
	params.Set("generator", "search")
	params.Set("gsrsearch", withAIContext(query))
	params.Set("gsrlimit", strconv.Itoa(max))
	params.Set("prop", "extracts|info")
	params.Set("inprop", "url")
	params.Set("exintro", "1")
	params.Set("explaintext", "1")
	params.Set("exsentences", "3")
	params.Set("exlimit", "max")

	var resp wikiResponse
	if err := t.http.GetJSON(ctx, t.baseURL+"?"+params.Encode(), &resp); err != nil {
		return nil, fmt.Errorf("failed to search wikipedia: %w", err)
	}

	pages := resp.Query.Pages
	slices.SortFunc(pages, func(a, b wikiPage) int {
		return a.Index - b.Index
	})

	out := make(research.List[WikiPage], 0, len(pages))
	for _, p := range pages {
		if p.Missing || p.Extract == "" {
			continue
		}
		out = append(out, WikiPage{Title: p.Title, Summary: p.Extract, URL: p.FullURL})
	}
	return headOf(out, max), nil
}
