package tools

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/DjordjeVuckovic/ai-news-hunter/internal/research"
	"github.com/DjordjeVuckovic/ai-news-hunter/pkg/httpclient"
	"github.com/DjordjeVuckovic/ai-news-hunter/pkg/stringsutil"
)

const DefaultTavilyURL = "https://api.tavily.com/search"

var errMissingKey = errors.New("api key not configured")

type WebHit struct {
	Title   string  `json:"title"`
	Content string  `json:"content"`
	URL     string  `json:"url"`
	Score   float64 `json:"score"`
}

// WebSearch is the Tavily result: an optional generated answer plus hits.
type WebSearch struct {
	Answer string   `json:"answer,omitempty"`
	Hits   []WebHit `json:"results"`
}

func (w WebSearch) Count() int {
	return len(w.Hits)
}

type Tavily struct {
	http    *httpclient.Client
	apiKey  string
	baseURL string
}

func NewWebSearch(client *httpclient.Client, apiKey string, opts ...Option) *Tavily {
	return &Tavily{http: client, apiKey: apiKey, baseURL: resolveBaseURL(DefaultTavilyURL, opts)}
}

func (t *Tavily) Name() string { return "web_search" }

func (t *Tavily) Description() string {
	return "Search the web for recent news, blog posts, tutorials, and general content about current developments."
}

func (t *Tavily) RequiresAPIKey() bool { return true }
func (t *Tavily) Available() bool      { return t.apiKey != "" }

type tavilyRequest struct {
	Query         string `json:"query"`
	SearchDepth   string `json:"search_depth"`
	MaxResults    int    `json:"max_results"`
	IncludeAnswer bool   `json:"include_answer"`
}

type tavilyResponse struct {
	Answer  string `json:"answer"`
	Results []struct {
		Title   string  `json:"title"`
		Content string  `json:"content"`
		URL     string  `json:"url"`
		Score   float64 `json:"score"`
	} `json:"results"`
}

func (t *Tavily) Search(ctx context.Context, query string, max int) (research.Results, error) {
	if !t.Available() {
		return nil, errMissingKey
	}

	var resp tavilyResponse
	err := t.http.PostJSON(ctx, t.baseURL, tavilyRequest{
		Query:         withAIContext(query),
		SearchDepth:   "basic",
		MaxResults:    max,
		IncludeAnswer: true,
	}, &resp, http.Header{"Authorization": []string{"Bearer " + t.apiKey}})
	if err != nil {
		return nil, fmt.Errorf("failed to search tavily: %w", err)
	}

	out := WebSearch{Answer: resp.Answer, Hits: make([]WebHit, 0, len(resp.Results))}
	for _, r := range headOf(resp.Results, max) {
		out.Hits = append(out.Hits, WebHit{
			Title:   r.Title,
			Content: stringsutil.Clip(r.Content, descriptionMax),
			URL:     r.URL,
			Score:   r.Score,
		})
	}
	return out, nil
}
