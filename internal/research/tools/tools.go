// Package tools holds the research tool adapters registered with the agent.
package tools

import (
	"strings"
	"time"

	"github.com/DjordjeVuckovic/ai-news-hunter/internal/research"
	"github.com/DjordjeVuckovic/ai-news-hunter/internal/source/arxiv"
	"github.com/DjordjeVuckovic/ai-news-hunter/pkg/httpclient"
	"golang.org/x/time/rate"
)

const (
	aiContext      = "AI machine learning deep learning"
	youtubeContext = "AI machine learning tutorial deep learning neural network"

	abstractMax    = 500
	descriptionMax = 300
)

type options struct {
	baseURL string
}

// Option configures a tool built on a single HTTP endpoint.
type Option func(*options)

// WithBaseURL points the tool at another endpoint, e.g. a test server.
func WithBaseURL(baseURL string) Option {
	return func(o *options) {
		o.baseURL = baseURL
	}
}

func resolveBaseURL(def string, opts []Option) string {
	o := options{baseURL: def}
	for _, opt := range opts {
		opt(&o)
	}
	return o.baseURL
}

func withAIContext(query string) string {
	return query + " " + aiContext
}

// matchesAny reports whether text contains any of the whitespace separated
// query terms, case-insensitively.
func matchesAny(query, text string) bool {
	text = strings.ToLower(text)
	for _, term := range strings.Fields(strings.ToLower(query)) {
		if strings.Contains(text, term) {
			return true
		}
	}
	return false
}

func headOf[S ~[]E, E any](items S, n int) S {
	if len(items) > n {
		return items[:n]
	}
	return items
}

// Defaults builds every research tool in display order from cfg.
func Defaults(cfg research.Config) []research.Tool {
	client := httpclient.New()

	return []research.Tool{
		NewArxiv(arxiv.NewClient()),
		NewWikipedia(client),
		NewWebSearch(client, cfg.TavilyAPIKey),
		NewYouTube(client, cfg.YouTubeAPIKey),
		NewSemanticScholar(httpclient.New(httpclient.WithRateLimit(rate.Every(time.Second), 1))),
		NewHuggingFace(client),
		NewGitHub(client, cfg.GitHubToken),
		NewPapersWithCode(client),
		NewAnthropic(client),
	}
}
