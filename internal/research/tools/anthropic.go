package tools

import (
	"bytes"
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/DjordjeVuckovic/ai-news-hunter/internal/research"
	"github.com/DjordjeVuckovic/ai-news-hunter/pkg/httpclient"
	"github.com/DjordjeVuckovic/ai-news-hunter/pkg/stringsutil"
	"github.com/PuerkitoBio/goquery"
)

const (
	DefaultAnthropicResearchURL = "https://www.anthropic.com/research"
	minPostTitle                = 10
)

type ResearchPost struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	URL         string `json:"url"`
}

// Anthropic scrapes the Anthropic research index and keeps posts whose
// title or teaser mentions a query term.
type Anthropic struct {
	http    *httpclient.Client
	pageURL string
}

func NewAnthropic(client *httpclient.Client, opts ...Option) *Anthropic {
	return &Anthropic{http: client, pageURL: resolveBaseURL(DefaultAnthropicResearchURL, opts)}
}

func (t *Anthropic) Name() string { return "anthropic" }

func (t *Anthropic) Description() string {
	return "Search Anthropic's research page for articles about Claude, constitutional AI, and AI safety."
}

func (t *Anthropic) RequiresAPIKey() bool { return false }
func (t *Anthropic) Available() bool      { return true }

func (t *Anthropic) Search(ctx context.Context, query string, max int) (research.Results, error) {
	body, err := t.http.Get(ctx, t.pageURL)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch anthropic research page: %w", err)
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to parse anthropic research page: %w", err)
	}

	base, _ := url.Parse(t.pageURL)
	seen := make(map[string]struct{})
	out := make(research.List[ResearchPost], 0, max)

	doc.Find("a[href]").EachWithBreak(func(_ int, link *goquery.Selection) bool {
		title := strings.TrimSpace(link.Find("h2, h3, h4, span").First().Text())
		if len(title) < minPostTitle {
			return true
		}
		description := strings.TrimSpace(link.Find("p").First().Text())
		if !matchesAny(query, title+" "+description) {
			return true
		}

		href, _ := link.Attr("href")
		abs := absoluteURL(base, href)
		if _, dup := seen[abs]; dup {
			return true
		}
		seen[abs] = struct{}{}

		out = append(out, ResearchPost{
			Title:       stringsutil.CollapseSpaces(title),
			Description: stringsutil.Clip(stringsutil.CollapseSpaces(description), descriptionMax),
			URL:         abs,
		})
		return len(out) < max
	})

	return out, nil
}

func absoluteURL(base *url.URL, href string) string {
	ref, err := url.Parse(href)
	if err != nil || base == nil {
		return href
	}
	return base.ResolveReference(ref).String()
}
