package arxiv

import (
	"bytes"
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/DjordjeVuckovic/ai-news-hunter/internal/domain"
	"github.com/DjordjeVuckovic/ai-news-hunter/pkg/httpclient"
	"github.com/DjordjeVuckovic/ai-news-hunter/pkg/stringsutil"
	"github.com/mmcdole/gofeed/atom"
	"golang.org/x/time/rate"
)

const (
	DefaultBaseURL = "http://export.arxiv.org/api/query"
	absPrefix      = "/abs/"
	pdfURLFormat   = "https://arxiv.org/pdf/%s.pdf"
)

const (
	SortBySubmittedDate = "submittedDate"
	SortByRelevance     = "relevance"
)

// DefaultCategoryQuery selects the AI related arXiv categories.
const DefaultCategoryQuery = "cat:cs.AI OR cat:cs.LG OR cat:cs.CL OR cat:cs.CV OR cat:cs.NE"

var categoryNames = map[string]string{
	"cs.CL":   domain.CategoryNLP,
	"cs.CV":   domain.CategoryComputerVision,
	"cs.LG":   domain.CategoryMachineLearning,
	"cs.AI":   domain.CategoryAI,
	"cs.NE":   domain.CategoryNeuralNetworks,
	"stat.ML": domain.CategoryMachineLearning,
}

type Query struct {
	SearchQuery string
	SortBy      string
	MaxResults  int
}

type Entry struct {
	ID         string
	Title      string
	Abstract   string
	Authors    []string
	URL        string
	PDFURL     string
	Categories []string
	Published  *time.Time
}

type Option func(*Client)

type Client struct {
	baseURL string
	http    *httpclient.Client
}

func NewClient(opts ...Option) *Client {
	c := &Client{
		baseURL: DefaultBaseURL,
		// arXiv asks for no more than one request every three seconds
		http: httpclient.New(httpclient.WithRateLimit(rate.Every(3*time.Second), 1)),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		c.baseURL = baseURL
	}
}

func WithHttpClient(h *httpclient.Client) Option {
	return func(c *Client) {
		c.http = h
	}
}

func (c *Client) Query(ctx context.Context, q Query) ([]Entry, error) {
	params := url.Values{}
	params.Set("search_query", q.SearchQuery)
	params.Set("start", "0")
	params.Set("max_results", strconv.Itoa(q.MaxResults))
	if q.SortBy != "" {
		params.Set("sortBy", q.SortBy)
		params.Set("sortOrder", "descending")
	}

	body, err := c.http.Get(ctx, c.baseURL+"?"+params.Encode())
	if err != nil {
		return nil, fmt.Errorf("failed to query arxiv: %w", err)
	}

	return Parse(body)
}

// Parse decodes an arXiv Atom response into entries.
func Parse(body []byte) ([]Entry, error) {
	fp := atom.Parser{}
	feed, err := fp.Parse(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to parse arxiv feed: %w", err)
	}

	entries := make([]Entry, 0, len(feed.Entries))
	for _, e := range feed.Entries {
		id := ExtractID(e.ID)
		if id == "" {
			continue
		}

		entry := Entry{
			ID:       id,
			Title:    stringsutil.CollapseSpaces(e.Title),
			Abstract: stringsutil.CollapseSpaces(e.Summary),
			URL:      e.ID,
		}

		for _, a := range e.Authors {
			if a != nil && a.Name != "" {
				entry.Authors = append(entry.Authors, a.Name)
			}
		}

		for _, l := range e.Links {
			if l == nil {
				continue
			}
			switch {
			case l.Title == "pdf":
				entry.PDFURL = l.Href
			case l.Rel == "alternate" && l.Href != "":
				entry.URL = l.Href
			}
		}
		if entry.PDFURL == "" {
			entry.PDFURL = fmt.Sprintf(pdfURLFormat, id)
		}

		for _, cat := range e.Categories {
			if cat != nil && cat.Term != "" {
				entry.Categories = append(entry.Categories, cat.Term)
			}
		}

		if e.PublishedParsed != nil {
			p := e.PublishedParsed.UTC()
			entry.Published = &p
		}

		entries = append(entries, entry)
	}

	return entries, nil
}

// ExtractID returns the versioned arXiv identifier from an abs URL.
func ExtractID(raw string) string {
	idx := strings.LastIndex(raw, absPrefix)
	if idx < 0 {
		return strings.TrimSpace(raw)
	}
	return strings.TrimSpace(raw[idx+len(absPrefix):])
}

// MapCategory turns an arXiv category code into a readable name.
func MapCategory(code string) string {
	if name, ok := categoryNames[code]; ok {
		return name
	}
	prefix, _, _ := strings.Cut(code, ".")
	return strings.ToUpper(prefix)
}
