package fetcher

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/DjordjeVuckovic/ai-news-hunter/internal/domain"
	"github.com/DjordjeVuckovic/ai-news-hunter/pkg/httpclient"
	"github.com/DjordjeVuckovic/ai-news-hunter/pkg/stringsutil"
)

const (
	DefaultHNSearchURL = "https://hn.algolia.com/api/v1/search"
	DefaultRedditURL   = "https://www.reddit.com/r/MachineLearning/hot.json"

	hnItemURL      = "https://news.ycombinator.com/item?id="
	redditBaseURL  = "https://www.reddit.com"
	hnHitsPerTerm  = 10
	redditPageSize = 25
)

var DefaultHNTerms = []string{"AI", "machine learning", "GPT"}

type AggregatorFetcher struct {
	http        *httpclient.Client
	hnSearchURL string
	redditURL   string
	hnTerms     []string
}

type AggregatorOption func(*AggregatorFetcher)

func NewAggregatorFetcher(client *httpclient.Client, opts ...AggregatorOption) *AggregatorFetcher {
	f := &AggregatorFetcher{
		http:        client,
		hnSearchURL: DefaultHNSearchURL,
		redditURL:   DefaultRedditURL,
		hnTerms:     DefaultHNTerms,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

func WithAggregatorEndpoints(hnSearchURL, redditURL string) AggregatorOption {
	return func(f *AggregatorFetcher) {
		f.hnSearchURL = hnSearchURL
		f.redditURL = redditURL
	}
}

func WithHNTerms(terms ...string) AggregatorOption {
	return func(f *AggregatorFetcher) {
		f.hnTerms = terms
	}
}

func (f *AggregatorFetcher) Source() domain.Source {
	return domain.SourceAggregator
}

func (f *AggregatorFetcher) Fetch(ctx context.Context, maxResults int) ([]domain.Article, error) {
	half := splitBudget(maxResults, 2)

	var errs []error
	hn, err := f.fetchHackerNews(ctx, half)
	if err != nil {
		errs = append(errs, fmt.Errorf("hackernews: %w", err))
	}
	reddit, err := f.fetchReddit(ctx, half)
	if err != nil {
		errs = append(errs, fmt.Errorf("reddit: %w", err))
	}

	return append(hn, reddit...), errors.Join(errs...)
}

type hnResponse struct {
	Hits []struct {
		ObjectID    string `json:"objectID"`
		Title       string `json:"title"`
		URL         string `json:"url"`
		Author      string `json:"author"`
		Points      int    `json:"points"`
		NumComments int    `json:"num_comments"`
		CreatedAtI  int64  `json:"created_at_i"`
	} `json:"hits"`
}

// fetchHackerNews keeps what it already collected when a later term fails.
func (f *AggregatorFetcher) fetchHackerNews(ctx context.Context, limit int) ([]domain.Article, error) {
	seen := make(map[string]struct{})
	var (
		articles []domain.Article
		errs     []error
	)

	for _, term := range f.hnTerms {
		if len(articles) >= limit {
			break
		}

		params := url.Values{}
		params.Set("query", term)
		params.Set("tags", "story")
		params.Set("hitsPerPage", strconv.Itoa(hnHitsPerTerm))

		var resp hnResponse
		if err := f.http.GetJSON(ctx, f.hnSearchURL+"?"+params.Encode(), &resp); err != nil {
			errs = append(errs, fmt.Errorf("term %q: %w", term, err))
			continue
		}

		for _, hit := range resp.Hits {
			if len(articles) >= limit {
				break
			}
			if hit.ObjectID == "" || hit.Title == "" {
				continue
			}
			if _, dup := seen[hit.ObjectID]; dup {
				continue
			}
			seen[hit.ObjectID] = struct{}{}

			var published *time.Time
			if hit.CreatedAtI > 0 {
				t := time.Unix(hit.CreatedAtI, 0).UTC()
				published = &t
			}

			var authors []string
			if hit.Author != "" {
				authors = []string{hit.Author}
			}

			articles = append(articles, domain.Article{
				Source:      domain.SourceAggregator,
				SourceID:    "hn:" + hit.ObjectID,
				Title:       stringsutil.CollapseSpaces(hit.Title),
				Authors:     authors,
				Abstract:    fmt.Sprintf("Points: %d | Comments: %d", hit.Points, hit.NumComments),
				URL:         stringsutil.FirstNonEmpty(hit.URL, hnItemURL+hit.ObjectID),
				Categories:  []string{domain.CategoryAI, domain.CategoryTechNews},
				PublishedAt: published,
			})
		}
	}

	return articles, errors.Join(errs...)
}

type redditListing struct {
	Data struct {
		Children []struct {
			Data struct {
				ID            string  `json:"id"`
				Title         string  `json:"title"`
				Selftext      string  `json:"selftext"`
				URL           string  `json:"url"`
				Permalink     string  `json:"permalink"`
				Author        string  `json:"author"`
				Score         int     `json:"score"`
				NumComments   int     `json:"num_comments"`
				CreatedUTC    float64 `json:"created_utc"`
				LinkFlairText string  `json:"link_flair_text"`
				Stickied      bool    `json:"stickied"`
			} `json:"data"`
		} `json:"children"`
	} `json:"data"`
}

func (f *AggregatorFetcher) fetchReddit(ctx context.Context, limit int) ([]domain.Article, error) {
	endpoint := f.redditURL + "?limit=" + strconv.Itoa(redditPageSize)

	var listing redditListing
	if err := f.http.GetJSON(ctx, endpoint, &listing); err != nil {
		return nil, err
	}

	var articles []domain.Article
	for _, child := range listing.Data.Children {
		if len(articles) >= limit {
			break
		}
		post := child.Data
		if post.ID == "" || post.Title == "" || post.Stickied {
			continue
		}

		abstract := stringsutil.Clip(strings.TrimSpace(post.Selftext), abstractMaxRunes)
		if abstract == "" {
			abstract = fmt.Sprintf("Score: %d | Comments: %d", post.Score, post.NumComments)
		}

		link := post.URL
		if link == "" && post.Permalink != "" {
			link = redditBaseURL + post.Permalink
		}
		if link == "" {
			continue
		}

		var published *time.Time
		if post.CreatedUTC > 0 {
			t := time.Unix(int64(post.CreatedUTC), 0).UTC()
			published = &t
		}

		var authors []string
		if post.Author != "" {
			authors = []string{post.Author}
		}

		articles = append(articles, domain.Article{
			Source:      domain.SourceAggregator,
			SourceID:    "reddit:" + post.ID,
			Title:       stringsutil.CollapseSpaces(post.Title),
			Authors:     authors,
			Abstract:    abstract,
			URL:         link,
			Categories:  domain.NormalizeCategories([]string{domain.CategoryMachineLearning, post.LinkFlairText}),
			PublishedAt: published,
		})
	}

	return articles, nil
}
