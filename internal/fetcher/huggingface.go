package fetcher

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/DjordjeVuckovic/ai-news-hunter/internal/domain"
	"github.com/DjordjeVuckovic/ai-news-hunter/pkg/httpclient"
	"github.com/DjordjeVuckovic/ai-news-hunter/pkg/stringsutil"
)

const (
	DefaultHFBlogFeedURL    = "https://huggingface.co/blog/feed.xml"
	DefaultHFDailyPapersURL = "https://huggingface.co/api/daily_papers"

	hfPaperPageURL = "https://huggingface.co/papers/"
	arxivPDFURL    = "https://arxiv.org/pdf/%s.pdf"
)

type HuggingFaceFetcher struct {
	http           *httpclient.Client
	blogFeedURL    string
	dailyPapersURL string
}

type HuggingFaceOption func(*HuggingFaceFetcher)

func NewHuggingFaceFetcher(client *httpclient.Client, opts ...HuggingFaceOption) *HuggingFaceFetcher {
	f := &HuggingFaceFetcher{
		http:           client,
		blogFeedURL:    DefaultHFBlogFeedURL,
		dailyPapersURL: DefaultHFDailyPapersURL,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

func WithHFEndpoints(blogFeedURL, dailyPapersURL string) HuggingFaceOption {
	return func(f *HuggingFaceFetcher) {
		f.blogFeedURL = blogFeedURL
		f.dailyPapersURL = dailyPapersURL
	}
}

func (f *HuggingFaceFetcher) Source() domain.Source {
	return domain.SourceHuggingFace
}

// Fetch splits the budget between the blog feed and daily papers. Either
// half may fail on its own.
func (f *HuggingFaceFetcher) Fetch(ctx context.Context, maxResults int) ([]domain.Article, error) {
	half := splitBudget(maxResults, 2)

	var errs []error
	blog, err := f.fetchBlog(ctx, half)
	if err != nil {
		errs = append(errs, fmt.Errorf("blog: %w", err))
	}
	papers, err := f.fetchDailyPapers(ctx, half)
	if err != nil {
		errs = append(errs, fmt.Errorf("daily papers: %w", err))
	}

	return append(blog, papers...), errors.Join(errs...)
}

func (f *HuggingFaceFetcher) fetchBlog(ctx context.Context, limit int) ([]domain.Article, error) {
	feed, err := fetchFeed(ctx, f.http, f.blogFeedURL)
	if err != nil {
		return nil, err
	}

	var articles []domain.Article
	for _, item := range feed.Items {
		if len(articles) >= limit {
			break
		}
		if item == nil || item.Title == "" || item.Link == "" {
			continue
		}
		content, abstract := itemText(item)
		articles = append(articles, domain.Article{
			Source:      domain.SourceHuggingFace,
			SourceID:    "hf:blog:" + itemID(item),
			Title:       stringsutil.CollapseSpaces(item.Title),
			Authors:     itemAuthors(item),
			Abstract:    abstract,
			Content:     content,
			URL:         item.Link,
			Categories:  []string{domain.CategoryAI, domain.CategoryGenerativeAI},
			PublishedAt: itemPublished(item),
		})
	}
	return articles, nil
}

type dailyPaper struct {
	Paper struct {
		ID      string `json:"id"`
		Title   string `json:"title"`
		Summary string `json:"summary"`
		Authors []struct {
			Name string `json:"name"`
		} `json:"authors"`
		PublishedAt string `json:"publishedAt"`
	} `json:"paper"`
	PublishedAt string `json:"publishedAt"`
}

func (f *HuggingFaceFetcher) fetchDailyPapers(ctx context.Context, limit int) ([]domain.Article, error) {
	var papers []dailyPaper
	if err := f.http.GetJSON(ctx, f.dailyPapersURL, &papers); err != nil {
		return nil, err
	}

	var articles []domain.Article
	for _, p := range papers {
		if len(articles) >= limit {
			break
		}
		if p.Paper.ID == "" || p.Paper.Title == "" {
			continue
		}

		authors := make([]string, 0, len(p.Paper.Authors))
		for _, a := range p.Paper.Authors {
			if a.Name != "" {
				authors = append(authors, a.Name)
			}
		}

		articles = append(articles, domain.Article{
			Source:      domain.SourceHuggingFace,
			SourceID:    "hf:paper:" + p.Paper.ID,
			Title:       stringsutil.CollapseSpaces(p.Paper.Title),
			Authors:     authors,
			Abstract:    stringsutil.CollapseSpaces(p.Paper.Summary),
			URL:         hfPaperPageURL + p.Paper.ID,
			PDFURL:      fmt.Sprintf(arxivPDFURL, p.Paper.ID),
			Categories:  []string{domain.CategoryAI, domain.CategoryMachineLearning},
			PublishedAt: parseTime(stringsutil.FirstNonEmpty(p.Paper.PublishedAt, p.PublishedAt)),
		})
	}
	return articles, nil
}

func parseTime(raw string) *time.Time {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	for _, layout := range []string{time.RFC3339Nano, time.RFC3339, "2006-01-02"} {
		if t, err := time.Parse(layout, raw); err == nil {
			utc := t.UTC()
			return &utc
		}
	}
	return nil
}
