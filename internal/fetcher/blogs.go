package fetcher

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"strings"

	"github.com/DjordjeVuckovic/ai-news-hunter/internal/domain"
	"github.com/DjordjeVuckovic/ai-news-hunter/pkg/httpclient"
	"github.com/DjordjeVuckovic/ai-news-hunter/pkg/stringsutil"
	"github.com/PuerkitoBio/goquery"
	"gopkg.in/yaml.v3"
)

type BlogKind string

const (
	BlogRSS    BlogKind = "rss"
	BlogScrape BlogKind = "scrape"

	maxScrapedPosts = 10
)

// scrapeSelectors are tried in order until one matches at least one post.
var scrapeSelectors = []string{"article", ".blog-post", ".post-item", "[data-testid='blog-post']"}

type BlogSource struct {
	Key        string   `yaml:"key"`
	Name       string   `yaml:"name"`
	Kind       BlogKind `yaml:"kind"`
	URL        string   `yaml:"url"`
	Categories []string `yaml:"categories"`
}

var DefaultBlogSources = []BlogSource{
	{
		Key:        "openai",
		Name:       "OpenAI",
		Kind:       BlogRSS,
		URL:        "https://openai.com/news/rss.xml",
		Categories: []string{domain.CategoryAI, domain.CategoryGenerativeAI, domain.CategoryLLM},
	},
	{
		Key:        "anthropic",
		Name:       "Anthropic",
		Kind:       BlogScrape,
		URL:        "https://www.anthropic.com/research",
		Categories: []string{domain.CategoryAI, domain.CategoryLLM, domain.CategoryAISafety},
	},
	{
		Key:        "deepmind",
		Name:       "Google DeepMind",
		Kind:       BlogRSS,
		URL:        "https://deepmind.google/blog/rss.xml",
		Categories: []string{domain.CategoryAI, domain.CategoryMachineLearning, domain.CategoryResearch},
	},
	{
		Key:        "meta",
		Name:       "Meta AI",
		Kind:       BlogScrape,
		URL:        "https://ai.meta.com/blog/",
		Categories: []string{domain.CategoryAI, domain.CategoryMachineLearning},
	},
}

type blogSourcesFile struct {
	Blogs []BlogSource `yaml:"blogs"`
}

// LoadBlogSources reads a YAML document with a top-level "blogs" list.
func LoadBlogSources(r io.Reader) ([]BlogSource, error) {
	var file blogSourcesFile
	if err := yaml.NewDecoder(r).Decode(&file); err != nil {
		return nil, fmt.Errorf("failed to decode blog sources: %w", err)
	}
	for i, b := range file.Blogs {
		if b.Key == "" || b.URL == "" {
			return nil, fmt.Errorf("blog source %d: key and url are required", i)
		}
		if b.Kind != BlogRSS && b.Kind != BlogScrape {
			return nil, fmt.Errorf("blog source %s: kind must be rss or scrape", b.Key)
		}
		if b.Name == "" {
			file.Blogs[i].Name = b.Key
		}
	}
	return file.Blogs, nil
}

type BlogFetcher struct {
	http    *httpclient.Client
	sources []BlogSource
}

func NewBlogFetcher(client *httpclient.Client, sources []BlogSource) *BlogFetcher {
	if len(sources) == 0 {
		sources = DefaultBlogSources
	}
	return &BlogFetcher{http: client, sources: sources}
}

func (f *BlogFetcher) Source() domain.Source {
	return domain.SourceBlog
}

func (f *BlogFetcher) Fetch(ctx context.Context, maxResults int) ([]domain.Article, error) {
	perBlog := splitBudget(maxResults, len(f.sources))

	var (
		articles []domain.Article
		errs     []error
	)
	for _, src := range f.sources {
		var (
			posts []domain.Article
			err   error
		)
		switch src.Kind {
		case BlogScrape:
			posts, err = f.scrape(ctx, src, perBlog)
		default:
			posts, err = f.fetchRSS(ctx, src, perBlog)
		}
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", src.Key, err))
			continue
		}
		articles = append(articles, posts...)
	}

	return articles, errors.Join(errs...)
}

func (f *BlogFetcher) fetchRSS(ctx context.Context, src BlogSource, limit int) ([]domain.Article, error) {
	feed, err := fetchFeed(ctx, f.http, src.URL)
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

		authors := itemAuthors(item)
		if len(authors) == 0 {
			authors = []string{src.Name}
		}
		content, abstract := itemText(item)

		articles = append(articles, domain.Article{
			Source:      domain.SourceBlog,
			SourceID:    blogSourceID(src.Key, itemID(item)),
			Title:       stringsutil.CollapseSpaces(item.Title),
			Authors:     authors,
			Abstract:    abstract,
			Content:     content,
			URL:         item.Link,
			Categories:  domain.NormalizeCategories(src.Categories, item.Categories),
			PublishedAt: itemPublished(item),
		})
	}
	return articles, nil
}

func (f *BlogFetcher) scrape(ctx context.Context, src BlogSource, limit int) ([]domain.Article, error) {
	body, err := f.http.Get(ctx, src.URL)
	if err != nil {
		return nil, err
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to parse html: %w", err)
	}

	base, err := url.Parse(src.URL)
	if err != nil {
		return nil, fmt.Errorf("invalid blog url: %w", err)
	}

	var posts *goquery.Selection
	for _, sel := range scrapeSelectors {
		posts = doc.Find(sel)
		if posts.Length() > 0 {
			break
		}
	}

	if limit > maxScrapedPosts {
		limit = maxScrapedPosts
	}

	var articles []domain.Article
	posts.EachWithBreak(func(_ int, post *goquery.Selection) bool {
		if len(articles) >= limit {
			return false
		}

		title := stringsutil.CollapseSpaces(post.Find("h1, h2, h3, .title").First().Text())
		href, ok := post.Find("a[href]").First().Attr("href")
		if !ok {
			href, ok = post.Attr("href")
		}
		if title == "" || !ok || strings.TrimSpace(href) == "" {
			return true
		}
		link := resolveURL(base, href)
		description := stringsutil.CollapseSpaces(post.Find("p, .description, .excerpt").First().Text())

		articles = append(articles, domain.Article{
			Source:     domain.SourceBlog,
			SourceID:   blogSourceID(src.Key, link),
			Title:      title,
			Authors:    []string{src.Name},
			Abstract:   stringsutil.Truncate(description, abstractMaxRunes),
			URL:        link,
			Categories: domain.NormalizeCategories(src.Categories),
		})
		return true
	})

	return articles, nil
}

func blogSourceID(key, id string) string {
	return "blog:" + key + ":" + id
}

func resolveURL(base *url.URL, href string) string {
	ref, err := url.Parse(strings.TrimSpace(href))
	if err != nil {
		return href
	}
	return base.ResolveReference(ref).String()
}
