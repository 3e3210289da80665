package categorize

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"time"

	"github.com/DjordjeVuckovic/ai-news-hunter/internal/domain"
	"github.com/DjordjeVuckovic/ai-news-hunter/internal/llm"
	"github.com/DjordjeVuckovic/ai-news-hunter/internal/metrics"
	"github.com/DjordjeVuckovic/ai-news-hunter/pkg/stringsutil"
)

const (
	DefaultTimeout = 10 * time.Second

	maxModelCategories = 3
	maxTokens          = 100
	abstractPromptMax  = 2000
)

const promptTemplate = `Categorize the following AI research paper or article into one or more of these categories:
%s
Return only the category names, separated by commas. Choose 1-3 most relevant categories.

Title: %s
Abstract: %s

Categories:`

type Option func(*Categorizer)

// WithLLM enables the model-assisted fallback. A nil client leaves it off.
func WithLLM(client llm.Client) Option {
	return func(c *Categorizer) {
		c.llm = client
	}
}

func WithTimeout(timeout time.Duration) Option {
	return func(c *Categorizer) {
		c.timeout = timeout
	}
}

type Categorizer struct {
	rules   []rule
	llm     llm.Client
	timeout time.Duration
}

func New(opts ...Option) *Categorizer {
	c := &Categorizer{
		rules:   defaultRules,
		timeout: DefaultTimeout,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Categorize assigns taxonomy categories to an article. Rules run first;
// the model is asked only when no rule matches. A failing model yields an
// empty set and never an error.
func (c *Categorizer) Categorize(ctx context.Context, article domain.Article) []string {
	if categories := c.MatchRules(article.Title + " " + article.Abstract); len(categories) > 0 {
		return categories
	}

	if !llm.Available(c.llm) {
		return []string{}
	}

	categories, err := c.classify(ctx, article)
	metrics.RecordLLMCall("categorize", err)
	if err != nil {
		slog.Warn("Model categorization failed, storing without categories",
			"source_id", article.SourceID,
			"error", err)
		return []string{}
	}
	return categories
}

// MatchRules returns the taxonomy categories whose patterns occur in text.
func (c *Categorizer) MatchRules(text string) []string {
	text = strings.ToLower(text)

	var categories []string
	for _, r := range c.rules {
		for _, p := range r.patterns {
			if p.MatchString(text) {
				categories = append(categories, r.category)
				break
			}
		}
	}
	return domain.NormalizeCategories(categories)
}

func (c *Categorizer) classify(ctx context.Context, article domain.Article) ([]string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	var taxonomy strings.Builder
	for _, name := range domain.Taxonomy {
		taxonomy.WriteString("- " + name + "\n")
	}

	prompt := fmt.Sprintf(promptTemplate,
		taxonomy.String(),
		article.Title,
		stringsutil.Clip(article.Abstract, abstractPromptMax))

	text, err := c.llm.Complete(ctx, prompt, maxTokens)
	if err != nil {
		return nil, err
	}
	return ParseCategories(text), nil
}

// ParseCategories reads a comma separated model reply and keeps at most
// three names that belong to the taxonomy, matched case-insensitively.
func ParseCategories(raw string) []string {
	known := make(map[string]string, len(domain.Taxonomy))
	for _, name := range domain.Taxonomy {
		known[strings.ToLower(name)] = name
	}

	var out []string
	for _, part := range strings.FieldsFunc(raw, func(r rune) bool { return r == ',' || r == '\n' }) {
		name := strings.ToLower(strings.Trim(strings.TrimSpace(part), "-*.\"'"))
		// tolerate "LLM (Large Language Models)" style replies
		if idx := strings.Index(name, " ("); idx > 0 {
			name = name[:idx]
		}
		canonical, ok := known[strings.TrimSpace(name)]
		if !ok || slices.Contains(out, canonical) {
			continue
		}
		out = append(out, canonical)
		if len(out) == maxModelCategories {
			break
		}
	}

	return domain.NormalizeCategories(out)
}
