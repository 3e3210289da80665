package summarize

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/DjordjeVuckovic/ai-news-hunter/internal/apperr"
	"github.com/DjordjeVuckovic/ai-news-hunter/internal/domain"
	"github.com/DjordjeVuckovic/ai-news-hunter/internal/llm"
	"github.com/DjordjeVuckovic/ai-news-hunter/internal/metrics"
	"github.com/DjordjeVuckovic/ai-news-hunter/pkg/stringsutil"
	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"
)

const (
	maxTokens        = 300
	contentPromptMax = 5000

	unavailableMessage = "summary unavailable"
)

const promptTemplate = `Please provide a concise summary of the following AI research paper or article.
Focus on:
1. Key findings or main contribution
2. Methodology (if applicable)
3. Practical implications

Keep the summary to 2-3 sentences maximum.

%s

Summary:`

// Store is the part of the article store the summarizer touches.
type Store interface {
	Get(ctx context.Context, id uuid.UUID) (*domain.Article, error)
	SetSummary(ctx context.Context, id uuid.UUID, summary string) (string, error)
}

type Result struct {
	Summary string `json:"summary"`
	Cached  bool   `json:"cached"`
}

type Summarizer struct {
	store Store
	llm   llm.Client
	group singleflight.Group
}

// New creates a summarizer. client may be nil, in which case every uncached
// article fails with a model unavailable error.
func New(store Store, client llm.Client) *Summarizer {
	return &Summarizer{store: store, llm: client}
}

// Summarize returns the article's persisted summary, generating it on first
// use. Concurrent calls for the same article share one model call.
func (s *Summarizer) Summarize(ctx context.Context, id uuid.UUID) (Result, error) {
	article, err := s.store.Get(ctx, id)
	if err != nil {
		return Result{}, err
	}
	if article.Summary != "" {
		return Result{Summary: article.Summary, Cached: true}, nil
	}

	v, err, _ := s.group.Do(id.String(), func() (any, error) {
		return s.generate(ctx, article)
	})
	if err != nil {
		return Result{}, err
	}

	return Result{Summary: v.(string)}, nil
}

func (s *Summarizer) generate(ctx context.Context, article *domain.Article) (string, error) {
	if !llm.Available(s.llm) {
		return "", apperr.NewModelUnavailable(unavailableMessage, errors.New("no language model configured"))
	}

	text, err := s.llm.Complete(ctx, BuildPrompt(article), maxTokens)
	metrics.RecordLLMCall("summarize", err)
	if err != nil {
		slog.Error("failed to generate summary", "id", article.ID, "error", err)
		return "", apperr.NewModelUnavailable(unavailableMessage, err)
	}

	text = strings.TrimSpace(text)
	if text == "" {
		return "", apperr.NewModelUnavailable(unavailableMessage, llm.ErrEmptyResponse)
	}

	persisted, err := s.store.SetSummary(ctx, article.ID, text)
	if err != nil {
		return "", fmt.Errorf("failed to persist summary: %w", err)
	}

	slog.Info("summary generated", "id", article.ID, "source", article.Source)
	return persisted, nil
}

func BuildPrompt(article *domain.Article) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Title: %s\n\n", article.Title)
	if article.Abstract != "" {
		fmt.Fprintf(&b, "Abstract: %s\n\n", article.Abstract)
	}
	if article.Content != "" {
		fmt.Fprintf(&b, "Content: %s", stringsutil.Clip(article.Content, contentPromptMax))
	}
	return fmt.Sprintf(promptTemplate, strings.TrimRight(b.String(), "\n"))
}
