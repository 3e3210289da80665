// Package cli holds the command tree of the news_cli binary.
package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"

	"github.com/DjordjeVuckovic/ai-news-hunter/internal/domain"
	"github.com/DjordjeVuckovic/ai-news-hunter/internal/summarize"
	"github.com/DjordjeVuckovic/ai-news-hunter/pkg/pagination"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

// Tracker is the subset of the tracker service the commands drive.
type Tracker interface {
	FetchAll(ctx context.Context) (*domain.RefreshReport, error)
	FetchOne(ctx context.Context, source string) (*domain.RefreshReport, error)

	ListArticles(ctx context.Context, filter domain.ArticleFilter, page pagination.OffsetRequest) (*pagination.OffsetResult[domain.Article], error)
	SearchArticles(ctx context.Context, query string, limit int) ([]domain.ArticleSearchHit, error)
	Summarize(ctx context.Context, id uuid.UUID) (summarize.Result, error)
	AddBookmark(ctx context.Context, id uuid.UUID) (*domain.Article, error)
	RemoveBookmark(ctx context.Context, id uuid.UUID) (*domain.Article, error)
	ListCategories(ctx context.Context) ([]domain.CategoryCount, error)

	ResearchSearch(ctx context.Context, query string, tools []string, maxResults int) (*domain.ResearchResponse, error)
	ListResearchTools() []domain.ToolInfo
}

// OpenFunc builds the tracker a command runs against. The returned close
// function releases its resources.
type OpenFunc func(ctx context.Context) (Tracker, func(), error)

type app struct {
	open    OpenFunc
	verbose bool

	tracker Tracker
	closeFn func()
}

func NewRootCmd(open OpenFunc) *cobra.Command {
	a := &app{open: open}

	root := &cobra.Command{
		Use:   "news_cli",
		Short: "AI news tracker command line",
		Long: `news_cli refreshes AI news sources, browses stored articles and runs
research queries. Output is JSON.

Example usage:
  news_cli refresh                     # Fetch every source
  news_cli refresh arxiv               # Fetch one source
  news_cli articles list --days 7      # Articles from the last week
  news_cli articles search "diffusion"
  news_cli research "mixture of experts" --tools arxiv,github`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			a.setupLogger(cmd.ErrOrStderr())
			return nil
		},
		PersistentPostRun: func(*cobra.Command, []string) {
			if a.closeFn != nil {
				a.closeFn()
			}
		},
	}
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "debug logging")

	root.AddCommand(
		newRefreshCmd(a),
		newArticlesCmd(a),
		newSummarizeCmd(a),
		newBookmarkCmd(a),
		newCategoriesCmd(a),
		newResearchCmd(a),
		newToolsCmd(a),
	)
	return root
}

func (a *app) setupLogger(w io.Writer) {
	level := slog.LevelInfo
	if a.verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})))
}

// get opens the tracker on first use.
func (a *app) get(ctx context.Context) (Tracker, error) {
	if a.tracker != nil {
		return a.tracker, nil
	}
	t, closeFn, err := a.open(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to open tracker: %w", err)
	}
	a.tracker, a.closeFn = t, closeFn
	return t, nil
}

func printJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func Execute(ctx context.Context, open OpenFunc) error {
	return NewRootCmd(open).ExecuteContext(ctx)
}
