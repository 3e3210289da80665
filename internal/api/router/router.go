package router

import (
	"context"

	"github.com/DjordjeVuckovic/ai-news-hunter/internal/domain"
	"github.com/DjordjeVuckovic/ai-news-hunter/internal/summarize"
	"github.com/DjordjeVuckovic/ai-news-hunter/pkg/pagination"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// Tracker is the core the routes delegate to.
type Tracker interface {
	FetchAll(ctx context.Context) (*domain.RefreshReport, error)
	FetchOne(ctx context.Context, source string) (*domain.RefreshReport, error)
	Sources() []domain.Source

	ListArticles(ctx context.Context, filter domain.ArticleFilter, page pagination.OffsetRequest) (*pagination.OffsetResult[domain.Article], error)
	ListBookmarks(ctx context.Context, page pagination.OffsetRequest) (*pagination.OffsetResult[domain.Article], error)
	SearchArticles(ctx context.Context, query string, limit int) ([]domain.ArticleSearchHit, error)
	GetArticle(ctx context.Context, id uuid.UUID) (*domain.Article, error)
	Summarize(ctx context.Context, id uuid.UUID) (summarize.Result, error)
	AddBookmark(ctx context.Context, id uuid.UUID) (*domain.Article, error)
	RemoveBookmark(ctx context.Context, id uuid.UUID) (*domain.Article, error)
	ListCategories(ctx context.Context) ([]domain.CategoryCount, error)

	ResearchSearch(ctx context.Context, query string, tools []string, maxResults int) (*domain.ResearchResponse, error)
	ResearchTool(ctx context.Context, name, query string, maxResults int) (*domain.ResearchResponse, error)
	ListResearchTools() []domain.ToolInfo
}

// Bind registers every API route under /api.
func Bind(e *echo.Echo, tracker Tracker) {
	api := e.Group("/api")

	NewArticleRouter(api, tracker).Bind()
	NewSourceRouter(api, tracker).Bind()
	NewAgentRouter(api, tracker).Bind()
}
