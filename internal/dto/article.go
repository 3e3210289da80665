package dto

import (
	"github.com/DjordjeVuckovic/ai-news-hunter/internal/domain"
	"github.com/DjordjeVuckovic/ai-news-hunter/pkg/pagination"
)

// ListArticlesRequest is bound from the query string of GET /api/articles.
type ListArticlesRequest struct {
	Source     string `query:"source"`
	Category   string `query:"category"`
	Days       int    `query:"days"`
	Bookmarked bool   `query:"bookmarked"`
	Page       int    `query:"page"`
	Size       int    `query:"size"`
}

func (r ListArticlesRequest) Filter() domain.ArticleFilter {
	return domain.ArticleFilter{
		Source:         domain.Source(r.Source),
		Category:       r.Category,
		Days:           r.Days,
		BookmarkedOnly: r.Bookmarked,
	}
}

func (r ListArticlesRequest) PageRequest() pagination.OffsetRequest {
	return pagination.OffsetRequest{Page: r.Page, Size: r.Size}
}

type SearchArticlesRequest struct {
	Query string `query:"q"`
	Limit int    `query:"limit"`
}

type SearchArticlesResponse struct {
	Query    string                    `json:"query"`
	Total    int                       `json:"total"`
	Articles []domain.ArticleSearchHit `json:"articles"`
}

type BookmarkResponse struct {
	Message string          `json:"message"`
	Article *domain.Article `json:"article"`
}

type SourcesResponse struct {
	Sources []domain.Source `json:"sources"`
}

type CategoriesResponse struct {
	Categories []domain.CategoryCount `json:"categories"`
}

type ErrorResponse struct {
	Error string `json:"error"`
	Title string `json:"title,omitempty"`
}
