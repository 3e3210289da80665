package router

import (
	"net/http"

	"github.com/DjordjeVuckovic/ai-news-hunter/internal/apperr"
	"github.com/DjordjeVuckovic/ai-news-hunter/internal/dto"
	"github.com/DjordjeVuckovic/ai-news-hunter/pkg/pagination"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

type ArticleRouter struct {
	g       *echo.Group
	tracker Tracker
}

func NewArticleRouter(g *echo.Group, tracker Tracker) *ArticleRouter {
	return &ArticleRouter{g: g, tracker: tracker}
}

func (r *ArticleRouter) Bind() {
	r.g.GET("/articles", r.list)
	r.g.GET("/articles/search", r.search)
	r.g.GET("/articles/:id", r.get)
	r.g.POST("/articles/:id/summarize", r.summarize)

	r.g.GET("/bookmarks", r.listBookmarks)
	r.g.POST("/bookmarks/:id", r.addBookmark)
	r.g.DELETE("/bookmarks/:id", r.removeBookmark)

	r.g.GET("/categories", r.categories)
}

// list godoc
// @Summary List articles
// @Description Lists stored articles, newest first, with optional filters.
// @Tags articles
// @Produce json
// @Param source query string false "Source" Enums(arxiv, huggingface, blog, aggregator)
// @Param category query string false "Exact category"
// @Param days query int false "Published within the last N days"
// @Param bookmarked query bool false "Bookmarked only"
// @Param page query int false "Page number" default(1)
// @Param size query int false "Page size" default(50) maximum(200)
// @Success 200 {object} pagination.OffsetResult[domain.Article]
// @Failure 400 {object} dto.ErrorResponse
// @Router /api/articles [get]
func (r *ArticleRouter) list(c echo.Context) error {
	var req dto.ListArticlesRequest
	if err := c.Bind(&req); err != nil {
		return apperr.NewValidationWrap("invalid query parameters", err)
	}

	res, err := r.tracker.ListArticles(c.Request().Context(), req.Filter(), req.PageRequest())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, res)
}

// search godoc
// @Summary Search articles
// @Description Full-text search over title, abstract, summary and content.
// @Tags articles
// @Produce json
// @Param q query string true "Search query" minlength(2)
// @Param limit query int false "Max hits" default(50) maximum(200)
// @Success 200 {object} dto.SearchArticlesResponse
// @Failure 400 {object} dto.ErrorResponse
// @Router /api/articles/search [get]
func (r *ArticleRouter) search(c echo.Context) error {
	var req dto.SearchArticlesRequest
	if err := c.Bind(&req); err != nil {
		return apperr.NewValidationWrap("invalid query parameters", err)
	}

	hits, err := r.tracker.SearchArticles(c.Request().Context(), req.Query, req.Limit)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, dto.SearchArticlesResponse{
		Query:    req.Query,
		Total:    len(hits),
		Articles: hits,
	})
}

// get godoc
// @Summary Get article
// @Tags articles
// @Produce json
// @Param id path string true "Article ID" format(uuid)
// @Success 200 {object} domain.Article
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/articles/{id} [get]
func (r *ArticleRouter) get(c echo.Context) error {
	id, err := articleID(c)
	if err != nil {
		return err
	}

	a, err := r.tracker.GetArticle(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, a)
}

// summarize godoc
// @Summary Summarize article
// @Description Returns the stored summary or generates one with the language model.
// @Tags articles
// @Produce json
// @Param id path string true "Article ID" format(uuid)
// @Success 200 {object} summarize.Result
// @Failure 404 {object} dto.ErrorResponse
// @Failure 503 {object} dto.ErrorResponse
// @Router /api/articles/{id}/summarize [post]
func (r *ArticleRouter) summarize(c echo.Context) error {
	id, err := articleID(c)
	if err != nil {
		return err
	}

	res, err := r.tracker.Summarize(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, res)
}

// listBookmarks godoc
// @Summary List bookmarked articles
// @Tags bookmarks
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param size query int false "Page size" default(50) maximum(200)
// @Success 200 {object} pagination.OffsetResult[domain.Article]
// @Router /api/bookmarks [get]
func (r *ArticleRouter) listBookmarks(c echo.Context) error {
	var page pagination.OffsetRequest
	if err := c.Bind(&page); err != nil {
		return apperr.NewValidationWrap("invalid query parameters", err)
	}

	res, err := r.tracker.ListBookmarks(c.Request().Context(), page)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, res)
}

// addBookmark godoc
// @Summary Bookmark article
// @Tags bookmarks
// @Produce json
// @Param id path string true "Article ID" format(uuid)
// @Success 200 {object} dto.BookmarkResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/bookmarks/{id} [post]
func (r *ArticleRouter) addBookmark(c echo.Context) error {
	id, err := articleID(c)
	if err != nil {
		return err
	}

	a, err := r.tracker.AddBookmark(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, dto.BookmarkResponse{Message: "Article bookmarked", Article: a})
}

// removeBookmark godoc
// @Summary Remove bookmark
// @Tags bookmarks
// @Produce json
// @Param id path string true "Article ID" format(uuid)
// @Success 200 {object} dto.BookmarkResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/bookmarks/{id} [delete]
func (r *ArticleRouter) removeBookmark(c echo.Context) error {
	id, err := articleID(c)
	if err != nil {
		return err
	}

	a, err := r.tracker.RemoveBookmark(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, dto.BookmarkResponse{Message: "Bookmark removed", Article: a})
}

// categories godoc
// @Summary List categories
// @Description Categories in use with their article counts, most used first.
// @Tags articles
// @Produce json
// @Success 200 {object} dto.CategoriesResponse
// @Router /api/categories [get]
func (r *ArticleRouter) categories(c echo.Context) error {
	counts, err := r.tracker.ListCategories(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, dto.CategoriesResponse{Categories: counts})
}

func articleID(c echo.Context) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return uuid.Nil, apperr.NewValidation("invalid article id: " + c.Param("id"))
	}
	return id, nil
}
