package router

import (
	"net/http"

	"github.com/DjordjeVuckovic/ai-news-hunter/internal/dto"
	"github.com/labstack/echo/v4"
)

type SourceRouter struct {
	g       *echo.Group
	tracker Tracker
}

func NewSourceRouter(g *echo.Group, tracker Tracker) *SourceRouter {
	return &SourceRouter{g: g, tracker: tracker}
}

func (r *SourceRouter) Bind() {
	r.g.GET("/sources", r.list)
	r.g.POST("/sources/refresh", r.refreshAll)
	r.g.POST("/sources/:source/refresh", r.refreshOne)
}

// list godoc
// @Summary List sources
// @Tags sources
// @Produce json
// @Success 200 {object} dto.SourcesResponse
// @Router /api/sources [get]
func (r *SourceRouter) list(c echo.Context) error {
	return c.JSON(http.StatusOK, dto.SourcesResponse{Sources: r.tracker.Sources()})
}

// refreshAll godoc
// @Summary Refresh all sources
// @Description Fetches every source concurrently, deduplicates and stores the result.
// @Description A failing source is reported in its outcome and does not fail the request.
// @Tags sources
// @Produce json
// @Success 200 {object} domain.RefreshReport
// @Failure 500 {object} dto.ErrorResponse
// @Router /api/sources/refresh [post]
func (r *SourceRouter) refreshAll(c echo.Context) error {
	report, err := r.tracker.FetchAll(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, report)
}

// refreshOne godoc
// @Summary Refresh one source
// @Tags sources
// @Produce json
// @Param source path string true "Source" Enums(arxiv, huggingface, blog, aggregator)
// @Success 200 {object} domain.RefreshReport
// @Failure 400 {object} dto.ErrorResponse
// @Router /api/sources/{source}/refresh [post]
func (r *SourceRouter) refreshOne(c echo.Context) error {
	report, err := r.tracker.FetchOne(c.Request().Context(), c.Param("source"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, report)
}
