package router

import (
	"net/http"

	"github.com/DjordjeVuckovic/ai-news-hunter/internal/apperr"
	"github.com/DjordjeVuckovic/ai-news-hunter/internal/dto"
	"github.com/labstack/echo/v4"
)

type AgentRouter struct {
	g       *echo.Group
	tracker Tracker
}

func NewAgentRouter(g *echo.Group, tracker Tracker) *AgentRouter {
	return &AgentRouter{g: g, tracker: tracker}
}

func (r *AgentRouter) Bind() {
	r.g.POST("/agents/search", r.search)
	r.g.GET("/agents/tools", r.tools)
	r.g.POST("/agents/tools/:tool", r.invokeTool)
}

// search godoc
// @Summary Research search
// @Description Runs the research agent. Without a tool list the model picks the tools
// @Description and synthesizes an answer; with a tool list exactly those tools run.
// @Tags agents
// @Accept json
// @Produce json
// @Param request body dto.ResearchSearchRequest true "Research query"
// @Success 200 {object} domain.ResearchResponse
// @Failure 400 {object} dto.ErrorResponse
// @Router /api/agents/search [post]
func (r *AgentRouter) search(c echo.Context) error {
	var req dto.ResearchSearchRequest
	if err := c.Bind(&req); err != nil {
		return apperr.NewValidationWrap("invalid request body", err)
	}

	resp, err := r.tracker.ResearchSearch(c.Request().Context(), req.Query, req.Tools, req.MaxResults)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, resp)
}

// tools godoc
// @Summary List research tools
// @Tags agents
// @Produce json
// @Success 200 {object} dto.ToolsResponse
// @Router /api/agents/tools [get]
func (r *AgentRouter) tools(c echo.Context) error {
	return c.JSON(http.StatusOK, dto.ToolsResponse{Tools: r.tracker.ListResearchTools()})
}

// invokeTool godoc
// @Summary Run one research tool
// @Tags agents
// @Accept json
// @Produce json
// @Param tool path string true "Tool name"
// @Param request body dto.ResearchToolRequest true "Tool query"
// @Success 200 {object} domain.ResearchResponse
// @Failure 400 {object} dto.ErrorResponse
// @Router /api/agents/tools/{tool} [post]
func (r *AgentRouter) invokeTool(c echo.Context) error {
	var req dto.ResearchToolRequest
	if err := c.Bind(&req); err != nil {
		return apperr.NewValidationWrap("invalid request body", err)
	}

	resp, err := r.tracker.ResearchTool(c.Request().Context(), c.Param("tool"), req.Query, req.MaxResults)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, resp)
}
