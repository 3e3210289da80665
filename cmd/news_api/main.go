// Package main AI News Hunter API
// @title AI News Hunter API
// @version 1.0
// @description Collects AI research papers, model releases and blog posts, and serves search, bookmarks, summaries and research agents over them
// @contact.name API Support
// @license.name Apache 2.0
// @license.url https://opensource.org/licenses/Apache-2.0
// @BasePath /
package main

import (
	"log/slog"
	"net/http"
	"os"

	_ "github.com/DjordjeVuckovic/ai-news-hunter/docs"
	"github.com/DjordjeVuckovic/ai-news-hunter/internal/api/router"
	"github.com/DjordjeVuckovic/ai-news-hunter/internal/api/server"
	"github.com/DjordjeVuckovic/ai-news-hunter/internal/tracker"
	pkgserver "github.com/DjordjeVuckovic/ai-news-hunter/pkg/server"
	"github.com/labstack/echo/v4"
)

func main() {
	slog.SetLogLoggerLevel(slog.LevelDebug)

	cfg, err := NewAppConfig().Load()
	if err != nil {
		slog.Error("Failed to load app configuration", "error", err)
		os.Exit(1)
	}

	// built before the app so the tracker shares the server's signal context
	s := server.New(cfg.Server, nil)

	app, err := tracker.Build(s.Context(), cfg.Tracker)
	if err != nil {
		slog.Error("Failed to build tracker", "error", err)
		os.Exit(1)
	}

	s.SetHealthChecker(pkgserver.AllHealthy{app.Health}).
		SetupMiddlewares().
		SetupErrorHandler().
		SetupHealthChecks("/health").
		SetupMetrics("/metrics").
		SetupOpenApi("/swagger/*")

	s.Echo.GET("/", func(c echo.Context) error {
		return c.String(http.StatusOK, "AI News Hunter API is running")
	})

	router.Bind(s.Echo, app.Service)

	go func() {
		<-s.ShutdownSignal()
		slog.Info("Shutdown started, cleaning up resources...")
		app.Close()
	}()

	if err := s.Start(); err != nil {
		slog.Error("Failed to start server", "error", err)
		os.Exit(1)
	}
}
