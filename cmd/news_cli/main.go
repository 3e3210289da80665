package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/DjordjeVuckovic/ai-news-hunter/internal/cli"
	"github.com/DjordjeVuckovic/ai-news-hunter/internal/tracker"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	err := cli.Execute(ctx, func(ctx context.Context) (cli.Tracker, func(), error) {
		cfg, err := NewAppConfig().Load()
		if err != nil {
			return nil, nil, err
		}
		app, err := tracker.Build(ctx, cfg)
		if err != nil {
			return nil, nil, err
		}
		return app.Service, app.Close, nil
	})
	stop()

	if err != nil {
		slog.Error("Command failed", "error", err)
		os.Exit(1)
	}
}
