package pg

import (
	"context"
	"log/slog"
)

type pinger interface {
	Ping(ctx context.Context) error
}

// HealthChecker reports whether the article database answers a ping.
type HealthChecker struct {
	db pinger
}

func NewHealthChecker(db pinger) *HealthChecker {
	return &HealthChecker{db: db}
}

func (hc *HealthChecker) Healthy(ctx context.Context) bool {
	if hc.db == nil {
		return false
	}

	if err := hc.db.Ping(ctx); err != nil {
		slog.Warn("postgres health check failed", "error", err)
		return false
	}

	return true
}
