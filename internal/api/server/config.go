package server

import (
	"fmt"
	"net"
	"os"
	"strconv"
	"time"

	"github.com/DjordjeVuckovic/ai-news-hunter/pkg/stringsutil"
)

const (
	DefaultPort      = "8080"
	DefaultBodyLimit = "1M"
)

type Config struct {
	Port            string
	UseHttp2        bool
	CorsOrigins     []string
	BodyLimit       string
	ShutdownTimeout time.Duration
}

// Addr is the listen address for the configured port on all interfaces.
func (c *Config) Addr() string {
	return net.JoinHostPort("", c.Port)
}

// LoadConfig reads PORT, USE_HTTP2, CORS_ORIGINS, BODY_LIMIT and
// SHUTDOWN_TIMEOUT. The .env file is loaded by the caller.
func LoadConfig() (*Config, error) {
	cfg := &Config{
		Port:            stringsutil.FirstNonEmpty(os.Getenv("PORT"), DefaultPort),
		UseHttp2:        os.Getenv("USE_HTTP2") == "true",
		CorsOrigins:     stringsutil.SplitList(os.Getenv("CORS_ORIGINS")),
		BodyLimit:       stringsutil.FirstNonEmpty(os.Getenv("BODY_LIMIT"), DefaultBodyLimit),
		ShutdownTimeout: GracefulShutdownTimeout,
	}
	if len(cfg.CorsOrigins) == 0 {
		cfg.CorsOrigins = []string{"*"}
	}

	if err := validatePort(cfg.Port); err != nil {
		return nil, fmt.Errorf("invalid port: %w", err)
	}

	if raw := os.Getenv("SHUTDOWN_TIMEOUT"); raw != "" {
		d, err := time.ParseDuration(raw)
		if err != nil || d <= 0 {
			return nil, fmt.Errorf("invalid SHUTDOWN_TIMEOUT %q: must be a positive duration", raw)
		}
		cfg.ShutdownTimeout = d
	}

	return cfg, nil
}

func validatePort(port string) error {
	n, err := strconv.Atoi(port)
	if err != nil {
		return fmt.Errorf("%q is not a number", port)
	}
	if n < 1 || n > 65535 {
		return fmt.Errorf("%d is outside 1-65535", n)
	}
	return nil
}
