package testing

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

const (
	ArticlesTestDB = "ai_news_test"

	pgImage = "postgres:17.5"
	pgUser  = "hunter"
)

// PGContainer is a throwaway Postgres with the articles schema applied.
type PGContainer struct {
	Container  *postgres.PostgresContainer
	ConnString string
	Pool       *pgxpool.Pool
}

// Execer runs a plain SQL script.
type Execer interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// NewPGContainer starts Postgres, opens a pool and runs db/migrations. The
// container and pool are released when the test ends.
func NewPGContainer(ctx context.Context, tb testing.TB) *PGContainer {
	tb.Helper()

	container, err := postgres.Run(ctx, pgImage,
		postgres.WithDatabase(ArticlesTestDB),
		postgres.WithUsername(pgUser),
		postgres.WithPassword(pgUser),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	if err != nil {
		tb.Fatalf("failed to start postgres container: %v", err)
	}
	tb.Cleanup(func() {
		if err := testcontainers.TerminateContainer(container); err != nil {
			tb.Logf("failed to terminate postgres container: %v", err)
		}
	})

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		tb.Fatalf("failed to get postgres connection string: %v", err)
	}

	pool, err := pgxpool.New(ctx, connStr)
	if err != nil {
		tb.Fatalf("failed to open postgres pool: %v", err)
	}
	tb.Cleanup(pool.Close)

	if err := ApplyMigrations(ctx, pool, MigrationsDir()); err != nil {
		tb.Fatalf("failed to migrate %s: %v", ArticlesTestDB, err)
	}

	return &PGContainer{Container: container, ConnString: connStr, Pool: pool}
}

// MigrationsDir is the repository's db/migrations directory.
func MigrationsDir() string {
	_, file, _, _ := runtime.Caller(0)
	return filepath.Join(filepath.Dir(file), "..", "..", "db", "migrations")
}

// ApplyMigrations runs every *.up.sql script in dir, ordered by file name.
func ApplyMigrations(ctx context.Context, db Execer, dir string) error {
	scripts, err := filepath.Glob(filepath.Join(dir, "*.up.sql"))
	if err != nil {
		return fmt.Errorf("failed to list migrations: %w", err)
	}
	if len(scripts) == 0 {
		return fmt.Errorf("no migrations found in %s", dir)
	}
	sort.Strings(scripts)

	for _, script := range scripts {
		sql, err := os.ReadFile(script)
		if err != nil {
			return fmt.Errorf("failed to read migration %s: %w", filepath.Base(script), err)
		}
		if _, err := db.Exec(ctx, string(sql)); err != nil {
			return fmt.Errorf("failed to apply migration %s: %w", filepath.Base(script), err)
		}
	}
	return nil
}
