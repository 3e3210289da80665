package testing

import (
	"context"
	"os"
	"path/filepath"
	"regexp"
	"testing"

	pgxmock "github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplyMigrations_RunsUpScriptsInOrder(t *testing.T) {
	dir := t.TempDir()
	for name, sql := range map[string]string{
		"002_bookmarks.up.sql":  "CREATE INDEX b ON articles (is_bookmarked)",
		"001_articles.up.sql":   "CREATE TABLE articles (id UUID)",
		"001_articles.down.sql": "DROP TABLE articles",
		"README.md":             "not sql",
	} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(sql), 0o600))
	}

	mock, err := pgxmock.NewPool(pgxmock.QueryMatcherOption(pgxmock.QueryMatcherEqual))
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectExec("CREATE TABLE articles (id UUID)").WillReturnResult(pgxmock.NewResult("CREATE", 0))
	mock.ExpectExec("CREATE INDEX b ON articles (is_bookmarked)").WillReturnResult(pgxmock.NewResult("CREATE", 0))

	require.NoError(t, ApplyMigrations(context.Background(), mock, dir))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestApplyMigrations_Errors(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	err = ApplyMigrations(context.Background(), mock, t.TempDir())
	assert.ErrorContains(t, err, "no migrations found")

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "001_bad.up.sql"), []byte("CREATE TABL x"), 0o600))
	mock.ExpectExec(regexp.QuoteMeta("CREATE TABL x")).WillReturnError(assert.AnError)

	err = ApplyMigrations(context.Background(), mock, dir)
	assert.ErrorContains(t, err, "001_bad.up.sql")
	assert.ErrorIs(t, err, assert.AnError)
}

func TestMigrationsDir_HoldsArticlesSchema(t *testing.T) {
	scripts, err := filepath.Glob(filepath.Join(MigrationsDir(), "*.up.sql"))
	require.NoError(t, err)
	require.NotEmpty(t, scripts)

	sql, err := os.ReadFile(scripts[0])
	require.NoError(t, err)
	assert.Contains(t, string(sql), "CREATE TABLE IF NOT EXISTS articles")
}
