package env

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeEnvFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func unsetAfter(t *testing.T, keys ...string) {
	t.Helper()
	t.Cleanup(func() {
		for _, k := range keys {
			_ = os.Unsetenv(k)
		}
	})
}

func TestLoadDotEnv_EnvPathList(t *testing.T) {
	storage := writeEnvFile(t, "storage.env", "HUNTER_TEST_STORAGE=in_mem\nHUNTER_TEST_PORT=9999\n")
	llm := writeEnvFile(t, "llm.env", "HUNTER_TEST_LLM=gemini\n")
	unsetAfter(t, "HUNTER_TEST_STORAGE", "HUNTER_TEST_LLM")

	t.Setenv("ENV_PATH", storage+", "+llm)
	t.Setenv("HUNTER_TEST_PORT", "8080")

	require.NoError(t, LoadDotEnv(Local, "unused.env"))
	assert.Equal(t, "in_mem", os.Getenv("HUNTER_TEST_STORAGE"))
	assert.Equal(t, "gemini", os.Getenv("HUNTER_TEST_LLM"))
	assert.Equal(t, "8080", os.Getenv("HUNTER_TEST_PORT"), "process env wins over the file")
}

func TestLoadDotEnv_DefaultPath(t *testing.T) {
	path := writeEnvFile(t, ".env", "HUNTER_TEST_DEFAULT=yes\n")
	unsetAfter(t, "HUNTER_TEST_DEFAULT")
	t.Setenv("ENV_PATH", "")

	require.NoError(t, LoadDotEnv("", path))
	assert.Equal(t, "yes", os.Getenv("HUNTER_TEST_DEFAULT"))
}

func TestLoadDotEnv_MissingFile(t *testing.T) {
	t.Setenv("ENV_PATH", "")
	missing := filepath.Join(t.TempDir(), "absent.env")

	tests := []struct {
		env     string
		wantErr bool
	}{
		{env: "", wantErr: true},
		{env: "LOCAL", wantErr: true},
		{env: "production", wantErr: false},
	}
	for _, tt := range tests {
		t.Run("env="+tt.env, func(t *testing.T) {
			err := LoadDotEnv(tt.env, missing)
			if tt.wantErr {
				assert.ErrorContains(t, err, "absent.env")
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
