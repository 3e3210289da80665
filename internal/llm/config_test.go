package llm

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigFromEnv(t *testing.T) {
	t.Run("defaults to groq compatible endpoint", func(t *testing.T) {
		t.Setenv("LLM_PROVIDER", "")
		t.Setenv("LLM_API_KEY", "")
		t.Setenv("LLM_MODEL", "")
		t.Setenv("LLM_BASE_URL", "")
		t.Setenv("GROQ_API_KEY", "gsk")

		cfg, err := LoadConfigFromEnv()
		require.NoError(t, err)
		assert.Equal(t, ProviderOpenAI, cfg.Provider)
		assert.Equal(t, "gsk", cfg.APIKey)
		assert.Equal(t, DefaultOpenAIBaseURL, cfg.BaseURL)
		assert.Equal(t, DefaultOpenAIModel, cfg.Model)
		assert.True(t, cfg.Configured())
	})

	t.Run("missing key is not configured", func(t *testing.T) {
		t.Setenv("LLM_PROVIDER", "gemini")
		t.Setenv("LLM_API_KEY", "")
		t.Setenv("GEMINI_API_KEY", "")

		cfg, err := LoadConfigFromEnv()
		require.NoError(t, err)
		assert.False(t, cfg.Configured())

		client, err := New(context.Background(), cfg)
		require.NoError(t, err)
		assert.False(t, Available(client))
	})

	t.Run("invalid provider", func(t *testing.T) {
		t.Setenv("LLM_PROVIDER", "skynet")

		_, err := LoadConfigFromEnv()
		assert.Error(t, err)
	})
}
