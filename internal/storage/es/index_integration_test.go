//go:build integration

package es

import (
	"context"
	"testing"
	"time"

	"github.com/DjordjeVuckovic/ai-news-hunter/internal/domain"
	estesting "github.com/DjordjeVuckovic/ai-news-hunter/pkg/testing"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIndexIntegration_IndexAndSearch(t *testing.T) {
	ctx := context.Background()
	container := estesting.NewESContainer(ctx, t)
	cfg := ClientConfig{Addresses: []string{container.Address}, IndexName: "it_articles"}

	idx, err := NewIndex(ctx, cfg)
	require.NoError(t, err)

	articles := []domain.Article{
		{ID: uuid.New(), Source: domain.SourceArxiv, SourceID: "arxiv:1", Title: "Diffusion transformers", Abstract: "image generation", FetchedAt: time.Now()},
		{ID: uuid.New(), Source: domain.SourceBlog, SourceID: "openai:1", Title: "Robotics update", Abstract: "manipulation", FetchedAt: time.Now()},
	}
	require.NoError(t, idx.IndexArticles(ctx, articles))

	container.Refresh(ctx, t, cfg.IndexName)
	assert.Equal(t, int64(2), container.Count(ctx, t, cfg.IndexName))

	s, err := NewSearcher(cfg)
	require.NoError(t, err)

	hits, err := s.Search(ctx, "diffusion", 10)
	require.NoError(t, err)
	require.NotEmpty(t, hits)
	assert.Equal(t, articles[0].ID, hits[0].ID)
}
