package dto

import (
	"testing"

	"github.com/DjordjeVuckovic/ai-news-hunter/internal/domain"
	"github.com/DjordjeVuckovic/ai-news-hunter/pkg/pagination"
	"github.com/stretchr/testify/assert"
)

func TestListArticlesRequest(t *testing.T) {
	req := ListArticlesRequest{Source: "arxiv", Category: "NLP", Days: 7, Bookmarked: true, Page: 3, Size: 10}

	assert.Equal(t, domain.ArticleFilter{
		Source:         domain.SourceArxiv,
		Category:       "NLP",
		Days:           7,
		BookmarkedOnly: true,
	}, req.Filter())
	assert.Equal(t, pagination.OffsetRequest{Page: 3, Size: 10}, req.PageRequest())
}
