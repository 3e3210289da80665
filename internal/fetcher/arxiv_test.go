package fetcher

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/DjordjeVuckovic/ai-news-hunter/internal/domain"
	"github.com/DjordjeVuckovic/ai-news-hunter/internal/source/arxiv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const arxivFeed = `<?xml version="1.0" encoding="UTF-8"?>
<feed xmlns="http://www.w3.org/2005/Atom">
  <entry>
    <id>http://arxiv.org/abs/2402.11111v1</id>
    <published>2024-02-10T08:00:00Z</published>
    <title>Vision Language Models</title>
    <summary>We align images and text.</summary>
    <author><name>Grace Hopper</name></author>
    <category term="cs.CV"/>
    <category term="cs.CL"/>
  </entry>
</feed>`

func TestArxivFetcher_Fetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(arxivFeed))
	}))
	defer srv.Close()

	f := NewArxivFetcher(arxiv.NewClient(arxiv.WithBaseURL(srv.URL)))
	articles, err := f.Fetch(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, articles, 1)

	a := articles[0]
	assert.Equal(t, domain.SourceArxiv, a.Source)
	assert.Equal(t, "arxiv:2402.11111v1", a.SourceID)
	assert.Equal(t, []string{"Computer Vision", "NLP"}, a.Categories)
	assert.Equal(t, "https://arxiv.org/pdf/2402.11111v1.pdf", a.PDFURL)
	assert.Equal(t, []string{"Grace Hopper"}, a.Authors)
	assert.NotEmpty(t, a.URL)
}

func TestArxivFetcher_Unavailable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	f := NewArxivFetcher(arxiv.NewClient(arxiv.WithBaseURL(srv.URL)))
	articles, err := f.Fetch(context.Background(), 10)
	assert.Error(t, err)
	assert.Empty(t, articles)
}
