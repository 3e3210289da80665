package fetcher

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/DjordjeVuckovic/ai-news-hunter/pkg/httpclient"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const blogRSS = `<?xml version="1.0"?>
<rss version="2.0" xmlns:content="http://purl.org/rss/1.0/modules/content/">
  <channel>
    <title>Lab News</title>
    <item>
      <title>New reasoning model</title>
      <link>https://lab.example/news/reasoning</link>
      <guid>reasoning-1</guid>
      <content:encoded><![CDATA[<h1>Reasoning</h1><p>Our model thinks step by step.</p>]]></content:encoded>
    </item>
  </channel>
</rss>`

const blogHTML = `<html><body>
  <div class="post-item">
    <h3>Interpretability at scale</h3>
    <a href="/research/interp">Read</a>
    <p>Looking inside models.</p>
  </div>
  <div class="post-item">
    <h3></h3>
    <a href="/research/untitled">Read</a>
  </div>
  <div class="post-item">
    <h3>Constitutional classifiers</h3>
    <a href="https://other.example/cc">Read</a>
  </div>
</body></html>`

func TestBlogFetcher_Fetch(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/rss.xml", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(blogRSS))
	})
	mux.HandleFunc("/research", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(blogHTML))
	})
	mux.HandleFunc("/down", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	f := NewBlogFetcher(httpclient.New(), []BlogSource{
		{Key: "lab", Name: "Lab", Kind: BlogRSS, URL: srv.URL + "/rss.xml", Categories: []string{"AI"}},
		{Key: "research", Name: "Research Co", Kind: BlogScrape, URL: srv.URL + "/research", Categories: []string{"AI Safety"}},
		{Key: "down", Name: "Down", Kind: BlogRSS, URL: srv.URL + "/down"},
	})

	articles, err := f.Fetch(context.Background(), 30)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "down")
	require.Len(t, articles, 3)

	rss := articles[0]
	assert.Equal(t, "blog:lab:reasoning-1", rss.SourceID)
	assert.Equal(t, []string{"Lab"}, rss.Authors)
	assert.Equal(t, "Reasoning Our model thinks step by step.", rss.Content)
	assert.Equal(t, rss.Content, rss.Abstract)

	scraped := articles[1]
	assert.Equal(t, "Interpretability at scale", scraped.Title)
	assert.Equal(t, srv.URL+"/research/interp", scraped.URL)
	assert.Equal(t, "blog:research:"+srv.URL+"/research/interp", scraped.SourceID)
	assert.Equal(t, "Looking inside models.", scraped.Abstract)
	assert.Equal(t, []string{"AI Safety"}, scraped.Categories)

	assert.Equal(t, "https://other.example/cc", articles[2].URL)
}

func TestLoadBlogSources(t *testing.T) {
	doc := `
blogs:
  - key: mistral
    kind: rss
    url: https://mistral.example/rss
    categories: [AI, LLM]
`
	sources, err := LoadBlogSources(strings.NewReader(doc))
	require.NoError(t, err)
	require.Len(t, sources, 1)
	assert.Equal(t, "mistral", sources[0].Name)
	assert.Equal(t, BlogRSS, sources[0].Kind)

	_, err = LoadBlogSources(strings.NewReader("blogs:\n  - key: x\n    kind: ftp\n    url: u\n"))
	assert.Error(t, err)
}
