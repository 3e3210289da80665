package fetcher

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/DjordjeVuckovic/ai-news-hunter/pkg/httpclient"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const hnJSON = `{"hits": [
  {"objectID": "101", "title": "Show HN: tiny GPT", "url": "", "author": "pg", "points": 120, "num_comments": 30, "created_at_i": 1700000000},
  {"objectID": "102", "title": "ML in prod", "url": "https://blog.example/ml", "author": "dang", "points": 5, "num_comments": 1, "created_at_i": 1700000100}
]}`

const redditJSON = `{"data": {"children": [
  {"data": {"id": "pinned", "title": "Weekly thread", "stickied": true}},
  {"data": {"id": "abc", "title": "[R] New optimizer", "selftext": "", "url": "https://arxiv.org/abs/1", "author": "u1", "score": 42, "num_comments": 7, "created_utc": 1700000000.0, "link_flair_text": "Research"}},
  {"data": {"id": "def", "title": "[D] Discussion", "selftext": "Long text here", "url": "", "permalink": "/r/MachineLearning/comments/def/", "author": "u2"}}
]}}`

func TestAggregatorFetcher_Fetch(t *testing.T) {
	var hnQueries []string
	mux := http.NewServeMux()
	mux.HandleFunc("/hn", func(w http.ResponseWriter, r *http.Request) {
		hnQueries = append(hnQueries, r.URL.Query().Get("query"))
		assert.Equal(t, "story", r.URL.Query().Get("tags"))
		_, _ = w.Write([]byte(hnJSON))
	})
	mux.HandleFunc("/reddit", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "25", r.URL.Query().Get("limit"))
		assert.Equal(t, httpclient.DefaultUserAgent, r.Header.Get("User-Agent"))
		_, _ = w.Write([]byte(redditJSON))
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	f := NewAggregatorFetcher(httpclient.New(), WithAggregatorEndpoints(srv.URL+"/hn", srv.URL+"/reddit"))
	articles, err := f.Fetch(context.Background(), 8)
	require.NoError(t, err)

	// every hn term returns the same hits, so only the first one adds articles
	require.Len(t, articles, 4)
	assert.Equal(t, []string{"AI", "machine learning", "GPT"}, hnQueries)

	first := articles[0]
	assert.Equal(t, "hn:101", first.SourceID)
	assert.Equal(t, "https://news.ycombinator.com/item?id=101", first.URL)
	assert.Equal(t, "Points: 120 | Comments: 30", first.Abstract)
	assert.Equal(t, []string{"AI", "Tech News"}, first.Categories)

	assert.Equal(t, "https://blog.example/ml", articles[1].URL)

	optimizer := articles[2]
	assert.Equal(t, "reddit:abc", optimizer.SourceID)
	assert.Equal(t, "Score: 42 | Comments: 7", optimizer.Abstract)
	assert.Equal(t, []string{"Machine Learning", "Research"}, optimizer.Categories)

	discussion := articles[3]
	assert.Equal(t, "Long text here", discussion.Abstract)
	assert.Equal(t, "https://www.reddit.com/r/MachineLearning/comments/def/", discussion.URL)
	assert.Nil(t, discussion.PublishedAt)
}

func TestAggregatorFetcher_RedditDown(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/hn", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(hnJSON))
	})
	mux.HandleFunc("/reddit", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	f := NewAggregatorFetcher(httpclient.New(), WithAggregatorEndpoints(srv.URL+"/hn", srv.URL+"/reddit"), WithHNTerms("AI"))
	articles, err := f.Fetch(context.Background(), 4)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "reddit")
	assert.Len(t, articles, 2)
}
