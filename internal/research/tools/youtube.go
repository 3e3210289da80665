package tools

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/DjordjeVuckovic/ai-news-hunter/internal/research"
	"github.com/DjordjeVuckovic/ai-news-hunter/pkg/httpclient"
	"github.com/DjordjeVuckovic/ai-news-hunter/pkg/stringsutil"
)

const (
	DefaultYouTubeURL = "https://www.googleapis.com/youtube/v3/search"
	youtubeWatchURL   = "https://www.youtube.com/watch?v="
)

type Video struct {
	Title        string `json:"title"`
	Channel      string `json:"channel"`
	Description  string `json:"description"`
	URL          string `json:"url"`
	ThumbnailURL string `json:"thumbnail_url,omitempty"`
	PublishedAt  string `json:"published_at,omitempty"`
}

type YouTube struct {
	http    *httpclient.Client
	apiKey  string
	baseURL string
}

func NewYouTube(client *httpclient.Client, apiKey string, opts ...Option) *YouTube {
	return &YouTube{http: client, apiKey: apiKey, baseURL: resolveBaseURL(DefaultYouTubeURL, opts)}
}

func (t *YouTube) Name() string { return "youtube" }

func (t *YouTube) Description() string {
	return "Search YouTube for educational videos, tutorials, conference talks and presentations."
}

func (t *YouTube) RequiresAPIKey() bool { return true }
func (t *YouTube) Available() bool      { return t.apiKey != "" }

type youtubeResponse struct {
	Items []struct {
		ID struct {
			VideoID string `json:"videoId"`
		} `json:"id"`
		Snippet struct {
			Title        string `json:"title"`
			ChannelTitle string `json:"channelTitle"`
			Description  string `json:"description"`
			PublishedAt  string `json:"publishedAt"`
			Thumbnails   struct {
				Medium struct {
					URL string `json:"url"`
				} `json:"medium"`
			} `json:"thumbnails"`
		} `json:"snippet"`
	} `json:"items"`
}

func (t *YouTube) Search(ctx context.Context, query string, max int) (research.Results, error) {
	if !t.Available() {
		return nil, errMissingKey
	}

	params := url.Values{}
	params.Set("part", "snippet")
	params.Set("type", "video")
	params.Set("q", query+" "+youtubeContext)
	params.Set("maxResults", strconv.Itoa(max))
	params.Set("relevanceLanguage", "en")
	params.Set("key", t.apiKey)

	var resp youtubeResponse
	if err := t.http.GetJSON(ctx, t.baseURL+"?"+params.Encode(), &resp); err != nil {
		return nil, fmt.Errorf("failed to search youtube: %w", err)
	}

	out := make(research.List[Video], 0, len(resp.Items))
	for _, item := range resp.Items {
		if item.ID.VideoID == "" {
			continue
		}
		out = append(out, Video{
			Title:        item.Snippet.Title,
			Channel:      item.Snippet.ChannelTitle,
			Description:  stringsutil.Clip(item.Snippet.Description, 200),
			URL:          youtubeWatchURL + item.ID.VideoID,
			ThumbnailURL: item.Snippet.Thumbnails.Medium.URL,
			PublishedAt:  item.Snippet.PublishedAt,
		})
	}
	return headOf(out, max), nil
}
