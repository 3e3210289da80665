package tools

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/DjordjeVuckovic/ai-news-hunter/internal/research"
	"github.com/DjordjeVuckovic/ai-news-hunter/pkg/httpclient"
	"github.com/DjordjeVuckovic/ai-news-hunter/pkg/stringsutil"
)

const DefaultGitHubURL = "https://api.github.com/search/repositories"

type Repository struct {
	Name        string   `json:"name"`
	FullName    string   `json:"full_name"`
	Description string   `json:"description"`
	URL         string   `json:"url"`
	Stars       int      `json:"stars"`
	Language    string   `json:"language,omitempty"`
	Topics      []string `json:"topics"`
}

// GitHub searches repositories. A token only raises the rate limit.
type GitHub struct {
	http    *httpclient.Client
	token   string
	baseURL string
}

func NewGitHub(client *httpclient.Client, token string, opts ...Option) *GitHub {
	return &GitHub{http: client, token: token, baseURL: resolveBaseURL(DefaultGitHubURL, opts)}
}

func (t *GitHub) Name() string { return "github" }

func (t *GitHub) Description() string {
	return "Search GitHub for ML/AI repositories: open-source implementations, libraries, and tools."
}

func (t *GitHub) RequiresAPIKey() bool { return false }
func (t *GitHub) Available() bool      { return true }

type githubResponse struct {
	Items []struct {
		Name            string   `json:"name"`
		FullName        string   `json:"full_name"`
		Description     string   `json:"description"`
		HTMLURL         string   `json:"html_url"`
		StargazersCount int      `json:"stargazers_count"`
		Language        string   `json:"language"`
		Topics          []string `json:"topics"`
	} `json:"items"`
}

func (t *GitHub) Search(ctx context.Context, query string, max int) (research.Results, error) {
	params := url.Values{}
	params.Set("q", query+" topic:machine-learning")
	params.Set("sort", "stars")
	params.Set("order", "desc")
	params.Set("per_page", strconv.Itoa(max))

	headers := http.Header{"Accept": []string{"application/vnd.github+json"}}
	if t.token != "" {
		headers.Set("Authorization", "Bearer "+t.token)
	}

	var resp githubResponse
	if err := t.http.GetJSON(ctx, t.baseURL+"?"+params.Encode(), &resp, headers); err != nil {
		return nil, fmt.Errorf("failed to search github: %w", err)
	}

	out := make(research.List[Repository], 0, len(resp.Items))
	for _, r := range headOf(resp.Items, max) {
		topics := headOf(r.Topics, 5)
		if topics == nil {
			topics = []string{}
		}
		out = append(out, Repository{
			Name:        r.Name,
			FullName:    r.FullName,
			Description: stringsutil.Clip(r.Description, descriptionMax),
			URL:         r.HTMLURL,
			Stars:       r.StargazersCount,
			Language:    r.Language,
			Topics:      topics,
		})
	}
	return out, nil
}
