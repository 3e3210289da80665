package tools

import (
	"context"
	"fmt"

	"github.com/DjordjeVuckovic/ai-news-hunter/internal/research"
	"github.com/DjordjeVuckovic/ai-news-hunter/pkg/httpclient"
	"github.com/DjordjeVuckovic/ai-news-hunter/pkg/stringsutil"
)

const (
	DefaultDailyPapersURL = "https://huggingface.co/api/daily_papers?limit=50"
	hfPaperPageURL        = "https://huggingface.co/papers/"
)

type TrendingPaper struct {
	Title         string `json:"title"`
	Abstract      string `json:"abstract"`
	URL           string `json:"url"`
	RepositoryURL string `json:"repository_url,omitempty"`
}

// PapersWithCode filters the HuggingFace daily papers feed, which replaced
// the Papers With Code trending list, by the query terms.
type PapersWithCode struct {
	http    *httpclient.Client
	baseURL string
}

func NewPapersWithCode(client *httpclient.Client, opts ...Option) *PapersWithCode {
	return &PapersWithCode{http: client, baseURL: resolveBaseURL(DefaultDailyPapersURL, opts)}
}

func (t *PapersWithCode) Name() string { return "papers_with_code" }

func (t *PapersWithCode) Description() string {
	return "Search trending papers that come with code implementations; good for reproducible research."
}

func (t *PapersWithCode) RequiresAPIKey() bool { return false }
func (t *PapersWithCode) Available() bool      { return true }

type dailyPaper struct {
	Paper struct {
		ID      string `json:"id"`
		Title   string `json:"title"`
		Summary string `json:"summary"`
	} `json:"paper"`
}

func (t *PapersWithCode) Search(ctx context.Context, query string, max int) (research.Results, error) {
	var papers []dailyPaper
	if err := t.http.GetJSON(ctx, t.baseURL, &papers); err != nil {
		return nil, fmt.Errorf("failed to fetch daily papers: %w", err)
	}

	out := make(research.List[TrendingPaper], 0, max)
	for _, item := range papers {
		p := item.Paper
		if !matchesAny(query, p.Title+" "+p.Summary) {
			continue
		}
		out = append(out, TrendingPaper{
			Title:    p.Title,
			Abstract: stringsutil.Truncate(p.Summary, abstractMax),
			URL:      hfPaperPageURL + p.ID,
		})
		if len(out) >= max {
			break
		}
	}
	return out, nil
}
