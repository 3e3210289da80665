package tools

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/DjordjeVuckovic/ai-news-hunter/internal/research"
	"github.com/DjordjeVuckovic/ai-news-hunter/pkg/httpclient"
)

const (
	DefaultHFModelsURL = "https://huggingface.co/api/models"
	hfModelPageURL     = "https://huggingface.co/"
)

type Model struct {
	ModelID   string   `json:"model_id"`
	Author    string   `json:"author"`
	Downloads int64    `json:"downloads"`
	Likes     int64    `json:"likes"`
	Tags      []string `json:"tags"`
	URL       string   `json:"url"`
}

type HuggingFace struct {
	http    *httpclient.Client
	baseURL string
}

func NewHuggingFace(client *httpclient.Client, opts ...Option) *HuggingFace {
	return &HuggingFace{http: client, baseURL: resolveBaseURL(DefaultHFModelsURL, opts)}
}

func (t *HuggingFace) Name() string { return "huggingface" }

func (t *HuggingFace) Description() string {
	return "Search the HuggingFace Hub for pre-trained and fine-tuned ML models and model architectures."
}

func (t *HuggingFace) RequiresAPIKey() bool { return false }
func (t *HuggingFace) Available() bool      { return true }

type hfModel struct {
	ID        string   `json:"id"`
	ModelID   string   `json:"modelId"`
	Downloads int64    `json:"downloads"`
	Likes     int64    `json:"likes"`
	Tags      []string `json:"tags"`
}

func (t *HuggingFace) Search(ctx context.Context, query string, max int) (research.Results, error) {
	params := url.Values{}
	params.Set("search", query)
	params.Set("sort", "downloads")
	params.Set("direction", "-1")
	params.Set("limit", strconv.Itoa(max))

	var models []hfModel
	if err := t.http.GetJSON(ctx, t.baseURL+"?"+params.Encode(), &models); err != nil {
		return nil, fmt.Errorf("failed to search huggingface models: %w", err)
	}

	out := make(research.List[Model], 0, len(models))
	for _, m := range headOf(models, max) {
		id := m.ModelID
		if id == "" {
			id = m.ID
		}
		var author string
		if owner, _, ok := strings.Cut(id, "/"); ok {
			author = owner
		}
		tags := headOf(m.Tags, 5)
		if tags == nil {
			tags = []string{}
		}
		out = append(out, Model{
			ModelID:   id,
			Author:    author,
			Downloads: m.Downloads,
			Likes:     m.Likes,
			Tags:      tags,
			URL:       hfModelPageURL + id,
		})
	}
	return out, nil
}
