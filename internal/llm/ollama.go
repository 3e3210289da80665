package llm

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/DjordjeVuckovic/ai-news-hunter/pkg/httpclient"
)

type OllamaOption func(client *OllamaClient)

// OllamaClient completes prompts against a local Ollama server.
type OllamaClient struct {
	endpoint string
	model    string
	http     *httpclient.Client
}

func NewOllamaClient(baseUrl string, opts ...OllamaOption) (*OllamaClient, error) {
	base, err := url.Parse(baseUrl)
	if err != nil {
		return nil, err
	}

	client := &OllamaClient{
		endpoint: base.JoinPath("/api/generate").String(),
		model:    DefaultOllamaModel,
		http:     httpclient.New(httpclient.WithHttpClient(&http.Client{Timeout: defaultTimeout})),
	}

	for _, opt := range opts {
		opt(client)
	}

	return client, nil
}

func WithOllamaModel(model string) OllamaOption {
	return func(client *OllamaClient) {
		if model != "" {
			client.model = model
		}
	}
}

func WithHttpClient(h *httpclient.Client) OllamaOption {
	return func(client *OllamaClient) {
		client.http = h
	}
}

type ollamaGenerateRequest struct {
	// Model is the model name.
	Model string `json:"model"`

	Prompt string `json:"prompt"`

	// Stream must be false to receive a single response object.
	Stream bool `json:"stream"`

	// Options lists model-specific options.
	Options map[string]any `json:"options,omitempty"`
}

type ollamaGenerateResponse struct {
	Response string `json:"response"`
	Done     bool   `json:"done"`
}

func (oc *OllamaClient) Complete(ctx context.Context, prompt string, maxTokens int) (string, error) {
	req := ollamaGenerateRequest{
		Model:  oc.model,
		Prompt: prompt,
	}
	if maxTokens > 0 {
		req.Options = map[string]any{"num_predict": maxTokens}
	}

	var resp ollamaGenerateResponse
	if err := oc.http.PostJSON(ctx, oc.endpoint, req, &resp); err != nil {
		return "", fmt.Errorf("failed to generate: %w", err)
	}

	text := strings.TrimSpace(resp.Response)
	if text == "" {
		return "", ErrEmptyResponse
	}
	return text, nil
}
