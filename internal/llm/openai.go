package llm

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/DjordjeVuckovic/ai-news-hunter/pkg/httpclient"
)

const defaultTimeout = 60 * time.Second

type OpenAIOption func(*OpenAIClient)

// OpenAIClient talks to any OpenAI compatible chat completions API, Groq
// included.
type OpenAIClient struct {
	endpoint     string
	model        string
	systemPrompt string
	temperature  float64
	http         *httpclient.Client
}

func NewOpenAIClient(baseURL, apiKey string, opts ...OpenAIOption) (*OpenAIClient, error) {
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, err
	}

	client := &OpenAIClient{
		endpoint:    base.JoinPath("/chat/completions").String(),
		model:       DefaultOpenAIModel,
		temperature: 0.3,
		http: httpclient.New(
			httpclient.WithHttpClient(&http.Client{Timeout: defaultTimeout}),
			httpclient.WithBearerToken(apiKey),
		),
	}
	for _, opt := range opts {
		opt(client)
	}
	return client, nil
}

func WithOpenAIModel(model string) OpenAIOption {
	return func(c *OpenAIClient) {
		if model != "" {
			c.model = model
		}
	}
}

func WithSystemPrompt(prompt string) OpenAIOption {
	return func(c *OpenAIClient) {
		c.systemPrompt = prompt
	}
}

// WithOpenAIHttpClient replaces the transport. The client must carry its own
// bearer token.
func WithOpenAIHttpClient(h *httpclient.Client) OpenAIOption {
	return func(c *OpenAIClient) {
		c.http = h
	}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	MaxTokens   int           `json:"max_tokens,omitempty"`
	Temperature float64       `json:"temperature"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

func (c *OpenAIClient) Complete(ctx context.Context, prompt string, maxTokens int) (string, error) {
	messages := make([]chatMessage, 0, 2)
	if c.systemPrompt != "" {
		messages = append(messages, chatMessage{Role: "system", Content: c.systemPrompt})
	}
	messages = append(messages, chatMessage{Role: "user", Content: prompt})

	req := chatRequest{
		Model:       c.model,
		Messages:    messages,
		MaxTokens:   maxTokens,
		Temperature: c.temperature,
	}

	var resp chatResponse
	if err := c.http.PostJSON(ctx, c.endpoint, req, &resp); err != nil {
		return "", fmt.Errorf("failed to complete prompt: %w", err)
	}
	if resp.Error != nil {
		return "", fmt.Errorf("completion failed: %s", resp.Error.Message)
	}
	if len(resp.Choices) == 0 {
		return "", ErrEmptyResponse
	}

	text := strings.TrimSpace(resp.Choices[0].Message.Content)
	if text == "" {
		return "", ErrEmptyResponse
	}
	return text, nil
}
