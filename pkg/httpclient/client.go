package httpclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"golang.org/x/time/rate"
)

const (
	DefaultTimeout   = 30 * time.Second
	DefaultUserAgent = "AINewsTracker/1.0"

	maxBodyBytes = 10 << 20
)

type Option func(*Client)

// Client is a small JSON/bytes HTTP helper shared by the fetchers and the
// research tools.
type Client struct {
	http      *http.Client
	userAgent string
	headers   http.Header
	limiter   *rate.Limiter
}

func New(opts ...Option) *Client {
	c := &Client{
		http:      &http.Client{Timeout: DefaultTimeout},
		userAgent: DefaultUserAgent,
		headers:   make(http.Header),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func WithHttpClient(httpClient *http.Client) Option {
	return func(c *Client) {
		c.http = httpClient
	}
}

func WithUserAgent(ua string) Option {
	return func(c *Client) {
		c.userAgent = ua
	}
}

func WithHeader(key, value string) Option {
	return func(c *Client) {
		c.headers.Set(key, value)
	}
}

// WithBearerToken authorizes every request with token. An empty token is ignored.
func WithBearerToken(token string) Option {
	return func(c *Client) {
		if token != "" {
			c.headers.Set("Authorization", "Bearer "+token)
		}
	}
}

// WithRateLimit limits outgoing requests to r per second with the given burst.
func WithRateLimit(r rate.Limit, burst int) Option {
	return func(c *Client) {
		c.limiter = rate.NewLimiter(r, burst)
	}
}

// HTTP exposes the underlying client for libraries that take an *http.Client.
func (c *Client) HTTP() *http.Client {
	return c.http
}

type StatusError struct {
	URL        string
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status code %d from %s: %s", e.StatusCode, e.URL, e.Body)
}

func (c *Client) Get(ctx context.Context, url string, headers ...http.Header) ([]byte, error) {
	return c.Do(ctx, http.MethodGet, url, nil, headers...)
}

func (c *Client) GetJSON(ctx context.Context, url string, out any, headers ...http.Header) error {
	body, err := c.Get(ctx, url, headers...)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("unmarshal response: %w", err)
	}
	return nil
}

func (c *Client) PostJSON(ctx context.Context, url string, reqData, out any, headers ...http.Header) error {
	reqBytes, err := json.Marshal(reqData)
	if err != nil {
		return err
	}
	h := http.Header{"Content-Type": []string{"application/json"}}
	for _, extra := range headers {
		for k, v := range extra {
			h[k] = v
		}
	}

	body, err := c.Do(ctx, http.MethodPost, url, bytes.NewReader(reqBytes), h)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("unmarshal response: %w", err)
	}
	return nil
}

func (c *Client) Do(ctx context.Context, method, url string, body io.Reader, headers ...http.Header) ([]byte, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("rate limit wait: %w", err)
		}
	}

	request, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return nil, err
	}

	request.Header.Set("User-Agent", c.userAgent)
	request.Header.Set("Accept", "application/json, application/xml;q=0.9, */*;q=0.8")
	for k, v := range c.headers {
		request.Header[k] = v
	}
	for _, h := range headers {
		for k, v := range h {
			request.Header[k] = v
		}
	}

	resp, err := c.http.Do(request)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, err
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		snippet := string(respBody)
		if len(snippet) > 256 {
			snippet = snippet[:256]
		}
		return nil, &StatusError{URL: url, StatusCode: resp.StatusCode, Body: snippet}
	}

	return respBody, nil
}
