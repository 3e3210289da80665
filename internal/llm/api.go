package llm

import (
	"context"
	"errors"
)

var ErrEmptyResponse = errors.New("empty model response")

// Client is the language-model capability: one prompt in, text out.
type Client interface {
	Complete(ctx context.Context, prompt string, maxTokens int) (string, error)
}

// Available reports whether a possibly-absent client handle can be called.
func Available(c Client) bool {
	return c != nil
}
