package research

import (
	"context"
)

const (
	DefaultMaxResults = 5
	MaxMaxResults     = 20
	MinQueryLength    = 2
)

// Tool is a single external search backend the agent can dispatch to.
type Tool interface {
	Name() string
	Description() string
	RequiresAPIKey() bool
	// Available is false when a required key is missing.
	Available() bool
	Search(ctx context.Context, query string, max int) (Results, error)
}

// Results is a tool specific result set.
type Results interface {
	Count() int
}

// List is the Results implementation for tools that return a flat list.
type List[T any] []T

func (l List[T]) Count() int {
	return len(l)
}
