package research

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/DjordjeVuckovic/ai-news-hunter/internal/apperr"
	"github.com/DjordjeVuckovic/ai-news-hunter/internal/domain"
	"github.com/DjordjeVuckovic/ai-news-hunter/internal/metrics"
)

const errNotConfigured = "tool not configured"

type RegistryOption func(*Registry)

func WithToolTimeout(timeout time.Duration) RegistryOption {
	return func(r *Registry) {
		if timeout > 0 {
			r.timeout = timeout
		}
	}
}

// Registry is an ordered, immutable set of tools keyed by name.
type Registry struct {
	order   []string
	tools   map[string]Tool
	timeout time.Duration
}

func NewRegistry(tools []Tool, opts ...RegistryOption) *Registry {
	r := &Registry{
		tools:   make(map[string]Tool, len(tools)),
		timeout: DefaultToolTimeout,
	}
	for _, t := range tools {
		if _, dup := r.tools[t.Name()]; dup {
			slog.Warn("duplicate research tool ignored", "tool", t.Name())
			continue
		}
		r.order = append(r.order, t.Name())
		r.tools[t.Name()] = t
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *Registry) Get(name string) (Tool, bool) {
	t, ok := r.tools[name]
	return t, ok
}

func (r *Registry) Tools() []Tool {
	out := make([]Tool, 0, len(r.order))
	for _, name := range r.order {
		out = append(out, r.tools[name])
	}
	return out
}

func (r *Registry) Names() []string {
	return append([]string(nil), r.order...)
}

func (r *Registry) Available() []Tool {
	out := make([]Tool, 0, len(r.order))
	for _, t := range r.Tools() {
		if t.Available() {
			out = append(out, t)
		}
	}
	return out
}

func (r *Registry) Infos() []domain.ToolInfo {
	infos := make([]domain.ToolInfo, 0, len(r.order))
	for _, t := range r.Tools() {
		infos = append(infos, domain.ToolInfo{
			Name:           t.Name(),
			Description:    t.Description(),
			Available:      t.Available(),
			RequiresAPIKey: t.RequiresAPIKey(),
		})
	}
	return infos
}

// Invoke validates and runs a single tool directly. Tool failures are
// reported in the outcome; only invalid input is returned as an error.
func (r *Registry) Invoke(ctx context.Context, name, query string, max int) (domain.ToolOutcome, error) {
	query, err := normalizeQuery(query)
	if err != nil {
		return domain.ToolOutcome{}, err
	}
	if max, err = normalizeMax(max); err != nil {
		return domain.ToolOutcome{}, err
	}
	t, ok := r.Get(name)
	if !ok {
		return domain.ToolOutcome{}, apperr.NewValidation(fmt.Sprintf("unknown tool: %s", name))
	}

	return r.run(ctx, t, query, max), nil
}

func (r *Registry) run(ctx context.Context, t Tool, query string, max int) domain.ToolOutcome {
	if !t.Available() {
		metrics.RecordToolCall(t.Name(), "skipped", 0)
		return domain.ToolOutcome{Error: errNotConfigured}
	}

	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	start := time.Now()
	res, err := t.Search(ctx, query, max)
	elapsed := time.Since(start)

	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			err = fmt.Errorf("timed out after %s", r.timeout)
		}
		slog.Warn("research tool failed", "tool", t.Name(), "error", err, "duration", elapsed)
		metrics.RecordToolCall(t.Name(), "error", elapsed.Seconds())
		return domain.ToolOutcome{Error: err.Error()}
	}

	if res == nil {
		res = List[any]{}
	}
	metrics.RecordToolCall(t.Name(), "success", elapsed.Seconds())
	slog.Debug("research tool finished", "tool", t.Name(), "count", res.Count(), "duration", elapsed)
	return domain.ToolOutcome{Results: res, Count: res.Count()}
}

func normalizeQuery(query string) (string, error) {
	query = strings.TrimSpace(query)
	if len([]rune(query)) < MinQueryLength {
		return "", apperr.NewValidation(fmt.Sprintf("query must be at least %d characters", MinQueryLength))
	}
	return query, nil
}

func normalizeMax(max int) (int, error) {
	if max == 0 {
		return DefaultMaxResults, nil
	}
	if max < 1 || max > MaxMaxResults {
		return 0, apperr.NewValidation(fmt.Sprintf("max_results must be between 1 and %d", MaxMaxResults))
	}
	return max, nil
}
