package fetcher

import (
	"context"

	"github.com/DjordjeVuckovic/ai-news-hunter/internal/domain"
)

const DefaultMaxResults = 50

// Fetcher produces normalized articles from one external source.
//
// A non-nil error together with a non-empty slice is a partial result: the
// articles that were fetched before the failure are still usable.
type Fetcher interface {
	Source() domain.Source
	Fetch(ctx context.Context, maxResults int) ([]domain.Article, error)
}

// Registry maps a source to its fetcher. It is filled once at startup and
// only read afterwards.
type Registry struct {
	fetchers map[domain.Source]Fetcher
	order    []domain.Source
}

func NewRegistry(fetchers ...Fetcher) *Registry {
	r := &Registry{fetchers: make(map[domain.Source]Fetcher, len(fetchers))}
	for _, f := range fetchers {
		if _, exists := r.fetchers[f.Source()]; !exists {
			r.order = append(r.order, f.Source())
		}
		r.fetchers[f.Source()] = f
	}
	return r
}

func (r *Registry) Get(source domain.Source) (Fetcher, bool) {
	f, ok := r.fetchers[source]
	return f, ok
}

// Sources returns registered sources in registration order.
func (r *Registry) Sources() []domain.Source {
	out := make([]domain.Source, len(r.order))
	copy(out, r.order)
	return out
}

func (r *Registry) All() []Fetcher {
	out := make([]Fetcher, 0, len(r.order))
	for _, s := range r.order {
		out = append(out, r.fetchers[s])
	}
	return out
}

func splitBudget(maxResults, parts int) int {
	if parts <= 0 {
		return maxResults
	}
	n := maxResults / parts
	if n < 1 {
		n = 1
	}
	return n
}
