package es

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/DjordjeVuckovic/ai-news-hunter/internal/domain"
	"github.com/DjordjeVuckovic/ai-news-hunter/internal/storage"
	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/typedapi/types"
	"github.com/elastic/go-elasticsearch/v8/typedapi/types/enums/operator"
)

// SearchFields are the boosted fields queried by multi_match.
var SearchFields = []string{"title^3", "abstract^2", "summary", "content"}

var _ storage.Searcher = (*Searcher)(nil)

type Searcher struct {
	client    *elasticsearch.TypedClient
	indexName string
}

func NewSearcher(config ClientConfig) (*Searcher, error) {
	client, err := newClient(config)
	if err != nil {
		return nil, err
	}

	return &Searcher{
		client:    client,
		indexName: indexName(config),
	}, nil
}

func (r *Searcher) Search(ctx context.Context, query string, limit int) ([]domain.ArticleSearchHit, error) {
	slog.Debug("executing es search", "query", query, "limit", limit, "index", r.indexName)

	or := operator.Or
	res, err := r.client.Search().
		Index(r.indexName).
		Query(&types.Query{
			MultiMatch: &types.MultiMatchQuery{
				Query:    query,
				Fields:   SearchFields,
				Operator: &or,
			},
		}).
		Size(limit).
		Do(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to execute search: %w", err)
	}

	hits := make([]domain.ArticleSearchHit, 0, len(res.Hits.Hits))
	for _, h := range res.Hits.Hits {
		var doc ArticleDocument
		if err := json.Unmarshal(h.Source_, &doc); err != nil {
			return nil, fmt.Errorf("failed to unmarshal document: %w", err)
		}

		var score float64
		if h.Score_ != nil {
			score = float64(*h.Score_)
		}

		hit, err := doc.toHit(score)
		if err != nil {
			slog.Warn("skipping es hit with invalid id", "id", doc.ID, "error", err)
			continue
		}
		hits = append(hits, hit)
	}

	return hits, nil
}
