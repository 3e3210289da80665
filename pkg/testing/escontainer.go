package testing

import (
	"context"
	"testing"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/testcontainers/testcontainers-go"
	tces "github.com/testcontainers/testcontainers-go/modules/elasticsearch"
	"github.com/testcontainers/testcontainers-go/wait"
)

const esImage = "docker.elastic.co/elasticsearch/elasticsearch:8.12.0"

// ESContainer is a single-node Elasticsearch without security, plus a typed
// client for test assertions.
type ESContainer struct {
	Container *tces.ElasticsearchContainer
	Address   string
	Client    *elasticsearch.TypedClient
}

func NewESContainer(ctx context.Context, tb testing.TB) *ESContainer {
	tb.Helper()

	container, err := tces.Run(ctx, esImage,
		tces.WithPassword(""),
		testcontainers.WithWaitStrategy(
			wait.ForHTTP("/_cluster/health?wait_for_status=yellow").
				WithPort("9200").
				WithStartupTimeout(90*time.Second),
		),
	)
	if err != nil {
		tb.Fatalf("failed to start elasticsearch container: %v", err)
	}
	tb.Cleanup(func() {
		if err := testcontainers.TerminateContainer(container); err != nil {
			tb.Logf("failed to terminate elasticsearch container: %v", err)
		}
	})

	endpoint, err := container.PortEndpoint(ctx, "9200/tcp", "http")
	if err != nil {
		tb.Fatalf("failed to resolve elasticsearch endpoint: %v", err)
	}

	client, err := elasticsearch.NewTypedClient(elasticsearch.Config{Addresses: []string{endpoint}})
	if err != nil {
		tb.Fatalf("failed to create elasticsearch client: %v", err)
	}

	return &ESContainer{Container: container, Address: endpoint, Client: client}
}

// Refresh makes every document indexed so far visible to search.
func (c *ESContainer) Refresh(ctx context.Context, tb testing.TB, index string) {
	tb.Helper()
	if _, err := c.Client.Indices.Refresh().Index(index).Do(ctx); err != nil {
		tb.Fatalf("failed to refresh %s: %v", index, err)
	}
}

// Count returns the number of documents in index.
func (c *ESContainer) Count(ctx context.Context, tb testing.TB, index string) int64 {
	tb.Helper()
	res, err := c.Client.Count().Index(index).Do(ctx)
	if err != nil {
		tb.Fatalf("failed to count %s: %v", index, err)
	}
	return res.Count
}
