// Package metrics provides Prometheus metrics for the news hunter.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "newshunter"

var (
	// FetchTotal counts source fetches by outcome status.
	FetchTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "fetch_total",
			Help:      "Total number of source fetches",
		},
		[]string{"source", "status"},
	)

	FetchedArticles = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "fetched_articles_total",
			Help:      "Articles returned by source fetchers",
		},
		[]string{"source"},
	)

	// StoredArticles counts articles written by refreshes, split into inserts and updates.
	StoredArticles = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "stored_articles_total",
			Help:      "Articles stored by refreshes",
		},
		[]string{"result"},
	)

	ToolCallsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "research_tool_calls_total",
			Help:      "Total number of research tool invocations",
		},
		[]string{"tool", "status"},
	)

	// ToolDuration measures research tool latency.
	ToolDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "research_tool_duration_seconds",
			Help:      "Duration of research tool invocations in seconds",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"tool"},
	)

	LLMCallsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "llm_calls_total",
			Help:      "Total number of language model calls",
		},
		[]string{"operation", "status"},
	)
)

func RecordFetch(source, status string, fetched int) {
	FetchTotal.WithLabelValues(source, status).Inc()
	FetchedArticles.WithLabelValues(source).Add(float64(fetched))
}

func RecordStored(inserted, updated int) {
	StoredArticles.WithLabelValues("inserted").Add(float64(inserted))
	StoredArticles.WithLabelValues("updated").Add(float64(updated))
}

func RecordToolCall(tool, status string, seconds float64) {
	ToolCallsTotal.WithLabelValues(tool, status).Inc()
	ToolDuration.WithLabelValues(tool).Observe(seconds)
}

// RecordLLMCall records a model call; err decides the status label.
func RecordLLMCall(operation string, err error) {
	status := "success"
	if err != nil {
		status = "error"
	}
	LLMCallsTotal.WithLabelValues(operation, status).Inc()
}
