// Package metrics provides Prometheus metrics instrumentation.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RequestDuration tracks HTTP request duration.
	RequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "api_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
		},
		[]string{"method", "path", "status"},
	)

	// RequestsTotal tracks total HTTP requests.
	RequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_requests_total",
			Help: "Total HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	// LLMCallDuration tracks completion call duration.
	LLMCallDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "llm_call_duration_seconds",
			Help:    "LLM completion call duration",
			Buckets: []float64{.5, 1, 2, 5, 10, 20, 30, 45, 60},
		},
		[]string{"provider", "model"},
	)

	// LLMTokensTotal tracks total LLM tokens processed.
	LLMTokensTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "llm_tokens_total",
			Help: "Total LLM tokens processed",
		},
		[]string{"model", "direction"},
	)

	// ListsGeneratedTotal tracks generation pipeline outcomes.
	ListsGeneratedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "shopping_lists_generated_total",
			Help: "Total shopping list generation attempts",
		},
		[]string{"status"},
	)

	// ItemsPerList tracks how many items generated lists contain.
	ItemsPerList = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "shopping_list_items",
			Help:    "Items per generated shopping list",
			Buckets: []float64{5, 10, 15, 20, 25, 30, 40, 50},
		},
	)

	// EmbeddingUpserts tracks per-item vector indexing outcomes.
	EmbeddingUpserts = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "embedding_upserts_total",
			Help: "Item embedding upserts to the vector index",
		},
		[]string{"status"},
	)

	// DocumentStoreFallbacks counts list writes that degraded to a
	// placeholder identity.
	DocumentStoreFallbacks = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "document_store_fallbacks_total",
			Help: "List writes that fell back to a placeholder id",
		},
	)

	// ChatTurnsTotal tracks reconciliation turns by classified intent.
	ChatTurnsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "chat_turns_total",
			Help: "Conversational turns by classified intent",
		},
		[]string{"intent"},
	)
)

// RecordRequest records metrics for an HTTP request.
func RecordRequest(method, path, status string, duration float64) {
	RequestDuration.WithLabelValues(method, path, status).Observe(duration)
	RequestsTotal.WithLabelValues(method, path, status).Inc()
}

// RecordLLMCall records metrics for a completion call.
func RecordLLMCall(provider, model string, duration float64, tokensIn, tokensOut int) {
	LLMCallDuration.WithLabelValues(provider, model).Observe(duration)
	LLMTokensTotal.WithLabelValues(model, "in").Add(float64(tokensIn))
	LLMTokensTotal.WithLabelValues(model, "out").Add(float64(tokensOut))
}

// RecordGeneration records the outcome of one generation pipeline run.
func RecordGeneration(status string, items int) {
	ListsGeneratedTotal.WithLabelValues(status).Inc()
	if status == "success" {
		ItemsPerList.Observe(float64(items))
	}
}
