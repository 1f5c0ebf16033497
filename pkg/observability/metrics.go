// Package observability wires Prometheus metrics for the API.
package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the service's Prometheus collectors.
type Metrics struct {
	AIRequests        *prometheus.CounterVec
	AIRequestDuration *prometheus.HistogramVec
	TreeMutations     *prometheus.CounterVec
	Registry          *prometheus.Registry
}

// NewMetrics creates and registers the collectors on a fresh registry.
func NewMetrics() *Metrics {
	registry := prometheus.NewRegistry()
	factory := promauto.With(registry)

	return &Metrics{
		Registry: registry,
		AIRequests: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "mindmap_ai_requests_total",
			Help: "AI provider round trips by provider, response type and outcome.",
		}, []string{"provider", "response_type", "status"}),
		AIRequestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "mindmap_ai_request_duration_seconds",
			Help:    "Latency of AI provider round trips.",
			Buckets: prometheus.DefBuckets,
		}, []string{"provider"}),
		TreeMutations: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "mindmap_tree_mutations_total",
			Help: "Tree mutations by operation.",
		}, []string{"operation"}),
	}
}

// ObserveAIRequest records one provider round trip.
func (m *Metrics) ObserveAIRequest(provider, responseType, status string, seconds float64) {
	if m == nil {
		return
	}
	m.AIRequests.WithLabelValues(provider, responseType, status).Inc()
	m.AIRequestDuration.WithLabelValues(provider).Observe(seconds)
}

// ObserveTreeMutation records one tree mutation.
func (m *Metrics) ObserveTreeMutation(operation string) {
	if m == nil {
		return
	}
	m.TreeMutations.WithLabelValues(operation).Inc()
}
