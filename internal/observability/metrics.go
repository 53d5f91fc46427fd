package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus collectors for upstream calls and tool invocations.
type Metrics struct {
	UpstreamRequests *prometheus.CounterVec   // labels: provider={nws,nominatim}, endpoint, outcome={success,error}
	UpstreamDuration *prometheus.HistogramVec // labels: provider, endpoint
	ToolInvocations  *prometheus.CounterVec   // labels: tool, outcome
}

// NewMetrics creates and registers all metrics with the default Prometheus registry.
func NewMetrics() *Metrics {
	m := newMetrics()
	prometheus.MustRegister(
		m.UpstreamRequests,
		m.UpstreamDuration,
		m.ToolInvocations,
	)
	return m
}

// NewMetricsForTesting creates Metrics without registering them, so tests can
// build as many as they need.
func NewMetricsForTesting() *Metrics {
	return newMetrics()
}

func newMetrics() *Metrics {
	return &Metrics{
		UpstreamRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "nws_weather",
			Name:      "upstream_requests_total",
			Help:      "Upstream HTTP requests by provider, endpoint and outcome.",
		}, []string{"provider", "endpoint", "outcome"}),
		UpstreamDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "nws_weather",
			Name:      "upstream_request_duration_seconds",
			Help:      "Upstream HTTP request duration in seconds.",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		}, []string{"provider", "endpoint"}),
		ToolInvocations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "nws_weather",
			Name:      "tool_invocations_total",
			Help:      "Tool invocations by tool name and outcome.",
		}, []string{"tool", "outcome"}),
	}
}
