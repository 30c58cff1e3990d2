package metrics

import "github.com/prometheus/client_golang/prometheus"

// Federated search Prometheus metrics.
var (
	SearchRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "fedsearch",
			Name:      "search_requests_total",
			Help:      "Total number of federated searches by outcome",
		},
		[]string{"outcome"}, // "ok" / "partial" / "unavailable" / "empty_term"
	)

	SearchResults = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "fedsearch",
			Name:      "search_results",
			Help:      "Number of merged results returned per search",
			Buckets:   []float64{0, 1, 2, 5, 10, 20, 40},
		},
	)

	AdapterRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "fedsearch",
			Name:      "adapter_requests_total",
			Help:      "Total number of collection adapter calls",
		},
		[]string{"kind", "status"}, // status: "ok" / "error" / "timeout"
	)

	AdapterRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "fedsearch",
			Name:      "adapter_request_duration_seconds",
			Help:      "Collection adapter call duration in seconds",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		},
		[]string{"kind"},
	)
)

var searchMetricsRegistered bool

// RegisterSearchMetrics registers the federated search metrics. Must be called once from main.
func RegisterSearchMetrics() {
	if searchMetricsRegistered {
		return
	}
	prometheus.MustRegister(SearchRequestsTotal)
	prometheus.MustRegister(SearchResults)
	prometheus.MustRegister(AdapterRequestsTotal)
	prometheus.MustRegister(AdapterRequestDuration)
	searchMetricsRegistered = true
}
