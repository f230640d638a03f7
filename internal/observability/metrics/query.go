package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// QueryMetrics counts handled queries by role and outcome and times
// them. It implements the chat use case's observer hook.
type QueryMetrics struct {
	registry *prometheus.Registry

	queriesTotal  *prometheus.CounterVec
	queryDuration *prometheus.HistogramVec
}

func NewQueryMetrics(service string) *QueryMetrics {
	registry := prometheus.NewRegistry()

	queriesTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "realty",
			Subsystem: "chat",
			Name:      "queries_total",
			Help:      "Handled queries by role and outcome.",
			ConstLabels: prometheus.Labels{
				"service": service,
			},
		},
		[]string{"role", "outcome"},
	)
	queryDuration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "realty",
			Subsystem: "chat",
			Name:      "query_duration_seconds",
			Help:      "Query handling duration in seconds by outcome.",
			Buckets:   prometheus.DefBuckets,
			ConstLabels: prometheus.Labels{
				"service": service,
			},
		},
		[]string{"outcome"},
	)

	registry.MustRegister(queriesTotal, queryDuration)

	return &QueryMetrics{
		registry:      registry,
		queriesTotal:  queriesTotal,
		queryDuration: queryDuration,
	}
}

func (m *QueryMetrics) ObserveQuery(role, outcome string, duration time.Duration) {
	m.queriesTotal.WithLabelValues(role, outcome).Inc()
	m.queryDuration.WithLabelValues(outcome).Observe(duration.Seconds())
}

func (m *QueryMetrics) Registry() *prometheus.Registry { return m.registry }

func (m *QueryMetrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
