package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

const statusSuccess = "success"

// QueryMetricsCollector records mediator query executions
type QueryMetricsCollector struct {
	queryDuration *prometheus.HistogramVec
	queriesTotal  *prometheus.CounterVec
}

// NewQueryMetricsCollector creates a new query metrics collector
func NewQueryMetricsCollector() *QueryMetricsCollector {
	return &QueryMetricsCollector{
		queryDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "query_duration_seconds",
				Help:      "Query execution duration distribution",
				Buckets:   []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1.0},
			},
			[]string{"query", "status"},
		),

		// status is "success" or the planning error kind
		queriesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "queries_total",
				Help:      "Total number of queries executed by type and outcome",
			},
			[]string{"query", "status"},
		),
	}
}

// Register registers all query metrics with the Prometheus registry
func (c *QueryMetricsCollector) Register() error {
	if Registry == nil {
		return nil // Metrics not enabled
	}

	for _, metric := range []prometheus.Collector{c.queryDuration, c.queriesTotal} {
		if err := Registry.Register(metric); err != nil {
			return err
		}
	}
	return nil
}

// RecordQuery records one query execution. An empty errorKind means success.
func (c *QueryMetricsCollector) RecordQuery(queryName string, duration float64, errorKind string) {
	status := errorKind
	if status == "" {
		status = statusSuccess
	}

	c.queryDuration.WithLabelValues(queryName, status).Observe(duration)
	c.queriesTotal.WithLabelValues(queryName, status).Inc()
}
