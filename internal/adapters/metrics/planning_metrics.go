package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// PlanningMetricsCollector handles requirement planning metrics
type PlanningMetricsCollector struct {
	plansTotal      *prometheus.CounterVec
	planFailures    *prometheus.CounterVec
	planNodes       *prometheus.HistogramVec
	planCanvases    *prometheus.HistogramVec
	planDuration    *prometheus.HistogramVec
	catalogEntities *prometheus.GaugeVec
}

// NewPlanningMetricsCollector creates a new planning metrics collector
func NewPlanningMetricsCollector() *PlanningMetricsCollector {
	return &PlanningMetricsCollector{
		plansTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "plans_total",
				Help:      "Total number of requirement trees built by root entity source",
			},
			[]string{"source"},
		),

		planFailures: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "plan_failures_total",
				Help:      "Total number of failed plans by error kind",
			},
			[]string{"kind"},
		),

		planNodes: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "plan_nodes",
				Help:      "Number of nodes per requirement tree",
				Buckets:   prometheus.ExponentialBuckets(1, 2, 10),
			},
			[]string{"source"},
		),

		planCanvases: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "plan_canvases",
				Help:      "Total producing machines per requirement tree",
				Buckets:   prometheus.ExponentialBuckets(1, 2, 12),
			},
			[]string{"source"},
		),

		planDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "plan_duration_seconds",
				Help:      "Requirement tree build duration distribution",
				Buckets:   []float64{0.00005, 0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05},
			},
			[]string{"source"},
		),

		catalogEntities: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "catalog_entities",
				Help:      "Number of catalog entities loaded by source",
			},
			[]string{"source"},
		),
	}
}

// Register registers all planning metrics with the Prometheus registry
func (c *PlanningMetricsCollector) Register() error {
	if Registry == nil {
		return nil // Metrics not enabled
	}

	metrics := []prometheus.Collector{
		c.plansTotal,
		c.planFailures,
		c.planNodes,
		c.planCanvases,
		c.planDuration,
		c.catalogEntities,
	}

	for _, metric := range metrics {
		if err := Registry.Register(metric); err != nil {
			return err
		}
	}

	return nil
}

// RecordPlan records one successful plan
func (c *PlanningMetricsCollector) RecordPlan(source string, nodes int, canvases int, duration float64) {
	c.plansTotal.WithLabelValues(source).Inc()
	c.planNodes.WithLabelValues(source).Observe(float64(nodes))
	c.planCanvases.WithLabelValues(source).Observe(float64(canvases))
	c.planDuration.WithLabelValues(source).Observe(duration)
}

// RecordPlanFailure records one failed plan
func (c *PlanningMetricsCollector) RecordPlanFailure(kind string) {
	c.planFailures.WithLabelValues(kind).Inc()
}

// RecordCatalogSize sets the entity gauge for a source
func (c *PlanningMetricsCollector) RecordCatalogSize(source string, entities int) {
	c.catalogEntities.WithLabelValues(source).Set(float64(entities))
}
