package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

const (
	// Namespace for all metrics
	namespace = "motif_planner"
	// Subsystem for planner metrics
	subsystem = "planner"
)

var (
	// Registry is the global Prometheus registry for all metrics
	Registry *prometheus.Registry

	// globalPlanningCollector is the singleton planning metrics collector
	// Set by SetGlobalPlanningCollector() when metrics are enabled
	globalPlanningCollector PlanningMetricsRecorder
)

// PlanningMetricsRecorder defines the interface for recording planning events
// This interface is used by application code to record metrics
type PlanningMetricsRecorder interface {
	RecordPlan(source string, nodes int, canvases int, duration float64)
	RecordPlanFailure(kind string)
	RecordCatalogSize(source string, entities int)
}

// InitRegistry initializes the Prometheus registry
// Should be called once at application startup if metrics are enabled
func InitRegistry() {
	Registry = prometheus.NewRegistry()
}

// GetRegistry returns the global Prometheus registry
// Returns nil if metrics are not initialized
func GetRegistry() *prometheus.Registry {
	return Registry
}

// IsEnabled returns true if metrics collection is enabled
func IsEnabled() bool {
	return Registry != nil
}

// SetGlobalPlanningCollector sets the global planning metrics collector
func SetGlobalPlanningCollector(collector PlanningMetricsRecorder) {
	globalPlanningCollector = collector
}

// RecordPlan records a successful plan globally
func RecordPlan(source string, nodes int, canvases int, duration float64) {
	if globalPlanningCollector != nil {
		globalPlanningCollector.RecordPlan(source, nodes, canvases, duration)
	}
}

// RecordPlanFailure records a failed plan globally
func RecordPlanFailure(kind string) {
	if globalPlanningCollector != nil {
		globalPlanningCollector.RecordPlanFailure(kind)
	}
}

// RecordCatalogSize records the number of loaded entities per source globally
func RecordCatalogSize(source string, entities int) {
	if globalPlanningCollector != nil {
		globalPlanningCollector.RecordCatalogSize(source, entities)
	}
}
