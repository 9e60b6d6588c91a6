package metrics

import (
	"context"
	"time"

	"github.com/andrescamacho/motif-planner/internal/application/logging"
	"github.com/andrescamacho/motif-planner/internal/application/mediator"
	"github.com/andrescamacho/motif-planner/internal/domain/production"
)

// PrometheusMiddleware creates a middleware that records the duration and outcome of
// every query. Failures are labelled with their planning error kind.
//
// Query names are the bare type name, e.g. "*queries.PlanRequirementsQuery"
// becomes "PlanRequirementsQuery".
func PrometheusMiddleware(collector *QueryMetricsCollector) mediator.Middleware {
	return func(ctx context.Context, request mediator.Request, next mediator.HandlerFunc) (mediator.Response, error) {
		// Skip metrics if collector is nil (metrics disabled)
		if collector == nil {
			return next(ctx, request)
		}

		start := time.Now()
		response, err := next(ctx, request)
		collector.RecordQuery(logging.RequestName(request), time.Since(start).Seconds(), production.ErrorKind(err))

		return response, err
	}
}
