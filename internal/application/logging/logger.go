package logging

import (
	"context"
	"reflect"
	"strings"
	"time"

	"github.com/andrescamacho/motif-planner/internal/application/mediator"
)

// Logger provides structured logging for planner operations
type Logger interface {
	Log(level, message string, metadata map[string]interface{})
}

// Context keys for passing logger through context
type contextKey int

const (
	loggerKey contextKey = iota
)

// WithLogger adds a logger to the context
func WithLogger(ctx context.Context, logger Logger) context.Context {
	return context.WithValue(ctx, loggerKey, logger)
}

// LoggerFromContext extracts the logger from context, or returns a no-op logger if not found
func LoggerFromContext(ctx context.Context) Logger {
	if logger, ok := ctx.Value(loggerKey).(Logger); ok {
		return logger
	}
	return &noOpLogger{}
}

// noOpLogger is a logger that does nothing (fallback when no logger in context)
type noOpLogger struct{}

func (l *noOpLogger) Log(level, message string, metadata map[string]interface{}) {}

// Middleware injects logger into the request context and logs every dispatched
// request with its duration
func Middleware(logger Logger) mediator.Middleware {
	return func(ctx context.Context, request mediator.Request, next mediator.HandlerFunc) (mediator.Response, error) {
		ctx = WithLogger(ctx, logger)

		name := RequestName(request)
		start := time.Now()
		response, err := next(ctx, request)

		metadata := map[string]interface{}{
			"request":     name,
			"duration_ms": time.Since(start).Milliseconds(),
		}
		if err != nil {
			metadata["error"] = err.Error()
			logger.Log("ERROR", "request failed", metadata)
		} else {
			logger.Log("DEBUG", "request handled", metadata)
		}

		return response, err
	}
}

// RequestName returns the bare type name of a request.
// Example: "*queries.PlanRequirementsQuery" becomes "PlanRequirementsQuery"
func RequestName(request mediator.Request) string {
	if request == nil {
		return "UnknownRequest"
	}

	fullName := strings.TrimPrefix(reflect.TypeOf(request).String(), "*")
	if idx := strings.LastIndex(fullName, "."); idx >= 0 {
		return fullName[idx+1:]
	}
	return fullName
}
