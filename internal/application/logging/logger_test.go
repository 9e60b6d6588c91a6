package logging_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/motif-planner/internal/application/logging"
	"github.com/andrescamacho/motif-planner/internal/application/mediator"
)

type recordedEntry struct {
	level    string
	message  string
	metadata map[string]interface{}
}

type recordingLogger struct {
	entries []recordedEntry
}

func (l *recordingLogger) Log(level, message string, metadata map[string]interface{}) {
	l.entries = append(l.entries, recordedEntry{level: level, message: message, metadata: metadata})
}

type sampleQuery struct{}

func TestLoggerFromContext_FallsBackToNoOp(t *testing.T) {
	logger := logging.LoggerFromContext(context.Background())

	require.NotNil(t, logger)
	assert.NotPanics(t, func() { logger.Log("INFO", "ignored", nil) })
}

func TestLoggerFromContext_ReturnsInjectedLogger(t *testing.T) {
	recorder := &recordingLogger{}
	ctx := logging.WithLogger(context.Background(), recorder)

	logging.LoggerFromContext(ctx).Log("INFO", "hello", map[string]interface{}{"k": 1})

	require.Len(t, recorder.entries, 1)
	assert.Equal(t, "hello", recorder.entries[0].message)
}

func TestMiddleware_InjectsLoggerAndRecordsOutcome(t *testing.T) {
	// Arrange
	recorder := &recordingLogger{}
	mw := logging.Middleware(recorder)
	var seen logging.Logger
	next := func(ctx context.Context, request mediator.Request) (mediator.Response, error) {
		seen = logging.LoggerFromContext(ctx)
		return nil, errors.New("boom")
	}

	// Act
	_, err := mw(context.Background(), &sampleQuery{}, next)

	// Assert
	assert.EqualError(t, err, "boom")
	assert.Same(t, recorder, seen)
	require.Len(t, recorder.entries, 1)
	assert.Equal(t, "ERROR", recorder.entries[0].level)
	assert.Equal(t, "sampleQuery", recorder.entries[0].metadata["request"])
	assert.Equal(t, "boom", recorder.entries[0].metadata["error"])
}

func TestRequestName(t *testing.T) {
	assert.Equal(t, "sampleQuery", logging.RequestName(&sampleQuery{}))
	assert.Equal(t, "sampleQuery", logging.RequestName(sampleQuery{}))
	assert.Equal(t, "UnknownRequest", logging.RequestName(nil))
}
