package logging

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/andrescamacho/motif-planner/internal/infrastructure/config"
)

// Logger writes planner log entries through slog.
// It satisfies the application logging.Logger interface.
type Logger struct {
	slog   *slog.Logger
	closer io.Closer
}

// NewLogger builds a logger from the logging section of the configuration
func NewLogger(cfg config.LoggingConfig) (*Logger, error) {
	var (
		out    io.Writer
		closer io.Closer
	)

	switch cfg.Output {
	case "", "stderr":
		out = os.Stderr
	case "stdout":
		out = os.Stdout
	case "file":
		if cfg.FilePath == "" {
			return nil, fmt.Errorf("logging.file_path is required when output is file")
		}
		if err := os.MkdirAll(filepath.Dir(cfg.FilePath), 0755); err != nil {
			return nil, fmt.Errorf("failed to create log directory: %w", err)
		}
		f, err := os.OpenFile(cfg.FilePath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return nil, fmt.Errorf("failed to open log file: %w", err)
		}
		out, closer = f, f
	default:
		return nil, fmt.Errorf("unsupported log output: %s", cfg.Output)
	}

	return NewLoggerWithWriter(out, cfg, closer), nil
}

// NewLoggerWithWriter builds a logger writing to w. closer may be nil.
func NewLoggerWithWriter(w io.Writer, cfg config.LoggingConfig, closer io.Closer) *Logger {
	opts := &slog.HandlerOptions{
		Level:     ParseLevel(cfg.Level),
		AddSource: cfg.IncludeCaller,
	}

	var handler slog.Handler
	if cfg.Format == "json" {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}

	return &Logger{slog: slog.New(handler), closer: closer}
}

// ParseLevel maps a configured level name to a slog level. Unknown names map to info.
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Log writes one entry. Metadata keys are emitted in sorted order.
func (l *Logger) Log(level, message string, metadata map[string]interface{}) {
	keys := make([]string, 0, len(metadata))
	for k := range metadata {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	attrs := make([]any, 0, len(keys)*2)
	for _, k := range keys {
		attrs = append(attrs, k, metadata[k])
	}

	l.slog.Log(context.Background(), ParseLevel(level), message, attrs...)
}

// Close releases the log file, if any
func (l *Logger) Close() error {
	if l.closer != nil {
		return l.closer.Close()
	}
	return nil
}
