package hnsw

import (
	"context"
	"log/slog"
	"os"
)

// Logger wraps slog.Logger with index-specific context, giving structured
// logging with consistent field names across insert and search.
type Logger struct {
	*slog.Logger
}

// NewLogger creates a new Logger with the given handler. If handler is
// nil, uses the default text handler to stderr.
func NewLogger(handler slog.Handler) *Logger {
	if handler == nil {
		handler = slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		})
	}
	return &Logger{Logger: slog.New(handler)}
}

// NewJSONLogger creates a Logger that outputs JSON-formatted logs at the
// given minimum level.
func NewJSONLogger(level slog.Level) *Logger {
	handler := slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	return &Logger{Logger: slog.New(handler)}
}

// NewTextLogger creates a Logger that outputs human-readable text logs at
// the given minimum level.
func NewTextLogger(level slog.Level) *Logger {
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	return &Logger{Logger: slog.New(handler)}
}

// NoopLogger creates a Logger that discards all log output.
func NoopLogger() *Logger {
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.Level(1000), // unreachable
	})
	return &Logger{Logger: slog.New(handler)}
}

// WithID adds an id field to the logger.
func (l *Logger) WithID(id uint32) *Logger {
	return &Logger{Logger: l.Logger.With("id", id)}
}

// WithK adds a k (neighbor count) field to the logger.
func (l *Logger) WithK(k int) *Logger {
	return &Logger{Logger: l.Logger.With("k", k)}
}

// WithDimension adds a dimension field to the logger.
func (l *Logger) WithDimension(dim int) *Logger {
	return &Logger{Logger: l.Logger.With("dimension", dim)}
}

// WithCount adds a count field to the logger.
func (l *Logger) WithCount(count int) *Logger {
	return &Logger{Logger: l.Logger.With("count", count)}
}

// LogInsert logs a single insert.
func (l *Logger) LogInsert(ctx context.Context, id uint32, level int) {
	l.DebugContext(ctx, "insert completed", "id", id, "level", level)
}

// LogBatchInsert logs a batched parallel insert.
func (l *Logger) LogBatchInsert(ctx context.Context, count, threads int) {
	l.InfoContext(ctx, "batch insert completed", "count", count, "threads", threads)
}

// LogSearch logs a search call.
func (l *Logger) LogSearch(ctx context.Context, k, efSearch, resultsFound int) {
	l.DebugContext(ctx, "search completed", "k", k, "ef_search", efSearch, "results", resultsFound)
}
