package ndgo

import (
	"context"
	"log/slog"
	"os"
)

// Logger wraps slog.Logger with ndgo-specific context.
// This provides structured logging with consistent field names.
type Logger struct {
	*slog.Logger
}

// NewLogger creates a new Logger with the given handler.
// If handler is nil, uses default text handler to stderr.
func NewLogger(handler slog.Handler) *Logger {
	if handler == nil {
		handler = slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		})
	}
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NewJSONLogger creates a Logger that outputs JSON-formatted logs.
// level sets the minimum log level (e.g., slog.LevelDebug, slog.LevelInfo).
func NewJSONLogger(level slog.Level) *Logger {
	handler := slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NewTextLogger creates a Logger that outputs human-readable text logs.
func NewTextLogger(level slog.Level) *Logger {
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NoopLogger creates a Logger that discards all log output.
// Use this to disable logging entirely.
func NoopLogger() *Logger {
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.Level(1000), // Unreachable level
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// WithName adds an array/dataset name field to the logger.
func (l *Logger) WithName(name string) *Logger {
	return &Logger{
		Logger: l.Logger.With("name", name),
	}
}

// WithShape adds a shape field to the logger.
func (l *Logger) WithShape(shape Shape) *Logger {
	return &Logger{
		Logger: l.Logger.With("shape", []int(shape)),
	}
}

// WithDType adds a dtype field to the logger.
func (l *Logger) WithDType(dtype DType) *Logger {
	return &Logger{
		Logger: l.Logger.With("dtype", dtype.String()),
	}
}

// LogSave logs an array save operation.
func (l *Logger) LogSave(ctx context.Context, path string, bytes int, err error) {
	if err != nil {
		l.ErrorContext(ctx, "save failed",
			"path", path,
			"error", err,
		)
	} else {
		l.DebugContext(ctx, "save completed",
			"path", path,
			"bytes", bytes,
		)
	}
}

// LogLoad logs an array load operation.
func (l *Logger) LogLoad(ctx context.Context, path string, bytes int, err error) {
	if err != nil {
		l.ErrorContext(ctx, "load failed",
			"path", path,
			"error", err,
		)
	} else {
		l.DebugContext(ctx, "load completed",
			"path", path,
			"bytes", bytes,
		)
	}
}

// LogChunkWrite logs a single chunk upload.
func (l *Logger) LogChunkWrite(ctx context.Context, key string, raw, stored int, err error) {
	if err != nil {
		l.ErrorContext(ctx, "chunk write failed",
			"key", key,
			"error", err,
		)
	} else {
		l.DebugContext(ctx, "chunk write completed",
			"key", key,
			"raw_bytes", raw,
			"stored_bytes", stored,
		)
	}
}

// LogChunkRead logs a single chunk download.
func (l *Logger) LogChunkRead(ctx context.Context, key string, stored int, err error) {
	if err != nil {
		l.ErrorContext(ctx, "chunk read failed",
			"key", key,
			"error", err,
		)
	} else {
		l.DebugContext(ctx, "chunk read completed",
			"key", key,
			"stored_bytes", stored,
		)
	}
}

// LogCommit logs a manifest publish.
func (l *Logger) LogCommit(ctx context.Context, name string, version uint64, err error) {
	if err != nil {
		l.ErrorContext(ctx, "manifest commit failed",
			"name", name,
			"version", version,
			"error", err,
		)
	} else {
		l.InfoContext(ctx, "manifest committed",
			"name", name,
			"version", version,
		)
	}
}
