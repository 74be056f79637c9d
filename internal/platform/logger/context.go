package logger

import (
	"context"
	"log/slog"
)

// loggerCtxKey is the private context key for logger values.
type loggerCtxKey struct{}

// WithLogger returns a copy of ctx carrying the given logger. Handlers attach
// request-scoped loggers (e.g. with a trace ID) so downstream code logs with
// the same correlation fields.
func WithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, loggerCtxKey{}, logger)
}

// FromContext returns the logger carried by ctx, or slog.Default() when none
// was attached. The result is never nil.
func FromContext(ctx context.Context) *slog.Logger {
	if ctx != nil {
		if logger, ok := ctx.Value(loggerCtxKey{}).(*slog.Logger); ok && logger != nil {
			return logger
		}
	}
	return slog.Default()
}

// FromContextOrDefault returns the logger carried by ctx, falling back to the
// given logger (or slog.Default() when that is nil too).
func FromContextOrDefault(ctx context.Context, fallback *slog.Logger) *slog.Logger {
	if ctx != nil {
		if logger, ok := ctx.Value(loggerCtxKey{}).(*slog.Logger); ok && logger != nil {
			return logger
		}
	}
	if fallback != nil {
		return fallback
	}
	return slog.Default()
}
