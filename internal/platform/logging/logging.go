// Package logging builds the service's slog logger and carries the
// request-scoped logger through context.
//
// Handlers and store adapters log failures with the request logger so every
// entry shares the request and correlation IDs of the access log line:
//
//	logging.FromContext(ctx).ErrorContext(ctx, "insert failed",
//	    slog.String("op", "create"),
//	    slog.Any("error", err),
//	)
package logging

import (
	"context"
	"io"
	"log/slog"
	"strings"
)

type ctxKey struct{}

// New returns a logger writing to w. format "text" selects logfmt output,
// anything else JSON. level accepts debug, info, warn or error in any case
// and falls back to info. Debug loggers also report the source line.
// Every attribute passes through the credential redactor.
func New(level, format string, w io.Writer) *slog.Logger {
	lvl := ParseLevel(level)
	opts := &slog.HandlerOptions{
		Level:       lvl,
		AddSource:   lvl <= slog.LevelDebug,
		ReplaceAttr: redactor(),
	}

	if strings.EqualFold(format, "text") {
		return slog.New(slog.NewTextHandler(w, opts))
	}
	return slog.New(slog.NewJSONHandler(w, opts))
}

// ParseLevel maps a configured level name to a slog.Level.
func ParseLevel(name string) slog.Level {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(name)); err != nil {
		return slog.LevelInfo
	}
	return lvl
}

func WithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, ctxKey{}, logger)
}

// FromContext returns the request logger, or slog.Default outside a request.
func FromContext(ctx context.Context) *slog.Logger {
	if logger, ok := ctx.Value(ctxKey{}).(*slog.Logger); ok && logger != nil {
		return logger
	}
	return slog.Default()
}
