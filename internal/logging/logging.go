package logging

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
)

type loggerContextKey struct{}

// New builds the process logger. format is "text" or "json".
func New(w io.Writer, format, level string) (*slog.Logger, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return nil, fmt.Errorf("invalid log level %q", level)
	}
	opts := &slog.HandlerOptions{Level: lvl}

	switch strings.ToLower(format) {
	case "text", "":
		return slog.New(slog.NewTextHandler(w, opts)), nil
	case "json":
		return slog.New(slog.NewJSONHandler(w, opts)), nil
	default:
		return nil, fmt.Errorf("invalid log format %q", format)
	}
}

// FromContext returns the logger carried by ctx. Without one it falls back to
// slog.Default, which the CLI points at its configured handler.
func FromContext(ctx context.Context) *slog.Logger {
	if logger, ok := ctx.Value(loggerContextKey{}).(*slog.Logger); ok && logger != nil {
		return logger
	}
	return slog.Default().With(slog.String("logger", "fallback"))
}

// AddToContext returns a copy of ctx carrying logger.
func AddToContext(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, loggerContextKey{}, logger)
}

// AddMetaToContext attaches attrs to every later log line from ctx.
func AddMetaToContext(ctx context.Context, attrs ...slog.Attr) context.Context {
	args := make([]any, 0, len(attrs))
	for _, a := range attrs {
		args = append(args, a)
	}
	return AddToContext(ctx, FromContext(ctx).With(args...))
}
