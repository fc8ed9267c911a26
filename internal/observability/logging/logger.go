package logging

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"

	"go.opentelemetry.io/otel/trace"

	"lingua-cms/internal/handler/http/requestid"
	"lingua-cms/pkg/config"
)

// Config selects the level and encoding of the process logger.
type Config struct {
	Level  slog.Level
	Format string // "json" or "text"
	Output io.Writer
}

// LoadConfig reads LOG_LEVEL (debug|info|warn|error) and LOG_FORMAT (json|text).
// Unknown values fall back to info and json.
func LoadConfig() Config {
	return Config{
		Level:  ParseLevel(config.GetEnvString("LOG_LEVEL", "info")),
		Format: strings.ToLower(config.GetEnvString("LOG_FORMAT", "json")),
		Output: os.Stdout,
	}
}

// ParseLevel maps a level name to a slog.Level.
func ParseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
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

// New creates the process logger. Source locations are added at debug level.
func New(cfg Config) *slog.Logger {
	out := cfg.Output
	if out == nil {
		out = os.Stdout
	}
	opts := &slog.HandlerOptions{
		Level:     cfg.Level,
		AddSource: cfg.Level <= slog.LevelDebug,
	}
	if cfg.Format == "text" {
		return slog.New(slog.NewTextHandler(out, opts))
	}
	return slog.New(slog.NewJSONHandler(out, opts))
}

// Request returns logger annotated with the request id and trace id found in ctx.
func Request(ctx context.Context, logger *slog.Logger) *slog.Logger {
	if logger == nil {
		logger = FromContext(ctx)
	}
	if id := requestid.FromContext(ctx); id != "" {
		logger = logger.With(slog.String("request_id", id))
	}
	if sc := trace.SpanContextFromContext(ctx); sc.HasTraceID() {
		logger = logger.With(slog.String("trace_id", sc.TraceID().String()))
	}
	return logger
}

type ctxKey struct{}

// FromContext returns the logger stored by WithLogger, or slog.Default().
func FromContext(ctx context.Context) *slog.Logger {
	if l, ok := ctx.Value(ctxKey{}).(*slog.Logger); ok {
		return l
	}
	return slog.Default()
}

func WithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, ctxKey{}, logger)
}
