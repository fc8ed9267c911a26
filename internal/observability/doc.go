// Package observability groups the logging, metrics and tracing packages.
//
// Subpackages:
//
//   - logging: slog construction and request-scoped loggers
//   - metrics: Prometheus collectors for HTTP traffic, operations and the connection pool
//   - tracing: OpenTelemetry provider setup, HTTP middleware and span helpers
//
// Typical wiring:
//
//	logger := logging.New(logging.LoadConfig())
//	shutdown, err := tracing.Init(ctx, tracing.LoadConfig("lingua-cms", version), logger)
//	metrics.RecordOperation("post", "create", err, time.Since(start))
package observability
