// Package tracing wires OpenTelemetry tracing.
//
// Init installs the global tracer provider (OTLP over HTTP when an endpoint is configured,
// stdout otherwise). Middleware opens one server span per request and the usecase layer
// opens a child span per service operation through Start.
package tracing
