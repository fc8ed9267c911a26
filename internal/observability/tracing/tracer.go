package tracing

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const instrumentationName = "lingua-cms"

// GetTracer returns the tracer of the global provider.
//
//	ctx, span := tracing.GetTracer().Start(ctx, "operation-name")
//	defer span.End()
func GetTracer() trace.Tracer {
	return otel.Tracer(instrumentationName)
}

// Start opens a span named name as a child of the span in ctx.
func Start(ctx context.Context, name string, opts ...trace.SpanStartOption) (context.Context, trace.Span) {
	return GetTracer().Start(ctx, name, opts...)
}

// End records err on span (when non-nil and not expected by the caller) and ends it.
// Client errors such as NotFound are passed with expected=true so they do not mark the span failed.
func End(span trace.Span, err error, expected bool) {
	if err != nil {
		span.RecordError(err)
		if !expected {
			span.SetStatus(codes.Error, err.Error())
		}
	}
	span.End()
}

// TraceID returns the trace id of the span in ctx, or "" when ctx carries none.
func TraceID(ctx context.Context) string {
	sc := trace.SpanContextFromContext(ctx)
	if !sc.HasTraceID() {
		return ""
	}
	return sc.TraceID().String()
}
