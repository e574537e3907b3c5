// Package tracing provides OpenTelemetry tracing for the digest pipeline.
// A run opens a root span with one child span per section fetch.
package tracing

import (
	"context"

	"go.opentelemetry.io/otel"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
)

// tracer is the global tracer instance for the digest application.
var tracer = otel.Tracer("daily-news-digest")

// GetTracer returns the global tracer for creating spans.
//
// Example usage:
//
//	ctx, span := tracing.GetTracer().Start(ctx, "digest.build")
//	defer span.End()
func GetTracer() trace.Tracer {
	return tracer
}

// Setup installs an SDK tracer provider and returns a shutdown function to
// flush spans on exit. No exporter is configured by default; span data is
// available to any exporter wired by the operator.
func Setup(ctx context.Context) (func(context.Context) error, error) {
	tp := sdktrace.NewTracerProvider()
	otel.SetTracerProvider(tp)
	return tp.Shutdown, nil
}
