// Package telemetry wires up OpenTelemetry tracing, gated behind the
// OTEL_ENABLED environment variable, and a process-lifetime Monitor
// that replaces the original source's MiniMon.
package telemetry

import (
	"context"
	"os"

	"go.opentelemetry.io/otel"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/resource"
	semconv "go.opentelemetry.io/otel/semconv/v1.24.0"
)

// ShutdownFunc flushes and tears down whatever Init set up.
type ShutdownFunc func(context.Context) error

// Init configures the global TracerProvider. Unless OTEL_ENABLED=true
// is set, no collector is assumed reachable in this kernel's
// environment, so tracing stays a no-op: Init returns a ShutdownFunc
// that does nothing, and otel.Tracer calls throughout the repository
// are free to run unconditionally.
func Init(ctx context.Context) (ShutdownFunc, error) {
	if os.Getenv("OTEL_ENABLED") != "true" {
		return func(context.Context) error { return nil }, nil
	}

	res, err := resource.New(ctx, resource.WithAttributes(
		semconv.ServiceName("multigrid3d"),
	))
	if err != nil {
		return nil, err
	}

	exporter, err := newStdoutExporter()
	if err != nil {
		return nil, err
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
		sdktrace.WithSampler(sdktrace.AlwaysSample()),
	)
	otel.SetTracerProvider(tp)

	return tp.Shutdown, nil
}
