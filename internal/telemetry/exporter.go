package telemetry

import (
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

// newStdoutExporter builds the span exporter Init uses when tracing is
// enabled. The stdout exporter, not an OTLP/gRPC one, is the default
// here deliberately: this kernel runs standalone, with no collector
// assumed reachable, matching SPEC_FULL.md's telemetry section.
func newStdoutExporter() (sdktrace.SpanExporter, error) {
	return stdouttrace.New(stdouttrace.WithPrettyPrint())
}
