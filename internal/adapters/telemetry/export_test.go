package telemetry

import "go.opentelemetry.io/otel/trace"

// NewOTelTracerWithProvider creates a tracer bound to a specific provider.
func NewOTelTracerWithProvider(provider trace.TracerProvider) *OTelTracer {
	return &OTelTracer{name: InstrumentationName, provider: provider}
}
