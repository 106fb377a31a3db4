package telemetry_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.trai.ch/mvninspect/internal/adapters/telemetry"
)

func TestOTelTracer_SpanAttributes(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	tracer := telemetry.NewOTelTracerWithProvider(tp)

	ctx, span := tracer.Start(context.Background(), "inspect")
	require.NotNil(t, ctx)
	span.SetAttribute("str", "v")
	span.SetAttribute("int", 3)
	span.SetAttribute("int64", int64(4))
	span.SetAttribute("bool", true)
	span.SetAttribute("list", []string{"a", "b"})
	span.SetAttribute("other", 1.5)
	span.RecordError(nil)
	span.End()

	ended := recorder.Ended()
	require.Len(t, ended, 1)
	got := map[string]string{}
	for _, kv := range ended[0].Attributes() {
		got[string(kv.Key)] = kv.Value.Emit()
	}
	assert.Equal(t, map[string]string{
		"str":   "v",
		"int":   "3",
		"int64": "4",
		"bool":  "true",
		"list":  `["a","b"]`,
		"other": "1.5",
	}, got)
	assert.Equal(t, codes.Unset, ended[0].Status().Code)
}

func TestOTelTracer_RecordError(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	tracer := telemetry.NewOTelTracerWithProvider(tp)

	_, span := tracer.Start(context.Background(), "resolve")
	span.RecordError(errors.New("not found"))
	span.End()

	ended := recorder.Ended()
	require.Len(t, ended, 1)
	assert.Equal(t, codes.Error, ended[0].Status().Code)
	assert.Equal(t, "not found", ended[0].Status().Description)
}

func TestOTelTracer_GlobalProviderIsNoopByDefault(t *testing.T) {
	tracer := telemetry.NewOTelTracer(telemetry.InstrumentationName)
	_, span := tracer.Start(context.Background(), "noop")
	span.SetAttribute("k", "v")
	span.End()
}
