package telemetry_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.trai.ch/conduit/internal/adapters/telemetry"
)

func attrs(kvs []attribute.KeyValue) map[attribute.Key]attribute.Value {
	m := make(map[attribute.Key]attribute.Value, len(kvs))
	for _, kv := range kvs {
		m[kv.Key] = kv.Value
	}
	return m
}

func TestOTelTracer_StartRecordsSpan(t *testing.T) {
	sr := tracetest.NewSpanRecorder()
	tracer := telemetry.NewOTelTracer(sr)
	defer func() { _ = tracer.Shutdown(context.Background()) }()

	ctx, parent := tracer.Start(context.Background(), "run")
	_, span := tracer.Start(ctx, "task ingest")
	span.SetAttribute("task.id", "ingest")
	span.SetAttribute("attempt", 1)
	span.SetAttribute("ratio", 0.5)
	span.SetAttribute("dry_run", true)
	span.SetAttribute("flags", []string{"a", "b"})
	span.SetAttribute("elapsed", struct{ N int }{N: 3})
	span.End()
	parent.End()

	spans := sr.Ended()
	require.Len(t, spans, 2)
	task := spans[0]
	assert.Equal(t, "task ingest", task.Name())
	assert.Equal(t, spans[1].SpanContext().SpanID(), task.Parent().SpanID())

	got := attrs(task.Attributes())
	assert.Equal(t, "ingest", got["task.id"].AsString())
	assert.Equal(t, int64(1), got["attempt"].AsInt64())
	assert.InDelta(t, 0.5, got["ratio"].AsFloat64(), 0)
	assert.True(t, got["dry_run"].AsBool())
	assert.Equal(t, []string{"a", "b"}, got["flags"].AsStringSlice())
	assert.Equal(t, "{3}", got["elapsed"].AsString())
}

func TestOTelSpan_RecordError(t *testing.T) {
	sr := tracetest.NewSpanRecorder()
	tracer := telemetry.NewOTelTracer(sr)

	_, span := tracer.Start(context.Background(), "task broken")
	span.RecordError(nil)
	span.RecordError(errors.New("task reported failure"))
	span.End()

	spans := sr.Ended()
	require.Len(t, spans, 1)
	assert.Equal(t, codes.Error, spans[0].Status().Code)
	assert.Equal(t, "task reported failure", spans[0].Status().Description)
	require.Len(t, spans[0].Events(), 1)
	assert.Equal(t, "exception", spans[0].Events()[0].Name)
}

func TestNoOpTracer(t *testing.T) {
	ctx := context.Background()
	got, span := telemetry.NewNoOpTracer().Start(ctx, "run")
	assert.Equal(t, ctx, got)

	span.SetAttribute("run.id", "r1")
	span.RecordError(errors.New("ignored"))
	span.End()
}
