package emit

import (
	"context"
	"testing"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func newRecordingEmitter(t *testing.T) (*OTelEmitter, *tracetest.InMemoryExporter) {
	t.Helper()
	exporter := tracetest.NewInMemoryExporter()
	provider := sdktrace.NewTracerProvider(sdktrace.WithSyncer(exporter))
	t.Cleanup(func() { _ = provider.Shutdown(context.Background()) })
	return NewOTelEmitter(provider.Tracer("test")), exporter
}

func attrValue(attrs []attribute.KeyValue, key string) (attribute.Value, bool) {
	for _, kv := range attrs {
		if string(kv.Key) == key {
			return kv.Value, true
		}
	}
	return attribute.Value{}, false
}

func TestOTelEmitter(t *testing.T) {
	emitter, exporter := newRecordingEmitter(t)

	emitter.Emit(Event{Seed: 42, Step: 2, NodeID: "router-1", Msg: MsgRouteSelected,
		Meta: map[string]any{"route": "path a", "members": 2}})

	spans := exporter.GetSpans()
	if len(spans) != 1 {
		t.Fatalf("got %d spans, want 1", len(spans))
	}
	span := spans[0]
	if span.Name != MsgRouteSelected {
		t.Errorf("span name = %q, want %q", span.Name, MsgRouteSelected)
	}
	if v, ok := attrValue(span.Attributes, "quizgraph.seed"); !ok || v.AsInt64() != 42 {
		t.Errorf("missing or wrong seed attribute: %v", v.Emit())
	}
	if v, ok := attrValue(span.Attributes, "quizgraph.step"); !ok || v.AsInt64() != 2 {
		t.Errorf("missing or wrong step attribute: %v", v.Emit())
	}
	if v, ok := attrValue(span.Attributes, "quizgraph.node_id"); !ok || v.AsString() != "router-1" {
		t.Errorf("missing or wrong node attribute: %v", v.Emit())
	}
	if v, ok := attrValue(span.Attributes, "quizgraph.meta.route"); !ok || v.AsString() != "path a" {
		t.Errorf("missing or wrong meta attribute: %v", v.Emit())
	}
}

func TestOTelEmitter_ErrorStatus(t *testing.T) {
	emitter, exporter := newRecordingEmitter(t)

	emitter.Emit(Event{Seed: 1, Msg: MsgPassError, Meta: map[string]any{"error": "boom"}})

	spans := exporter.GetSpans()
	if len(spans) != 1 {
		t.Fatalf("got %d spans, want 1", len(spans))
	}
	if spans[0].Status.Code != codes.Error || spans[0].Status.Description != "boom" {
		t.Fatalf("status = %+v, want error %q", spans[0].Status, "boom")
	}
	if len(spans[0].Events) == 0 {
		t.Fatal("expected a recorded error event on the span")
	}
}

func TestOTelEmitter_NoNodeAttributeWhenEmpty(t *testing.T) {
	emitter, exporter := newRecordingEmitter(t)

	emitter.Emit(Event{Seed: 1, Msg: MsgPassStart})

	spans := exporter.GetSpans()
	if len(spans) != 1 {
		t.Fatalf("got %d spans, want 1", len(spans))
	}
	if _, ok := attrValue(spans[0].Attributes, "quizgraph.node_id"); ok {
		t.Fatal("empty node ID produced an attribute")
	}
}
