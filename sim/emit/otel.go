package emit

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// OTelEmitter turns events into OpenTelemetry spans.
//
// Each event becomes one immediately-ended span named after the event message
// with the seed, step, node ID, and metadata attached as attributes. Events
// carrying an "error" metadata entry mark the span's status as an error.
//
// The tracer comes from the caller's OpenTelemetry setup:
//
//	tracer := otel.Tracer("quizgraph")
//	emitter := emit.NewOTelEmitter(tracer)
type OTelEmitter struct {
	tracer trace.Tracer
}

// NewOTelEmitter creates an emitter producing spans via tracer.
func NewOTelEmitter(tracer trace.Tracer) *OTelEmitter {
	return &OTelEmitter{tracer: tracer}
}

// Emit creates and ends one span for the event. Events are points in time,
// not durations, so the span is closed immediately.
func (o *OTelEmitter) Emit(event Event) {
	_, span := o.tracer.Start(context.Background(), event.Msg)
	defer span.End()

	o.setAttributes(span, event)

	if errMsg, ok := event.Meta["error"].(string); ok {
		span.SetStatus(codes.Error, errMsg)
		span.RecordError(fmt.Errorf("%s", errMsg))
	}
}

// Flush forces export of pending spans. Call before shutdown so buffered
// spans reach the backend; a provider without flush support is a no-op.
func (o *OTelEmitter) Flush(ctx context.Context) error {
	type flusher interface {
		ForceFlush(context.Context) error
	}
	if f, ok := otel.GetTracerProvider().(flusher); ok {
		return f.ForceFlush(ctx)
	}
	return nil
}

func (o *OTelEmitter) setAttributes(span trace.Span, event Event) {
	span.SetAttributes(
		attribute.Int64("quizgraph.seed", event.Seed),
		attribute.Int("quizgraph.step", event.Step),
	)
	if event.NodeID != "" {
		span.SetAttributes(attribute.String("quizgraph.node_id", event.NodeID))
	}
	for key, value := range event.Meta {
		switch v := value.(type) {
		case string:
			span.SetAttributes(attribute.String("quizgraph.meta."+key, v))
		case bool:
			span.SetAttributes(attribute.Bool("quizgraph.meta."+key, v))
		case int:
			span.SetAttributes(attribute.Int("quizgraph.meta."+key, v))
		case int64:
			span.SetAttributes(attribute.Int64("quizgraph.meta."+key, v))
		case float64:
			span.SetAttributes(attribute.Float64("quizgraph.meta."+key, v))
		default:
			span.SetAttributes(attribute.String("quizgraph.meta."+key, fmt.Sprintf("%v", v)))
		}
	}
}
