package emit

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// OTelDrain turns each event into a zero-duration OpenTelemetry span,
// mapping the Kind/NodeID/Data event shape onto span name and attributes.
type OTelDrain struct {
	tracer trace.Tracer
}

// NewOTelDrain creates an OTelDrain using tracer (e.g. otel.Tracer("attractor")).
func NewOTelDrain(tracer trace.Tracer) *OTelDrain {
	return &OTelDrain{tracer: tracer}
}

// Handle creates and immediately ends a span named after event.Kind.
func (o *OTelDrain) Handle(event Event) {
	_, span := o.tracer.Start(context.Background(), string(event.Kind))
	defer span.End()

	span.SetAttributes(attribute.String("attractor.node_id", event.NodeID))
	for key, value := range event.Data {
		switch v := value.(type) {
		case string:
			span.SetAttributes(attribute.String(key, v))
		case int:
			span.SetAttributes(attribute.Int(key, v))
		case int64:
			span.SetAttributes(attribute.Int64(key, v))
		case float64:
			span.SetAttributes(attribute.Float64(key, v))
		case bool:
			span.SetAttributes(attribute.Bool(key, v))
		default:
			span.SetAttributes(attribute.String(key, fmt.Sprintf("%v", v)))
		}
	}
	if reason, ok := event.Data["failureReason"].(string); ok && reason != "" {
		span.SetStatus(codes.Error, reason)
		span.RecordError(fmt.Errorf("%s", reason))
	}
}
