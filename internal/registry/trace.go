package registry

import (
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

func tracingEventOptions(d Diagnostic) []trace.EventOption {
	attrs := []attribute.KeyValue{
		attribute.String("severity", string(d.Severity)),
		attribute.String("message", d.Message),
	}
	if d.Path != "" {
		attrs = append(attrs, attribute.String("path", d.Path))
	}
	if d.Cause != nil {
		attrs = append(attrs, attribute.String("error", d.Cause.Error()))
	}
	return []trace.EventOption{trace.WithAttributes(attrs...)}
}
