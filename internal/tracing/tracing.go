// Package tracing configures the OpenTelemetry provider used for discovery
// pass spans.
package tracing

import (
	"context"
	"fmt"
	"io"
	"os"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

const (
	defaultEndpoint    = "localhost:4317"
	defaultServiceName = "productor"
)

// Config configures the tracing subsystem.
type Config struct {
	// Exporter selects the export backend: "none", "stdout" or "otlp".
	Exporter string

	// Endpoint is the collector address for the otlp exporter.
	Endpoint string

	// SampleRate is the fraction of traces sampled. Zero means all.
	SampleRate float64

	// ServiceName identifies this process in traces.
	ServiceName string

	// Writer receives stdout exporter output. Defaults to os.Stderr so
	// spans do not mix with command output.
	Writer io.Writer
}

// Provider wraps the tracer provider and the tracer handed to registries.
type Provider struct {
	provider *sdktrace.TracerProvider
	tracer   trace.Tracer
}

// NewProvider builds a provider for cfg. The "none" exporter yields a no-op
// tracer with no overhead.
func NewProvider(ctx context.Context, cfg Config) (*Provider, error) {
	var (
		exporter sdktrace.SpanExporter
		err      error
	)

	switch cfg.Exporter {
	case "", "none":
		return &Provider{tracer: noop.NewTracerProvider().Tracer("noop")}, nil
	case "stdout":
		w := cfg.Writer
		if w == nil {
			w = os.Stderr
		}
		exporter, err = stdouttrace.New(stdouttrace.WithWriter(w), stdouttrace.WithPrettyPrint())
		if err != nil {
			return nil, fmt.Errorf("create stdout exporter: %w", err)
		}
	case "otlp":
		endpoint := cfg.Endpoint
		if endpoint == "" {
			endpoint = defaultEndpoint
		}
		exporter, err = otlptracegrpc.New(ctx,
			otlptracegrpc.WithEndpoint(endpoint),
			otlptracegrpc.WithInsecure(),
		)
		if err != nil {
			return nil, fmt.Errorf("create otlp exporter: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported exporter type: %s", cfg.Exporter)
	}

	serviceName := cfg.ServiceName
	if serviceName == "" {
		serviceName = defaultServiceName
	}
	sampleRate := cfg.SampleRate
	if sampleRate <= 0 {
		sampleRate = 1.0
	}

	provider := sdktrace.NewTracerProvider(
		sdktrace.WithResource(resource.NewSchemaless(attribute.String("service.name", serviceName))),
		sdktrace.WithSampler(sdktrace.ParentBased(sdktrace.TraceIDRatioBased(sampleRate))),
		sdktrace.WithBatcher(exporter),
	)
	otel.SetTracerProvider(provider)

	return &Provider{provider: provider, tracer: provider.Tracer(serviceName)}, nil
}

// Tracer returns the configured tracer. It is a no-op tracer when tracing
// is disabled.
func (p *Provider) Tracer() trace.Tracer {
	return p.tracer
}

// Enabled reports whether spans are exported.
func (p *Provider) Enabled() bool {
	return p.provider != nil
}

// Shutdown flushes pending spans.
func (p *Provider) Shutdown(ctx context.Context) error {
	if p.provider != nil {
		return p.provider.Shutdown(ctx)
	}
	return nil
}
