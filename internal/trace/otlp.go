// Package trace sets up OpenTelemetry tracing for navigation and builds.
// Spans are exported over OTLP/HTTP when OTEL_EXPORTER_OTLP_ENDPOINT is
// set; otherwise every tracer is a no-op.
package trace

import (
	"context"
	"os"
	"strings"

	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.4.0"
	oteltrace "go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

// DefaultServiceName is reported when OTEL_SERVICE_NAME is unset.
const DefaultServiceName = "mvncli"

// Instrumentation scope names.
const (
	ScopeUI    = "mvncli/ui"
	ScopeBuild = "mvncli/build"
)

// Provider hands out tracers and flushes them on shutdown.
type Provider struct {
	provider oteltrace.TracerProvider
	sdk      *sdktrace.TracerProvider
}

// NewProvider creates an OTLP-backed provider if OTEL_EXPORTER_OTLP_ENDPOINT
// is set, else a no-op one. Never returns a nil Provider.
func NewProvider(ctx context.Context) (*Provider, error) {
	endpoint := os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT")
	if endpoint == "" {
		return &Provider{provider: noop.NewTracerProvider()}, nil
	}

	// The variable is normally a URL; a bare host:port means plain HTTP.
	opts := []otlptracehttp.Option{otlptracehttp.WithEndpointURL(endpoint)}
	if !strings.Contains(endpoint, "://") {
		opts = []otlptracehttp.Option{
			otlptracehttp.WithEndpoint(endpoint),
			otlptracehttp.WithInsecure(),
		}
	}
	exporter, err := otlptracehttp.New(ctx, opts...)
	if err != nil {
		return &Provider{provider: noop.NewTracerProvider()}, err
	}

	serviceName := os.Getenv("OTEL_SERVICE_NAME")
	if serviceName == "" {
		serviceName = DefaultServiceName
	}

	res := resource.NewWithAttributes(
		semconv.SchemaURL,
		semconv.ServiceNameKey.String(serviceName),
	)

	sdk := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
	)
	return &Provider{provider: sdk, sdk: sdk}, nil
}

// Enabled reports whether spans are exported.
func (p *Provider) Enabled() bool {
	return p != nil && p.sdk != nil
}

// Tracer returns a tracer for the given instrumentation scope.
func (p *Provider) Tracer(scope string) oteltrace.Tracer {
	if p == nil || p.provider == nil {
		return noop.NewTracerProvider().Tracer(scope)
	}
	return p.provider.Tracer(scope)
}

// Shutdown flushes and closes the exporter.
func (p *Provider) Shutdown(ctx context.Context) error {
	if !p.Enabled() {
		return nil
	}
	return p.sdk.Shutdown(ctx)
}
