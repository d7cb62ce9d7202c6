package observe

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.4.0"
	"go.uber.org/zap"
)

// TracingConfig configures the OTLP exporter backing the governance
// observer's spans, grounded on the teacher's TracingManager.
type TracingConfig struct {
	Enabled      bool
	OTLPEndpoint string
}

// SetupTracing installs a batching OTLP/HTTP exporter as the global tracer
// provider when enabled, otherwise leaves the global no-op provider in
// place so Observer.Observe still works (spans are simply discarded).
// The returned shutdown func must be called on process exit.
func SetupTracing(ctx context.Context, cfg TracingConfig, serviceName, serviceVersion string, logger *zap.SugaredLogger) (func(context.Context) error, error) {
	if !cfg.Enabled {
		return func(context.Context) error { return nil }, nil
	}

	exporter, err := otlptracehttp.New(ctx,
		otlptracehttp.WithEndpoint(cfg.OTLPEndpoint),
		otlptracehttp.WithInsecure(),
	)
	if err != nil {
		return nil, fmt.Errorf("create otlp exporter: %w", err)
	}

	res, err := resource.New(ctx,
		resource.WithAttributes(
			semconv.ServiceNameKey.String(serviceName),
			semconv.ServiceVersionKey.String(serviceVersion),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("build otel resource: %w", err)
	}

	provider := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
	)
	otel.SetTracerProvider(provider)
	otel.SetTextMapPropagator(propagation.TraceContext{})

	logger.Infow("governance tracing initialized", "otlp_endpoint", cfg.OTLPEndpoint, "service", serviceName)
	return provider.Shutdown, nil
}
