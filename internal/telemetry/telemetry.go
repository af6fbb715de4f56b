// Package telemetry wires OpenTelemetry tracing for the espigot binaries.
package telemetry

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"

	"github.com/aretw0/espigot/internal/config"
)

// Shutdown flushes pending spans and releases the exporter.
type Shutdown func(context.Context) error

// Setup initialises OpenTelemetry tracing for the given service.
//
// Tracing is opt-in: when cfg.Endpoint is empty or cfg.Enabled is false,
// Setup returns a no-op shutdown function and the global provider is left
// untouched, so library spans go nowhere.
func Setup(ctx context.Context, serviceName string, cfg config.TelemetryConfig) (Shutdown, error) {
	noop := func(context.Context) error { return nil }

	if !cfg.Enabled || cfg.Endpoint == "" {
		return noop, nil
	}

	exporter, err := otlptracehttp.New(ctx,
		otlptracehttp.WithEndpointURL(cfg.Endpoint),
	)
	if err != nil {
		return noop, err
	}

	res, err := resource.New(ctx,
		resource.WithAttributes(
			semconv.ServiceName(serviceName),
		),
	)
	if err != nil {
		return noop, err
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
		sdktrace.WithSampler(sdktrace.AlwaysSample()),
	)

	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.TraceContext{})

	return tp.Shutdown, nil
}
