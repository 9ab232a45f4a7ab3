package tracing

import (
	"context"

	"github.com/pkg/errors"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"

	"github.com/clear-ness/postcounters/model"
)

// Setup registers a global tracer provider exporting to TracingSettings.Endpoint and the
// W3C trace context propagator. With tracing disabled it registers nothing.
//
// The returned shutdown function flushes pending spans.
func Setup(ctx context.Context, settings *model.TracingSettings) (shutdown func(context.Context) error, err error) {
	noop := func(context.Context) error { return nil }

	if !*settings.Enable {
		return noop, nil
	}

	exporter, err := otlptracehttp.New(ctx,
		otlptracehttp.WithEndpointURL(*settings.Endpoint),
	)
	if err != nil {
		return noop, errors.Wrap(err, "failed to create trace exporter")
	}

	res, err := resource.New(ctx,
		resource.WithAttributes(
			semconv.ServiceName(*settings.ServiceName),
			semconv.ServiceVersion(model.CurrentVersion),
		),
	)
	if err != nil {
		return noop, errors.Wrap(err, "failed to create trace resource")
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
