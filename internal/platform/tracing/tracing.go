// Copyright (c) 2026 Libris. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package tracing installs the process-wide OpenTelemetry tracer provider.

Components never receive a provider. They call otel.Tracer(name) and start
spans on the global one, which is a no-op until [Setup] installs an exporter.

Usage:

	shutdown, err := tracing.Setup(ctx, cfg.ServiceName, cfg.OTLPEndpoint, logger)
	if err != nil {
	    return err
	}
	defer shutdown(context.Background())
*/
package tracing

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"

	"github.com/taibuivan/libris/internal/platform/constants"
)

// flushTimeout bounds the final export on shutdown.
const flushTimeout = 5 * time.Second

// ShutdownFunc flushes buffered spans and releases the exporter.
type ShutdownFunc func(context.Context) error

/*
Setup configures tracing for the process.

An empty endpoint keeps the global no-op provider, so spans cost nothing when
no collector is configured. Otherwise spans are batched to the OTLP/HTTP
collector at endpoint (e.g. "http://otel-collector:4318").

Parameters:
  - ctx: context.Context (bounds exporter construction)
  - serviceName: string (service.name resource attribute)
  - endpoint: string (collector URL, may be empty)
  - logger: *slog.Logger

Returns:
  - ShutdownFunc: Always non-nil; safe to defer
  - error: Exporter construction errors
*/
func Setup(ctx context.Context, serviceName, endpoint string, logger *slog.Logger) (ShutdownFunc, error) {
	noop := func(context.Context) error { return nil }

	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))

	if endpoint == "" {
		logger.Info("tracing_disabled")
		return noop, nil
	}

	exporter, err := otlptracehttp.New(ctx, otlptracehttp.WithEndpointURL(endpoint))
	if err != nil {
		return noop, fmt.Errorf("tracing: create otlp exporter: %w", err)
	}

	provider := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(resource.NewSchemaless(
			attribute.String("service.name", serviceName),
			attribute.String("service.version", constants.AppVersion),
		)),
	)
	otel.SetTracerProvider(provider)

	logger.Info("tracing_enabled",
		slog.String("endpoint", endpoint),
		slog.String("service", serviceName),
	)

	return func(ctx context.Context) error {
		ctx, cancel := context.WithTimeout(ctx, flushTimeout)
		defer cancel()
		return provider.Shutdown(ctx)
	}, nil
}

// TraceID returns the active trace ID in ctx, or "" when none is recording.
func TraceID(ctx context.Context) string {
	spanContext := trace.SpanContextFromContext(ctx)
	if !spanContext.IsValid() {
		return ""
	}
	return spanContext.TraceID().String()
}
