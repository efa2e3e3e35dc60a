// Package telemetry wires up OpenTelemetry metrics with a Prometheus
// exporter. When telemetry is disabled the providers are inert and the
// no-op metrics implementation is used, so callers never need to check
// whether telemetry is on.
package telemetry

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
)

// Config holds the telemetry initialization settings.
type Config struct {
	ServiceName string
	Enabled     bool
}

// Providers holds the initialized OpenTelemetry providers.
type Providers struct {
	Meter metric.Meter

	serviceName   string
	enabled       bool
	meterProvider *sdkmetric.MeterProvider
}

// Init initializes the OpenTelemetry providers. When telemetry is disabled
// the returned Providers are inert and Shutdown is a no-op.
func Init(_ context.Context, cfg *Config) (*Providers, error) {
	p := &Providers{
		serviceName: cfg.ServiceName,
		enabled:     cfg.Enabled,
	}
	if !cfg.Enabled {
		return p, nil
	}

	exporter, err := prometheus.New()
	if err != nil {
		return nil, fmt.Errorf("failed to create prometheus exporter: %w", err)
	}

	res, err := resource.Merge(resource.Default(), resource.NewWithAttributes(
		semconv.SchemaURL,
		semconv.ServiceName(cfg.ServiceName),
	))
	if err != nil {
		return nil, fmt.Errorf("failed to create telemetry resource: %w", err)
	}

	p.meterProvider = sdkmetric.NewMeterProvider(
		sdkmetric.WithResource(res),
		sdkmetric.WithReader(exporter),
	)
	otel.SetMeterProvider(p.meterProvider)
	p.Meter = p.meterProvider.Meter(cfg.ServiceName)

	return p, nil
}

// IsEnabled reports whether telemetry was enabled at init time.
func (p *Providers) IsEnabled() bool {
	return p.enabled
}

// ServiceName returns the service name the providers were initialized with.
func (p *Providers) ServiceName() string {
	return p.serviceName
}

// Shutdown flushes and shuts down the providers.
func (p *Providers) Shutdown(ctx context.Context) error {
	if p.meterProvider == nil {
		return nil
	}
	return p.meterProvider.Shutdown(ctx)
}
