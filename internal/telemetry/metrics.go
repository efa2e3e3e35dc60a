package telemetry

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// CustomMetrics records build and generation activity. The no-op
// implementation is used when telemetry is disabled.
type CustomMetrics interface {
	// RecordBuild records one server config build with its tool count and
	// wall-clock duration.
	RecordBuild(ctx context.Context, server string, toolCount int, duration time.Duration)

	// RecordToolGeneration records how many tools a single source
	// (model, route, manual, boost) contributed.
	RecordToolGeneration(ctx context.Context, source string, count int)
}

type noopCustomMetrics struct{}

// NewNoopCustomMetrics returns a CustomMetrics that records nothing.
func NewNoopCustomMetrics() CustomMetrics {
	return &noopCustomMetrics{}
}

func (m *noopCustomMetrics) RecordBuild(context.Context, string, int, time.Duration) {}

func (m *noopCustomMetrics) RecordToolGeneration(context.Context, string, int) {}

type otelCustomMetrics struct {
	buildCount     metric.Int64Counter
	buildDuration  metric.Float64Histogram
	toolsGenerated metric.Int64Counter
}

// NewOtelCustomMetrics creates a CustomMetrics backed by the given meter.
func NewOtelCustomMetrics(meter metric.Meter) (CustomMetrics, error) {
	buildCount, err := meter.Int64Counter(
		"mcpforge_builds_total",
		metric.WithDescription("Total number of server config builds"),
	)
	if err != nil {
		return nil, err
	}

	buildDuration, err := meter.Float64Histogram(
		"mcpforge_build_duration_seconds",
		metric.WithDescription("Duration of server config builds in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, err
	}

	toolsGenerated, err := meter.Int64Counter(
		"mcpforge_tools_generated_total",
		metric.WithDescription("Total number of tools generated, by source"),
	)
	if err != nil {
		return nil, err
	}

	return &otelCustomMetrics{
		buildCount:     buildCount,
		buildDuration:  buildDuration,
		toolsGenerated: toolsGenerated,
	}, nil
}

func (m *otelCustomMetrics) RecordBuild(ctx context.Context, server string, toolCount int, duration time.Duration) {
	attrs := metric.WithAttributes(
		attribute.String("server", server),
		attribute.Int("tool_count", toolCount),
	)
	m.buildCount.Add(ctx, 1, attrs)
	m.buildDuration.Record(ctx, duration.Seconds(), attrs)
}

func (m *otelCustomMetrics) RecordToolGeneration(ctx context.Context, source string, count int) {
	m.toolsGenerated.Add(ctx, int64(count), metric.WithAttributes(
		attribute.String("source", source),
	))
}
