package observability

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const (
	metricRendersTotal   = "reloadstats.renders.total"
	metricRenderDuration = "reloadstats.render.duration.seconds"
	metricRenderBytes    = "reloadstats.render.bytes"

	attrKind   = "kind"
	attrStatus = "status"

	statusOK    = "ok"
	statusError = "error"
)

// Artifact kinds recorded by RenderMetrics.
const (
	KindFigure   = "figure"
	KindChart    = "chart"
	KindPage     = "page"
	KindWorkbook = "workbook"
)

var (
	// durationBuckets covers a quick low-DPI chart up to a slow workbook.
	durationBuckets = []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10}
	// sizeBuckets covers 4 KiB to 16 MiB.
	sizeBuckets = []float64{4 << 10, 16 << 10, 64 << 10, 256 << 10, 1 << 20, 4 << 20, 16 << 20}
)

// RenderMetrics holds the rate, error, and duration instruments for every
// artifact the CLI writes.
type RenderMetrics struct {
	rendersTotal   metric.Int64Counter
	renderDuration metric.Float64Histogram
	renderBytes    metric.Float64Histogram
}

// NewRenderMetrics creates the render instruments from mt.
func NewRenderMetrics(mt metric.Meter) (*RenderMetrics, error) {
	total, totalErr := mt.Int64Counter(metricRendersTotal,
		metric.WithDescription("Artifacts rendered by kind and status"), metric.WithUnit("{artifact}"))

	duration, durationErr := mt.Float64Histogram(metricRenderDuration,
		metric.WithDescription("Render duration in seconds"), metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(durationBuckets...))

	size, sizeErr := mt.Float64Histogram(metricRenderBytes,
		metric.WithDescription("Size of rendered artifacts"), metric.WithUnit("By"),
		metric.WithExplicitBucketBoundaries(sizeBuckets...))

	err := errors.Join(totalErr, durationErr, sizeErr)
	if err != nil {
		return nil, fmt.Errorf("create render instruments: %w", err)
	}

	return &RenderMetrics{rendersTotal: total, renderDuration: duration, renderBytes: size}, nil
}

// RecordArtifact records one rendered artifact. Failed renders count toward
// the total with status "error" and leave the size histogram alone.
// Safe to call on a nil receiver.
func (rm *RenderMetrics) RecordArtifact(ctx context.Context, kind string, duration time.Duration, bytes int64, err error) {
	if rm == nil {
		return
	}

	status := statusOK
	if err != nil {
		status = statusError
	}

	attrs := metric.WithAttributes(attribute.String(attrKind, kind), attribute.String(attrStatus, status))

	rm.rendersTotal.Add(ctx, 1, attrs)
	rm.renderDuration.Record(ctx, duration.Seconds(), attrs)

	if err == nil {
		rm.renderBytes.Record(ctx, float64(bytes), metric.WithAttributes(attribute.String(attrKind, kind)))
	}
}

// RecordRender records one curriculum figure.
func (rm *RenderMetrics) RecordRender(ctx context.Context, _ string, duration time.Duration, bytes int64, err error) {
	rm.RecordArtifact(ctx, KindFigure, duration, bytes, err)
}
