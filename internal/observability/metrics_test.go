package observability_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"

	"github.com/Sumatoshi-tech/reloadstats/internal/observability"
)

func setupTestMeter(t *testing.T) (*observability.RenderMetrics, *sdkmetric.ManualReader) {
	t.Helper()

	reader := sdkmetric.NewManualReader()
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))

	rm, err := observability.NewRenderMetrics(mp.Meter("test"))
	require.NoError(t, err)

	return rm, reader
}

func collect(t *testing.T, reader *sdkmetric.ManualReader) metricdata.ResourceMetrics {
	t.Helper()

	var rm metricdata.ResourceMetrics

	require.NoError(t, reader.Collect(context.Background(), &rm))

	return rm
}

func findMetric(rm metricdata.ResourceMetrics, name string) *metricdata.Metrics {
	for i := range rm.ScopeMetrics {
		for j := range rm.ScopeMetrics[i].Metrics {
			if rm.ScopeMetrics[i].Metrics[j].Name == name {
				return &rm.ScopeMetrics[i].Metrics[j]
			}
		}
	}

	return nil
}

func TestRenderMetrics_RecordsByKindAndStatus(t *testing.T) {
	t.Parallel()

	rm, reader := setupTestMeter(t)
	ctx := context.Background()

	rm.RecordRender(ctx, "lesson01_group_size", 40*time.Millisecond, 120_000, nil)
	rm.RecordRender(ctx, "lesson02_sd", 10*time.Millisecond, 0, errors.New("disk full"))
	rm.RecordArtifact(ctx, observability.KindWorkbook, time.Second, 30_000, nil)

	data := collect(t, reader)

	total := findMetric(data, "reloadstats.renders.total")
	require.NotNil(t, total)

	sum, ok := total.Data.(metricdata.Sum[int64])
	require.True(t, ok)

	counts := make(map[[2]string]int64)

	for _, dp := range sum.DataPoints {
		kind, _ := dp.Attributes.Value(attribute.Key("kind"))
		status, _ := dp.Attributes.Value(attribute.Key("status"))
		counts[[2]string{kind.AsString(), status.AsString()}] = dp.Value
	}

	assert.Equal(t, int64(1), counts[[2]string{"figure", "ok"}])
	assert.Equal(t, int64(1), counts[[2]string{"figure", "error"}])
	assert.Equal(t, int64(1), counts[[2]string{"workbook", "ok"}])

	size := findMetric(data, "reloadstats.render.bytes")
	require.NotNil(t, size)

	hist, ok := size.Data.(metricdata.Histogram[float64])
	require.True(t, ok)

	var observed uint64
	for _, dp := range hist.DataPoints {
		observed += dp.Count
	}

	assert.Equal(t, uint64(2), observed)
	assert.NotNil(t, findMetric(data, "reloadstats.render.duration.seconds"))
}

func TestRenderMetrics_NilReceiver(t *testing.T) {
	t.Parallel()

	var rm *observability.RenderMetrics

	assert.NotPanics(t, func() {
		rm.RecordRender(context.Background(), "x", time.Millisecond, 1, nil)
	})
}

func TestWriteTextfile(t *testing.T) {
	t.Parallel()

	registry, reader, err := observability.NewPrometheusReader()
	require.NoError(t, err)

	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	t.Cleanup(func() { _ = mp.Shutdown(context.Background()) })

	rm, err := observability.NewRenderMetrics(mp.Meter("test"))
	require.NoError(t, err)

	rm.RecordArtifact(context.Background(), observability.KindChart, 5*time.Millisecond, 2048, nil)

	path := filepath.Join(t.TempDir(), "metrics", "reloadstats.prom")
	require.NoError(t, observability.WriteTextfile(path, registry))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)

	body := string(raw)
	assert.Contains(t, body, "reloadstats_renders_total")
	assert.Contains(t, body, `kind="chart"`)
	assert.Contains(t, body, "target_info")
}
