package observability_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sumatoshi-tech/reloadstats/internal/observability"
)

// Init installs global providers, so these tests run sequentially.

func TestInit_NoopWhenNothingConfigured(t *testing.T) {
	providers, err := observability.Init(observability.DefaultConfig())
	require.NoError(t, err)

	assert.NotNil(t, providers.Tracer)
	assert.NotNil(t, providers.Meter)
	assert.NotNil(t, providers.Logger)
	assert.Nil(t, providers.Registry)

	_, span := providers.Tracer.Start(context.Background(), "noop")
	span.End()
	assert.False(t, span.SpanContext().IsValid())

	require.NoError(t, providers.Shutdown(context.Background()))
}

func TestInit_MetricsFileWrittenOnShutdown(t *testing.T) {
	cfg := observability.DefaultConfig()
	cfg.ServiceVersion = "1.2.3"
	cfg.Environment = "test"
	cfg.MetricsFile = filepath.Join(t.TempDir(), "out", "reloadstats.prom")

	providers, err := observability.Init(cfg)
	require.NoError(t, err)
	require.NotNil(t, providers.Registry)

	rm, err := observability.NewRenderMetrics(providers.Meter)
	require.NoError(t, err)

	rm.RecordArtifact(context.Background(), observability.KindPage, 0, 512, nil)

	require.NoError(t, providers.Shutdown(context.Background()))

	raw, err := os.ReadFile(cfg.MetricsFile)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `kind="page"`)
}

func TestParseOTLPHeaders(t *testing.T) {
	t.Parallel()

	tests := []struct {
		raw  string
		want map[string]string
	}{
		{"", nil},
		{"garbage", nil},
		{"a=1", map[string]string{"a": "1"}},
		{" a = 1 , b=2,bad", map[string]string{"a": "1", "b": "2"}},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, observability.ParseOTLPHeaders(tt.raw), tt.raw)
	}
}
