package config_test

import (
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Sumatoshi-tech/reloadstats/internal/config"
)

func TestConversions(t *testing.T) {
	t.Parallel()

	cfg := config.Default()
	cfg.Analysis.Alpha = 0.01
	cfg.Analysis.MinShotsWarning = 25
	cfg.Workbook.Password = "pw"
	cfg.Figures.Workers = 3
	cfg.Log.Level = "warn"
	cfg.Log.JSON = true
	cfg.Observability.Environment = "ci"

	a := cfg.AnalysisOptions()
	assert.InDelta(t, 0.01, a.Alpha, 1e-12)
	assert.Equal(t, 25, a.MinShotsWarning)

	w := cfg.WorkbookOptions()
	assert.Equal(t, "pw", w.Password)
	assert.Equal(t, a, w.Analysis)
	assert.False(t, w.Examples)

	f := cfg.FigureOptions()
	assert.Equal(t, config.DefaultFiguresOutputDir, f.Dir)
	assert.Equal(t, config.DefaultFiguresDPI, f.DPI)
	assert.Equal(t, 3, f.Workers)

	o := cfg.ObservabilityConfig("1.0.0")
	assert.Equal(t, "1.0.0", o.ServiceVersion)
	assert.Equal(t, "ci", o.Environment)
	assert.Equal(t, slog.LevelWarn, o.LogLevel)
	assert.True(t, o.LogJSON)
	assert.Empty(t, o.OTLPEndpoint)
}
