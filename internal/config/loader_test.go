package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sumatoshi-tech/reloadstats/internal/config"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), ".reloadstats.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	return path
}

func TestLoadConfig_EnvOverridesFile(t *testing.T) {
	path := writeConfig(t, "figures:\n  dpi: 150\n")

	t.Setenv("RELOADSTATS_FIGURES_DPI", "72")
	t.Setenv("RELOADSTATS_ANALYSIS_ALPHA", "0.01")

	cfg, err := config.LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, 72, cfg.Figures.DPI)
	assert.InDelta(t, 0.01, cfg.Analysis.Alpha, 1e-12)
}

func TestLoadConfig_EmptyFile_UsesDefaults(t *testing.T) {
	t.Parallel()

	cfg, err := config.LoadConfig(writeConfig(t, ""))
	require.NoError(t, err)

	assert.Equal(t, config.DefaultFiguresOutputDir, cfg.Figures.OutputDir)
	assert.Equal(t, config.DefaultFiguresDPI, cfg.Figures.DPI)
	assert.Equal(t, config.DefaultFiguresWorkers(), cfg.Figures.Workers)
	assert.InDelta(t, config.DefaultAlpha, cfg.Analysis.Alpha, 1e-12)
	assert.Equal(t, config.DefaultMinShotsWarning, cfg.Analysis.MinShotsWarning)
	assert.Equal(t, config.DefaultWorkbookOutputDir, cfg.Workbook.OutputDir)
	assert.Equal(t, config.DefaultWorkbookPassword, cfg.Workbook.Password)
	assert.Equal(t, config.DefaultLogLevel, cfg.Log.Level)
	assert.False(t, cfg.Log.JSON)
	assert.Empty(t, cfg.Observability.OTLPEndpoint)
}

func TestLoadConfig_ValidFile_Unmarshals(t *testing.T) {
	t.Parallel()

	path := writeConfig(t, `figures:
  output_dir: out/figs
  dpi: 150
  workers: 2
analysis:
  alpha: 0.1
  min_shots_warning: 30
workbook:
  output_dir: out/xlsx
  password: secret
log:
  level: debug
  json: true
observability:
  otlp_endpoint: localhost:4317
  otlp_insecure: true
  environment: ci
`)

	cfg, err := config.LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, config.Config{
		Figures:       config.FiguresConfig{OutputDir: "out/figs", DPI: 150, Workers: 2},
		Analysis:      config.AnalysisConfig{Alpha: 0.1, MinShotsWarning: 30},
		Workbook:      config.WorkbookConfig{OutputDir: "out/xlsx", Password: "secret"},
		Log:           config.LogConfig{Level: "debug", JSON: true},
		Observability: config.ObservabilityConfig{OTLPEndpoint: "localhost:4317", OTLPInsecure: true, Environment: "ci"},
	}, *cfg)
}

func TestLoadConfig_InvalidValue_ReturnsSentinel(t *testing.T) {
	t.Parallel()

	_, err := config.LoadConfig(writeConfig(t, "analysis:\n  alpha: 1.5\n"))
	require.ErrorIs(t, err, config.ErrInvalidAlpha)
	assert.Contains(t, err.Error(), "validate config")
}

func TestLoadConfig_MalformedFile_ReturnsError(t *testing.T) {
	t.Parallel()

	_, err := config.LoadConfig(writeConfig(t, "figures: [unclosed\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "read config")
}

func TestLoadConfig_MissingExplicitFile_ReturnsError(t *testing.T) {
	t.Parallel()

	_, err := config.LoadConfig(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
}
