package config

import (
	"os"

	"github.com/Sumatoshi-tech/reloadstats/internal/analysis"
	"github.com/Sumatoshi-tech/reloadstats/internal/figures"
	"github.com/Sumatoshi-tech/reloadstats/internal/observability"
	"github.com/Sumatoshi-tech/reloadstats/internal/workbook"
)

// AnalysisOptions returns the template thresholds.
func (c *Config) AnalysisOptions() analysis.Options {
	return analysis.Options{
		Alpha:           c.Analysis.Alpha,
		MinShotsWarning: c.Analysis.MinShotsWarning,
	}
}

// WorkbookOptions returns the generator options. Examples is left to the
// caller.
func (c *Config) WorkbookOptions() workbook.Options {
	return workbook.Options{
		Password: c.Workbook.Password,
		Analysis: c.AnalysisOptions(),
	}
}

// FigureOptions returns the render options. Logger and Recorder are left to
// the caller.
func (c *Config) FigureOptions() figures.Options {
	return figures.Options{
		Dir:     c.Figures.OutputDir,
		DPI:     c.Figures.DPI,
		Workers: c.Figures.Workers,
	}
}

// ObservabilityConfig maps the log and telemetry keys onto the
// observability settings for the given binary version. OTLP headers and
// the sampler still come from the standard OTEL_* environment.
func (c *Config) ObservabilityConfig(version string) observability.Config {
	obsCfg := observability.DefaultConfig()
	obsCfg.ServiceVersion = version
	obsCfg.Environment = c.Observability.Environment
	obsCfg.OTLPEndpoint = c.Observability.OTLPEndpoint
	obsCfg.OTLPInsecure = c.Observability.OTLPInsecure
	obsCfg.OTLPHeaders = observability.ParseOTLPHeaders(os.Getenv("OTEL_EXPORTER_OTLP_HEADERS"))
	obsCfg.LogJSON = c.Log.JSON

	level, err := observability.ParseLevel(c.Log.Level)
	if err == nil {
		obsCfg.LogLevel = level
	}

	return obsCfg
}
