// Package config loads reloadstats settings from file, environment and
// defaults.
package config

import (
	"errors"

	"github.com/Sumatoshi-tech/reloadstats/internal/observability"
)

// Config is the top-level configuration struct for reloadstats.
// Field tags use mapstructure for viper unmarshalling.
type Config struct {
	Figures       FiguresConfig       `mapstructure:"figures"`
	Analysis      AnalysisConfig      `mapstructure:"analysis"`
	Workbook      WorkbookConfig      `mapstructure:"workbook"`
	Log           LogConfig           `mapstructure:"log"`
	Observability ObservabilityConfig `mapstructure:"observability"`
}

// FiguresConfig holds curriculum figure rendering knobs.
type FiguresConfig struct {
	OutputDir string `mapstructure:"output_dir"`
	DPI       int    `mapstructure:"dpi"`
	Workers   int    `mapstructure:"workers"`
}

// AnalysisConfig holds the statistical thresholds shared by the templates
// and the workbook.
type AnalysisConfig struct {
	Alpha           float64 `mapstructure:"alpha"`
	MinShotsWarning int     `mapstructure:"min_shots_warning"`
}

// WorkbookConfig holds workbook generator settings.
type WorkbookConfig struct {
	OutputDir string `mapstructure:"output_dir"`
	Password  string `mapstructure:"password"`
}

// LogConfig holds logger settings.
type LogConfig struct {
	Level string `mapstructure:"level"`
	JSON  bool   `mapstructure:"json"`
}

// ObservabilityConfig holds telemetry export settings.
type ObservabilityConfig struct {
	OTLPEndpoint string `mapstructure:"otlp_endpoint"`
	OTLPInsecure bool   `mapstructure:"otlp_insecure"`
	Environment  string `mapstructure:"environment"`
}

// Sentinel errors for configuration validation.
var (
	// ErrInvalidOutputDir indicates figures.output_dir is empty.
	ErrInvalidOutputDir = errors.New("figures.output_dir must not be empty")
	// ErrInvalidDPI indicates the DPI is not positive.
	ErrInvalidDPI = errors.New("figures.dpi must be positive")
	// ErrInvalidWorkers indicates the workers value is negative.
	ErrInvalidWorkers = errors.New("figures.workers must be non-negative")
	// ErrInvalidAlpha indicates alpha is outside (0, 1).
	ErrInvalidAlpha = errors.New("analysis.alpha must be between 0 and 1")
	// ErrInvalidMinShots indicates the small-sample threshold is not positive.
	ErrInvalidMinShots = errors.New("analysis.min_shots_warning must be positive")
	// ErrInvalidLogLevel indicates an unknown log.level.
	ErrInvalidLogLevel = errors.New("log.level must be one of debug, info, warn, error")
)

// Validate checks Config invariants and returns the first error found.
func (c *Config) Validate() error {
	figuresErr := c.validateFigures()
	if figuresErr != nil {
		return figuresErr
	}

	if c.Analysis.Alpha <= 0 || c.Analysis.Alpha >= 1 {
		return ErrInvalidAlpha
	}

	if c.Analysis.MinShotsWarning <= 0 {
		return ErrInvalidMinShots
	}

	_, err := observability.ParseLevel(c.Log.Level)
	if err != nil {
		return ErrInvalidLogLevel
	}

	return nil
}

func (c *Config) validateFigures() error {
	if c.Figures.OutputDir == "" {
		return ErrInvalidOutputDir
	}

	if c.Figures.DPI <= 0 {
		return ErrInvalidDPI
	}

	if c.Figures.Workers < 0 {
		return ErrInvalidWorkers
	}

	return nil
}
