package config

import (
	"github.com/spf13/viper"

	"github.com/Sumatoshi-tech/reloadstats/internal/analysis"
	"github.com/Sumatoshi-tech/reloadstats/internal/chart"
	"github.com/Sumatoshi-tech/reloadstats/internal/figures"
	"github.com/Sumatoshi-tech/reloadstats/internal/workbook"
)

// Defaults for every configuration key.
const (
	DefaultFiguresOutputDir  = "lessons/static"
	DefaultFiguresDPI        = chart.DefaultDPI
	DefaultAlpha             = analysis.DefaultAlpha
	DefaultMinShotsWarning   = analysis.DefaultMinShotsWarning
	DefaultWorkbookOutputDir = "."
	DefaultWorkbookPassword  = workbook.DefaultPassword
	DefaultLogLevel          = "info"
	DefaultLogJSON           = false
)

// DefaultFiguresWorkers is the render pool size.
func DefaultFiguresWorkers() int {
	return figures.DefaultWorkers()
}

// Default returns the configuration used when no file or environment
// override is present.
func Default() Config {
	return Config{
		Figures: FiguresConfig{
			OutputDir: DefaultFiguresOutputDir,
			DPI:       DefaultFiguresDPI,
			Workers:   DefaultFiguresWorkers(),
		},
		Analysis: AnalysisConfig{
			Alpha:           DefaultAlpha,
			MinShotsWarning: DefaultMinShotsWarning,
		},
		Workbook: WorkbookConfig{
			OutputDir: DefaultWorkbookOutputDir,
			Password:  DefaultWorkbookPassword,
		},
		Log: LogConfig{Level: DefaultLogLevel, JSON: DefaultLogJSON},
	}
}

func applyDefaults(viperCfg *viper.Viper) {
	viperCfg.SetDefault("figures.output_dir", DefaultFiguresOutputDir)
	viperCfg.SetDefault("figures.dpi", DefaultFiguresDPI)
	viperCfg.SetDefault("figures.workers", DefaultFiguresWorkers())

	viperCfg.SetDefault("analysis.alpha", DefaultAlpha)
	viperCfg.SetDefault("analysis.min_shots_warning", DefaultMinShotsWarning)

	viperCfg.SetDefault("workbook.output_dir", DefaultWorkbookOutputDir)
	viperCfg.SetDefault("workbook.password", DefaultWorkbookPassword)

	viperCfg.SetDefault("log.level", DefaultLogLevel)
	viperCfg.SetDefault("log.json", DefaultLogJSON)

	viperCfg.SetDefault("observability.otlp_endpoint", "")
	viperCfg.SetDefault("observability.otlp_insecure", false)
	viperCfg.SetDefault("observability.environment", "")
}
