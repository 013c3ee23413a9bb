// Package commands implements the reloadstats CLI subcommands.
package commands

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/Sumatoshi-tech/reloadstats/internal/config"
	"github.com/Sumatoshi-tech/reloadstats/internal/observability"
	"github.com/Sumatoshi-tech/reloadstats/pkg/version"
)

// InitFunc initializes observability providers. Tests substitute it.
type InitFunc func(observability.Config) (observability.Providers, error)

// Option customizes the root command.
type Option func(*app)

// WithInit replaces observability.Init.
func WithInit(fn InitFunc) Option {
	return func(a *app) { a.initFn = fn }
}

// app is the per-invocation state shared by the subcommands.
type app struct {
	configPath  string
	metricsFile string
	verbose     bool
	quiet       bool

	initFn    InitFunc
	cfg       *config.Config
	providers observability.Providers
	metrics   *observability.RenderMetrics
	logger    *slog.Logger
}

// NewRootCommand builds the reloadstats command tree.
func NewRootCommand(opts ...Option) *cobra.Command {
	a := &app{initFn: observability.Init}
	for _, opt := range opts {
		opt(a)
	}

	rootCmd := &cobra.Command{
		Use:   "reloadstats",
		Short: "Data-driven reloading: curriculum figures, analysis templates, and workbooks",
		Long: `reloadstats produces the material of the Data-Driven Reloading curriculum.

Commands:
  figures   List and render the lesson figures
  analyze   Run an analysis template on chronograph data
  workbook  Generate the Excel analysis templates
  verify    Self-check the statistical routines`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
	}

	flags := rootCmd.PersistentFlags()
	flags.BoolVarP(&a.verbose, "verbose", "v", false, "verbose output")
	flags.BoolVarP(&a.quiet, "quiet", "q", false, "log warnings and errors only and disable colour; reports still print")
	flags.StringVar(&a.configPath, "config", "", "config file (default .reloadstats.yaml in ., $XDG_CONFIG_HOME/reloadstats, or $HOME)")
	flags.StringVar(&a.metricsFile, "metrics-file", "", "write Prometheus metrics to this file on exit")

	rootCmd.AddCommand(
		newFiguresCommand(a),
		newAnalyzeCommand(a),
		newWorkbookCommand(a),
		newVerifyCommand(a),
		newVersionCommand(),
	)

	return rootCmd
}

func (a *app) setup(_ *cobra.Command, _ []string) error {
	cfg, err := config.LoadConfig(a.configPath)
	if err != nil {
		return err
	}

	obsCfg := cfg.ObservabilityConfig(version.Version)
	obsCfg.MetricsFile = a.metricsFile

	switch {
	case a.verbose:
		obsCfg.LogLevel = slog.LevelDebug
	case a.quiet:
		obsCfg.LogLevel = slog.LevelWarn
	}

	providers, err := a.initFn(obsCfg)
	if err != nil {
		return fmt.Errorf("init observability: %w", err)
	}

	metrics, err := observability.NewRenderMetrics(providers.Meter)
	if err != nil {
		return fmt.Errorf("create metrics: %w", err)
	}

	a.cfg = cfg
	a.providers = providers
	a.metrics = metrics
	a.logger = providers.Logger

	return nil
}

// useColor reports whether terminal output may be coloured.
func (a *app) useColor() bool {
	return !a.quiet && !color.NoColor
}

type runFunc func(ctx context.Context, cmd *cobra.Command, args []string) error

// run wraps fn in a span named after the command path and shuts the
// providers down afterwards.
func (a *app) run(fn runFunc) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) (err error) {
		name := strings.ReplaceAll(cmd.CommandPath(), " ", ".")

		ctx, span := a.providers.Tracer.Start(cmd.Context(), name,
			trace.WithAttributes(attribute.StringSlice("args", args)))

		defer func() {
			if err != nil {
				span.RecordError(err)
				span.SetStatus(codes.Error, err.Error())
			}

			span.End()

			shutdownErr := a.providers.Shutdown(context.WithoutCancel(ctx))
			if shutdownErr != nil {
				a.logger.Warn("observability shutdown failed", "error", shutdownErr)
			}
		}()

		return fn(ctx, cmd, args)
	}
}

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:               "version",
		Short:             "Show version information",
		PersistentPreRunE: func(*cobra.Command, []string) error { return nil },
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "reloadstats %s (commit: %s, built: %s)\n", version.Version, version.Commit, version.Date)
		},
	}
}
