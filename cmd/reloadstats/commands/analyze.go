package commands

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/Sumatoshi-tech/reloadstats/internal/analysis"
	"github.com/Sumatoshi-tech/reloadstats/internal/chart"
	"github.com/Sumatoshi-tech/reloadstats/internal/dataset"
	"github.com/Sumatoshi-tech/reloadstats/internal/observability"
	"github.com/Sumatoshi-tech/reloadstats/internal/plotpage"
)

// outcome is what every template produces for the output stage.
type outcome struct {
	value  any
	report func(*analysis.Reporter) error
	chart  func() *chart.Canvas
	page   func(plotpage.Theme) *plotpage.Page
}

type template struct {
	use     string
	short   string
	example string
	run     func(*dataset.Dataset, analysis.Options) (outcome, error)
}

var templates = []template{
	{
		use:     "two-load",
		short:   "Compare two loads (Load, Velocity columns)",
		example: dataset.ExampleTwoLoad,
		run: func(ds *dataset.Dataset, opts analysis.Options) (outcome, error) {
			res, err := analysis.TwoLoad(ds, opts)
			if err != nil {
				return outcome{}, err
			}

			return outcome{
				value:  res,
				report: func(r *analysis.Reporter) error { return r.TwoLoad(res) },
				chart:  func() *chart.Canvas { return analysis.TwoLoadChart(res) },
				page:   func(th plotpage.Theme) *plotpage.Page { return analysis.TwoLoadPage(res, th) },
			}, nil
		},
	},
	{
		use:     "ladder",
		short:   "Analyze a charge weight ladder (Charge, Velocity columns)",
		example: dataset.ExampleLadder,
		run: func(ds *dataset.Dataset, opts analysis.Options) (outcome, error) {
			res, err := analysis.Ladder(ds, opts)
			if err != nil {
				return outcome{}, err
			}

			return outcome{
				value:  res,
				report: func(r *analysis.Reporter) error { return r.Ladder(res) },
				chart:  func() *chart.Canvas { return analysis.LadderChart(res) },
				page:   func(th plotpage.Theme) *plotpage.Page { return analysis.LadderPage(res, th) },
			}, nil
		},
	},
	{
		use:     "before-after",
		short:   "Test a single modification (Condition, Velocity columns)",
		example: dataset.ExampleBeforeAfter,
		run: func(ds *dataset.Dataset, opts analysis.Options) (outcome, error) {
			res, err := analysis.BeforeAfter(ds, opts)
			if err != nil {
				return outcome{}, err
			}

			return outcome{
				value:  res,
				report: func(r *analysis.Reporter) error { return r.BeforeAfter(res) },
				chart:  func() *chart.Canvas { return analysis.BeforeAfterChart(res) },
				page:   func(th plotpage.Theme) *plotpage.Page { return analysis.BeforeAfterPage(res, th) },
			}, nil
		},
	},
	{
		use:     "primer",
		short:   "Compare two primers (Primer, Velocity_FPS columns)",
		example: dataset.ExamplePrimer,
		run: func(ds *dataset.Dataset, opts analysis.Options) (outcome, error) {
			res, err := analysis.Primer(ds, opts)
			if err != nil {
				return outcome{}, err
			}

			return outcome{
				value:  res,
				report: func(r *analysis.Reporter) error { return r.Primer(res) },
				chart:  func() *chart.Canvas { return analysis.TwoLoadChart(res) },
				page:   func(th plotpage.Theme) *plotpage.Page { return analysis.TwoLoadPage(res, th) },
			}, nil
		},
	},
}

type analyzeFlags struct {
	input  string
	format string
	png    string
	html   string
	theme  string
}

func newAnalyzeCommand(a *app) *cobra.Command {
	var flags analyzeFlags

	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Run an analysis template on chronograph data",
		Long: `Run an analysis template on a CSV of shots. Without --input the built-in
example dataset of the template is used.`,
	}

	pf := cmd.PersistentFlags()
	pf.StringVarP(&flags.input, "input", "i", "", "CSV file (default: built-in example)")
	pf.StringVarP(&flags.format, "format", "f", string(analysis.FormatText), "output format: text, json, or yaml")
	pf.StringVar(&flags.png, "png", "", "write the multi-panel chart to this PNG file")
	pf.StringVar(&flags.html, "html", "", "write an interactive HTML report to this file")
	pf.StringVar(&flags.theme, "theme", string(plotpage.ThemeDark), "HTML theme: dark or light")

	for _, tmpl := range templates {
		cmd.AddCommand(newTemplateCommand(a, tmpl, &flags))
	}

	return cmd
}

func newTemplateCommand(a *app, tmpl template, flags *analyzeFlags) *cobra.Command {
	return &cobra.Command{
		Use:   tmpl.use,
		Short: tmpl.short,
		Args:  cobra.NoArgs,
		RunE: a.run(func(ctx context.Context, cmd *cobra.Command, _ []string) error {
			format, err := analysis.ParseFormat(flags.format)
			if err != nil {
				return err
			}

			ds, err := loadDataset(flags.input, tmpl.example)
			if err != nil {
				return err
			}

			out, err := tmpl.run(ds, a.cfg.AnalysisOptions())
			if err != nil {
				return fmt.Errorf("analyze %s: %w", tmpl.use, err)
			}

			if format == analysis.FormatText {
				err = out.report(analysis.NewReporter(cmd.OutOrStdout(), a.useColor()))
			} else {
				err = analysis.Encode(cmd.OutOrStdout(), format, out.value)
			}

			if err != nil {
				return err
			}

			if flags.png != "" {
				err = a.writePNG(ctx, flags.png, out.chart())
				if err != nil {
					return err
				}
			}

			if flags.html != "" {
				return a.writeHTML(ctx, flags.html, out.page(plotpage.ParseTheme(flags.theme)))
			}

			return nil
		}),
	}
}

func loadDataset(input, example string) (*dataset.Dataset, error) {
	if input == "" {
		return dataset.Example(example)
	}

	ds, err := dataset.LoadFile(input, dataset.Columns{})
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", filepath.Base(input), err)
	}

	return ds, nil
}

func (a *app) writePNG(ctx context.Context, path string, canvas *chart.Canvas) error {
	start := time.Now()
	n, err := canvas.Save(path, a.cfg.Figures.DPI)
	a.metrics.RecordArtifact(ctx, observability.KindChart, time.Since(start), n, err)

	if err != nil {
		return fmt.Errorf("save chart: %w", err)
	}

	a.logger.InfoContext(ctx, "chart saved", "file", path, "size", sizeOf(n))

	return nil
}

func (a *app) writeHTML(ctx context.Context, path string, page *plotpage.Page) error {
	start := time.Now()
	err := analysis.WriteHTML(path, page)
	a.metrics.RecordArtifact(ctx, observability.KindPage, time.Since(start), fileSize(path), err)

	if err != nil {
		return err
	}

	a.logger.InfoContext(ctx, "report saved", "file", path)

	return nil
}
