package plotpage

import (
	"fmt"
	"io"
	"math"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/Sumatoshi-tech/reloadstats/pkg/alg/stats"
)

// BarSeries is one series of a category bar chart.
type BarSeries struct {
	Name  string
	Data  []float64
	Color string // Optional, uses theme if empty.
	Stack string // Optional, stack grouping.
}

// LineSeries is one series of a line chart. With a numeric x axis, X holds
// the abscissa of each point.
type LineSeries struct {
	Name   string
	X      []float64
	Data   []float64
	Color  string
	Dashed bool
}

// ScatterSeries is one series of (x, y) points.
type ScatterSeries struct {
	Name       string
	X          []float64
	Y          []float64
	Color      string
	SymbolSize int
}

// BoxSeries is one box of a box plot: the raw values it summarises.
type BoxSeries struct {
	Label  string
	Values []float64
}

// round keeps chart JSON short; chronograph data has at most 0.1 fps resolution.
func round(v float64) float64 {
	const places = 1e3

	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}

	return math.Round(v*places) / places
}

// BuildBarChart constructs a themed category bar chart. A nil cOpts uses
// DefaultChartOpts.
func BuildBarChart(cOpts *ChartOpts, labels []string, series []BarSeries, yAxisLabel string) *charts.Bar {
	cOpts = orDefault(cOpts)

	bar := charts.NewBar()
	bar.SetGlobalOptions(cOpts.frame("axis", cOpts.categoryAxis(), cOpts.valueAxis(yAxisLabel, false))...)
	bar.SetXAxis(labels)

	for _, s := range series {
		barData := make([]opts.BarData, len(s.Data))
		for i, v := range s.Data {
			barData[i] = opts.BarData{Value: round(v)}
		}

		var seriesOpts []charts.SeriesOpts
		if s.Color != "" {
			seriesOpts = append(seriesOpts, charts.WithItemStyleOpts(opts.ItemStyle{Color: s.Color}))
		}

		if s.Stack != "" {
			seriesOpts = append(seriesOpts, charts.WithBarChartOpts(opts.BarChart{Stack: s.Stack}))
		}

		bar.AddSeries(s.Name, barData, seriesOpts...)
	}

	return bar
}

// BuildLineChart constructs a line chart over category labels.
func BuildLineChart(cOpts *ChartOpts, labels []string, series []LineSeries, yAxisLabel string) *charts.Line {
	cOpts = orDefault(cOpts)

	line := charts.NewLine()
	line.SetGlobalOptions(cOpts.frame("axis", cOpts.categoryAxis(), cOpts.valueAxis(yAxisLabel, true))...)
	line.SetXAxis(labels)

	for _, s := range series {
		lineData := make([]opts.LineData, len(s.Data))
		for i, v := range s.Data {
			lineData[i] = opts.LineData{Value: round(v)}
		}

		line.AddSeries(s.Name, lineData, lineSeriesOpts(s)...)
	}

	return line
}

// BuildXYLineChart constructs a line chart on a numeric x axis with zoom.
func BuildXYLineChart(cOpts *ChartOpts, series []LineSeries, xAxisLabel, yAxisLabel string) *charts.Line {
	cOpts = orDefault(cOpts)

	line := charts.NewLine()
	line.SetGlobalOptions(cOpts.frame("axis", cOpts.numericAxis(xAxisLabel), cOpts.valueAxis(yAxisLabel, true))...)
	line.SetGlobalOptions(zoom())

	for _, s := range series {
		lineData := make([]opts.LineData, len(s.Data))
		for i, v := range s.Data {
			lineData[i] = opts.LineData{Value: []float64{round(s.X[i]), round(v)}}
		}

		line.AddSeries(s.Name, lineData, lineSeriesOpts(s)...)
	}

	return line
}

func lineSeriesOpts(s LineSeries) []charts.SeriesOpts {
	style := opts.LineStyle{Color: s.Color}
	if s.Dashed {
		style.Type = "dashed"
	}

	seriesOpts := []charts.SeriesOpts{charts.WithLineStyleOpts(style)}
	if s.Color != "" {
		seriesOpts = append(seriesOpts, charts.WithItemStyleOpts(opts.ItemStyle{Color: s.Color}))
	}

	return seriesOpts
}

// BuildScatterChart constructs a scatter chart on numeric axes.
func BuildScatterChart(cOpts *ChartOpts, series []ScatterSeries, xAxisLabel, yAxisLabel string) *charts.Scatter {
	cOpts = orDefault(cOpts)

	scatter := charts.NewScatter()
	scatter.SetGlobalOptions(cOpts.frame("item", cOpts.numericAxis(xAxisLabel), cOpts.valueAxis(yAxisLabel, true))...)

	for _, s := range series {
		size := s.SymbolSize
		if size == 0 {
			size = 8
		}

		points := make([]opts.ScatterData, len(s.X))
		for i := range s.X {
			points[i] = opts.ScatterData{Value: []float64{round(s.X[i]), round(s.Y[i])}, SymbolSize: size}
		}

		var seriesOpts []charts.SeriesOpts
		if s.Color != "" {
			seriesOpts = append(seriesOpts, charts.WithItemStyleOpts(opts.ItemStyle{Color: s.Color}))
		}

		scatter.AddSeries(s.Name, points, seriesOpts...)
	}

	return scatter
}

// FiveNumber returns min, lower quartile, median, upper quartile, and max.
func FiveNumber(values []float64) []float64 {
	return []float64{
		round(stats.Min(values)),
		round(stats.Percentile(values, 0.25)),
		round(stats.Median(values)),
		round(stats.Percentile(values, 0.75)),
		round(stats.Max(values)),
	}
}

// BuildBoxPlot constructs a box plot with one box per series.
func BuildBoxPlot(cOpts *ChartOpts, name string, boxes []BoxSeries, yAxisLabel string) *charts.BoxPlot {
	cOpts = orDefault(cOpts)

	box := charts.NewBoxPlot()
	box.SetGlobalOptions(cOpts.frame("item", cOpts.categoryAxis(), cOpts.valueAxis(yAxisLabel, true))...)

	labels := make([]string, len(boxes))
	data := make([]opts.BoxPlotData, len(boxes))

	for i, b := range boxes {
		labels[i] = b.Label
		data[i] = opts.BoxPlotData{Name: b.Label, Value: FiveNumber(b.Values)}
	}

	box.SetXAxis(labels)
	box.AddSeries(name, data)

	return box
}

// Table is a Renderable HTML table for summary statistics.
type Table struct {
	Headers []string
	Rows    [][]string
	Striped bool
}

// Render writes the table fragment.
func (t Table) Render(w io.Writer) error {
	err := layout.ExecuteTemplate(w, "table", t)
	if err != nil {
		return fmt.Errorf("render table: %w", err)
	}

	return nil
}
