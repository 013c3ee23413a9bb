package plotpage

import (
	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
)

// ChartOpts carries the colours and size shared by every chart on a page.
type ChartOpts struct {
	colors ThemeConfig
	width  string
	height string
}

// NewChartOpts creates ChartOpts for a theme and style.
func NewChartOpts(theme Theme, style Style) *ChartOpts {
	return &ChartOpts{colors: GetThemeConfig(theme), width: style.Width, height: style.Height}
}

// DefaultChartOpts returns options for the dark theme and default style.
func DefaultChartOpts() *ChartOpts {
	return NewChartOpts(ThemeDark, DefaultStyle())
}

func orDefault(c *ChartOpts) *ChartOpts {
	if c == nil {
		return DefaultChartOpts()
	}

	return c
}

// frame returns the global options of a chart with one x and one y axis.
// trigger is "axis" for category-aligned tooltips and "item" otherwise.
func (c *ChartOpts) frame(trigger string, x opts.XAxis, y opts.YAxis) []charts.GlobalOpts {
	muted := &opts.TextStyle{Color: c.colors.ChartTextMuted}

	return []charts.GlobalOpts{
		charts.WithInitializationOpts(opts.Initialization{
			Width:           c.width,
			Height:          c.height,
			BackgroundColor: c.colors.ChartBackground,
			Theme:           c.colors.EChartsTheme,
		}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: trigger}),
		charts.WithGridOpts(opts.Grid{Top: "15%", Bottom: "12%", Left: "5%", Right: "5%", ContainLabel: opts.Bool(true)}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true), Type: "scroll", Top: "0", Left: "center", TextStyle: muted}),
		charts.WithXAxisOpts(x),
		charts.WithYAxisOpts(y),
	}
}

func (c *ChartOpts) labels() *opts.AxisLabel {
	return &opts.AxisLabel{Color: c.colors.ChartTextMuted}
}

func (c *ChartOpts) baseline() *opts.AxisLine {
	return &opts.AxisLine{LineStyle: &opts.LineStyle{Color: c.colors.ChartAxis}}
}

func (c *ChartOpts) categoryAxis() opts.XAxis {
	return opts.XAxis{Type: "category", AxisLabel: c.labels(), AxisLine: c.baseline()}
}

// numericAxis does not force zero into range: velocities sit near 2800 fps.
func (c *ChartOpts) numericAxis(name string) opts.XAxis {
	return opts.XAxis{
		Name:      name,
		Type:      "value",
		Scale:     opts.Bool(true),
		AxisLabel: c.labels(),
		AxisLine:  c.baseline(),
		SplitLine: &opts.SplitLine{Show: opts.Bool(false)},
	}
}

func (c *ChartOpts) valueAxis(name string, scale bool) opts.YAxis {
	return opts.YAxis{
		Name:      name,
		Type:      "value",
		Scale:     opts.Bool(scale),
		AxisLabel: c.labels(),
		AxisLine:  c.baseline(),
		SplitLine: &opts.SplitLine{Show: opts.Bool(true), LineStyle: &opts.LineStyle{Color: c.colors.ChartGrid}},
	}
}

func zoom() charts.GlobalOpts {
	return charts.WithDataZoomOpts(
		opts.DataZoom{Type: "slider", Start: 0, End: 100},
		opts.DataZoom{Type: "inside"},
	)
}
