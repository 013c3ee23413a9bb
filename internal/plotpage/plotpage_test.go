package plotpage_test

import (
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sumatoshi-tech/reloadstats/internal/plotpage"
)

func TestBuildBarChart(t *testing.T) {
	t.Parallel()

	series := []plotpage.BarSeries{
		{Name: "Mean change", Data: []float64{-1.4, 0.2}, Color: "#ff0000"},
		{Name: "Other", Data: []float64{3, 4}, Stack: "s"},
	}

	chart := plotpage.BuildBarChart(nil, []string{"Mean", "SD"}, series, "fps")
	require.NotNil(t, chart)
	require.Len(t, chart.MultiSeries, 2)
	assert.Equal(t, "Mean change", chart.MultiSeries[0].Name)
	assert.Equal(t, "Other", chart.MultiSeries[1].Name)
}

func TestBuildLineCharts(t *testing.T) {
	t.Parallel()

	cat := plotpage.BuildLineChart(plotpage.DefaultChartOpts(), []string{"41.0", "41.5"},
		[]plotpage.LineSeries{{Name: "SD", Data: []float64{9.5, 8.2}, Dashed: true}}, "SD (fps)")
	require.Len(t, cat.MultiSeries, 1)
	assert.Equal(t, "SD", cat.MultiSeries[0].Name)

	xy := plotpage.BuildXYLineChart(nil, []plotpage.LineSeries{
		{Name: "A", X: []float64{1, 2, 3}, Data: []float64{2850, 2851, 2849}, Color: "#4682b4"},
		{Name: "B", X: []float64{4, 5}, Data: []float64{2860, 2861}},
	}, "Shot", "Velocity (fps)")
	require.Len(t, xy.MultiSeries, 2)
}

func TestBuildScatterAndBox(t *testing.T) {
	t.Parallel()

	scatter := plotpage.BuildScatterChart(nil, []plotpage.ScatterSeries{
		{Name: "Shots", X: []float64{41, 41, 41.5}, Y: []float64{2700, 2710, 2720}},
	}, "Charge (gr)", "Velocity (fps)")
	require.Len(t, scatter.MultiSeries, 1)

	box := plotpage.BuildBoxPlot(nil, "Velocity", []plotpage.BoxSeries{
		{Label: "A", Values: []float64{1, 2, 3, 4, 5}},
		{Label: "B", Values: []float64{2, 4}},
	}, "fps")
	require.Len(t, box.MultiSeries, 1)
}

func TestFiveNumber(t *testing.T) {
	t.Parallel()

	assert.Equal(t, []float64{1, 2, 3, 4, 5}, plotpage.FiveNumber([]float64{5, 4, 3, 2, 1}))
	assert.Equal(t, []float64{0, 0, 0, 0, 0}, plotpage.FiveNumber(nil))
}

func TestParseTheme(t *testing.T) {
	t.Parallel()

	assert.Equal(t, plotpage.ThemeLight, plotpage.ParseTheme("light"))
	assert.Equal(t, plotpage.ThemeDark, plotpage.ParseTheme("dark"))
	assert.Equal(t, plotpage.ThemeDark, plotpage.ParseTheme("neon"))
	assert.NotEqual(t, plotpage.GetThemeConfig(plotpage.ThemeLight).Background,
		plotpage.GetThemeConfig(plotpage.ThemeDark).Background)
}

func TestPageRender(t *testing.T) {
	t.Parallel()

	page := plotpage.NewPage("CCI vs Federal", "Two-load comparison")
	page.Add(
		plotpage.Section{
			Title: "Summary",
			Chart: plotpage.Table{
				Headers: []string{"Load", "Mean"},
				Rows:    [][]string{{"CCI", "2851.1"}, {"Federal <BR2>", "2860.8"}},
				Striped: true,
			},
			Hint: plotpage.Hint{Title: "Verdict", Items: []string{"Clear, meaningful difference detected"}},
		},
		plotpage.Section{
			Title: "Spread",
			Chart: plotpage.BuildBoxPlot(nil, "Velocity", []plotpage.BoxSeries{{Label: "CCI", Values: []float64{1, 2, 3}}}, "fps"),
		},
	)

	var buf bytes.Buffer

	require.NoError(t, page.Render(&buf))

	html := buf.String()
	assert.True(t, strings.HasPrefix(html, "<!DOCTYPE html>"))
	assert.Contains(t, html, `class="dark"`)
	assert.Contains(t, html, "Reloadstats")
	assert.Contains(t, html, "Clear, meaningful difference detected")
	assert.Contains(t, html, "Federal &lt;BR2&gt;")
	assert.Contains(t, html, `class="echart-box"`)
	assert.Contains(t, html, `class="odd"`)
	assert.Equal(t, 1, strings.Count(html, "<!DOCTYPE"))

	buf.Reset()
	require.NoError(t, page.WithTheme(plotpage.ThemeLight).Render(&buf))
	assert.NotContains(t, buf.String(), `<html lang="en" class="dark">`)
}

type failingChart struct{}

func (failingChart) Render(io.Writer) error { return errors.New("boom") }

func TestPageRender_ChartError(t *testing.T) {
	t.Parallel()

	page := plotpage.NewPage("x", "")
	page.Add(plotpage.Section{Title: "Broken", Chart: failingChart{}})

	err := page.Render(io.Discard)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Broken")
}
