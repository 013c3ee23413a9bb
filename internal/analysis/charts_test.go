package analysis

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sumatoshi-tech/reloadstats/internal/chart"
	"github.com/Sumatoshi-tech/reloadstats/internal/dataset"
	"github.com/Sumatoshi-tech/reloadstats/internal/plotpage"
)

const chartTestDPI = 20

func TestCharts_Render(t *testing.T) {
	t.Parallel()

	two, err := TwoLoad(dataset.MustExample(dataset.ExampleTwoLoad), DefaultOptions())
	require.NoError(t, err)

	ladder, err := Ladder(dataset.MustExample(dataset.ExampleLadder), DefaultOptions())
	require.NoError(t, err)

	ba, err := BeforeAfter(dataset.MustExample(dataset.ExampleBeforeAfter), DefaultOptions())
	require.NoError(t, err)

	tests := []struct {
		name   string
		canvas *chart.Canvas
		footer string
	}{
		{name: "two_load", canvas: TwoLoadChart(two), footer: two.Verdict.Headline},
		{name: "ladder", canvas: LadderChart(ladder), footer: "fewer than 20 shots"},
		{name: "before_after", canvas: BeforeAfterChart(ba), footer: ba.Verdict.Headline},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			require.NoError(t, tt.canvas.Err())
			assert.Contains(t, tt.canvas.Footer, tt.footer)

			var buf bytes.Buffer

			n, renderErr := tt.canvas.Render(&buf, chartTestDPI)
			require.NoError(t, renderErr)
			assert.Equal(t, int64(buf.Len()), n)
			assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("\x89PNG")))
		})
	}
}

func TestCharts_SaveCreatesDirectories(t *testing.T) {
	t.Parallel()

	res, err := TwoLoad(dataset.MustExample(dataset.ExampleTwoLoad), DefaultOptions())
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "out", "two_load.png")

	n, err := TwoLoadChart(res).Save(path, chartTestDPI)
	require.NoError(t, err)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, n, info.Size())
}

func TestPages(t *testing.T) {
	t.Parallel()

	two, err := TwoLoad(dataset.MustExample(dataset.ExampleTwoLoad), DefaultOptions())
	require.NoError(t, err)

	ladder, err := Ladder(dataset.MustExample(dataset.ExampleLadder), DefaultOptions())
	require.NoError(t, err)

	ba, err := BeforeAfter(dataset.MustExample(dataset.ExampleBeforeAfter), DefaultOptions())
	require.NoError(t, err)

	tests := []struct {
		name     string
		page     *plotpage.Page
		sections int
		want     []string
	}{
		{
			name:     "two_load",
			page:     TwoLoadPage(two, plotpage.ThemeDark),
			sections: 4,
			want:     []string{"CCI vs Federal", two.Verdict.Headline, "Mean difference"},
		},
		{
			name:     "ladder",
			page:     LadderPage(ladder, plotpage.ThemeLight),
			sections: 5,
			want:     []string{"Most consistent charge: 41.0 gr", "fewer than 20 shots"},
		},
		{
			name:     "before_after",
			page:     BeforeAfterPage(ba, plotpage.ThemeDark),
			sections: 4,
			want:     []string{"p = 0.2546", ba.Verdict.Headline},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			require.Len(t, tt.page.Sections, tt.sections)

			path := filepath.Join(t.TempDir(), "report", tt.name+".html")
			require.NoError(t, WriteHTML(path, tt.page))

			raw, readErr := os.ReadFile(path)
			require.NoError(t, readErr)

			html := string(raw)
			assert.True(t, strings.HasPrefix(html, "<!DOCTYPE html>"))

			for _, w := range tt.want {
				assert.Contains(t, html, w)
			}
		})
	}
}
