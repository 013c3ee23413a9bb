package chart

import (
	"bytes"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testDPI = 24

func TestEdges(t *testing.T) {
	t.Parallel()

	assert.InDeltaSlice(t, []float64{0, 2.5, 5, 7.5, 10}, Edges(0, 10, 4), 1e-9)
	assert.Nil(t, Edges(0, 10, 0))
	assert.Len(t, Edges(3, 3, 2), 3, "degenerate range is widened")

	shared := EdgesFor(5, []float64{2, 4}, []float64{1, 9}, nil)
	assert.InDelta(t, 1, shared[0], 1e-9)
	assert.InDelta(t, 9, shared[len(shared)-1], 1e-9)

	assert.Len(t, EdgesFor(3), 4)
}

func TestBinIndex(t *testing.T) {
	t.Parallel()

	edges := []float64{0, 1, 2, 3}

	tests := []struct {
		v    float64
		want int
	}{
		{v: -0.1, want: -1},
		{v: 0, want: 0},
		{v: 0.99, want: 0},
		{v: 1, want: 1},
		{v: 3, want: 2},
		{v: 3.01, want: -1},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, binIndex(edges, tt.v), "v=%v", tt.v)
	}
}

func TestFade(t *testing.T) {
	t.Parallel()

	assert.Equal(t, uint8(127), Fade(SteelBlue, 0.5).A)
	assert.Equal(t, uint8(0), Fade(SteelBlue, -1).A)
	assert.Equal(t, SteelBlue, Fade(SteelBlue, 2))
	assert.Equal(t, Series[1], SeriesColor(len(Series)+1))
}

func TestPlotRecordsFirstError(t *testing.T) {
	t.Parallel()

	p := New("t", "x", "y").
		Hist([]float64{1, 2}, nil, SteelBlue, "").
		Line([]float64{1, 2}, []float64{3, 4}, Coral, "line")

	require.ErrorIs(t, p.Err(), ErrNoBins)

	c := Single(p, 4, 3)
	_, err := c.Render(&bytes.Buffer{}, testDPI)
	require.ErrorIs(t, err, ErrNoBins)
}

func TestCanvasRender(t *testing.T) {
	t.Parallel()

	c := NewCanvas("Overview", 2, 2, 6, 4)
	c.Footer = "Key insight\nsecond line"
	values := []float64{1, 2, 2, 3, 3, 3, 4, 4, 5}

	c.Set(0, 0, New("Histogram", "fps", "count").Hist(values, EdgesFor(5, values), SteelBlue, "shots"))
	c.Set(0, 1, New("Lines", "n", "SD").
		LinePoints([]float64{5, 10, 20}, []float64{12, 14, 15}, Coral, "sd").
		HLine(15, Gray, true, "true").
		VLine(10, 0, 20, Red, false, "").
		Band(0, 25, 13, 17, Fade(LightGreen, 0.3), "band"))
	c.Set(1, 0, New("Target", "x", "y").
		Scatter([]float64{0, 0.5, -0.3}, []float64{0.2, -0.1, 0.4}, DarkBlue, 0, "").
		Circle(0, 0, 0.5, Green, true, "MR").
		ErrorBars([]float64{1}, []float64{0}, []float64{0.3}, Purple, "mean ± CI").
		BoxPlots([][]float64{values, {2, 3, 4}, nil}, []color.Color{SteelBlue}))
	c.At(1, 1).
		Node(0.5, 0.7, 0.4, 0.2, LightBlue, "Start").
		Arrow(0.5, 0.6, 0.5, 0.3, Black).
		Bars([]float64{1, 2}, []color.Color{Coral, SteelBlue}, 0).
		StackedBars([]float64{1, 2}, []float64{0.5, 0.5}, Green, Orange, "low", "high").
		Func(func(x float64) float64 { return x * x }, 0, 1, Orange, "x²").
		XRange(-0.1, 1.1).
		YRange(-0.1, 1.1)

	var buf bytes.Buffer

	n, err := c.Render(&buf, testDPI)
	require.NoError(t, err)
	assert.Equal(t, int64(buf.Len()), n)

	img, err := png.Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, 6*testDPI, img.Bounds().Dx())
	assert.Equal(t, 4*testDPI, img.Bounds().Dy())
}

func TestCountsAndPeak(t *testing.T) {
	t.Parallel()

	edges := []float64{0, 1, 2}

	assert.Equal(t, []float64{2, 3}, Counts([]float64{0.1, 0.5, 1, 1.5, 2, 7}, edges))
	assert.InDelta(t, 3, PeakCount([]float64{0.1, 0.5, 1, 1.5, 2}, edges), 1e-12)
	assert.Nil(t, Counts([]float64{1}, nil))
}

func TestLayoutRowsMayDiffer(t *testing.T) {
	t.Parallel()

	c := NewLayout("Uneven\nTwo lines", 6, 4, 3, 1)
	require.Len(t, c.Panels, 2)
	assert.Len(t, c.Panels[0], 3)
	assert.Len(t, c.Panels[1], 1)

	c.At(1, 0).Line([]float64{0, 1}, []float64{1, 0}, Coral, "")

	var buf bytes.Buffer

	_, err := c.Render(&buf, testDPI)
	require.NoError(t, err)
	assert.Positive(t, buf.Len())
}

func TestCanvasRenderErrors(t *testing.T) {
	t.Parallel()

	_, err := NewCanvas("", 1, 1, 2, 2).Render(&bytes.Buffer{}, 0)
	require.ErrorIs(t, err, ErrBadDPI)

	_, err = (&Canvas{}).Render(&bytes.Buffer{}, testDPI)
	require.ErrorIs(t, err, ErrEmptyCanvas)
}

func TestCanvasSave(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "nested", "figure.png")
	c := Single(New("Save", "", "").Line([]float64{0, 1}, []float64{0, 1}, SteelBlue, ""), 3, 2)

	n, err := c.Save(path, testDPI)
	require.NoError(t, err)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, n, info.Size())
}
