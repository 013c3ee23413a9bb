package figures

import (
	"fmt"
	"image/color"
	"math/rand/v2"

	"gonum.org/v1/plot/vg/draw"

	"github.com/Sumatoshi-tech/reloadstats/internal/chart"
	"github.com/Sumatoshi-tech/reloadstats/pkg/alg/stats"
	"github.com/Sumatoshi-tech/reloadstats/pkg/shotgroup"
)

const (
	histBins       = 40
	markerRadius   = 4
	centroidRadius = 7
	crossHalf      = 0.2
)

// sampleSDs draws trials strings of n shots from N(mean, sd) and returns each
// string's sample standard deviation.
func sampleSDs(rng *rand.Rand, trials, n int, mean, sd float64) []float64 {
	out := make([]float64, trials)

	for i := range out {
		out[i] = stats.StdDev(shotgroup.NormalSample(rng, n, mean, sd))
	}

	return out
}

// rings draws concentric target rings.
func rings(p *chart.Plot, c color.Color, dashed bool, radii ...float64) {
	for _, r := range radii {
		p.Circle(0, 0, r, c, dashed, "")
	}
}

// aimPoint draws a red cross at (x, y).
func aimPoint(p *chart.Plot, x, y float64, label string) {
	p.Thick([]float64{x - crossHalf, x + crossHalf}, []float64{y, y}, chart.Red, 3, label)
	p.Thick([]float64{x, x}, []float64{y - crossHalf, y + crossHalf}, chart.Red, 3, "")
}

// groupTarget plots a group with its centroid star.
func groupTarget(p *chart.Plot, g shotgroup.Group, c color.NRGBA, label string) shotgroup.Point {
	center := g.Centroid()
	p.Scatter(g.Xs(), g.Ys(), chart.Fade(c, 0.75), markerRadius, label)
	p.Markers([]float64{center.X}, []float64{center.Y}, chart.Black, centroidRadius, draw.PyramidGlyph{}, "Group center")

	return center
}

// seq returns [start, start+1, ..., start+n-1].
func seq(start, n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = float64(start + i)
	}

	return out
}

// ints converts to float64 slices.
func ints(values ...int) []float64 {
	out := make([]float64, len(values))
	for i, v := range values {
		out[i] = float64(v)
	}

	return out
}

func repeat(v float64, n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = v
	}

	return out
}

func pct(v float64) string {
	return fmt.Sprintf("%.0f%%", 100*v)
}

func argMin(values []float64) int {
	best := 0

	for i, v := range values {
		if v < values[best] {
			best = i
		}
	}

	return best
}

// jitter spreads n points around x for strip plots.
func jitter(rng *rand.Rand, x float64, n int) []float64 {
	return shotgroup.NormalSample(rng, n, x, 0.04)
}
