package analysis

import (
	"fmt"
	"image/color"

	"github.com/Sumatoshi-tech/reloadstats/internal/chart"
	"github.com/Sumatoshi-tech/reloadstats/pkg/shotgroup"
)

const (
	chartBins    = 10
	jitterSeed   = 42
	jitterSD     = 0.04
	pointRadius  = 3
	chartWidthIn = 14
)

// jittered spreads n points horizontally around x so overlapping shots stay visible.
func jittered(x float64, n int, seed uint64) []float64 {
	return shotgroup.NormalSample(shotgroup.NewRand(seed), n, x, jitterSD)
}

func shotAxis(s Summary) []float64 {
	xs := make([]float64, len(s.Velocities))

	for i := range xs {
		if i < len(s.Shots) {
			xs[i] = float64(s.Shots[i])
		} else {
			xs[i] = float64(i + 1)
		}
	}

	return xs
}

// pairPanels draws the histogram overlay and the box plot shared by the
// two-group templates.
func pairPanels(a, b Summary, ca, cb color.NRGBA) (hist, box *chart.Plot) {
	edges := chart.EdgesFor(chartBins, a.Velocities, b.Velocities)

	hist = chart.New("Velocity distribution", "Velocity (fps)", "Shots").
		Hist(a.Velocities, edges, chart.Fade(ca, 0.6), a.Label).
		Hist(b.Velocities, edges, chart.Fade(cb, 0.6), b.Label).
		LegendTop()

	box = chart.New("Spread comparison", "", "Velocity (fps)").
		BoxPlots([][]float64{a.Velocities, b.Velocities}, []color.Color{ca, cb}).
		Scatter(jittered(0, a.N, jitterSeed), a.Velocities, chart.Fade(ca, 0.8), pointRadius, "").
		Scatter(jittered(1, b.N, jitterSeed+1), b.Velocities, chart.Fade(cb, 0.8), pointRadius, "").
		Categories(a.Label, b.Label)

	return hist, box
}

// TwoLoadChart draws the four-panel two-load figure: overlaid histograms,
// box plots with the individual shots, means with 95% CI, and velocity over
// the shot sequence.
func TwoLoadChart(r *TwoLoadResult) *chart.Canvas {
	a, b := r.Load1, r.Load2
	hist, box := pairPanels(a, b, chart.SteelBlue, chart.Coral)

	means := chart.New("Mean velocity with 95% confidence interval", "", "Velocity (fps)").
		ErrorBars([]float64{0}, []float64{a.Mean}, []float64{a.CI95}, chart.SteelBlue, a.Label).
		ErrorBars([]float64{1}, []float64{b.Mean}, []float64{b.CI95}, chart.Coral, b.Label).
		Categories(a.Label, b.Label).
		Annotate(0.5, 0.1, fmt.Sprintf("p = %s, d = %s", formatP(r.TTest.P), formatD(r.CohensD, "%.2f")))

	sequence := chart.New("Velocity by shot", "Shot number", "Velocity (fps)").
		LinePoints(shotAxis(a), a.Velocities, chart.SteelBlue, a.Label).
		LinePoints(shotAxis(b), b.Velocities, chart.Coral, b.Label).
		HLine(a.Mean, chart.Fade(chart.SteelBlue, 0.6), true, "").
		HLine(b.Mean, chart.Fade(chart.Coral, 0.6), true, "").
		LegendTop()

	c := chart.NewCanvas(fmt.Sprintf("%s vs %s", a.Label, b.Label), 2, 2, chartWidthIn, 10)
	c.Set(0, 0, hist)
	c.Set(0, 1, box)
	c.Set(1, 0, means)
	c.Set(1, 1, sequence)
	c.Footer = r.Verdict.Headline

	return c
}

// LadderChart draws the four-panel ladder figure: mean velocity by charge
// with CI bars, SD by charge with the most consistent charge marked, box
// plots per charge, and every shot against its charge.
func LadderChart(r *LadderResult) *chart.Canvas {
	n := len(r.Rungs)
	charges := make([]float64, n)
	means := make([]float64, n)
	ci := make([]float64, n)
	sds := make([]float64, n)
	groups := make([][]float64, n)
	names := make([]string, n)

	var allX, allY []float64

	for i, rung := range r.Rungs {
		charges[i] = rung.Charge
		means[i] = rung.Mean
		ci[i] = rung.CI95
		sds[i] = rung.SD
		groups[i] = rung.Velocities
		names[i] = fmt.Sprintf("%.1f", rung.Charge)

		for _, v := range rung.Velocities {
			allX = append(allX, rung.Charge)
			allY = append(allY, v)
		}
	}

	meanPanel := chart.New("Mean velocity by charge", "Charge (gr)", "Velocity (fps)").
		Dashed(charges, means, chart.Gray, "").
		ErrorBars(charges, means, ci, chart.SteelBlue, "Mean ± 95% CI").
		Annotate(0.3, 0.9, fmt.Sprintf("Average step %.1f fps per %.1f gr", r.AvgStep, r.StepSize))

	sdPanel := chart.New("Velocity SD by charge", "Charge (gr)", "SD (fps)").
		LinePoints(charges, sds, chart.Coral, "SD").
		Scatter([]float64{r.BestCharge}, []float64{r.BestSD}, chart.Gold, pointRadius+4,
			fmt.Sprintf("Most consistent: %.1f gr", r.BestCharge)).
		LegendTop()

	boxes := chart.New("Spread per charge", "Charge (gr)", "Velocity (fps)").
		BoxPlots(groups, []color.Color{chart.LightBlue}).
		Categories(names...)

	scatter := chart.New("All shots", "Charge (gr)", "Velocity (fps)").
		Scatter(allX, allY, chart.Fade(chart.SteelBlue, 0.6), pointRadius, "")

	c := chart.NewCanvas("Charge Weight Ladder", 2, 2, chartWidthIn, 10)
	c.Set(0, 0, meanPanel)
	c.Set(0, 1, sdPanel)
	c.Set(1, 0, boxes)
	c.Set(1, 1, scatter)

	if r.SmallSample {
		c.Footer = fmt.Sprintf("Warning: some charges have fewer than %d shots; SD differences may be noise.", r.MinShotsWarning)
	}

	return c
}

// BeforeAfterChart draws the four-panel modification figure: histograms,
// box plots, velocity over time, and the change in mean and SD.
func BeforeAfterChart(r *BeforeAfterResult) *chart.Canvas {
	hist, box := pairPanels(r.Before, r.After, chart.Gray, chart.LightGreen)

	beforeX := shotAxis(r.Before)
	afterX := make([]float64, r.After.N)

	for i := range afterX {
		afterX[i] = float64(r.Before.N + i + 1)
	}

	timeline := chart.New("Velocity over time", "Shot", "Velocity (fps)").
		LinePoints(beforeX, r.Before.Velocities, chart.Gray, r.Before.Label).
		LinePoints(afterX, r.After.Velocities, chart.Green, r.After.Label).
		VLine(float64(r.Before.N)+0.5, min(r.Before.Min, r.After.Min), max(r.Before.Max, r.After.Max), chart.Black, true, "").
		LegendTop()

	changeColor := func(v float64) color.Color {
		if v < 0 {
			return chart.Coral
		}

		return chart.SteelBlue
	}

	changes := chart.New("Change after modification", "", "fps").
		Bars([]float64{r.MeanChange, r.SDChange}, []color.Color{changeColor(r.MeanChange), changeColor(r.SDChange)}, 0).
		HLine(0, chart.Black, false, "").
		Categories("Mean change", "SD change").
		Annotate(0.5, 0.9, "p = "+formatP(r.TTest.P))

	c := chart.NewCanvas("Before / After Modification", 2, 2, chartWidthIn, 10)
	c.Set(0, 0, hist)
	c.Set(0, 1, box)
	c.Set(1, 0, timeline)
	c.Set(1, 1, changes)
	c.Footer = r.Verdict.Headline

	return c
}
