package figures

import (
	"fmt"
	"image/color"
	"math"
	"math/rand/v2"

	"github.com/dustin/go-humanize"
	"gonum.org/v1/plot/vg/draw"

	"github.com/Sumatoshi-tech/reloadstats/internal/chart"
	"github.com/Sumatoshi-tech/reloadstats/pkg/alg/stats"
	"github.com/Sumatoshi-tech/reloadstats/pkg/shotgroup"
)

func meanRadiusVsExtremeSpread(rng *rand.Rand) (*chart.Canvas, Stats) {
	const (
		sigma = 0.75
		shots = 50
		sims  = 20
	)

	trueMR := shotgroup.TheoreticalMeanRadius(sigma)
	xs := seq(2, shots-1)
	esAvg := make([]float64, len(xs))
	mrAvg := make([]float64, len(xs))

	esPanel := chart.New("Extreme Spread keeps growing", "Shots fired", "Extreme spread (MOA)")
	mrPanel := chart.New("Mean Radius settles down", "Shots fired", "Mean radius (MOA)")

	for range sims {
		g := shotgroup.Simulate(rng, shots, sigma, shotgroup.Point{})
		es := make([]float64, len(xs))
		mr := make([]float64, len(xs))

		for i := range xs {
			sub := g[:i+2]
			es[i] = sub.ExtremeSpread()
			mr[i] = sub.MeanDistanceFrom(shotgroup.Point{})
			esAvg[i] += es[i] / sims
			mrAvg[i] += mr[i] / sims
		}

		esPanel.Line(xs, es, chart.Fade(chart.Coral, 0.25), "")
		mrPanel.Line(xs, mr, chart.Fade(chart.SteelBlue, 0.25), "")
	}

	esPanel.Thick(xs, esAvg, chart.DarkRed, 3, "Average of 20 strings").LegendTop()
	mrPanel.Thick(xs, mrAvg, chart.DarkBlue, 3, "Average of 20 strings").
		HLine(trueMR, chart.Green, true, fmt.Sprintf("True MR = %.2f", trueMR)).LegendTop()

	es10, es50 := esAvg[10-2], esAvg[len(esAvg)-1]
	mrErr := 100 * math.Abs(mrAvg[len(mrAvg)-1]-trueMR) / trueMR

	esPanel.Annotate(0.7, 0.15, fmt.Sprintf("10 shots: %.2f\n50 shots: %.2f\n+%.0f%%", es10, es50, 100*(es50-es10)/es10))
	mrPanel.Annotate(0.7, 0.15, fmt.Sprintf("Error after 50 shots: %.1f%%", mrErr))

	c := chart.NewCanvas("Mean Radius Stabilizes, Extreme Spread Grows", 1, 2, 14, 6)
	c.Set(0, 0, esPanel)
	c.Set(0, 1, mrPanel)

	return c, Stats{
		"es_10":           es10,
		"es_50":           es50,
		"es_growth_pct":   100 * (es50 - es10) / es10,
		"mr_50":           mrAvg[len(mrAvg)-1],
		"true_mr":         trueMR,
		"mr_error_pct":    mrErr,
		"simulated_sigma": sigma,
	}
}

func threeShotDistribution(rng *rand.Rand) (*chart.Canvas, Stats) {
	const (
		trueMOA = 1.5
		groups  = 1000
	)

	es := shotgroup.ESValues(shotgroup.MonteCarlo(rng, groups, 3, shotgroup.SigmaForGroupSize(trueMOA)))
	edges := chart.EdgesFor(histBins, es)
	peak := chart.PeakCount(es, edges)
	mean := stats.Mean(es)
	within := stats.FractionWithin(es, 0.8*trueMOA, 1.2*trueMOA)

	p := chart.New(
		fmt.Sprintf("%s three-shot groups from one %.1f MOA rifle", humanize.Comma(groups), trueMOA),
		"Group size (MOA)", "Number of groups").
		Hist(es, edges, chart.Fade(chart.SteelBlue, 0.7), "Three-shot groups").
		VLine(trueMOA, 0, peak*1.05, chart.Red, true, fmt.Sprintf("True capability %.1f MOA", trueMOA)).
		VLine(mean, 0, peak*1.05, chart.Orange, false, fmt.Sprintf("Average %.2f MOA", mean))

	p.Annotate(0.78, 0.7, fmt.Sprintf("Best: %.2f MOA\nWorst: %.2f MOA\nWithin ±20%%: %s",
		stats.Min(es), stats.Max(es), pct(within)))

	return chart.Single(p, 12, 7), Stats{
		"best":       stats.Min(es),
		"worst":      stats.Max(es),
		"mean":       mean,
		"within_20":  within,
		"groups":     groups,
		"true_moa":   trueMOA,
		"best_ratio": stats.Max(es) / stats.Min(es),
	}
}

func fiveShotComparison(rng *rand.Rand) (*chart.Canvas, Stats) {
	const (
		trueMOA = 1.5
		groups  = 1000
	)

	sigma := shotgroup.SigmaForGroupSize(trueMOA)
	three := shotgroup.ESValues(shotgroup.MonteCarlo(rng, groups, 3, sigma))
	five := shotgroup.ESValues(shotgroup.MonteCarlo(rng, groups, 5, sigma))
	edges := chart.EdgesFor(histBins, three, five)

	sd3, sd5 := stats.PopulationStdDev(three), stats.PopulationStdDev(five)
	lessVariable := 100 * (sd3 - sd5) / sd3

	c := chart.NewCanvas("3-Shot vs 5-Shot Groups From the Same Rifle", 1, 2, 14, 6)

	c.Set(0, 0, chart.New("Group size distributions", "Group size (MOA)", "Number of groups").
		Hist(three, edges, chart.Fade(chart.Coral, 0.6), fmt.Sprintf("3-shot (SD %.2f)", sd3)).
		Hist(five, edges, chart.Fade(chart.SteelBlue, 0.6), fmt.Sprintf("5-shot (SD %.2f)", sd5)))

	spread := chart.New("Spread of measured group sizes", "", "Group size (MOA)").
		BoxPlots([][]float64{three, five}, []color.Color{chart.Coral, chart.SteelBlue}).
		Categories("3-shot", "5-shot")
	spread.Annotate(0.5, 0.92, fmt.Sprintf("5-shot groups are %.0f%% less variable", lessVariable))
	c.Set(0, 1, spread)

	return c, Stats{
		"mean_3":            stats.Mean(three),
		"mean_5":            stats.Mean(five),
		"std_3":             sd3,
		"std_5":             sd5,
		"less_variable_pct": lessVariable,
	}
}

func whichLoadBetter(rng *rand.Rand) (*chart.Canvas, Stats) {
	const (
		trueMOA = 1.2
		shots   = 5
		limit   = 3
	)

	sigma := shotgroup.SigmaForGroupSize(trueMOA)
	names := []string{"A", "B", "C"}
	colors := []color.NRGBA{chart.SteelBlue, chart.Coral, chart.Green}
	sizes := make([]float64, len(names))

	c := chart.NewCanvas("", 1, len(names), 15, 5.5)

	for i, name := range names {
		g := shotgroup.Simulate(rng, shots, sigma, shotgroup.Point{})
		sizes[i] = g.ExtremeSpread()

		p := chart.New(fmt.Sprintf("Load %s: %.2f MOA", name, sizes[i]), "Windage (MOA)", "Elevation (MOA)").
			XRange(-limit, limit).YRange(-limit, limit)
		rings(p, chart.Gray, true, 1, 2)
		aimPoint(p, 0, 0, "")
		p.Scatter(g.Xs(), g.Ys(), colors[i], markerRadius+1, "")
		c.Set(0, i, p)
	}

	c.Title = fmt.Sprintf("Same load, same rifle: range %.2f MOA, mean %.2f, std %.2f",
		stats.ExtremeSpread(sizes), stats.Mean(sizes), stats.StdDev(sizes))

	return c, Stats{
		"load_a":   sizes[0],
		"load_b":   sizes[1],
		"load_c":   sizes[2],
		"range":    stats.ExtremeSpread(sizes),
		"true_moa": trueMOA,
	}
}

func esVsMRComparison(rng *rand.Rand) (*chart.Canvas, Stats) {
	const (
		trueMOA = 1.0
		trials  = 200
		maxN    = 100
	)

	sigma := shotgroup.SigmaForGroupSize(trueMOA)
	ns := seq(3, maxN-2)
	es := make([]float64, len(ns))
	mr := make([]float64, len(ns))

	for i, n := range ns {
		t := shotgroup.MonteCarlo(rng, trials, int(n), sigma)
		es[i] = stats.Mean(shotgroup.ESValues(t))
		mr[i] = stats.Mean(shotgroup.MRValues(t))
	}

	var markX, markES, markMR []float64

	for i, n := range ns {
		if int(n)%5 == 0 {
			markX = append(markX, n)
			markES = append(markES, es[i])
			markMR = append(markMR, mr[i])
		}
	}

	top := stats.Max(es) * 1.1

	p := chart.New("Average over 200 groups at each size", "Shots per group", "MOA").
		Band(20, maxN, 0, top, chart.Fade(chart.LightGreen, 0.25), "MR reliable zone").
		Thick(ns, es, chart.Red, 2.5, "Extreme spread").
		Scatter(markX, markES, chart.Red, markerRadius, "").
		Thick(ns, mr, chart.SteelBlue, 2.5, "Mean radius").
		Scatter(markX, markMR, chart.SteelBlue, markerRadius, "").
		HLine(trueMOA, chart.Gray, true, "Nominal 1.0 MOA").
		YRange(0, top).LegendTop()

	es5, es100, mr100 := es[5-3], es[len(es)-1], mr[len(mr)-1]
	p.Annotate(0.72, 0.35, fmt.Sprintf("ES 5 shots: %.2f\nES 100 shots: %.2f (+%.0f%%)\nMR 100 shots: %.2f",
		es5, es100, 100*(es100-es5)/es5, mr100))

	c := chart.Single(p, 12, 7)
	c.Title = "ES Grows Forever, MR Stabilizes"

	return c, Stats{"es_5": es5, "es_100": es100, "mr_100": mr100, "mr_5": mr[5-3]}
}

func bestGroupBias(rng *rand.Rand) (*chart.Canvas, Stats) {
	const (
		trueMOA = 1.5
		sets    = 1000
		perSet  = 10
	)

	sigma := shotgroup.SigmaForGroupSize(trueMOA)
	best := make([]float64, sets)
	all := make([]float64, 0, sets*perSet)

	for i := range best {
		es := shotgroup.ESValues(shotgroup.MonteCarlo(rng, perSet, 5, sigma))
		best[i] = stats.Min(es)
		all = append(all, es...)
	}

	meanBest, meanAll := stats.Mean(best), stats.Mean(all)
	// Bias is against the rifle's nominal capability, not the simulated mean.
	bias := 100 * (trueMOA - meanBest) / trueMOA
	edges := chart.EdgesFor(50, best)
	peak := chart.PeakCount(best, edges)

	p := chart.New("Reporting the best of 10 five-shot groups", "Group size (MOA)", "Number of sessions").
		Hist(best, edges, chart.Fade(chart.Gold, 0.8), "Best group of the day").
		VLine(trueMOA, 0, peak*1.05, chart.Red, true, fmt.Sprintf("Nominal %.1f MOA", trueMOA)).
		VLine(meanBest, 0, peak*1.05, chart.DarkOrange, false, fmt.Sprintf("Mean best %.2f", meanBest)).
		VLine(meanAll, 0, peak*1.05, chart.SteelBlue, false, fmt.Sprintf("Mean of all groups %.2f", meanAll))

	p.Annotate(0.75, 0.6, fmt.Sprintf("Best-group bias: %.0f%% smaller\nthan the rifle really shoots", bias))

	c := chart.Single(p, 12, 7)
	c.Title = fmt.Sprintf("Best Group Bias (%s sessions)", humanize.Comma(sets))

	return c, Stats{"true_moa": trueMOA, "mean_best": meanBest, "mean_all": meanAll, "bias_pct": bias}
}

func precisionVsAccuracy(rng *rand.Rand) (*chart.Canvas, Stats) {
	const (
		shots = 20
		limit = 6
	)

	quadrants := []struct {
		title    string
		sigma    float64
		dx, dy   float64
		color    color.NRGBA
		statsKey string
	}{
		{"Precise and accurate", 0.4, 0, 0, chart.DarkGreen, "precise_accurate"},
		{"Imprecise but accurate", 1.2, 0, 0, chart.Orange, "imprecise_accurate"},
		{"Precise but inaccurate", 0.4, 2.5, 1.5, chart.DarkOrange, "precise_inaccurate"},
		{"Imprecise and inaccurate", 1.2, 2.5, 1.5, chart.DarkRed, "imprecise_inaccurate"},
	}

	c := chart.NewCanvas("Precision vs Accuracy", 2, 2, 12, 12)
	out := Stats{}

	for i, q := range quadrants {
		g := shotgroup.Simulate(rng, shots, q.sigma, shotgroup.Point{X: q.dx, Y: q.dy})

		p := chart.New(q.title, "Windage (MOA)", "Elevation (MOA)").XRange(-limit, limit).YRange(-limit, limit)
		rings(p, chart.Fade(chart.Gray, 0.6), false, 1, 2, 3, 4, 5)
		p.HLine(0, chart.Fade(chart.Gray, 0.5), false, "").VLine(0, -limit, limit, chart.Fade(chart.Gray, 0.5), false, "")

		center := groupTarget(p, g, q.color, "")
		p.Dashed([]float64{0, center.X}, []float64{0, center.Y}, chart.Red, "")

		mr := g.MeanRadius()
		offset := center.Dist(shotgroup.Point{})
		p.Annotate(0.27, 0.1, fmt.Sprintf("MR %.2f MOA\nOff center %.2f MOA", mr, offset))
		c.Set(i/2, i%2, p)

		out[q.statsKey+"_mr"] = mr
		out[q.statsKey+"_offset"] = offset
	}

	return c, out
}

func ocwRoundRobin(rng *rand.Rand) (*chart.Canvas, Stats) {
	const (
		trials      = 6
		shots       = 3
		sigma       = 0.4
		aimJitter   = 0.3
		convergence = 0.7
		limit       = 3
	)

	charges := []struct {
		label string
		color color.NRGBA
	}{
		{"40.5 gr", chart.Red},
		{"41.0 gr", chart.SteelBlue},
		{"41.5 gr", chart.Green},
	}

	c := chart.NewCanvas("OCW Round-Robin: Same Load, Six Sessions", 2, 3, 15, 10)
	lucky := 0
	spreads := make([]float64, trials)

	for t := range trials {
		p := chart.New(fmt.Sprintf("Session %d", t+1), "Windage (MOA)", "Elevation (MOA)").
			XRange(-limit, limit).YRange(-limit, limit)

		centers := make(shotgroup.Group, len(charges))

		for i, ch := range charges {
			aim := shotgroup.Point{X: shotgroup.Normal(rng, 0, aimJitter), Y: shotgroup.Normal(rng, 0, aimJitter)}
			g := shotgroup.Simulate(rng, shots, sigma, aim)
			centers[i] = g.Centroid()

			label := ""
			if t == 0 {
				label = ch.label
			}

			p.Scatter(g.Xs(), g.Ys(), ch.color, markerRadius, label)
		}

		hub := centers.Centroid()
		spreads[t] = centers.MedianDistanceFrom(hub)

		p.Circle(hub.X, hub.Y, spreads[t], chart.Purple, true, "").
			Markers([]float64{hub.X}, []float64{hub.Y}, chart.Purple, centroidRadius, draw.CrossGlyph{}, "")

		if spreads[t] < convergence {
			lucky++

			p.Annotate(0.5, 0.9, "Apparent Convergence!")
		}

		c.Set(t/3, t%3, p)
	}

	return c, Stats{"lucky_trials": float64(lucky), "median_spread": stats.Median(spreads)}
}

func seatingDepthScatter(rng *rand.Rand) (*chart.Canvas, Stats) {
	const (
		trueMOA      = 1.0
		smallTrials  = 4
		largeTrials  = 5
		groupShots   = 5
		largeGroups  = 6
	)

	depths := stats.Arange(0.010, 0.0501, 0.010)
	sigma := shotgroup.SigmaForGroupSize(trueMOA)
	c := chart.NewLayout("Seating Depth: One Group per Depth vs 30 Shots per Depth", 16, 10, smallTrials, 1)
	bestDepths := make([]float64, smallTrials)

	for t := range smallTrials {
		sizes := make([]float64, len(depths))
		for i := range depths {
			sizes[i] = shotgroup.Simulate(rng, groupShots, sigma, shotgroup.Point{}).ExtremeSpread()
		}

		best := argMin(sizes)
		bestDepths[t] = depths[best]

		p := chart.New(fmt.Sprintf("Trial %d", t+1), "Jump (in)", "5-shot ES (MOA)").
			LinePoints(depths, sizes, chart.SteelBlue, "").
			Markers([]float64{depths[best]}, []float64{sizes[best]}, chart.Gold, centroidRadius+2, draw.PyramidGlyph{}, "").
			YRange(0, 2.5)
		p.Annotate(0.5, 0.9, fmt.Sprintf("\"Best\": %.3f in", depths[best]))
		c.Set(0, t, p)
	}

	wide := chart.New("Average of six 5-shot groups per depth, five repeats", "Jump (in)", "Average 5-shot ES (MOA)").
		HLine(trueMOA, chart.Red, true, "True 1.0 MOA").YRange(0, 2.5)

	var largeSpread float64

	for t := range largeTrials {
		avg := make([]float64, len(depths))

		for i := range depths {
			es := shotgroup.ESValues(shotgroup.MonteCarlo(rng, largeGroups, groupShots, sigma))
			avg[i] = stats.Mean(es)
		}

		largeSpread = max(largeSpread, stats.ExtremeSpread(avg))
		wide.LinePoints(depths, avg, chart.SeriesColor(t), fmt.Sprintf("Repeat %d", t+1))
	}

	c.Set(1, 0, wide)

	return c, Stats{
		"best_depth_range":   stats.ExtremeSpread(bestDepths),
		"large_sample_range": largeSpread,
	}
}
