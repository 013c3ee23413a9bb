package figures

import (
	"fmt"
	"image/color"
	"math"
	"math/rand/v2"

	"github.com/dustin/go-humanize"

	"github.com/Sumatoshi-tech/reloadstats/internal/chart"
	"github.com/Sumatoshi-tech/reloadstats/pkg/alg/stats"
	"github.com/Sumatoshi-tech/reloadstats/pkg/shotgroup"
)

const (
	baseVelocity = 2850.0
	trueSD       = 15.0
)

func sdIllusionSampleSize(rng *rand.Rand) (*chart.Canvas, Stats) {
	const samples = 1000

	sizes := []int{5, 10, 20, 30}
	c := chart.NewCanvas(fmt.Sprintf("SD Measurement Illusion: %s strings at each sample size", humanize.Comma(samples)),
		2, 2, 14, 10)
	out := Stats{}

	for i, n := range sizes {
		sds := sampleSDs(rng, samples, n, baseVelocity, trueSD)
		edges := chart.Edges(0, 35, histBins)
		peak := chart.PeakCount(sds, edges)
		mean := stats.Mean(sds)
		within := stats.FractionWithin(sds, 0.8*trueSD, 1.2*trueSD)

		p := chart.New(fmt.Sprintf("%d-shot strings", n), "Measured SD (fps)", "Count").
			Hist(sds, edges, chart.Fade(chart.SeriesColor(i), 0.7), "").
			VLine(trueSD, 0, peak*1.05, chart.Red, true, "True SD 15").
			VLine(mean, 0, peak*1.05, chart.Orange, false, fmt.Sprintf("Average %.1f", mean)).
			XRange(0, 35)
		p.Annotate(0.78, 0.6, fmt.Sprintf("Range %.1f to %.1f\nSpread of SDs %.1f\nWithin ±20%%: %s",
			stats.Min(sds), stats.Max(sds), stats.StdDev(sds), pct(within)))
		c.Set(i/2, i%2, p)

		out[fmt.Sprintf("sd_spread_%d", n)] = stats.StdDev(sds)
		out[fmt.Sprintf("within_20_%d", n)] = within
	}

	return c, out
}

func cupAndOcean(rng *rand.Rand) (*chart.Canvas, Stats) {
	const shots = 100

	v := shotgroup.NormalSample(rng, shots, baseVelocity, trueSD)
	means, sds := stats.RunningSeries(v)
	xs := seq(1, shots)

	mean := chart.New("Running average", "Shots fired", "Average velocity (fps)").
		Band(1, shots, baseVelocity-5, baseVelocity+5, chart.Fade(chart.LightGreen, 0.35), "±5 fps of truth").
		Thick(xs, means, chart.SteelBlue, 2, "Running mean").
		HLine(baseVelocity, chart.Red, true, "True mean")

	sd := chart.New("Running standard deviation", "Shots fired", "SD (fps)").
		Band(2, shots, trueSD-2, trueSD+2, chart.Fade(chart.LightGreen, 0.35), "±2 fps of truth").
		Thick(xs[1:], sds[1:], chart.Coral, 2, "Running SD").
		HLine(trueSD, chart.Red, true, "True SD").
		YRange(0, 30)

	settled := 2

	for i := shots - 1; i >= 1; i-- {
		if math.Abs(sds[i]-trueSD) > 2 {
			settled = i + 2

			break
		}
	}

	c := chart.NewCanvas("The Cup and the Ocean", 1, 2, 14, 6)
	c.Set(0, 0, mean)
	c.Set(0, 1, sd)
	c.Footer = fmt.Sprintf("The first handful of shots is a cup of water from the ocean. "+
		"The SD stayed within 2 fps of the truth only after shot %d.", min(settled, shots))

	return c, Stats{
		"mean_10":    means[9],
		"sd_10":      sds[9],
		"mean_100":   means[shots-1],
		"sd_100":     sds[shots-1],
		"sd_settled": float64(min(settled, shots)),
	}
}

func threeTypesOfConsistency(rng *rand.Rand) (*chart.Canvas, Stats) {
	const (
		shots = 30
		limit = 4
	)

	scenarios := []struct {
		title     string
		sd        float64
		precision float64
		noise     float64
		color     color.NRGBA
	}{
		{"Low SD, tight group", 8, 0.6, 0.18, chart.DarkGreen},
		{"Low SD, loose group", 8, 1.4, 0.56, chart.Orange},
		{"High SD, tight group", 20, 0.7, 0.245, chart.SteelBlue},
	}

	c := chart.NewCanvas("The Three Types of Consistency", 2, len(scenarios), 16, 10)
	out := Stats{}

	for i, s := range scenarios {
		v := shotgroup.NormalSample(rng, shots, baseVelocity, s.sd)
		g := make(shotgroup.Group, shots)

		for k := range g {
			g[k] = shotgroup.Point{
				X: shotgroup.Normal(rng, 0, s.precision),
				Y: (v[k]-baseVelocity)*0.2/s.sd + shotgroup.Normal(rng, 0, s.noise),
			}
		}

		vsd := stats.StdDev(v)
		edges := chart.EdgesFor(15, v)

		c.Set(0, i, chart.New(fmt.Sprintf("%s: SD %.1f fps", s.title, vsd), "Velocity (fps)", "Shots").
			Hist(v, edges, chart.Fade(s.color, 0.7), ""))

		target := chart.New(fmt.Sprintf("MR %.2f MOA", g.MeanRadius()), "Windage (MOA)", "Elevation (MOA)").
			XRange(-limit, limit).YRange(-limit, limit)
		rings(target, chart.Fade(chart.Gray, 0.6), false, 1, 2, 3)
		groupTarget(target, g, s.color, "")
		c.Set(1, i, target)

		out[fmt.Sprintf("scenario_%d_sd", i+1)] = vsd
		out[fmt.Sprintf("scenario_%d_mr", i+1)] = g.MeanRadius()
	}

	return c, out
}

func sdIllusionDetailed(rng *rand.Rand) (*chart.Canvas, Stats) {
	const trials = 500

	sizes := []int{5, 10, 20, 30}
	c := chart.NewCanvas("Small Samples Underestimate SD", 2, 2, 14, 10)
	out := Stats{}

	for i, n := range sizes {
		sds := sampleSDs(rng, trials, n, baseVelocity, trueSD)

		lo, hi := 5.0, 25.0
		if n <= 10 {
			lo, hi = 0, 35
		}

		edges := chart.Edges(lo, hi, 25)
		peak := chart.PeakCount(sds, edges)
		below := stats.FractionBelow(sds, 10)
		within := stats.FractionWithin(sds, 0.8*trueSD, 1.2*trueSD)

		p := chart.New(fmt.Sprintf("n = %d", n), "Measured SD (fps)", "Strings").
			Hist(sds, edges, chart.Fade(chart.SeriesColor(i), 0.7), "").
			VLine(trueSD, 0, peak*1.05, chart.Red, true, "True SD").
			VLine(10, 0, peak*1.05, chart.Green, true, "\"Single digit\" 10 fps").
			XRange(lo, hi)
		p.Annotate(0.78, 0.6, fmt.Sprintf("Below 10 fps: %s\nWithin ±20%%: %s", pct(below), pct(within)))
		c.Set(i/2, i%2, p)

		out[fmt.Sprintf("below_10_%d", n)] = below
		out[fmt.Sprintf("within_20_%d", n)] = within
	}

	c.Footer = "A 5-shot string from a 15 fps load reads single digits far more often than a 30-shot string does."

	return c, out
}

func velocityNodeIllusion(rng *rand.Rand) (*chart.Canvas, Stats) {
	const (
		ladders = 100
		slope   = 25.0
		base    = 2700.0
		sd      = 15.0
		nodeAt  = 42.0
	)

	charges := stats.Arange(40, 44.3, 0.3)
	truth := make([]float64, len(charges))

	for i, ch := range charges {
		truth[i] = base + slope*(ch-40)
	}

	p := chart.New("One shot per charge, 100 repeats", "Charge weight (gr)", "Velocity (fps)")

	var (
		flats int
		yours []float64
	)

	for k := range ladders {
		v := make([]float64, len(charges))
		for i := range charges {
			v[i] = shotgroup.Normal(rng, truth[i], sd)
		}

		if k == 0 {
			yours = v

			continue
		}

		for i := 1; i < len(v); i++ {
			if math.Abs(v[i]-v[i-1]) < slope*0.3/3 {
				flats++

				break
			}
		}

		p.Line(charges, v, chart.Fade(chart.Gray, 0.15), "")
	}

	p.LinePoints(charges, yours, chart.SteelBlue, "Your ladder").
		Dashed(charges, truth, chart.Red, "True response (linear)").
		LegendTop()

	nodeIdx := 0
	for i, ch := range charges {
		if math.Abs(ch-nodeAt) < math.Abs(charges[nodeIdx]-nodeAt) {
			nodeIdx = i
		}
	}

	p.TextSized(charges[nodeIdx], yours[nodeIdx]+35, "Apparent Node?", 10, chart.DarkRed)

	c := chart.Single(p, 12, 7)
	c.Title = "Velocity Node Illusion"

	return c, Stats{"ladders_with_flat_spot": float64(flats), "ladders": ladders - 1}
}

func chronographPrecisionLimits(_ *rand.Rand) (*chart.Canvas, Stats) {
	errs := []struct {
		fps   float64
		color color.NRGBA
	}{
		{2, chart.Green},
		{5, chart.Orange},
		{10, chart.Red},
	}

	trueSDs := stats.Linspace(5, 30, 51)

	measured := chart.New("Measured SD vs true SD", "True SD (fps)", "Measured SD (fps)").
		Dashed([]float64{5, 30}, []float64{5, 30}, chart.Gray, "Perfect chronograph")
	added := chart.New("Error added by the chronograph", "True SD (fps)", "Added SD (fps)")
	out := Stats{}

	for _, e := range errs {
		m := make([]float64, len(trueSDs))
		a := make([]float64, len(trueSDs))

		for i, sd := range trueSDs {
			m[i] = math.Hypot(sd, e.fps)
			a[i] = m[i] - sd
		}

		label := fmt.Sprintf("±%.0f fps chronograph", e.fps)
		measured.Thick(trueSDs, m, e.color, 2, label)
		added.Thick(trueSDs, a, e.color, 2, label)

		out[fmt.Sprintf("reads_10fps_load_err_%.0f", e.fps)] = math.Hypot(10, e.fps)
	}

	measured.LegendTop()
	added.Annotate(0.6, 0.8, fmt.Sprintf("A 10 fps load reads\n%.1f / %.1f / %.1f fps",
		out["reads_10fps_load_err_2"], out["reads_10fps_load_err_5"], out["reads_10fps_load_err_10"]))

	c := chart.NewCanvas("Chronograph Precision Limits", 1, 2, 14, 6)
	c.Set(0, 0, measured)
	c.Set(0, 1, added)

	return c, out
}

func anonymizedLadderTest(rng *rand.Rand) (*chart.Canvas, Stats) {
	const (
		trials = 6
		shots  = 3
		slope  = 25.0
		base   = 2700.0
		sd     = 12.0
		flat   = 2.5
	)

	charges := stats.Arange(41.0, 43.1, 0.2)
	truth := make([]float64, len(charges))

	for i, ch := range charges {
		truth[i] = base + slope*(ch-41.0)
	}

	c := chart.NewCanvas("Ladder Test Illusion: Six Runs of the Same Ladder", 2, 3, 16, 10)
	nodes := 0

	for t := range trials {
		avg := make([]float64, len(charges))
		for i := range charges {
			avg[i] = stats.Mean(shotgroup.NormalSample(rng, shots, truth[i], sd))
		}

		p := chart.New(fmt.Sprintf("Run %d", t+1), "Charge (gr)", "3-shot average (fps)").
			Dashed(charges, truth, chart.Red, "").
			LinePoints(charges, avg, chart.SteelBlue, "").
			YRange(2680, 2790)

		for i := 1; i < len(avg); i++ {
			if math.Abs(avg[i]-avg[i-1]) < flat {
				nodes++

				p.TextSized(charges[i], avg[i]+12, "Apparent node?", 8, chart.DarkRed)

				break
			}
		}

		c.Set(t/3, t%3, p)
	}

	return c, Stats{"runs_with_node": float64(nodes), "runs": trials}
}

func primerSwapIllusion(rng *rand.Rand) (*chart.Canvas, Stats) {
	const (
		trials    = 50
		small     = 10
		large     = 50
		threshold = 10.0
		mean      = 2800.0
	)

	smallSDs := make([]float64, trials)
	largeSDs := make([]float64, trials)
	var before, after []float64

	luckyIdx, luckyDiff := 0, 0.0

	for t := range trials {
		a := shotgroup.NormalSample(rng, small, mean, trueSD)
		b := shotgroup.NormalSample(rng, small, mean, trueSD)
		smallSDs[t] = stats.StdDev(b)

		if d := math.Abs(stats.StdDev(a) - smallSDs[t]); d > luckyDiff {
			luckyIdx, luckyDiff = t, d
			before, after = a, b
		}

		largeSDs[t] = stats.StdDev(shotgroup.NormalSample(rng, large, mean, trueSD))
	}

	amazing := stats.FractionBelow(smallSDs, threshold) * trials
	edges := stats.Linspace(0, 30, 31)
	peak := max(chart.PeakCount(smallSDs, edges), chart.PeakCount(largeSDs, edges))

	hist := chart.New("Measured SD after a primer swap (nothing changed)", "SD (fps)", "Trials").
		Hist(smallSDs, edges, chart.Fade(chart.Coral, 0.6), "10-shot strings").
		Hist(largeSDs, edges, chart.Fade(chart.SteelBlue, 0.6), "50-shot strings").
		VLine(trueSD, 0, peak*1.05, chart.Red, true, "True SD").
		VLine(threshold, 0, peak*1.05, chart.Green, true, "\"Amazing\" 10 fps")
	hist.Annotate(0.78, 0.7, fmt.Sprintf("%.0f of %d small tests\nlooked amazing", amazing, trials))

	bigBefore := shotgroup.NormalSample(shotgroup.NewRand(1000), large, mean, trueSD)
	bigAfter := shotgroup.NormalSample(shotgroup.NewRand(1001), large, mean, trueSD)

	box := chart.New(fmt.Sprintf("A lucky swap (trial %d) vs 50-shot strings", luckyIdx+1), "", "Velocity (fps)").
		BoxPlots([][]float64{before, after, bigBefore, bigAfter},
			[]color.Color{chart.Coral, chart.Coral, chart.SteelBlue, chart.SteelBlue}).
		Categories("Old primer\n10 shots", "New primer\n10 shots", "Old primer\n50 shots", "New primer\n50 shots")

	for i, set := range [][]float64{before, after, bigBefore, bigAfter} {
		box.Scatter(jitter(rng, float64(i), len(set)), set, chart.Fade(chart.Black, 0.4), 1.5, "")
	}

	c := chart.NewLayout("Primer Swap Illusion", 14, 11, 1, 1)
	c.Set(0, 0, hist)
	c.Set(1, 0, box)

	return c, Stats{
		"amazing_results": amazing,
		"small_sd_spread": stats.StdDev(smallSDs),
		"large_sd_spread": stats.StdDev(largeSDs),
		"lucky_diff":      luckyDiff,
	}
}
