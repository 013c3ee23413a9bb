package figures

import (
	"fmt"
	"image/color"
	"math"
	"math/rand/v2"

	"gonum.org/v1/gonum/stat/distuv"

	"github.com/Sumatoshi-tech/reloadstats/internal/chart"
	"github.com/Sumatoshi-tech/reloadstats/pkg/alg/stats"
	"github.com/Sumatoshi-tech/reloadstats/pkg/shotgroup"
)

// curve samples f at n points over [lo, hi].
func curve(f func(float64) float64, lo, hi float64, n int) (xs, ys []float64) {
	xs = stats.Linspace(lo, hi, n)
	ys = make([]float64, len(xs))

	for i, x := range xs {
		ys[i] = f(x)
	}

	return xs, ys
}

func statisticalPowerDemo(_ *rand.Rand) (*chart.Canvas, Stats) {
	const (
		effect  = 0.8
		n       = 20
		samples = 300
		lo, hi  = -1.0, 2.0
	)

	sem := 1 / math.Sqrt(n)
	crit := stats.NormalQuantile(1-stats.Alpha/2) * sem
	null := distuv.Normal{Mu: 0, Sigma: sem}
	alt := distuv.Normal{Mu: effect, Sigma: sem}
	beta := alt.CDF(crit)
	power := 1 - beta

	nullX, nullY := curve(null.Prob, lo, hi, samples)
	altX, altY := curve(alt.Prob, lo, hi, samples)
	top := null.Prob(0) * 1.15

	tailX, tailY := curve(null.Prob, crit, hi, samples/3)
	missX, missY := curve(alt.Prob, lo, crit, samples/3)
	hitX, hitY := curve(alt.Prob, crit, hi, samples/3)

	base := func(title string) *chart.Plot {
		return chart.New(title, "Observed difference (effect size units)", "Density").
			Line(nullX, nullY, chart.SteelBlue, "No real difference").
			Line(altX, altY, chart.Coral, fmt.Sprintf("Real difference d = %.1f", effect)).
			VLine(crit, 0, top, chart.Black, true, "Decision threshold").
			XRange(lo, hi).YRange(0, top)
	}

	alpha := base(fmt.Sprintf("False alarm (α = %.0f%%)", 100*stats.Alpha)).
		Fill(tailX, tailY, 0, chart.Fade(chart.SteelBlue, 0.5), "α zone")
	miss := base(fmt.Sprintf("Missed effect (β = %.0f%%)", 100*beta)).
		Fill(missX, missY, 0, chart.Fade(chart.Orange, 0.5), "β zone")
	detect := base(fmt.Sprintf("Detection (power = %.0f%%)", 100*power)).
		Fill(hitX, hitY, 0, chart.Fade(chart.Green, 0.5), "Power zone")

	sizes := chart.New("Power vs effect size", "True effect size d", "Power (%)").
		HLine(80, chart.Red, true, "80% target").YRange(0, 105)

	for i, m := range []int{10, 20, 50, 100} {
		se := 1 / math.Sqrt(float64(m))
		cut := stats.NormalQuantile(1-stats.Alpha/2) * se
		xs, ys := curve(func(d float64) float64 {
			return 100 * (1 - distuv.Normal{Mu: d, Sigma: se}.CDF(cut))
		}, 0, 2, 100)
		sizes.Thick(xs, ys, chart.SeriesColor(i), 2, fmt.Sprintf("n = %d", m))
	}

	sizes.LegendTop()

	c := chart.NewCanvas("Understanding Statistical Errors and Power", 2, 2, 14, 11)
	c.Set(0, 0, alpha)
	c.Set(0, 1, miss)
	c.Set(1, 0, detect)
	c.Set(1, 1, sizes)

	return c, Stats{"critical": crit, "beta": beta, "power": power}
}

func powerAnalysisCurves(_ *rand.Rand) (*chart.Canvas, Stats) {
	const (
		sd     = 12.0
		target = 0.8
		limit  = 500
	)

	ns := ints(5, 10, 15, 20, 30, 40, 50, 75, 100)
	effects := []struct {
		fps   float64
		color color.NRGBA
	}{
		{5, chart.Coral},
		{10, chart.SteelBlue},
		{20, chart.Green},
	}

	p := chart.New(fmt.Sprintf("Chance of detecting a real difference (SD %.0f fps)", sd), "Shots per load", "Power (%)").
		Band(ns[0], ns[len(ns)-1], 80, 100, chart.Fade(chart.LightGreen, 0.3), "Reliable detection").
		HLine(100*target, chart.Red, true, "80% power").
		YRange(0, 105)

	out := Stats{}

	for _, e := range effects {
		power := make([]float64, len(ns))
		first := 0.0

		for i, n := range ns {
			power[i] = 100 * stats.TwoSamplePower(int(n), e.fps, sd, stats.Alpha)
			if first == 0 && power[i] >= 100*target {
				first = n
			}
		}

		p.LinePoints(ns, power, e.color, fmt.Sprintf("%.0f fps difference", e.fps))

		need := stats.SampleSizeForPower(target, e.fps, sd, stats.Alpha, limit)
		out[fmt.Sprintf("n80_%.0f", e.fps)] = float64(need)
		out[fmt.Sprintf("first_grid_n80_%.0f", e.fps)] = first
	}

	p.LegendTop()
	p.Annotate(0.72, 0.25, fmt.Sprintf("Shots per load for 80%% power:\n5 fps: %.0f\n10 fps: %.0f\n20 fps: %.0f",
		out["n80_5"], out["n80_10"], out["n80_20"]))

	c := chart.Single(p, 12, 7)
	c.Title = "Detection Calculator"

	return c, out
}

func errorTradeoff(rng *rand.Rand) (*chart.Canvas, Stats) {
	const (
		sims    = 1000
		sdWorse = 15.0
		sdBest  = 10.0
	)

	ns := ints(5, 10, 20, 30, 50)
	falseAlarm := make([]float64, len(ns))
	detected := make([]float64, len(ns))
	missed := make([]float64, len(ns))

	for i, nf := range ns {
		n := int(nf)

		var alarms, hits int

		for range sims {
			a := shotgroup.NormalSample(rng, n, baseVelocity, trueSD)
			b := shotgroup.NormalSample(rng, n, baseVelocity, trueSD)

			if res, err := stats.TTestInd(a, b); err == nil && res.Significant(stats.Alpha) {
				alarms++
			}

			worse := shotgroup.NormalSample(rng, n, baseVelocity, sdWorse)
			better := shotgroup.NormalSample(rng, n, baseVelocity, sdBest)

			if res, err := stats.FTestVar(worse, better); err == nil && res.Significant(stats.Alpha) {
				hits++
			}
		}

		falseAlarm[i] = 100 * float64(alarms) / sims
		detected[i] = 100 * float64(hits) / sims
		missed[i] = 100 - detected[i]
	}

	rates := chart.New("Error rates vs sample size", "Shots per load", "Rate (%)").
		LinePoints(ns, falseAlarm, chart.Red, "False alarm (identical loads)").
		LinePoints(ns, detected, chart.Green, "Detected 15 vs 10 fps SD").
		HLine(100*stats.Alpha, chart.Gray, true, "5% nominal").
		YRange(0, 105).LegendTop()

	labels := make([]string, len(ns))
	for i, n := range ns {
		labels[i] = fmt.Sprintf("n = %.0f", n)
	}

	split := chart.New("What happens to a real 5 fps SD improvement", "", "Share of tests (%)").
		StackedBars(detected, missed, chart.Green, chart.LightCoral, "Detected", "Missed").
		Categories(labels...).YRange(0, 110)

	for i := range ns {
		split.TextSized(float64(i), 104, fmt.Sprintf("false alarms %.1f%%", falseAlarm[i]), 7, chart.DarkRed)
	}

	c := chart.NewLayout("The Error Tradeoff", 13, 11, 1, 1)
	c.Set(0, 0, rates)
	c.Set(1, 0, split)

	return c, Stats{
		"false_alarm_5":  falseAlarm[0] / 100,
		"false_alarm_50": falseAlarm[len(falseAlarm)-1] / 100,
		"detect_5":       detected[0] / 100,
		"detect_50":      detected[len(detected)-1] / 100,
	}
}

func redFlagGallery(rng *rand.Rand) (*chart.Canvas, Stats) {
	const groupCount = 10

	honest := shotgroup.LogNormalSample(rng, groupCount, 0.825, 0.21)
	fake := shotgroup.NormalSample(rng, groupCount, 0.45, 0.02)
	idx := make([]color.Color, groupCount)

	for i := range idx {
		idx[i] = chart.SteelBlue
	}

	charges := stats.Arange(40, 43.01, 0.5)
	noisy := make([]float64, len(charges))
	linear := make([]float64, len(charges))

	for i, ch := range charges {
		linear[i] = 2700 + 25*(ch-40)
		noisy[i] = linear[i] + shotgroup.Normal(rng, 0, 10)
	}

	xs := seq(1, 4)
	sds := []float64{12.5, 14.2, 11.8, 13.6}
	sdErr := []float64{2.1, 2.3, 2.0, 2.2}
	flat := repeat(8.0, len(xs))

	c := chart.NewCanvas("Data Quality Red Flag Gallery", 3, 2, 14, 14)

	c.Set(0, 0, chart.New("Realistic: group sizes vary", "Group", "Size (MOA)").Bars(honest, idx, 12))
	c.Set(0, 1, chart.New("Red flag: every group 0.45 MOA", "Group", "Size (MOA)").
		Bars(fake, []color.Color{chart.Red}, 12).YRange(0, stats.Max(honest)*1.1))

	c.Set(1, 0, chart.New("Realistic: ladder with scatter", "Charge (gr)", "Velocity (fps)").
		Dashed(charges, linear, chart.Gray, "").LinePoints(charges, noisy, chart.SteelBlue, ""))
	c.Set(1, 1, chart.New("Red flag: a perfectly straight ladder", "Charge (gr)", "Velocity (fps)").
		LinePoints(charges, linear, chart.Red, ""))

	c.Set(2, 0, chart.New("Realistic: SDs with uncertainty", "Session", "SD (fps)").
		ErrorBars(xs, sds, sdErr, chart.SteelBlue, "").YRange(0, 20))
	c.Set(2, 1, chart.New("Red flag: identical SDs, no error bars", "Session", "SD (fps)").
		LinePoints(xs, flat, chart.Red, "").YRange(0, 20))

	c.Footer = "Real data is messy. Numbers that look too consistent usually mean cherry-picked or rounded results."

	realCV := stats.StdDev(honest) / stats.Mean(honest)
	fakeCV := stats.StdDev(fake) / stats.Mean(fake)

	return c, Stats{"realistic_cv": realCV, "suspicious_cv": fakeCV}
}
