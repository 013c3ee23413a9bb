package figures

import (
	"fmt"
	"image/color"
	"math"
	"math/rand/v2"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/Sumatoshi-tech/reloadstats/internal/chart"
	"github.com/Sumatoshi-tech/reloadstats/pkg/alg/stats"
	"github.com/Sumatoshi-tech/reloadstats/pkg/shotgroup"
	"github.com/Sumatoshi-tech/reloadstats/pkg/units"
)

const (
	costPerRound  = 1.50
	roundsPerHour = 60
)

func confidenceIntervalShrinkage(_ *rand.Rand) (*chart.Canvas, Stats) {
	const level = 0.95

	ns := ints(5, 10, 20, 30, 50, 100)
	margins := make([]float64, len(ns))

	for i, n := range ns {
		margins[i] = stats.TMargin(trueSD, int(n), level)
	}

	crit := stats.NormalQuantile((1 + level) / 2)
	z := func(n float64) float64 { return crit * trueSD / math.Sqrt(n) }

	p := chart.New("95% margin of error for the average (SD 15 fps)", "Shots in the string", "± fps").
		Func(z, 5, 100, chart.Gray, "Normal approximation").
		LinePoints(ns, margins, chart.SteelBlue, "Student t").
		LegendTop()

	var b strings.Builder

	for i, n := range ns {
		fmt.Fprintf(&b, "n=%-3.0f ±%.1f fps\n", n, margins[i])
	}

	p.Annotate(0.75, 0.6, strings.TrimSpace(b.String()))

	c := chart.Single(p, 12, 7)
	c.Title = "Confidence Interval Shrinkage"

	return c, Stats{"margin_5": margins[0], "margin_30": margins[3], "margin_100": margins[len(margins)-1]}
}

func costBenefitTradeoff(_ *rand.Rand) (*chart.Canvas, Stats) {
	ns := ints(5, 10, 20, 30, 50, 100)
	cost := make([]float64, len(ns))
	confidence := make([]float64, len(ns))
	retest := make([]float64, len(ns))
	expected := make([]float64, len(ns))
	retestCost := make([]float64, len(ns))

	for i, n := range ns {
		cost[i] = costPerRound * n
		confidence[i] = 100 * (1 - math.Exp(-n/30))
		retest[i] = (100 - confidence[i]) / 100
		expected[i] = cost[i] * (1 + 1.5*retest[i])
		retestCost[i] = expected[i] - cost[i]
	}

	tradeoff := chart.New("Cost and confidence", "Shots per load", "Dollars / confidence %").
		Band(30, 50, 0, 100, chart.Fade(chart.LightGreen, 0.35), "Sweet spot").
		LinePoints(ns, cost, chart.Coral, "Ammo cost ($)").
		LinePoints(ns, expected, chart.DarkRed, "Expected cost incl. retests ($)").
		LinePoints(ns, confidence, chart.SteelBlue, "Confidence (%)").
		YRange(0, 160).LegendTop()

	labels := make([]string, len(ns))
	for i, n := range ns {
		labels[i] = fmt.Sprintf("%.0f", n)
	}

	stack := chart.New("Initial vs expected retest cost", "Shots per load", "Dollars").
		StackedBars(cost, retestCost, chart.SteelBlue, chart.Coral, "Initial test", "Expected retests").
		Categories(labels...).LegendTop()

	for i := range ns {
		stack.TextSized(float64(i), expected[i]+6, fmt.Sprintf("%.0f%% retest", 100*retest[i]), 8, chart.DarkRed)
	}

	c := chart.NewCanvas("Cost vs Confidence Tradeoff", 1, 2, 15, 6)
	c.Set(0, 0, tradeoff)
	c.Set(0, 1, stack)

	return c, Stats{
		"confidence_30":    confidence[3],
		"expected_cost_5":  expected[0],
		"expected_cost_30": expected[3],
		"retest_prob_10":   retest[1],
	}
}

func factorialExplosion(_ *rand.Rand) (*chart.Canvas, Stats) {
	const shotsPerCombo = 30

	scenarios := []struct {
		name   string
		combos int
	}{
		{"OFAT", 5},
		{"Test 2 Primers", 7},
		{"Add Powder", 10},
		{"Full Factorial", 288},
	}

	cube := chart.New("3 factors × 3 levels = 27 loads", "Powder level", "Seating level").
		XRange(-0.5, 3.5).YRange(-0.5, 3.5)

	for z := range 3 {
		shift := 0.35 * float64(z)
		xs := make([]float64, 0, 9)
		ys := make([]float64, 0, 9)

		for x := range 3 {
			for y := range 3 {
				xs = append(xs, float64(x)+shift)
				ys = append(ys, float64(y)+shift)
			}
		}

		cube.Scatter(xs, ys, chart.SeriesColor(z), markerRadius+1, fmt.Sprintf("Primer %d", z+1))
	}

	cube.LegendTop()

	rounds := make([]float64, len(scenarios))
	dollars := make([]float64, len(scenarios))
	hours := make([]float64, len(scenarios))
	names := make([]string, len(scenarios))
	colors := make([]color.Color, len(scenarios))

	var table strings.Builder

	table.WriteString("Plan             Loads  Rounds   Cost     Practical\n")

	for i, s := range scenarios {
		names[i] = s.name
		rounds[i] = float64(s.combos * shotsPerCombo)
		dollars[i] = rounds[i] * costPerRound
		hours[i] = rounds[i] / roundsPerHour

		verdict := "✓ YES"
		colors[i] = chart.Green

		switch {
		case s.combos > 50:
			verdict = "✗✗ IMPOSSIBLE"
			colors[i] = chart.DarkRed
		case s.combos > 10:
			verdict = "✗ NO"
			colors[i] = chart.Orange
		}

		fmt.Fprintf(&table, "%-16s %5d  %6s  $%-7s %s\n",
			s.name, s.combos, humanize.Comma(int64(rounds[i])), humanize.Comma(int64(dollars[i])), verdict)
	}

	bars := chart.New("Rounds needed at 30 shots per load", "", "Rounds").
		Bars(rounds, colors, 0).Categories(names...)

	for i := range rounds {
		bars.TextSized(float64(i), rounds[i]+300, humanize.Comma(int64(rounds[i])), 8, chart.Black)
	}

	budget := chart.New("Cost and range time", "", "Dollars / hours").
		BarsAt(dollars, []color.Color{chart.Coral}, 14, -7, "Cost ($)").
		BarsAt(hours, []color.Color{chart.SteelBlue}, 14, 7, "Range time (h)").
		Categories(names...).LegendTop()

	text := chart.Blank("Is it practical?").XRange(0, 1).YRange(0, 1)
	text.Text(0.5, 0.5, strings.TrimSpace(table.String()))

	c := chart.NewCanvas("The Factorial Explosion", 2, 2, 15, 11)
	c.Set(0, 0, cube)
	c.Set(0, 1, bars)
	c.Set(1, 0, budget)
	c.Set(1, 1, text)
	c.Footer = "Change one thing at a time with enough shots per change, or budget for the full factorial. There is no cheap middle."

	return c, Stats{
		"full_factorial_rounds": rounds[len(rounds)-1],
		"full_factorial_cost":   dollars[len(dollars)-1],
		"full_factorial_hours":  hours[len(hours)-1],
	}
}

type equipmentClass struct {
	name      string
	mean, sd  float64
	color     color.NRGBA
	shortName string
}

func realWorldPrecision(rng *rand.Rand) (*chart.Canvas, Stats) {
	const samples = 1000

	classes := []equipmentClass{
		{"Factory rifle + factory ammo", 1.5, 0.4, chart.Red, "factory"},
		{"Factory rifle + handloads", 1.0, 0.3, chart.Orange, "handloads"},
		{"Semi-custom + handloads", 0.6, 0.15, chart.SteelBlue, "semi_custom"},
		{"Full custom benchrest", 0.25, 0.08, chart.Green, "benchrest"},
	}

	groups := make([][]float64, len(classes))
	colors := make([]color.Color, len(classes))
	names := make([]string, len(classes))
	edges := stats.Linspace(0, 3.5, 50)
	out := Stats{}

	hist := chart.New("Overlaid distributions", "Group size (MOA)", "Groups").XRange(0, 3.5)

	for i, cl := range classes {
		groups[i] = shotgroup.LogNormalSample(rng, samples, cl.mean, cl.sd)
		colors[i] = cl.color
		names[i] = strings.Replace(cl.name, " + ", "\n+ ", 1)

		hist.Hist(groups[i], edges, chart.Fade(cl.color, 0.45), cl.name)

		out[cl.shortName+"_p50"] = stats.Median(groups[i])
		out[cl.shortName+"_p90"] = stats.Percentile(groups[i], stats.PercentileP90)
	}

	top := 0.0
	for _, g := range groups {
		top = max(top, chart.PeakCount(g, edges))
	}

	for i, cl := range classes {
		hist.VLine(stats.Mean(groups[i]), 0, top*1.05, cl.color, true, "")
	}

	box := chart.New("Group size by equipment class", "", "Group size (MOA)").
		BoxPlots(groups, colors).Categories(names...).YRange(0, 3.5)

	for i := range classes {
		box.TextSized(float64(i)+0.3, out[classes[i].shortName+"_p90"],
			fmt.Sprintf("90%%: %.2f", out[classes[i].shortName+"_p90"]), 7, chart.DarkBlue)
	}

	c := chart.NewCanvas("Real-World Precision by Equipment Class", 1, 2, 16, 7)
	c.Set(0, 0, box)
	c.Set(0, 1, hist)

	return c, out
}

func componentQualityVsPrecision(_ *rand.Rand) (*chart.Canvas, Stats) {
	steps := []struct {
		name       string
		cost       float64
		capability float64
	}{
		{"Factory + Budget Optic\n+ Factory Ammo", 1200, 50},
		{"+ Match Ammo", 1350, 65},
		{"+ Quality Optic\n& Mount", 2200, 78},
		{"+ Barrel & Stock", 3400, 87},
		{"+ Premium Ammo\n& Tools", 6100, 91},
		{"Full Custom Build", 10200, 95},
	}

	costs := make([]float64, len(steps))
	capability := make([]float64, len(steps))

	for i, s := range steps {
		costs[i] = s.cost
		capability[i] = s.capability
	}

	curve := chart.New("Capability vs total investment", "Total investment ($)", "Capability (%)").
		Band(0, 11000, 45, 80, chart.Fade(chart.LightGreen, 0.3), "High return").
		Band(0, 11000, 80, 100, chart.Fade(chart.LightCoral, 0.3), "Diminishing return").
		LinePoints(costs, capability, chart.SteelBlue, "").
		YRange(45, 100).XRange(0, 11000).LegendTop()

	efficiency := make([]float64, len(steps)-1)
	colors := make([]color.Color, len(efficiency))
	names := make([]string, len(efficiency))

	for i := 1; i < len(steps); i++ {
		e := (steps[i].cost - steps[i-1].cost) / (steps[i].capability - steps[i-1].capability)
		efficiency[i-1] = e
		names[i-1] = steps[i].name

		switch {
		case e < 20:
			colors[i-1] = chart.Green
		case e < 50:
			colors[i-1] = chart.Orange
		default:
			colors[i-1] = chart.Red
		}
	}

	bars := chart.New("Dollars per capability point", "", "$ per %").
		Bars(efficiency, colors, 0).Categories(names...)

	for i, e := range efficiency {
		bars.TextSized(float64(i), e+25, "$"+humanize.Comma(int64(math.Round(e))), 8, chart.Black)
	}

	c := chart.NewCanvas("Diminishing Returns in Precision Equipment", 1, 2, 16, 7)
	c.Set(0, 0, curve)
	c.Set(0, 1, bars)

	return c, Stats{"first_upgrade_cost_per_point": efficiency[0], "last_upgrade_cost_per_point": efficiency[len(efficiency)-1]}
}

// hitProbability is a coarse lookup of first-round hit chance on a target
// of the given size for a rifle of the given precision, both in MOA.
func hitProbability(precision, target float64) float64 {
	r := target / (2 * precision)

	switch {
	case r >= 2:
		return 0.95
	case r >= 1.5:
		return 0.85
	case r >= 1:
		return 0.65
	case r >= 0.7:
		return 0.40
	default:
		return 0.20
	}
}

func loadVsSkillImpact(_ *rand.Rand) (*chart.Canvas, Stats) {
	const (
		target   = 1.0
		distance = 600
	)

	targetIn := units.ShooterMOAToInches(target, distance)

	options := []struct {
		name      string
		precision float64
		cost      float64
		hours     float64
		color     color.NRGBA
	}{
		{"Baseline", 1.2, 0, 0, chart.Gray},
		{"Load development", 1.0, 500, 40, chart.Coral},
		{"Skill development", 0.7, 200, 20, chart.SteelBlue},
	}

	names := make([]string, len(options))
	precision := make([]float64, len(options))
	hits := make([]float64, len(options))
	colors := make([]color.Color, len(options))

	for i, o := range options {
		names[i] = o.name
		precision[i] = o.precision
		hits[i] = 100 * hitProbability(o.precision, target)
		colors[i] = o.color
	}

	improvement := func(i int) float64 { return hits[i] - hits[0] }

	roiDollar := make([]float64, len(options)-1)
	roiHour := make([]float64, len(options)-1)
	for i := 1; i < len(options); i++ {
		roiDollar[i-1] = improvement(i) / options[i].cost * 100
		roiHour[i-1] = improvement(i) / options[i].hours
	}

	title := fmt.Sprintf("Load Development vs Skill Development (%.0f MOA, %.0f in target at %d yd)", target, targetIn, distance)
	c := chart.NewCanvas(title, 2, 2, 14, 11)
	c.Set(0, 0, chart.New("System precision", "", "MOA").Bars(precision, colors, 0).Categories(names...))
	c.Set(0, 1, chart.New("First-round hit probability", "", "%").Bars(hits, colors, 0).Categories(names...).YRange(0, 100))
	c.Set(1, 0, chart.New("Hit % gained per $100", "", "points").
		Bars(roiDollar, colors[1:], 0).Categories(names[1:]...))
	c.Set(1, 1, chart.New("Hit % gained per hour", "", "points").
		Bars(roiHour, colors[1:], 0).Categories(names[1:]...))

	return c, Stats{
		"target_in":     targetIn,
		"hit_baseline":  hits[0] / 100,
		"hit_load":      hits[1] / 100,
		"hit_skill":     hits[2] / 100,
		"gain_load":     improvement(1),
		"gain_skill":    improvement(2),
		"roi_load_100":  roiDollar[0],
		"roi_skill_100": roiDollar[1],
		"roi_load_hr":   roiHour[0],
		"roi_skill_hr":  roiHour[1],
	}
}
