package analysis

import (
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/Sumatoshi-tech/reloadstats/pkg/alg/stats"
)

const (
	bannerWidth = 80
	bannerRule  = "="

	glyphOK      = "✓"
	glyphWarn    = "⚠"
	glyphNotable = "★"
	glyphVerdict = "➤"
)

// Reporter writes plain-English analysis reports.
type Reporter struct {
	w       io.Writer
	ok      *color.Color
	warn    *color.Color
	notable *color.Color
	verdict *color.Color
	err     error
}

// NewReporter creates a Reporter writing to w. Colour is applied only when
// useColor is true.
func NewReporter(w io.Writer, useColor bool) *Reporter {
	r := &Reporter{
		w:       w,
		ok:      color.New(color.FgGreen),
		warn:    color.New(color.FgYellow),
		notable: color.New(color.FgCyan, color.Bold),
		verdict: color.New(color.Bold),
	}

	for _, c := range []*color.Color{r.ok, r.warn, r.notable, r.verdict} {
		if useColor {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}

	return r
}

// TwoLoad writes the two-load comparison report.
func (r *Reporter) TwoLoad(res *TwoLoadResult) error {
	r.banner("STATISTICAL SUMMARY")

	tbl := newTable()
	tbl.AppendHeader(table.Row{"Load", "n", "Mean (fps)", "SD (fps)", "ES (fps)", "95% CI"})

	for _, s := range []Summary{res.Load1, res.Load2} {
		tbl.AppendRow(table.Row{
			s.Label, s.N, fmt.Sprintf("%.1f", s.Mean), fmt.Sprintf("%.1f", s.SD),
			fmt.Sprintf("%.1f", s.ES), fmt.Sprintf("±%.1f", s.CI95),
		})
	}

	r.table(tbl)

	r.banner("COMPARISON")
	r.printf("Difference in means: %.1f fps\n", res.MeanDiff)
	r.printf("  (%s is %s than %s)\n\n", res.Load2.Label,
		pick(res.Load2.Mean > res.Load1.Mean, "faster", "slower"), res.Load1.Label)
	r.printf("Difference in SD: %.1f fps\n", res.SDDiff)
	r.printf("  (%s has %s spread than %s)\n\n", res.Load2.Label,
		pick(res.Load2.SD > res.Load1.SD, "more", "less"), res.Load1.Label)
	r.printf("T-test p-value: %s\n", formatP(res.TTest.P))
	r.printf("  (p < %.2f suggests a statistically significant difference)\n\n", res.Alpha)
	r.printf("Effect size (Cohen's d): %s\n", formatD(math.Abs(res.CohensD), "%.3f"))
	r.printf("  (< 0.2 = tiny, 0.2-0.5 = small, 0.5-0.8 = medium, > 0.8 = large)\n")

	r.banner("INTERPRETATION")

	switch res.MeanLevel {
	case LevelNegligible:
		r.mark(r.ok, glyphOK, "Velocity difference is NEGLIGIBLE (%.1f fps)", res.MeanDiff)
		r.printf("  This won't matter at any practical distance.\n\n")
	case LevelSmall:
		r.mark(r.warn, glyphWarn, "Velocity difference is SMALL (%.1f fps)", res.MeanDiff)
		r.printf("  Might matter at extreme long range (1000+ yards), irrelevant otherwise.\n\n")
	case LevelMeaningful:
		r.mark(r.notable, glyphNotable, "Velocity difference is MEANINGFUL (%.1f fps)", res.MeanDiff)
		r.printf("  This will affect trajectory at long range.\n\n")
	}

	switch res.SDLevel {
	case LevelNegligible:
		r.mark(r.ok, glyphOK, "SD difference is NEGLIGIBLE (%.1f fps)", res.SDDiff)
		r.printf("  Both loads have essentially the same consistency.\n\n")
	case LevelSmall:
		r.mark(r.warn, glyphWarn, "SD difference is SMALL (%.1f fps)", res.SDDiff)
		r.printf("  Slight difference, but both are reasonably consistent.\n\n")
	case LevelMeaningful:
		r.mark(r.notable, glyphNotable, "SD difference is MEANINGFUL (%.1f fps)", res.SDDiff)
		r.printf("  %s is noticeably more consistent.\n\n", res.MoreConsistent)
	}

	if res.Significant {
		r.mark(r.notable, glyphNotable, "The difference is STATISTICALLY SIGNIFICANT (p = %s)", formatP(res.TTest.P))
		r.printf("  With %d total shots, this difference is unlikely to be random chance.\n\n", res.Load1.N+res.Load2.N)
	} else {
		r.mark(r.ok, glyphOK, "The difference is NOT statistically significant (p = %s)", formatP(res.TTest.P))
		r.printf("  This difference could easily be random variation.\n\n")
	}

	absD := math.Abs(res.CohensD)

	switch res.Effect {
	case stats.EffectTiny:
		r.mark(r.ok, glyphOK, "Effect size is TINY (d = %.3f)", absD)
		r.printf("  Even if statistically significant, the practical difference is minimal.\n")
	case stats.EffectSmall:
		r.mark(r.warn, glyphWarn, "Effect size is SMALL (d = %.3f)", absD)
		r.printf("  Detectable difference, but not dramatic.\n")
	default:
		r.mark(r.notable, glyphNotable, "Effect size is MEDIUM or LARGE (d = %s)", formatD(absD, "%.3f"))
		r.printf("  This is a substantial, practically meaningful difference.\n")
	}

	r.recommendation(res.Verdict)

	return r.err
}

// Ladder writes the charge weight ladder report.
func (r *Reporter) Ladder(res *LadderResult) error {
	r.banner("CHARGE WEIGHT LADDER RESULTS")

	tbl := newTable()
	tbl.AppendHeader(table.Row{"Charge", "n", "Mean", "SD", "ES", "Min", "Max"})

	for _, rung := range res.Rungs {
		tbl.AppendRow(table.Row{
			fmt.Sprintf("%.1f", rung.Charge), rung.N, fmt.Sprintf("%.1f", rung.Mean),
			fmt.Sprintf("%.1f", rung.SD), fmt.Sprintf("%.0f", rung.ES),
			fmt.Sprintf("%.0f", rung.Min), fmt.Sprintf("%.0f", rung.Max),
		})
	}

	tbl.AppendFooter(table.Row{"Total", res.TotalShots})
	r.table(tbl)

	r.banner("INTERPRETATION")
	r.printf("Most consistent charge: %.1f grains (SD = %.1f fps)\n\n", res.BestCharge, res.BestSD)
	r.printf("Average velocity increase per %.1fgr: %.1f fps\n\n", res.StepSize, res.AvgStep)

	if res.SmallSample {
		r.mark(r.warn, glyphWarn, "WARNING: Some charges have fewer than %d shots!", res.MinShotsWarning)
		r.printf("  With small samples, SD and patterns are unreliable.\n")
		r.printf("  Consider testing top 2-3 charges with 30 shots each.\n")
	}

	r.banner("RECOMMENDATION")
	r.printf("Based on %d total shots:\n", res.TotalShots)
	r.printf("  Best overall: %.1f grains\n\n", res.BestCharge)
	r.printf("Next steps:\n")
	r.printf("  1. Validate with 30+ shots at the best charge\n")
	r.printf("  2. Test group size at this charge weight\n")
	r.printf("  3. Check for pressure signs before using regularly\n")
	r.rule()

	return r.err
}

// BeforeAfter writes the before/after modification report.
func (r *Reporter) BeforeAfter(res *BeforeAfterResult) error {
	r.banner("BEFORE/AFTER SUMMARY")

	tbl := newTable()
	tbl.AppendHeader(table.Row{"Condition", "n", "Mean", "SD"})

	for _, s := range []Summary{res.Before, res.After} {
		tbl.AppendRow(table.Row{s.Label, s.N, fmt.Sprintf("%.1f", s.Mean), fmt.Sprintf("%.1f", s.SD)})
	}

	r.table(tbl)
	r.printf("Change in mean: %+.1f fps\n", res.MeanChange)
	r.printf("Change in SD: %+.1f fps\n", res.SDChange)
	r.printf("P-value: %s\n", formatP(res.TTest.P))

	r.recommendation(res.Verdict)

	return r.err
}

// Primer writes the short primer summary followed by the full comparison.
func (r *Reporter) Primer(res *TwoLoadResult) error {
	for _, s := range []Summary{res.Load1, res.Load2} {
		r.printf("=== %s Results ===\n", s.Label)
		r.printf("Average velocity: %.1f fps\n", s.Mean)
		r.printf("SD: %.1f fps\n", s.SD)
		r.printf("Extreme spread: %.1f fps\n\n", s.ES)
	}

	return r.TwoLoad(res)
}

func (r *Reporter) recommendation(v Verdict) {
	r.banner("RECOMMENDATION")
	r.mark(r.verdict, glyphVerdict, "VERDICT: %s", v.Headline)
	r.printf("\n")

	for _, line := range v.Details {
		r.printf("  %s\n", line)
	}

	r.banner("ANALYSIS COMPLETE")
}

func (r *Reporter) banner(title string) {
	r.printf("\n")
	r.rule()
	r.printf(" %s\n", title)
	r.rule()
	r.printf("\n")
}

func (r *Reporter) rule() {
	r.printf("%s\n", strings.Repeat(bannerRule, bannerWidth))
}

func (r *Reporter) mark(c *color.Color, glyph, format string, args ...any) {
	r.printf("%s\n", c.Sprintf(glyph+" "+format, args...))
}

func (r *Reporter) table(tbl table.Writer) {
	r.printf("%s\n\n", tbl.Render())
}

func (r *Reporter) printf(format string, args ...any) {
	if r.err != nil {
		return
	}

	_, r.err = fmt.Fprintf(r.w, format, args...)
}

func newTable() table.Writer {
	tbl := table.NewWriter()
	tbl.SetStyle(table.StyleLight)
	tbl.Style().Format.Header = text.FormatDefault
	tbl.Style().Format.Footer = text.FormatDefault

	return tbl
}

// formatD prints d with layout, or "inf" when both groups had zero spread.
func formatD(d float64, layout string) string {
	if math.IsInf(d, 0) {
		return pick(d > 0, "inf", "-inf")
	}

	return fmt.Sprintf(layout, d)
}

func formatP(p float64) string {
	if math.IsNaN(p) {
		return "n/a"
	}

	return fmt.Sprintf("%.4f", p)
}
