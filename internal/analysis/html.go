package analysis

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/Sumatoshi-tech/reloadstats/internal/plotpage"
)

const (
	htmlDirPerm  = 0o750
	htmlFilePerm = 0o600
)

func summaryTable(rows ...Summary) plotpage.Table {
	t := plotpage.Table{
		Headers: []string{"Group", "Shots", "Mean (fps)", "SD (fps)", "ES (fps)", "95% CI (±fps)"},
		Striped: true,
	}

	for _, s := range rows {
		t.Rows = append(t.Rows, []string{
			s.Label,
			fmt.Sprintf("%d", s.N),
			fmt.Sprintf("%.1f", s.Mean),
			fmt.Sprintf("%.1f", s.SD),
			fmt.Sprintf("%.1f", s.ES),
			fmt.Sprintf("%.1f", s.CI95),
		})
	}

	return t
}

func verdictHint(v Verdict) plotpage.Hint {
	return plotpage.Hint{Title: v.Headline, Items: v.Details}
}

func sequenceSeries(palette []string, groups ...Summary) []plotpage.LineSeries {
	out := make([]plotpage.LineSeries, len(groups))

	for i, g := range groups {
		out[i] = plotpage.LineSeries{Name: g.Label, X: shotAxis(g), Data: g.Velocities, Color: palette[i%len(palette)]}
	}

	return out
}

func boxSeries(groups ...Summary) []plotpage.BoxSeries {
	out := make([]plotpage.BoxSeries, len(groups))

	for i, g := range groups {
		out[i] = plotpage.BoxSeries{Label: g.Label, Values: g.Velocities}
	}

	return out
}

// TwoLoadPage builds the interactive two-load page.
func TwoLoadPage(r *TwoLoadResult, theme plotpage.Theme) *plotpage.Page {
	a, b := r.Load1, r.Load2
	cOpts := plotpage.NewChartOpts(theme, plotpage.DefaultStyle())
	palette := plotpage.Palette(theme)

	page := plotpage.NewPage(fmt.Sprintf("%s vs %s", a.Label, b.Label), "Two-load velocity comparison").WithTheme(theme)
	page.Add(
		plotpage.Section{
			Title:    "Statistical summary",
			Subtitle: fmt.Sprintf("p = %s, Cohen's d = %s (%s)", formatP(r.TTest.P), formatD(r.CohensD, "%.2f"), r.Effect),
			Chart:    summaryTable(a, b),
			Hint:     verdictHint(r.Verdict),
		},
		plotpage.Section{
			Title: "Mean velocity with 95% confidence interval",
			Chart: plotpage.BuildBarChart(cOpts, []string{a.Label, b.Label}, []plotpage.BarSeries{
				{Name: "Lower bound", Data: []float64{a.Mean - a.CI95, b.Mean - b.CI95}, Color: palette[0]},
				{Name: "Mean", Data: []float64{a.Mean, b.Mean}, Color: palette[1]},
				{Name: "Upper bound", Data: []float64{a.Mean + a.CI95, b.Mean + b.CI95}, Color: palette[2]},
			}, "Velocity (fps)"),
			Hint: plotpage.Hint{Title: "Interpretation", Items: []string{
				fmt.Sprintf("Mean difference %.1f fps: %s", r.MeanDiff, r.MeanLevel),
				fmt.Sprintf("SD difference %.1f fps: %s", r.SDDiff, r.SDLevel),
			}},
		},
		plotpage.Section{
			Title: "Spread comparison",
			Chart: plotpage.BuildBoxPlot(cOpts, "Velocity", boxSeries(a, b), "Velocity (fps)"),
		},
		plotpage.Section{
			Title: "Velocity by shot",
			Chart: plotpage.BuildXYLineChart(cOpts, sequenceSeries(palette, a, b), "Shot", "Velocity (fps)"),
		},
	)

	return page
}

// LadderPage builds the interactive charge ladder page.
func LadderPage(r *LadderResult, theme plotpage.Theme) *plotpage.Page {
	cOpts := plotpage.NewChartOpts(theme, plotpage.DefaultStyle())
	palette := plotpage.Palette(theme)

	labels := make([]string, len(r.Rungs))
	charges := make([]float64, len(r.Rungs))
	means := make([]float64, len(r.Rungs))
	sds := make([]float64, len(r.Rungs))
	summaries := make([]Summary, len(r.Rungs))
	shots := plotpage.ScatterSeries{Name: "Shots", Color: palette[0]}

	for i, rung := range r.Rungs {
		labels[i] = fmt.Sprintf("%.1f gr", rung.Charge)
		charges[i] = rung.Charge
		means[i] = rung.Mean
		sds[i] = rung.SD
		summaries[i] = rung.Summary
		summaries[i].Label = labels[i]

		for _, v := range rung.Velocities {
			shots.X = append(shots.X, rung.Charge)
			shots.Y = append(shots.Y, v)
		}
	}

	hint := plotpage.Hint{Title: fmt.Sprintf("Most consistent charge: %.1f gr (SD %.1f fps)", r.BestCharge, r.BestSD),
		Items: []string{fmt.Sprintf("Average velocity gain: %.1f fps per %.1f gr step", r.AvgStep, r.StepSize)}}
	if r.SmallSample {
		hint.Items = append(hint.Items,
			fmt.Sprintf("Some charges have fewer than %d shots; SD differences at this sample size are mostly noise.", r.MinShotsWarning))
	}

	page := plotpage.NewPage("Charge Weight Ladder", fmt.Sprintf("%d shots across %d charges", r.TotalShots, len(r.Rungs))).WithTheme(theme)
	page.Add(
		plotpage.Section{Title: "Statistical summary", Chart: summaryTable(summaries...), Hint: hint},
		plotpage.Section{
			Title: "Mean velocity by charge",
			Chart: plotpage.BuildXYLineChart(cOpts, []plotpage.LineSeries{
				{Name: "Mean", X: charges, Data: means, Color: palette[0]},
			}, "Charge (gr)", "Velocity (fps)"),
		},
		plotpage.Section{
			Title: "Velocity SD by charge",
			Chart: plotpage.BuildLineChart(cOpts, labels, []plotpage.LineSeries{{Name: "SD", Data: sds, Color: palette[1]}}, "SD (fps)"),
		},
		plotpage.Section{Title: "Spread per charge", Chart: plotpage.BuildBoxPlot(cOpts, "Velocity", boxSeries(summaries...), "Velocity (fps)")},
		plotpage.Section{Title: "All shots", Chart: plotpage.BuildScatterChart(cOpts, []plotpage.ScatterSeries{shots}, "Charge (gr)", "Velocity (fps)")},
	)

	return page
}

// BeforeAfterPage builds the interactive before/after page.
func BeforeAfterPage(r *BeforeAfterResult, theme plotpage.Theme) *plotpage.Page {
	cOpts := plotpage.NewChartOpts(theme, plotpage.DefaultStyle())
	palette := plotpage.Palette(theme)

	after := r.After
	after.Shots = make([]int, after.N)

	for i := range after.Shots {
		after.Shots[i] = r.Before.N + i + 1
	}

	page := plotpage.NewPage("Before / After Modification", "Did the change make a difference?").WithTheme(theme)
	page.Add(
		plotpage.Section{
			Title:    "Statistical summary",
			Subtitle: "p = " + formatP(r.TTest.P),
			Chart:    summaryTable(r.Before, r.After),
			Hint:     verdictHint(r.Verdict),
		},
		plotpage.Section{
			Title: "Change after modification",
			Chart: plotpage.BuildBarChart(cOpts, []string{"Mean change", "SD change"}, []plotpage.BarSeries{
				{Name: "After − Before", Data: []float64{r.MeanChange, r.SDChange}, Color: palette[1]},
			}, "fps"),
		},
		plotpage.Section{Title: "Spread comparison", Chart: plotpage.BuildBoxPlot(cOpts, "Velocity", boxSeries(r.Before, r.After), "Velocity (fps)")},
		plotpage.Section{
			Title: "Velocity over time",
			Chart: plotpage.BuildXYLineChart(cOpts, sequenceSeries(palette, r.Before, after), "Shot", "Velocity (fps)"),
		},
	)

	return page
}

// WriteHTML renders page to path, creating parent directories.
func WriteHTML(path string, page *plotpage.Page) error {
	err := os.MkdirAll(filepath.Dir(path), htmlDirPerm)
	if err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, htmlFilePerm)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}

	err = page.Render(f)
	if err != nil {
		_ = f.Close()

		return fmt.Errorf("render %s: %w", path, err)
	}

	return f.Close()
}
