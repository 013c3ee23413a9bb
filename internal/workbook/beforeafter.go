package workbook

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/Sumatoshi-tech/reloadstats/internal/analysis"
	"github.com/Sumatoshi-tech/reloadstats/internal/dataset"
)

// Template C layout.
const (
	beforeAfterFirst  = 5
	beforeAfterLast   = 64
	beforeAfterHeader = 5
	rowMeanChange     = 13
	rowSDChange       = 14
	rowChangeP        = 15
	rowBAVerdict      = 21
)

func writeBeforeAfter(f *excelize.File, st *styles, opts Options) error {
	s := newSheetWriter(f, SheetBeforeAfter, st)
	d := newDataBlock(beforeAfterFirst, beforeAfterLast)
	before, after := quoted(analysis.ConditionBefore), quoted(analysis.ConditionAfter)

	s.banner("Template C: Before/After Modification - Evaluate a single change with 20-30 shots each")

	s.styled("A3", "DATA ENTRY", st.section).headers("A", 4, "Shot", "Condition", "Velocity (fps)")
	s.entryRows(beforeAfterFirst, beforeAfterLast)

	if opts.Examples {
		s.fillShots(beforeAfterFirst, beforeAfterLast, dataset.MustExample(dataset.ExampleBeforeAfter).Shots, false)
	}

	s.dropList(rng("B", beforeAfterFirst, beforeAfterLast), "Condition Selection", "Choose Before or After",
		analysis.ConditionBefore, analysis.ConditionAfter)
	s.decimalRange(rng("C", beforeAfterFirst, beforeAfterLast), velocityMin, velocityMax, "Invalid Velocity", velocityError)

	s.styled("E3", "STATISTICS SUMMARY", st.section)
	s.styled("E5", "Metric", st.header).
		styled("F5", analysis.ConditionBefore, st.before).
		styled("G5", analysis.ConditionAfter, st.after)
	s.writeStats(d, beforeAfterHeader, shortMetrics, []string{before, after})

	s.styled("E11", "CHANGE METRICS", st.section)
	s.styled(ref("E", rowMeanChange), "Change in Mean (fps)", st.label).
		formula(ref("F", rowMeanChange), iferror("G7-F7")).style(ref("F", rowMeanChange), ref("F", rowMeanChange), st.signed)
	s.styled(ref("E", rowSDChange), "Change in SD (fps)", st.label).
		formula(ref("F", rowSDChange), iferror("G8-F8")).style(ref("F", rowSDChange), ref("F", rowSDChange), st.signed)
	s.styled(ref("E", rowChangeP), "T-test P-value", st.label).
		array(ref("F", rowChangeP), d.tTest(before, after)).style(ref("F", rowChangeP), ref("F", rowChangeP), st.four)

	s.styled("E18", "INTERPRETATION", st.section)
	s.styled("E20", "Verdict:", st.bold)
	s.mergedFormula(ref("E", rowBAVerdict), ref("G", rowBAVerdict+3), beforeAfterVerdictFormula(), false, st.text).
		height(rowBAVerdict, 80)

	s.chart("J3", &excelize.Chart{
		Type:  excelize.Col,
		Title: chartTitle("Mean and SD Before vs After"),
		Series: []excelize.ChartSeries{
			{Name: s.cellRef("F", beforeAfterHeader), Categories: s.seriesRef("E", 7, 8), Values: s.seriesRef("F", 7, 8), Fill: solid(colorBefore)},
			{Name: s.cellRef("G", beforeAfterHeader), Categories: s.seriesRef("E", 7, 8), Values: s.seriesRef("G", 7, 8), Fill: solid(colorAfter)},
		},
		Legend:    excelize.ChartLegend{Position: "bottom"},
		Dimension: excelize.ChartDimension{Width: 480, Height: 260},
	})
	s.chart("J20", &excelize.Chart{
		Type:  excelize.Col,
		Title: chartTitle("Change After Modification"),
		Series: []excelize.ChartSeries{{
			Name:       "Change (fps)",
			Categories: s.seriesRef("E", rowMeanChange, rowSDChange),
			Values:     s.seriesRef("F", rowMeanChange, rowSDChange),
			Fill:       solid(colorLoad1),
		}},
		Legend:    excelize.ChartLegend{Position: "none"},
		Dimension: excelize.ChartDimension{Width: 480, Height: 260},
	})

	s.width("A", 8).width("B", 12).width("C", 15).width("E", 25).width("F", 15).width("G", 15)

	return s.protect(opts.password()).err
}

// beforeAfterVerdictFormula reports not significant, significant but
// practically small, or significant and meaningful.
func beforeAfterVerdictFormula() string {
	p, dm, dsd := ref("F", rowChangeP), ref("F", rowMeanChange), ref("F", rowSDChange)
	deltas := fmt.Sprintf(`"Δ Mean=" & TEXT(%s,"+0.0;-0.0") & " fps, Δ SD=" & TEXT(%s,"+0.0;-0.0") & " fps"`, dm, dsd)

	return fmt.Sprintf(`IF(%[1]s="","Enter data to see interpretation",`+
		`IF(%[1]s>=%[4]s,"➤ NO SIGNIFICANT DIFFERENCE: The modification had no measurable effect. Change is likely random variation.",`+
		`IF(AND(ABS(%[2]s)<%[5]s,ABS(%[3]s)<%[6]s),"➤ STATISTICALLY SIGNIFICANT BUT PRACTICALLY SMALL: The change is real but probably not worth worrying about. " & %[7]s,`+
		`"➤ SIGNIFICANT AND MEANINGFUL: The modification had a real, measurable effect. " & %[7]s & ". Consider whether this improvement/degradation justifies the change.")))`,
		p, dm, dsd, nameAlpha, namePracticalMean, namePracticalSD, deltas)
}
