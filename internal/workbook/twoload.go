package workbook

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/Sumatoshi-tech/reloadstats/internal/dataset"
)

// Template A layout.
const (
	twoLoadFirst  = 5
	twoLoadLast   = 64
	twoLoadHeader = 5

	rowMeanDiff   = 17
	rowSDDiff     = 18
	rowPValue     = 19
	rowCohensD    = 20
	rowInterp     = 23
	rowRecommend  = 38
	rowVerdict    = 40
	placeholderA  = "Load_A"
	placeholderB  = "Load_B"
	velocityMin   = 1000
	velocityMax   = 4000
	velocityError = "Velocity must be between 1000-4000 fps"
)

func loadNames(opts Options) (string, string, []dataset.Shot) {
	if !opts.Examples {
		return placeholderA, placeholderB, nil
	}

	ds := dataset.MustExample(dataset.ExampleTwoLoad)
	labels := ds.Labels()

	return labels[0], labels[1], ds.Shots
}

func writeTwoLoad(f *excelize.File, st *styles, opts Options) error {
	s := newSheetWriter(f, SheetTwoLoad, st)
	d := newDataBlock(twoLoadFirst, twoLoadLast)
	nameA, nameB, shots := loadNames(opts)

	s.banner("Template A: Two-Load Comparison - Compare any two loads with 30 shots each")

	s.styled("A3", "DATA ENTRY", st.section).headers("A", 4, "Shot", "Load", "Velocity (fps)")
	s.entryRows(twoLoadFirst, twoLoadLast).fillShots(twoLoadFirst, twoLoadLast, shots, false)

	s.rangeList(rng("B", twoLoadFirst, twoLoadLast), "Load Selection",
		"Choose one of the two load names from the statistics header", "$F$5:$G$5")
	s.decimalRange(rng("C", twoLoadFirst, twoLoadLast), velocityMin, velocityMax, "Invalid Velocity", velocityError)

	s.styled("E3", "STATISTICS SUMMARY", st.section)
	s.styled("E5", "Metric", st.header).styled("F5", nameA, st.load1).styled("G5", nameB, st.load2)
	s.writeStats(d, twoLoadHeader, fullMetrics, []string{"F$5", "G$5"})

	s.styled("E15", "COMPARISON", st.section)
	s.styled(ref("E", rowMeanDiff), "Difference in Means (fps)", st.label).
		formula(ref("F", rowMeanDiff), iferror("ABS(G7-F7)")).style(ref("F", rowMeanDiff), ref("F", rowMeanDiff), st.one)
	s.styled(ref("E", rowSDDiff), "Difference in SD (fps)", st.label).
		formula(ref("F", rowSDDiff), iferror("ABS(G8-F8)")).style(ref("F", rowSDDiff), ref("F", rowSDDiff), st.one)
	s.styled(ref("E", rowPValue), "T-test P-value", st.label).
		array(ref("F", rowPValue), d.tTest("$F$5", "$G$5")).style(ref("F", rowPValue), ref("F", rowPValue), st.four)
	s.styled(ref("E", rowCohensD), "Cohen's d (Effect Size)", st.label).
		formula(ref("F", rowCohensD), cohensD("F7", "G7", "F8", "G8", "F6", "G6")).
		style(ref("F", rowCohensD), ref("F", rowCohensD), st.three)

	writeTwoLoadInterpretation(s)

	s.styled(ref("E", rowRecommend), "RECOMMENDATION", st.success)
	s.mergedFormula(ref("E", rowVerdict), ref("G", rowVerdict+2), twoLoadVerdictFormula(), false, st.text).
		height(rowVerdict, 60)

	meanValues := s.rowRef("F", "G", 7)
	loadCats := s.rowRef("F", "G", twoLoadHeader)

	s.chart("J3", &excelize.Chart{
		Type:      excelize.Col,
		Title:     chartTitle("Mean Velocity by Load"),
		Series:    []excelize.ChartSeries{{Name: "Mean (fps)", Categories: loadCats, Values: meanValues, Fill: solid(colorLoad1)}},
		Legend:    excelize.ChartLegend{Position: "none"},
		Dimension: excelize.ChartDimension{Width: 480, Height: 260},
	})
	s.chart("J20", &excelize.Chart{
		Type:      excelize.Col,
		Title:     chartTitle("Standard Deviation by Load"),
		Series:    []excelize.ChartSeries{{Name: "SD (fps)", Categories: loadCats, Values: s.rowRef("F", "G", 8), Fill: solid(colorLoad2)}},
		Legend:    excelize.ChartLegend{Position: "none"},
		Dimension: excelize.ChartDimension{Width: 480, Height: 260},
	})
	s.chart("J37", &excelize.Chart{
		Type:  excelize.Line,
		Title: chartTitle("Velocity by Shot"),
		Series: []excelize.ChartSeries{{
			Name:       "Velocity (fps)",
			Categories: s.seriesRef("A", twoLoadFirst, twoLoadLast),
			Values:     s.seriesRef("C", twoLoadFirst, twoLoadLast),
		}},
		Legend:    excelize.ChartLegend{Position: "bottom"},
		Dimension: excelize.ChartDimension{Width: 480, Height: 260},
	})

	s.width("A", 8).width("B", 12).width("C", 15).width("E", 25).width("F", 15).width("G", 15)

	return s.protect(opts.password()).err
}

func writeTwoLoadInterpretation(s *sheetWriter) {
	s.styled(ref("E", rowInterp), "INTERPRETATION", s.st.section)

	meanDiff, sdDiff := ref("F", rowMeanDiff), ref("F", rowSDDiff)
	pValue, d := ref("F", rowPValue), ref("F", rowCohensD)

	rows := []struct {
		label   string
		formula string
	}{
		{"Velocity Difference:", interpretation(meanDiff, meanDiff, "0.0", nameMeanNegligible, nameMeanSmall, [3]level{
			{"✓ NEGLIGIBLE (", " fps) - Won't matter at any distance"},
			{"⚠ SMALL (", " fps) - Matters only at extreme long range (>1000 yds)"},
			{"★ MEANINGFUL (", " fps) - Will affect trajectory at long range"},
		})},
		{"SD Difference:", interpretation(sdDiff, sdDiff, "0.0", nameSDNegligible, nameSDSmall, [3]level{
			{"✓ NEGLIGIBLE (", " fps) - Essentially same consistency"},
			{"⚠ SMALL (", " fps) - Slight difference, both reasonable"},
			{"★ MEANINGFUL (", " fps) - Noticeably different consistency"},
		})},
		{"Statistical Significance:", fmt.Sprintf(
			`IF(%[1]s="","Enter data to see interpretation",IF(%[1]s<%[2]s,"★ SIGNIFICANT (p=" & TEXT(%[1]s,"0.0000") & ") - Difference unlikely to be random","✓ NOT SIGNIFICANT (p=" & TEXT(%[1]s,"0.0000") & ") - Could be random variation"))`,
			pValue, nameAlpha)},
		{"Effect Size:", interpretation(d, "ABS("+d+")", "0.000", nameEffectSmall, nameEffectMedium, [3]level{
			{"✓ TINY (d=", ") - Minimal practical difference"},
			{"⚠ SMALL (d=", ") - Detectable but not dramatic"},
			{"★ MEDIUM/LARGE (d=", ") - Substantial practical difference"},
		})},
	}

	row := rowInterp + 2

	for _, r := range rows {
		s.styled(ref("E", row), r.label, s.st.bold)
		s.mergedFormula(ref("E", row+1), ref("G", row+2), r.formula, false, s.st.text)
		row += 3
	}
}

// twoLoadVerdictFormula mirrors the text verdict: not significant or tiny
// effect, small effect, otherwise a clear winner. The winner is load B only
// when it is both faster and no less consistent.
func twoLoadVerdictFormula() string {
	p, d := ref("F", rowPValue), ref("F", rowCohensD)

	return fmt.Sprintf(`IF(%[1]s="","Enter data to see recommendation",`+
		`IF(OR(%[1]s>=%[3]s,ABS(%[2]s)<%[4]s),"➤ VERDICT: No meaningful difference detected. Either load works fine. Choose by cost/availability.",`+
		`IF(ABS(%[2]s)<%[5]s,"➤ VERDICT: Small but real difference detected. Switch if shooting long range (>600 yds) or if the better load is the same price. Otherwise, " & F5 & " is fine.",`+
		`"➤ VERDICT: Clear, meaningful difference detected. " & IF(AND(G7>F7,G8<=F8),G5,F5) & " is the clear winner. Recommend switching if not using it already.")))`,
		p, d, nameAlpha, nameEffectSmall, nameEffectMedium)
}
