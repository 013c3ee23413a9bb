package workbook

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/Sumatoshi-tech/reloadstats/internal/dataset"
)

// Template B layout.
const (
	ladderFirst     = 6
	ladderLast      = 185
	ladderHeader    = 7
	ladderChargeLo  = 9
	ladderChargeHi  = 14
	rowBestCharge   = 18
	rowAvgStep      = 19
	rowSampleCheck  = 20
	rowSampleResult = 21
	rowLadderRec    = 24
	rowLadderText   = 26
	chargeMin       = 35.0
	chargeMax       = 55.0
)

const ladderAdvice = `Based on this ladder test:
1. Note the charge with lowest SD
2. Validate with 30+ shots at that charge
3. Test group size (not just velocity) at the best charge
4. Check for pressure signs before regular use

Remember: Ladder tests with small samples are for screening only. What looks like a 'node' is often random variation.`

// ladderColumns are the per-charge statistics after the charge column E.
var ladderColumns = []struct {
	col   string
	title string
	kind  metricKind
}{
	{"F", "n", metricN},
	{"G", "Mean", metricMean},
	{"H", "SD", metricSD},
	{"I", "ES", metricES},
	{"J", "Min", metricMin},
	{"K", "Max", metricMax},
}

func writeLadder(f *excelize.File, st *styles, opts Options) error {
	s := newSheetWriter(f, SheetLadder, st)
	d := newDataBlock(ladderFirst, ladderLast)

	s.banner("Template B: Charge Weight Ladder - Test 3-6 charges with 10-30 shots each")
	s.merged("A2", "T2", "⚠ Use for screening only. Validate the most consistent charge with 30+ shots before trusting it.", st.warnBanner)

	s.styled("A4", "DATA ENTRY", st.section).headers("A", 5, "Shot", "Charge (gr)", "Velocity (fps)")
	s.entryRows(ladderFirst, ladderLast)

	var charges []float64

	if opts.Examples {
		ds := dataset.MustExample(dataset.ExampleLadder)
		s.fillShots(ladderFirst, ladderLast, ds.Shots, true)
		charges = exampleCharges(ds)
	}

	s.decimalRange(rng("B", ladderFirst, ladderLast), chargeMin, chargeMax, "Invalid Charge Weight", "Charge must be between 35.0-55.0 grains")
	s.decimalRange(rng("C", ladderFirst, ladderLast), velocityMin, velocityMax, "Invalid Velocity", velocityError)

	s.styled("E4", "PER-CHARGE STATISTICS", st.section)
	s.merged("E5", "K5", "(List each charge you tested in the Charge column; statistics fill in automatically)", st.note)
	s.headers("E", ladderHeader, "Charge", "n", "Mean", "SD", "ES", "Min", "Max")
	s.merged("E8", "K8", "Statistics calculate for up to six charges", st.note)

	for row := ladderChargeLo; row <= ladderChargeHi; row++ {
		writeLadderRow(s, d, row, charges)
	}

	s.decimalRange(rng("E", ladderChargeLo, ladderChargeHi), chargeMin, chargeMax, "Invalid Charge Weight", "Charge must be between 35.0-55.0 grains")

	writeLadderAnalysis(s)

	s.chart("M3", &excelize.Chart{
		Type:  excelize.Line,
		Title: chartTitle("Mean Velocity by Charge"),
		Series: []excelize.ChartSeries{{
			Name:       "Mean (fps)",
			Categories: s.seriesRef("E", ladderChargeLo, ladderChargeHi),
			Values:     s.seriesRef("G", ladderChargeLo, ladderChargeHi),
			Marker:     excelize.ChartMarker{Symbol: "circle", Size: 7},
		}},
		Legend:    excelize.ChartLegend{Position: "none"},
		Dimension: excelize.ChartDimension{Width: 480, Height: 260},
	})
	s.chart("M20", &excelize.Chart{
		Type:  excelize.Col,
		Title: chartTitle("Standard Deviation by Charge"),
		Series: []excelize.ChartSeries{{
			Name:       "SD (fps)",
			Categories: s.seriesRef("E", ladderChargeLo, ladderChargeHi),
			Values:     s.seriesRef("H", ladderChargeLo, ladderChargeHi),
			Fill:       solid(colorLoad2),
		}},
		Legend:    excelize.ChartLegend{Position: "none"},
		Dimension: excelize.ChartDimension{Width: 480, Height: 260},
	})

	s.width("A", 8).width("B", 12).width("C", 15)

	for _, col := range []string{"E", "F", "G", "H", "I", "J", "K"} {
		s.width(col, 12)
	}

	return s.protect(opts.password()).err
}

func exampleCharges(ds *dataset.Dataset) []float64 {
	groups, err := ds.GroupsByCharge()
	if err != nil {
		return nil
	}

	out := make([]float64, len(groups))
	for i, g := range groups {
		out[i] = g.Charge
	}

	return out
}

// writeLadderRow writes one charge row. The charge cell stays editable and
// every statistic is blank until it holds a value.
func writeLadderRow(s *sheetWriter, d dataBlock, row int, charges []float64) {
	charge := ref("E", row)
	crit := "$" + charge

	if i := row - ladderChargeLo; i < len(charges) {
		s.value(charge, charges[i])
	}

	s.style(charge, charge, s.st.entryValue)

	for _, c := range ladderColumns {
		expr, isArray := d.statExpr(c.kind, crit, groupCells{})
		formula := iferror(fmt.Sprintf(`IF(%s="","",%s)`, crit, expr))

		id := s.st.one
		if c.kind == metricN {
			id = s.st.int
		}

		s.put(ref(c.col, row), formula, isArray).style(ref(c.col, row), ref(c.col, row), id)
	}
}

func writeLadderAnalysis(s *sheetWriter) {
	chargeRange := absRange("E", ladderChargeLo, ladderChargeHi)
	nRange := absRange("F", ladderChargeLo, ladderChargeHi)
	meanRange := absRange("G", ladderChargeLo, ladderChargeHi)
	sdRange := absRange("H", ladderChargeLo, ladderChargeHi)

	s.styled("E16", "ANALYSIS", s.st.section)

	// Ties go to the lighter charge whatever order the charges are listed in.
	s.styled(ref("E", rowBestCharge), "Most Consistent Charge:", s.st.bold).
		array(ref("F", rowBestCharge), iferror(fmt.Sprintf(`IF(COUNT(%[2]s)=0,"",MIN(IF(%[2]s=MIN(%[2]s),%[1]s)))`, chargeRange, sdRange))).
		style(ref("F", rowBestCharge), ref("F", rowBestCharge), s.st.one).
		value(ref("G", rowBestCharge), "grains (SD =").
		formula(ref("H", rowBestCharge), iferror(fmt.Sprintf(`IF(COUNT(%[1]s)=0,"",MIN(%[1]s))`, sdRange))).
		style(ref("H", rowBestCharge), ref("H", rowBestCharge), s.st.one).
		value(ref("I", rowBestCharge), "fps)")

	s.styled(ref("E", rowAvgStep), "Average Velocity Step:", s.st.bold).
		formula(ref("F", rowAvgStep), iferror(fmt.Sprintf(
			`(INDEX(%[2]s,MATCH(MAX(%[1]s),%[1]s,0))-INDEX(%[2]s,MATCH(MIN(%[1]s),%[1]s,0)))/(COUNT(%[1]s)-1)`,
			chargeRange, meanRange))).
		style(ref("F", rowAvgStep), ref("F", rowAvgStep), s.st.one).
		value(ref("G", rowAvgStep), "fps per step")

	s.styled(ref("E", rowSampleCheck), "Sample Size Check:", s.st.bold)
	s.mergedFormula(ref("E", rowSampleResult), ref("K", rowSampleResult), iferror(fmt.Sprintf(
		`IF(COUNT(%[1]s)=0,"Enter data to see sample size warnings",IF(MIN(IF(%[2]s<>"",%[1]s))<%[3]s,`+
			`"⚠ WARNING: Some charges have fewer than " & %[3]s & " shots! Results unreliable. Use for screening only.",`+
			`"✓ All charges have adequate sample sizes (" & %[3]s & "+ shots each)"))`,
		nRange, chargeRange, nameMinShots)), true, s.st.warning).
		height(rowSampleResult, 40)

	s.styled(ref("E", rowLadderRec), "RECOMMENDATION", s.st.success)
	s.merged(ref("E", rowLadderText), ref("K", rowLadderText+5), ladderAdvice, s.st.text)
}
