package workbook

import (
	"fmt"
	"strings"
)

// Functions added after Excel 2007 need the _xlfn prefix in the file format.
const (
	fnStdev = "_xlfn.STDEV.S"
	fnTTest = "_xlfn.T.TEST"
)

// ciZ is the normal quantile used for the 95% confidence half-width.
const ciZ = 1.96

// dataBlock is the label and velocity columns of a data entry area.
type dataBlock struct {
	labels string
	values string
}

func newDataBlock(first, last int) dataBlock {
	return dataBlock{labels: absRange("B", first, last), values: absRange("C", first, last)}
}

// where selects the velocities whose label equals crit, as an array expression.
func (d dataBlock) where(crit string) string {
	return fmt.Sprintf("IF(%s=%s,%s)", d.labels, crit, d.values)
}

func iferror(expr string) string {
	return "IFERROR(" + expr + `,"")`
}

// quoted is an Excel string literal.
func quoted(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}

type metricKind int

const (
	metricN metricKind = iota
	metricMean
	metricSD
	metricES
	metricCI
	metricMin
	metricMax
)

type metric struct {
	kind  metricKind
	label string
}

var (
	fullMetrics = []metric{
		{metricN, "Sample Size (n)"},
		{metricMean, "Mean Velocity (fps)"},
		{metricSD, "Std Dev (fps)"},
		{metricES, "Extreme Spread (fps)"},
		{metricCI, "95% CI (±fps)"},
		{metricMin, "Min Velocity (fps)"},
		{metricMax, "Max Velocity (fps)"},
	}
	shortMetrics = fullMetrics[:4]
)

// groupCells locates the n and SD cells of one statistics column, which the
// CI formula depends on.
type groupCells struct {
	n  string
	sd string
}

// statExpr returns the unguarded expression for one metric of the group
// crit and whether it must be entered as an array formula.
func (d dataBlock) statExpr(kind metricKind, crit string, cells groupCells) (string, bool) {
	sel := d.where(crit)

	switch kind {
	case metricN:
		return fmt.Sprintf("COUNTIF(%s,%s)", d.labels, crit), false
	case metricMean:
		return "AVERAGE(" + sel + ")", true
	case metricSD:
		return fnStdev + "(" + sel + ")", true
	case metricES:
		return fmt.Sprintf("MAX(%s)-MIN(%s)", sel, sel), true
	case metricCI:
		return fmt.Sprintf("%g*(%s/SQRT(%s))", ciZ, cells.sd, cells.n), false
	case metricMin:
		return "MIN(" + sel + ")", true
	default:
		return "MAX(" + sel + ")", true
	}
}

// put writes a formula as a regular or an array formula.
func (s *sheetWriter) put(cell, formula string, isArray bool) *sheetWriter {
	if isArray {
		return s.array(cell, formula)
	}

	return s.formula(cell, formula)
}

// tTest is the two-sided pooled-variance t-test between two groups.
func (d dataBlock) tTest(critA, critB string) string {
	return iferror(fmt.Sprintf("%s(%s,%s,2,2)", fnTTest, d.where(critA), d.where(critB)))
}

// cohensD is the pooled-SD effect size of group b over group a.
func cohensD(meanA, meanB, sdA, sdB, nA, nB string) string {
	return iferror(fmt.Sprintf("(%s-%s)/SQRT(((%s-1)*%s^2+(%s-1)*%s^2)/(%s+%s-2))",
		meanB, meanA, nA, sdA, nB, sdB, nA, nB))
}

// writeStats writes a metric column per group below header row, with the
// metric names in column E. crits are the criteria the groups match, one
// per column starting at F.
func (s *sheetWriter) writeStats(d dataBlock, header int, metrics []metric, crits []string) {
	cols := []string{"F", "G"}

	for i, m := range metrics {
		row := header + 1 + i
		s.styled(ref("E", row), m.label, s.st.label)

		id := s.st.one
		if m.kind == metricN {
			id = s.st.int
		}

		for j, crit := range crits {
			col := cols[j]
			cells := groupCells{n: ref(col, header+1), sd: ref(col, header+3)}

			expr, isArray := d.statExpr(m.kind, crit, cells)
			s.put(ref(col, row), iferror(expr), isArray).style(ref(col, row), ref(col, row), id)
		}
	}
}

// level is one band of an interpretation formula: the text around the
// formatted value.
type level struct {
	prefix string
	suffix string
}

// interpretation builds the three-band text formula shared by the
// interpretation rows. value is compared against lo and hi in turn.
func interpretation(cell, value, format, lo, hi string, bands [3]level) string {
	shown := fmt.Sprintf(`TEXT(%s,"%s")`, value, format)
	text := func(b level) string {
		return quoted(b.prefix) + " & " + shown + " & " + quoted(b.suffix)
	}

	return fmt.Sprintf(`IF(%s="","Enter data to see interpretation",IF(%s<%s,%s,IF(%s<%s,%s,%s)))`,
		cell, value, lo, text(bands[0]), value, hi, text(bands[1]), text(bands[2]))
}
