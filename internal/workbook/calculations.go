package workbook

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/Sumatoshi-tech/reloadstats/internal/analysis"
	"github.com/Sumatoshi-tech/reloadstats/pkg/alg/stats"
)

// Defined names for the thresholds on the hidden calculations sheet.
const (
	nameAlpha          = "Alpha"
	nameMeanNegligible = "MeanNegligible"
	nameMeanSmall      = "MeanSmall"
	nameSDNegligible   = "SDNegligible"
	nameSDSmall        = "SDSmall"
	nameEffectSmall    = "EffectSmall"
	nameEffectMedium   = "EffectMedium"
	nameMinShots       = "MinShots"
	namePracticalMean  = "PracticalMean"
	namePracticalSD    = "PracticalSD"
)

type threshold struct {
	name  string
	value float64
	desc  string
}

func thresholds(opts analysis.Options) []threshold {
	opts = opts.WithDefaults()

	return []threshold{
		{nameAlpha, opts.Alpha, "Significance level for t-tests"},
		{nameMeanNegligible, analysis.MeanNegligibleBelow, "Mean difference below this is negligible (fps)"},
		{nameMeanSmall, analysis.MeanSmallBelow, "Mean difference below this is small (fps)"},
		{nameSDNegligible, analysis.SDNegligibleBelow, "SD difference below this is negligible (fps)"},
		{nameSDSmall, analysis.SDSmallBelow, "SD difference below this is small (fps)"},
		{nameEffectSmall, stats.EffectSmallMin, "Cohen's d at which an effect stops being tiny"},
		{nameEffectMedium, stats.EffectMediumMin, "Cohen's d at which an effect stops being small"},
		{nameMinShots, float64(opts.MinShotsWarning), "Shots per charge below which a ladder is screening only"},
		{namePracticalMean, analysis.PracticalMeanChange, "Significant mean change below this is practically small (fps)"},
		{namePracticalSD, analysis.PracticalSDChange, "Significant SD change below this is practically small (fps)"},
	}
}

func writeCalculations(f *excelize.File, st *styles, opts Options) error {
	s := newSheetWriter(f, SheetCalculations, st)
	s.styled("A1", "Name", st.header).styled("B1", "Value", st.header).styled("C1", "Meaning", st.header)

	for i, t := range thresholds(opts.Analysis) {
		row := i + 2
		s.value(ref("A", row), t.name).styled(ref("B", row), t.value, st.setting).value(ref("C", row), t.desc)

		if s.err == nil {
			s.fail("define "+t.name, f.SetDefinedName(&excelize.DefinedName{
				Name:     t.name,
				RefersTo: fmt.Sprintf("'%s'!$B$%d", SheetCalculations, row),
			}))
		}
	}

	s.width("A", 18).width("B", 10).width("C", 60)

	return s.err
}
