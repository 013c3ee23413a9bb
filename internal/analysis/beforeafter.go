package analysis

import (
	"fmt"
	"math"

	"github.com/Sumatoshi-tech/reloadstats/internal/dataset"
	"github.com/Sumatoshi-tech/reloadstats/pkg/alg/stats"
)

// Condition labels for before/after datasets.
const (
	ConditionBefore = "Before"
	ConditionAfter  = "After"
)

// Practical thresholds for a modification that tested significant.
const (
	PracticalMeanChange = 10.0
	PracticalSDChange   = 3.0
)

// Before/after verdicts.
const (
	VerdictNotSignificant        VerdictKind = "not-significant"
	VerdictSignificantSmall      VerdictKind = "significant-but-small"
	VerdictSignificantMeaningful VerdictKind = "significant-and-meaningful"
)

// BeforeAfterResult is the outcome of a before/after modification test.
type BeforeAfterResult struct {
	Dataset     string            `json:"dataset"      yaml:"dataset"`
	Before      Summary           `json:"before"       yaml:"before"`
	After       Summary           `json:"after"        yaml:"after"`
	MeanChange  float64           `json:"mean_change"  yaml:"mean_change"`
	SDChange    float64           `json:"sd_change"    yaml:"sd_change"`
	TTest       stats.TTestResult `json:"ttest"        yaml:"ttest"`
	Significant bool              `json:"significant"  yaml:"significant"`
	Alpha       float64           `json:"alpha"        yaml:"alpha"`
	Verdict     Verdict           `json:"verdict"      yaml:"verdict"`
}

// BeforeAfter compares shots labelled Before and After (case-insensitive).
// Changes are reported as after − before.
func BeforeAfter(ds *dataset.Dataset, opts Options) (*BeforeAfterResult, error) {
	opts = opts.WithDefaults()

	before, ok := ds.Group(ConditionBefore)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrMissingCondition, ConditionBefore)
	}

	after, ok := ds.Group(ConditionAfter)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrMissingCondition, ConditionAfter)
	}

	tt, err := stats.TTestInd(before.Velocities, after.Velocities)
	if err != nil {
		return nil, fmt.Errorf("t-test before vs after: %w", err)
	}

	res := &BeforeAfterResult{
		Dataset:     ds.Name,
		Before:      Summarize(before),
		After:       Summarize(after),
		TTest:       tt,
		Significant: tt.Significant(opts.Alpha),
		Alpha:       opts.Alpha,
	}

	res.MeanChange = res.After.Mean - res.Before.Mean
	res.SDChange = res.After.SD - res.Before.SD
	res.Verdict = beforeAfterVerdict(res)

	return res, nil
}

func beforeAfterVerdict(r *BeforeAfterResult) Verdict {
	switch {
	case !r.Significant:
		return Verdict{
			Kind:     VerdictNotSignificant,
			Headline: "No significant difference detected",
			Details:  []string{"The modification had no measurable effect."},
		}
	case math.Abs(r.MeanChange) < PracticalMeanChange && math.Abs(r.SDChange) < PracticalSDChange:
		return Verdict{
			Kind:     VerdictSignificantSmall,
			Headline: "Statistically significant but practically small",
			Details:  []string{"The change is real but probably not worth worrying about."},
		}
	default:
		return Verdict{
			Kind:     VerdictSignificantMeaningful,
			Headline: "Significant and meaningful difference",
			Details:  []string{"The modification had a real, measurable effect."},
		}
	}
}
