package analysis

import (
	"encoding/json"
	"fmt"
	"math"

	"github.com/Sumatoshi-tech/reloadstats/internal/dataset"
	"github.com/Sumatoshi-tech/reloadstats/pkg/alg/stats"
)

// Level grades the practical size of a difference.
type Level string

// Practical difference levels.
const (
	LevelNegligible Level = "NEGLIGIBLE"
	LevelSmall      Level = "SMALL"
	LevelMeaningful Level = "MEANINGFUL"
)

// Practical thresholds, in fps.
const (
	MeanNegligibleBelow = 5.0
	MeanSmallBelow      = 15.0
	SDNegligibleBelow   = 2.0
	SDSmallBelow        = 5.0
)

// VerdictKind identifies the recommendation class.
type VerdictKind string

// Two-load verdicts.
const (
	VerdictNoDifference VerdictKind = "no-meaningful-difference"
	VerdictSmallButReal VerdictKind = "small-but-real"
	VerdictClear        VerdictKind = "clear-difference"
)

// Verdict is the final recommendation of an analysis.
type Verdict struct {
	Kind     VerdictKind `json:"kind"     yaml:"kind"`
	Headline string      `json:"headline" yaml:"headline"`
	Details  []string    `json:"details"  yaml:"details"`
}

// TwoLoadResult is the outcome of comparing two loads.
type TwoLoadResult struct {
	Dataset        string            `json:"dataset"         yaml:"dataset"`
	Load1          Summary           `json:"load1"           yaml:"load1"`
	Load2          Summary           `json:"load2"           yaml:"load2"`
	MeanDiff       float64           `json:"mean_diff"       yaml:"mean_diff"`
	SDDiff         float64           `json:"sd_diff"         yaml:"sd_diff"`
	Faster         string            `json:"faster"          yaml:"faster"`
	MoreConsistent string            `json:"more_consistent" yaml:"more_consistent"`
	TTest          stats.TTestResult `json:"ttest"           yaml:"ttest"`
	CohensD        float64           `json:"cohens_d"        yaml:"cohens_d"`
	MeanLevel      Level             `json:"mean_level"      yaml:"mean_level"`
	SDLevel        Level             `json:"sd_level"        yaml:"sd_level"`
	Significant    bool              `json:"significant"     yaml:"significant"`
	Effect         stats.EffectSize  `json:"effect"          yaml:"effect"`
	Alpha          float64           `json:"alpha"           yaml:"alpha"`
	Verdict        Verdict           `json:"verdict"         yaml:"verdict"`
}

// TwoLoad compares exactly two loads: descriptive statistics, a pooled t-test,
// Cohen's d, interpretation levels, and a recommendation.
func TwoLoad(ds *dataset.Dataset, opts Options) (*TwoLoadResult, error) {
	opts = opts.WithDefaults()

	g1, g2, err := twoGroups(ds)
	if err != nil {
		return nil, err
	}

	s1, s2 := Summarize(g1), Summarize(g2)

	tt, err := stats.TTestInd(g1.Velocities, g2.Velocities)
	if err != nil {
		return nil, fmt.Errorf("t-test %s vs %s: %w", g1.Label, g2.Label, err)
	}

	res := &TwoLoadResult{
		Dataset:        ds.Name,
		Load1:          s1,
		Load2:          s2,
		MeanDiff:       math.Abs(s2.Mean - s1.Mean),
		SDDiff:         math.Abs(s2.SD - s1.SD),
		Faster:         pick(s2.Mean > s1.Mean, s2.Label, s1.Label),
		MoreConsistent: pick(s2.SD < s1.SD, s2.Label, s1.Label),
		TTest:          tt,
		CohensD:        stats.CohensD(g1.Velocities, g2.Velocities),
		Significant:    tt.Significant(opts.Alpha),
		Alpha:          opts.Alpha,
	}

	res.MeanLevel = grade(res.MeanDiff, MeanNegligibleBelow, MeanSmallBelow)
	res.SDLevel = grade(res.SDDiff, SDNegligibleBelow, SDSmallBelow)
	res.Effect = stats.EffectSizeLabel(res.CohensD)
	res.Verdict = twoLoadVerdict(res)

	return res, nil
}

// MarshalJSON writes an infinite Cohen's d as null.
func (r TwoLoadResult) MarshalJSON() ([]byte, error) {
	type plain TwoLoadResult

	var d *float64
	if !math.IsInf(r.CohensD, 0) && !math.IsNaN(r.CohensD) {
		d = &r.CohensD
	}

	return json.Marshal(struct {
		plain

		CohensD *float64 `json:"cohens_d"`
	}{plain: plain(r), CohensD: d})
}

// Primer runs the two-load comparison on a primer swap test.
func Primer(ds *dataset.Dataset, opts Options) (*TwoLoadResult, error) {
	res, err := TwoLoad(ds, opts)
	if err != nil {
		return nil, fmt.Errorf("primer comparison: %w", err)
	}

	return res, nil
}

func twoLoadVerdict(r *TwoLoadResult) Verdict {
	absD := math.Abs(r.CohensD)
	name1, name2 := r.Load1.Label, r.Load2.Label

	switch {
	case !r.Significant || absD < stats.EffectSmallMin:
		return Verdict{
			Kind:     VerdictNoDifference,
			Headline: "No meaningful difference detected",
			Details: []string{
				fmt.Sprintf("The data shows no reliable difference between %s and %s.", name1, name2),
				"Either would work fine. Choose based on cost, availability, or other factors (temperature stability, brass life).",
				fmt.Sprintf("No need to switch if you're currently using %s.", name1),
			},
		}
	case absD < stats.EffectMediumMin:
		return Verdict{
			Kind:     VerdictSmallButReal,
			Headline: "Small but real difference detected",
			Details: []string{
				r.Faster + " is faster.",
				r.MoreConsistent + " is more consistent.",
				"Switch if you shoot long range (>600 yards), the better load is the same price, or you want every edge for competition.",
				fmt.Sprintf("Stick with %s if you're just hunting or shooting casually.", name1),
			},
		}
	default:
		better := pick(r.Load2.Mean > r.Load1.Mean && r.Load2.SD <= r.Load1.SD, name2, name1)

		return Verdict{
			Kind:     VerdictClear,
			Headline: "Clear, meaningful difference detected",
			Details: []string{
				better + " is the clear winner.",
				"The difference is large enough to matter in practical shooting.",
				fmt.Sprintf("RECOMMENDATION: Switch to %s if you're not using it already.", better),
			},
		}
	}
}

func grade(diff, negligibleBelow, smallBelow float64) Level {
	switch {
	case diff < negligibleBelow:
		return LevelNegligible
	case diff < smallBelow:
		return LevelSmall
	default:
		return LevelMeaningful
	}
}

func pick(cond bool, yes, no string) string {
	if cond {
		return yes
	}

	return no
}
