package analysis

import (
	"fmt"

	"github.com/Sumatoshi-tech/reloadstats/internal/dataset"
	"github.com/Sumatoshi-tech/reloadstats/pkg/alg/stats"
)

// Rung is one charge weight of a ladder.
type Rung struct {
	Summary `yaml:",inline"`

	Charge float64 `json:"charge" yaml:"charge"`
}

// LadderResult is the outcome of a charge weight ladder.
type LadderResult struct {
	Dataset     string  `json:"dataset"      yaml:"dataset"`
	Rungs       []Rung  `json:"rungs"        yaml:"rungs"`
	BestCharge  float64 `json:"best_charge"  yaml:"best_charge"`
	BestSD      float64 `json:"best_sd"      yaml:"best_sd"`
	AvgStep     float64 `json:"avg_step"     yaml:"avg_step"`
	StepSize    float64 `json:"step_size"    yaml:"step_size"`
	TotalShots  int     `json:"total_shots"  yaml:"total_shots"`
	MinShots    int     `json:"min_shots"    yaml:"min_shots"`
	SmallSample bool    `json:"small_sample" yaml:"small_sample"`

	// MinShotsWarning is the per-charge shot count below which SmallSample is set.
	MinShotsWarning int `json:"min_shots_warning" yaml:"min_shots_warning"`
}

// Ladder summarises each charge weight in ascending order, picks the charge
// with the lowest SD (ties go to the lighter charge), and reports the average
// velocity gain between consecutive rungs.
func Ladder(ds *dataset.Dataset, opts Options) (*LadderResult, error) {
	opts = opts.WithDefaults()

	groups, err := ds.GroupsByCharge()
	if err != nil {
		return nil, fmt.Errorf("group by charge: %w", err)
	}

	if len(groups) < 2 {
		return nil, fmt.Errorf("%w: found %d", ErrTooFewGroups, len(groups))
	}

	res := &LadderResult{Dataset: ds.Name, Rungs: make([]Rung, len(groups))}

	for i, g := range groups {
		res.Rungs[i] = Rung{Summary: Summarize(g.Group), Charge: g.Charge}
	}

	best := res.Rungs[0]
	minShots := best.N
	steps := make([]float64, 0, len(res.Rungs)-1)

	for i, r := range res.Rungs {
		res.TotalShots += r.N
		minShots = min(minShots, r.N)

		if r.SD < best.SD {
			best = r
		}

		if i > 0 {
			steps = append(steps, r.Mean-res.Rungs[i-1].Mean)
		}
	}

	res.BestCharge = best.Charge
	res.BestSD = best.SD
	res.AvgStep = stats.Mean(steps)
	res.StepSize = (res.Rungs[len(res.Rungs)-1].Charge - res.Rungs[0].Charge) / float64(len(res.Rungs)-1)
	res.MinShots = minShots
	res.MinShotsWarning = opts.MinShotsWarning
	res.SmallSample = minShots < opts.MinShotsWarning

	return res, nil
}
