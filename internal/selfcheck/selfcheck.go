// Package selfcheck re-derives the toolkit's core statistical guarantees at
// run time: the Bessel-corrected SD of a known dataset, MR never exceeding
// ES, and the t-test false-positive rate.
package selfcheck

import (
	"fmt"
	"math"

	"github.com/Sumatoshi-tech/reloadstats/pkg/alg/stats"
	"github.com/Sumatoshi-tech/reloadstats/pkg/shotgroup"
)

// Defaults for Options.
const (
	DefaultTrials = 2000
	DefaultSeed   = 42
)

const (
	// knownSD is the sample SD of knownVelocities, n-1 denominator.
	knownSD        = 2.601281735
	knownTolerance = 1e-9

	maxGroupSize = 20
	groupSigma   = 1.0

	nullMean   = 2850
	nullSD     = 15
	nullShots  = 10
	rateSigmas = 3
)

// knownVelocities is the "Before" condition of the before/after example.
var knownVelocities = []float64{2850, 2855, 2848, 2852, 2851, 2849, 2853, 2850, 2854, 2847}

// Options configures Run.
type Options struct {
	Trials int
	Seed   uint64
	Alpha  float64
}

func (o Options) withDefaults() Options {
	if o.Trials <= 0 {
		o.Trials = DefaultTrials
	}

	if o.Alpha <= 0 || o.Alpha >= 1 {
		o.Alpha = stats.Alpha
	}

	return o
}

// Check is the outcome of one property.
type Check struct {
	ID       string  `json:"id"       yaml:"id"`
	Name     string  `json:"name"     yaml:"name"`
	Observed float64 `json:"observed" yaml:"observed"`
	Expected string  `json:"expected" yaml:"expected"`
	Passed   bool    `json:"passed"   yaml:"passed"`
}

// Report collects every check.
type Report struct {
	Trials int     `json:"trials" yaml:"trials"`
	Seed   uint64  `json:"seed"   yaml:"seed"`
	Checks []Check `json:"checks" yaml:"checks"`
}

// Passed reports whether every check passed.
func (r Report) Passed() bool {
	for _, c := range r.Checks {
		if !c.Passed {
			return false
		}
	}

	return true
}

// Run executes all checks with a generator seeded from opts.Seed.
func Run(opts Options) Report {
	opts = opts.withDefaults()

	return Report{
		Trials: opts.Trials,
		Seed:   opts.Seed,
		Checks: []Check{
			KnownSD(),
			RadiusWithinSpread(opts),
			FalsePositiveRate(opts),
		},
	}
}

// KnownSD compares the sample SD of a fixed dataset with its literal value.
func KnownSD() Check {
	sd := stats.StdDev(knownVelocities)

	return Check{
		ID:       "P1",
		Name:     "Sample SD of a known dataset",
		Observed: sd,
		Expected: fmt.Sprintf("%.9f", knownSD),
		Passed:   math.Abs(sd-knownSD) < knownTolerance,
	}
}

// RadiusWithinSpread simulates groups of 2 to 20 shots and counts groups
// whose mean radius is not strictly below their extreme spread.
func RadiusWithinSpread(opts Options) Check {
	opts = opts.withDefaults()
	rng := shotgroup.NewRand(opts.Seed)
	violations := 0

	for range opts.Trials {
		n := 2 + rng.IntN(maxGroupSize-1)
		g := shotgroup.Simulate(rng, n, groupSigma, shotgroup.Point{})

		if g.MeanRadius() >= g.ExtremeSpread() {
			violations++
		}
	}

	return Check{
		ID:       "P2",
		Name:     "Mean radius below extreme spread",
		Observed: float64(violations),
		Expected: "0 violations",
		Passed:   violations == 0,
	}
}

// FalsePositiveRate runs t-tests on pairs drawn from one distribution and
// checks that the rejection rate lies within three standard errors of alpha.
func FalsePositiveRate(opts Options) Check {
	opts = opts.withDefaults()
	rng := shotgroup.NewRand(opts.Seed + 1)
	rejections := 0

	for range opts.Trials {
		a := shotgroup.NormalSample(rng, nullShots, nullMean, nullSD)
		b := shotgroup.NormalSample(rng, nullShots, nullMean, nullSD)

		res, err := stats.TTestInd(a, b)
		if err == nil && res.Significant(opts.Alpha) {
			rejections++
		}
	}

	rate := float64(rejections) / float64(opts.Trials)
	tolerance := rateSigmas * math.Sqrt(opts.Alpha*(1-opts.Alpha)/float64(opts.Trials))

	return Check{
		ID:       "P3",
		Name:     "t-test false positive rate",
		Observed: rate,
		Expected: fmt.Sprintf("%.3f ± %.3f", opts.Alpha, tolerance),
		Passed:   math.Abs(rate-opts.Alpha) <= tolerance,
	}
}
