// Package analysis implements the chronograph analysis templates: two-load
// comparison, charge weight ladder, and before/after modification, with
// plain-English interpretation of the numbers.
package analysis

import (
	"errors"
	"fmt"

	"github.com/Sumatoshi-tech/reloadstats/internal/dataset"
	"github.com/Sumatoshi-tech/reloadstats/pkg/alg/stats"
)

var (
	// ErrNeedTwoGroups is returned when a comparison has the wrong number of groups.
	ErrNeedTwoGroups = errors.New("comparison needs exactly two groups")
	// ErrTooFewGroups is returned when a ladder has fewer than two charges.
	ErrTooFewGroups = errors.New("ladder needs at least two charge weights")
	// ErrMissingCondition is returned when a before/after dataset lacks a condition.
	ErrMissingCondition = errors.New("missing condition")
)

// Defaults for Options.
const (
	DefaultAlpha           = stats.Alpha
	DefaultMinShotsWarning = 20
)

// Options tunes the analyses.
type Options struct {
	// Alpha is the significance threshold for t-tests.
	Alpha float64
	// MinShotsWarning flags ladder rungs with fewer shots than this.
	MinShotsWarning int
}

// DefaultOptions returns the thresholds used throughout the curriculum.
func DefaultOptions() Options {
	return Options{Alpha: DefaultAlpha, MinShotsWarning: DefaultMinShotsWarning}
}

// WithDefaults fills unset or out-of-range fields from DefaultOptions.
func (o Options) WithDefaults() Options {
	if o.Alpha <= 0 || o.Alpha >= 1 {
		o.Alpha = DefaultAlpha
	}

	if o.MinShotsWarning <= 0 {
		o.MinShotsWarning = DefaultMinShotsWarning
	}

	return o
}

// Summary holds the descriptive statistics of one group of shots.
type Summary struct {
	Label      string    `json:"label"       yaml:"label"`
	N          int       `json:"n"           yaml:"n"`
	Mean       float64   `json:"mean"        yaml:"mean"`
	SD         float64   `json:"sd"          yaml:"sd"`
	ES         float64   `json:"es"          yaml:"es"`
	Min        float64   `json:"min"         yaml:"min"`
	Max        float64   `json:"max"         yaml:"max"`
	CI95       float64   `json:"ci95"        yaml:"ci95"`
	Shots      []int     `json:"-"           yaml:"-"`
	Velocities []float64 `json:"velocities"  yaml:"velocities"`
}

// Summarize computes n, mean, SD, ES, min, max, and the 1.96·SEM half-width.
func Summarize(g dataset.Group) Summary {
	mean, sd := stats.MeanStdDev(g.Velocities)

	return Summary{
		Label:      g.Label,
		N:          len(g.Velocities),
		Mean:       mean,
		SD:         sd,
		ES:         stats.ExtremeSpread(g.Velocities),
		Min:        stats.Min(g.Velocities),
		Max:        stats.Max(g.Velocities),
		CI95:       stats.CI95Normal(g.Velocities),
		Shots:      g.Shots,
		Velocities: g.Velocities,
	}
}

func twoGroups(ds *dataset.Dataset) (dataset.Group, dataset.Group, error) {
	groups := ds.Groups()
	if len(groups) != 2 {
		return dataset.Group{}, dataset.Group{}, fmt.Errorf("%w: expected 2 loads, found %d: %v",
			ErrNeedTwoGroups, len(groups), ds.Labels())
	}

	return groups[0], groups[1], nil
}
