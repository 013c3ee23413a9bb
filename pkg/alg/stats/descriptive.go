// Package stats provides the descriptive and inferential statistics used by
// the reloading analyses. Standard deviations are sample statistics with
// Bessel's correction (÷(n−1)) unless the function name says otherwise.
// Empty input yields 0 throughout instead of NaN or a panic.
package stats

import (
	"math"
	"slices"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// PercentileP90 is the 90th percentile, used for "nine groups in ten" sizes.
const PercentileP90 = 0.9

// Mean returns the arithmetic mean of values.
func Mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}

	return stat.Mean(values, nil)
}

// MeanStdDev returns the mean and sample standard deviation. A single value
// has SD 0.
func MeanStdDev(values []float64) (mean, sd float64) {
	if len(values) < 2 {
		return Mean(values), 0
	}

	return stat.MeanStdDev(values, nil)
}

// StdDev returns the sample standard deviation of values.
func StdDev(values []float64) float64 {
	_, sd := MeanStdDev(values)

	return sd
}

// Variance returns the sample variance of values.
func Variance(values []float64) float64 {
	if len(values) < 2 {
		return 0
	}

	return stat.Variance(values, nil)
}

// PopulationStdDev returns the population standard deviation (÷n).
func PopulationStdDev(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}

	_, v := stat.PopMeanVariance(values, nil)

	return math.Sqrt(v)
}

// ExtremeSpread returns max − min, the velocity extreme spread.
func ExtremeSpread(values []float64) float64 {
	return Max(values) - Min(values)
}

// Min returns the smallest value.
func Min(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}

	return floats.Min(values)
}

// Max returns the largest value.
func Max(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}

	return floats.Max(values)
}

// Clamp restricts v to [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(v, hi))
}

// Percentile returns the p-th quantile, p in [0, 1], interpolating linearly
// between the two nearest ranks. values is left unsorted.
func Percentile(values []float64, p float64) float64 {
	if len(values) == 0 {
		return 0
	}

	sorted := slices.Sorted(slices.Values(values))
	pos := Clamp(p, 0, 1) * float64(len(sorted)-1)
	i := int(pos)

	if i+1 >= len(sorted) {
		return sorted[len(sorted)-1]
	}

	return sorted[i] + (pos-float64(i))*(sorted[i+1]-sorted[i])
}

// Median returns the 50th percentile of values.
func Median(values []float64) float64 {
	return Percentile(values, 0.5)
}

// FractionBelow returns the share of values strictly below threshold.
func FractionBelow(values []float64, threshold float64) float64 {
	return fraction(values, func(v float64) bool { return v < threshold })
}

// FractionWithin returns the share of values within [lo, hi].
func FractionWithin(values []float64, lo, hi float64) float64 {
	return fraction(values, func(v float64) bool { return v >= lo && v <= hi })
}

func fraction(values []float64, keep func(float64) bool) float64 {
	if len(values) == 0 {
		return 0
	}

	var hits float64

	for _, v := range values {
		if keep(v) {
			hits++
		}
	}

	return hits / float64(len(values))
}

// Linspace returns n evenly spaced values over [start, stop].
func Linspace(start, stop float64, n int) []float64 {
	switch {
	case n <= 0:
		return nil
	case n == 1:
		return []float64{start}
	}

	return floats.Span(make([]float64, n), start, stop)
}

// Arange returns start, start+step, ... below stop. A small tolerance absorbs
// floating point drift, so Arange(40, 44.01, 0.3) ends at 43.9.
func Arange(start, stop, step float64) []float64 {
	if step <= 0 || stop <= start {
		return nil
	}

	n := int(math.Ceil((stop-start)/step - 1e-9))
	out := make([]float64, n)

	for i := range out {
		out[i] = start + float64(i)*step
	}

	return out
}
