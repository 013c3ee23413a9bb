package chart

import (
	"math"

	"github.com/Sumatoshi-tech/reloadstats/pkg/alg/stats"
)

// Edges returns bins+1 evenly spaced edges covering [lo, hi].
func Edges(lo, hi float64, bins int) []float64 {
	if bins < 1 {
		return nil
	}

	if hi <= lo {
		hi = lo + 1
	}

	return stats.Linspace(lo, hi, bins+1)
}

// EdgesFor returns shared edges spanning every value in sets.
func EdgesFor(bins int, sets ...[]float64) []float64 {
	lo, hi := math.Inf(1), math.Inf(-1)

	for _, s := range sets {
		if len(s) == 0 {
			continue
		}

		lo = min(lo, stats.Min(s))
		hi = max(hi, stats.Max(s))
	}

	if math.IsInf(lo, 1) {
		return Edges(0, 1, bins)
	}

	return Edges(lo, hi, bins)
}

// binIndex returns the bin holding v, or -1 when outside. The last bin is
// closed on the right.
func binIndex(edges []float64, v float64) int {
	last := len(edges) - 1
	if v < edges[0] || v > edges[last] {
		return -1
	}

	if v == edges[last] {
		return last - 1
	}

	width := edges[1] - edges[0]
	idx := int((v - edges[0]) / width)

	return min(idx, last-1)
}

// Counts returns the number of values in each bin.
func Counts(values, edges []float64) []float64 {
	if len(edges) < 2 {
		return nil
	}

	out := make([]float64, len(edges)-1)

	for _, v := range values {
		if idx := binIndex(edges, v); idx >= 0 {
			out[idx]++
		}
	}

	return out
}

// PeakCount returns the tallest bin of values over edges.
func PeakCount(values, edges []float64) float64 {
	return stats.Max(Counts(values, edges))
}
