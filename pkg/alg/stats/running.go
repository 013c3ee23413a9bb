package stats

import "math"

// Running accumulates a streaming mean and sample standard deviation
// using Welford's update.
type Running struct {
	count int
	mean  float64
	m2    float64
}

// Update feeds a new observation.
func (r *Running) Update(v float64) {
	r.count++
	delta := v - r.mean
	r.mean += delta / float64(r.count)
	r.m2 += delta * (v - r.mean)
}

// Count returns the number of observations seen.
func (r *Running) Count() int {
	return r.count
}

// Mean returns the current mean (0 before any Update).
func (r *Running) Mean() float64 {
	return r.mean
}

// StdDev returns the current sample standard deviation (0 while count < 2).
func (r *Running) StdDev() float64 {
	if r.count < 2 {
		return 0
	}

	return math.Sqrt(r.m2 / float64(r.count-1))
}

// RunningSeries returns the running mean and running SD after each value.
func RunningSeries(values []float64) (means, sds []float64) {
	means = make([]float64, len(values))
	sds = make([]float64, len(values))

	var acc Running

	for i, v := range values {
		acc.Update(v)
		means[i] = acc.Mean()
		sds[i] = acc.StdDev()
	}

	return means, sds
}
