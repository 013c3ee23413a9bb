package shotgroup

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Sumatoshi-tech/reloadstats/pkg/alg/stats"
)

func TestSigmaForGroupSize(t *testing.T) {
	t.Parallel()

	assert.InDelta(t, 0.5, SigmaForGroupSize(1.5), 1e-12)
	assert.InDelta(t, 0.9399856, TheoreticalMeanRadius(0.75), 1e-6)
}

func TestSimulateIsDeterministic(t *testing.T) {
	t.Parallel()

	a := Simulate(NewRand(42), 5, 0.5, Point{})
	b := Simulate(NewRand(42), 5, 0.5, Point{})

	assert.Equal(t, a, b)
}

func TestLargeGroupMeanRadiusApproachesRayleigh(t *testing.T) {
	t.Parallel()

	const sigma = 0.75

	g := Simulate(NewRand(42), 20000, sigma, Point{})

	assert.InDelta(t, TheoreticalMeanRadius(sigma), g.MeanRadius(), 0.03)
}

func TestMonteCarlo(t *testing.T) {
	t.Parallel()

	three := MonteCarlo(NewRand(42), 500, 3, 0.5)
	five := MonteCarlo(NewRand(42), 500, 5, 0.5)

	assert.Len(t, three, 500)
	assert.Greater(t, stats.Mean(ESValues(five)), stats.Mean(ESValues(three)), "ES grows with shot count")
	assert.InDelta(t, stats.Mean(MRValues(three)), stats.Mean(MRValues(five)), 0.1)

	for _, tr := range three {
		assert.LessOrEqual(t, tr.MR, tr.ES)
	}
}

func TestSampleHelpers(t *testing.T) {
	t.Parallel()

	rng := NewRand(1)

	normal := NormalSample(rng, 5000, 2850, 15)
	assert.InDelta(t, 2850, stats.Mean(normal), 1)
	assert.InDelta(t, 15, stats.StdDev(normal), 1)

	logn := LogNormalSample(rng, 5000, 1.0, 0.3)
	assert.InDelta(t, 1.0, stats.Mean(logn), 0.03)
	assert.InDelta(t, 0.3, stats.StdDev(logn), 0.03)

	for _, v := range logn {
		assert.Positive(t, v)
	}
}
