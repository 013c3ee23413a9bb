package shotgroup

import (
	"math"
	"math/rand/v2"
)

// sigmaPerMOA converts a nominal group size to the per-axis dispersion.
// A "1.5 MOA rifle" in the curriculum is modelled with sigma = 0.5 MOA.
const sigmaPerMOA = 3.0

// SigmaForGroupSize returns the per-axis standard deviation for a rifle whose
// typical group size is trueMOA.
func SigmaForGroupSize(trueMOA float64) float64 {
	return trueMOA / sigmaPerMOA
}

// TheoreticalMeanRadius returns the mean of the Rayleigh distribution,
// sigma·√(π/2), which is the expected mean radius for a large group.
func TheoreticalMeanRadius(sigma float64) float64 {
	return sigma * math.Sqrt(math.Pi/2)
}

// NewRand returns a deterministic generator for the given seed.
func NewRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed))
}

// Normal draws from N(mean, sd).
func Normal(rng *rand.Rand, mean, sd float64) float64 {
	return mean + sd*rng.NormFloat64()
}

// NormalSample draws n values from N(mean, sd).
func NormalSample(rng *rand.Rand, n int, mean, sd float64) []float64 {
	out := make([]float64, n)

	for i := range out {
		out[i] = Normal(rng, mean, sd)
	}

	return out
}

// LogNormalSample draws n values from a lognormal distribution whose
// arithmetic mean and standard deviation equal mean and sd.
func LogNormalSample(rng *rand.Rand, n int, mean, sd float64) []float64 {
	sigma := math.Sqrt(math.Log(1 + (sd/mean)*(sd/mean)))
	mu := math.Log(mean) - sigma*sigma/2

	out := make([]float64, n)

	for i := range out {
		out[i] = math.Exp(Normal(rng, mu, sigma))
	}

	return out
}

// Simulate draws an n-shot group with i.i.d. N(center, sigma) coordinates.
func Simulate(rng *rand.Rand, n int, sigma float64, center Point) Group {
	g := make(Group, n)

	for i := range g {
		g[i] = Point{
			X: Normal(rng, center.X, sigma),
			Y: Normal(rng, center.Y, sigma),
		}
	}

	return g
}

// Trial is the per-group result of a Monte Carlo run.
type Trial struct {
	ES float64
	MR float64
}

// MonteCarlo fires trials groups of n shots from a rifle with the given
// per-axis sigma and returns ES and MR for each group.
func MonteCarlo(rng *rand.Rand, trials, n int, sigma float64) []Trial {
	out := make([]Trial, trials)

	for i := range out {
		g := Simulate(rng, n, sigma, Point{})
		out[i] = Trial{ES: g.ExtremeSpread(), MR: g.MeanRadius()}
	}

	return out
}

// ESValues extracts the extreme spreads.
func ESValues(trials []Trial) []float64 {
	out := make([]float64, len(trials))

	for i, t := range trials {
		out[i] = t.ES
	}

	return out
}

// MRValues extracts the mean radii.
func MRValues(trials []Trial) []float64 {
	out := make([]float64, len(trials))

	for i, t := range trials {
		out[i] = t.MR
	}

	return out
}
