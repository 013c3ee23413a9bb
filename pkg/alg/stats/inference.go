package stats

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat/distuv"
)

// ErrInsufficientData is returned when a test needs more observations.
var ErrInsufficientData = errors.New("insufficient data: need at least two values per group")

// ErrInvalidLevel is returned for a confidence level outside (0, 1).
var ErrInvalidLevel = errors.New("confidence level must be between 0 and 1")

// Z95 is the two-sided 95% normal critical value used by the templates.
const Z95 = 1.96

// Alpha is the default significance threshold.
const Alpha = 0.05

// SEM returns the standard error of the mean, sd/√n.
func SEM(values []float64) float64 {
	if len(values) < 2 {
		return 0
	}

	return StdDev(values) / math.Sqrt(float64(len(values)))
}

// CI95Normal returns the half-width 1.96·SEM.
func CI95Normal(values []float64) float64 {
	return Z95 * SEM(values)
}

// Interval is a two-sided confidence interval around a mean.
type Interval struct {
	Mean   float64 `json:"mean"   yaml:"mean"`
	Lo     float64 `json:"lo"     yaml:"lo"`
	Hi     float64 `json:"hi"     yaml:"hi"`
	Margin float64 `json:"margin" yaml:"margin"`
}

// TCI returns the Student-t confidence interval for the mean at the given level.
func TCI(values []float64, level float64) (Interval, error) {
	if level <= 0 || level >= 1 {
		return Interval{}, fmt.Errorf("%w: %v", ErrInvalidLevel, level)
	}

	if len(values) < 2 {
		return Interval{}, ErrInsufficientData
	}

	mean := Mean(values)
	margin := TMargin(StdDev(values), len(values), level)

	return Interval{Mean: mean, Lo: mean - margin, Hi: mean + margin, Margin: margin}, nil
}

// TMargin returns the t-based margin of error for a sample of size n with
// standard deviation sd.
func TMargin(sd float64, n int, level float64) float64 {
	if n < 2 {
		return math.Inf(1)
	}

	crit := StudentTQuantile((1+level)/2, float64(n-1))

	return crit * sd / math.Sqrt(float64(n))
}

// ZMargin returns the normal-approximation margin of error.
func ZMargin(sd float64, n int, level float64) float64 {
	if n < 1 {
		return math.Inf(1)
	}

	return NormalQuantile((1+level)/2) * sd / math.Sqrt(float64(n))
}

// NormalQuantile returns the inverse CDF of the standard normal distribution.
func NormalQuantile(p float64) float64 {
	return distuv.UnitNormal.Quantile(p)
}

// NormalCDF returns the standard normal CDF at x.
func NormalCDF(x float64) float64 {
	return distuv.UnitNormal.CDF(x)
}

// StudentTQuantile returns the inverse CDF of Student's t with df degrees of freedom.
func StudentTQuantile(p, df float64) float64 {
	return distuv.StudentsT{Mu: 0, Sigma: 1, Nu: df}.Quantile(p)
}

// TTestResult holds the outcome of a two-sample t-test.
type TTestResult struct {
	T  float64 `json:"t"  yaml:"t"`
	DF float64 `json:"df" yaml:"df"`
	P  float64 `json:"p"  yaml:"p"`
}

// Significant reports whether P is below alpha. NaN is never significant.
func (r TTestResult) Significant(alpha float64) bool {
	return !math.IsNaN(r.P) && r.P < alpha
}

// MarshalJSON encodes non-finite statistics as null.
func (r TTestResult) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		T  *float64 `json:"t"`
		DF *float64 `json:"df"`
		P  *float64 `json:"p"`
	}{T: finite(r.T), DF: finite(r.DF), P: finite(r.P)})
}

func finite(v float64) *float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}

	return &v
}

// TTestInd performs the pooled-variance two-sample Student t-test, two-sided.
// T is positive when mean(a) > mean(b). When both groups have zero variance
// and equal means, T and P are NaN; unequal means give an infinite T and P = 0.
func TTestInd(a, b []float64) (TTestResult, error) {
	n1, n2 := len(a), len(b)
	if n1 < 2 || n2 < 2 {
		return TTestResult{}, fmt.Errorf("%w: got %d and %d", ErrInsufficientData, n1, n2)
	}

	mean1, sd1 := MeanStdDev(a)
	mean2, sd2 := MeanStdDev(b)

	df := float64(n1 + n2 - 2)
	pooledVar := (float64(n1-1)*sd1*sd1 + float64(n2-1)*sd2*sd2) / df
	se := math.Sqrt(pooledVar * (1/float64(n1) + 1/float64(n2)))
	diff := mean1 - mean2

	if se == 0 {
		if diff == 0 {
			return TTestResult{T: math.NaN(), DF: df, P: math.NaN()}, nil
		}

		return TTestResult{T: math.Copysign(math.Inf(1), diff), DF: df, P: 0}, nil
	}

	t := diff / se
	dist := distuv.StudentsT{Mu: 0, Sigma: 1, Nu: df}

	return TTestResult{T: t, DF: df, P: 2 * dist.Survival(math.Abs(t))}, nil
}

// FTestResult holds the outcome of a variance-ratio test.
type FTestResult struct {
	F   float64 `json:"f"   yaml:"f"`
	DF1 float64 `json:"df1" yaml:"df1"`
	DF2 float64 `json:"df2" yaml:"df2"`
	P   float64 `json:"p"   yaml:"p"`
}

// Significant reports whether P is below alpha.
func (r FTestResult) Significant(alpha float64) bool {
	return !math.IsNaN(r.P) && r.P < alpha
}

// FTestVar performs the two-sided F-test for equal variances, F = var(a)/var(b).
// P is NaN when var(b) is zero.
func FTestVar(a, b []float64) (FTestResult, error) {
	n1, n2 := len(a), len(b)
	if n1 < 2 || n2 < 2 {
		return FTestResult{}, fmt.Errorf("%w: got %d and %d", ErrInsufficientData, n1, n2)
	}

	res := FTestResult{DF1: float64(n1 - 1), DF2: float64(n2 - 1)}

	varB := Variance(b)
	if varB == 0 {
		res.F, res.P = math.NaN(), math.NaN()

		return res, nil
	}

	res.F = Variance(a) / varB
	cdf := distuv.F{D1: res.DF1, D2: res.DF2}.CDF(res.F)
	res.P = min(1, 2*min(cdf, 1-cdf))

	return res, nil
}

// PooledStdDev returns √(((n1−1)s1² + (n2−1)s2²)/(n1+n2−2)).
func PooledStdDev(a, b []float64) float64 {
	n1, n2 := len(a), len(b)
	if n1+n2 <= 2 {
		return 0
	}

	sd1, sd2 := StdDev(a), StdDev(b)

	return math.Sqrt((float64(n1-1)*sd1*sd1 + float64(n2-1)*sd2*sd2) / float64(n1+n2-2))
}

// CohensD returns (mean(b) − mean(a)) / pooled SD. With a zero pooled SD it
// is 0 for equal means and ±Inf otherwise, matching the infinite T of TTestInd.
func CohensD(a, b []float64) float64 {
	diff := Mean(b) - Mean(a)

	pooled := PooledStdDev(a, b)
	if pooled == 0 {
		if diff == 0 {
			return 0
		}

		return math.Copysign(math.Inf(1), diff)
	}

	return diff / pooled
}

// EffectSize classifies |d| on Cohen's conventional scale.
type EffectSize string

// Effect size labels.
const (
	EffectTiny   EffectSize = "TINY"
	EffectSmall  EffectSize = "SMALL"
	EffectMedium EffectSize = "MEDIUM"
	EffectLarge  EffectSize = "LARGE"
)

// Cohen's thresholds.
const (
	EffectSmallMin  = 0.2
	EffectMediumMin = 0.5
	EffectLargeMin  = 0.8
)

// EffectSizeLabel returns the conventional label for an effect size.
func EffectSizeLabel(d float64) EffectSize {
	abs := math.Abs(d)

	switch {
	case abs < EffectSmallMin:
		return EffectTiny
	case abs < EffectMediumMin:
		return EffectSmall
	case abs < EffectLargeMin:
		return EffectMedium
	default:
		return EffectLarge
	}
}

// TwoSamplePower returns the power of the two-sided pooled t-test with n
// observations per group to detect a mean difference diff when the common
// standard deviation is sd. The noncentral t is approximated by a shifted
// central t, which is accurate to about a percentage point for n ≥ 5.
func TwoSamplePower(n int, diff, sd, alpha float64) float64 {
	if n < 2 || sd <= 0 {
		return 0
	}

	df := float64(2*n - 2)
	ncp := math.Abs(diff) / sd * math.Sqrt(float64(n)/2)
	dist := distuv.StudentsT{Mu: 0, Sigma: 1, Nu: df}
	crit := dist.Quantile(1 - alpha/2)

	return Clamp(dist.Survival(crit-ncp)+dist.CDF(-crit-ncp), 0, 1)
}

// SampleSizeForPower returns the smallest per-group n in [2, limit] reaching
// the target power, or 0 when none does.
func SampleSizeForPower(target, diff, sd, alpha float64, limit int) int {
	for n := 2; n <= limit; n++ {
		if TwoSamplePower(n, diff, sd, alpha) >= target {
			return n
		}
	}

	return 0
}
