package analysis

import (
	"bytes"
	"encoding/json"
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/Sumatoshi-tech/reloadstats/internal/dataset"
	"github.com/Sumatoshi-tech/reloadstats/pkg/alg/stats"
)

func datasetOf(labels []string, velocities ...[]float64) *dataset.Dataset {
	ds := &dataset.Dataset{Name: "test", LabelColumn: "Load"}
	idx := 1

	for i, vs := range velocities {
		for _, v := range vs {
			ds.Shots = append(ds.Shots, dataset.Shot{Index: idx, Label: labels[i], Velocity: v})
			idx++
		}
	}

	return ds
}

func TestSummarize(t *testing.T) {
	t.Parallel()

	g, ok := dataset.MustExample(dataset.ExampleBeforeAfter).Group("before")
	require.True(t, ok)

	s := Summarize(g)

	assert.Equal(t, "Before", s.Label)
	assert.Equal(t, 10, s.N)
	assert.InDelta(t, 2850.9, s.Mean, 1e-9)
	assert.InDelta(t, 2.601281735, s.SD, 1e-6)
	assert.InDelta(t, 8, s.ES, 1e-9)
	assert.InDelta(t, 2847, s.Min, 1e-9)
	assert.InDelta(t, 2855, s.Max, 1e-9)
	assert.InDelta(t, 1.96*2.601281735/3.16227766, s.CI95, 1e-6)
}

func TestTwoLoad_ClearDifference(t *testing.T) {
	t.Parallel()

	res, err := TwoLoad(dataset.MustExample(dataset.ExampleTwoLoad), DefaultOptions())
	require.NoError(t, err)

	assert.Equal(t, "CCI", res.Load1.Label)
	assert.Equal(t, "Federal", res.Load2.Label)
	assert.Equal(t, 30, res.Load1.N)
	assert.InDelta(t, 0.8178148251, res.Load1.CI95, 1e-9)
	assert.InDelta(t, -19.0394327647, res.TTest.T, 1e-6)
	assert.InDelta(t, 4.9159604013, res.CohensD, 1e-6)
	assert.True(t, res.Significant)
	assert.Equal(t, stats.EffectLarge, res.Effect)
	assert.Equal(t, "Federal", res.Faster)
	assert.Equal(t, LevelSmall, res.MeanLevel)
	assert.Equal(t, VerdictClear, res.Verdict.Kind)
	assert.Contains(t, res.Verdict.Details[0], "is the clear winner")
}

func TestTwoLoad_Verdicts(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		a, b []float64
		want VerdictKind
	}{
		{
			name: "identical_loads",
			a:    []float64{2850, 2855, 2848, 2852, 2851},
			b:    []float64{2850, 2855, 2848, 2852, 2851},
			want: VerdictNoDifference,
		},
		{
			name: "overlapping_loads",
			a:    []float64{2850, 2860, 2840, 2855, 2845},
			b:    []float64{2852, 2858, 2843, 2857, 2846},
			want: VerdictNoDifference,
		},
		{
			name: "clearly_faster",
			a:    []float64{2800, 2802, 2801, 2799, 2800},
			b:    []float64{2850, 2851, 2849, 2852, 2850},
			want: VerdictClear,
		},
		{
			name: "zero_spread_different_means",
			a:    []float64{2800, 2800, 2800},
			b:    []float64{2850, 2850, 2850},
			want: VerdictClear,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			res, err := TwoLoad(datasetOf([]string{"A", "B"}, tt.a, tt.b), Options{})
			require.NoError(t, err)
			assert.Equal(t, tt.want, res.Verdict.Kind)
			assert.InDelta(t, DefaultAlpha, res.Alpha, 1e-12)
		})
	}
}

func TestTwoLoad_ZeroSpreadDifferentMeans(t *testing.T) {
	t.Parallel()

	res, err := TwoLoad(datasetOf([]string{"A", "B"}, []float64{2800, 2800, 2800}, []float64{2850, 2850, 2850}), Options{})
	require.NoError(t, err)

	assert.True(t, math.IsInf(res.CohensD, 1))
	assert.True(t, res.Significant)
	assert.Equal(t, stats.EffectLarge, res.Effect)
	assert.Equal(t, "Clear, meaningful difference detected", res.Verdict.Headline)
	assert.Equal(t, "B is the clear winner.", res.Verdict.Details[0])

	var js bytes.Buffer

	require.NoError(t, Encode(&js, FormatJSON, res))

	var decoded map[string]any

	require.NoError(t, json.Unmarshal(js.Bytes(), &decoded))
	assert.Nil(t, decoded["cohens_d"])
	assert.Contains(t, decoded, "verdict")

	var report bytes.Buffer

	require.NoError(t, NewReporter(&report, false).TwoLoad(res))
	assert.Contains(t, report.String(), "Effect size (Cohen's d): inf")
	assert.NotContains(t, report.String(), "No meaningful difference")
}

func TestTwoLoad_SmallButRealVerdict(t *testing.T) {
	t.Parallel()

	res := &TwoLoadResult{
		Load1:          Summary{Label: "A"},
		Load2:          Summary{Label: "B"},
		Significant:    true,
		CohensD:        0.35,
		Faster:         "B",
		MoreConsistent: "A",
	}

	v := twoLoadVerdict(res)
	assert.Equal(t, VerdictSmallButReal, v.Kind)
	assert.Equal(t, "B is faster.", v.Details[0])
}

func TestTwoLoad_Errors(t *testing.T) {
	t.Parallel()

	_, err := TwoLoad(datasetOf([]string{"A", "B", "C"}, []float64{1, 2}, []float64{1, 2}, []float64{1, 2}), Options{})
	require.ErrorIs(t, err, ErrNeedTwoGroups)

	_, err = TwoLoad(datasetOf([]string{"A", "B"}, []float64{1}, []float64{1, 2}), Options{})
	require.ErrorIs(t, err, stats.ErrInsufficientData)

	_, err = Primer(datasetOf([]string{"A"}, []float64{1, 2}), Options{})
	require.ErrorIs(t, err, ErrNeedTwoGroups)
}

func TestGrade(t *testing.T) {
	t.Parallel()

	assert.Equal(t, LevelNegligible, grade(4.9, MeanNegligibleBelow, MeanSmallBelow))
	assert.Equal(t, LevelSmall, grade(5, MeanNegligibleBelow, MeanSmallBelow))
	assert.Equal(t, LevelMeaningful, grade(15, MeanNegligibleBelow, MeanSmallBelow))
	assert.Equal(t, LevelSmall, grade(2, SDNegligibleBelow, SDSmallBelow))
}

func TestLadder(t *testing.T) {
	t.Parallel()

	res, err := Ladder(dataset.MustExample(dataset.ExampleLadder), DefaultOptions())
	require.NoError(t, err)

	require.Len(t, res.Rungs, 3)
	assert.InDelta(t, 41.0, res.Rungs[0].Charge, 1e-9)
	assert.InDelta(t, 42.0, res.Rungs[2].Charge, 1e-9)
	assert.InDelta(t, 41.0, res.BestCharge, 1e-9)
	assert.InDelta(t, 30, res.AvgStep, 1e-9)
	assert.InDelta(t, 0.5, res.StepSize, 1e-9)
	assert.Equal(t, 30, res.TotalShots)
	assert.Equal(t, 10, res.MinShots)
	assert.True(t, res.SmallSample)
}

func TestLadder_SortsAndErrors(t *testing.T) {
	t.Parallel()

	ds := datasetOf([]string{"42.0", "41.0"}, []float64{2780, 2790, 2785}, []float64{2750, 2751, 2752})

	res, err := Ladder(ds, Options{MinShotsWarning: 3})
	require.NoError(t, err)
	assert.InDelta(t, 41.0, res.Rungs[0].Charge, 1e-9)
	assert.InDelta(t, 41.0, res.BestCharge, 1e-9)
	assert.InDelta(t, 34, res.AvgStep, 1e-9)
	assert.False(t, res.SmallSample)

	_, err = Ladder(datasetOf([]string{"41.0"}, []float64{1, 2}), Options{})
	require.ErrorIs(t, err, ErrTooFewGroups)

	_, err = Ladder(datasetOf([]string{"light", "heavy"}, []float64{1, 2}, []float64{1, 2}), Options{})
	require.ErrorIs(t, err, dataset.ErrBadCharge)
}

func TestLadder_MixedChargeSpellings(t *testing.T) {
	t.Parallel()

	ds := datasetOf([]string{"41", "41.0", "41.5", "41.50", "42", "42.0"},
		[]float64{2700}, []float64{2704}, []float64{2720}, []float64{2726}, []float64{2745}, []float64{2749})

	res, err := Ladder(ds, Options{MinShotsWarning: 2})
	require.NoError(t, err)

	require.Len(t, res.Rungs, 3)

	for _, r := range res.Rungs {
		assert.Equal(t, 2, r.N)
	}

	assert.InDelta(t, 0.5, res.StepSize, 1e-9)
	assert.InDelta(t, 22.5, res.AvgStep, 1e-9)
	assert.Equal(t, 2, res.MinShots)
	assert.False(t, res.SmallSample)
}

func TestBeforeAfter(t *testing.T) {
	t.Parallel()

	res, err := BeforeAfter(dataset.MustExample(dataset.ExampleBeforeAfter), DefaultOptions())
	require.NoError(t, err)

	assert.InDelta(t, 1.1766968108, res.TTest.T, 1e-6)
	assert.InDelta(t, 0.2546435961, res.TTest.P, 1e-6)
	assert.InDelta(t, -1.4, res.MeanChange, 1e-9)
	assert.False(t, res.Significant)
	assert.Equal(t, VerdictNotSignificant, res.Verdict.Kind)
}

func TestBeforeAfter_Verdicts(t *testing.T) {
	t.Parallel()

	small := BeforeAfterResult{Significant: true, MeanChange: 4, SDChange: -1}
	assert.Equal(t, VerdictSignificantSmall, beforeAfterVerdict(&small).Kind)

	big := BeforeAfterResult{Significant: true, MeanChange: 4, SDChange: -3.5}
	assert.Equal(t, VerdictSignificantMeaningful, beforeAfterVerdict(&big).Kind)

	_, err := BeforeAfter(datasetOf([]string{"Before"}, []float64{1, 2}), Options{})
	require.ErrorIs(t, err, ErrMissingCondition)
}

func TestReporter_TwoLoad(t *testing.T) {
	t.Parallel()

	res, err := TwoLoad(dataset.MustExample(dataset.ExampleTwoLoad), DefaultOptions())
	require.NoError(t, err)

	var buf bytes.Buffer

	require.NoError(t, NewReporter(&buf, false).TwoLoad(res))

	out := buf.String()
	assert.Contains(t, out, "STATISTICAL SUMMARY")
	assert.Contains(t, out, "CCI")
	assert.Contains(t, out, "STATISTICALLY SIGNIFICANT")
	assert.Contains(t, out, "VERDICT: Clear, meaningful difference detected")
	assert.Contains(t, out, "ANALYSIS COMPLETE")
	assert.NotContains(t, out, "\x1b[", "colour must be off")
}

func TestReporter_LadderAndBeforeAfter(t *testing.T) {
	t.Parallel()

	ladder, err := Ladder(dataset.MustExample(dataset.ExampleLadder), DefaultOptions())
	require.NoError(t, err)

	var buf bytes.Buffer

	r := NewReporter(&buf, false)
	require.NoError(t, r.Ladder(ladder))
	assert.Contains(t, buf.String(), "Most consistent charge: 41.0 grains")
	assert.Contains(t, buf.String(), "fewer than 20 shots")

	buf.Reset()

	ba, err := BeforeAfter(dataset.MustExample(dataset.ExampleBeforeAfter), DefaultOptions())
	require.NoError(t, err)
	require.NoError(t, r.BeforeAfter(ba))
	assert.Contains(t, buf.String(), "Change in mean: -1.4 fps")
	assert.Contains(t, buf.String(), "P-value: 0.2546")
}

func TestReporter_Primer(t *testing.T) {
	t.Parallel()

	res, err := Primer(dataset.MustExample(dataset.ExamplePrimer), DefaultOptions())
	require.NoError(t, err)

	var buf bytes.Buffer

	require.NoError(t, NewReporter(&buf, false).Primer(res))
	assert.True(t, strings.HasPrefix(buf.String(), "=== CCI BR2 Results ==="))
	assert.Contains(t, buf.String(), "=== Federal 210M Results ===")
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, assert.AnError }

func TestReporter_WriteError(t *testing.T) {
	t.Parallel()

	res, err := BeforeAfter(dataset.MustExample(dataset.ExampleBeforeAfter), DefaultOptions())
	require.NoError(t, err)

	require.ErrorIs(t, NewReporter(failingWriter{}, false).BeforeAfter(res), assert.AnError)
}

func TestParseFormat(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in      string
		want    Format
		wantErr bool
	}{
		{in: "", want: FormatText},
		{in: "TEXT", want: FormatText},
		{in: " json ", want: FormatJSON},
		{in: "yaml", want: FormatYAML},
		{in: "xml", wantErr: true},
	}

	for _, tt := range tests {
		got, err := ParseFormat(tt.in)
		if tt.wantErr {
			require.ErrorIs(t, err, ErrUnknownFormat)

			continue
		}

		require.NoError(t, err)
		assert.Equal(t, tt.want, got)
	}
}

func TestEncode(t *testing.T) {
	t.Parallel()

	res, err := BeforeAfter(dataset.MustExample(dataset.ExampleBeforeAfter), DefaultOptions())
	require.NoError(t, err)

	var js bytes.Buffer

	require.NoError(t, Encode(&js, FormatJSON, res))

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(js.Bytes(), &decoded))
	assert.Equal(t, string(VerdictNotSignificant), decoded["verdict"].(map[string]any)["kind"])

	var ym bytes.Buffer

	require.NoError(t, Encode(&ym, FormatYAML, res))

	var back BeforeAfterResult
	require.NoError(t, yaml.Unmarshal(ym.Bytes(), &back))
	assert.InDelta(t, res.TTest.P, back.TTest.P, 1e-12)
	assert.Equal(t, res.Verdict, back.Verdict)

	require.ErrorIs(t, Encode(&js, FormatText, res), ErrUnknownFormat)
}
