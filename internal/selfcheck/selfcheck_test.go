package selfcheck_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sumatoshi-tech/reloadstats/internal/selfcheck"
)

func TestRun_AllPass(t *testing.T) {
	t.Parallel()

	report := selfcheck.Run(selfcheck.Options{Seed: selfcheck.DefaultSeed})

	require.Len(t, report.Checks, 3)
	assert.Equal(t, selfcheck.DefaultTrials, report.Trials)
	assert.True(t, report.Passed(), "%+v", report.Checks)

	ids := make([]string, len(report.Checks))
	for i, c := range report.Checks {
		ids[i] = c.ID
	}

	assert.Equal(t, []string{"P1", "P2", "P3"}, ids)
}

func TestKnownSD(t *testing.T) {
	t.Parallel()

	c := selfcheck.KnownSD()
	assert.True(t, c.Passed)
	assert.InDelta(t, 2.601281735, c.Observed, 1e-9)
}

func TestRadiusWithinSpread_Deterministic(t *testing.T) {
	t.Parallel()

	opts := selfcheck.Options{Trials: 300, Seed: 7}

	first := selfcheck.RadiusWithinSpread(opts)
	second := selfcheck.RadiusWithinSpread(opts)

	assert.Equal(t, first, second)
	assert.True(t, first.Passed)
	assert.Zero(t, first.Observed)
}

func TestFalsePositiveRate_TracksAlpha(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		alpha float64
	}{
		{"five percent", 0.05},
		{"ten percent", 0.10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			c := selfcheck.FalsePositiveRate(selfcheck.Options{Trials: 4000, Seed: 42, Alpha: tt.alpha})
			assert.InDelta(t, tt.alpha, c.Observed, 0.02)
		})
	}
}

func TestReport_Passed(t *testing.T) {
	t.Parallel()

	assert.True(t, selfcheck.Report{}.Passed())
	assert.False(t, selfcheck.Report{Checks: []selfcheck.Check{{Passed: true}, {Passed: false}}}.Passed())
}
