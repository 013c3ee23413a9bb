package figures

import (
	"context"
	"math"
	"os"
	"path/filepath"
	"runtime"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sumatoshi-tech/reloadstats/pkg/shotgroup"
)

const testDPI = 20

func TestRegistry_OrderedAndUnique(t *testing.T) {
	t.Parallel()

	figs := Registry()
	require.Len(t, figs, 29)

	ids := make(map[string]bool, len(figs))
	files := make(map[string]bool, len(figs))

	for i, f := range figs {
		assert.False(t, ids[f.ID()], "duplicate id %s", f.ID())
		assert.False(t, files[f.FileName()], "duplicate file %s", f.FileName())
		assert.NotNil(t, f.Render, f.ID())
		assert.NotEmpty(t, f.Title, f.ID())

		ids[f.ID()] = true
		files[f.FileName()] = true

		if i > 0 {
			prev := figs[i-1]
			assert.True(t, prev.Lesson < f.Lesson || (prev.Lesson == f.Lesson && prev.Plot < f.Plot),
				"%s must sort before %s", prev.ID(), f.ID())
		}
	}

	assert.Equal(t, "00_01", figs[0].ID())
	assert.Equal(t, "nb12_plot28_load_vs_skill_impact.png", figs[len(figs)-1].FileName())
}

func TestLookup(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		key  string
		want string
	}{
		{name: "by_id", key: "01_03", want: "three_shot_distribution"},
		{name: "by_name", key: "best_group_bias", want: "best_group_bias"},
		{name: "by_file", key: "nb05_plot16_velocity_node_illusion.png", want: "velocity_node_illusion"},
		{name: "by_file_stem", key: " nb10_plot24_power_analysis_curves ", want: "power_analysis_curves"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			f, err := Lookup(tt.key)
			require.NoError(t, err)
			assert.Equal(t, tt.want, f.Name)
		})
	}

	_, err := Lookup("99_99")
	require.ErrorIs(t, err, ErrUnknownFigure)
}

func TestSelect(t *testing.T) {
	t.Parallel()

	all, err := Select(nil)
	require.NoError(t, err)
	assert.Len(t, all, len(registry))

	some, err := Select([]string{"12_28", "00_01", "00_01"})
	require.NoError(t, err)
	require.Len(t, some, 2)
	assert.Equal(t, "00_01", some[0].ID())
	assert.Equal(t, "12_28", some[1].ID())

	_, err = Select([]string{"00_01", "nope"})
	require.ErrorIs(t, err, ErrUnknownFigure)
}

func TestSeeds(t *testing.T) {
	t.Parallel()

	seeds := map[string]uint64{"01_05": 108, "05_16": 456, "06_18": 789, "06_19": 321, "01_03": defaultSeed}

	for id, seed := range seeds {
		f, err := Lookup(id)
		require.NoError(t, err)
		assert.Equal(t, seed, f.Seed, id)
	}
}

// Every figure must draw without plotter errors and be reproducible.
func TestFigures_BuildAndDeterministic(t *testing.T) {
	t.Parallel()

	for _, f := range Registry() {
		t.Run(f.ID(), func(t *testing.T) {
			t.Parallel()

			canvas, first := f.Render(f.Rand())
			require.NoError(t, canvas.Err())
			require.NotEmpty(t, first)

			for k, v := range first {
				assert.False(t, math.IsNaN(v) || math.IsInf(v, 0), "%s: stat %s is not finite", f.ID(), k)
			}

			_, second := f.Render(f.Rand())
			assert.Equal(t, first, second)
		})
	}
}

func renderStats(t *testing.T, id string) Stats {
	t.Helper()

	f, err := Lookup(id)
	require.NoError(t, err)

	_, s := f.Render(f.Rand())

	return s
}

func TestFigureStats_Closed(t *testing.T) {
	t.Parallel()

	chrono := renderStats(t, "05_17")
	assert.InDelta(t, math.Hypot(10, 5), chrono["reads_10fps_load_err_5"], 1e-9)

	factorial := renderStats(t, "04_27")
	assert.InDelta(t, 8640, factorial["full_factorial_rounds"], 1e-9)
	assert.InDelta(t, 12960, factorial["full_factorial_cost"], 1e-9)
	assert.InDelta(t, 144, factorial["full_factorial_hours"], 1e-9)

	cost := renderStats(t, "03_22")
	assert.InDelta(t, 100*(1-math.Exp(-1)), cost["confidence_30"], 1e-9)

	skill := renderStats(t, "12_28")
	assert.InDelta(t, 0.20, skill["hit_baseline"], 1e-9)
	assert.InDelta(t, 0.20, skill["hit_load"], 1e-9)
	assert.InDelta(t, 0.40, skill["hit_skill"], 1e-9)
	assert.InDelta(t, 6.0, skill["target_in"], 1e-9)
	assert.Greater(t, skill["roi_skill_100"], skill["roi_load_100"])

	bias := renderStats(t, "06_19")
	assert.InDelta(t, 100*(bias["true_moa"]-bias["mean_best"])/bias["true_moa"], bias["bias_pct"], 1e-9)
	assert.Greater(t, bias["bias_pct"], 20.0)
	assert.Less(t, bias["bias_pct"], 50.0)

	power := renderStats(t, "10_11")
	assert.InDelta(t, 0.947, power["power"], 0.002)
	assert.InDelta(t, 1-power["power"], power["beta"], 1e-12)

	margins := renderStats(t, "03_07")
	assert.Greater(t, margins["margin_5"], margins["margin_30"])
	assert.Greater(t, margins["margin_30"], margins["margin_100"])
}

func TestFigureStats_Simulated(t *testing.T) {
	t.Parallel()

	three := renderStats(t, "01_03")
	assert.Less(t, three["best"], three["mean"])
	assert.Less(t, three["mean"], three["worst"])

	esmr := renderStats(t, "06_18")
	assert.Greater(t, esmr["es_100"], esmr["es_5"])
	assert.InDelta(t, shotgroup.TheoreticalMeanRadius(shotgroup.SigmaForGroupSize(1)), esmr["mr_100"], 0.03)

	bias := renderStats(t, "06_19")
	assert.Positive(t, bias["bias_pct"])
	assert.Less(t, bias["mean_best"], bias["mean_all"])

	sd := renderStats(t, "01_06")
	assert.Greater(t, sd["sd_spread_5"], sd["sd_spread_30"])
	assert.Less(t, sd["within_20_5"], sd["within_20_30"])

	tradeoff := renderStats(t, "10_25")
	assert.InDelta(t, 0.05, tradeoff["false_alarm_5"], 0.03)
	assert.InDelta(t, 0.05, tradeoff["false_alarm_50"], 0.03)
	assert.Greater(t, tradeoff["detect_50"], tradeoff["detect_5"])

	flags := renderStats(t, "11_23")
	assert.Greater(t, flags["realistic_cv"], flags["suspicious_cv"])
}

type recordingRecorder struct {
	mu  sync.Mutex
	ids []string
}

func (r *recordingRecorder) RecordRender(_ context.Context, id string, _ time.Duration, bytes int64, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err == nil && bytes > 0 {
		r.ids = append(r.ids, id)
	}
}

func TestOptions_DefaultWorkers(t *testing.T) {
	t.Parallel()

	assert.Equal(t, runtime.NumCPU(), DefaultWorkers())
	assert.Equal(t, runtime.NumCPU(), Options{}.withDefaults().Workers)
	assert.Equal(t, runtime.NumCPU(), Options{Workers: -2}.withDefaults().Workers)
	assert.Equal(t, 3, Options{Workers: 3}.withDefaults().Workers)
}

func TestRenderAll(t *testing.T) {
	t.Parallel()

	dir := filepath.Join(t.TempDir(), "figures")
	figs, err := Select([]string{"00_01", "01_05", "05_17", "03_22"})
	require.NoError(t, err)

	rec := &recordingRecorder{}

	results, err := RenderAll(context.Background(), figs, Options{Dir: dir, DPI: testDPI, Workers: 2, Recorder: rec})
	require.NoError(t, err)
	require.Len(t, results, len(figs))

	for i, r := range results {
		assert.Equal(t, figs[i].ID(), r.Figure.ID())

		info, statErr := os.Stat(r.Path)
		require.NoError(t, statErr)
		assert.Equal(t, r.Bytes, info.Size())
	}

	assert.ElementsMatch(t, []string{"00_01", "01_05", "03_22", "05_17"}, rec.ids)

	m, err := ReadManifest(filepath.Join(dir, ManifestFile))
	require.NoError(t, err)
	assert.Equal(t, testDPI, m.DPI)
	require.Len(t, m.Figures, len(figs))

	entry, ok := m.Entry("01_05")
	require.True(t, ok)
	assert.Equal(t, "nb01_plot05_which_load_better.png", entry.File)
	assert.Equal(t, uint64(108), entry.Seed)
	assert.Contains(t, entry.StatKeys(), "range")
	assert.InDelta(t, results[1].Stats["range"], entry.Stats["range"], 1e-9)

	_, ok = m.Entry("99_99")
	assert.False(t, ok)
}

func TestRenderAll_Errors(t *testing.T) {
	t.Parallel()

	_, err := RenderAll(context.Background(), Registry(), Options{})
	require.ErrorIs(t, err, ErrNoOutputDir)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = RenderAll(ctx, Registry(), Options{Dir: t.TempDir(), DPI: testDPI})
	require.ErrorIs(t, err, context.Canceled)
}

func TestRenderAll_EmptySelection(t *testing.T) {
	t.Parallel()

	dir := filepath.Join(t.TempDir(), "nested", "out")

	results, err := RenderAll(context.Background(), nil, Options{Dir: dir})
	require.NoError(t, err)
	assert.Empty(t, results)

	m, err := ReadManifest(filepath.Join(dir, ManifestFile))
	require.NoError(t, err)
	assert.Empty(t, m.Figures)
}
