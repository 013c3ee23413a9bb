package dataset

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadCSV(t *testing.T) {
	t.Parallel()

	input := "Shot,Load,Velocity\n1,A,2850\n2,B,2860\n\n3,A,2852.5\n"

	ds, err := ReadCSV(strings.NewReader(input), Columns{})
	require.NoError(t, err)

	assert.Equal(t, "Load", ds.LabelColumn)
	require.Len(t, ds.Shots, 3)
	assert.Equal(t, Shot{Index: 3, Label: "A", Velocity: 2852.5}, ds.Shots[2])
	assert.Equal(t, []string{"A", "B"}, ds.Labels())
}

func TestReadCSV_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		input   string
		wantErr error
	}{
		{name: "empty", input: "", wantErr: ErrEmpty},
		{name: "header_only", input: "Shot,Load,Velocity\n", wantErr: ErrEmpty},
		{name: "no_label", input: "Shot,Velocity\n1,2850\n", wantErr: ErrMissingColumn},
		{name: "no_velocity", input: "Shot,Load\n1,A\n", wantErr: ErrMissingColumn},
		{name: "bad_velocity", input: "Shot,Load,Velocity\n1,A,fast\n", wantErr: ErrBadVelocity},
		{name: "nan_velocity", input: "Shot,Load,Velocity\n1,A,2800\n2,A,NaN\n", wantErr: ErrBadVelocity},
		{name: "inf_velocity", input: "Shot,Load,Velocity\n1,B,inf\n", wantErr: ErrBadVelocity},
		{name: "negative_inf_velocity", input: "Shot,Load,Velocity\n1,B,-Inf\n", wantErr: ErrBadVelocity},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := ReadCSV(strings.NewReader(tt.input), Columns{})
			require.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestReadCSV_BadVelocityReportsLine(t *testing.T) {
	t.Parallel()

	_, err := ReadCSV(strings.NewReader("Shot,Load,Velocity\n1,A,2850\n2,A,x\n"), Columns{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "line 3")
}

func TestReadCSV_ExplicitColumnsAndMissingShot(t *testing.T) {
	t.Parallel()

	input := "Lot,FPS\nred,2800\nblue,2810\n"

	ds, err := ReadCSV(strings.NewReader(input), Columns{Label: "lot", Velocity: "fps"})
	require.NoError(t, err)

	assert.Equal(t, 1, ds.Shots[0].Index)
	assert.Equal(t, 2, ds.Shots[1].Index)
	assert.Equal(t, "Lot", ds.LabelColumn)
}

func TestGroupsPreserveFirstSeenOrder(t *testing.T) {
	t.Parallel()

	ds := &Dataset{Shots: []Shot{
		{Index: 1, Label: "Zeta", Velocity: 1},
		{Index: 2, Label: "Alpha", Velocity: 2},
		{Index: 3, Label: "Zeta", Velocity: 3},
	}}

	groups := ds.Groups()
	require.Len(t, groups, 2)
	assert.Equal(t, "Zeta", groups[0].Label)
	assert.Equal(t, []float64{1, 3}, groups[0].Velocities)
	assert.Equal(t, []int{1, 3}, groups[0].Shots)

	g, ok := ds.Group("alpha")
	require.True(t, ok)
	assert.Equal(t, []float64{2}, g.Velocities)

	_, ok = ds.Group("missing")
	assert.False(t, ok)
	assert.Equal(t, []float64{1, 2, 3}, ds.Velocities())
}

func TestGroupsByCharge(t *testing.T) {
	t.Parallel()

	ds := &Dataset{Shots: []Shot{
		{Index: 1, Label: "42.0", Velocity: 2780},
		{Index: 2, Label: "41.5", Velocity: 2750},
		{Index: 3, Label: "9.5", Velocity: 1200},
	}}

	groups, err := ds.GroupsByCharge()
	require.NoError(t, err)

	charges := []float64{groups[0].Charge, groups[1].Charge, groups[2].Charge}
	assert.Equal(t, []float64{9.5, 41.5, 42.0}, charges, "numeric, not lexical, order")

	ds.Shots = append(ds.Shots, Shot{Index: 4, Label: "heavy", Velocity: 1})
	_, err = ds.GroupsByCharge()
	require.ErrorIs(t, err, ErrBadCharge)
}

func TestGroupsByCharge_MergesEquivalentSpellings(t *testing.T) {
	t.Parallel()

	ds, err := ReadCSV(strings.NewReader(
		"Charge,Velocity\n41,2700\n41.0,2704\n41.5,2720\n41.50,2726\n42,2745\n 42.0 ,2749\n"), Columns{})
	require.NoError(t, err)

	groups, err := ds.GroupsByCharge()
	require.NoError(t, err)
	require.Len(t, groups, 3)

	tests := []struct {
		label      string
		charge     float64
		velocities []float64
	}{
		{label: "41", charge: 41, velocities: []float64{2700, 2704}},
		{label: "41.5", charge: 41.5, velocities: []float64{2720, 2726}},
		{label: "42", charge: 42, velocities: []float64{2745, 2749}},
	}

	for i, tt := range tests {
		assert.Equal(t, tt.label, groups[i].Label)
		assert.InDelta(t, tt.charge, groups[i].Charge, 1e-12)
		assert.Equal(t, tt.velocities, groups[i].Velocities)
	}

	assert.Equal(t, []int{3, 4}, groups[1].Shots)
}

func TestExamples(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		shots  int
		labels []string
	}{
		{name: ExampleTwoLoad, shots: 60, labels: []string{"CCI", "Federal"}},
		{name: ExampleLadder, shots: 30, labels: []string{"41.0", "41.5", "42.0"}},
		{name: ExampleBeforeAfter, shots: 20, labels: []string{"Before", "After"}},
		{name: ExamplePrimer, shots: 20, labels: []string{"CCI BR2", "Federal 210M"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			ds, err := Example(tt.name)
			require.NoError(t, err)
			assert.Len(t, ds.Shots, tt.shots)
			assert.Equal(t, tt.labels, ds.Labels())
			assert.Equal(t, tt.name, ds.Name)
		})
	}

	_, err := Example("nope")
	require.ErrorIs(t, err, ErrUnknownExample)
	assert.Len(t, ExampleNames(), 4)
}

func TestLoadFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "primer_test.csv")
	require.NoError(t, os.WriteFile(path, []byte("Shot,Primer,Velocity_FPS\n1,CCI BR2,2850\n"), 0o600))

	ds, err := LoadFile(path, Columns{})
	require.NoError(t, err)
	assert.Equal(t, "primer_test", ds.Name)
	assert.Equal(t, "Primer", ds.LabelColumn)

	_, err = LoadFile(filepath.Join(t.TempDir(), "missing.csv"), Columns{})
	require.Error(t, err)
}
