package commands

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sumatoshi-tech/reloadstats/internal/figures"
)

func TestFiguresList(t *testing.T) {
	t.Parallel()

	out, err := execute(t, "figures", "list")
	require.NoError(t, err)

	for _, f := range figures.Registry() {
		assert.Contains(t, out, f.FileName())
	}
}

func TestFiguresRender(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	out, err := execute(t, "figures", "render", "01_03", "cost_benefit_tradeoff", "--output", dir, "--workers", "2")
	require.NoError(t, err)
	assert.Contains(t, out, "Rendered 2 figures")

	assert.FileExists(t, filepath.Join(dir, "nb01_plot03_three_shot_distribution.png"))
	assert.FileExists(t, filepath.Join(dir, "nb03_plot22_cost_benefit_tradeoff.png"))

	m, err := figures.ReadManifest(filepath.Join(dir, figures.ManifestFile))
	require.NoError(t, err)
	require.Len(t, m.Figures, 2)
	assert.Equal(t, 20, m.DPI)

	entry, ok := m.Entry("01_03")
	require.True(t, ok)
	assert.Positive(t, entry.Bytes)
}

func TestFiguresRender_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		args    []string
		wantErr error
	}{
		{name: "nothing selected", args: []string{"figures", "render"}, wantErr: ErrNoFigures},
		{name: "ids with all", args: []string{"figures", "render", "01_03", "--all", "--output", t.TempDir()}, wantErr: ErrIDsWithAll},
		{name: "unknown id", args: []string{"figures", "render", "99_99", "--output", t.TempDir()}, wantErr: figures.ErrUnknownFigure},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := execute(t, tt.args...)
			require.ErrorIs(t, err, tt.wantErr)
		})
	}
}
