package commands

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sumatoshi-tech/reloadstats/internal/workbook"
)

func TestWorkbookCommand(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		args []string
		want []string
	}{
		{name: "both", want: []string{workbook.BlankFile, workbook.ExamplesFile}},
		{name: "examples only", args: []string{"--examples-only"}, want: []string{workbook.ExamplesFile}},
		{name: "blank only", args: []string{"--blank-only"}, want: []string{workbook.BlankFile}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			dir := filepath.Join(t.TempDir(), "xlsx")

			out, err := execute(t, append([]string{"workbook", "--output", dir}, tt.args...)...)
			require.NoError(t, err)

			entries, err := os.ReadDir(dir)
			require.NoError(t, err)

			names := make([]string, len(entries))
			for i, e := range entries {
				names[i] = e.Name()
			}

			assert.ElementsMatch(t, tt.want, names)

			for _, w := range tt.want {
				assert.Contains(t, out, w)
			}
		})
	}
}

func TestWorkbookCommand_ConflictingFlags(t *testing.T) {
	t.Parallel()

	_, err := execute(t, "workbook", "--output", t.TempDir(), "--examples-only", "--blank-only")
	require.ErrorIs(t, err, ErrConflictingVariants)
}
