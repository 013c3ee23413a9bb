package commands

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/Sumatoshi-tech/reloadstats/internal/analysis"
)

func TestAnalyze_Examples(t *testing.T) {
	t.Parallel()

	tests := []struct {
		template string
		banner   string
		want     string
	}{
		{template: "two-load", banner: "STATISTICAL SUMMARY", want: "CCI"},
		{template: "ladder", banner: "CHARGE WEIGHT LADDER RESULTS", want: "41.5"},
		{template: "before-after", banner: "BEFORE/AFTER SUMMARY", want: "Before"},
		{template: "primer", banner: "=== CCI BR2 Results ===", want: "STATISTICAL SUMMARY"},
	}

	for _, tt := range tests {
		t.Run(tt.template, func(t *testing.T) {
			t.Parallel()

			out, err := execute(t, "analyze", tt.template)
			require.NoError(t, err)
			assert.Contains(t, out, tt.banner)
			assert.Contains(t, out, tt.want)
		})
	}
}

func TestAnalyze_Formats(t *testing.T) {
	t.Parallel()

	out, err := execute(t, "analyze", "two-load", "--format", "json")
	require.NoError(t, err)

	var decoded map[string]any

	require.NoError(t, json.Unmarshal([]byte(out), &decoded))
	assert.NotEmpty(t, decoded)

	out, err = execute(t, "analyze", "ladder", "-f", "yaml")
	require.NoError(t, err)

	require.NoError(t, yaml.Unmarshal([]byte(out), &decoded))
	assert.NotEmpty(t, decoded)

	_, err = execute(t, "analyze", "ladder", "--format", "xml")
	require.ErrorIs(t, err, analysis.ErrUnknownFormat)
}

func TestAnalyze_InputFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "loads.csv")
	csv := "Shot,Load,Velocity\n" +
		"1,H4350,2801\n2,H4350,2805\n3,H4350,2799\n4,H4350,2803\n" +
		"5,RL16,2830\n6,RL16,2834\n7,RL16,2829\n8,RL16,2833\n"
	require.NoError(t, os.WriteFile(path, []byte(csv), 0o600))

	out, err := execute(t, "analyze", "two-load", "--input", path)
	require.NoError(t, err)
	assert.Contains(t, out, "H4350")
	assert.Contains(t, out, "RL16")

	_, err = execute(t, "analyze", "two-load", "--input", filepath.Join(t.TempDir(), "missing.csv"))
	require.Error(t, err)
}

func TestAnalyze_ChartAndHTML(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	png := filepath.Join(dir, "charts", "before_after.png")
	html := filepath.Join(dir, "report", "before_after.html")

	_, err := execute(t, "analyze", "before-after", "--png", png, "--html", html, "--theme", "light")
	require.NoError(t, err)

	raw, err := os.ReadFile(png)
	require.NoError(t, err)
	assert.Equal(t, "\x89PNG", string(raw[:4]))

	page, err := os.ReadFile(html)
	require.NoError(t, err)
	assert.Contains(t, string(page), "Before / After Modification")
}

func TestAnalyze_QuietStillPrintsReport(t *testing.T) {
	t.Parallel()

	out, err := execute(t, "--quiet", "analyze", "two-load")
	require.NoError(t, err)

	assert.Contains(t, out, "STATISTICAL SUMMARY")
	assert.NotContains(t, out, "\x1b[")

	quiet := NewRootCommand().PersistentFlags().Lookup("quiet")
	require.NotNil(t, quiet)
	assert.Contains(t, quiet.Usage, "reports still print")
}
