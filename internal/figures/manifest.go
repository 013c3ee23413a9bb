package figures

import (
	"fmt"
	"maps"
	"os"
	"path/filepath"
	"slices"

	"gopkg.in/yaml.v3"
)

// ManifestFile is written next to the figures.
const ManifestFile = "manifest.yaml"

const manifestPerm = 0o600

// Manifest lists what a render produced.
type Manifest struct {
	DPI     int             `yaml:"dpi"`
	Figures []ManifestEntry `yaml:"figures"`
}

// ManifestEntry records one figure.
type ManifestEntry struct {
	ID    string             `yaml:"id"`
	File  string             `yaml:"file"`
	Title string             `yaml:"title"`
	Seed  uint64             `yaml:"seed"`
	Bytes int64              `yaml:"bytes"`
	Stats map[string]float64 `yaml:"stats,omitempty"`
}

// NewManifest builds a manifest from render results.
func NewManifest(results []Result, dpi int) Manifest {
	m := Manifest{DPI: dpi, Figures: make([]ManifestEntry, 0, len(results))}

	for _, r := range results {
		m.Figures = append(m.Figures, ManifestEntry{
			ID:    r.Figure.ID(),
			File:  filepath.Base(r.Path),
			Title: r.Figure.Title,
			Seed:  r.Figure.Seed,
			Bytes: r.Bytes,
			Stats: r.Stats,
		})
	}

	return m
}

// Entry returns the entry for a figure id.
func (m Manifest) Entry(id string) (ManifestEntry, bool) {
	i := slices.IndexFunc(m.Figures, func(e ManifestEntry) bool { return e.ID == id })
	if i < 0 {
		return ManifestEntry{}, false
	}

	return m.Figures[i], true
}

// StatKeys returns the entry's stat names in sorted order.
func (e ManifestEntry) StatKeys() []string {
	return slices.Sorted(maps.Keys(e.Stats))
}

// WriteManifest encodes m as YAML at path.
func WriteManifest(path string, m Manifest) error {
	data, err := yaml.Marshal(m)
	if err != nil {
		return fmt.Errorf("encode manifest: %w", err)
	}

	if err := os.WriteFile(path, data, manifestPerm); err != nil {
		return fmt.Errorf("write manifest: %w", err)
	}

	return nil
}

// ReadManifest decodes a manifest written by WriteManifest.
func ReadManifest(path string) (Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Manifest{}, fmt.Errorf("read manifest: %w", err)
	}

	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return Manifest{}, fmt.Errorf("decode manifest: %w", err)
	}

	return m, nil
}
