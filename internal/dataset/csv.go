package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// Columns names the CSV columns to read. Empty fields fall back to the
// conventional names used by the curriculum's data sheets.
type Columns struct {
	Shot     string
	Label    string
	Velocity string
}

var (
	defaultShotColumns     = []string{"shot", "#", "shot_number"}
	defaultLabelColumns    = []string{"load", "charge", "condition", "primer", "group", "label"}
	defaultVelocityColumns = []string{"velocity", "velocity_fps", "fps", "speed"}
)

// ReadCSV parses a header-first CSV of shots. Column names are matched
// case-insensitively. A missing shot column numbers shots from 1.
func ReadCSV(r io.Reader, cols Columns) (*Dataset, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, ErrEmpty
		}

		return nil, fmt.Errorf("read header: %w", err)
	}

	shotIdx := findColumn(header, cols.Shot, defaultShotColumns)

	labelIdx := findColumn(header, cols.Label, defaultLabelColumns)
	if labelIdx < 0 {
		return nil, fmt.Errorf("%w: label (%s)", ErrMissingColumn, wanted(cols.Label, defaultLabelColumns))
	}

	velocityIdx := findColumn(header, cols.Velocity, defaultVelocityColumns)
	if velocityIdx < 0 {
		return nil, fmt.Errorf("%w: velocity (%s)", ErrMissingColumn, wanted(cols.Velocity, defaultVelocityColumns))
	}

	ds := &Dataset{LabelColumn: strings.TrimSpace(header[labelIdx])}

	for line := 2; ; line++ {
		record, readErr := reader.Read()
		if errors.Is(readErr, io.EOF) {
			break
		}

		if readErr != nil {
			return nil, fmt.Errorf("read line %d: %w", line, readErr)
		}

		if blankRecord(record) {
			continue
		}

		shot, parseErr := parseRecord(record, shotIdx, labelIdx, velocityIdx, len(ds.Shots)+1)
		if parseErr != nil {
			return nil, fmt.Errorf("line %d: %w", line, parseErr)
		}

		ds.Shots = append(ds.Shots, shot)
	}

	if len(ds.Shots) == 0 {
		return nil, ErrEmpty
	}

	return ds, nil
}

// LoadFile reads a CSV dataset from path. The dataset is named after the file.
func LoadFile(path string, cols Columns) (*Dataset, error) {
	f, err := os.Open(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("open dataset: %w", err)
	}

	defer f.Close()

	ds, err := ReadCSV(f, cols)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	ds.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))

	return ds, nil
}

func parseRecord(record []string, shotIdx, labelIdx, velocityIdx, fallback int) (Shot, error) {
	if labelIdx >= len(record) || velocityIdx >= len(record) {
		return Shot{}, fmt.Errorf("%w: short record", ErrMissingColumn)
	}

	raw := strings.TrimSpace(record[velocityIdx])

	velocity, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(velocity) || math.IsInf(velocity, 0) {
		return Shot{}, fmt.Errorf("%w: %q", ErrBadVelocity, raw)
	}

	index := fallback

	if shotIdx >= 0 && shotIdx < len(record) {
		parsed, convErr := strconv.Atoi(strings.TrimSpace(record[shotIdx]))
		if convErr == nil {
			index = parsed
		}
	}

	return Shot{
		Index:    index,
		Label:    strings.TrimSpace(record[labelIdx]),
		Velocity: velocity,
	}, nil
}

func findColumn(header []string, explicit string, defaults []string) int {
	candidates := defaults
	if explicit != "" {
		candidates = []string{explicit}
	}

	for _, want := range candidates {
		for i, name := range header {
			if strings.EqualFold(strings.TrimSpace(name), want) {
				return i
			}
		}
	}

	return -1
}

func wanted(explicit string, defaults []string) string {
	if explicit != "" {
		return explicit
	}

	return strings.Join(defaults, "|")
}

func blankRecord(record []string) bool {
	for _, field := range record {
		if strings.TrimSpace(field) != "" {
			return false
		}
	}

	return true
}
