// Package workbook generates the Excel analysis templates: a README, the
// two-load, charge ladder, and before/after sheets with live formulas, and a
// hidden sheet of named thresholds the formulas share.
package workbook

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"

	"github.com/Sumatoshi-tech/reloadstats/internal/analysis"
)

// Sheet names, in workbook order.
const (
	SheetReadme       = "README"
	SheetTwoLoad      = "Template_A_Two_Load"
	SheetLadder       = "Template_B_Charge_Ladder"
	SheetBeforeAfter  = "Template_C_Before_After"
	SheetCalculations = "_Calculations"
)

// Output file names written by WriteBoth.
const (
	BlankFile    = "Reloading_Analysis_Templates.xlsx"
	ExamplesFile = "Reloading_Analysis_Templates_Examples.xlsx"
)

// DefaultPassword protects the formula cells.
const DefaultPassword = "reloading"

const (
	dirPerm  = 0o750
	filePerm = 0o600
)

// ErrNoOutputDir is returned when WriteBoth is called without a directory.
var ErrNoOutputDir = errors.New("workbook output directory is required")

// Options controls workbook generation.
type Options struct {
	// Examples fills the data entry areas with the curriculum example data.
	Examples bool
	// Password protects every template sheet. Empty uses DefaultPassword.
	Password string
	// Analysis supplies the significance level and small-sample threshold
	// written to the hidden calculations sheet.
	Analysis analysis.Options
}

func (o Options) password() string {
	if o.Password == "" {
		return DefaultPassword
	}

	return o.Password
}

// Build creates the workbook in memory.
func Build(opts Options) (*excelize.File, error) {
	f := excelize.NewFile()

	err := build(f, opts)
	if err != nil {
		_ = f.Close()

		return nil, err
	}

	return f, nil
}

func build(f *excelize.File, opts Options) error {
	err := f.SetSheetName("Sheet1", SheetReadme)
	if err != nil {
		return fmt.Errorf("rename default sheet: %w", err)
	}

	for _, name := range []string{SheetTwoLoad, SheetLadder, SheetBeforeAfter, SheetCalculations} {
		_, err = f.NewSheet(name)
		if err != nil {
			return fmt.Errorf("create sheet %s: %w", name, err)
		}
	}

	st, err := newStyles(f)
	if err != nil {
		return err
	}

	steps := []struct {
		name string
		fn   func(*excelize.File, *styles, Options) error
	}{
		{SheetCalculations, writeCalculations},
		{SheetReadme, writeReadme},
		{SheetTwoLoad, writeTwoLoad},
		{SheetLadder, writeLadder},
		{SheetBeforeAfter, writeBeforeAfter},
	}

	for _, step := range steps {
		err = step.fn(f, st, opts)
		if err != nil {
			return fmt.Errorf("write %s: %w", step.name, err)
		}
	}

	err = f.SetSheetVisible(SheetCalculations, false)
	if err != nil {
		return fmt.Errorf("hide %s: %w", SheetCalculations, err)
	}

	f.SetActiveSheet(0)

	err = f.SetDocProps(&excelize.DocProperties{
		Title:       "Reloading Analysis Templates",
		Subject:     "Chronograph data analysis",
		Creator:     "reloadstats",
		Description: "Two-load comparison, charge weight ladder, and before/after templates",
	})
	if err != nil {
		return fmt.Errorf("set document properties: %w", err)
	}

	return nil
}

// Written describes one saved workbook.
type Written struct {
	Path     string
	Bytes    int64
	Examples bool
}

// WriteBoth saves the blank and the example workbook into dir.
func WriteBoth(dir string, opts Options) ([]Written, error) {
	if dir == "" {
		return nil, ErrNoOutputDir
	}

	err := os.MkdirAll(dir, dirPerm)
	if err != nil {
		return nil, fmt.Errorf("create output dir: %w", err)
	}

	out := make([]Written, 0, 2)

	for _, examples := range []bool{false, true} {
		opts.Examples = examples

		name := BlankFile
		if examples {
			name = ExamplesFile
		}

		w, err := Write(filepath.Join(dir, name), opts)
		if err != nil {
			return out, err
		}

		out = append(out, w)
	}

	return out, nil
}

// Write builds one workbook and saves it to path.
func Write(path string, opts Options) (Written, error) {
	f, err := Build(opts)
	if err != nil {
		return Written{}, err
	}

	defer f.Close()

	buf, err := f.WriteToBuffer()
	if err != nil {
		return Written{}, fmt.Errorf("encode %s: %w", path, err)
	}

	err = os.WriteFile(path, buf.Bytes(), filePerm)
	if err != nil {
		return Written{}, fmt.Errorf("write %s: %w", path, err)
	}

	return Written{Path: path, Bytes: int64(buf.Len()), Examples: opts.Examples}, nil
}
