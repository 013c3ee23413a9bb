package workbook

import (
	"fmt"
	"strconv"

	"github.com/xuri/excelize/v2"

	"github.com/Sumatoshi-tech/reloadstats/internal/dataset"
)

// sheetWriter wraps one worksheet. Methods record the first error and turn
// into no-ops afterwards, so layout code reads top to bottom.
type sheetWriter struct {
	f    *excelize.File
	name string
	st   *styles
	err  error
}

func newSheetWriter(f *excelize.File, name string, st *styles) *sheetWriter {
	return &sheetWriter{f: f, name: name, st: st}
}

func ref(col string, row int) string {
	return col + strconv.Itoa(row)
}

func rng(col string, from, to int) string {
	return fmt.Sprintf("%s%d:%s%d", col, from, col, to)
}

// absRange is an absolute reference such as $B$5:$B$64.
func absRange(col string, from, to int) string {
	return fmt.Sprintf("$%s$%d:$%s$%d", col, from, col, to)
}

func (s *sheetWriter) fail(what string, err error) {
	if err != nil && s.err == nil {
		s.err = fmt.Errorf("%s: %w", what, err)
	}
}

func (s *sheetWriter) value(cell string, v any) *sheetWriter {
	if s.err == nil {
		s.fail("set "+cell, s.f.SetCellValue(s.name, cell, v))
	}

	return s
}

// formula sets a regular formula.
func (s *sheetWriter) formula(cell, formula string) *sheetWriter {
	if s.err == nil {
		s.fail("formula "+cell, s.f.SetCellFormula(s.name, cell, formula))
	}

	return s
}

// array sets a single-cell array formula, needed for IF over ranges in
// spreadsheet versions without dynamic arrays.
func (s *sheetWriter) array(cell, formula string) *sheetWriter {
	if s.err == nil {
		typ, ref := excelize.STCellFormulaTypeArray, cell
		s.fail("array formula "+cell, s.f.SetCellFormula(s.name, cell, formula, excelize.FormulaOpts{Type: &typ, Ref: &ref}))
	}

	return s
}

func (s *sheetWriter) style(from, to string, id int) *sheetWriter {
	if s.err == nil {
		s.fail("style "+from, s.f.SetCellStyle(s.name, from, to, id))
	}

	return s
}

// styled sets a value and a style on one cell.
func (s *sheetWriter) styled(cell string, v any, id int) *sheetWriter {
	return s.value(cell, v).style(cell, cell, id)
}

// merged merges a range, writes v into it, and styles the whole range.
func (s *sheetWriter) merged(from, to string, v any, id int) *sheetWriter {
	if s.err == nil {
		s.fail("merge "+from, s.f.MergeCell(s.name, from, to))
	}

	return s.value(from, v).style(from, to, id)
}

// mergedFormula merges a range and writes a wrapped text formula into it.
func (s *sheetWriter) mergedFormula(from, to, formula string, isArray bool, id int) *sheetWriter {
	if s.err == nil {
		s.fail("merge "+from, s.f.MergeCell(s.name, from, to))
	}

	return s.put(from, formula, isArray).style(from, to, id)
}

func (s *sheetWriter) width(col string, w float64) *sheetWriter {
	if s.err == nil {
		s.fail("width "+col, s.f.SetColWidth(s.name, col, col, w))
	}

	return s
}

func (s *sheetWriter) height(row int, h float64) *sheetWriter {
	if s.err == nil {
		s.fail("height "+strconv.Itoa(row), s.f.SetRowHeight(s.name, row, h))
	}

	return s
}

func (s *sheetWriter) validate(dv *excelize.DataValidation) *sheetWriter {
	if s.err == nil {
		s.fail("validation "+dv.Sqref, s.f.AddDataValidation(s.name, dv))
	}

	return s
}

// decimalRange restricts sqref to numbers between lo and hi.
func (s *sheetWriter) decimalRange(sqref string, lo, hi float64, title, msg string) *sheetWriter {
	dv := excelize.NewDataValidation(true)
	dv.SetSqref(sqref)
	dv.SetError(excelize.DataValidationErrorStyleStop, title, msg)
	s.fail("validation "+sqref, dv.SetRange(lo, hi, excelize.DataValidationTypeDecimal, excelize.DataValidationOperatorBetween))

	return s.validate(dv)
}

// dropList restricts sqref to the literal items.
func (s *sheetWriter) dropList(sqref, title, prompt string, items ...string) *sheetWriter {
	dv := listValidation(sqref, title, prompt)
	s.fail("validation "+sqref, dv.SetDropList(items))

	return s.validate(dv)
}

// rangeList restricts sqref to the values held in source, such as $F$5:$G$5.
func (s *sheetWriter) rangeList(sqref, title, prompt, source string) *sheetWriter {
	dv := listValidation(sqref, title, prompt)
	dv.SetSqrefDropList(source)

	return s.validate(dv)
}

func listValidation(sqref, title, prompt string) *excelize.DataValidation {
	dv := excelize.NewDataValidation(true)
	dv.SetSqref(sqref)
	dv.SetError(excelize.DataValidationErrorStyleStop, "Invalid "+title, "Invalid entry")
	dv.SetInput(title, prompt)

	return dv
}

func (s *sheetWriter) chart(cell string, c *excelize.Chart) *sheetWriter {
	if s.err == nil {
		s.fail("chart "+cell, s.f.AddChart(s.name, cell, c))
	}

	return s
}

// protect locks the sheet; cells styled unlocked stay editable.
func (s *sheetWriter) protect(password string) *sheetWriter {
	if s.err == nil {
		s.fail("protect", s.f.ProtectSheet(s.name, &excelize.SheetProtectionOptions{
			Password:            password,
			SelectLockedCells:   true,
			SelectUnlockedCells: true,
			FormatColumns:       true,
		}))
	}

	return s
}

// entryRows writes shot numbers into column A and stripes the data entry block.
func (s *sheetWriter) entryRows(first, last int) *sheetWriter {
	for row := first; row <= last; row++ {
		id := s.st.entryEven
		if (row-first)%2 == 1 {
			id = s.st.entryOdd
		}

		s.value(ref("A", row), row-first+1).style(ref("A", row), ref("C", row), id)
	}

	return s
}

// fillShots writes example shots from row first onwards, stopping at last.
// numeric labels are stored as numbers so charge criteria compare equal.
func (s *sheetWriter) fillShots(first, last int, shots []dataset.Shot, numeric bool) *sheetWriter {
	for i, shot := range shots {
		row := first + i
		if row > last {
			break
		}

		var label any = shot.Label

		if numeric {
			v, err := strconv.ParseFloat(shot.Label, 64)
			if err == nil {
				label = v
			}
		}

		s.value(ref("A", row), shot.Index).value(ref("B", row), label).value(ref("C", row), shot.Velocity)
	}

	return s
}

// banner writes the merged title across row 1.
func (s *sheetWriter) banner(text string) *sheetWriter {
	return s.merged("A1", "T1", text, s.st.banner).height(1, 25)
}

// headers writes a header row starting at column col.
func (s *sheetWriter) headers(col string, row int, names ...string) *sheetWriter {
	c := col[0]

	for i, name := range names {
		s.styled(ref(string(c+byte(i)), row), name, s.st.header)
	}

	return s
}

// seriesRef is a sheet-qualified absolute reference for chart series.
func (s *sheetWriter) seriesRef(col string, from, to int) string {
	return fmt.Sprintf("'%s'!%s", s.name, absRange(col, from, to))
}

// cellRef is a sheet-qualified absolute reference to one cell.
func (s *sheetWriter) cellRef(col string, row int) string {
	return fmt.Sprintf("'%s'!$%s$%d", s.name, col, row)
}

// rowRef is a sheet-qualified absolute reference across one row.
func (s *sheetWriter) rowRef(fromCol, toCol string, row int) string {
	return fmt.Sprintf("'%s'!$%s$%d:$%s$%d", s.name, fromCol, row, toCol, row)
}

func chartTitle(text string) []excelize.RichTextRun {
	return []excelize.RichTextRun{{Text: text}}
}
