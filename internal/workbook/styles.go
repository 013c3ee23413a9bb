package workbook

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

// Palette shared with the static charts.
const (
	colorHeader  = "003366"
	colorLoad1   = "4682B4"
	colorLoad2   = "FF7F50"
	colorBefore  = "808080"
	colorAfter   = "90EE90"
	colorCalcBG  = "F0F0F0"
	colorWarning = "FFFF99"
	colorError   = "FFB3B3"
	colorSuccess = "90EE90"
	colorStripe  = "F5F5F5"
	colorWhite   = "FFFFFF"
)

// Number formats.
const (
	fmtInt     = "0"
	fmtOne     = "0.0"
	fmtThree   = "0.000"
	fmtFour    = "0.0000"
	fmtSigned  = "+0.0;-0.0;0.0"
	fmtPercent = "0.00"
)

type styles struct {
	title      int
	banner     int
	warnBanner int
	section    int
	success    int
	header     int
	load1      int
	load2      int
	before     int
	after      int
	entryEven  int
	entryOdd   int
	entryValue int
	label      int
	bold       int
	note       int
	warning    int
	errorCell  int
	text       int
	int        int
	one        int
	three      int
	four       int
	signed     int
	setting    int
}

type styleDef struct {
	dst   *int
	style excelize.Style
}

func solid(color string) excelize.Fill {
	return excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{color}}
}

func numFmt(format string) *string {
	return &format
}

func newStyles(f *excelize.File) (*styles, error) {
	center := &excelize.Alignment{Horizontal: "center", Vertical: "center", WrapText: true}
	topLeft := &excelize.Alignment{Horizontal: "left", Vertical: "top", WrapText: true}
	unlocked := &excelize.Protection{Locked: false}
	whiteBold := &excelize.Font{Bold: true, Color: colorWhite, Size: 11}

	st := &styles{}
	var defs []styleDef

	add := func(dst *int, s excelize.Style) {
		defs = append(defs, styleDef{dst: dst, style: s})
	}

	add(&st.title, excelize.Style{Fill: solid(colorHeader), Font: &excelize.Font{Bold: true, Size: 16, Color: colorWhite}, Alignment: center})
	add(&st.banner, excelize.Style{Fill: solid(colorHeader), Font: &excelize.Font{Bold: true, Size: 12, Color: colorWhite}, Alignment: center})
	add(&st.warnBanner, excelize.Style{Fill: solid(colorWarning), Font: &excelize.Font{Bold: true, Size: 10}, Alignment: center})
	add(&st.section, excelize.Style{Fill: solid(colorCalcBG), Font: &excelize.Font{Bold: true, Size: 11}})
	add(&st.success, excelize.Style{Fill: solid(colorSuccess), Font: &excelize.Font{Bold: true, Size: 11}})
	add(&st.header, excelize.Style{Fill: solid(colorHeader), Font: whiteBold, Alignment: center})
	add(&st.load1, excelize.Style{Fill: solid(colorLoad1), Font: whiteBold, Alignment: center, Protection: unlocked})
	add(&st.load2, excelize.Style{Fill: solid(colorLoad2), Font: whiteBold, Alignment: center, Protection: unlocked})
	add(&st.before, excelize.Style{Fill: solid(colorBefore), Font: whiteBold, Alignment: center})
	add(&st.after, excelize.Style{Fill: solid(colorAfter), Font: &excelize.Font{Bold: true}, Alignment: center})
	add(&st.entryEven, excelize.Style{Fill: solid(colorWhite), Alignment: &excelize.Alignment{Horizontal: "center"}, Protection: unlocked})
	add(&st.entryOdd, excelize.Style{Fill: solid(colorStripe), Alignment: &excelize.Alignment{Horizontal: "center"}, Protection: unlocked})
	add(&st.entryValue, excelize.Style{Fill: solid(colorWhite), Alignment: &excelize.Alignment{Horizontal: "center"}, Protection: unlocked, CustomNumFmt: numFmt(fmtOne)})
	add(&st.label, excelize.Style{Alignment: &excelize.Alignment{Horizontal: "left"}})
	add(&st.bold, excelize.Style{Font: &excelize.Font{Bold: true}})
	add(&st.note, excelize.Style{Fill: solid(colorCalcBG), Font: &excelize.Font{Size: 9, Italic: true}})
	add(&st.warning, excelize.Style{Fill: solid(colorWarning), Alignment: topLeft})
	add(&st.errorCell, excelize.Style{Fill: solid(colorError), Alignment: topLeft})
	add(&st.text, excelize.Style{Alignment: topLeft, Font: &excelize.Font{Size: 10}})
	add(&st.int, excelize.Style{Alignment: &excelize.Alignment{Horizontal: "center"}, CustomNumFmt: numFmt(fmtInt)})
	add(&st.one, excelize.Style{Alignment: &excelize.Alignment{Horizontal: "center"}, CustomNumFmt: numFmt(fmtOne)})
	add(&st.three, excelize.Style{Alignment: &excelize.Alignment{Horizontal: "center"}, CustomNumFmt: numFmt(fmtThree)})
	add(&st.four, excelize.Style{Alignment: &excelize.Alignment{Horizontal: "center"}, CustomNumFmt: numFmt(fmtFour)})
	add(&st.signed, excelize.Style{Alignment: &excelize.Alignment{Horizontal: "center"}, CustomNumFmt: numFmt(fmtSigned)})
	add(&st.setting, excelize.Style{CustomNumFmt: numFmt(fmtPercent)})

	for _, d := range defs {
		id, err := f.NewStyle(&d.style)
		if err != nil {
			return nil, fmt.Errorf("create style: %w", err)
		}

		*d.dst = id
	}

	return st, nil
}
