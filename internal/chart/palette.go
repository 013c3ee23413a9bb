package chart

import "image/color"

// Named colours used across the curriculum figures.
var (
	SteelBlue  = color.NRGBA{R: 0x46, G: 0x82, B: 0xB4, A: 0xFF}
	Coral      = color.NRGBA{R: 0xFF, G: 0x7F, B: 0x50, A: 0xFF}
	Gray       = color.NRGBA{R: 0x80, G: 0x80, B: 0x80, A: 0xFF}
	LightGreen = color.NRGBA{R: 0x90, G: 0xEE, B: 0x90, A: 0xFF}
	Green      = color.NRGBA{R: 0x00, G: 0x80, B: 0x00, A: 0xFF}
	DarkGreen  = color.NRGBA{R: 0x00, G: 0x64, B: 0x00, A: 0xFF}
	Red        = color.NRGBA{R: 0xFF, G: 0x00, B: 0x00, A: 0xFF}
	DarkRed    = color.NRGBA{R: 0x8B, G: 0x00, B: 0x00, A: 0xFF}
	Orange     = color.NRGBA{R: 0xFF, G: 0xA5, B: 0x00, A: 0xFF}
	DarkOrange = color.NRGBA{R: 0xFF, G: 0x8C, B: 0x00, A: 0xFF}
	OrangeRed  = color.NRGBA{R: 0xFF, G: 0x45, B: 0x00, A: 0xFF}
	Yellow     = color.NRGBA{R: 0xFF, G: 0xFF, B: 0x00, A: 0xFF}
	LightCoral = color.NRGBA{R: 0xF0, G: 0x80, B: 0x80, A: 0xFF}
	Lime       = color.NRGBA{R: 0x32, G: 0xCD, B: 0x32, A: 0xFF}
	Purple     = color.NRGBA{R: 0x80, G: 0x00, B: 0x80, A: 0xFF}
	DarkBlue   = color.NRGBA{R: 0x00, G: 0x00, B: 0x8B, A: 0xFF}
	LightBlue  = color.NRGBA{R: 0xAD, G: 0xD8, B: 0xE6, A: 0xFF}
	Wheat      = color.NRGBA{R: 0xF5, G: 0xDE, B: 0xB3, A: 0xFF}
	Gold       = color.NRGBA{R: 0xFF, G: 0xD7, B: 0x00, A: 0xFF}
	Black      = color.NRGBA{A: 0xFF}
	White      = color.NRGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xFF}
)

// Series is the default cycle for multi-series plots.
var Series = []color.NRGBA{SteelBlue, Coral, Green, Purple, Orange, DarkRed, Gray}

// SeriesColor returns the i-th series colour, cycling.
func SeriesColor(i int) color.NRGBA {
	return Series[i%len(Series)]
}

// Fade returns c with its alpha scaled to a in [0, 1].
func Fade(c color.NRGBA, a float64) color.NRGBA {
	c.A = uint8(float64(c.A) * min(max(a, 0), 1))

	return c
}
