package chart

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/font"
	"gonum.org/v1/plot/text"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"
)

// DefaultDPI is the print resolution of the curriculum figures.
const DefaultDPI = 300

const (
	dirPerm        = 0o750
	filePerm       = 0o600
	suptitleSize   = 15
	titleLine      = 0.27 // inches per line
	footerSize     = 10
	footerLine     = 0.2 // inches per line
	tilePad        = 0.25 // inches
)

var (
	// ErrNoBins is returned when a histogram has fewer than two edges.
	ErrNoBins = errors.New("histogram needs at least two bin edges")
	// ErrEmptyCanvas is returned when a canvas has no panels.
	ErrEmptyCanvas = errors.New("canvas has no panels")
	// ErrBadDPI is returned for a non-positive resolution.
	ErrBadDPI = errors.New("dpi must be positive")
)

// Canvas stacks rows of panels with an optional super title and footer
// note. Rows share the height equally; each row may hold a different number
// of panels.
type Canvas struct {
	Title  string
	Footer string
	Width  vg.Length
	Height vg.Length
	Panels [][]*Plot
}

// NewCanvas creates a rows × cols grid of blank panels sized in inches.
// Replace or draw into panels through Set and At.
func NewCanvas(title string, rows, cols int, widthIn, heightIn float64) *Canvas {
	layout := make([]int, rows)
	for r := range layout {
		layout[r] = cols
	}

	return NewLayout(title, widthIn, heightIn, layout...)
}

// NewLayout creates rows of blank panels; cols[r] is the panel count of row r.
func NewLayout(title string, widthIn, heightIn float64, cols ...int) *Canvas {
	panels := make([][]*Plot, len(cols))
	for r, n := range cols {
		panels[r] = make([]*Plot, n)
		for c := range panels[r] {
			panels[r][c] = Blank("")
		}
	}

	return &Canvas{
		Title:  title,
		Width:  vg.Length(widthIn) * vg.Inch,
		Height: vg.Length(heightIn) * vg.Inch,
		Panels: panels,
	}
}

// Single wraps one panel in a canvas.
func Single(p *Plot, widthIn, heightIn float64) *Canvas {
	c := NewCanvas("", 1, 1, widthIn, heightIn)
	c.Panels[0][0] = p

	return c
}

// At returns the panel at (row, col).
func (c *Canvas) At(row, col int) *Plot {
	return c.Panels[row][col]
}

// Set replaces the panel at (row, col).
func (c *Canvas) Set(row, col int, p *Plot) {
	c.Panels[row][col] = p
}

// Err joins the build errors of every panel.
func (c *Canvas) Err() error {
	var errs []error

	for r, row := range c.Panels {
		for col, p := range row {
			if p != nil && p.Err() != nil {
				errs = append(errs, fmt.Errorf("panel %d,%d: %w", r, col, p.Err()))
			}
		}
	}

	return errors.Join(errs...)
}

// Render encodes the canvas as PNG at the given dpi.
func (c *Canvas) Render(w io.Writer, dpi int) (int64, error) {
	if dpi <= 0 {
		return 0, fmt.Errorf("%w: %d", ErrBadDPI, dpi)
	}

	if len(c.Panels) == 0 || len(c.Panels[0]) == 0 {
		return 0, ErrEmptyCanvas
	}

	if err := c.Err(); err != nil {
		return 0, err
	}

	img := vgimg.NewWith(vgimg.UseWH(c.Width, c.Height), vgimg.UseDPI(dpi))
	dc := draw.New(img)

	if c.Title != "" {
		lines := strings.Count(c.Title, "\n") + 1
		c.drawTitle(dc)
		dc = draw.Crop(dc, 0, 0, 0, -vg.Length(titleLine*float64(lines)+titleLine/2)*vg.Inch)
	}

	if c.Footer != "" {
		lines := strings.Count(c.Footer, "\n") + 1
		c.drawFooter(dc)
		dc = draw.Crop(dc, 0, 0, vg.Length(footerLine*float64(lines)+footerLine/2)*vg.Inch, 0)
	}

	c.drawRows(dc)

	n, err := vgimg.PngCanvas{Canvas: img}.WriteTo(w)
	if err != nil {
		return n, fmt.Errorf("encode png: %w", err)
	}

	return n, nil
}

func (c *Canvas) drawRows(dc draw.Canvas) {
	pad := vg.Length(tilePad) * vg.Inch
	rows := len(c.Panels)
	rowHeight := dc.Rectangle.Size().Y / vg.Length(rows)

	for r, row := range c.Panels {
		if len(row) == 0 {
			continue
		}

		rowCanvas := draw.Crop(dc, 0, 0,
			rowHeight*vg.Length(rows-r-1),
			-rowHeight*vg.Length(r))

		plots := make([]*plot.Plot, len(row))
		for i, p := range row {
			plots[i] = p.Plot
		}

		tiles := draw.Tiles{
			Rows:      1,
			Cols:      len(plots),
			PadX:      pad,
			PadTop:    pad / 2,
			PadBottom: pad / 2,
			PadLeft:   pad / 2,
			PadRight:  pad / 2,
		}

		canvases := plot.Align([][]*plot.Plot{plots}, tiles, rowCanvas)
		for i, p := range plots {
			p.Draw(canvases[0][i])
		}
	}
}

func (c *Canvas) drawTitle(dc draw.Canvas) {
	top := vg.Point{
		X: dc.Rectangle.Min.X + dc.Rectangle.Size().X/2,
		Y: dc.Rectangle.Max.Y - vg.Points(6),
	}

	dc.FillText(textStyle(suptitleSize, text.YTop), top, c.Title)
}

func (c *Canvas) drawFooter(dc draw.Canvas) {
	bottom := vg.Point{
		X: dc.Rectangle.Min.X + dc.Rectangle.Size().X/2,
		Y: dc.Rectangle.Min.Y + vg.Points(4),
	}

	dc.FillText(textStyle(footerSize, text.YBottom), bottom, c.Footer)
}

func textStyle(size float64, yAlign text.YAlignment) text.Style {
	return text.Style{
		Color:   Black,
		Font:    font.From(plot.DefaultFont, vg.Points(size)),
		XAlign:  text.XCenter,
		YAlign:  yAlign,
		Handler: plot.DefaultTextHandler,
	}
}

// Save renders the canvas to path, creating parent directories, and returns
// the number of bytes written.
func (c *Canvas) Save(path string, dpi int) (int64, error) {
	var buf bytes.Buffer

	n, err := c.Render(&buf, dpi)
	if err != nil {
		return 0, err
	}

	if err := os.MkdirAll(filepath.Dir(path), dirPerm); err != nil {
		return 0, fmt.Errorf("create output dir: %w", err)
	}

	if err := os.WriteFile(path, buf.Bytes(), filePerm); err != nil {
		return 0, fmt.Errorf("write %s: %w", path, err)
	}

	return n, nil
}
