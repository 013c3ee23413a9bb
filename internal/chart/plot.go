// Package chart is a small plotting kit over gonum/plot for the curriculum
// figures and the analysis charts. Plot methods record the first plotter
// error and keep chaining; Canvas reports it when the figure is written.
package chart

import (
	"fmt"
	"image/color"
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/text"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

const (
	defaultLineWidth   = 1.5
	defaultGlyphRadius = 2.5
	defaultTextSize    = 9
	titleSize          = 12
	boxWidthPoints     = 30
	dashOn, dashOff    = 5, 3
	arrowHeadFraction  = 0.08
	arrowHeadSpread    = 0.5
)

// Plot is a single panel. Drawing methods return the receiver so calls chain.
type Plot struct {
	*plot.Plot

	err error
}

// New creates a panel with a light grid.
func New(title, xLabel, yLabel string) *Plot {
	p := plot.New()
	p.Title.Text = title
	p.Title.TextStyle.Font.Size = vg.Points(titleSize)
	p.X.Label.Text = xLabel
	p.Y.Label.Text = yLabel

	grid := plotter.NewGrid()
	grid.Vertical.Color = Fade(Gray, 0.3)
	grid.Horizontal.Color = Fade(Gray, 0.3)
	p.Add(grid)

	return &Plot{Plot: p}
}

// Blank creates a panel with hidden axes for diagrams and text.
func Blank(title string) *Plot {
	p := plot.New()
	p.Title.Text = title
	p.Title.TextStyle.Font.Size = vg.Points(titleSize)
	p.HideAxes()

	return &Plot{Plot: p}
}

// Err returns the first error recorded while building the panel.
func (p *Plot) Err() error {
	return p.err
}

func (p *Plot) fail(what string, err error) {
	if err != nil && p.err == nil {
		p.err = fmt.Errorf("%s: %w", what, err)
	}
}

func (p *Plot) legend(label string, thumbs ...plot.Thumbnailer) {
	if label != "" {
		p.Legend.Add(label, thumbs...)
	}
}

// XRange fixes the x axis limits.
func (p *Plot) XRange(lo, hi float64) *Plot {
	p.X.Min, p.X.Max = lo, hi

	return p
}

// YRange fixes the y axis limits.
func (p *Plot) YRange(lo, hi float64) *Plot {
	p.Y.Min, p.Y.Max = lo, hi

	return p
}

// LegendTop moves the legend to the top-left corner.
func (p *Plot) LegendTop() *Plot {
	p.Legend.Top = true
	p.Legend.Left = true

	return p
}

// Hist adds a histogram over the given bin edges. Shared edges let several
// histograms overlay cleanly.
func (p *Plot) Hist(values, edges []float64, c color.Color, label string) *Plot {
	if len(edges) < 2 {
		p.fail("histogram", ErrNoBins)

		return p
	}

	counts := Counts(values, edges)
	bins := make([]plotter.HistogramBin, len(counts))

	for i, n := range counts {
		bins[i] = plotter.HistogramBin{Min: edges[i], Max: edges[i+1], Weight: n}
	}

	h := &plotter.Histogram{
		Bins:      bins,
		Width:     edges[1] - edges[0],
		FillColor: c,
		LineStyle: plotter.DefaultLineStyle,
	}
	h.LineStyle.Width = vg.Points(0.5)

	p.Add(h)
	p.legend(label, h)

	return p
}

// Line adds a polyline through (xs[i], ys[i]).
func (p *Plot) Line(xs, ys []float64, c color.Color, label string) *Plot {
	return p.line(xs, ys, c, label, false, defaultLineWidth)
}

// Dashed adds a dashed polyline.
func (p *Plot) Dashed(xs, ys []float64, c color.Color, label string) *Plot {
	return p.line(xs, ys, c, label, true, defaultLineWidth)
}

// Thick adds a polyline with a custom width in points.
func (p *Plot) Thick(xs, ys []float64, c color.Color, width float64, label string) *Plot {
	return p.line(xs, ys, c, label, false, width)
}

func (p *Plot) line(xs, ys []float64, c color.Color, label string, dashed bool, width float64) *Plot {
	l, err := plotter.NewLine(xys(xs, ys))
	if err != nil {
		p.fail("line", err)

		return p
	}

	l.Color = c
	l.Width = vg.Points(width)

	if dashed {
		l.Dashes = []vg.Length{vg.Points(dashOn), vg.Points(dashOff)}
	}

	p.Add(l)
	p.legend(label, l)

	return p
}

// LinePoints adds a polyline with a marker at each vertex.
func (p *Plot) LinePoints(xs, ys []float64, c color.Color, label string) *Plot {
	l, s, err := plotter.NewLinePoints(xys(xs, ys))
	if err != nil {
		p.fail("linepoints", err)

		return p
	}

	l.Color = c
	l.Width = vg.Points(defaultLineWidth + 0.5)
	s.Color = c
	s.Shape = draw.CircleGlyph{}
	s.Radius = vg.Points(defaultGlyphRadius + 0.5)

	p.Add(l, s)
	p.legend(label, l, s)

	return p
}

// Scatter adds filled circular markers.
func (p *Plot) Scatter(xs, ys []float64, c color.Color, radius float64, label string) *Plot {
	return p.glyphs(xs, ys, c, radius, draw.CircleGlyph{}, label)
}

// Markers adds markers with an explicit shape.
func (p *Plot) Markers(xs, ys []float64, c color.Color, radius float64, shape draw.GlyphDrawer, label string) *Plot {
	return p.glyphs(xs, ys, c, radius, shape, label)
}

func (p *Plot) glyphs(xs, ys []float64, c color.Color, radius float64, shape draw.GlyphDrawer, label string) *Plot {
	if radius <= 0 {
		radius = defaultGlyphRadius
	}

	s, err := plotter.NewScatter(xys(xs, ys))
	if err != nil {
		p.fail("scatter", err)

		return p
	}

	s.GlyphStyle = draw.GlyphStyle{Color: c, Radius: vg.Points(radius), Shape: shape}

	p.Add(s)
	p.legend(label, s)

	return p
}

// HLine adds a horizontal reference line across the whole x range.
func (p *Plot) HLine(y float64, c color.Color, dashed bool, label string) *Plot {
	f := plotter.NewFunction(func(float64) float64 { return y })
	f.Color = c
	f.Width = vg.Points(defaultLineWidth)
	f.Samples = 2

	if dashed {
		f.Dashes = []vg.Length{vg.Points(dashOn), vg.Points(dashOff)}
	}

	p.Add(f)
	p.legend(label, f)

	return p
}

// VLine adds a vertical reference line between y0 and y1.
func (p *Plot) VLine(x, y0, y1 float64, c color.Color, dashed bool, label string) *Plot {
	return p.line([]float64{x, x}, []float64{y0, y1}, c, label, dashed, defaultLineWidth)
}

// Func plots f over [x0, x1].
func (p *Plot) Func(f func(float64) float64, x0, x1 float64, c color.Color, label string) *Plot {
	fn := plotter.NewFunction(f)
	fn.XMin, fn.XMax = x0, x1
	fn.Samples = 200
	fn.Color = c
	fn.Width = vg.Points(defaultLineWidth + 0.5)

	p.Add(fn)
	p.legend(label, fn)

	return p
}

// Circle adds a circle outline.
func (p *Plot) Circle(cx, cy, r float64, c color.Color, dashed bool, label string) *Plot {
	const segments = 120

	xs := make([]float64, segments+1)
	ys := make([]float64, segments+1)

	for i := range xs {
		theta := 2 * math.Pi * float64(i) / segments
		xs[i] = cx + r*math.Cos(theta)
		ys[i] = cy + r*math.Sin(theta)
	}

	return p.line(xs, ys, c, label, dashed, defaultLineWidth)
}

// Rect adds a filled rectangle with an outline.
func (p *Plot) Rect(x0, y0, x1, y1 float64, fill, edge color.Color) *Plot {
	poly, err := plotter.NewPolygon(plotter.XYs{{X: x0, Y: y0}, {X: x1, Y: y0}, {X: x1, Y: y1}, {X: x0, Y: y1}})
	if err != nil {
		p.fail("rect", err)

		return p
	}

	poly.Color = fill
	poly.LineStyle.Color = edge

	if edge == nil {
		poly.LineStyle.Width = 0
	}

	p.Add(poly)

	return p
}

// Band shades the horizontal strip lo ≤ y ≤ hi between x0 and x1.
func (p *Plot) Band(x0, x1, lo, hi float64, fill color.Color, label string) *Plot {
	poly, err := plotter.NewPolygon(plotter.XYs{{X: x0, Y: lo}, {X: x1, Y: lo}, {X: x1, Y: hi}, {X: x0, Y: hi}})
	if err != nil {
		p.fail("band", err)

		return p
	}

	poly.Color = fill
	poly.LineStyle.Width = 0

	p.Add(poly)
	p.legend(label, poly)

	return p
}

// Fill shades the area between the curve (xs, ys) and the line y = base.
func (p *Plot) Fill(xs, ys []float64, base float64, fill color.Color, label string) *Plot {
	pts := xys(xs, ys)
	if len(pts) == 0 {
		return p
	}

	pts = append(pts, plotter.XY{X: pts[len(pts)-1].X, Y: base}, plotter.XY{X: pts[0].X, Y: base})

	poly, err := plotter.NewPolygon(pts)
	if err != nil {
		p.fail("fill", err)

		return p
	}

	poly.Color = fill
	poly.LineStyle.Width = 0

	p.Add(poly)
	p.legend(label, poly)

	return p
}

// Bars adds one bar per value at x = 0..n-1, each with its own colour.
func (p *Plot) Bars(values []float64, colors []color.Color, width float64) *Plot {
	return p.BarsAt(values, colors, width, 0, "")
}

// BarsAt adds bars shifted by offset (in points) for grouped bar charts.
func (p *Plot) BarsAt(values []float64, colors []color.Color, width, offset float64, label string) *Plot {
	if width <= 0 {
		width = boxWidthPoints
	}

	for i, v := range values {
		bc, err := plotter.NewBarChart(plotter.Values{v}, vg.Points(width))
		if err != nil {
			p.fail("bars", err)

			return p
		}

		bc.XMin = float64(i)
		bc.Offset = vg.Points(offset)
		bc.Color = colors[i%len(colors)]
		bc.LineStyle.Width = vg.Points(0.5)

		p.Add(bc)

		if i == 0 {
			p.legend(label, bc)
		}
	}

	return p
}

// StackedBars adds two stacked series at x = 0..n-1.
func (p *Plot) StackedBars(bottom, top []float64, cBottom, cTop color.Color, lBottom, lTop string) *Plot {
	lower, err := plotter.NewBarChart(plotter.Values(bottom), vg.Points(boxWidthPoints))
	if err != nil {
		p.fail("stacked bars", err)

		return p
	}

	upper, err := plotter.NewBarChart(plotter.Values(top), vg.Points(boxWidthPoints))
	if err != nil {
		p.fail("stacked bars", err)

		return p
	}

	lower.Color = cBottom
	upper.Color = cTop
	upper.StackOn(lower)

	p.Add(lower, upper)
	p.legend(lBottom, lower)
	p.legend(lTop, upper)

	return p
}

// Categories labels the x axis with names at 0..n-1.
func (p *Plot) Categories(names ...string) *Plot {
	p.NominalX(names...)

	return p
}

// BoxPlots adds one box per group at x = 0..n-1.
func (p *Plot) BoxPlots(groups [][]float64, colors []color.Color) *Plot {
	for i, g := range groups {
		if len(g) == 0 {
			continue
		}

		b, err := plotter.NewBoxPlot(vg.Points(boxWidthPoints), float64(i), plotter.Values(g))
		if err != nil {
			p.fail("boxplot", err)

			return p
		}

		if len(colors) > 0 {
			b.FillColor = Fade(toNRGBA(colors[i%len(colors)]), 0.6)
		}

		p.Add(b)
	}

	return p
}

// errorPoints satisfies plotter's XYer and YErrorer.
type errorPoints struct {
	plotter.XYs
	plotter.YErrors
}

// ErrorBars adds markers at (xs, ys) with symmetric vertical error bars.
func (p *Plot) ErrorBars(xs, ys, half []float64, c color.Color, label string) *Plot {
	pts := errorPoints{XYs: xys(xs, ys), YErrors: make(plotter.YErrors, len(half))}

	for i, h := range half {
		pts.YErrors[i].Low = h
		pts.YErrors[i].High = h
	}

	bars, err := plotter.NewYErrorBars(pts)
	if err != nil {
		p.fail("errorbars", err)

		return p
	}

	bars.Color = c
	bars.Width = vg.Points(defaultLineWidth + 0.5)
	bars.CapWidth = vg.Points(8)

	p.Add(bars)

	return p.glyphs(xs, ys, c, defaultGlyphRadius+2, draw.CircleGlyph{}, label)
}

// Text places a label centred on (x, y). Newlines are honoured.
func (p *Plot) Text(x, y float64, s string) *Plot {
	return p.TextSized(x, y, s, defaultTextSize, Black)
}

// TextSized places a label with an explicit size and colour.
func (p *Plot) TextSized(x, y float64, s string, size float64, c color.Color) *Plot {
	labels, err := plotter.NewLabels(plotter.XYLabels{
		XYs:    plotter.XYs{{X: x, Y: y}},
		Labels: []string{s},
	})
	if err != nil {
		p.fail("text", err)

		return p
	}

	for i := range labels.TextStyle {
		labels.TextStyle[i].Font.Size = vg.Points(size)
		labels.TextStyle[i].Color = c
		labels.TextStyle[i].XAlign = text.XCenter
		labels.TextStyle[i].YAlign = text.YCenter
	}

	p.Add(labels)

	return p
}

// Annotate places text at a fraction of the current axis ranges. Call it
// after the data has been added.
func (p *Plot) Annotate(fx, fy float64, s string) *Plot {
	x := p.X.Min + fx*(p.X.Max-p.X.Min)
	y := p.Y.Min + fy*(p.Y.Max-p.Y.Min)

	return p.TextSized(x, y, s, defaultTextSize-1, DarkBlue)
}

// Node draws a diagram box centred at (cx, cy) with a text label.
func (p *Plot) Node(cx, cy, w, h float64, fill color.Color, label string) *Plot {
	p.Rect(cx-w/2, cy-h/2, cx+w/2, cy+h/2, fill, Black)

	return p.Text(cx, cy, label)
}

// Arrow draws a line from (x0, y0) to (x1, y1) with an open arrow head.
func (p *Plot) Arrow(x0, y0, x1, y1 float64, c color.Color) *Plot {
	p.line([]float64{x0, x1}, []float64{y0, y1}, c, "", false, defaultLineWidth+0.5)

	dx, dy := x1-x0, y1-y0
	length := math.Hypot(dx, dy)

	if length == 0 {
		return p
	}

	head := length * arrowHeadFraction
	ux, uy := dx/length, dy/length

	for _, sign := range []float64{1, -1} {
		hx := x1 - head*(ux+sign*arrowHeadSpread*-uy)
		hy := y1 - head*(uy+sign*arrowHeadSpread*ux)
		p.line([]float64{x1, hx}, []float64{y1, hy}, c, "", false, defaultLineWidth+0.5)
	}

	return p
}

func xys(xs, ys []float64) plotter.XYs {
	n := min(len(xs), len(ys))
	out := make(plotter.XYs, n)

	for i := range n {
		out[i].X = xs[i]
		out[i].Y = ys[i]
	}

	return out
}

func toNRGBA(c color.Color) color.NRGBA {
	if n, ok := c.(color.NRGBA); ok {
		return n
	}

	return color.NRGBAModel.Convert(c).(color.NRGBA)
}
