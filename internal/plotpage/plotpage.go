// Package plotpage renders interactive analysis pages: themed go-echarts
// charts arranged in titled sections with interpretation hints.
package plotpage

import (
	"io"
)

// Style defines chart dimensions.
type Style struct {
	Width  string
	Height string
}

// DefaultStyle returns the default chart style.
func DefaultStyle() Style {
	return Style{Width: "100%", Height: "420px"}
}

// Hint contains interpretive guidance for a chart section.
type Hint struct {
	Title string
	Items []string
}

// Section is one chart (or table) with its title and hint.
type Section struct {
	Title    string
	Subtitle string
	Hint     Hint
	Chart    Renderable
}

// Page is a complete analysis page.
type Page struct {
	Title       string
	Description string
	Theme       Theme
	Sections    []Section
}

// NewPage creates a page with the default dark theme.
func NewPage(title, description string) *Page {
	return &Page{Title: title, Description: description, Theme: ThemeDark}
}

// WithTheme sets the theme for the page.
func (p *Page) WithTheme(theme Theme) *Page {
	p.Theme = theme

	return p
}

// Add appends sections to the page.
func (p *Page) Add(sections ...Section) {
	p.Sections = append(p.Sections, sections...)
}

// Render writes the page as one self-contained HTML document.
func (p *Page) Render(w io.Writer) error {
	return writeDocument(w, p)
}

// Renderable is anything that writes an HTML fragment, including go-echarts charts.
type Renderable interface {
	Render(w io.Writer) error
}
