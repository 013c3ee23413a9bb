package plotpage

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io"
	"regexp"
)

const (
	brand   = "Reloadstats"
	tagline = "Data-Driven Reloading"
)

//go:embed templates/*.html
var templateFS embed.FS

var layout = template.Must(template.New("layout").Funcs(template.FuncMap{
	"brand":   func() string { return brand },
	"tagline": func() string { return tagline },
	"odd":     func(i int) bool { return i%2 == 1 },
}).ParseFS(templateFS, "templates/*.html"))

var (
	styleBlock = regexp.MustCompile(`(?s)<style>.*?</style>`)
	chartBody  = regexp.MustCompile(`(?s)<div class="container">.*</body>`)
)

// document is the view of a Page handed to page.html.
type document struct {
	Title       string
	Description string
	Dark        bool
	Colors      ThemeConfig
	Sections    []sectionView
}

type sectionView struct {
	Title    string
	Subtitle string
	Body     template.HTML
	Hint     Hint
}

func writeDocument(w io.Writer, p *Page) error {
	doc := document{
		Title:       p.Title,
		Description: p.Description,
		Dark:        p.Theme != ThemeLight,
		Colors:      GetThemeConfig(p.Theme),
		Sections:    make([]sectionView, len(p.Sections)),
	}

	for i, s := range p.Sections {
		body, err := fragment(s.Chart)
		if err != nil {
			return fmt.Errorf("render section %q: %w", s.Title, err)
		}

		doc.Sections[i] = sectionView{Title: s.Title, Subtitle: s.Subtitle, Body: body, Hint: s.Hint}
	}

	// Buffer so a failed page never leaves half a document behind.
	var buf bytes.Buffer

	err := layout.ExecuteTemplate(&buf, "page.html", doc)
	if err != nil {
		return fmt.Errorf("render page: %w", err)
	}

	_, err = buf.WriteTo(w)
	if err != nil {
		return fmt.Errorf("write page: %w", err)
	}

	return nil
}

// fragment renders r and, when it produced a standalone go-echarts page,
// cuts it down to the chart container and its init script.
func fragment(r Renderable) (template.HTML, error) {
	if r == nil {
		return "", nil
	}

	var buf bytes.Buffer

	err := r.Render(&buf)
	if err != nil {
		return "", err
	}

	out := buf.Bytes()

	if body := chartBody.Find(out); body != nil {
		body = bytes.TrimSuffix(body, []byte("</body>"))
		body = bytes.ReplaceAll(body, []byte(`class="container"`), []byte(`class="echart-box"`))
		out = styleBlock.ReplaceAll(body, nil)
	}

	return template.HTML(out), nil //nolint:gosec // produced by html/template or go-echarts.
}
