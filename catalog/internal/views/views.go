package views

import (
	"embed"
	"fmt"
	"html"
	"html/template"
	"io"
	"io/fs"
	"path"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/russross/blackfriday/v2"
)

//go:embed templates/*.html
var files embed.FS

const layout = "templates/layout.html"

// Renderer implements echo.Renderer. Every page is parsed together with the
// shared layout and executed through it.
type Renderer struct {
	pages map[string]*template.Template
}

func NewRenderer() (*Renderer, error) {
	base, err := template.New(path.Base(layout)).Funcs(funcs()).ParseFS(files, layout)
	if err != nil {
		return nil, errors.Wrap(err, "parse layout")
	}
	names, err := fs.Glob(files, "templates/*.html")
	if err != nil {
		return nil, err
	}
	r := &Renderer{pages: make(map[string]*template.Template, len(names))}
	for _, name := range names {
		if name == layout {
			continue
		}
		page, err := base.Clone()
		if err != nil {
			return nil, err
		}
		if _, err := page.ParseFS(files, name); err != nil {
			return nil, errors.Wrapf(err, "parse %s", name)
		}
		r.pages[strings.TrimSuffix(path.Base(name), ".html")] = page
	}
	return r, nil
}

func (r *Renderer) Render(w io.Writer, name string, data interface{}, _ echo.Context) error {
	page, ok := r.pages[name]
	if !ok {
		return errors.Errorf("view %q not found", name)
	}
	return page.ExecuteTemplate(w, path.Base(layout), data)
}

func funcs() template.FuncMap {
	return template.FuncMap{
		"markdown": markdown,
		"unescape": unescape,
	}
}

// unescape reverses the entity escaping applied to form input when it was
// stored. The template escapes the result again for its output context.
func unescape(v interface{}) string {
	return html.UnescapeString(fmt.Sprint(v))
}

// markdown renders a book summary. Raw HTML in the source is dropped.
func markdown(s string) template.HTML {
	renderer := blackfriday.NewHTMLRenderer(blackfriday.HTMLRendererParameters{
		Flags: blackfriday.Safelink | blackfriday.SkipHTML | blackfriday.SkipImages,
	})
	out := blackfriday.Run([]byte(s),
		blackfriday.WithRenderer(renderer),
		blackfriday.WithExtensions(blackfriday.CommonExtensions))
	return template.HTML(out) //nolint:gosec
}
