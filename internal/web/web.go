// Package web holds the embedded page templates and site assets.
package web

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"strings"
	"time"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

// Pages rendered by Renderer.
const (
	PageHome     = "home"
	PageBlog     = "blog"
	PagePost     = "post"
	PageNotFound = "notfound"
)

// Meta is the head and chrome data shared by every page.
type Meta struct {
	Title       string
	Description string
	OGImage     string
	Year        int
	// TOC loads the browser outline tracker.
	TOC bool
}

// NewMeta returns page metadata stamped with the current year.
func NewMeta(title, description string) Meta {
	return Meta{Title: title, Description: description, Year: time.Now().Year()}
}

var funcs = template.FuncMap{
	"date": func(t any) string {
		switch v := t.(type) {
		case time.Time:
			return v.Format("Jan 2, 2006")
		case *time.Time:
			if v == nil {
				return ""
			}
			return v.Format("Jan 2, 2006")
		}
		return ""
	},
	"join": strings.Join,
}

// Renderer executes the site templates.
type Renderer struct {
	pages map[string]*template.Template
}

// NewRenderer parses the embedded templates. Each page is parsed together
// with the shared layout.
func NewRenderer() (*Renderer, error) {
	r := &Renderer{pages: make(map[string]*template.Template)}
	for _, page := range []string{PageHome, PageBlog, PagePost, PageNotFound} {
		tmpl, err := template.New(page).Funcs(funcs).ParseFS(templateFS, "templates/layout.html", "templates/"+page+".html")
		if err != nil {
			return nil, fmt.Errorf("parse %s template: %w", page, err)
		}
		r.pages[page] = tmpl
	}
	return r, nil
}

// Render writes page with data. Output is buffered so a failed execution
// never leaves a half written page.
func (r *Renderer) Render(w io.Writer, page string, data any) error {
	tmpl, ok := r.pages[page]
	if !ok {
		return fmt.Errorf("unknown page %q", page)
	}
	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "layout", data); err != nil {
		return fmt.Errorf("render %s: %w", page, err)
	}
	_, err := buf.WriteTo(w)
	return err
}

// Assets returns the embedded site assets (stylesheets).
func Assets() fs.FS {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic(err)
	}
	return sub
}
