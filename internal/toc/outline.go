package toc

import (
	"bytes"
	"html/template"
	"io"

	"devfolio/internal/markdown"
)

// Default outline labels.
const (
	DefaultTitle     = "Contents"
	DefaultEmptyText = "No outline available for this post."
)

// OutlineOptions controls how an outline is rendered.
type OutlineOptions struct {
	Mobile    bool
	ActiveID  string
	Expanded  bool
	Title     string
	EmptyText string
}

type outlineEntry struct {
	Level  int
	ID     string
	Text   string
	Active bool
}

type outlineData struct {
	Title     string
	EmptyText string
	Expanded  bool
	Entries   []outlineEntry
}

var desktopTemplate = template.Must(template.New("toc").Parse(`<nav class="toc" data-toc aria-label="{{.Title}}">
  <h3 class="toc-title">{{.Title}}</h3>
{{- if .Entries}}
  <ul class="toc-list">
{{- range .Entries}}
    <li class="toc-level-{{.Level}}"><a href="#{{.ID}}" data-toc-id="{{.ID}}"{{if .Active}} class="active" aria-current="location"{{end}}>{{.Text}}</a></li>
{{- end}}
  </ul>
{{- else}}
  <p class="toc-empty">{{.EmptyText}}</p>
{{- end}}
</nav>
`))

var mobileTemplate = template.Must(template.New("toc-mobile").Parse(`{{if .Entries -}}
<div class="toc-mobile" data-toc data-toc-mobile>
  <button type="button" class="toc-toggle" data-toc-toggle aria-expanded="{{.Expanded}}">{{.Title}}</button>
  <ul class="toc-list"{{if not .Expanded}} hidden{{end}}>
{{- range .Entries}}
    <li class="toc-level-{{.Level}}"><a href="#{{.ID}}" data-toc-id="{{.ID}}"{{if .Active}} class="active" aria-current="location"{{end}}>{{.Text}}</a></li>
{{- end}}
  </ul>
</div>
{{end}}`))

// RenderOutline writes the clickable outline for headings. With no headings
// the desktop variant renders a placeholder and the mobile variant nothing.
func RenderOutline(w io.Writer, headings []markdown.Heading, opts OutlineOptions) error {
	data := outlineData{
		Title:     opts.Title,
		EmptyText: opts.EmptyText,
		Expanded:  opts.Expanded,
	}
	if data.Title == "" {
		data.Title = DefaultTitle
	}
	if data.EmptyText == "" {
		data.EmptyText = DefaultEmptyText
	}
	for _, h := range headings {
		data.Entries = append(data.Entries, outlineEntry{
			Level:  h.Level,
			ID:     h.ID,
			Text:   h.Text,
			Active: h.ID == opts.ActiveID,
		})
	}

	if opts.Mobile {
		return mobileTemplate.Execute(w, data)
	}
	return desktopTemplate.Execute(w, data)
}

// Outline renders the outline into a template.HTML for embedding in pages.
func Outline(headings []markdown.Heading, opts OutlineOptions) (template.HTML, error) {
	var buf bytes.Buffer
	if err := RenderOutline(&buf, headings, opts); err != nil {
		return "", err
	}
	return template.HTML(buf.String()), nil
}
