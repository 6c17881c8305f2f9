package ui

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"time"
)

//go:embed templates/*.html
var templateFS embed.FS

// Renderer turns state snapshots into HTML
type Renderer struct {
	tmpl *template.Template
	now  func() time.Time
}

// NewRenderer parses the embedded templates
func NewRenderer() (*Renderer, error) {
	tmpl, err := template.ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}

	return &Renderer{tmpl: tmpl, now: time.Now}, nil
}

// RenderPage writes the full page for s
func (r *Renderer) RenderPage(w io.Writer, s State) error {
	return r.tmpl.ExecuteTemplate(w, "page", NewView(s, r.now()))
}

// RenderContent writes only the error and result fragment, as pushed over the websocket
func (r *Renderer) RenderContent(w io.Writer, s State) error {
	return r.tmpl.ExecuteTemplate(w, "content", NewView(s, r.now()))
}
