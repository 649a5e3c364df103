package web

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io"

	"newssummarizer/internal/pipeline"
)

//go:embed templates/*.html
var templatesFS embed.FS

type page struct {
	Input string
	pipeline.Result
}

type Presenter struct {
	tmpl *template.Template
}

func NewPresenter() (*Presenter, error) {
	tmpl, err := template.ParseFS(templatesFS, "templates/index.html")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}

	return &Presenter{tmpl: tmpl}, nil
}

// Render writes the page for input and res. The page is built in memory first
// so a template failure never leaves a half-written response.
func (p *Presenter) Render(w io.Writer, input string, res pipeline.Result) error {
	if res.State == "" {
		res.State = pipeline.StateIdle
	}

	var buf bytes.Buffer
	if err := p.tmpl.ExecuteTemplate(&buf, "index.html", page{Input: input, Result: res}); err != nil {
		return fmt.Errorf("execute template: %w", err)
	}

	if _, err := buf.WriteTo(w); err != nil {
		return fmt.Errorf("write page: %w", err)
	}

	return nil
}
