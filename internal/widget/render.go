package widget

import (
	"embed"
	"fmt"
	"html/template"
	"io"
)

//go:embed templates/*.html
var templateFS embed.FS

// Renderer turns views into HTML.
type Renderer struct {
	tmpl       *template.Template
	spinnerURL string
	logoURL    string
}

// NewRenderer parses the embedded templates.
func NewRenderer(spinnerURL, logoURL string) (*Renderer, error) {
	tmpl, err := template.ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parsing widget templates: %w", err)
	}
	return &Renderer{tmpl: tmpl, spinnerURL: spinnerURL, logoURL: logoURL}, nil
}

type widgetData struct {
	View       View
	SpinnerURL string
	LogoURL    string
	Tab        string // echoed back by the widget's forms
	Fragment   bool
}

type pageData struct {
	Title   string
	Refresh bool
	Active  string
	Demo    []DemoGene
	Widget  *widgetData
}

// RenderWidget writes the widget fragment for v.
func (r *Renderer) RenderWidget(w io.Writer, v View) error {
	data := r.widgetData(v)
	data.Fragment = true
	return r.tmpl.ExecuteTemplate(w, "widget", data)
}

// RenderPage writes a full page around the widget. Pages for widgets
// still waiting on BAR refresh themselves.
func (r *Renderer) RenderPage(w io.Writer, v View, activeTab string) error {
	wd := r.widgetData(v)
	wd.Tab = activeTab
	data := pageData{
		Title:   fmt.Sprintf("eFP: %s", v.Gene.ID),
		Refresh: v.Loading(),
		Active:  activeTab,
		Demo:    DemoGenes,
		Widget:  wd,
	}
	return r.tmpl.ExecuteTemplate(w, "page", data)
}

// RenderDemo writes the landing page with the demo tabs and no widget.
func (r *Renderer) RenderDemo(w io.Writer) error {
	return r.tmpl.ExecuteTemplate(w, "page", pageData{Title: "eFP browser demo", Demo: DemoGenes})
}

func (r *Renderer) widgetData(v View) *widgetData {
	return &widgetData{View: v, SpinnerURL: r.spinnerURL, LogoURL: r.logoURL}
}
