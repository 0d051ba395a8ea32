package render

import (
	"embed"
	"fmt"
	"html/template"
	"io"
)

//go:embed templates/*.tmpl
var templateFiles embed.FS

// Renderer executes the public HTML fragments. Templates are parsed once at
// startup so a bad fragment fails the boot, not a request.
type Renderer struct {
	templates *template.Template
}

// NewRenderer parses the embedded fragments.
func NewRenderer() (*Renderer, error) {
	t, err := template.ParseFS(templateFiles, "templates/*.tmpl")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	return &Renderer{templates: t}, nil
}

// ExchangeGrid writes the partner card grid.
func (r *Renderer) ExchangeGrid(w io.Writer, cards []ExchangeCard) error {
	return r.templates.ExecuteTemplate(w, "exchanges.tmpl", cards)
}

// FAQList writes the accordion fragment.
func (r *Renderer) FAQList(w io.Writer, items []FAQItem) error {
	return r.templates.ExecuteTemplate(w, "faqs.tmpl", items)
}

// Hero writes the headline fragment.
func (r *Renderer) Hero(w io.Writer, view HeroView) error {
	return r.templates.ExecuteTemplate(w, "hero.tmpl", view)
}

// Articles writes the pinned-article cards.
func (r *Renderer) Articles(w io.Writer, cards []ArticleCard) error {
	return r.templates.ExecuteTemplate(w, "articles.tmpl", cards)
}

// Banner writes the promotional strip, or nothing when hidden.
func (r *Renderer) Banner(w io.Writer, view BannerView) error {
	return r.templates.ExecuteTemplate(w, "banner.tmpl", view)
}

// Popup writes the popup fragment, or nothing when the gate says no.
func (r *Renderer) Popup(w io.Writer, view PopupView) error {
	return r.templates.ExecuteTemplate(w, "popup.tmpl", view)
}
