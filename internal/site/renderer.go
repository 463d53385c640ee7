package site

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"time"

	"github.com/wolfman30/supplychain-leads/internal/notify"
)

//go:embed templates/*.html
var templatesFS embed.FS

// PageData is the input of the page template.
type PageData struct {
	Content Content
	Wizard  WizardView
	Toasts  []notify.Toast
	Anchor  string
	Year    int
}

// Renderer draws the landing page.
type Renderer struct {
	tmpl    *template.Template
	content Content
	now     func() time.Time
}

// NewRenderer parses the embedded templates.
func NewRenderer(content Content) (*Renderer, error) {
	tmpl, err := template.New("site").ParseFS(templatesFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("site: parse templates: %w", err)
	}
	return &Renderer{tmpl: tmpl, content: content, now: time.Now}, nil
}

// Render writes the full page with the given wizard and pending toasts.
func (r *Renderer) Render(w io.Writer, view WizardView, toasts []notify.Toast) error {
	data := PageData{
		Content: r.content,
		Wizard:  view,
		Toasts:  toasts,
		Anchor:  GetStartedAnchor,
		Year:    r.now().Year(),
	}
	if err := r.tmpl.ExecuteTemplate(w, "page", data); err != nil {
		return fmt.Errorf("site: render page: %w", err)
	}
	return nil
}
