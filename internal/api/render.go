package api

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"

	"citizenai-backend/pkg/api"
)

//go:embed templates/*.html
var templateFS embed.FS

const (
	PageIndex     = "index"
	PageLogin     = "login"
	PageSignup    = "signup"
	PageHome      = "home"
	PageChat      = "chat"
	PageDashboard = "dashboard"
	PageAbout     = "about"
	PageNotFound  = "404"
	PageError     = "500"
)

var pageNames = []string{
	PageIndex, PageLogin, PageSignup, PageHome, PageChat,
	PageDashboard, PageAbout, PageNotFound, PageError,
}

type Renderer struct {
	pages map[string]*template.Template
}

func NewRenderer() (*Renderer, error) {
	pages := make(map[string]*template.Template, len(pageNames))
	for _, name := range pageNames {
		tmpl, err := template.ParseFS(templateFS, "templates/layout.html", "templates/"+name+".html")
		if err != nil {
			return nil, fmt.Errorf("error parsing page template %q: %w", name, err)
		}
		pages[name] = tmpl
	}
	return &Renderer{pages: pages}, nil
}

// Render writes nothing if the template fails to execute, so callers can still
// fall back to an error page.
func (r *Renderer) Render(w http.ResponseWriter, status int, name string, page api.Page) error {
	tmpl, ok := r.pages[name]
	if !ok {
		return fmt.Errorf("unknown page template %q", name)
	}

	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "layout", page); err != nil {
		return fmt.Errorf("error rendering page %q: %w", name, err)
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if _, err := buf.WriteTo(w); err != nil {
		slog.Error("error writing page", "page", name, "error", err)
	}
	return nil
}

// renderErrorPage is the last resort for page routes and never returns an error.
func (r *Renderer) renderErrorPage(w http.ResponseWriter) {
	if err := r.Render(w, http.StatusInternalServerError, PageError, api.Page{Title: "Server error"}); err != nil {
		slog.Error("error rendering error page", "error", err)
		http.Error(w, internalErrorMessage, http.StatusInternalServerError)
	}
}
