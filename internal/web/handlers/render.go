package handlers

import (
	"embed"
	"fmt"
	"html/template"
	"net/http"
)

//go:embed views/*.html
var viewFS embed.FS

// Renderer holds one compiled template set per page, each page paired with
// the shared layout.
type Renderer struct {
	pages map[string]*template.Template
}

var pageNames = []string{
	"login.html",
	"register.html",
	"drugs_index.html",
	"drug_details.html",
	"drug_form.html",
	"error.html",
}

func NewRenderer() (*Renderer, error) {
	pages := make(map[string]*template.Template, len(pageNames))
	for _, name := range pageNames {
		tmpl, err := template.ParseFS(viewFS, "views/layout.html", "views/"+name)
		if err != nil {
			return nil, fmt.Errorf("parse view %s: %w", name, err)
		}
		pages[name] = tmpl
	}
	return &Renderer{pages: pages}, nil
}

// viewData is what every page receives: the signed-in identity (nil when
// anonymous), an optional error banner, and the page's own payload.
type viewData struct {
	Identity *Identity
	Error    string
	Data     any
}

func (rd *Renderer) render(w http.ResponseWriter, status int, page string, data viewData) {
	tmpl, ok := rd.pages[page]
	if !ok {
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := tmpl.ExecuteTemplate(w, "layout.html", data); err != nil {
		webLogger().Error("render page failed", "page", page, "error", err.Error())
	}
}
