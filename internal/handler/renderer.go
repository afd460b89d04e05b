package handler

import (
	"bytes"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"net/http"
	"path"
	"strings"

	"github.com/dukerupert/vitrine/internal/middleware"
)

// Renderer manages template parsing and rendering with isolated template sets
type Renderer struct {
	templates map[string]*template.Template
}

// NewRenderer parses layout.html from fsys once and clones it for every
// page under storefront/. Pages are keyed "storefront/<name>". Files whose
// name starts with "_" are partials and are parsed into every page.
func NewRenderer(fsys fs.FS) (*Renderer, error) {
	templates := make(map[string]*template.Template)

	baseTmpl, err := template.New("base").Funcs(TemplateFuncs()).ParseFS(fsys, "layout.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse layout: %w", err)
	}

	partials, err := fs.Glob(fsys, "storefront/_*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to glob partials: %w", err)
	}
	if len(partials) > 0 {
		if baseTmpl, err = baseTmpl.ParseFS(fsys, partials...); err != nil {
			return nil, fmt.Errorf("failed to parse partials: %w", err)
		}
	}

	pages, err := fs.Glob(fsys, "storefront/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to glob storefront templates: %w", err)
	}

	for _, page := range pages {
		baseName := path.Base(page)
		if strings.HasPrefix(baseName, "_") {
			continue
		}

		pageTmpl, err := baseTmpl.Clone()
		if err != nil {
			return nil, fmt.Errorf("failed to clone template for %s: %w", page, err)
		}

		pageTmpl, err = pageTmpl.ParseFS(fsys, page)
		if err != nil {
			return nil, fmt.Errorf("failed to parse page %s: %w", page, err)
		}

		pageName := strings.TrimSuffix(baseName, path.Ext(baseName))
		templates["storefront/"+pageName] = pageTmpl
	}

	return &Renderer{
		templates: templates,
	}, nil
}

// Execute renders a named template with the given data
func (r *Renderer) Execute(name string) (*template.Template, error) {
	tmpl, ok := r.templates[name]
	if !ok {
		return nil, fmt.Errorf("template %q not found", name)
	}
	return tmpl, nil
}

// Render executes the layout of a named page into w.
func (r *Renderer) Render(w io.Writer, name string, data any) error {
	tmpl, err := r.Execute(name)
	if err != nil {
		return err
	}
	return tmpl.ExecuteTemplate(w, "base", data)
}

// RenderHTTP renders a page with status 200. The page is rendered into a
// buffer first so template failures still produce a clean 500.
func (r *Renderer) RenderHTTP(w http.ResponseWriter, req *http.Request, name string, data any) {
	var buf bytes.Buffer
	if err := r.Render(&buf, name, data); err != nil {
		middleware.GetLogger(req.Context()).Error("render failed",
			"template", name,
			"error", err,
		)
		http.Error(w, "Failed to render page", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	buf.WriteTo(w)
}
