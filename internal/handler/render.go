package handler

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"path"

	"github.com/labstack/echo/v4"

	"idorlab/internal/middleware"
)

//go:embed templates/*.html
var templateFS embed.FS

const layoutTemplate = "templates/layout.html"

// TemplateRenderer renders the embedded pages inside the shared layout.
type TemplateRenderer struct {
	pages map[string]*template.Template
}

// NewTemplateRenderer parses every embedded page once at startup.
func NewTemplateRenderer() (*TemplateRenderer, error) {
	files, err := fs.Glob(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("list templates: %w", err)
	}

	pages := make(map[string]*template.Template, len(files))
	for _, file := range files {
		if file == layoutTemplate {
			continue
		}
		tmpl, err := template.ParseFS(templateFS, layoutTemplate, file)
		if err != nil {
			return nil, fmt.Errorf("parse template %s: %w", file, err)
		}
		pages[path.Base(file)] = tmpl
	}
	return &TemplateRenderer{pages: pages}, nil
}

// Render implements echo.Renderer.
func (r *TemplateRenderer) Render(w io.Writer, name string, data interface{}, _ echo.Context) error {
	tmpl, ok := r.pages[name]
	if !ok {
		return fmt.Errorf("template %s not found", name)
	}
	return tmpl.ExecuteTemplate(w, "layout", data)
}

// render adds the caller and pending flash messages to data and writes the page.
func render(c echo.Context, status int, name string, data echo.Map) error {
	if data == nil {
		data = echo.Map{}
	}
	identity, _ := middleware.IdentityFrom(c)
	data["Identity"] = identity
	data["Flashes"] = PopFlashes(c)
	return c.Render(status, name, data)
}
