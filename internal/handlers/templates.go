package handlers

import (
	"embed"
	"fmt"
	"html/template"
	"net/http"

	"go.uber.org/zap"
)

//go:embed templates/*.html
var templateFS embed.FS

// parsePage parses the named files from the embedded templates directory.
// Every page defines a "layout" template as its entry point.
func parsePage(files ...string) (*template.Template, error) {
	paths := make([]string, len(files))
	for i, f := range files {
		paths[i] = "templates/" + f
	}
	tmpl, err := template.ParseFS(templateFS, paths...)
	if err != nil {
		return nil, fmt.Errorf("failed to parse template %v: %w", files, err)
	}
	return tmpl, nil
}

// parseAppPage parses a page that sits inside the header layout
func parseAppPage(file string) (*template.Template, error) {
	return parsePage("layout.html", file)
}

// Header is embedded by every page rendered inside layout.html
type Header struct {
	Title     string
	CartCount int
}

func render(w http.ResponseWriter, logger *zap.Logger, tmpl *template.Template, data any) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := tmpl.ExecuteTemplate(w, "layout", data); err != nil {
		logger.Error("Error rendering template", zap.Error(err))
		http.Error(w, "Internal server error", http.StatusInternalServerError)
	}
}
