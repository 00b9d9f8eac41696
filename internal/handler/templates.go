package handler

import (
	"embed"
	"fmt"
	"html/template"
)

//go:embed templates/*.html
var templateFS embed.FS

// Имена шаблонов страниц
const (
	TemplateIndex    = "polls/index.html"
	TemplateDetail   = "polls/detail.html"
	TemplateResults  = "polls/results.html"
	TemplateNotFound = "polls/404.html"
)

// LoadTemplates разбирает встроенные HTML-шаблоны страниц опросов
func LoadTemplates() (*template.Template, error) {
	tmpl, err := template.New("polls").ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}
	return tmpl, nil
}
