// Package web embeds the page templates and the static assets served
// under /static/.
package web

import (
	"embed"
	"html/template"
	"io/fs"
)

//go:embed templates/*.html
var TemplatesFS embed.FS

//go:embed static/*
var StaticFS embed.FS

// ParseTemplates parses every embedded template with funcs available.
func ParseTemplates(funcs template.FuncMap) (*template.Template, error) {
	return template.New("").Funcs(funcs).ParseFS(TemplatesFS, "templates/*.html")
}

// Static returns the static assets rooted at the static directory.
func Static() (fs.FS, error) {
	return fs.Sub(StaticFS, "static")
}
