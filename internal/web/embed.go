// Package web embeds the HTML templates for the caseworker screens and the
// display helpers they use.
package web

import (
	"embed"
	"html/template"
	"io/fs"
)

//go:embed templates
var templatesFS embed.FS

//go:embed static
var staticFS embed.FS

// Templates parses the embedded template set with the display helpers
// registered. Called once at router setup.
func Templates() (*template.Template, error) {
	return template.New("").Funcs(FuncMap()).ParseFS(templatesFS, "templates/*.html")
}

// Static returns the embedded assets rooted at the static directory, for
// serving under /static.
func Static() (fs.FS, error) {
	return fs.Sub(staticFS, "static")
}
