// Package templates holds the console's html/template pages, embedded into
// the binary.
package templates

import (
	"embed"
	"html/template"

	"catalogadmin.dev/app/pkg/view"
)

//go:embed pages/*.html
var files embed.FS

var funcs = template.FuncMap{
	"enabledLabel": view.EnabledLabel,
}

// Load parses every page. Page names are the file names ("login.html").
func Load() (*template.Template, error) {
	return template.New("").Funcs(funcs).ParseFS(files, "pages/*.html")
}
