package web

import (
	"embed"
	"html/template"
	"time"
)

//go:embed templates/*.html
var templatesFS embed.FS

var functions = template.FuncMap{
	"formatDate": func(t time.Time) string {
		if t.IsZero() {
			return ""
		}
		return t.Format("02 Jan 2006, 15:04")
	},
	"author": func(name string) string {
		if name == "" {
			return "anonymous"
		}
		return name
	},
}

// loadTemplates parses every page and partial into one set; pages are
// looked up by their {{define}} name.
func loadTemplates() (*template.Template, error) {
	return template.New("").Funcs(functions).ParseFS(templatesFS, "templates/*.html")
}
