package web

import (
	"embed"
	"html/template"
)

//go:embed templates/*.html
var files embed.FS

// Templates 解析全部内嵌页面模板
func Templates() *template.Template {
	return template.Must(template.ParseFS(files, "templates/*.html"))
}
