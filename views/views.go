// Package views renders the embedded page templates behind fiber's Views
// interface.
package views

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"strings"

	"github.com/venomvision/venomvision-web/content"
	"github.com/venomvision/venomvision-web/danger"
	"github.com/venomvision/venomvision-web/forms"
	"github.com/venomvision/venomvision-web/i18n"
)

//go:embed templates/*.html
var templateFS embed.FS

type Engine struct {
	tmpl *template.Template
}

func NewEngine() *Engine {
	return &Engine{}
}

func funcMap() template.FuncMap {
	return template.FuncMap{
		"badge":        danger.Badge,
		"emergency":    danger.IsEmergency,
		"upper":        strings.ToUpper,
		"localeName":   i18n.DisplayName,
		"statusLabel":  content.HandlerStatusLabel,
		"sectionTitle": forms.AdminSectionTitle,
	}
}

func (e *Engine) Load() error {
	tmpl, err := template.New("").Funcs(funcMap()).ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return err
	}
	e.tmpl = tmpl
	return nil
}

func (e *Engine) Render(w io.Writer, name string, data interface{}, layouts ...string) error {
	if e.tmpl == nil {
		if err := e.Load(); err != nil {
			return err
		}
	}
	tmpl := e.tmpl.Lookup(name + ".html")
	if tmpl == nil {
		return fmt.Errorf("view %q not found", name)
	}
	return tmpl.Execute(w, data)
}
