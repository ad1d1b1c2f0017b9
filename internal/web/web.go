// Package web holds the server-rendered HTML templates. Every page is rendered
// through the "base" layout, which picks the page body from .Page.
package web

import (
	"embed"
	"html/template"
	"strings"
	"time"

	"github.com/BruksfildServices01/clinic-tracker/internal/access"
	"github.com/BruksfildServices01/clinic-tracker/internal/models"
	"github.com/BruksfildServices01/clinic-tracker/internal/timezone"
)

//go:embed templates/*.tmpl
var files embed.FS

const (
	dateFormat     = "02 Jan 2006"
	dateTimeFormat = "02 Jan 2006 15:04"
)

func Funcs() template.FuncMap {
	return template.FuncMap{
		"can": func(a *access.Actor, action string) bool {
			return a.Can(access.Action(action))
		},
		"hasRole": func(a *access.Actor, role string) bool {
			return a.HasRole(role)
		},
		"date": func(t time.Time) string {
			if t.IsZero() {
				return ""
			}
			return t.Format(dateFormat)
		},
		"datetime": func(t time.Time) string {
			if t.IsZero() {
				return ""
			}
			return t.In(timezone.Clinic()).Format(dateTimeFormat)
		},
		"age": func(dob time.Time) int {
			p := models.Patient{DateOfBirth: dob}
			return p.Age(timezone.Now())
		},
		"fieldError": func(errs map[string]string, name string) string {
			return errs[name]
		},
		"label": func(v string) string {
			v = strings.ReplaceAll(v, "-", " ")
			if v == "" {
				return v
			}
			return strings.ToUpper(v[:1]) + v[1:]
		},
		"timezone": func() string {
			return timezone.Clinic().String()
		},
	}
}

// Parse loads every embedded template.
func Parse() (*template.Template, error) {
	return template.New("").Funcs(Funcs()).ParseFS(files, "templates/*.tmpl")
}

// MustParse panics when an embedded template does not parse.
func MustParse() *template.Template {
	return template.Must(Parse())
}
