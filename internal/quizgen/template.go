package quizgen

import (
	"fmt"
	"strings"
	"text/template"

	"github.com/samber/lo"

	"github.com/abhisek/roadsign/internal/errs"
)

// Template is a system prompt with a fixed set of named fields.
// Every field listed in Required must be supplied to Render; the text
// refers to them as {{.name}}.
type Template struct {
	Name     string
	Purpose  string
	Required []string

	tmpl *template.Template
}

// NewTemplate parses text and panics if it is not a valid template.
// It is meant for package-level prompt definitions.
func NewTemplate(name, purpose, text string, required ...string) *Template {
	return &Template{
		Name:     name,
		Purpose:  purpose,
		Required: required,
		tmpl:     template.Must(template.New(name).Option("missingkey=error").Parse(text)),
	}
}

// Render fills the template. A required field absent from fields fails
// with errs.ErrInvalidArgument before anything is rendered. Extra fields
// are ignored.
func (t *Template) Render(fields map[string]string) (string, error) {
	missing := lo.Filter(t.Required, func(k string, _ int) bool {
		_, ok := fields[k]
		return !ok
	})
	if len(missing) > 0 {
		return "", fmt.Errorf("template %q: missing fields %s: %w",
			t.Name, strings.Join(missing, ", "), errs.ErrInvalidArgument)
	}

	var b strings.Builder
	if err := t.tmpl.Execute(&b, fields); err != nil {
		return "", fmt.Errorf("render template %q: %v: %w", t.Name, err, errs.ErrInvalidArgument)
	}
	return b.String(), nil
}
