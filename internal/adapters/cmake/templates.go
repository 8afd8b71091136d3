// Package cmake renders the CMakeDeps and CMakeToolchain descriptor files.
package cmake

import (
	"bytes"
	"embed"
	"strings"
	"text/template"

	"go.trai.ch/recipe/internal/core/domain"
	"go.trai.ch/zerr"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

var templates = template.Must(template.New("cmake").
	Option("missingkey=error").
	Funcs(template.FuncMap{
		// var renders a CMake variable reference built from parts.
		"var": func(parts ...string) string {
			return "${" + strings.Join(parts, "") + "}"
		},
	}).
	ParseFS(templateFS, "templates/*.tmpl"))

func render(name string, data any) ([]byte, error) {
	var buf bytes.Buffer
	if err := templates.ExecuteTemplate(&buf, name, data); err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrGenerationFailed.Error()), "template", name)
	}
	return buf.Bytes(), nil
}
