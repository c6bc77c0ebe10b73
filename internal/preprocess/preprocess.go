// Where: resolver/internal/preprocess/preprocess.go
// What: Optional Go-template pre-rendering of raw template text.
// Why: Some projects template their deployment documents before the intrinsic pass.
package preprocess

import (
	"bytes"
	"fmt"
	"text/template"

	"github.com/Masterminds/sprig/v3"
)

// Render executes the content as a Go text template with the sprig function
// map. Variables are addressed as {{ .Name }}; intrinsic syntax (${...},
// Fn::*) passes through untouched.
func Render(content string, variables map[string]any) (string, error) {
	tmpl, err := template.New("deployment").Funcs(sprig.TxtFuncMap()).Parse(content)
	if err != nil {
		return "", fmt.Errorf("parse template: %w", err)
	}
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, variables); err != nil {
		return "", fmt.Errorf("execute template: %w", err)
	}
	return buf.String(), nil
}
