// Where: resolver/internal/template/load.go
// What: Template loading entry points.
// Why: One place to go from raw YAML/JSON bytes to a section model.
package template

import (
	"fmt"
	"os"

	"github.com/poruru/edge-serverless-box/resolver/internal/document"
)

// Load decodes template content into the section model. JSON templates work
// too: JSON is a YAML subset and carries no short-form tags.
func Load(content []byte) (*Template, error) {
	doc, err := document.DecodeYAML(content)
	if err != nil {
		return nil, fmt.Errorf("decode template: %w", err)
	}
	return FromDocument(doc), nil
}

// LoadFile reads and decodes a template file.
func LoadFile(path string) (*Template, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	tmpl, err := Load(content)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return tmpl, nil
}
