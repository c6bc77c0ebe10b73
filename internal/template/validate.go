// Where: resolver/internal/template/validate.go
// What: Schema validation for template section skeletons.
// Why: Catch malformed templates before the resolver walks them.
package template

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/poruru/edge-serverless-box/resolver/internal/document"
	"github.com/santhosh-tekuri/jsonschema/v5"
)

//go:embed schema/template.schema.json
var templateSchema string

var (
	schemaOnce     sync.Once
	schemaErr      error
	compiledSchema *jsonschema.Schema
)

// Validate checks template content against the embedded section-skeleton
// schema. It only validates the outer shape (sections, resource Type
// presence); per-operator argument contracts belong to the resolver.
func Validate(content []byte) error {
	sch, err := loadSchema()
	if err != nil {
		return err
	}

	// Rewrite short-form intrinsic tags first; YAMLToJSON rejects them.
	decoded, err := document.DecodeYAML(content)
	if err != nil {
		return fmt.Errorf("decode template: %w", err)
	}
	jsonData, err := json.Marshal(decoded)
	if err != nil {
		return fmt.Errorf("marshal template: %w", err)
	}

	var doc any
	if err := json.Unmarshal(jsonData, &doc); err != nil {
		return fmt.Errorf("unmarshal json: %w", err)
	}

	return sch.Validate(doc)
}

func loadSchema() (*jsonschema.Schema, error) {
	schemaOnce.Do(func() {
		compiler := jsonschema.NewCompiler()
		if err := compiler.AddResource("template.schema.json", strings.NewReader(templateSchema)); err != nil {
			schemaErr = err
			return
		}
		compiledSchema, schemaErr = compiler.Compile("template.schema.json")
	})
	return compiledSchema, schemaErr
}
