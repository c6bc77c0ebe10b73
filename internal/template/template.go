// Where: resolver/internal/template/template.go
// What: Deployment template section model.
// Why: Give the resolver typed access to Resources/Mappings/Parameters/Conditions.
package template

import (
	"github.com/poruru/edge-serverless-box/resolver/internal/document"
)

// Template is the parsed section view of a deployment template. Section
// bodies stay as generic documents; intrinsic calls inside them are only
// interpreted during resolution.
type Template struct {
	AWSTemplateFormatVersion string
	Description              string
	Transform                any
	Parameters               map[string]any
	Mappings                 map[string]any
	Conditions               map[string]any
	Resources                map[string]any
	Outputs                  map[string]any
}

// FromDocument splits a decoded document into template sections. Missing
// sections come back as empty maps so callers never nil-check.
func FromDocument(doc map[string]any) *Template {
	tmpl := &Template{
		AWSTemplateFormatVersion: document.AsString(doc["AWSTemplateFormatVersion"]),
		Description:              document.AsString(doc["Description"]),
		Transform:                doc["Transform"],
		Parameters:               sectionMap(doc, "Parameters"),
		Mappings:                 sectionMap(doc, "Mappings"),
		Conditions:               sectionMap(doc, "Conditions"),
		Resources:                sectionMap(doc, "Resources"),
		Outputs:                  sectionMap(doc, "Outputs"),
	}
	return tmpl
}

func sectionMap(doc map[string]any, name string) map[string]any {
	if m := document.AsMap(doc[name]); m != nil {
		return m
	}
	return map[string]any{}
}

// ParameterDefaults extracts the default value of every declared parameter,
// rendered as strings the way parameter values travel on the wire.
func (t *Template) ParameterDefaults() map[string]string {
	out := map[string]string{}
	for name, raw := range t.Parameters {
		decl := document.AsMap(raw)
		if decl == nil {
			continue
		}
		if value, ok := decl["Default"]; ok && value != nil {
			out[name] = document.AsString(value)
		}
	}
	return out
}

// ResourceTypes maps each logical ID to its declared resource type.
func (t *Template) ResourceTypes() map[string]string {
	out := map[string]string{}
	for logicalID, raw := range t.Resources {
		body := document.AsMap(raw)
		if body == nil {
			continue
		}
		if resourceType := document.AsString(body["Type"]); resourceType != "" {
			out[logicalID] = resourceType
		}
	}
	return out
}
