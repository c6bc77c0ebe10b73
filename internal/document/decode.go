// Where: resolver/internal/document/decode.go
// What: YAML decoding for deployment templates.
// Why: Normalize tagged YAML nodes into generic Go values with long-form intrinsics.
package document

import (
	"fmt"
	"strconv"

	"gopkg.in/yaml.v3"
)

// DecodeYAML parses template content into a generic document. Short-form
// intrinsic tags (!Ref, !Sub, !Join, ...) are rewritten to their long-form
// single-key mapping equivalents so the resolver only sees one syntax.
func DecodeYAML(content []byte) (map[string]any, error) {
	var node yaml.Node
	if err := yaml.Unmarshal(content, &node); err != nil {
		return nil, err
	}
	if len(node.Content) == 0 {
		return nil, fmt.Errorf("empty yaml document")
	}
	decoded := decodeNode(node.Content[0])
	data, ok := decoded.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("unexpected yaml root")
	}
	return data, nil
}

// sequenceTags maps short-form tags that take list arguments.
var sequenceTags = map[string]string{
	"!Join":      "Fn::Join",
	"!Sub":       "Fn::Sub",
	"!GetAtt":    "Fn::GetAtt",
	"!If":        "Fn::If",
	"!Equals":    "Fn::Equals",
	"!And":       "Fn::And",
	"!Or":        "Fn::Or",
	"!Not":       "Fn::Not",
	"!Select":    "Fn::Select",
	"!Split":     "Fn::Split",
	"!FindInMap": "Fn::FindInMap",
}

// scalarTags maps short-form tags that take a single scalar argument.
var scalarTags = map[string]string{
	"!Ref":         "Ref",
	"!Sub":         "Fn::Sub",
	"!GetAtt":      "Fn::GetAtt",
	"!GetAZs":      "Fn::GetAZs",
	"!Base64":      "Fn::Base64",
	"!ImportValue": "Fn::ImportValue",
	"!Condition":   "Condition",
}

func decodeNode(node *yaml.Node) any {
	if node == nil {
		return nil
	}
	switch node.Kind {
	case yaml.DocumentNode:
		if len(node.Content) == 0 {
			return nil
		}
		return decodeNode(node.Content[0])
	case yaml.MappingNode:
		m := map[string]any{}
		for i := 0; i+1 < len(node.Content); i += 2 {
			key := AsString(decodeNode(node.Content[i]))
			if key == "" {
				continue
			}
			m[key] = decodeNode(node.Content[i+1])
		}
		// Handle tags on mappings (e.g. !Sub { Key: Val })
		switch node.Tag {
		case "!Sub":
			return map[string]any{"Fn::Sub": m}
		case "!Transform":
			return map[string]any{"Fn::Transform": m}
		}
		return m
	case yaml.SequenceNode:
		out := make([]any, 0, len(node.Content))
		for _, item := range node.Content {
			out = append(out, decodeNode(item))
		}
		if name, ok := sequenceTags[node.Tag]; ok {
			return map[string]any{name: out}
		}
		return out
	case yaml.ScalarNode:
		return decodeScalar(node)
	default:
		return nil
	}
}

func decodeScalar(node *yaml.Node) any {
	if node == nil {
		return nil
	}
	switch node.Tag {
	case "!!int":
		if value, err := strconv.Atoi(node.Value); err == nil {
			return value
		}
	case "!!float":
		if value, err := strconv.ParseFloat(node.Value, 64); err == nil {
			return value
		}
	case "!!bool":
		if value, err := strconv.ParseBool(node.Value); err == nil {
			return value
		}
	case "!!null":
		return nil
	}
	if name, ok := scalarTags[node.Tag]; ok {
		return map[string]any{name: node.Value}
	}
	return node.Value
}
