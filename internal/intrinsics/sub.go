// Where: resolver/internal/intrinsics/sub.go
// What: Fn::Sub placeholder expansion.
// Why: Substitute ${Name} from the variables map, then pseudo-parameters, else leave literal.
package intrinsics

import (
	"regexp"
	"strings"

	"github.com/poruru/edge-serverless-box/resolver/internal/document"
	"github.com/poruru/edge-serverless-box/resolver/internal/symbols"
)

var subPattern = regexp.MustCompile(`\$\{(!?[A-Za-z0-9_:.]+)\}`)

func (r *Resolver) evalSub(arg any, depth int) (any, error) {
	switch typed := arg.(type) {
	case string:
		return r.expandSub(typed, nil), nil
	case []any:
		if len(typed) != 2 {
			return nil, structureError(opSub, "expects [template, variables]")
		}
		rawTemplate, err := r.resolve(typed[0], depth+1)
		if err != nil {
			return nil, err
		}
		text, ok := rawTemplate.(string)
		if !ok {
			return nil, typeError(opSub, "template", "a string", rawTemplate)
		}
		rawVars, err := r.resolve(typed[1], depth+1)
		if err != nil {
			return nil, err
		}
		vars := document.AsMap(rawVars)
		if vars == nil {
			return nil, typeError(opSub, "variables", "a mapping", rawVars)
		}
		for name, value := range vars {
			if !document.IsScalar(value) {
				return nil, typeError(opSub, "variables."+name, "a scalar", value)
			}
		}
		return r.expandSub(text, vars), nil
	default:
		return nil, typeError(opSub, "argument", "a string or [template, variables]", arg)
	}
}

// expandSub scans for ${Name} placeholders. ${!Name} is the verbatim escape
// and renders as ${Name} without substitution.
func (r *Resolver) expandSub(text string, vars map[string]any) string {
	return subPattern.ReplaceAllStringFunc(text, func(match string) string {
		name := match[2 : len(match)-1]
		if strings.HasPrefix(name, "!") {
			return "${" + name[1:] + "}"
		}
		if vars != nil {
			if value, ok := vars[name]; ok {
				return document.AsString(value)
			}
		}
		if value, ok := r.symbols.PseudoParameter(name); ok {
			if symbols.IsNoValue(value) {
				return ""
			}
			return document.AsString(value)
		}
		return match
	})
}
