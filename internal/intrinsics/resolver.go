// Where: resolver/internal/intrinsics/resolver.go
// What: Recursive evaluator for intrinsic functions.
// Why: Replace intrinsic calls in a document with their computed values.
package intrinsics

import (
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/poruru/edge-serverless-box/resolver/internal/document"
	"github.com/poruru/edge-serverless-box/resolver/internal/symbols"
	"github.com/poruru/edge-serverless-box/resolver/internal/template"
)

const maxResolveDepth = 48

type opFunc func(arg any, depth int) (any, error)

// Resolver evaluates intrinsic functions against one template and one symbol
// source. State (condition memoization, warnings) is scoped to the instance;
// run one resolver per resolution pass and do not share across goroutines.
type Resolver struct {
	symbols    symbols.Source
	mappings   map[string]any
	conditions map[string]any
	resources  map[string]any
	outputs    map[string]any

	conditionCache map[string]bool
	conditionStack map[string]bool

	warnings     []string
	warningsSeen map[string]struct{}

	ops map[string]opFunc
}

// New builds a resolver over a template's sections. A nil source gets a
// default local Static source; a nil template means no mappings, conditions
// or resources are available by name.
func New(src symbols.Source, tmpl *template.Template) *Resolver {
	if src == nil {
		src = symbols.NewStatic(symbols.StaticConfig{})
	}
	r := &Resolver{
		symbols:        src,
		mappings:       map[string]any{},
		conditions:     map[string]any{},
		resources:      map[string]any{},
		outputs:        map[string]any{},
		conditionCache: map[string]bool{},
		conditionStack: map[string]bool{},
		warningsSeen:   map[string]struct{}{},
	}
	if tmpl != nil {
		r.mappings = tmpl.Mappings
		r.conditions = tmpl.Conditions
		r.resources = tmpl.Resources
		r.outputs = tmpl.Outputs
	}
	r.ops = map[string]opFunc{
		opRef:         r.evalRef,
		opCondition:   r.evalConditionOp,
		opJoin:        r.evalJoin,
		opSplit:       r.evalSplit,
		opSub:         r.evalSub,
		opSelect:      r.evalSelect,
		opBase64:      r.evalBase64,
		opFindInMap:   r.evalFindInMap,
		opGetAZs:      r.evalGetAZs,
		opTransform:   r.evalTransform,
		opGetAtt:      r.evalGetAtt,
		opImportValue: r.evalImportValue,
		opIf:          r.evalIf,
		opAnd:         r.evalAndOp,
		opOr:          r.evalOrOp,
		opNot:         r.evalNotOp,
		opEquals:      r.evalEqualsOp,
	}
	return r
}

// ResolveValue resolves a single node. Already-resolved input comes back
// unchanged, so the operation is idempotent.
func (r *Resolver) ResolveValue(value any) (any, error) {
	return r.resolve(value, 0)
}

// Warnings returns the deduplicated warnings collected so far.
func (r *Resolver) Warnings() []string {
	return r.warnings
}

func (r *Resolver) resolve(value any, depth int) (any, error) {
	if depth > maxResolveDepth {
		return nil, structureError("", "maximum resolution depth %d exceeded", maxResolveDepth)
	}
	switch typed := value.(type) {
	case nil:
		return nil, missingOperand("", "value")
	case string, bool, int, int64, float64:
		return typed, nil
	case []any:
		out := make([]any, 0, len(typed))
		for _, item := range typed {
			resolved, err := r.resolve(item, depth+1)
			if err != nil {
				return nil, err
			}
			if symbols.IsNoValue(resolved) {
				continue
			}
			out = append(out, resolved)
		}
		return out, nil
	case map[string]any:
		if op, arg, ok := classify(typed); ok {
			return r.ops[op](arg, depth+1)
		}
		out := make(map[string]any, len(typed))
		for key, item := range typed {
			resolved, err := r.resolve(item, depth+1)
			if err != nil {
				return nil, err
			}
			if symbols.IsNoValue(resolved) {
				continue
			}
			out[key] = resolved
		}
		return out, nil
	default:
		return nil, typeError("", "node", "a scalar, sequence, or mapping", typed)
	}
}

func (r *Resolver) evalRef(arg any, depth int) (any, error) {
	if arg == nil {
		return nil, missingOperand(opRef, "logical id")
	}
	resolved, err := r.resolve(arg, depth+1)
	if err != nil {
		return nil, err
	}
	name, ok := resolved.(string)
	if !ok {
		return nil, typeError(opRef, "logical id", "a string", resolved)
	}
	value, err := r.symbols.ResolveRef(name)
	if err != nil {
		return nil, structureError(opRef, "%v", err)
	}
	return value, nil
}

func (r *Resolver) evalJoin(arg any, depth int) (any, error) {
	args, ok := arg.([]any)
	if !ok || len(args) != 2 {
		return nil, structureError(opJoin, "expects [delimiter, values]")
	}
	if args[0] == nil {
		return nil, missingOperand(opJoin, "delimiter")
	}
	delimRaw, err := r.resolve(args[0], depth+1)
	if err != nil {
		return nil, err
	}
	delim, ok := delimRaw.(string)
	if !ok {
		return nil, typeError(opJoin, "delimiter", "a string", delimRaw)
	}
	if args[1] == nil {
		return nil, missingOperand(opJoin, "values")
	}
	valuesRaw, err := r.resolve(args[1], depth+1)
	if err != nil {
		return nil, err
	}
	values, ok := valuesRaw.([]any)
	if !ok {
		return nil, typeError(opJoin, "values", "a list", valuesRaw)
	}
	parts := make([]string, 0, len(values))
	for i, item := range values {
		s, ok := item.(string)
		if !ok {
			return nil, typeError(opJoin, fmt.Sprintf("values[%d]", i), "a string", item)
		}
		parts = append(parts, s)
	}
	return strings.Join(parts, delim), nil
}

func (r *Resolver) evalSplit(arg any, depth int) (any, error) {
	args, ok := arg.([]any)
	if !ok || len(args) != 2 {
		return nil, structureError(opSplit, "expects [delimiter, source]")
	}
	delimRaw, err := r.resolve(args[0], depth+1)
	if err != nil {
		return nil, err
	}
	delim, ok := delimRaw.(string)
	if !ok {
		return nil, typeError(opSplit, "delimiter", "a string", delimRaw)
	}
	sourceRaw, err := r.resolve(args[1], depth+1)
	if err != nil {
		return nil, err
	}
	source, ok := sourceRaw.(string)
	if !ok {
		return nil, typeError(opSplit, "source", "a string", sourceRaw)
	}
	parts := strings.Split(source, delim)
	out := make([]any, len(parts))
	for i, part := range parts {
		out[i] = part
	}
	return out, nil
}

func (r *Resolver) evalSelect(arg any, depth int) (any, error) {
	args, ok := arg.([]any)
	if !ok || len(args) != 2 {
		return nil, structureError(opSelect, "expects [index, values]")
	}
	indexRaw, err := r.resolve(args[0], depth+1)
	if err != nil {
		return nil, err
	}
	index, intOK := document.AsIntPointer(indexRaw)
	if _, isBool := indexRaw.(bool); isBool || !intOK {
		return nil, typeError(opSelect, "index", "a non-negative integer", indexRaw)
	}
	valuesRaw, err := r.resolve(args[1], depth+1)
	if err != nil {
		return nil, err
	}
	values, ok := valuesRaw.([]any)
	if !ok {
		return nil, typeError(opSelect, "values", "a list", valuesRaw)
	}
	if *index < 0 || *index >= len(values) {
		return nil, typeError(opSelect, "index",
			fmt.Sprintf("within [0, %d)", len(values)), indexRaw)
	}
	return values[*index], nil
}

func (r *Resolver) evalBase64(arg any, depth int) (any, error) {
	if arg == nil {
		return nil, missingOperand(opBase64, "value")
	}
	resolved, err := r.resolve(arg, depth+1)
	if err != nil {
		return nil, err
	}
	s, ok := resolved.(string)
	if !ok {
		return nil, typeError(opBase64, "value", "a string", resolved)
	}
	return base64.StdEncoding.EncodeToString([]byte(s)), nil
}

func (r *Resolver) evalFindInMap(arg any, depth int) (any, error) {
	args, ok := arg.([]any)
	if !ok || len(args) != 3 {
		return nil, structureError(opFindInMap, "expects [map name, top-level key, second-level key]")
	}
	positions := [3]string{"map name", "top-level key", "second-level key"}
	keys := [3]string{}
	for i, raw := range args {
		if raw == nil {
			return nil, missingOperand(opFindInMap, positions[i])
		}
		resolved, err := r.resolve(raw, depth+1)
		if err != nil {
			return nil, err
		}
		key, ok := resolved.(string)
		if !ok {
			return nil, typeError(opFindInMap, positions[i], "a string", resolved)
		}
		keys[i] = key
	}
	rawMapping, ok := r.mappings[keys[0]]
	if !ok {
		return nil, structureError(opFindInMap, "mapping %q is not declared", keys[0])
	}
	mapping := document.AsMap(rawMapping)
	if mapping == nil {
		return nil, typeError(opFindInMap, "map name", "a two-level mapping", rawMapping)
	}
	rawTop, ok := mapping[keys[1]]
	if !ok {
		return nil, structureError(opFindInMap, "mapping %q has no top-level key %q", keys[0], keys[1])
	}
	top := document.AsMap(rawTop)
	if top == nil {
		return nil, typeError(opFindInMap, "top-level key", "a mapping", rawTop)
	}
	value, ok := top[keys[2]]
	if !ok {
		return nil, structureError(opFindInMap, "mapping %q key %q has no entry %q",
			keys[0], keys[1], keys[2])
	}
	return value, nil
}

func (r *Resolver) evalGetAZs(arg any, depth int) (any, error) {
	if arg == nil {
		return nil, missingOperand(opGetAZs, "region")
	}
	resolved, err := r.resolve(arg, depth+1)
	if err != nil {
		return nil, err
	}
	region, ok := resolved.(string)
	if !ok {
		return nil, typeError(opGetAZs, "region", "a string", resolved)
	}
	if region == "" {
		// Empty region means "current region".
		if value, ok := r.symbols.PseudoParameter("AWS::Region"); ok {
			region = document.AsString(value)
		}
	}
	zones, err := r.symbols.AvailabilityZones(region)
	if err != nil {
		return nil, structureError(opGetAZs, "%v", err)
	}
	out := make([]any, len(zones))
	for i, zone := range zones {
		out[i] = zone
	}
	return out, nil
}

func (r *Resolver) evalTransform(arg any, depth int) (any, error) {
	m := document.AsMap(arg)
	if m == nil {
		return nil, structureError(opTransform, "expects {Name, Parameters}")
	}
	rawName, ok := m["Name"]
	if !ok || rawName == nil {
		return nil, missingOperand(opTransform, "Name")
	}
	resolvedName, err := r.resolve(rawName, depth+1)
	if err != nil {
		return nil, err
	}
	name, ok := resolvedName.(string)
	if !ok {
		return nil, typeError(opTransform, "Name", "a string", resolvedName)
	}
	if name != "AWS::Include" {
		return nil, structureError(opTransform, "unsupported macro %q, only AWS::Include is handled", name)
	}
	rawParams, ok := m["Parameters"]
	if !ok || rawParams == nil {
		return nil, missingOperand(opTransform, "Parameters")
	}
	resolvedParams, err := r.resolve(rawParams, depth+1)
	if err != nil {
		return nil, err
	}
	params := document.AsMap(resolvedParams)
	if params == nil {
		return nil, typeError(opTransform, "Parameters", "a mapping", resolvedParams)
	}
	location, ok := params["Location"]
	if !ok {
		return nil, missingOperand(opTransform, "Parameters.Location")
	}
	// The include itself is fetched by the caller; only the resolved
	// location is handed back here.
	return location, nil
}

func (r *Resolver) evalGetAtt(arg any, depth int) (any, error) {
	var logicalID, attribute string
	switch typed := arg.(type) {
	case string:
		parts := strings.SplitN(typed, ".", 2)
		if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
			return nil, structureError(opGetAtt, "malformed attribute reference %q", typed)
		}
		logicalID, attribute = parts[0], parts[1]
	case []any:
		if len(typed) != 2 {
			return nil, structureError(opGetAtt, "expects [logical id, attribute name]")
		}
		resolvedID, err := r.resolve(typed[0], depth+1)
		if err != nil {
			return nil, err
		}
		id, ok := resolvedID.(string)
		if !ok {
			return nil, typeError(opGetAtt, "logical id", "a string", resolvedID)
		}
		resolvedAttr, err := r.resolve(typed[1], depth+1)
		if err != nil {
			return nil, err
		}
		attr, ok := resolvedAttr.(string)
		if !ok {
			return nil, typeError(opGetAtt, "attribute name", "a string", resolvedAttr)
		}
		logicalID, attribute = id, attr
	default:
		return nil, typeError(opGetAtt, "argument", "a string or [logical id, attribute name]", arg)
	}
	value, err := r.symbols.ResolveAttribute(logicalID, attribute)
	if err != nil {
		return nil, structureError(opGetAtt, "%v", err)
	}
	return value, nil
}

func (r *Resolver) evalImportValue(arg any, depth int) (any, error) {
	if arg == nil {
		return nil, missingOperand(opImportValue, "export name")
	}
	resolved, err := r.resolve(arg, depth+1)
	if err != nil {
		return nil, err
	}
	name, ok := resolved.(string)
	if !ok {
		return nil, typeError(opImportValue, "export name", "a string", resolved)
	}
	// Cross-stack exports are not visible locally; degrade like Ref does.
	return symbols.Placeholder(name), nil
}

func (r *Resolver) addWarning(msg string) {
	if _, seen := r.warningsSeen[msg]; seen {
		return
	}
	r.warnings = append(r.warnings, msg)
	r.warningsSeen[msg] = struct{}{}
}

func (r *Resolver) addWarningf(format string, args ...any) {
	r.addWarning(fmt.Sprintf(format, args...))
}
