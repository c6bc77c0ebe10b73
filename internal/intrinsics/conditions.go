// Where: resolver/internal/intrinsics/conditions.go
// What: Boolean and conditional intrinsics.
// Why: Short-circuiting condition logic with per-pass memoization and cycle detection.
package intrinsics

import (
	"github.com/poruru/edge-serverless-box/resolver/internal/document"
)

// conditionByName evaluates a declared condition, memoizing the result for
// the rest of the pass. A condition referring to itself, directly or through
// other conditions, is a structure error rather than a hang.
func (r *Resolver) conditionByName(name string, depth int) (bool, error) {
	if result, ok := r.conditionCache[name]; ok {
		return result, nil
	}
	raw, ok := r.conditions[name]
	if !ok {
		return false, structureError(opCondition, "condition %q is not declared", name)
	}
	if r.conditionStack[name] {
		return false, structureError(opCondition, "circular dependency in condition %q", name)
	}
	r.conditionStack[name] = true
	defer delete(r.conditionStack, name)

	result, err := r.evalBoolean(raw, depth)
	if err != nil {
		return false, err
	}
	r.conditionCache[name] = result
	return result, nil
}

// evalBoolean evaluates an expression that must produce a boolean: a literal,
// a {"Condition": name} reference, one of the boolean operators, or any other
// intrinsic whose result is boolean-shaped.
func (r *Resolver) evalBoolean(value any, depth int) (bool, error) {
	if depth > maxResolveDepth {
		return false, structureError("", "maximum resolution depth %d exceeded", maxResolveDepth)
	}
	switch typed := value.(type) {
	case bool:
		return typed, nil
	case string:
		if parsed, ok := looseBool(typed); ok {
			return parsed, nil
		}
		return false, typeError("", "condition", "a boolean", typed)
	case map[string]any:
		op, arg, ok := classify(typed)
		if !ok {
			return false, typeError("", "condition", "a boolean expression", typed)
		}
		switch op {
		case opCondition:
			return r.namedConditionArg(arg, depth)
		case opEquals:
			return r.evalEquals(arg, depth)
		case opNot:
			return r.evalNot(arg, depth)
		case opAnd:
			return r.evalAnd(arg, depth)
		case opOr:
			return r.evalOr(arg, depth)
		default:
			resolved, err := r.ops[op](arg, depth+1)
			if err != nil {
				return false, err
			}
			return r.evalBoolean(resolved, depth+1)
		}
	default:
		return false, typeError("", "condition", "a boolean", value)
	}
}

func (r *Resolver) namedConditionArg(arg any, depth int) (bool, error) {
	resolved, err := r.resolve(arg, depth+1)
	if err != nil {
		return false, err
	}
	name, ok := resolved.(string)
	if !ok {
		return false, typeError(opCondition, "condition name", "a string", resolved)
	}
	return r.conditionByName(name, depth)
}

func (r *Resolver) evalEquals(arg any, depth int) (bool, error) {
	args, ok := arg.([]any)
	if !ok || len(args) != 2 {
		return false, structureError(opEquals, "expects [first, second]")
	}
	first, err := r.resolve(args[0], depth+1)
	if err != nil {
		return false, err
	}
	second, err := r.resolve(args[1], depth+1)
	if err != nil {
		return false, err
	}
	return document.Equal(first, second), nil
}

func (r *Resolver) evalNot(arg any, depth int) (bool, error) {
	args, ok := arg.([]any)
	if !ok || len(args) != 1 {
		return false, structureError(opNot, "expects [condition]")
	}
	result, err := r.evalBoolean(args[0], depth+1)
	if err != nil {
		return false, err
	}
	return !result, nil
}

// evalAnd evaluates left-to-right and stops at the first false operand;
// later operands are never touched.
func (r *Resolver) evalAnd(arg any, depth int) (bool, error) {
	args, err := booleanOperands(opAnd, arg)
	if err != nil {
		return false, err
	}
	for _, item := range args {
		result, err := r.evalBoolean(item, depth+1)
		if err != nil {
			return false, err
		}
		if !result {
			return false, nil
		}
	}
	return true, nil
}

// evalOr evaluates left-to-right and stops at the first true operand.
func (r *Resolver) evalOr(arg any, depth int) (bool, error) {
	args, err := booleanOperands(opOr, arg)
	if err != nil {
		return false, err
	}
	for _, item := range args {
		result, err := r.evalBoolean(item, depth+1)
		if err != nil {
			return false, err
		}
		if result {
			return true, nil
		}
	}
	return false, nil
}

func booleanOperands(op string, arg any) ([]any, error) {
	args, ok := arg.([]any)
	if !ok || len(args) < 2 || len(args) > 10 {
		return nil, structureError(op, "expects 2 to 10 conditions")
	}
	return args, nil
}

// evalIf resolves the condition first and then only the chosen branch; the
// dead branch is never evaluated, so it may contain otherwise-invalid
// expressions.
func (r *Resolver) evalIf(arg any, depth int) (any, error) {
	args, ok := arg.([]any)
	if !ok || len(args) != 3 {
		return nil, structureError(opIf, "expects [condition name, value if true, value if false]")
	}
	name, ok := args[0].(string)
	if !ok {
		return nil, typeError(opIf, "condition name", "a string", args[0])
	}
	result, err := r.conditionByName(name, depth)
	if err != nil {
		return nil, err
	}
	if result {
		return r.resolve(args[1], depth+1)
	}
	return r.resolve(args[2], depth+1)
}

// Value-position wrappers so the boolean family participates in the main
// dispatch table.

func (r *Resolver) evalEqualsOp(arg any, depth int) (any, error) {
	return r.evalEquals(arg, depth)
}

func (r *Resolver) evalNotOp(arg any, depth int) (any, error) {
	return r.evalNot(arg, depth)
}

func (r *Resolver) evalAndOp(arg any, depth int) (any, error) {
	return r.evalAnd(arg, depth)
}

func (r *Resolver) evalOrOp(arg any, depth int) (any, error) {
	return r.evalOr(arg, depth)
}

func (r *Resolver) evalConditionOp(arg any, depth int) (any, error) {
	return r.namedConditionArg(arg, depth)
}

func looseBool(value string) (bool, bool) {
	switch value {
	case "true", "True", "1":
		return true, true
	case "false", "False", "0":
		return false, true
	}
	return false, false
}
