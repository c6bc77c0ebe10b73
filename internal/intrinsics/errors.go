// Where: resolver/internal/intrinsics/errors.go
// What: Error taxonomy for intrinsic evaluation.
// Why: Make a failure deep inside a nested expression tractable to root-cause.
package intrinsics

import (
	"errors"
	"fmt"
)

// MissingOperandError reports an argument position that required a value and
// got none.
type MissingOperandError struct {
	Op       string
	Position string
}

func (e *MissingOperandError) Error() string {
	if e.Op == "" {
		return fmt.Sprintf("missing value for %s", e.Position)
	}
	return fmt.Sprintf("%s: missing value for %s", e.Op, e.Position)
}

// TypeError reports a resolved value whose type does not match the
// operator's positional contract.
type TypeError struct {
	Op       string
	Position string
	Expected string
	Actual   any
}

func (e *TypeError) Error() string {
	return fmt.Sprintf("%s: %s must be %s, got %T (%v)",
		e.Op, e.Position, e.Expected, e.Actual, e.Actual)
}

// StructureError reports a malformed intrinsic call: wrong argument count,
// unknown macro, missing mapping keys, condition cycles.
type StructureError struct {
	Op      string
	Message string
}

func (e *StructureError) Error() string {
	if e.Op == "" {
		return e.Message
	}
	return e.Op + ": " + e.Message
}

// ResourceError wraps a resolution failure with the logical ID and type of
// the resource it occurred in.
type ResourceError struct {
	LogicalID    string
	ResourceType string
	Err          error
}

func (e *ResourceError) Error() string {
	return fmt.Sprintf("resource %s (%s): %v", e.LogicalID, e.ResourceType, e.Err)
}

func (e *ResourceError) Unwrap() error {
	return e.Err
}

func missingOperand(op, position string) error {
	return &MissingOperandError{Op: op, Position: position}
}

func typeError(op, position, expected string, actual any) error {
	return &TypeError{Op: op, Position: position, Expected: expected, Actual: actual}
}

func structureError(op, format string, args ...any) error {
	return &StructureError{Op: op, Message: fmt.Sprintf(format, args...)}
}

// isResolutionError reports whether err belongs to the evaluator's taxonomy;
// template-level degraded mode only swallows these.
func isResolutionError(err error) bool {
	var missing *MissingOperandError
	var typed *TypeError
	var structural *StructureError
	return errors.As(err, &missing) || errors.As(err, &typed) || errors.As(err, &structural)
}
