// Where: resolver/internal/document/values.go
// What: Value helpers for decoded template documents.
// Why: Keep resolution code concise and consistent.
package document

import (
	"fmt"
	"math"
	"reflect"
	"strconv"
	"strings"
)

// AsMap returns value as a mapping, or nil when it is not one.
func AsMap(value any) map[string]any {
	if value == nil {
		return nil
	}
	if m, ok := value.(map[string]any); ok {
		return m
	}
	return nil
}

// AsString renders value as a string. Non-scalar values fall back to
// fmt.Sprint, matching how parameter values travel through templates.
func AsString(value any) string {
	if value == nil {
		return ""
	}
	if s, ok := value.(string); ok {
		return s
	}
	return fmt.Sprint(value)
}

// AsIntPointer converts integer-shaped values (int, int64, integral float64,
// digit strings) into an int. Booleans are deliberately not integers.
func AsIntPointer(value any) (*int, bool) {
	switch typed := value.(type) {
	case int:
		return &typed, true
	case int64:
		intVal := int(typed)
		return &intVal, true
	case float64:
		if typed != math.Trunc(typed) {
			return nil, false
		}
		intVal := int(typed)
		return &intVal, true
	case string:
		if parsed, err := strconv.Atoi(strings.TrimSpace(typed)); err == nil {
			return &parsed, true
		}
	}
	return nil, false
}

// IsScalar reports whether value is a terminal scalar node.
func IsScalar(value any) bool {
	switch value.(type) {
	case string, bool, int, int64, float64:
		return true
	}
	return false
}

// Canonical renders a scalar in its canonical string form so that values
// which differ only in YAML typing (1 vs "1", true vs "true") compare equal.
func Canonical(value any) string {
	switch typed := value.(type) {
	case string:
		return typed
	case bool:
		return strconv.FormatBool(typed)
	case int:
		return strconv.Itoa(typed)
	case int64:
		return strconv.FormatInt(typed, 10)
	case float64:
		return strconv.FormatFloat(typed, 'f', -1, 64)
	}
	return fmt.Sprint(value)
}

// Equal compares two resolved nodes structurally. Scalars compare by
// canonical form; sequences and mappings compare element-wise.
func Equal(a, b any) bool {
	if IsScalar(a) && IsScalar(b) {
		return Canonical(a) == Canonical(b)
	}
	if as, ok := a.([]any); ok {
		bs, ok := b.([]any)
		if !ok || len(as) != len(bs) {
			return false
		}
		for i := range as {
			if !Equal(as[i], bs[i]) {
				return false
			}
		}
		return true
	}
	if am := AsMap(a); am != nil {
		bm := AsMap(b)
		if bm == nil || len(am) != len(bm) {
			return false
		}
		for key, av := range am {
			bv, ok := bm[key]
			if !ok || !Equal(av, bv) {
				return false
			}
		}
		return true
	}
	return reflect.DeepEqual(a, b)
}

// DeepCopy clones a document tree so callers can keep the original while a
// resolved variant is produced.
func DeepCopy(value any) any {
	switch typed := value.(type) {
	case map[string]any:
		out := make(map[string]any, len(typed))
		for key, item := range typed {
			out[key] = DeepCopy(item)
		}
		return out
	case []any:
		out := make([]any, len(typed))
		for i, item := range typed {
			out[i] = DeepCopy(item)
		}
		return out
	default:
		return typed
	}
}
