// Where: resolver/internal/intrinsics/template_resolve.go
// What: Whole-template resolution over the Resources and Outputs sections.
// Why: Bulk export needs best-effort degradation instead of all-or-nothing.
package intrinsics

import (
	"sort"

	"github.com/poruru/edge-serverless-box/resolver/internal/document"
)

// ResolveTemplate resolves every resource body. Resources gated by a false
// condition are omitted. With ignoreErrors set, a resource whose expressions
// fail keeps its original unresolved body and a warning is recorded; without
// it, the first failure is wrapped with the offending logical ID and type.
func (r *Resolver) ResolveTemplate(ignoreErrors bool) (map[string]any, error) {
	return r.resolveSection(r.resources, ignoreErrors)
}

// ResolveOutputs resolves the Outputs section under the same policy.
func (r *Resolver) ResolveOutputs(ignoreErrors bool) (map[string]any, error) {
	return r.resolveSection(r.outputs, ignoreErrors)
}

func (r *Resolver) resolveSection(section map[string]any, ignoreErrors bool) (map[string]any, error) {
	out := make(map[string]any, len(section))
	for _, logicalID := range sortedKeys(section) {
		raw := section[logicalID]
		body := document.AsMap(raw)
		if body == nil {
			err := typeError("", "body of "+logicalID, "a mapping", raw)
			if ignoreErrors {
				r.addWarningf("%s left unresolved: %v", logicalID, err)
				out[logicalID] = document.DeepCopy(raw)
				continue
			}
			return nil, &ResourceError{LogicalID: logicalID, Err: err}
		}
		resourceType := document.AsString(body["Type"])

		if conditionName := document.AsString(body["Condition"]); conditionName != "" {
			keep, err := r.conditionByName(conditionName, 0)
			if err != nil {
				if ignoreErrors && isResolutionError(err) {
					r.addWarningf("%s left unresolved: %v", logicalID, err)
					out[logicalID] = document.DeepCopy(body)
					continue
				}
				return nil, &ResourceError{LogicalID: logicalID, ResourceType: resourceType, Err: err}
			}
			if !keep {
				continue
			}
		}

		resolved, err := r.resolve(body, 0)
		if err != nil {
			if ignoreErrors && isResolutionError(err) {
				r.addWarningf("%s left unresolved: %v", logicalID, err)
				out[logicalID] = document.DeepCopy(body)
				continue
			}
			return nil, &ResourceError{LogicalID: logicalID, ResourceType: resourceType, Err: err}
		}
		out[logicalID] = resolved
	}
	return out, nil
}

// ResolveConditions evaluates every declared condition by name.
func (r *Resolver) ResolveConditions() (map[string]bool, error) {
	out := make(map[string]bool, len(r.conditions))
	for _, name := range sortedKeys(r.conditions) {
		result, err := r.conditionByName(name, 0)
		if err != nil {
			return nil, err
		}
		out[name] = result
	}
	return out, nil
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
