// Where: resolver/internal/intrinsics/operators.go
// What: The closed operator-name set and call classification.
// Why: A one-key mapping is only a call when its key names a known operator.
package intrinsics

// Operator names. The set is closed: the dispatch table in resolver.go covers
// every constant here, so adding an operator is a two-line change.
const (
	opRef         = "Ref"
	opCondition   = "Condition"
	opJoin        = "Fn::Join"
	opSplit       = "Fn::Split"
	opSub         = "Fn::Sub"
	opSelect      = "Fn::Select"
	opBase64      = "Fn::Base64"
	opFindInMap   = "Fn::FindInMap"
	opGetAZs      = "Fn::GetAZs"
	opTransform   = "Fn::Transform"
	opGetAtt      = "Fn::GetAtt"
	opImportValue = "Fn::ImportValue"
	opIf          = "Fn::If"
	opAnd         = "Fn::And"
	opOr          = "Fn::Or"
	opNot         = "Fn::Not"
	opEquals      = "Fn::Equals"
)

var operatorNames = map[string]struct{}{
	opRef:         {},
	opCondition:   {},
	opJoin:        {},
	opSplit:       {},
	opSub:         {},
	opSelect:      {},
	opBase64:      {},
	opFindInMap:   {},
	opGetAZs:      {},
	opTransform:   {},
	opGetAtt:      {},
	opImportValue: {},
	opIf:          {},
	opAnd:         {},
	opOr:          {},
	opNot:         {},
	opEquals:      {},
}

// classify inspects a mapping for the single-key-call convention. Mappings
// with more than one key, or whose single key is not a known operator, are
// plain data and classify as no call.
func classify(m map[string]any) (op string, arg any, ok bool) {
	if len(m) != 1 {
		return "", nil, false
	}
	for key, value := range m {
		if _, known := operatorNames[key]; known {
			return key, value, true
		}
	}
	return "", nil, false
}
