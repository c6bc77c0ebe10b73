// Where: resolver/internal/symbols/resolver.go
// What: Symbol resolution capability for the intrinsic evaluator.
// Why: Keep externally-known values (logical IDs, pseudo-parameters, AZ data) behind one boundary.
package symbols

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
)

// noValue is the sentinel type behind NoValue.
type noValue struct{}

// NoValue is the explicit "no value" sentinel produced by Ref AWS::NoValue.
// It is distinct from absence: the evaluator prunes entries resolving to it.
var NoValue = noValue{}

// IsNoValue reports whether value is the NoValue sentinel.
func IsNoValue(value any) bool {
	_, ok := value.(noValue)
	return ok
}

// Placeholder renders the unresolved-reference marker for a name.
func Placeholder(name string) string {
	return "${" + name + "}"
}

// Source is the capability interface the evaluator resolves symbols through.
// Implementations own whatever logical-ID maps and environment context the
// caller has; the evaluator never performs I/O itself.
type Source interface {
	// ResolveRef resolves a Ref target: pseudo-parameters first, then
	// parameter values, then logical IDs, degrading to the ${name}
	// placeholder rather than failing.
	ResolveRef(logicalID string) (any, error)
	// ResolveAttribute resolves a Fn::GetAtt lookup, validating the
	// attribute against the resource type's allowed set.
	ResolveAttribute(logicalID, attribute string) (any, error)
	// PseudoParameter resolves one of the fixed AWS::* names.
	PseudoParameter(name string) (any, bool)
	// AvailabilityZones returns the static AZ list for a region code.
	AvailabilityZones(region string) ([]string, error)
}

// StaticConfig carries the caller-supplied context for a Static source.
type StaticConfig struct {
	Region    string
	AccountID string
	StackName string
	// Parameters holds parameter values (template defaults merged with
	// caller overrides), consulted by Ref after pseudo-parameters.
	Parameters map[string]string
	// PhysicalIDs maps logical IDs to their physical references.
	PhysicalIDs map[string]string
	// ResourceTypes maps logical IDs to declared resource types, used to
	// validate Fn::GetAtt attributes.
	ResourceTypes map[string]string
	// Attributes holds caller-supplied attribute bags per logical ID.
	Attributes map[string]map[string]any
}

const (
	defaultRegion    = "us-east-1"
	defaultAccountID = "123456789012"
	defaultStackName = "local-stack"
)

// Static resolves symbols from caller-supplied maps. Pseudo-parameters that
// have to be generated (stack id, notification ARN) are memoized per
// instance so repeated lookups within one pass are stable. Instances are not
// safe for concurrent use; run one per resolution pass.
type Static struct {
	region        string
	accountID     string
	stackName     string
	parameters    map[string]string
	physicalIDs   map[string]string
	resourceTypes map[string]string
	attributes    map[string]map[string]any

	stackID         string
	notificationArn string
}

// NewStatic builds a Static source, filling local defaults for missing
// environment context.
func NewStatic(cfg StaticConfig) *Static {
	if cfg.Region == "" {
		cfg.Region = defaultRegion
	}
	if cfg.AccountID == "" {
		cfg.AccountID = defaultAccountID
	}
	if cfg.StackName == "" {
		cfg.StackName = defaultStackName
	}
	if cfg.Parameters == nil {
		cfg.Parameters = map[string]string{}
	}
	if cfg.PhysicalIDs == nil {
		cfg.PhysicalIDs = map[string]string{}
	}
	if cfg.ResourceTypes == nil {
		cfg.ResourceTypes = map[string]string{}
	}
	if cfg.Attributes == nil {
		cfg.Attributes = map[string]map[string]any{}
	}
	return &Static{
		region:        cfg.Region,
		accountID:     cfg.AccountID,
		stackName:     cfg.StackName,
		parameters:    cfg.Parameters,
		physicalIDs:   cfg.PhysicalIDs,
		resourceTypes: cfg.ResourceTypes,
		attributes:    cfg.Attributes,
	}
}

func (s *Static) ResolveRef(logicalID string) (any, error) {
	if value, ok := s.PseudoParameter(logicalID); ok {
		return value, nil
	}
	if value, ok := s.parameters[logicalID]; ok {
		return value, nil
	}
	if value, ok := s.physicalIDs[logicalID]; ok {
		return value, nil
	}
	return Placeholder(logicalID), nil
}

func (s *Static) ResolveAttribute(logicalID, attribute string) (any, error) {
	if bag, ok := s.attributes[logicalID]; ok {
		if value, ok := bag[attribute]; ok {
			return value, nil
		}
	}
	resourceType := s.resourceTypes[logicalID]
	if resourceType == "" {
		// Nothing declared for this logical ID: degrade like Ref does.
		return Placeholder(logicalID + "." + attribute), nil
	}
	allowed, known := allowedAttributes[resourceType]
	if !known {
		return Placeholder(logicalID + "." + attribute), nil
	}
	if _, ok := allowed[attribute]; !ok {
		return nil, fmt.Errorf("%w: attribute %q is not valid for resource type %s",
			ErrAttributeNotAllowed, attribute, resourceType)
	}
	return Placeholder(logicalID + "." + attribute), nil
}

func (s *Static) PseudoParameter(name string) (any, bool) {
	switch name {
	case "AWS::Region":
		return s.region, true
	case "AWS::AccountId":
		return s.accountID, true
	case "AWS::Partition":
		return PartitionForRegion(s.region), true
	case "AWS::StackName":
		return s.stackName, true
	case "AWS::StackId":
		if s.stackID == "" {
			s.stackID = fmt.Sprintf("arn:%s:cloudformation:%s:%s:stack/%s/%s",
				PartitionForRegion(s.region), s.region, s.accountID, s.stackName, randomHex(12))
		}
		return s.stackID, true
	case "AWS::URLSuffix":
		return URLSuffixForRegion(s.region), true
	case "AWS::NotificationArn":
		if s.notificationArn == "" {
			s.notificationArn = fmt.Sprintf("arn:%s:sns:%s:%s:notify-%s",
				PartitionForRegion(s.region), s.region, s.accountID, randomHex(6))
		}
		return s.notificationArn, true
	case "AWS::NoValue":
		return NoValue, true
	}
	return nil, false
}

func (s *Static) AvailabilityZones(region string) ([]string, error) {
	zones, ok := availabilityZones[region]
	if !ok {
		return nil, fmt.Errorf("no availability zone data for region %q", region)
	}
	out := make([]string, len(zones))
	copy(out, zones)
	return out, nil
}

func randomHex(n int) string {
	buf := make([]byte, n)
	if _, err := rand.Read(buf); err != nil {
		// crypto/rand never fails on supported platforms; keep the value
		// stable rather than propagate an error from a generated id.
		return "0000deadbeef"[:n]
	}
	return hex.EncodeToString(buf)[:n]
}
