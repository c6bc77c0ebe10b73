// Where: resolver/internal/symbols/azs.go
// What: Static region tables: availability zones, partition, URL suffix.
// Why: Serve Fn::GetAZs and pseudo-parameters without any network call.
package symbols

import "strings"

func zones(region string, suffixes ...string) []string {
	out := make([]string, len(suffixes))
	for i, suffix := range suffixes {
		out[i] = region + suffix
	}
	return out
}

// availabilityZones is hand-maintained; regions not listed here make
// Fn::GetAZs fail rather than return an empty list.
var availabilityZones = map[string][]string{
	"us-east-1":      zones("us-east-1", "a", "b", "c", "d", "e", "f"),
	"us-east-2":      zones("us-east-2", "a", "b", "c"),
	"us-west-1":      zones("us-west-1", "a", "b"),
	"us-west-2":      zones("us-west-2", "a", "b", "c", "d"),
	"ca-central-1":   zones("ca-central-1", "a", "b", "d"),
	"eu-west-1":      zones("eu-west-1", "a", "b", "c"),
	"eu-west-2":      zones("eu-west-2", "a", "b", "c"),
	"eu-west-3":      zones("eu-west-3", "a", "b", "c"),
	"eu-central-1":   zones("eu-central-1", "a", "b", "c"),
	"eu-north-1":     zones("eu-north-1", "a", "b", "c"),
	"eu-south-1":     zones("eu-south-1", "a", "b", "c"),
	"ap-northeast-1": zones("ap-northeast-1", "a", "c", "d"),
	"ap-northeast-2": zones("ap-northeast-2", "a", "b", "c", "d"),
	"ap-northeast-3": zones("ap-northeast-3", "a", "b", "c"),
	"ap-southeast-1": zones("ap-southeast-1", "a", "b", "c"),
	"ap-southeast-2": zones("ap-southeast-2", "a", "b", "c"),
	"ap-south-1":     zones("ap-south-1", "a", "b", "c"),
	"sa-east-1":      zones("sa-east-1", "a", "b", "c"),
	"af-south-1":     zones("af-south-1", "a", "b", "c"),
	"me-south-1":     zones("me-south-1", "a", "b", "c"),
	"cn-north-1":     zones("cn-north-1", "a", "b", "d"),
	"cn-northwest-1": zones("cn-northwest-1", "a", "b", "c"),
	"us-gov-west-1":  zones("us-gov-west-1", "a", "b", "c"),
	"us-gov-east-1":  zones("us-gov-east-1", "a", "b", "c"),
}

// PartitionForRegion maps a region code to its AWS partition.
func PartitionForRegion(region string) string {
	switch {
	case strings.HasPrefix(region, "cn-"):
		return "aws-cn"
	case strings.HasPrefix(region, "us-gov-"):
		return "aws-us-gov"
	default:
		return "aws"
	}
}

// URLSuffixForRegion maps a region code to the AWS::URLSuffix value.
func URLSuffixForRegion(region string) string {
	if strings.HasPrefix(region, "cn-") {
		return "amazonaws.com.cn"
	}
	return "amazonaws.com"
}
