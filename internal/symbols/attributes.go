// Where: resolver/internal/symbols/attributes.go
// What: Allowed Fn::GetAtt attributes per resource type.
// Why: Reject attribute lookups the declared resource type cannot return.
package symbols

import "errors"

// ErrAttributeNotAllowed marks a Fn::GetAtt lookup whose attribute is not
// legal for the resource's declared type.
var ErrAttributeNotAllowed = errors.New("attribute not allowed")

func attrs(names ...string) map[string]struct{} {
	out := make(map[string]struct{}, len(names))
	for _, name := range names {
		out[name] = struct{}{}
	}
	return out
}

// allowedAttributes is a hand-maintained table of return values for the
// resource types this toolchain works with. Types missing from the table are
// not validated; their lookups degrade to placeholders.
var allowedAttributes = map[string]map[string]struct{}{
	"AWS::Serverless::Function": attrs("Arn"),
	"AWS::Lambda::Function":     attrs("Arn"),
	"AWS::Lambda::LayerVersion": attrs("LayerVersionArn"),
	"AWS::S3::Bucket": attrs(
		"Arn", "DomainName", "DualStackDomainName", "RegionalDomainName", "WebsiteURL",
	),
	"AWS::DynamoDB::Table":       attrs("Arn", "StreamArn"),
	"AWS::Serverless::SimpleTable": attrs("Arn", "StreamArn"),
	"AWS::IAM::Role":             attrs("Arn", "RoleId"),
	"AWS::IAM::User":             attrs("Arn"),
	"AWS::SQS::Queue":            attrs("Arn", "QueueName", "QueueUrl"),
	"AWS::SNS::Topic":            attrs("TopicName"),
	"AWS::ApiGateway::RestApi":   attrs("RootResourceId"),
	"AWS::Serverless::Api":       attrs("RootResourceId"),
	"AWS::Events::Rule":          attrs("Arn"),
	"AWS::Logs::LogGroup":        attrs("Arn"),
	"AWS::KMS::Key":              attrs("Arn", "KeyId"),
	"AWS::EC2::VPC":              attrs("CidrBlock", "DefaultSecurityGroup", "VpcId"),
	"AWS::EC2::Subnet":           attrs("AvailabilityZone", "CidrBlock", "SubnetId", "VpcId"),
	"AWS::EC2::SecurityGroup":    attrs("GroupId", "VpcId"),
	"AWS::CloudFormation::Stack": attrs("Outputs"),
	"AWS::StepFunctions::StateMachine": attrs("Name", "StateMachineRevisionId"),
}
