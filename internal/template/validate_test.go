package template

import (
	"testing"
)

func TestValidate(t *testing.T) {
	if err := Validate([]byte(sampleTemplate)); err != nil {
		t.Errorf("valid template rejected: %v", err)
	}
}

func TestValidate_Failures(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{
			name:    "resource without Type",
			content: "Resources:\n  Broken:\n    Properties:\n      X: 1\n",
		},
		{
			name:    "parameter without Type",
			content: "Parameters:\n  P:\n    Default: x\nResources:\n  B:\n    Type: AWS::S3::Bucket\n",
		},
		{
			name:    "output without Value",
			content: "Resources:\n  B:\n    Type: AWS::S3::Bucket\nOutputs:\n  O:\n    Description: nothing\n",
		},
		{
			name:    "not yaml",
			content: ": : :",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := Validate([]byte(tt.content)); err == nil {
				t.Error("expected validation failure")
			}
		})
	}
}
