package template

import (
	"reflect"
	"testing"
)

const sampleTemplate = `
AWSTemplateFormatVersion: "2010-09-09"
Description: demo stack
Transform: AWS::Serverless-2016-10-31
Parameters:
  Stage:
    Type: String
    Default: dev
  Count:
    Type: Number
    Default: 3
  NoDefault:
    Type: String
Mappings:
  Basic:
    Test:
      key: value
Conditions:
  IsProd: !Equals [!Ref Stage, prod]
Resources:
  Fn:
    Type: AWS::Serverless::Function
    Properties:
      FunctionName: !Sub "${Stage}-fn"
  Bucket:
    Type: AWS::S3::Bucket
Outputs:
  Name:
    Value: !Ref Fn
`

func TestLoad(t *testing.T) {
	tmpl, err := Load([]byte(sampleTemplate))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if tmpl.AWSTemplateFormatVersion != "2010-09-09" {
		t.Errorf("format version = %q", tmpl.AWSTemplateFormatVersion)
	}
	if tmpl.Description != "demo stack" {
		t.Errorf("description = %q", tmpl.Description)
	}
	if len(tmpl.Parameters) != 3 || len(tmpl.Resources) != 2 {
		t.Errorf("sections = %d parameters, %d resources", len(tmpl.Parameters), len(tmpl.Resources))
	}
	if _, ok := tmpl.Conditions["IsProd"]; !ok {
		t.Error("missing IsProd condition")
	}
	if _, ok := tmpl.Mappings["Basic"]; !ok {
		t.Error("missing Basic mapping")
	}
	if _, ok := tmpl.Outputs["Name"]; !ok {
		t.Error("missing Name output")
	}
}

func TestLoad_MissingSectionsAreEmpty(t *testing.T) {
	tmpl, err := Load([]byte("Resources:\n  B:\n    Type: AWS::S3::Bucket\n"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if tmpl.Parameters == nil || tmpl.Mappings == nil || tmpl.Conditions == nil || tmpl.Outputs == nil {
		t.Error("missing sections should be empty maps, not nil")
	}
}

func TestParameterDefaults(t *testing.T) {
	tmpl, err := Load([]byte(sampleTemplate))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	got := tmpl.ParameterDefaults()
	want := map[string]string{"Stage": "dev", "Count": "3"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ParameterDefaults = %v, want %v", got, want)
	}
}

func TestResourceTypes(t *testing.T) {
	tmpl, err := Load([]byte(sampleTemplate))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	got := tmpl.ResourceTypes()
	want := map[string]string{
		"Fn":     "AWS::Serverless::Function",
		"Bucket": "AWS::S3::Bucket",
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ResourceTypes = %v, want %v", got, want)
	}
}
