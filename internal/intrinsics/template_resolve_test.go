package intrinsics

import (
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/poruru/edge-serverless-box/resolver/internal/symbols"
	"github.com/poruru/edge-serverless-box/resolver/internal/template"
)

func TestResolveTemplate(t *testing.T) {
	tmpl := &template.Template{
		Conditions: map[string]any{
			"IsProd": map[string]any{"Fn::Equals": []any{"prod", "prod"}},
			"IsDev":  map[string]any{"Fn::Equals": []any{"prod", "dev"}},
		},
		Resources: map[string]any{
			"Fn": map[string]any{
				"Type": "AWS::Serverless::Function",
				"Properties": map[string]any{
					"FunctionName": map[string]any{"Fn::Join": []any{"-", []any{"svc", "api"}}},
				},
			},
			"DevOnly": map[string]any{
				"Type":      "AWS::S3::Bucket",
				"Condition": "IsDev",
			},
			"ProdOnly": map[string]any{
				"Type":      "AWS::S3::Bucket",
				"Condition": "IsProd",
			},
		},
	}
	resolver := newTestResolver(tmpl, symbols.StaticConfig{})

	got, err := resolver.ResolveTemplate(false)
	if err != nil {
		t.Fatalf("ResolveTemplate: %v", err)
	}
	want := map[string]any{
		"Fn": map[string]any{
			"Type": "AWS::Serverless::Function",
			"Properties": map[string]any{
				"FunctionName": "svc-api",
			},
		},
		"ProdOnly": map[string]any{
			"Type":      "AWS::S3::Bucket",
			"Condition": "IsProd",
		},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ResolveTemplate = %#v, want %#v", got, want)
	}
	if _, kept := got["DevOnly"]; kept {
		t.Error("false-conditioned resource should be omitted")
	}
}

func TestResolveTemplate_StrictFailure(t *testing.T) {
	tmpl := &template.Template{
		Resources: map[string]any{
			"Broken": map[string]any{
				"Type": "AWS::S3::Bucket",
				"Properties": map[string]any{
					"BucketName": map[string]any{"Fn::Join": []any{1, []any{"a"}}},
				},
			},
		},
	}
	resolver := newTestResolver(tmpl, symbols.StaticConfig{})

	_, err := resolver.ResolveTemplate(false)
	var resourceErr *ResourceError
	if !errors.As(err, &resourceErr) {
		t.Fatalf("want ResourceError, got %T: %v", err, err)
	}
	if resourceErr.LogicalID != "Broken" || resourceErr.ResourceType != "AWS::S3::Bucket" {
		t.Errorf("ResourceError = %+v", resourceErr)
	}
	var typeErr *TypeError
	if !errors.As(err, &typeErr) {
		t.Errorf("underlying cause should unwrap to TypeError, got %v", err)
	}
}

func TestResolveTemplate_IgnoreErrors(t *testing.T) {
	brokenBody := map[string]any{
		"Type": "AWS::S3::Bucket",
		"Properties": map[string]any{
			"BucketName": map[string]any{"Fn::Join": []any{1, []any{"a"}}},
		},
	}
	tmpl := &template.Template{
		Resources: map[string]any{
			"Broken": brokenBody,
			"Fine": map[string]any{
				"Type": "AWS::SQS::Queue",
				"Properties": map[string]any{
					"QueueName": map[string]any{"Fn::Sub": "q-${AWS::Region}"},
				},
			},
		},
	}
	resolver := newTestResolver(tmpl, symbols.StaticConfig{})

	got, err := resolver.ResolveTemplate(true)
	if err != nil {
		t.Fatalf("best-effort mode should not fail: %v", err)
	}
	if !reflect.DeepEqual(got["Broken"], brokenBody) {
		t.Errorf("failed resource should keep its original body: %#v", got["Broken"])
	}
	wantFine := map[string]any{
		"Type": "AWS::SQS::Queue",
		"Properties": map[string]any{
			"QueueName": "q-us-east-1",
		},
	}
	if !reflect.DeepEqual(got["Fine"], wantFine) {
		t.Errorf("healthy resource = %#v, want %#v", got["Fine"], wantFine)
	}

	warnings := resolver.Warnings()
	if len(warnings) != 1 || !strings.Contains(warnings[0], "Broken") {
		t.Errorf("warnings = %v, want one mentioning Broken", warnings)
	}

	// Resolving again records no duplicate warning.
	if _, err := resolver.ResolveTemplate(true); err != nil {
		t.Fatalf("second pass: %v", err)
	}
	if len(resolver.Warnings()) != 1 {
		t.Errorf("warnings should be deduplicated: %v", resolver.Warnings())
	}
}

func TestResolveOutputs(t *testing.T) {
	tmpl := &template.Template{
		Conditions: map[string]any{
			"Never": map[string]any{"Fn::Equals": []any{"a", "b"}},
		},
		Outputs: map[string]any{
			"Endpoint": map[string]any{
				"Value": map[string]any{"Fn::Sub": "https://api.${AWS::Region}.example.com"},
			},
			"Hidden": map[string]any{
				"Condition": "Never",
				"Value":     "x",
			},
		},
	}
	resolver := newTestResolver(tmpl, symbols.StaticConfig{Region: "eu-west-1"})

	got, err := resolver.ResolveOutputs(false)
	if err != nil {
		t.Fatalf("ResolveOutputs: %v", err)
	}
	want := map[string]any{
		"Endpoint": map[string]any{
			"Value": "https://api.eu-west-1.example.com",
		},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ResolveOutputs = %#v, want %#v", got, want)
	}
}

func TestResolveConditions(t *testing.T) {
	tmpl := &template.Template{
		Conditions: map[string]any{
			"IsProd": map[string]any{"Fn::Equals": []any{"prod", "prod"}},
			"IsBig":  map[string]any{"Fn::Equals": []any{"1", "2"}},
			"Both": map[string]any{"Fn::And": []any{
				map[string]any{"Condition": "IsProd"},
				map[string]any{"Condition": "IsBig"},
			}},
		},
	}
	resolver := newTestResolver(tmpl, symbols.StaticConfig{})

	got, err := resolver.ResolveConditions()
	if err != nil {
		t.Fatalf("ResolveConditions: %v", err)
	}
	want := map[string]bool{"IsProd": true, "IsBig": false, "Both": false}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ResolveConditions = %#v, want %#v", got, want)
	}
}
