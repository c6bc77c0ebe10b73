package main

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/poruru/edge-serverless-box/resolver/internal/awsenv"
	"github.com/poruru/edge-serverless-box/resolver/internal/include"
)

const cliTemplate = `
AWSTemplateFormatVersion: "2010-09-09"
Parameters:
  Stage:
    Type: String
    Default: dev
Conditions:
  IsProd: !Equals [!Ref Stage, prod]
Resources:
  Fn:
    Type: AWS::Serverless::Function
    Properties:
      FunctionName: !Sub "${Stage}-fn"
      Region: !Ref AWS::Region
  ProdBucket:
    Type: AWS::S3::Bucket
    Condition: IsProd
Outputs:
  Name:
    Value: !GetAtt Fn.Arn
`

func testDependencies(files map[string]string) (Dependencies, *bytes.Buffer, *bytes.Buffer) {
	out := &bytes.Buffer{}
	errOut := &bytes.Buffer{}
	deps := Dependencies{
		Out: out,
		Err: errOut,
		ReadFile: func(path string) ([]byte, error) {
			content, ok := files[path]
			if !ok {
				return nil, fmt.Errorf("open %s: no such file", path)
			}
			return []byte(content), nil
		},
		EnvFile: func(path string) (map[string]string, error) {
			return nil, fmt.Errorf("no env file %s", path)
		},
		AWSContext: func(context.Context, awsenv.Options) (awsenv.Context, error) {
			return awsenv.Context{}, fmt.Errorf("no aws environment in tests")
		},
		Fetcher: func(context.Context, include.Options) (Fetcher, error) {
			return nil, fmt.Errorf("no fetcher in tests")
		},
	}
	return deps, out, errOut
}

func TestRun_Resolve(t *testing.T) {
	deps, out, _ := testDependencies(map[string]string{"template.yaml": cliTemplate})

	code := Run([]string{"resolve", "-t", "template.yaml", "--region", "eu-west-1"}, deps)
	if code != 0 {
		t.Fatalf("exit code = %d", code)
	}
	rendered := out.String()
	for _, want := range []string{
		"FunctionName: dev-fn",
		"Region: eu-west-1",
		"Value: ${Fn.Arn}",
	} {
		if !strings.Contains(rendered, want) {
			t.Errorf("output missing %q:\n%s", want, rendered)
		}
	}
	if strings.Contains(rendered, "ProdBucket") {
		t.Errorf("false-conditioned resource in output:\n%s", rendered)
	}
}

func TestRun_ResolveWithParameterOverride(t *testing.T) {
	deps, out, _ := testDependencies(map[string]string{"template.yaml": cliTemplate})

	code := Run([]string{"resolve", "-t", "template.yaml", "-p", "Stage=prod"}, deps)
	if code != 0 {
		t.Fatalf("exit code = %d", code)
	}
	rendered := out.String()
	if !strings.Contains(rendered, "FunctionName: prod-fn") {
		t.Errorf("override not applied:\n%s", rendered)
	}
	if !strings.Contains(rendered, "ProdBucket") {
		t.Errorf("true-conditioned resource missing:\n%s", rendered)
	}
}

func TestRun_ResolveJSONFormat(t *testing.T) {
	deps, out, _ := testDependencies(map[string]string{"template.yaml": cliTemplate})

	code := Run([]string{"resolve", "-t", "template.yaml", "--format", "json"}, deps)
	if code != 0 {
		t.Fatalf("exit code = %d", code)
	}
	if !strings.Contains(out.String(), `"FunctionName": "dev-fn"`) {
		t.Errorf("json output:\n%s", out.String())
	}
}

func TestRun_ResolveIgnoreErrors(t *testing.T) {
	broken := `
Resources:
  Bad:
    Type: AWS::S3::Bucket
    Properties:
      BucketName: !Join [1, [a]]
`
	deps, _, errOut := testDependencies(map[string]string{"template.yaml": broken})

	if code := Run([]string{"resolve", "-t", "template.yaml"}, deps); code != 1 {
		t.Errorf("strict mode should fail, exit code = %d", code)
	}

	deps, out, errOut := testDependencies(map[string]string{"template.yaml": broken})
	if code := Run([]string{"resolve", "-t", "template.yaml", "--ignore-errors"}, deps); code != 0 {
		t.Fatalf("ignore-errors exit code = %d, stderr: %s", code, errOut.String())
	}
	if !strings.Contains(errOut.String(), "warning:") {
		t.Errorf("expected warning on stderr, got: %s", errOut.String())
	}
	if !strings.Contains(out.String(), "Fn::Join") {
		t.Errorf("unresolved body should survive:\n%s", out.String())
	}
}

func TestRun_Conditions(t *testing.T) {
	deps, out, _ := testDependencies(map[string]string{"template.yaml": cliTemplate})

	code := Run([]string{"conditions", "-t", "template.yaml", "-p", "Stage=prod"}, deps)
	if code != 0 {
		t.Fatalf("exit code = %d", code)
	}
	if got := out.String(); got != "IsProd: true\n" {
		t.Errorf("conditions output = %q", got)
	}
}

func TestRun_Validate(t *testing.T) {
	deps, out, _ := testDependencies(map[string]string{"template.yaml": cliTemplate})
	if code := Run([]string{"validate", "-t", "template.yaml"}, deps); code != 0 {
		t.Fatalf("exit code = %d", code)
	}
	if !strings.Contains(out.String(), "template is valid") {
		t.Errorf("validate output = %q", out.String())
	}

	deps, _, _ = testDependencies(map[string]string{"broken.yaml": "Resources:\n  X:\n    Properties: {}\n"})
	if code := Run([]string{"validate", "-t", "broken.yaml"}, deps); code != 1 {
		t.Errorf("invalid template exit code = %d", code)
	}
}

func TestRun_Version(t *testing.T) {
	deps, out, _ := testDependencies(nil)
	if code := Run([]string{"version"}, deps); code != 0 {
		t.Fatalf("exit code = %d", code)
	}
	if !strings.Contains(out.String(), "esb-resolve") {
		t.Errorf("version output = %q", out.String())
	}
}

func TestRun_BadInvocations(t *testing.T) {
	deps, _, errOut := testDependencies(nil)
	if code := Run([]string{"resolve"}, deps); code != 1 {
		t.Errorf("missing -t exit code = %d", code)
	}
	if errOut.Len() == 0 {
		t.Error("expected a parse error on stderr")
	}

	deps, _, _ = testDependencies(nil)
	if code := Run([]string{"resolve", "-t", "missing.yaml"}, deps); code != 1 {
		t.Errorf("missing file exit code = %d", code)
	}
}
