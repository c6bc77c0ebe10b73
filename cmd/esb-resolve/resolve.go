// Where: resolver/cmd/esb-resolve/resolve.go
// What: The resolve command.
// Why: Turn a template with intrinsic calls into a resolved document.
package main

import (
	"context"
	"encoding/json"
	"fmt"

	"sigs.k8s.io/yaml"

	"github.com/poruru/edge-serverless-box/resolver/internal/awsenv"
	"github.com/poruru/edge-serverless-box/resolver/internal/document"
	"github.com/poruru/edge-serverless-box/resolver/internal/include"
	"github.com/poruru/edge-serverless-box/resolver/internal/intrinsics"
	"github.com/poruru/edge-serverless-box/resolver/internal/preprocess"
	"github.com/poruru/edge-serverless-box/resolver/internal/symbols"
	"github.com/poruru/edge-serverless-box/resolver/internal/template"
)

type ResolveCmd struct {
	Template      string   `short:"t" required:"" help:"Path to template"`
	Parameter     []string `short:"p" help:"Parameter override NAME=VALUE (repeatable)"`
	EnvFile       string   `name:"env-file" help:"Load parameter overrides from a .env file"`
	Format        string   `enum:"yaml,json" default:"yaml" help:"Output format"`
	IgnoreErrors  bool     `name:"ignore-errors" help:"Keep unresolved resources instead of failing"`
	Live          bool     `help:"Resolve region and account from the AWS environment"`
	Region        string   `help:"Region for pseudo-parameters"`
	StackName     string   `name:"stack-name" help:"Stack name for pseudo-parameters"`
	FetchIncludes bool     `name:"fetch-includes" help:"Fetch and splice AWS::Include documents"`
	Endpoint      string   `help:"Endpoint override for S3/STS (local runtimes)"`
	PreRender     bool     `name:"pre-render" help:"Render the template text with Go templates before parsing"`
}

func (c *ResolveCmd) Run(deps *Dependencies) error {
	ctx := context.Background()

	content, err := deps.ReadFile(c.Template)
	if err != nil {
		return err
	}

	overrides, err := collectParameters(deps, c.EnvFile, c.Parameter)
	if err != nil {
		return err
	}

	if c.PreRender {
		vars := make(map[string]any, len(overrides))
		for name, value := range overrides {
			vars[name] = value
		}
		rendered, err := preprocess.Render(string(content), vars)
		if err != nil {
			return err
		}
		content = []byte(rendered)
	}

	tmpl, err := template.Load(content)
	if err != nil {
		return err
	}

	parameters := tmpl.ParameterDefaults()
	for name, value := range overrides {
		parameters[name] = value
	}

	cfg := symbols.StaticConfig{
		Region:        c.Region,
		StackName:     c.StackName,
		Parameters:    parameters,
		ResourceTypes: tmpl.ResourceTypes(),
	}
	if c.Live {
		env, err := deps.AWSContext(ctx, awsenv.Options{Region: c.Region, Endpoint: c.Endpoint})
		if err != nil {
			return err
		}
		cfg.Region = env.Region
		cfg.AccountID = env.AccountID
	}

	resolver := intrinsics.New(symbols.NewStatic(cfg), tmpl)

	if c.FetchIncludes {
		fetcher, err := deps.Fetcher(ctx, include.Options{Endpoint: c.Endpoint})
		if err != nil {
			return err
		}
		expanded, err := expandIncludes(ctx, resolver, fetcher, any(tmpl.Resources))
		if err != nil {
			return err
		}
		tmpl.Resources = document.AsMap(expanded)
		resolver = intrinsics.New(symbols.NewStatic(cfg), tmpl)
	}

	resources, err := resolver.ResolveTemplate(c.IgnoreErrors)
	if err != nil {
		return err
	}
	outputs, err := resolver.ResolveOutputs(c.IgnoreErrors)
	if err != nil {
		return err
	}

	for _, warning := range resolver.Warnings() {
		fmt.Fprintln(deps.Err, "warning:", warning)
	}

	out := map[string]any{"Resources": resources}
	if tmpl.AWSTemplateFormatVersion != "" {
		out["AWSTemplateFormatVersion"] = tmpl.AWSTemplateFormatVersion
	}
	if tmpl.Description != "" {
		out["Description"] = tmpl.Description
	}
	if len(outputs) > 0 {
		out["Outputs"] = outputs
	}

	return writeDocument(deps, out, c.Format)
}

// expandIncludes replaces Fn::Transform nodes with the fetched body of their
// resolved location before the main resolution pass.
func expandIncludes(ctx context.Context, resolver *intrinsics.Resolver, fetcher Fetcher, node any) (any, error) {
	switch typed := node.(type) {
	case map[string]any:
		if raw, ok := typed["Fn::Transform"]; ok && len(typed) == 1 {
			location, err := resolver.ResolveValue(map[string]any{"Fn::Transform": raw})
			if err != nil {
				return nil, err
			}
			locationStr, ok := location.(string)
			if !ok {
				return nil, fmt.Errorf("include location resolved to %T, want string", location)
			}
			body, err := fetcher.Fetch(ctx, locationStr)
			if err != nil {
				return nil, err
			}
			fragment, err := document.DecodeYAML(body)
			if err != nil {
				return nil, fmt.Errorf("decode include %s: %w", locationStr, err)
			}
			return fragment, nil
		}
		out := make(map[string]any, len(typed))
		for key, item := range typed {
			expanded, err := expandIncludes(ctx, resolver, fetcher, item)
			if err != nil {
				return nil, err
			}
			out[key] = expanded
		}
		return out, nil
	case []any:
		out := make([]any, len(typed))
		for i, item := range typed {
			expanded, err := expandIncludes(ctx, resolver, fetcher, item)
			if err != nil {
				return nil, err
			}
			out[i] = expanded
		}
		return out, nil
	default:
		return node, nil
	}
}

func writeDocument(deps *Dependencies, doc map[string]any, format string) error {
	jsonData, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return err
	}
	if format == "json" {
		fmt.Fprintln(deps.Out, string(jsonData))
		return nil
	}
	yamlData, err := yaml.JSONToYAML(jsonData)
	if err != nil {
		return err
	}
	fmt.Fprint(deps.Out, string(yamlData))
	return nil
}
