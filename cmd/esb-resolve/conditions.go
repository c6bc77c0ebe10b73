// Where: resolver/cmd/esb-resolve/conditions.go
// What: The conditions command.
// Why: Show how each declared condition evaluates under the given parameters.
package main

import (
	"fmt"
	"sort"

	"github.com/poruru/edge-serverless-box/resolver/internal/intrinsics"
	"github.com/poruru/edge-serverless-box/resolver/internal/symbols"
	"github.com/poruru/edge-serverless-box/resolver/internal/template"
)

type ConditionsCmd struct {
	Template  string   `short:"t" required:"" help:"Path to template"`
	Parameter []string `short:"p" help:"Parameter override NAME=VALUE (repeatable)"`
	EnvFile   string   `name:"env-file" help:"Load parameter overrides from a .env file"`
	Region    string   `help:"Region for pseudo-parameters"`
}

func (c *ConditionsCmd) Run(deps *Dependencies) error {
	content, err := deps.ReadFile(c.Template)
	if err != nil {
		return err
	}
	tmpl, err := template.Load(content)
	if err != nil {
		return err
	}

	overrides, err := collectParameters(deps, c.EnvFile, c.Parameter)
	if err != nil {
		return err
	}
	parameters := tmpl.ParameterDefaults()
	for name, value := range overrides {
		parameters[name] = value
	}

	resolver := intrinsics.New(symbols.NewStatic(symbols.StaticConfig{
		Region:     c.Region,
		Parameters: parameters,
	}), tmpl)

	results, err := resolver.ResolveConditions()
	if err != nil {
		return err
	}

	names := make([]string, 0, len(results))
	for name := range results {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Fprintf(deps.Out, "%s: %t\n", name, results[name])
	}
	return nil
}
