// Where: resolver/cmd/esb-resolve/validate.go
// What: The validate command.
// Why: Check the template section skeleton without resolving anything.
package main

import (
	"fmt"

	"github.com/poruru/edge-serverless-box/resolver/internal/template"
)

type ValidateCmd struct {
	Template string `short:"t" required:"" help:"Path to template"`
}

func (c *ValidateCmd) Run(deps *Dependencies) error {
	content, err := deps.ReadFile(c.Template)
	if err != nil {
		return err
	}
	if err := template.Validate(content); err != nil {
		return fmt.Errorf("%s: %w", c.Template, err)
	}
	fmt.Fprintf(deps.Out, "%s: template is valid\n", c.Template)
	return nil
}
