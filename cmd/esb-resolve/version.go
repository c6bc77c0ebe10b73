// Where: resolver/cmd/esb-resolve/version.go
// What: The version command.
// Why: Report the build version for bug reports.
package main

import "fmt"

// version is set at build time via -ldflags.
var version = "dev"

type VersionCmd struct{}

func (c *VersionCmd) Run(deps *Dependencies) error {
	fmt.Fprintf(deps.Out, "esb-resolve %s\n", version)
	return nil
}
