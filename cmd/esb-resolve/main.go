// Where: resolver/cmd/esb-resolve/main.go
// What: CLI entrypoint.
// Why: Resolve template intrinsics with configured dependencies.
package main

import (
	"os"
)

func main() {
	os.Exit(Run(os.Args[1:], defaultDependencies()))
}
