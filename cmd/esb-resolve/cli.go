// Where: resolver/cmd/esb-resolve/cli.go
// What: Command definitions and dependency wiring.
// Why: Centralize construction for testability.
package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/alecthomas/kong"
	"github.com/joho/godotenv"

	"github.com/poruru/edge-serverless-box/resolver/internal/awsenv"
	"github.com/poruru/edge-serverless-box/resolver/internal/include"
)

// Dependencies holds the injected collaborators the commands run against.
type Dependencies struct {
	Out        io.Writer
	Err        io.Writer
	ReadFile   func(path string) ([]byte, error)
	EnvFile    func(path string) (map[string]string, error)
	AWSContext func(ctx context.Context, opts awsenv.Options) (awsenv.Context, error)
	Fetcher    func(ctx context.Context, opts include.Options) (Fetcher, error)
}

// Fetcher is the include-document retrieval capability used by --fetch-includes.
type Fetcher interface {
	Fetch(ctx context.Context, location string) ([]byte, error)
}

func defaultDependencies() Dependencies {
	return Dependencies{
		Out:      os.Stdout,
		Err:      os.Stderr,
		ReadFile: os.ReadFile,
		EnvFile: func(path string) (map[string]string, error) {
			return godotenv.Read(path)
		},
		AWSContext: func(ctx context.Context, opts awsenv.Options) (awsenv.Context, error) {
			return awsenv.Load(ctx, opts)
		},
		Fetcher: func(ctx context.Context, opts include.Options) (Fetcher, error) {
			return include.NewFetcher(ctx, opts)
		},
	}
}

// CLI defines the command-line interface structure parsed by Kong.
type CLI struct {
	Resolve    ResolveCmd    `cmd:"" help:"Resolve intrinsic functions in a template"`
	Conditions ConditionsCmd `cmd:"" help:"Evaluate the Conditions section"`
	Validate   ValidateCmd   `cmd:"" help:"Check the template section skeleton"`
	Version    VersionCmd    `cmd:"" help:"Show version information"`
}

// Run parses arguments and dispatches the selected command.
// Returns 0 on success, 1 on error.
func Run(args []string, deps Dependencies) int {
	if deps.Out == nil {
		deps.Out = os.Stdout
	}
	if deps.Err == nil {
		deps.Err = os.Stderr
	}

	var cli CLI
	parser, err := kong.New(&cli,
		kong.Name("esb-resolve"),
		kong.Description("Resolve intrinsic functions in deployment templates."),
		kong.Writers(deps.Out, deps.Err),
		kong.Exit(func(int) {}),
	)
	if err != nil {
		fmt.Fprintln(deps.Err, err)
		return 1
	}
	ctx, err := parser.Parse(args)
	if err != nil {
		fmt.Fprintln(deps.Err, err)
		return 1
	}
	if err := ctx.Run(&deps); err != nil {
		fmt.Fprintln(deps.Err, err)
		return 1
	}
	return 0
}
