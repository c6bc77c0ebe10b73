// Where: resolver/cmd/esb-resolve/params.go
// What: Parameter override collection.
// Why: Merge .env files and repeatable -p flags into one override map.
package main

import (
	"fmt"
	"strings"
)

// collectParameters merges env-file values with -p NAME=VALUE flags; flags
// win on conflict.
func collectParameters(deps *Dependencies, envFile string, flags []string) (map[string]string, error) {
	out := map[string]string{}
	if envFile != "" {
		values, err := deps.EnvFile(envFile)
		if err != nil {
			return nil, fmt.Errorf("load env file %s: %w", envFile, err)
		}
		for name, value := range values {
			out[name] = value
		}
	}
	for _, flag := range flags {
		name, value, err := splitParameter(flag)
		if err != nil {
			return nil, err
		}
		out[name] = value
	}
	return out, nil
}

func splitParameter(flag string) (name, value string, err error) {
	parts := strings.SplitN(flag, "=", 2)
	if len(parts) != 2 || parts[0] == "" {
		return "", "", fmt.Errorf("malformed parameter %q, want NAME=VALUE", flag)
	}
	return parts[0], parts[1], nil
}
