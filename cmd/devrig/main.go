// Package main provides the entry point for the devrig CLI.
package main

import (
	"errors"
	"os"

	"github.com/felixgeelhaar/devrig/internal/domain/engine"
)

func main() {
	if err := Execute(); err != nil {
		var critical *engine.CriticalFailureError
		if errors.As(err, &critical) {
			os.Exit(critical.ExitCode())
		}
		os.Exit(1)
	}
}
