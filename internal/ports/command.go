// Package ports defines interfaces for external dependencies.
package ports

import (
	"context"
)

// CommandResult represents the result of executing an external command.
type CommandResult struct {
	ExitCode int
	Stdout   string
	Stderr   string
}

// Success returns true if the command exited with code 0.
func (r CommandResult) Success() bool {
	return r.ExitCode == 0
}

// CommandCall records a command invocation.
type CommandCall struct {
	Command string
	Args    []string
	Env     []string
}

// CommandRunner executes external commands. Installer wrappers never build
// shell strings from user input; arguments are passed as an argv vector.
type CommandRunner interface {
	// Run executes a command with the inherited environment.
	Run(ctx context.Context, command string, args ...string) (CommandResult, error)

	// RunWithEnv executes a command with extra KEY=VALUE pairs appended to
	// the inherited environment. Installer steps use this to thread values
	// like PYENV_ROOT or NVM_DIR into the wrapped tool.
	RunWithEnv(ctx context.Context, env []string, command string, args ...string) (CommandResult, error)
}
