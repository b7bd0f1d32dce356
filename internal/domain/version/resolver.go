// Package version resolves "latest" tool versions, with deterministic
// substitutes for tests and offline runs.
package version

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"golang.org/x/mod/semver"

	"github.com/felixgeelhaar/devrig/internal/ports"
)

// Errors for version resolution.
var (
	ErrUnknownTool = errors.New("no version source for tool")
	ErrNoVersions  = errors.New("no stable versions found")
	ErrListFailed  = errors.New("version list command failed")
	ErrNotResolved = errors.New("version not resolved")
)

// Resolver resolves the latest available version of a tool.
type Resolver interface {
	ResolveLatest(ctx context.Context, tool string) (string, error)
}

// ListCommand is the command that prints a tool's available versions.
type ListCommand struct {
	Command string
	Args    []string
}

// releasePattern matches a bare stable release number on its own line, the
// shape emitted by "pyenv install --list" and friends.
var releasePattern = regexp.MustCompile(`^\s*(\d+\.\d+\.\d+)\s*$`)

// CommandResolver scrapes a version list command and picks the newest stable
// release by semantic version ordering.
type CommandResolver struct {
	runner   ports.CommandRunner
	commands map[string]ListCommand
}

// NewCommandResolver creates a CommandResolver with the given per-tool list
// commands.
func NewCommandResolver(runner ports.CommandRunner, commands map[string]ListCommand) *CommandResolver {
	return &CommandResolver{runner: runner, commands: commands}
}

// ResolveLatest runs the tool's list command and returns the newest stable
// version it reports.
func (r *CommandResolver) ResolveLatest(ctx context.Context, tool string) (string, error) {
	listCmd, ok := r.commands[tool]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrUnknownTool, tool)
	}

	result, err := r.runner.Run(ctx, listCmd.Command, listCmd.Args...)
	if err != nil {
		return "", err
	}
	if !result.Success() {
		return "", fmt.Errorf("%w: %s %s: %s",
			ErrListFailed, listCmd.Command, strings.Join(listCmd.Args, " "),
			strings.TrimSpace(result.Stderr))
	}

	latest := ""
	for _, line := range strings.Split(result.Stdout, "\n") {
		m := releasePattern.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		candidate := m[1]
		if latest == "" || semver.Compare("v"+candidate, "v"+latest) > 0 {
			latest = candidate
		}
	}

	if latest == "" {
		return "", fmt.Errorf("%w: %s", ErrNoVersions, tool)
	}
	return latest, nil
}

// Static resolves from a fixed map. Used in tests and anywhere a run must be
// deterministic.
type Static map[string]string

// ResolveLatest returns the fixed version for the tool.
func (s Static) ResolveLatest(_ context.Context, tool string) (string, error) {
	v, ok := s[tool]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrUnknownTool, tool)
	}
	return v, nil
}

// Ensure implementations satisfy Resolver.
var (
	_ Resolver = (*CommandResolver)(nil)
	_ Resolver = (Static)(nil)
)
