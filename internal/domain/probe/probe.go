// Package probe inspects current machine state for idempotency pre-checks.
// Every inspection is read-only; a probe never mutates the machine.
package probe

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"gopkg.in/ini.v1"

	"github.com/felixgeelhaar/devrig/internal/ports"
	"github.com/felixgeelhaar/devrig/internal/validation"
)

const osReleasePath = "/etc/os-release"

// versionPattern extracts the first version-looking token from --version output.
var versionPattern = regexp.MustCompile(`\d+\.\d+(?:\.\d+)?`)

// Probe answers "is this already done?" questions about the target machine.
type Probe struct {
	runner ports.CommandRunner
	fs     ports.FileSystem
}

// New creates a new Probe.
func New(runner ports.CommandRunner, fs ports.FileSystem) *Probe {
	return &Probe{runner: runner, fs: fs}
}

// Installed reports whether the tool resolves on PATH. An absent tool is
// "not installed", never an error.
func (p *Probe) Installed(ctx context.Context, tool string) (bool, error) {
	if err := validation.ValidateToolName(tool); err != nil {
		return false, fmt.Errorf("invalid tool name: %w", err)
	}

	result, err := p.runner.Run(ctx, "sh", "-c", "command -v -- "+tool)
	if err != nil {
		return false, err
	}
	return result.Success(), nil
}

// VersionOf returns the tool's reported version, or empty when the tool is
// absent or its output contains nothing version-shaped.
func (p *Probe) VersionOf(ctx context.Context, tool string) (string, error) {
	installed, err := p.Installed(ctx, tool)
	if err != nil {
		return "", err
	}
	if !installed {
		return "", nil
	}

	result, err := p.runner.Run(ctx, tool, "--version")
	if err != nil {
		return "", err
	}
	if !result.Success() {
		return "", nil
	}

	out := result.Stdout
	if strings.TrimSpace(out) == "" {
		out = result.Stderr
	}
	return versionPattern.FindString(out), nil
}

// DirExists reports whether path (with ~ expanded) is an existing directory.
func (p *Probe) DirExists(path string) bool {
	return p.fs.IsDir(ports.ExpandPath(path))
}

// FileExists reports whether path (with ~ expanded) exists.
func (p *Probe) FileExists(path string) bool {
	return p.fs.Exists(ports.ExpandPath(path))
}

// FileContains reports whether the file at path contains needle.
// A missing file simply does not contain it.
func (p *Probe) FileContains(path, needle string) (bool, error) {
	expanded := ports.ExpandPath(path)
	if !p.fs.Exists(expanded) {
		return false, nil
	}
	data, err := p.fs.ReadFile(expanded)
	if err != nil {
		return false, err
	}
	return strings.Contains(string(data), needle), nil
}

// OSRelease describes the host distribution as reported by /etc/os-release.
type OSRelease struct {
	ID         string
	VersionID  string
	PrettyName string
}

// HostOSRelease parses /etc/os-release. Hosts without the file (or with an
// unparsable one) report an empty OSRelease, not an error.
func (p *Probe) HostOSRelease() OSRelease {
	data, err := p.fs.ReadFile(osReleasePath)
	if err != nil {
		return OSRelease{}
	}

	f, err := ini.Load(data)
	if err != nil {
		return OSRelease{}
	}

	section := f.Section("")
	return OSRelease{
		ID:         section.Key("ID").String(),
		VersionID:  section.Key("VERSION_ID").String(),
		PrettyName: section.Key("PRETTY_NAME").String(),
	}
}
