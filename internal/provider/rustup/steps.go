package rustup

import (
	"fmt"
	"strings"

	"github.com/felixgeelhaar/devrig/internal/domain/engine"
	"github.com/felixgeelhaar/devrig/internal/domain/markfile"
	"github.com/felixgeelhaar/devrig/internal/domain/probe"
	"github.com/felixgeelhaar/devrig/internal/ports"
	"github.com/felixgeelhaar/devrig/internal/validation"
)

const initMarker = "cargo"

// initBlock puts the cargo bin directory on PATH for every login.
const initBlock = `. "$HOME/.cargo/env"
`

// InstallStep installs rustup itself via the vendor installer script.
type InstallStep struct {
	id       engine.StepID
	critical bool
	runner   ports.CommandRunner
	probe    *probe.Probe
}

// NewInstallStep creates a new InstallStep.
func NewInstallStep(critical bool, runner ports.CommandRunner, pr *probe.Probe) *InstallStep {
	return &InstallStep{
		id:       engine.MustNewStepID("rustup:install:rustup"),
		critical: critical,
		runner:   runner,
		probe:    pr,
	}
}

// ID returns the step identifier.
func (s *InstallStep) ID() engine.StepID { return s.id }

// Critical reports whether a failure halts the run.
func (s *InstallStep) Critical() bool { return s.critical }

// Check determines if rustup is already installed.
func (s *InstallStep) Check(_ engine.RunContext) (engine.CheckStatus, error) {
	if s.probe.FileExists(Bin) {
		return engine.StatusSatisfied, nil
	}
	return engine.StatusNeedsApply, nil
}

// Apply runs the vendor installer script. --no-modify-path keeps the
// installer out of shell init files; the init block step owns that write.
func (s *InstallStep) Apply(ctx engine.RunContext) error {
	if err := validation.ValidateInstallerURL(InstallerURL); err != nil {
		return err
	}

	result, err := s.runner.Run(ctx.Context(), "bash", "-c",
		"curl --proto '=https' --tlsv1.2 -fsSL "+InstallerURL+" | sh -s -- -y --no-modify-path")
	if err != nil {
		return err
	}
	if !result.Success() {
		return fmt.Errorf("rustup installer failed: %s", strings.TrimSpace(result.Stderr))
	}
	return nil
}

// Explain provides a one-line description.
func (s *InstallStep) Explain() string {
	return "Install rustup via the vendor installer script"
}

// InitBlockStep writes the cargo env block into the shell init file.
// Always critical: a failed config write must stop the run.
type InitBlockStep struct {
	initFile string
	id       engine.StepID
	writer   *markfile.Writer
}

// NewInitBlockStep creates a new InitBlockStep.
func NewInitBlockStep(initFile string, writer *markfile.Writer) *InitBlockStep {
	return &InitBlockStep{
		initFile: initFile,
		id:       engine.MustNewStepID("rustup:init:shell"),
		writer:   writer,
	}
}

// ID returns the step identifier.
func (s *InitBlockStep) ID() engine.StepID { return s.id }

// Critical reports whether a failure halts the run.
func (s *InitBlockStep) Critical() bool { return true }

// Check determines if the init block is already present.
func (s *InitBlockStep) Check(_ engine.RunContext) (engine.CheckStatus, error) {
	has, err := s.writer.HasBlock(s.initFile, initMarker)
	if err != nil {
		return engine.StatusUnknown, err
	}
	if has {
		return engine.StatusSatisfied, nil
	}
	return engine.StatusNeedsApply, nil
}

// Apply writes the init block.
func (s *InitBlockStep) Apply(_ engine.RunContext) error {
	return s.writer.UpsertBlock(s.initFile, initMarker, initBlock)
}

// Explain provides a one-line description.
func (s *InitBlockStep) Explain() string {
	return fmt.Sprintf("Write the cargo env block to %s", s.initFile)
}

// ToolchainStep ensures the configured toolchain is installed and default.
type ToolchainStep struct {
	toolchain string
	id        engine.StepID
	critical  bool
	runner    ports.CommandRunner
}

// NewToolchainStep creates a new ToolchainStep.
func NewToolchainStep(toolchain string, critical bool, runner ports.CommandRunner) *ToolchainStep {
	return &ToolchainStep{
		toolchain: toolchain,
		id:        engine.MustNewStepID("rustup:toolchain:" + toolchain),
		critical:  critical,
		runner:    runner,
	}
}

// ID returns the step identifier.
func (s *ToolchainStep) ID() engine.StepID { return s.id }

// Critical reports whether a failure halts the run.
func (s *ToolchainStep) Critical() bool { return s.critical }

// Check determines if the toolchain is installed and default.
func (s *ToolchainStep) Check(ctx engine.RunContext) (engine.CheckStatus, error) {
	result, err := s.runner.Run(ctx.Context(), ports.ExpandPath(Bin), "toolchain", "list")
	if err != nil {
		return engine.StatusUnknown, err
	}
	if !result.Success() {
		// rustup itself is not usable yet; the install step will fix that.
		return engine.StatusNeedsApply, nil
	}

	for _, line := range strings.Split(result.Stdout, "\n") {
		if strings.HasPrefix(line, s.toolchain) && strings.Contains(line, "default") {
			return engine.StatusSatisfied, nil
		}
	}
	return engine.StatusNeedsApply, nil
}

// Apply installs the toolchain and makes it the default.
func (s *ToolchainStep) Apply(ctx engine.RunContext) error {
	if err := validation.ValidateVersion(s.toolchain); err != nil {
		return err
	}

	bin := ports.ExpandPath(Bin)
	result, err := s.runner.Run(ctx.Context(), bin, "toolchain", "install", s.toolchain)
	if err != nil {
		return err
	}
	if !result.Success() {
		return fmt.Errorf("rustup toolchain install %s failed: %s", s.toolchain, strings.TrimSpace(result.Stderr))
	}

	result, err = s.runner.Run(ctx.Context(), bin, "default", s.toolchain)
	if err != nil {
		return err
	}
	if !result.Success() {
		return fmt.Errorf("rustup default %s failed: %s", s.toolchain, strings.TrimSpace(result.Stderr))
	}
	return nil
}

// Explain provides a one-line description.
func (s *ToolchainStep) Explain() string {
	return fmt.Sprintf("Install the %s Rust toolchain and set it default", s.toolchain)
}

// Ensure steps implement engine.Step.
var (
	_ engine.Step = (*InstallStep)(nil)
	_ engine.Step = (*InitBlockStep)(nil)
	_ engine.Step = (*ToolchainStep)(nil)
)
