package nvm

import (
	"fmt"
	"strings"

	"github.com/felixgeelhaar/devrig/internal/domain/engine"
	"github.com/felixgeelhaar/devrig/internal/domain/markfile"
	"github.com/felixgeelhaar/devrig/internal/domain/probe"
	"github.com/felixgeelhaar/devrig/internal/ports"
	"github.com/felixgeelhaar/devrig/internal/validation"
)

const initMarker = "nvm"

// initBlock is the shell init snippet nvm needs on every login.
const initBlock = `export NVM_DIR="$HOME/.nvm"
[ -s "$NVM_DIR/nvm.sh" ] && \. "$NVM_DIR/nvm.sh"
`

// nvm is a shell function, not a binary: every invocation sources nvm.sh
// inside a fresh bash.
func nvmInvocation(args string) string {
	return `. "$HOME/.nvm/nvm.sh" && nvm ` + args
}

// InstallStep installs nvm itself via the vendor installer script.
type InstallStep struct {
	id       engine.StepID
	critical bool
	runner   ports.CommandRunner
	probe    *probe.Probe
}

// NewInstallStep creates a new InstallStep.
func NewInstallStep(critical bool, runner ports.CommandRunner, pr *probe.Probe) *InstallStep {
	return &InstallStep{
		id:       engine.MustNewStepID("nvm:install:nvm"),
		critical: critical,
		runner:   runner,
		probe:    pr,
	}
}

// ID returns the step identifier.
func (s *InstallStep) ID() engine.StepID { return s.id }

// Critical reports whether a failure halts the run.
func (s *InstallStep) Critical() bool { return s.critical }

// Check determines if nvm is already installed.
func (s *InstallStep) Check(_ engine.RunContext) (engine.CheckStatus, error) {
	if s.probe.DirExists(Dir) {
		return engine.StatusSatisfied, nil
	}
	return engine.StatusNeedsApply, nil
}

// Apply runs the vendor installer script. PROFILE=/dev/null stops the
// installer from editing shell init files itself; the init block step owns
// that write.
func (s *InstallStep) Apply(ctx engine.RunContext) error {
	if err := validation.ValidateInstallerURL(InstallerURL); err != nil {
		return err
	}

	result, err := s.runner.RunWithEnv(ctx.Context(), []string{"PROFILE=/dev/null"},
		"bash", "-c", "curl -o- -fsSL "+InstallerURL+" | bash")
	if err != nil {
		return err
	}
	if !result.Success() {
		return fmt.Errorf("nvm installer failed: %s", strings.TrimSpace(result.Stderr))
	}
	return nil
}

// Explain provides a one-line description.
func (s *InstallStep) Explain() string {
	return "Install nvm via the vendor installer script"
}

// InitBlockStep writes the nvm init block into the shell init file.
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
		id:       engine.MustNewStepID("nvm:init:shell"),
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
	return fmt.Sprintf("Write the nvm init block to %s", s.initFile)
}

// NodeStep installs a Node.js version through nvm.
type NodeStep struct {
	spec     string
	id       engine.StepID
	critical bool
	runner   ports.CommandRunner
}

// NewNodeStep creates a new NodeStep.
func NewNodeStep(spec string, critical bool, runner ports.CommandRunner) *NodeStep {
	return &NodeStep{
		spec:     spec,
		id:       engine.MustNewStepID("nvm:node:" + spec),
		critical: critical,
		runner:   runner,
	}
}

// ID returns the step identifier.
func (s *NodeStep) ID() engine.StepID { return s.id }

// Critical reports whether a failure halts the run.
func (s *NodeStep) Critical() bool { return s.critical }

// aliasArg is the version argument understood by nvm queries.
func (s *NodeStep) aliasArg() string {
	if s.spec == VersionLTS {
		return "lts/*"
	}
	return s.spec
}

// installArg is the version argument understood by nvm install.
func (s *NodeStep) installArg() string {
	if s.spec == VersionLTS {
		return "--lts"
	}
	return s.spec
}

// Check determines if the requested Node.js is already installed.
func (s *NodeStep) Check(ctx engine.RunContext) (engine.CheckStatus, error) {
	if err := validation.ValidateVersion(s.aliasArg()); err != nil {
		return engine.StatusUnknown, err
	}

	result, err := s.runner.Run(ctx.Context(), "bash", "-c",
		nvmInvocation("which --silent "+s.aliasArg()))
	if err != nil {
		return engine.StatusUnknown, err
	}
	// Non-zero covers both "version missing" and "nvm not installed yet".
	if result.Success() {
		return engine.StatusSatisfied, nil
	}
	return engine.StatusNeedsApply, nil
}

// Apply installs the Node.js version and makes it the default alias.
func (s *NodeStep) Apply(ctx engine.RunContext) error {
	if err := validation.ValidateVersion(s.aliasArg()); err != nil {
		return err
	}

	result, err := s.runner.Run(ctx.Context(), "bash", "-c",
		nvmInvocation("install "+s.installArg()))
	if err != nil {
		return err
	}
	if !result.Success() {
		return fmt.Errorf("nvm install %s failed: %s", s.installArg(), strings.TrimSpace(result.Stderr))
	}

	result, err = s.runner.Run(ctx.Context(), "bash", "-c",
		nvmInvocation("alias default "+s.aliasArg()))
	if err != nil {
		return err
	}
	if !result.Success() {
		return fmt.Errorf("nvm alias default %s failed: %s", s.aliasArg(), strings.TrimSpace(result.Stderr))
	}
	return nil
}

// Explain provides a one-line description.
func (s *NodeStep) Explain() string {
	return fmt.Sprintf("Install Node.js %s via nvm and set it as default", s.spec)
}

// Ensure steps implement engine.Step.
var (
	_ engine.Step = (*InstallStep)(nil)
	_ engine.Step = (*InitBlockStep)(nil)
	_ engine.Step = (*NodeStep)(nil)
)
