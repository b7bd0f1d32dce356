package pyenv

import (
	"fmt"
	"strings"

	"github.com/felixgeelhaar/devrig/internal/domain/engine"
	"github.com/felixgeelhaar/devrig/internal/domain/markfile"
	"github.com/felixgeelhaar/devrig/internal/domain/probe"
	"github.com/felixgeelhaar/devrig/internal/domain/version"
	"github.com/felixgeelhaar/devrig/internal/ports"
	"github.com/felixgeelhaar/devrig/internal/validation"
)

const initMarker = "pyenv"

// initBlock is the shell init snippet pyenv needs on every login.
const initBlock = `export PYENV_ROOT="$HOME/.pyenv"
export PATH="$PYENV_ROOT/bin:$PATH"
eval "$(pyenv init -)"
`

// binPath returns the pyenv executable path under its root, which works
// before the shell init block has taken effect.
func binPath() string {
	return ports.ExpandPath(Root + "/bin/pyenv")
}

// rootEnv returns the PYENV_ROOT environment for pyenv invocations.
func rootEnv() []string {
	return []string{"PYENV_ROOT=" + ports.ExpandPath(Root)}
}

// InstallStep installs pyenv itself via the vendor installer script.
type InstallStep struct {
	id       engine.StepID
	critical bool
	runner   ports.CommandRunner
	probe    *probe.Probe
}

// NewInstallStep creates a new InstallStep.
func NewInstallStep(critical bool, runner ports.CommandRunner, pr *probe.Probe) *InstallStep {
	return &InstallStep{
		id:       engine.MustNewStepID("pyenv:install:pyenv"),
		critical: critical,
		runner:   runner,
		probe:    pr,
	}
}

// ID returns the step identifier.
func (s *InstallStep) ID() engine.StepID { return s.id }

// Critical reports whether a failure halts the run.
func (s *InstallStep) Critical() bool { return s.critical }

// Check determines if pyenv is already installed.
func (s *InstallStep) Check(_ engine.RunContext) (engine.CheckStatus, error) {
	if s.probe.DirExists(Root) {
		return engine.StatusSatisfied, nil
	}
	return engine.StatusNeedsApply, nil
}

// Apply runs the vendor installer script.
func (s *InstallStep) Apply(ctx engine.RunContext) error {
	if err := validation.ValidateInstallerURL(InstallerURL); err != nil {
		return err
	}

	result, err := s.runner.Run(ctx.Context(), "bash", "-c", "curl -fsSL "+InstallerURL+" | bash")
	if err != nil {
		return err
	}
	if !result.Success() {
		return fmt.Errorf("pyenv installer failed: %s", strings.TrimSpace(result.Stderr))
	}
	return nil
}

// Explain provides a one-line description.
func (s *InstallStep) Explain() string {
	return "Install pyenv via the vendor installer script"
}

// InitBlockStep writes the pyenv init block into the shell init file.
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
		id:       engine.MustNewStepID("pyenv:init:shell"),
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
	return fmt.Sprintf("Write the pyenv init block to %s", s.initFile)
}

// PythonStep installs a CPython version through pyenv and makes it global.
// A "latest" spec is resolved lazily, at check time, so compilation never
// touches the network.
type PythonStep struct {
	spec     string
	resolved string
	id       engine.StepID
	critical bool
	runner   ports.CommandRunner
	resolver version.Resolver
}

// NewPythonStep creates a new PythonStep.
func NewPythonStep(spec string, critical bool, runner ports.CommandRunner, resolver version.Resolver) *PythonStep {
	return &PythonStep{
		spec:     spec,
		id:       engine.MustNewStepID("pyenv:python:" + spec),
		critical: critical,
		runner:   runner,
		resolver: resolver,
	}
}

// ID returns the step identifier.
func (s *PythonStep) ID() engine.StepID { return s.id }

// Critical reports whether a failure halts the run.
func (s *PythonStep) Critical() bool { return s.critical }

// resolve turns the requested spec into a concrete version, caching the
// answer for Apply.
func (s *PythonStep) resolve(ctx engine.RunContext) (string, error) {
	if s.resolved != "" {
		return s.resolved, nil
	}
	if s.spec != VersionLatest {
		s.resolved = s.spec
		return s.resolved, nil
	}
	v, err := s.resolver.ResolveLatest(ctx.Context(), "python")
	if err != nil {
		return "", fmt.Errorf("resolve latest python: %w", err)
	}
	s.resolved = v
	return v, nil
}

// Check determines if the requested CPython is already installed.
func (s *PythonStep) Check(ctx engine.RunContext) (engine.CheckStatus, error) {
	v, err := s.resolve(ctx)
	if err != nil {
		return engine.StatusUnknown, err
	}

	result, err := s.runner.RunWithEnv(ctx.Context(), rootEnv(), binPath(), "versions", "--bare")
	if err != nil {
		return engine.StatusUnknown, err
	}
	if !result.Success() {
		// pyenv itself is not usable yet; the install step will fix that.
		return engine.StatusNeedsApply, nil
	}

	for _, line := range strings.Split(result.Stdout, "\n") {
		if strings.TrimSpace(line) == v {
			return engine.StatusSatisfied, nil
		}
	}
	return engine.StatusNeedsApply, nil
}

// Apply installs the CPython version and sets it as the global default.
func (s *PythonStep) Apply(ctx engine.RunContext) error {
	v, err := s.resolve(ctx)
	if err != nil {
		return err
	}
	if err := validation.ValidateVersion(v); err != nil {
		return err
	}

	result, err := s.runner.RunWithEnv(ctx.Context(), rootEnv(), binPath(), "install", "-s", v)
	if err != nil {
		return err
	}
	if !result.Success() {
		return fmt.Errorf("pyenv install %s failed: %s", v, strings.TrimSpace(result.Stderr))
	}

	result, err = s.runner.RunWithEnv(ctx.Context(), rootEnv(), binPath(), "global", v)
	if err != nil {
		return err
	}
	if !result.Success() {
		return fmt.Errorf("pyenv global %s failed: %s", v, strings.TrimSpace(result.Stderr))
	}
	return nil
}

// Explain provides a one-line description.
func (s *PythonStep) Explain() string {
	return fmt.Sprintf("Install CPython %s via pyenv and set it global", s.spec)
}

// Ensure steps implement engine.Step.
var (
	_ engine.Step = (*InstallStep)(nil)
	_ engine.Step = (*InitBlockStep)(nil)
	_ engine.Step = (*PythonStep)(nil)
)
