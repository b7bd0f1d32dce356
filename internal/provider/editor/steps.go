package editor

import (
	"fmt"
	"strings"

	"github.com/felixgeelhaar/devrig/internal/domain/engine"
	"github.com/felixgeelhaar/devrig/internal/domain/markfile"
	"github.com/felixgeelhaar/devrig/internal/domain/probe"
	"github.com/felixgeelhaar/devrig/internal/ports"
	"github.com/felixgeelhaar/devrig/internal/validation"
)

// InstallStep installs the editor distribution via its vendor script and
// runs an optional headless update command to pull plugins.
type InstallStep struct {
	cfg      *Config
	id       engine.StepID
	critical bool
	runner   ports.CommandRunner
	probe    *probe.Probe
}

// NewInstallStep creates a new InstallStep.
func NewInstallStep(cfg *Config, critical bool, runner ports.CommandRunner, pr *probe.Probe) *InstallStep {
	return &InstallStep{
		cfg:      cfg,
		id:       engine.MustNewStepID("editor:install:" + cfg.Name),
		critical: critical,
		runner:   runner,
		probe:    pr,
	}
}

// ID returns the step identifier.
func (s *InstallStep) ID() engine.StepID { return s.id }

// Critical reports whether a failure halts the run.
func (s *InstallStep) Critical() bool { return s.critical }

// Check determines if the distribution home directory exists.
func (s *InstallStep) Check(_ engine.RunContext) (engine.CheckStatus, error) {
	if s.probe.DirExists(s.cfg.Home) {
		return engine.StatusSatisfied, nil
	}
	return engine.StatusNeedsApply, nil
}

// Apply runs the installer script, then the headless update command when one
// is configured. Both count as one step so a half-installed distribution
// surfaces as a single failure.
func (s *InstallStep) Apply(ctx engine.RunContext) error {
	if err := validation.ValidateInstallerURL(s.cfg.InstallerURL); err != nil {
		return err
	}

	result, err := s.runner.Run(ctx.Context(), "bash", "-c",
		"curl -fsSL "+s.cfg.InstallerURL+" | bash")
	if err != nil {
		return err
	}
	if !result.Success() {
		return fmt.Errorf("%s installer failed: %s", s.cfg.Name, strings.TrimSpace(result.Stderr))
	}

	if s.cfg.Command == "" {
		return nil
	}
	if err := validation.ValidateToolName(s.cfg.Command); err != nil {
		return err
	}
	result, err = s.runner.Run(ctx.Context(), s.cfg.Command, s.cfg.UpdateArgs...)
	if err != nil {
		return err
	}
	if !result.Success() {
		return fmt.Errorf("%s update failed: %s", s.cfg.Name, strings.TrimSpace(result.Stderr))
	}
	return nil
}

// Explain provides a one-line description.
func (s *InstallStep) Explain() string {
	return fmt.Sprintf("Install the %s editor distribution", s.cfg.Name)
}

// ConfigBlockStep writes a managed block into the editor's config file.
// Always critical: a failed config write must stop the run.
type ConfigBlockStep struct {
	cfg    *Config
	id     engine.StepID
	writer *markfile.Writer
}

// NewConfigBlockStep creates a new ConfigBlockStep.
func NewConfigBlockStep(cfg *Config, writer *markfile.Writer) *ConfigBlockStep {
	return &ConfigBlockStep{
		cfg:    cfg,
		id:     engine.MustNewStepID("editor:config:" + cfg.Name),
		writer: writer,
	}
}

// ID returns the step identifier.
func (s *ConfigBlockStep) ID() engine.StepID { return s.id }

// Critical reports whether a failure halts the run.
func (s *ConfigBlockStep) Critical() bool { return true }

// Check determines if the config block is already present.
func (s *ConfigBlockStep) Check(_ engine.RunContext) (engine.CheckStatus, error) {
	has, err := s.writer.HasBlock(s.cfg.ConfigFile, s.cfg.ConfigMarker)
	if err != nil {
		return engine.StatusUnknown, err
	}
	if has {
		return engine.StatusSatisfied, nil
	}
	return engine.StatusNeedsApply, nil
}

// Apply writes the config block.
func (s *ConfigBlockStep) Apply(_ engine.RunContext) error {
	return s.writer.UpsertBlock(s.cfg.ConfigFile, s.cfg.ConfigMarker, s.cfg.ConfigBlock)
}

// Explain provides a one-line description.
func (s *ConfigBlockStep) Explain() string {
	return fmt.Sprintf("Write the %s config block to %s", s.cfg.Name, s.cfg.ConfigFile)
}

// Ensure steps implement engine.Step.
var (
	_ engine.Step = (*InstallStep)(nil)
	_ engine.Step = (*ConfigBlockStep)(nil)
)
