package shell

import (
	"fmt"
	"sort"
	"strings"

	"github.com/felixgeelhaar/devrig/internal/domain/engine"
	"github.com/felixgeelhaar/devrig/internal/domain/markfile"
)

const envMarker = "shell-env"

// EnvBlockStep writes the managed env/PATH block into the shell init file.
// Config-file writes are always critical: a broken shell init leaves the
// environment un-bootstrappable.
type EnvBlockStep struct {
	initFile string
	env      map[string]string
	path     []string
	id       engine.StepID
	writer   *markfile.Writer
}

// NewEnvBlockStep creates a new EnvBlockStep.
func NewEnvBlockStep(cfg *Config, writer *markfile.Writer) *EnvBlockStep {
	return &EnvBlockStep{
		initFile: cfg.InitFile,
		env:      cfg.Env,
		path:     cfg.Path,
		id:       engine.MustNewStepID("shell:env:" + envMarker),
		writer:   writer,
	}
}

// ID returns the step identifier.
func (s *EnvBlockStep) ID() engine.StepID {
	return s.id
}

// Critical reports whether a failure halts the run.
func (s *EnvBlockStep) Critical() bool {
	return true
}

// Check determines if the block is already present.
func (s *EnvBlockStep) Check(_ engine.RunContext) (engine.CheckStatus, error) {
	has, err := s.writer.HasBlock(s.initFile, envMarker)
	if err != nil {
		return engine.StatusUnknown, err
	}
	if has {
		return engine.StatusSatisfied, nil
	}
	return engine.StatusNeedsApply, nil
}

// Apply writes the managed block.
func (s *EnvBlockStep) Apply(_ engine.RunContext) error {
	return s.writer.UpsertBlock(s.initFile, envMarker, renderEnvBlock(s.env, s.path))
}

// Explain provides a one-line description.
func (s *EnvBlockStep) Explain() string {
	return fmt.Sprintf("Write the managed env/PATH block to %s", s.initFile)
}

// renderEnvBlock produces the block content: sorted exports, then PATH
// prepends, so output is deterministic across runs.
func renderEnvBlock(env map[string]string, path []string) string {
	keys := make([]string, 0, len(env))
	for k := range env {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	for _, k := range keys {
		fmt.Fprintf(&b, "export %s=%q\n", k, env[k])
	}
	for _, dir := range path {
		fmt.Fprintf(&b, "export PATH=%q:$PATH\n", dir)
	}
	return b.String()
}

// Ensure EnvBlockStep implements engine.Step.
var _ engine.Step = (*EnvBlockStep)(nil)
