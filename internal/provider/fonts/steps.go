package fonts

import (
	"fmt"
	"strings"

	"github.com/felixgeelhaar/devrig/internal/domain/engine"
	"github.com/felixgeelhaar/devrig/internal/ports"
	"github.com/felixgeelhaar/devrig/internal/validation"
)

// FontStep installs a single font family via the vendor installer script.
type FontStep struct {
	font         string
	installerURL string
	id           engine.StepID
	critical     bool
	runner       ports.CommandRunner
}

// NewFontStep creates a new FontStep.
func NewFontStep(font, installerURL string, critical bool, runner ports.CommandRunner) *FontStep {
	return &FontStep{
		font:         font,
		installerURL: installerURL,
		id:           engine.MustNewStepID("fonts:install:" + strings.ReplaceAll(font, " ", "-")),
		critical:     critical,
		runner:       runner,
	}
}

// ID returns the step identifier.
func (s *FontStep) ID() engine.StepID { return s.id }

// Critical reports whether a failure halts the run.
func (s *FontStep) Critical() bool { return s.critical }

// Check queries fontconfig for the family. fc-list being absent or failing
// is treated as not installed rather than an error.
func (s *FontStep) Check(ctx engine.RunContext) (engine.CheckStatus, error) {
	result, err := s.runner.Run(ctx.Context(), "fc-list", ":", "family")
	if err != nil {
		return engine.StatusUnknown, err
	}
	if !result.Success() {
		return engine.StatusNeedsApply, nil
	}
	// Patched family names drop spaces, so match both spellings.
	compact := strings.ReplaceAll(s.font, " ", "")
	for _, line := range strings.Split(result.Stdout, "\n") {
		if strings.Contains(line, s.font) || strings.Contains(line, compact) {
			return engine.StatusSatisfied, nil
		}
	}
	return engine.StatusNeedsApply, nil
}

// Apply downloads and runs the installer script for this family.
func (s *FontStep) Apply(ctx engine.RunContext) error {
	if err := validation.ValidateFontName(s.font); err != nil {
		return err
	}
	if err := validation.ValidateInstallerURL(s.installerURL); err != nil {
		return err
	}

	result, err := s.runner.Run(ctx.Context(), "bash", "-c",
		fmt.Sprintf("curl -fsSL %s | bash -s -- %q", s.installerURL, s.font))
	if err != nil {
		return err
	}
	if !result.Success() {
		return fmt.Errorf("font installer for %s failed: %s", s.font, strings.TrimSpace(result.Stderr))
	}
	return nil
}

// Explain provides a one-line description.
func (s *FontStep) Explain() string {
	return fmt.Sprintf("Install the %s font family", s.font)
}

// Ensure FontStep implements engine.Step.
var _ engine.Step = (*FontStep)(nil)
