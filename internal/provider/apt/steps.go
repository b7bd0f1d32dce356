package apt

import (
	"fmt"
	"strings"

	"github.com/felixgeelhaar/devrig/internal/domain/engine"
	"github.com/felixgeelhaar/devrig/internal/ports"
	"github.com/felixgeelhaar/devrig/internal/validation"
)

// PackageStep installs one apt package.
type PackageStep struct {
	pkg      string
	id       engine.StepID
	critical bool
	runner   ports.CommandRunner
}

// NewPackageStep creates a new PackageStep.
func NewPackageStep(pkg string, critical bool, runner ports.CommandRunner) *PackageStep {
	return &PackageStep{
		pkg:      pkg,
		id:       engine.MustNewStepID("apt:package:" + pkg),
		critical: critical,
		runner:   runner,
	}
}

// ID returns the step identifier.
func (s *PackageStep) ID() engine.StepID {
	return s.id
}

// Critical reports whether a failure halts the run.
func (s *PackageStep) Critical() bool {
	return s.critical
}

// Check determines if the package is already installed.
func (s *PackageStep) Check(ctx engine.RunContext) (engine.CheckStatus, error) {
	result, err := s.runner.Run(ctx.Context(), "dpkg-query", "-W", "-f=${Package}\t${db:Status-Status}\n", s.pkg)
	if err != nil {
		return engine.StatusUnknown, err
	}

	// dpkg-query exits non-zero when the package is not known
	if !result.Success() {
		return engine.StatusNeedsApply, nil
	}

	if strings.Contains(result.Stdout, "installed") {
		return engine.StatusSatisfied, nil
	}
	return engine.StatusNeedsApply, nil
}

// Apply installs the package.
func (s *PackageStep) Apply(ctx engine.RunContext) error {
	if err := validation.ValidatePackageName(s.pkg); err != nil {
		return fmt.Errorf("invalid package name: %w", err)
	}

	result, err := s.runner.Run(ctx.Context(), "sudo", "apt-get", "install", "-y", s.pkg)
	if err != nil {
		return err
	}
	if !result.Success() {
		return fmt.Errorf("apt-get install %s failed: %s", s.pkg, strings.TrimSpace(result.Stderr))
	}
	return nil
}

// Explain provides a one-line description.
func (s *PackageStep) Explain() string {
	return fmt.Sprintf("Install the %s package via apt", s.pkg)
}

// Ensure PackageStep implements engine.Step.
var _ engine.Step = (*PackageStep)(nil)
