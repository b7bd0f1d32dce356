package fonts

import (
	"github.com/felixgeelhaar/devrig/internal/domain/engine"
	"github.com/felixgeelhaar/devrig/internal/ports"
)

// Provider compiles the fonts section into one step per font family.
type Provider struct {
	runner ports.CommandRunner
}

// NewProvider creates a new fonts Provider.
func NewProvider(runner ports.CommandRunner) *Provider {
	return &Provider{runner: runner}
}

// Name returns the provider name.
func (p *Provider) Name() string {
	return "fonts"
}

// Compile transforms fonts configuration into executable steps.
func (p *Provider) Compile(ctx engine.CompileContext) ([]engine.Step, error) {
	rawConfig := ctx.GetSection("fonts")
	if rawConfig == nil {
		return nil, nil
	}

	cfg, err := ParseConfig(rawConfig)
	if err != nil {
		return nil, err
	}

	critical := !cfg.BestEffort
	steps := make([]engine.Step, 0, len(cfg.Fonts))
	for _, font := range cfg.Fonts {
		steps = append(steps, NewFontStep(font, cfg.InstallerURL, critical, p.runner))
	}
	return steps, nil
}

// Ensure Provider implements engine.Provider.
var _ engine.Provider = (*Provider)(nil)
