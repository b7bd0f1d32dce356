package shell

import (
	"github.com/felixgeelhaar/devrig/internal/domain/engine"
	"github.com/felixgeelhaar/devrig/internal/domain/markfile"
)

// Provider compiles the shell section into managed-block steps.
type Provider struct {
	writer *markfile.Writer
}

// NewProvider creates a new shell Provider.
func NewProvider(writer *markfile.Writer) *Provider {
	return &Provider{writer: writer}
}

// Name returns the provider name.
func (p *Provider) Name() string {
	return "shell"
}

// Compile transforms shell configuration into executable steps.
func (p *Provider) Compile(ctx engine.CompileContext) ([]engine.Step, error) {
	rawConfig := ctx.GetSection("shell")
	if rawConfig == nil {
		return nil, nil
	}

	cfg, err := ParseConfig(rawConfig)
	if err != nil {
		return nil, err
	}

	if len(cfg.Env) == 0 && len(cfg.Path) == 0 {
		return nil, nil
	}

	return []engine.Step{NewEnvBlockStep(cfg, p.writer)}, nil
}

// Ensure Provider implements engine.Provider.
var _ engine.Provider = (*Provider)(nil)
