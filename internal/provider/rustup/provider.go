package rustup

import (
	"github.com/felixgeelhaar/devrig/internal/domain/engine"
	"github.com/felixgeelhaar/devrig/internal/domain/markfile"
	"github.com/felixgeelhaar/devrig/internal/domain/probe"
	"github.com/felixgeelhaar/devrig/internal/ports"
)

// Provider compiles the rust section into rustup steps: install rustup,
// write the cargo env block, then install the requested toolchain.
type Provider struct {
	runner ports.CommandRunner
	probe  *probe.Probe
	writer *markfile.Writer
}

// NewProvider creates a new rustup Provider.
func NewProvider(runner ports.CommandRunner, pr *probe.Probe, writer *markfile.Writer) *Provider {
	return &Provider{
		runner: runner,
		probe:  pr,
		writer: writer,
	}
}

// Name returns the provider name.
func (p *Provider) Name() string {
	return "rustup"
}

// Compile transforms rust configuration into executable steps.
func (p *Provider) Compile(ctx engine.CompileContext) ([]engine.Step, error) {
	rawConfig := ctx.GetSection("rust")
	if rawConfig == nil {
		return nil, nil
	}

	cfg, err := ParseConfig(rawConfig)
	if err != nil {
		return nil, err
	}

	critical := !cfg.BestEffort
	return []engine.Step{
		NewInstallStep(critical, p.runner, p.probe),
		NewInitBlockStep(cfg.InitFile, p.writer),
		NewToolchainStep(cfg.Toolchain, critical, p.runner),
	}, nil
}

// Ensure Provider implements engine.Provider.
var _ engine.Provider = (*Provider)(nil)
