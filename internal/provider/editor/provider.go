package editor

import (
	"github.com/felixgeelhaar/devrig/internal/domain/engine"
	"github.com/felixgeelhaar/devrig/internal/domain/markfile"
	"github.com/felixgeelhaar/devrig/internal/domain/probe"
	"github.com/felixgeelhaar/devrig/internal/ports"
)

// Provider compiles the editor section into installation and config steps.
type Provider struct {
	runner ports.CommandRunner
	probe  *probe.Probe
	writer *markfile.Writer
}

// NewProvider creates a new editor Provider.
func NewProvider(runner ports.CommandRunner, pr *probe.Probe, writer *markfile.Writer) *Provider {
	return &Provider{
		runner: runner,
		probe:  pr,
		writer: writer,
	}
}

// Name returns the provider name.
func (p *Provider) Name() string {
	return "editor"
}

// Compile transforms editor configuration into executable steps.
func (p *Provider) Compile(ctx engine.CompileContext) ([]engine.Step, error) {
	rawConfig := ctx.GetSection("editor")
	if rawConfig == nil {
		return nil, nil
	}

	cfg, err := ParseConfig(rawConfig)
	if err != nil {
		return nil, err
	}

	critical := !cfg.BestEffort
	steps := []engine.Step{
		NewInstallStep(cfg, critical, p.runner, p.probe),
	}
	if cfg.ConfigMarker != "" && cfg.ConfigBlock != "" {
		steps = append(steps, NewConfigBlockStep(cfg, p.writer))
	}
	return steps, nil
}

// Ensure Provider implements engine.Provider.
var _ engine.Provider = (*Provider)(nil)
