package pyenv

import (
	"github.com/felixgeelhaar/devrig/internal/domain/engine"
	"github.com/felixgeelhaar/devrig/internal/domain/markfile"
	"github.com/felixgeelhaar/devrig/internal/domain/probe"
	"github.com/felixgeelhaar/devrig/internal/domain/version"
	"github.com/felixgeelhaar/devrig/internal/ports"
)

// Provider compiles the python section into pyenv steps: install pyenv,
// write its shell init block, then install the requested CPython.
type Provider struct {
	runner   ports.CommandRunner
	probe    *probe.Probe
	writer   *markfile.Writer
	resolver version.Resolver
}

// NewProvider creates a new pyenv Provider.
func NewProvider(runner ports.CommandRunner, pr *probe.Probe, writer *markfile.Writer, resolver version.Resolver) *Provider {
	return &Provider{
		runner:   runner,
		probe:    pr,
		writer:   writer,
		resolver: resolver,
	}
}

// Name returns the provider name.
func (p *Provider) Name() string {
	return "pyenv"
}

// Compile transforms python configuration into executable steps.
func (p *Provider) Compile(ctx engine.CompileContext) ([]engine.Step, error) {
	rawConfig := ctx.GetSection("python")
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
		NewPythonStep(cfg.Version, critical, p.runner, p.resolver),
	}, nil
}

// Ensure Provider implements engine.Provider.
var _ engine.Provider = (*Provider)(nil)
