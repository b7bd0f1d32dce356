// Package app wires adapters, providers and the engine into the devrig
// application.
package app

import (
	"context"
	"fmt"
	"io"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/felixgeelhaar/devrig/internal/adapters/command"
	"github.com/felixgeelhaar/devrig/internal/adapters/filesystem"
	"github.com/felixgeelhaar/devrig/internal/domain/config"
	"github.com/felixgeelhaar/devrig/internal/domain/engine"
	"github.com/felixgeelhaar/devrig/internal/domain/markfile"
	"github.com/felixgeelhaar/devrig/internal/domain/probe"
	"github.com/felixgeelhaar/devrig/internal/domain/version"
	"github.com/felixgeelhaar/devrig/internal/ports"
	"github.com/felixgeelhaar/devrig/internal/provider/apt"
	"github.com/felixgeelhaar/devrig/internal/provider/editor"
	"github.com/felixgeelhaar/devrig/internal/provider/fonts"
	"github.com/felixgeelhaar/devrig/internal/provider/nvm"
	"github.com/felixgeelhaar/devrig/internal/provider/pyenv"
	"github.com/felixgeelhaar/devrig/internal/provider/rustup"
	"github.com/felixgeelhaar/devrig/internal/provider/shell"
)

// Devrig is the main application orchestrator.
type Devrig struct {
	runner ports.CommandRunner
	fs     ports.FileSystem
	probe  *probe.Probe
	writer *markfile.Writer
	loader *config.Loader
	logger ports.Logger
	out    io.Writer
}

// New creates a new Devrig application over the real adapters.
func New(out io.Writer, logger ports.Logger) *Devrig {
	cmdRunner := command.NewRealRunner()
	fs := filesystem.NewRealFileSystem()

	return &Devrig{
		runner: cmdRunner,
		fs:     fs,
		probe:  probe.New(cmdRunner, fs),
		writer: markfile.NewWriter(fs),
		loader: config.NewLoader(),
		logger: logger,
		out:    out,
	}
}

// Load reads the manifest at path, or the default search path when path is
// empty.
func (d *Devrig) Load(path string) (*config.Manifest, error) {
	if path == "" {
		path = config.DefaultPath()
	}
	return d.loader.Load(path)
}

// Compile turns the manifest into the ordered step sequence. Version pins are
// read from the pins file next to the manifest; unpinned tools resolve via
// the tool's own version list command.
func (d *Devrig) Compile(manifest *config.Manifest) (*engine.Sequence, error) {
	resolver, err := version.LoadPins(manifest.PinsPath(), d.commandResolver())
	if err != nil {
		return nil, err
	}

	registry := engine.NewRegistry()
	registry.Register(shell.NewProvider(d.writer))
	registry.Register(apt.NewProvider(d.runner))
	registry.Register(pyenv.NewProvider(d.runner, d.probe, d.writer, resolver))
	registry.Register(nvm.NewProvider(d.runner, d.probe, d.writer))
	registry.Register(rustup.NewProvider(d.runner, d.probe, d.writer))
	registry.Register(editor.NewProvider(d.runner, d.probe, d.writer))
	registry.Register(fonts.NewProvider(d.runner))

	return registry.Compile(engine.NewCompileContext(manifest.Sections()))
}

// Run executes the sequence and prints a report. The returned error is the
// engine's run error; callers map it to an exit code.
func (d *Devrig) Run(ctx context.Context, seq *engine.Sequence, opts engine.Options) (*engine.Report, error) {
	if osr := d.probe.HostOSRelease(); osr.PrettyName != "" {
		d.logger.Info(ctx, "host detected", ports.F("os", osr.PrettyName))
	}

	runner := engine.NewRunner(d.logger)
	return runner.Run(ctx, seq, opts)
}

// PrintSteps lists the compiled sequence without running it.
func (d *Devrig) PrintSteps(seq *engine.Sequence) {
	d.printf("Steps (%d, in order):\n", seq.Len())
	for i, step := range seq.Steps() {
		marker := " "
		if step.Critical() {
			marker = "!"
		}
		d.printf("  %2d %s %s\n", i+1, marker, step.ID().String())
		d.printf("       %s\n", step.Explain())
	}
}

// PrintReport outputs the run report.
func (d *Devrig) PrintReport(report *engine.Report) {
	for _, res := range report.Results {
		switch res.Status() {
		case engine.ResultSucceeded:
			d.printf("  ✓ %s (%s)\n", res.StepID().String(), res.Duration().Round(time.Millisecond))
		case engine.ResultSkipped:
			d.printf("  - %s (already satisfied)\n", res.StepID().String())
		case engine.ResultWouldApply:
			d.printf("  + %s: %s\n", res.StepID().String(), res.Message())
		case engine.ResultFailed:
			d.printf("  ✗ %s: %v\n", res.StepID().String(), res.Error())
		}
	}

	title := cases.Title(language.English)
	summary := report.Summary()
	d.printf("\n%s: %d steps, %d applied, %d satisfied, %d failed",
		title.String(string(report.State)),
		summary.Total, summary.Succeeded, summary.Skipped, summary.Failed)
	if summary.WouldApply > 0 {
		d.printf(", %d would apply", summary.WouldApply)
	}
	d.printf(" (%s)\n", report.Duration.Round(time.Millisecond))
}

// commandResolver builds the fallback resolver that asks each tool manager
// for its available versions.
func (d *Devrig) commandResolver() version.Resolver {
	return version.NewCommandResolver(d.runner, map[string]version.ListCommand{
		"python": {
			Command: ports.ExpandPath(pyenv.Root + "/bin/pyenv"),
			Args:    []string{"install", "--list"},
		},
	})
}

func (d *Devrig) printf(format string, args ...interface{}) {
	fmt.Fprintf(d.out, format, args...)
}
