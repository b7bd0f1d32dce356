package app

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/felixgeelhaar/devrig/internal/adapters/logging"
	"github.com/felixgeelhaar/devrig/internal/domain/engine"
)

const fullManifest = `
shell:
  env:
    EDITOR: vim
apt:
  packages: [git, curl]
python:
  version: 3.12.1
node:
  version: lts
rust:
  toolchain: stable
editor:
  config_marker: spacevim
  config_block: |
    [options]
      colorscheme = "gruvbox"
fonts:
  install: [FiraCode]
`

func writeManifest(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "devrig.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func newTestApp(out *bytes.Buffer) *Devrig {
	return New(out, logging.NewNopLogger())
}

func TestLoadAndCompileFullManifest(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer
	d := newTestApp(&out)

	manifest, err := d.Load(writeManifest(t, fullManifest))
	require.NoError(t, err)

	seq, err := d.Compile(manifest)
	require.NoError(t, err)

	ids := make([]string, 0, seq.Len())
	for _, step := range seq.Steps() {
		ids = append(ids, step.ID().String())
	}

	// Providers compile in registration order; steps within a provider keep
	// declaration order.
	assert.Equal(t, []string{
		"shell:env:shell-env",
		"apt:package:git",
		"apt:package:curl",
		"pyenv:install:pyenv",
		"pyenv:init:shell",
		"pyenv:python:3.12.1",
		"nvm:install:nvm",
		"nvm:init:shell",
		"nvm:node:lts",
		"rustup:install:rustup",
		"rustup:init:shell",
		"rustup:toolchain:stable",
		"editor:install:spacevim",
		"editor:config:spacevim",
		"fonts:install:FiraCode",
	}, ids)
}

func TestCompileHonorsPinsFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	manifestPath := filepath.Join(dir, "devrig.yaml")
	require.NoError(t, os.WriteFile(manifestPath, []byte("python:\n  version: latest\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "devrig.pins.toml"),
		[]byte("[pins]\npython = \"3.11.9\"\n"), 0o644))

	var out bytes.Buffer
	d := newTestApp(&out)

	manifest, err := d.Load(manifestPath)
	require.NoError(t, err)

	// Compilation succeeds without consulting any version list command;
	// "latest" stays symbolic in the step ID and resolves at run time.
	seq, err := d.Compile(manifest)
	require.NoError(t, err)

	_, err = seq.IndexOf("pyenv:python:latest")
	assert.NoError(t, err)
}

func TestLoadMissingManifest(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer
	d := newTestApp(&out)

	_, err := d.Load(filepath.Join(t.TempDir(), "devrig.yaml"))
	require.Error(t, err)
}

func TestPrintSteps(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer
	d := newTestApp(&out)

	manifest, err := d.Load(writeManifest(t, "apt:\n  packages: [git]\n"))
	require.NoError(t, err)
	seq, err := d.Compile(manifest)
	require.NoError(t, err)

	d.PrintSteps(seq)

	text := out.String()
	assert.Contains(t, text, "Steps (1, in order):")
	assert.Contains(t, text, "apt:package:git")
	assert.Contains(t, text, "Install the git package via apt")
}

func TestPrintReport(t *testing.T) {
	t.Parallel()

	report := &engine.Report{
		RunID:     "test-run",
		StartedAt: time.Now(),
		Duration:  1500 * time.Millisecond,
		State:     engine.RunFailed,
	}
	report.Results = append(report.Results,
		engine.NewRunResult(engine.MustNewStepID("apt:package:git"), engine.ResultSkipped),
		engine.NewRunResult(engine.MustNewStepID("apt:package:curl"), engine.ResultSucceeded),
		engine.NewRunResult(engine.MustNewStepID("apt:package:jq"), engine.ResultFailed).
			WithError(errors.New("network unreachable")),
	)

	var out bytes.Buffer
	d := newTestApp(&out)
	d.PrintReport(report)

	text := out.String()
	assert.Contains(t, text, "- apt:package:git (already satisfied)")
	assert.Contains(t, text, "✓ apt:package:curl")
	assert.Contains(t, text, "✗ apt:package:jq: network unreachable")
	assert.Contains(t, text, "Failed: 3 steps, 1 applied, 1 satisfied, 1 failed")
}
