package editor

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/felixgeelhaar/devrig/internal/domain/engine"
	"github.com/felixgeelhaar/devrig/internal/domain/markfile"
	"github.com/felixgeelhaar/devrig/internal/domain/probe"
	"github.com/felixgeelhaar/devrig/internal/ports"
	"github.com/felixgeelhaar/devrig/internal/testutil/mocks"
)

func TestCompileDefaultsToInstallStepOnly(t *testing.T) {
	t.Parallel()

	runner := mocks.NewCommandRunner()
	fs := mocks.NewFileSystem()
	provider := NewProvider(runner, probe.New(runner, fs), markfile.NewWriter(fs))

	steps, err := provider.Compile(engine.NewCompileContext(map[string]interface{}{
		"editor": map[string]interface{}{},
	}))

	require.NoError(t, err)
	require.Len(t, steps, 1)
	assert.Equal(t, "editor:install:spacevim", steps[0].ID().String())
}

func TestCompileWithConfigBlockAddsSecondStep(t *testing.T) {
	t.Parallel()

	runner := mocks.NewCommandRunner()
	fs := mocks.NewFileSystem()
	provider := NewProvider(runner, probe.New(runner, fs), markfile.NewWriter(fs))

	steps, err := provider.Compile(engine.NewCompileContext(map[string]interface{}{
		"editor": map[string]interface{}{
			"config_marker": "spacevim",
			"config_block":  "[options]\n  colorscheme = \"gruvbox\"\n",
		},
	}))

	require.NoError(t, err)
	require.Len(t, steps, 2)
	assert.Equal(t, "editor:config:spacevim", steps[1].ID().String())
	assert.True(t, steps[1].Critical())
}

func TestInstallStepCheckUsesHomeDir(t *testing.T) {
	t.Parallel()

	runner := mocks.NewCommandRunner()
	fs := mocks.NewFileSystem()
	cfg := &Config{Name: "spacevim", Home: DefaultHome, InstallerURL: DefaultInstallerURL}
	step := NewInstallStep(cfg, true, runner, probe.New(runner, fs))
	runCtx := engine.NewRunContext(context.Background())

	status, err := step.Check(runCtx)
	require.NoError(t, err)
	assert.Equal(t, engine.StatusNeedsApply, status)

	fs.AddDir(ports.ExpandPath(DefaultHome))

	status, err = step.Check(runCtx)
	require.NoError(t, err)
	assert.Equal(t, engine.StatusSatisfied, status)
}

func TestInstallStepApplyRunsInstallerAndUpdate(t *testing.T) {
	t.Parallel()

	runner := mocks.NewCommandRunner()
	runner.AddSuccess("bash", []string{"-c", "curl -fsSL " + DefaultInstallerURL + " | bash"}, "")
	runner.AddSuccess("nvim", []string{"--headless", "+SPUpdate", "+qall"}, "")

	cfg := &Config{
		Name:         "spacevim",
		InstallerURL: DefaultInstallerURL,
		Home:         DefaultHome,
		Command:      "nvim",
		UpdateArgs:   []string{"--headless", "+SPUpdate", "+qall"},
	}
	step := NewInstallStep(cfg, true, runner, probe.New(runner, mocks.NewFileSystem()))

	require.NoError(t, step.Apply(engine.NewRunContext(context.Background())))
	require.Len(t, runner.Calls(), 2)
}

func TestInstallStepApplyStopsAfterInstallerFailure(t *testing.T) {
	t.Parallel()

	runner := mocks.NewCommandRunner()
	runner.AddFailure("bash", []string{"-c", "curl -fsSL " + DefaultInstallerURL + " | bash"}, "404")

	cfg := &Config{
		Name:         "spacevim",
		InstallerURL: DefaultInstallerURL,
		Home:         DefaultHome,
		Command:      "nvim",
		UpdateArgs:   []string{"--headless"},
	}
	step := NewInstallStep(cfg, true, runner, probe.New(runner, mocks.NewFileSystem()))

	err := step.Apply(engine.NewRunContext(context.Background()))
	require.Error(t, err)
	require.Len(t, runner.Calls(), 1)
}

func TestConfigBlockStepWritesOnce(t *testing.T) {
	t.Parallel()

	fs := mocks.NewFileSystem()
	cfg := &Config{
		Name:         "spacevim",
		ConfigFile:   "/home/dev/.SpaceVim.d/init.toml",
		ConfigMarker: "spacevim",
		ConfigBlock:  "[options]\n  colorscheme = \"gruvbox\"\n",
	}
	step := NewConfigBlockStep(cfg, markfile.NewWriter(fs))
	runCtx := engine.NewRunContext(context.Background())

	require.NoError(t, step.Apply(runCtx))
	first := fs.Content(cfg.ConfigFile)
	assert.Contains(t, first, "colorscheme")

	status, err := step.Check(runCtx)
	require.NoError(t, err)
	assert.Equal(t, engine.StatusSatisfied, status)

	require.NoError(t, step.Apply(runCtx))
	assert.Equal(t, first, fs.Content(cfg.ConfigFile))
}

func TestParseConfigRejectsNonStringUpdateArgs(t *testing.T) {
	t.Parallel()

	_, err := ParseConfig(map[string]interface{}{
		"update_args": []interface{}{"--headless", 1},
	})
	require.Error(t, err)
}
