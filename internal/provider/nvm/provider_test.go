package nvm

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/felixgeelhaar/devrig/internal/domain/engine"
	"github.com/felixgeelhaar/devrig/internal/domain/markfile"
	"github.com/felixgeelhaar/devrig/internal/domain/probe"
	"github.com/felixgeelhaar/devrig/internal/testutil/mocks"
)

func TestCompileProducesInstallInitAndNodeSteps(t *testing.T) {
	t.Parallel()

	runner := mocks.NewCommandRunner()
	fs := mocks.NewFileSystem()
	provider := NewProvider(runner, probe.New(runner, fs), markfile.NewWriter(fs))

	steps, err := provider.Compile(engine.NewCompileContext(map[string]interface{}{
		"node": map[string]interface{}{"version": "lts"},
	}))

	require.NoError(t, err)
	require.Len(t, steps, 3)
	assert.Equal(t, "nvm:install:nvm", steps[0].ID().String())
	assert.Equal(t, "nvm:init:shell", steps[1].ID().String())
	assert.Equal(t, "nvm:node:lts", steps[2].ID().String())
}

func TestCompileNormalizesLTSAlias(t *testing.T) {
	t.Parallel()

	runner := mocks.NewCommandRunner()
	fs := mocks.NewFileSystem()
	provider := NewProvider(runner, probe.New(runner, fs), markfile.NewWriter(fs))

	steps, err := provider.Compile(engine.NewCompileContext(map[string]interface{}{
		"node": map[string]interface{}{"version": "lts/*"},
	}))

	require.NoError(t, err)
	require.Len(t, steps, 3)
	assert.Equal(t, "nvm:node:lts", steps[2].ID().String())
}

func TestInstallStepApplySuppressesProfileEdit(t *testing.T) {
	t.Parallel()

	runner := mocks.NewCommandRunner()
	runner.AddSuccess("bash", []string{"-c", "curl -o- -fsSL " + InstallerURL + " | bash"}, "")
	fs := mocks.NewFileSystem()
	step := NewInstallStep(true, runner, probe.New(runner, fs))

	require.NoError(t, step.Apply(engine.NewRunContext(context.Background())))

	calls := runner.Calls()
	require.Len(t, calls, 1)
	// The installer must not edit shell init files; the init block step does.
	assert.Equal(t, []string{"PROFILE=/dev/null"}, calls[0].Env)
}

func TestNodeStepCheck(t *testing.T) {
	t.Parallel()

	whichLTS := []string{"-c", nvmInvocation("which --silent lts/*")}

	t.Run("installed version is satisfied", func(t *testing.T) {
		t.Parallel()
		runner := mocks.NewCommandRunner()
		runner.AddSuccess("bash", whichLTS, "/home/dev/.nvm/versions/node/v22.11.0/bin/node\n")
		step := NewNodeStep("lts", true, runner)

		status, err := step.Check(engine.NewRunContext(context.Background()))
		require.NoError(t, err)
		assert.Equal(t, engine.StatusSatisfied, status)
	})

	t.Run("missing version needs apply", func(t *testing.T) {
		t.Parallel()
		runner := mocks.NewCommandRunner()
		runner.AddFailure("bash", whichLTS, "N/A: version \"lts/*\" is not yet installed")
		step := NewNodeStep("lts", true, runner)

		status, err := step.Check(engine.NewRunContext(context.Background()))
		require.NoError(t, err)
		assert.Equal(t, engine.StatusNeedsApply, status)
	})
}

func TestNodeStepApplyInstallsAndSetsDefault(t *testing.T) {
	t.Parallel()

	runner := mocks.NewCommandRunner()
	runner.AddSuccess("bash", []string{"-c", nvmInvocation("install --lts")}, "")
	runner.AddSuccess("bash", []string{"-c", nvmInvocation("alias default lts/*")}, "")
	step := NewNodeStep("lts", true, runner)

	require.NoError(t, step.Apply(engine.NewRunContext(context.Background())))
	require.Len(t, runner.Calls(), 2)
}

func TestNodeStepApplyPinnedVersion(t *testing.T) {
	t.Parallel()

	runner := mocks.NewCommandRunner()
	runner.AddSuccess("bash", []string{"-c", nvmInvocation("install 22.1.0")}, "")
	runner.AddSuccess("bash", []string{"-c", nvmInvocation("alias default 22.1.0")}, "")
	step := NewNodeStep("22.1.0", true, runner)

	require.NoError(t, step.Apply(engine.NewRunContext(context.Background())))
}

func TestNodeStepApplySurfacesInstallFailure(t *testing.T) {
	t.Parallel()

	runner := mocks.NewCommandRunner()
	runner.AddFailure("bash", []string{"-c", nvmInvocation("install --lts")}, "download failed")
	step := NewNodeStep("lts", true, runner)

	err := step.Apply(engine.NewRunContext(context.Background()))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "download failed")
	require.Len(t, runner.Calls(), 1)
}

func TestInitBlockStepSourcesNvmScript(t *testing.T) {
	t.Parallel()

	fs := mocks.NewFileSystem()
	step := NewInitBlockStep("/home/dev/.bashrc", markfile.NewWriter(fs))

	require.NoError(t, step.Apply(engine.NewRunContext(context.Background())))

	content := fs.Content("/home/dev/.bashrc")
	assert.Contains(t, content, `export NVM_DIR="$HOME/.nvm"`)
	assert.Contains(t, content, markfile.StartMarker("nvm"))
}
