package main

import (
	"bytes"
	"context"
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/felixgeelhaar/devrig/internal/domain/config"
	"github.com/felixgeelhaar/devrig/internal/domain/engine"
	"github.com/felixgeelhaar/devrig/internal/ports"
)

// fakeClient records calls and plays back canned answers.
type fakeClient struct {
	loadErr    error
	compileErr error
	runErr     error
	report     *engine.Report

	loadedPath  string
	ranOpts     engine.Options
	listedSteps bool
	printedRun  bool
	runInvoked  bool
}

func (f *fakeClient) Load(path string) (*config.Manifest, error) {
	f.loadedPath = path
	if f.loadErr != nil {
		return nil, f.loadErr
	}
	return &config.Manifest{}, nil
}

func (f *fakeClient) Compile(_ *config.Manifest) (*engine.Sequence, error) {
	if f.compileErr != nil {
		return nil, f.compileErr
	}
	return engine.NewSequence(), nil
}

func (f *fakeClient) Run(_ context.Context, _ *engine.Sequence, opts engine.Options) (*engine.Report, error) {
	f.runInvoked = true
	f.ranOpts = opts
	return f.report, f.runErr
}

func (f *fakeClient) PrintSteps(_ *engine.Sequence) { f.listedSteps = true }
func (f *fakeClient) PrintReport(_ *engine.Report) { f.printedRun = true }

// withFakeClient swaps the client factory for the duration of one test.
func withFakeClient(t *testing.T, fake *fakeClient) {
	t.Helper()
	orig := newDevrig
	newDevrig = func(_ io.Writer, _ ports.Logger) devrigClient {
		return fake
	}
	t.Cleanup(func() {
		newDevrig = orig
		runDryRun = false
		runFromStep = ""
		runList = false
		cfgFile = ""
	})
}

func executeRun(t *testing.T, args ...string) error {
	t.Helper()
	rootCmd.SetOut(new(bytes.Buffer))
	rootCmd.SetErr(new(bytes.Buffer))
	rootCmd.SetArgs(append([]string{"run"}, args...))
	return rootCmd.Execute()
}

func TestRunCommandExecutesSequence(t *testing.T) {
	fake := &fakeClient{report: &engine.Report{State: engine.RunCompleted}}
	withFakeClient(t, fake)

	require.NoError(t, executeRun(t))
	assert.True(t, fake.runInvoked)
	assert.True(t, fake.printedRun)
	assert.False(t, fake.listedSteps)
}

func TestRunCommandPassesFlags(t *testing.T) {
	fake := &fakeClient{report: &engine.Report{State: engine.RunCompleted}}
	withFakeClient(t, fake)

	require.NoError(t, executeRun(t, "--dry-run", "--from-step", "apt:package:git", "--config", "custom.yaml"))

	assert.True(t, fake.ranOpts.DryRun)
	assert.Equal(t, "apt:package:git", fake.ranOpts.FromStep)
	assert.Equal(t, "custom.yaml", fake.loadedPath)
}

func TestRunCommandListSkipsExecution(t *testing.T) {
	fake := &fakeClient{}
	withFakeClient(t, fake)

	require.NoError(t, executeRun(t, "--list"))
	assert.True(t, fake.listedSteps)
	assert.False(t, fake.runInvoked)
}

func TestRunCommandSurfacesLoadError(t *testing.T) {
	fake := &fakeClient{loadErr: config.NewConfigNotFoundError("devrig.yaml")}
	withFakeClient(t, fake)

	err := executeRun(t)
	var userErr *config.UserError
	require.ErrorAs(t, err, &userErr)
	assert.False(t, fake.runInvoked)
}

func TestRunCommandPropagatesCriticalFailure(t *testing.T) {
	critical := &engine.CriticalFailureError{
		StepID: engine.MustNewStepID("apt:package:git"),
		Index:  3,
		Err:    errors.New("boom"),
	}
	fake := &fakeClient{
		report: &engine.Report{State: engine.RunFailed},
		runErr: critical,
	}
	withFakeClient(t, fake)

	err := executeRun(t)

	var got *engine.CriticalFailureError
	require.ErrorAs(t, err, &got)
	assert.Equal(t, 3, got.ExitCode())
	// The partial report still gets printed.
	assert.True(t, fake.printedRun)
}
