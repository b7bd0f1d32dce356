package engine

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeProvider compiles a fixed step list.
type fakeProvider struct {
	name  string
	steps []Step
	err   error
}

func (p *fakeProvider) Name() string { return p.name }

func (p *fakeProvider) Compile(_ CompileContext) ([]Step, error) {
	return p.steps, p.err
}

func TestRegistryCompileOrdersByRegistration(t *testing.T) {
	t.Parallel()

	registry := NewRegistry()
	registry.Register(&fakeProvider{name: "shell", steps: []Step{
		newFakeStep("shell:env:shell-env", StatusNeedsApply),
	}})
	registry.Register(&fakeProvider{name: "apt", steps: []Step{
		newFakeStep("apt:install:git", StatusNeedsApply),
		newFakeStep("apt:install:jq", StatusNeedsApply),
	}})

	seq, err := registry.Compile(NewCompileContext(nil))

	require.NoError(t, err)
	require.Equal(t, 3, seq.Len())
	assert.Equal(t, "shell:env:shell-env", seq.Steps()[0].ID().String())
	assert.Equal(t, "apt:install:git", seq.Steps()[1].ID().String())
}

func TestRegistryCompileWrapsProviderErrors(t *testing.T) {
	t.Parallel()

	cause := errors.New("packages must be a list")
	registry := NewRegistry()
	registry.Register(&fakeProvider{name: "apt", err: cause})

	_, err := registry.Compile(NewCompileContext(nil))

	require.Error(t, err)
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), `provider "apt"`)
}

func TestRegistryCompileRejectsCrossProviderDuplicates(t *testing.T) {
	t.Parallel()

	registry := NewRegistry()
	registry.Register(&fakeProvider{name: "a", steps: []Step{
		newFakeStep("apt:install:git", StatusNeedsApply),
	}})
	registry.Register(&fakeProvider{name: "b", steps: []Step{
		newFakeStep("apt:install:git", StatusNeedsApply),
	}})

	_, err := registry.Compile(NewCompileContext(nil))
	assert.ErrorIs(t, err, ErrDuplicateStep)
}

func TestCompileContextGetSection(t *testing.T) {
	t.Parallel()

	ctx := NewCompileContext(map[string]interface{}{
		"apt":    map[string]interface{}{"packages": []interface{}{"git"}},
		"broken": "not a map",
	})

	assert.NotNil(t, ctx.GetSection("apt"))
	assert.Nil(t, ctx.GetSection("missing"))
	assert.Nil(t, ctx.GetSection("broken"))

	empty := NewCompileContext(nil)
	assert.Nil(t, empty.GetSection("apt"))
}
