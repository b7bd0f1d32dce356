package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSequenceAddPreservesOrder(t *testing.T) {
	t.Parallel()

	seq := NewSequence()
	require.NoError(t, seq.Add(newFakeStep("apt:install:git", StatusNeedsApply)))
	require.NoError(t, seq.Add(newFakeStep("apt:install:jq", StatusNeedsApply)))
	require.NoError(t, seq.Add(newFakeStep("pyenv:install:pyenv", StatusNeedsApply)))

	assert.Equal(t, 3, seq.Len())
	assert.False(t, seq.IsEmpty())

	ids := make([]string, 0, seq.Len())
	for _, step := range seq.Steps() {
		ids = append(ids, step.ID().String())
	}
	assert.Equal(t, []string{"apt:install:git", "apt:install:jq", "pyenv:install:pyenv"}, ids)
}

func TestSequenceRejectsDuplicateIDs(t *testing.T) {
	t.Parallel()

	seq := NewSequence()
	require.NoError(t, seq.Add(newFakeStep("apt:install:git", StatusNeedsApply)))

	err := seq.Add(newFakeStep("apt:install:git", StatusNeedsApply))
	require.ErrorIs(t, err, ErrDuplicateStep)
	assert.Equal(t, 1, seq.Len())
}

func TestSequenceIndexOf(t *testing.T) {
	t.Parallel()

	seq := NewSequence()
	require.NoError(t, seq.Add(newFakeStep("apt:install:git", StatusNeedsApply)))
	require.NoError(t, seq.Add(newFakeStep("apt:install:jq", StatusNeedsApply)))

	pos, err := seq.IndexOf("apt:install:jq")
	require.NoError(t, err)
	assert.Equal(t, 1, pos)

	_, err = seq.IndexOf("apt:install:missing")
	assert.ErrorIs(t, err, ErrStepNotFound)
}
