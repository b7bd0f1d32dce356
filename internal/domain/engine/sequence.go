package engine

import (
	"errors"
	"fmt"
)

// Errors for Sequence operations.
var (
	ErrDuplicateStep = errors.New("step with this ID already exists")
	ErrStepNotFound  = errors.New("no step with this ID")
)

// Sequence is the ordered list of steps for one provisioning run.
// Execution order is declaration order: later steps may assume the side
// effects of earlier ones, so there is no dependency graph to reorder them.
type Sequence struct {
	steps []Step
	index map[string]int
}

// NewSequence creates an empty Sequence.
func NewSequence() *Sequence {
	return &Sequence{
		steps: make([]Step, 0),
		index: make(map[string]int),
	}
}

// Add appends a step. Returns ErrDuplicateStep if a step with the same ID
// is already present.
func (s *Sequence) Add(step Step) error {
	id := step.ID().String()
	if _, exists := s.index[id]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicateStep, id)
	}
	s.index[id] = len(s.steps)
	s.steps = append(s.steps, step)
	return nil
}

// Len returns the number of steps.
func (s *Sequence) Len() int {
	return len(s.steps)
}

// IsEmpty returns true if there are no steps.
func (s *Sequence) IsEmpty() bool {
	return len(s.steps) == 0
}

// Steps returns all steps in declaration order.
func (s *Sequence) Steps() []Step {
	return s.steps
}

// IndexOf returns the position of the step with the given ID.
func (s *Sequence) IndexOf(id string) (int, error) {
	pos, ok := s.index[id]
	if !ok {
		return 0, fmt.Errorf("%w: %s", ErrStepNotFound, id)
	}
	return pos, nil
}
