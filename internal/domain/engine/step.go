// Package engine provides the ordered, idempotent step execution core.
package engine

import "context"

// Step represents one idempotent unit of provisioning work.
// Each step can check whether it is already satisfied and apply its action.
type Step interface {
	// ID returns the unique identifier for this step.
	ID() StepID

	// Critical reports whether a failure of this step must halt the run.
	Critical() bool

	// Check determines the current status of this step. It must be a
	// read-only inspection and must treat an absent tool as needs-apply,
	// not as an error.
	Check(ctx RunContext) (CheckStatus, error)

	// Apply executes the step's action. Running it when Check already
	// reported satisfied must be harmless.
	Apply(ctx RunContext) error

	// Explain returns a one-line human-readable description of the step.
	Explain() string
}

// RunContext carries per-run context into step Check and Apply.
type RunContext struct {
	ctx    context.Context
	dryRun bool
}

// NewRunContext creates a new RunContext with the given context.
func NewRunContext(ctx context.Context) RunContext {
	return RunContext{ctx: ctx}
}

// Context returns the underlying context.Context.
func (r RunContext) Context() context.Context {
	return r.ctx
}

// DryRun returns whether this is a dry-run execution.
func (r RunContext) DryRun() bool {
	return r.dryRun
}

// WithDryRun returns a new RunContext with the dry-run flag set.
func (r RunContext) WithDryRun(dryRun bool) RunContext {
	return RunContext{ctx: r.ctx, dryRun: dryRun}
}
