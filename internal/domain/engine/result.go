package engine

import (
	"time"
)

// RunResult captures the outcome of one step within one provisioning run.
// Results are immutable after creation; the runner owns the ordered list.
type RunResult struct {
	stepID    StepID
	status    ResultStatus
	timestamp time.Time
	duration  time.Duration
	message   string
	err       error
}

// NewRunResult creates a new RunResult stamped with the current time.
func NewRunResult(stepID StepID, status ResultStatus) RunResult {
	return RunResult{
		stepID:    stepID,
		status:    status,
		timestamp: time.Now(),
	}
}

// StepID returns the ID of the step this result belongs to.
func (r RunResult) StepID() StepID {
	return r.stepID
}

// Status returns the terminal status of the step.
func (r RunResult) Status() ResultStatus {
	return r.status
}

// Timestamp returns when the result was recorded.
func (r RunResult) Timestamp() time.Time {
	return r.timestamp
}

// Duration returns how long the step's action took.
func (r RunResult) Duration() time.Duration {
	return r.duration
}

// Message returns an optional human-readable note (e.g. captured stderr).
func (r RunResult) Message() string {
	return r.message
}

// Error returns the action error, if the step failed.
func (r RunResult) Error() error {
	return r.err
}

// Failed returns true if the step's action failed.
func (r RunResult) Failed() bool {
	return r.status == ResultFailed
}

// WithDuration returns a copy with duration set.
func (r RunResult) WithDuration(d time.Duration) RunResult {
	r.duration = d
	return r
}

// WithMessage returns a copy with the message set.
func (r RunResult) WithMessage(msg string) RunResult {
	r.message = msg
	return r
}

// WithError returns a copy with the error set.
func (r RunResult) WithError(err error) RunResult {
	r.err = err
	return r
}
