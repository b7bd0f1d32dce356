package engine

import (
	"fmt"
)

// Error codes for engine operations.
const (
	ErrCodeProviderFailed = "PROVIDER_FAILED"
	ErrCodeCheckFailed    = "CHECK_FAILED"
	ErrCodeApplyFailed    = "APPLY_FAILED"
)

// StepError represents a user-facing engine error with an actionable suggestion.
type StepError struct {
	Code       string
	Message    string
	StepID     string
	Suggestion string
	Underlying error
}

// Error returns the formatted error message.
func (e *StepError) Error() string {
	if e.StepID != "" {
		return fmt.Sprintf("step %q: %s", e.StepID, e.Message)
	}
	return e.Message
}

// Unwrap returns the underlying error for error chain support.
func (e *StepError) Unwrap() error {
	return e.Underlying
}

// NewApplyFailedError creates an error for a step action failure.
func NewApplyFailedError(stepID string, err error) *StepError {
	return &StepError{
		Code:       ErrCodeApplyFailed,
		Message:    "step action failed",
		StepID:     stepID,
		Suggestion: "Inspect the captured output; the wrapped installer reported a failure.",
		Underlying: err,
	}
}

// CriticalFailureError is returned when a critical step fails and the run is
// terminated. Index is the 1-based position of the failed step, which also
// serves as the process exit code.
type CriticalFailureError struct {
	StepID StepID
	Index  int
	Err    error
}

// Error returns the formatted error message.
func (e *CriticalFailureError) Error() string {
	return fmt.Sprintf("critical step %q (step %d) failed: %v", e.StepID.String(), e.Index, e.Err)
}

// Unwrap returns the wrapped action error.
func (e *CriticalFailureError) Unwrap() error {
	return e.Err
}

// ExitCode returns the step-indexed process exit code. Codes above 125
// collide with shell conventions, so deep sequences are capped.
func (e *CriticalFailureError) ExitCode() int {
	if e.Index > 125 {
		return 125
	}
	if e.Index < 1 {
		return 1
	}
	return e.Index
}
