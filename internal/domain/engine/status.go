package engine

// CheckStatus is the outcome of a step's idempotency pre-check.
type CheckStatus string

const (
	// StatusSatisfied indicates the step's desired state is already met.
	StatusSatisfied CheckStatus = "satisfied"
	// StatusNeedsApply indicates the step needs to be applied.
	StatusNeedsApply CheckStatus = "needs-apply"
	// StatusUnknown indicates the step's state could not be determined.
	// The runner treats unknown conservatively, as needs-apply.
	StatusUnknown CheckStatus = "unknown"
)

// String returns the string representation of the check status.
func (s CheckStatus) String() string {
	return string(s)
}

// ResultStatus is the terminal status of a step within one run.
type ResultStatus string

const (
	// ResultSkipped indicates the pre-check found the step already satisfied.
	ResultSkipped ResultStatus = "skipped"
	// ResultSucceeded indicates the step's action completed successfully.
	ResultSucceeded ResultStatus = "succeeded"
	// ResultFailed indicates the step's action returned an error.
	ResultFailed ResultStatus = "failed"
	// ResultWouldApply indicates a dry run determined the step would run.
	ResultWouldApply ResultStatus = "would-apply"
)

// String returns the string representation of the result status.
func (s ResultStatus) String() string {
	return string(s)
}
