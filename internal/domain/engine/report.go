package engine

import (
	"time"
)

// Summary provides aggregate statistics for one run.
type Summary struct {
	Total      int
	Skipped    int
	Succeeded  int
	Failed     int
	WouldApply int
}

// Report is the record of one provisioning run: the ordered result list plus
// run-level metadata. It is owned exclusively by the Runner for the duration
// of a run.
type Report struct {
	RunID     string
	StartedAt time.Time
	Duration  time.Duration
	State     RunState
	Results   []RunResult
}

// append records the next step result.
func (r *Report) append(result RunResult) {
	r.Results = append(r.Results, result)
}

// finish stamps the run's terminal state and duration.
func (r *Report) finish(state RunState) {
	r.State = state
	r.Duration = time.Since(r.StartedAt)
}

// Completed returns true if the run processed all steps.
func (r *Report) Completed() bool {
	return r.State == RunCompleted
}

// Summary returns aggregate statistics.
func (r *Report) Summary() Summary {
	summary := Summary{Total: len(r.Results)}
	for _, res := range r.Results {
		switch res.Status() {
		case ResultSkipped:
			summary.Skipped++
		case ResultSucceeded:
			summary.Succeeded++
		case ResultFailed:
			summary.Failed++
		case ResultWouldApply:
			summary.WouldApply++
		}
	}
	return summary
}
