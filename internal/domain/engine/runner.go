package engine

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/felixgeelhaar/devrig/internal/ports"
)

// Options configure one provisioning run.
type Options struct {
	// DryRun reports what would be applied without running any action.
	DryRun bool
	// FromStep resumes the sequence at the step with this ID.
	FromStep string
}

// Runner executes a Sequence strictly in order, one step at a time.
// A critical step failure terminates the run immediately; non-critical
// failures are recorded and the run continues. No retries are performed:
// silently re-running multi-minute installer scripts risks double-install
// side effects, so transient failures surface to the user.
type Runner struct {
	logger ports.Logger
}

// NewRunner creates a new Runner.
func NewRunner(logger ports.Logger) *Runner {
	return &Runner{logger: logger}
}

// Run executes the sequence and returns the ordered result report.
// On a critical failure the report holds exactly the results of the steps
// attempted so far and the returned error is a *CriticalFailureError.
func (r *Runner) Run(ctx context.Context, seq *Sequence, opts Options) (*Report, error) {
	machine, err := newRunMachine()
	if err != nil {
		return nil, err
	}
	defer machine.stop()

	report := &Report{
		RunID:     uuid.NewString(),
		StartedAt: time.Now(),
		State:     machine.state(),
	}
	log := r.logger.With(ports.F("run", report.RunID[:8]))

	start := 0
	if opts.FromStep != "" {
		start, err = seq.IndexOf(opts.FromStep)
		if err != nil {
			return nil, err
		}
	}

	machine.start()
	runCtx := NewRunContext(ctx).WithDryRun(opts.DryRun)
	steps := seq.Steps()

	for i := start; i < len(steps); i++ {
		select {
		case <-ctx.Done():
			machine.fail()
			report.finish(machine.state())
			return report, ctx.Err()
		default:
		}

		step := steps[i]
		id := step.ID()

		log.Debug(ctx, "checking", ports.F("step", id.String()))
		status, checkErr := step.Check(runCtx)
		if checkErr != nil {
			// A failed inspection is treated conservatively: the step runs.
			log.Warn(ctx, "pre-check failed, assuming step must run",
				ports.F("step", id.String()), ports.F("error", checkErr))
			status = StatusNeedsApply
		}

		if status == StatusSatisfied {
			report.append(NewRunResult(id, ResultSkipped))
			log.Info(ctx, "already satisfied", ports.F("step", id.String()))
			continue
		}

		if opts.DryRun {
			report.append(NewRunResult(id, ResultWouldApply).WithMessage(step.Explain()))
			log.Info(ctx, "would apply", ports.F("step", id.String()))
			continue
		}

		log.Info(ctx, "applying", ports.F("step", id.String()))
		applyStart := time.Now()
		applyErr := step.Apply(runCtx)
		duration := time.Since(applyStart)

		if applyErr != nil {
			result := NewRunResult(id, ResultFailed).
				WithDuration(duration).
				WithError(applyErr).
				WithMessage(applyErr.Error())
			report.append(result)

			if step.Critical() {
				log.Error(ctx, "critical step failed, stopping run",
					ports.F("step", id.String()), ports.F("error", applyErr))
				machine.fail()
				report.finish(machine.state())
				return report, &CriticalFailureError{StepID: id, Index: i + 1, Err: applyErr}
			}

			log.Warn(ctx, "step failed, continuing",
				ports.F("step", id.String()), ports.F("error", applyErr))
			continue
		}

		report.append(NewRunResult(id, ResultSucceeded).WithDuration(duration))
		log.Info(ctx, "done", ports.F("step", id.String()),
			ports.F("duration", duration.Round(time.Millisecond)))
	}

	machine.complete()
	report.finish(machine.state())
	return report, nil
}
