package plan

import (
	"context"
	"fmt"
	"log/slog"
	"time"
)

// Result captures the outcome of running a plan.
type Result struct {
	// Completed is the number of steps that ran successfully.
	Completed int

	// Skipped is the number of steps whose Check returned true, plus every
	// step in dry-run mode.
	Skipped int

	// Total is the total number of steps in the plan.
	Total int

	// FailedStep is the label of the step that failed, if any.
	FailedStep string

	// Err is the error returned by the failed step, or nil on success.
	Err error
}

// StepCallback is invoked after each step is processed (whether skipped, run,
// or failed).
type StepCallback func(step *Step, index int, total int, skipped bool, err error)

// PreStepCallback is invoked before each step begins processing.
type PreStepCallback func(step *Step, index int, total int)

// Runner executes plan steps with check-before-run semantics.
type Runner struct {
	logger      *slog.Logger
	dryRun      bool
	callback    StepCallback
	preCallback PreStepCallback
}

// NewRunner creates a Runner. When dryRun is true, steps are not executed;
// instead their DryRun description is logged.
func NewRunner(logger *slog.Logger, dryRun bool) *Runner {
	return &Runner{
		logger: logger,
		dryRun: dryRun,
	}
}

// SetCallback registers a callback that is invoked after each step is
// processed. Pass nil to clear.
func (r *Runner) SetCallback(cb StepCallback) {
	r.callback = cb
}

// SetPreStepCallback registers a callback that is invoked before each step
// begins processing. Pass nil to clear.
func (r *Runner) SetPreStepCallback(cb PreStepCallback) {
	r.preCallback = cb
}

// Run executes every step of p in order. For each step:
//   - If Check returns true the step is skipped.
//   - If the runner is in dry-run mode, DryRun is called and logged but Run is
//     not invoked.
//   - Otherwise Run is called; on error execution stops immediately.
//
// A cancelled context stops the plan before the next step.
func (r *Runner) Run(ctx context.Context, p *Plan) Result {
	result := Result{Total: len(p.Steps)}

	for i := range p.Steps {
		step := &p.Steps[i]

		if err := ctx.Err(); err != nil {
			result.FailedStep = step.Label
			result.Err = fmt.Errorf("plan %q interrupted before %q: %w", p.Name, step.Label, err)
			return result
		}

		if r.preCallback != nil {
			r.preCallback(step, i, result.Total)
		}

		// Check precondition -- skip if already satisfied.
		if step.Check != nil && step.Check(ctx) {
			result.Skipped++
			r.logger.Info("step already satisfied, skipping",
				slog.String("plan", p.Name),
				slog.String("step", step.Label),
			)
			if r.callback != nil {
				r.callback(step, i, result.Total, true, nil)
			}
			continue
		}

		// Dry-run mode -- describe but do not execute.
		if r.dryRun {
			desc := ""
			if step.DryRun != nil {
				desc = step.DryRun(ctx)
			}
			r.logger.Info("dry-run",
				slog.String("plan", p.Name),
				slog.String("step", step.Label),
				slog.String("would_do", desc),
			)
			result.Skipped++
			if r.callback != nil {
				r.callback(step, i, result.Total, true, nil)
			}
			continue
		}

		start := time.Now()
		var err error
		if step.Run != nil {
			err = step.Run(ctx)
		}
		elapsed := time.Since(start)

		if err != nil {
			result.FailedStep = step.Label
			result.Err = fmt.Errorf("step %q failed: %w", step.Label, err)
			r.logger.Error("step failed",
				slog.String("plan", p.Name),
				slog.String("step", step.Label),
				slog.Duration("elapsed", elapsed),
				slog.String("error", err.Error()),
			)
			if r.callback != nil {
				r.callback(step, i, result.Total, false, err)
			}
			return result
		}

		result.Completed++
		r.logger.Info("step completed",
			slog.String("plan", p.Name),
			slog.String("step", step.Label),
			slog.Duration("elapsed", elapsed),
		)
		if r.callback != nil {
			r.callback(step, i, result.Total, false, nil)
		}
	}

	return result
}
