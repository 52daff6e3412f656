// Package plan defines the installer work behind the progress indicator:
// an ordered list of steps, each optionally backed by an external command,
// and a Runner that executes them and reports progress through callbacks.
package plan

import (
	"context"
	"fmt"

	"github.com/neora-dev/neora/internal/config"
	"github.com/neora-dev/neora/internal/exec"
)

// Step is one unit of installer work. Its position in Plan.Steps matches
// the step index shown by the indicator.
type Step struct {
	// Label is the text shown for this step.
	Label string

	// Explain describes what the step does, for the explain panel.
	Explain string

	// Check returns true if the step is already satisfied (i.e. Run can be skipped).
	Check func(ctx context.Context) bool

	// Run executes the step. A nil Run completes immediately.
	Run func(ctx context.Context) error

	// DryRun describes what Run would do without making changes.
	DryRun func(ctx context.Context) string
}

// Plan is a named, ordered list of steps.
type Plan struct {
	Name  string
	Steps []Step
}

// Labels returns the step labels in order.
func (p *Plan) Labels() []string {
	labels := make([]string, len(p.Steps))
	for i, s := range p.Steps {
		labels[i] = s.Label
	}
	return labels
}

// FromConfig builds a plan from the configured steps. Steps with a run
// command execute it through r; steps without one complete immediately.
func FromConfig(cfg *config.Config, r exec.Runner) (*Plan, error) {
	p := &Plan{Name: cfg.App.Title}

	for i, sc := range cfg.Indicator.Steps {
		step := Step{Label: sc.Label, Explain: sc.Explain}

		if len(sc.Run) > 0 {
			cmd, err := exec.FromArgv(sc.Run)
			if err != nil {
				return nil, fmt.Errorf("step %d (%s) run: %w", i, sc.Label, err)
			}
			step.Run = func(ctx context.Context) error {
				_, err := r.Run(ctx, cmd)
				return err
			}
			step.DryRun = func(context.Context) string {
				return "would run: " + cmd.String()
			}
			if step.Explain == "" {
				step.Explain = "Runs " + cmd.String()
			}
		}

		if len(sc.Check) > 0 {
			check, err := exec.FromArgv(sc.Check)
			if err != nil {
				return nil, fmt.Errorf("step %d (%s) check: %w", i, sc.Label, err)
			}
			step.Check = func(ctx context.Context) bool {
				_, err := r.Run(ctx, check)
				return err == nil
			}
		}

		p.Steps = append(p.Steps, step)
	}

	return p, nil
}
