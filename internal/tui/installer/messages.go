package installer

import (
	"time"

	"github.com/neora-dev/neora/internal/plan"
)

// AdvanceMsg is produced by the timer driver on every tick.
type AdvanceMsg struct {
	At time.Time
}

// StepStartMsg is sent when a plan step begins executing.
type StepStartMsg struct {
	Label   string
	Explain string
	Index   int
	Total   int
}

// StepDoneMsg is sent when a plan step completes (success or skip).
type StepDoneMsg struct {
	Label   string
	Index   int
	Total   int
	Skipped bool
}

// StepErrorMsg is sent when a plan step fails.
type StepErrorMsg struct {
	Label string
	Index int
	Total int
	Err   error
}

// PlanDoneMsg is sent once the plan has finished, successfully or not.
type PlanDoneMsg struct {
	Result plan.Result
}
