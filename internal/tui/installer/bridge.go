package installer

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/neora-dev/neora/internal/plan"
)

// Bridge runs a plan in a background goroutine and produces tea.Msg values
// for the TUI via a channel. The TUI's Update loop is the only consumer, so
// indicator state is only ever touched from that loop.
type Bridge struct {
	runner *plan.Runner
	plan   *plan.Plan
	msgs   chan tea.Msg
	ctx    context.Context
	cancel context.CancelFunc
}

// NewBridge creates a Bridge that will run p.
func NewBridge(runner *plan.Runner, p *plan.Plan) *Bridge {
	ctx, cancel := context.WithCancel(context.Background())
	return &Bridge{
		runner: runner,
		plan:   p,
		msgs:   make(chan tea.Msg, 64),
		ctx:    ctx,
		cancel: cancel,
	}
}

// Cancel signals the runner goroutine to stop.
func (b *Bridge) Cancel() {
	b.cancel()
}

// send delivers a message on the channel, respecting context cancellation
// to prevent deadlocks if the TUI has been shut down.
func (b *Bridge) send(msg tea.Msg) bool {
	select {
	case b.msgs <- msg:
		return true
	case <-b.ctx.Done():
		return false
	}
}

// Start launches plan execution in a background goroutine and returns a
// tea.Cmd that delivers the first message.
func (b *Bridge) Start() tea.Cmd {
	b.runner.SetPreStepCallback(func(step *plan.Step, index int, total int) {
		b.send(StepStartMsg{
			Label:   step.Label,
			Explain: step.Explain,
			Index:   index,
			Total:   total,
		})
	})

	b.runner.SetCallback(func(step *plan.Step, index int, total int, skipped bool, err error) {
		if err != nil {
			b.send(StepErrorMsg{
				Label: step.Label,
				Index: index,
				Total: total,
				Err:   err,
			})
			return
		}
		b.send(StepDoneMsg{
			Label:   step.Label,
			Index:   index,
			Total:   total,
			Skipped: skipped,
		})
	})

	go b.run()

	return b.NextMsg()
}

func (b *Bridge) run() {
	defer close(b.msgs)

	result := b.runner.Run(b.ctx, b.plan)
	b.send(PlanDoneMsg{Result: result})
}

// NextMsg returns a tea.Cmd that waits for the next message from the channel.
func (b *Bridge) NextMsg() tea.Cmd {
	return func() tea.Msg {
		msg, ok := <-b.msgs
		if !ok {
			return nil
		}
		return msg
	}
}
