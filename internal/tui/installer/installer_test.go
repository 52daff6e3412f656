package installer

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/neora-dev/neora/internal/config"
	"github.com/neora-dev/neora/internal/logging"
	"github.com/neora-dev/neora/internal/plan"
	"github.com/neora-dev/neora/internal/progress"
	"github.com/neora-dev/neora/internal/theme"
)

// --- helpers ---

func nopLogger() *slog.Logger {
	return slog.New(logging.NopHandler{})
}

func testIndicator(t *testing.T) *progress.Indicator {
	t.Helper()
	ind, err := config.Defaults().NewIndicator()
	if err != nil {
		t.Fatalf("NewIndicator: %v", err)
	}
	return ind
}

func timerModel(t *testing.T) Model {
	t.Helper()
	m, err := New(Options{
		Title:     "Neora Installer",
		Indicator: testIndicator(t),
		Palette:   theme.Light(),
		Interval:  time.Second,
		Explain:   []string{"copies files", "expands files"},
		Renderer:  lipgloss.NewRenderer(io.Discard),
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return m
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	nm, ok := next.(Model)
	if !ok {
		t.Fatalf("Update returned %T, want Model", next)
	}
	return nm, cmd
}

func view(m Model) string {
	return ansi.Strip(m.View())
}

func stepPlan(labels ...string) *plan.Plan {
	p := &plan.Plan{Name: "test"}
	for _, l := range labels {
		p.Steps = append(p.Steps, plan.Step{
			Label:   l,
			Explain: "doing " + l,
			Run:     func(context.Context) error { return nil },
		})
	}
	return p
}

func collect(b *Bridge) []tea.Msg {
	var msgs []tea.Msg
	cmd := b.Start()
	for cmd != nil {
		msg := cmd()
		if msg == nil {
			break
		}
		msgs = append(msgs, msg)
		cmd = b.NextMsg()
	}
	return msgs
}

func assertMsgType[T any](t *testing.T, msg tea.Msg, label string) T {
	t.Helper()
	v, ok := msg.(T)
	if !ok {
		t.Fatalf("%s: expected %T, got %T", label, v, msg)
	}
	return v
}

func msgTypes(msgs []tea.Msg) []string {
	var types []string
	for _, m := range msgs {
		types = append(types, fmt.Sprintf("%T", m))
	}
	return types
}

// --- construction ---

func TestNew_RequiresIndicator(t *testing.T) {
	if _, err := New(Options{Interval: time.Second}); !errors.Is(err, progress.ErrNoSteps) {
		t.Errorf("err = %v, want ErrNoSteps", err)
	}
}

func TestNew_RequiresPositiveInterval(t *testing.T) {
	if _, err := New(Options{Indicator: testIndicator(t)}); err == nil {
		t.Error("expected error for zero interval")
	}
}

func TestNew_PlanMismatch(t *testing.T) {
	_, err := New(Options{
		Indicator: testIndicator(t),
		Plan:      stepPlan("only one"),
		Runner:    plan.NewRunner(nopLogger(), false),
	})
	if !errors.Is(err, ErrPlanMismatch) {
		t.Errorf("err = %v, want ErrPlanMismatch", err)
	}
}

// --- timer mode ---

func TestTimer_InitialView(t *testing.T) {
	out := view(timerModel(t))

	for _, want := range []string{
		"Neora Installer",
		"Copying Windows files",
		"Completing installation",
		"Step 1/5: Copying Windows files",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("view missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, progress.CompletedMark) {
		t.Error("no step should be checked initially")
	}
}

func TestTimer_AdvanceMarksPreviousStep(t *testing.T) {
	m := timerModel(t)

	m, cmd := update(t, m, AdvanceMsg{At: time.Now()})
	if cmd == nil {
		t.Error("advance should schedule the next tick")
	}
	if got := m.Indicator().Current(); got != 1 {
		t.Fatalf("current = %d, want 1", got)
	}

	out := view(m)
	if !strings.Contains(out, "Copying Windows files "+progress.CompletedMark) {
		t.Errorf("first step should be checked:\n%s", out)
	}
	if !strings.Contains(out, "Step 2/5: Expanding Windows files") {
		t.Errorf("status should show step 2:\n%s", out)
	}
}

func TestTimer_WrapsAfterLastStep(t *testing.T) {
	m := timerModel(t)
	for i := 0; i < 5; i++ {
		m, _ = update(t, m, AdvanceMsg{})
	}
	if got := m.Indicator().Current(); got != 0 {
		t.Errorf("current = %d, want 0 after a full cycle", got)
	}
}

func TestTimer_ToggleExplain(t *testing.T) {
	m := timerModel(t)
	if strings.Contains(view(m), "What's happening") {
		t.Fatal("explain panel should start hidden")
	}

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'?'}})
	out := view(m)
	if !strings.Contains(out, "What's happening") || !strings.Contains(out, "copies files") {
		t.Errorf("explain panel should show first step text:\n%s", out)
	}

	m, _ = update(t, m, AdvanceMsg{})
	if !strings.Contains(view(m), "expands files") {
		t.Error("explain text should follow the current step")
	}
}

func TestTimer_Quit(t *testing.T) {
	m := timerModel(t)
	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyCtrlC})
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("ctrl+c should quit")
	}
	if m.View() != "" {
		t.Error("view should be empty after quitting")
	}
}

func TestTimer_SmallWindow(t *testing.T) {
	m := timerModel(t)
	m, _ = update(t, m, tea.WindowSizeMsg{Width: 10, Height: 4})
	if view(m) == "" {
		t.Error("view should still render")
	}
}

// --- bridge ---

func TestBridge_MessageOrder(t *testing.T) {
	p := &plan.Plan{Name: "test", Steps: []plan.Step{
		{
			Label:   "check-me",
			Explain: "checking",
			Check:   func(context.Context) bool { return true },
		},
		{
			Label:   "run-me",
			Explain: "running",
			Run:     func(context.Context) error { return nil },
		},
	}}

	msgs := collect(NewBridge(plan.NewRunner(nopLogger(), false), p))

	if len(msgs) != 5 {
		t.Fatalf("expected 5 messages, got %d: %v", len(msgs), msgTypes(msgs))
	}

	start := assertMsgType[StepStartMsg](t, msgs[0], "msg 0")
	if start.Explain != "checking" {
		t.Errorf("explain = %q", start.Explain)
	}
	done1 := assertMsgType[StepDoneMsg](t, msgs[1], "msg 1")
	if !done1.Skipped {
		t.Error("first step should be skipped")
	}
	assertMsgType[StepStartMsg](t, msgs[2], "msg 2")
	done2 := assertMsgType[StepDoneMsg](t, msgs[3], "msg 3")
	if done2.Skipped {
		t.Error("second step should not be skipped")
	}
	allDone := assertMsgType[PlanDoneMsg](t, msgs[4], "msg 4")
	if allDone.Result.Completed != 1 || allDone.Result.Skipped != 1 {
		t.Errorf("result = %+v", allDone.Result)
	}
}

func TestBridge_ErrorMessage(t *testing.T) {
	p := &plan.Plan{Name: "fail", Steps: []plan.Step{{
		Label: "will-fail",
		Run:   func(context.Context) error { return errors.New("boom") },
	}}}

	msgs := collect(NewBridge(plan.NewRunner(nopLogger(), false), p))

	if len(msgs) != 3 {
		t.Fatalf("expected 3 messages, got %d: %v", len(msgs), msgTypes(msgs))
	}
	assertMsgType[StepStartMsg](t, msgs[0], "msg 0")
	errMsg := assertMsgType[StepErrorMsg](t, msgs[1], "msg 1")
	if errMsg.Err == nil {
		t.Error("expected error in StepErrorMsg")
	}
	done := assertMsgType[PlanDoneMsg](t, msgs[2], "msg 2")
	if done.Result.Err == nil {
		t.Error("expected failed result in PlanDoneMsg")
	}
}

// --- plan mode ---

func runPlan(t *testing.T, p *plan.Plan) Model {
	t.Helper()
	ind, err := progress.New(progress.Options{Steps: p.Labels()})
	if err != nil {
		t.Fatalf("progress.New: %v", err)
	}
	m, err := New(Options{
		Title:     "Plan Test",
		Indicator: ind,
		Plan:      p,
		Runner:    plan.NewRunner(nopLogger(), false),
		Renderer:  lipgloss.NewRenderer(io.Discard),
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	m, _ = update(t, m, tea.WindowSizeMsg{Width: 100, Height: 20})

	cmd := m.bridge.Start()
	for cmd != nil {
		msg := cmd()
		if msg == nil {
			break
		}
		m, cmd = update(t, m, msg)
	}
	return m
}

func TestPlan_CompletesIndicator(t *testing.T) {
	m := runPlan(t, stepPlan("Copy", "Expand", "Finish"))

	if !m.Finished() {
		t.Fatal("model should be finished")
	}
	if !m.Indicator().Done() {
		t.Error("indicator should be complete")
	}

	out := view(m)
	for _, want := range []string{
		"Copy " + progress.CompletedMark,
		"Expand " + progress.CompletedMark,
		"Finish " + progress.CompletedMark,
		"Installation complete (3 completed, 0 skipped)",
		"enter/q: exit",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("view missing %q:\n%s", want, out)
		}
	}
}

func TestPlan_FailureStopsAtStep(t *testing.T) {
	p := stepPlan("Copy", "Expand", "Finish")
	p.Steps[1].Run = func(context.Context) error { return errors.New("disk full") }

	m := runPlan(t, p)

	if got := m.Indicator().Current(); got != 1 {
		t.Errorf("current = %d, want 1 (the failed step)", got)
	}
	if m.Result() == nil || m.Result().FailedStep != "Expand" {
		t.Errorf("result = %+v", m.Result())
	}

	out := view(m)
	if !strings.Contains(out, "Expand failed: disk full") {
		t.Errorf("view should report failure:\n%s", out)
	}
	if !strings.Contains(out, "Copy "+progress.CompletedMark) {
		t.Error("first step should be checked")
	}
}

func TestPlan_EnterQuitsWhenFinished(t *testing.T) {
	m := runPlan(t, stepPlan("Only"))
	_, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("enter should quit once finished")
	}
}
