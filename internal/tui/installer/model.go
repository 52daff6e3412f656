// Package installer is the terminal host for the progress indicator. It owns
// the single *progress.Indicator, advances it from a timer or from a running
// plan, and redraws it on every View.
package installer

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/neora-dev/neora/internal/plan"
	"github.com/neora-dev/neora/internal/progress"
	"github.com/neora-dev/neora/internal/theme"
	"github.com/neora-dev/neora/internal/tui/canvas"
	"github.com/neora-dev/neora/internal/tui/components"
)

const (
	defaultWidth  = 80
	defaultHeight = 24
	minCanvasRows = 3

	// banner (2) + blank + blank + status + blank + footer
	chromeRows = 7
)

// ErrPlanMismatch is returned when a plan's steps do not line up with the
// indicator's steps.
var ErrPlanMismatch = errors.New("plan and indicator step counts differ")

// Options configures the installer model.
type Options struct {
	Title     string
	Indicator *progress.Indicator
	Palette   theme.Palette
	Font      theme.Font

	// Interval drives the timer mode. Ignored when Plan is set.
	Interval time.Duration

	// Plan switches to plan mode: the indicator follows the running steps.
	Plan   *plan.Plan
	Runner *plan.Runner

	// Explain holds optional per-step explanations for timer mode.
	Explain     []string
	ShowExplain bool

	// Renderer styles all output. Nil uses lipgloss' default.
	Renderer *lipgloss.Renderer
}

// Model is the top-level tea.Model.
type Model struct {
	title     string
	indicator *progress.Indicator
	palette   theme.Palette
	font      theme.Font
	renderer  *lipgloss.Renderer
	styles    components.Styles
	spinner   spinner.Model
	explain   ExplainPanel
	texts     []string

	interval time.Duration
	bridge   *Bridge

	result   *plan.Result
	failed   *StepErrorMsg
	width    int
	height   int
	quitting bool
}

// New validates opts and returns a Model ready to run.
func New(opts Options) (Model, error) {
	if opts.Indicator == nil {
		return Model{}, progress.ErrNoSteps
	}
	if opts.Plan != nil {
		if len(opts.Plan.Steps) != opts.Indicator.Len() {
			return Model{}, fmt.Errorf("%w: plan has %d, indicator has %d",
				ErrPlanMismatch, len(opts.Plan.Steps), opts.Indicator.Len())
		}
		if opts.Runner == nil {
			return Model{}, errors.New("plan mode requires a runner")
		}
	} else if opts.Interval <= 0 {
		return Model{}, fmt.Errorf("timer interval must be positive, got %s", opts.Interval)
	}

	r := opts.Renderer
	if r == nil {
		r = lipgloss.DefaultRenderer()
	}
	if opts.Palette.Name == "" {
		opts.Palette = theme.Light()
	}
	if opts.Font.Size == 0 {
		opts.Font = theme.DefaultFont()
	}

	styles := components.NewStyles(r, opts.Palette)
	m := Model{
		title:     opts.Title,
		indicator: opts.Indicator,
		palette:   opts.Palette,
		font:      opts.Font,
		renderer:  r,
		styles:    styles,
		spinner:   components.NewSpinner(styles),
		explain:   NewExplainPanel(styles).SetVisible(opts.ShowExplain),
		texts:     opts.Explain,
		interval:  opts.Interval,
		width:     defaultWidth,
		height:    defaultHeight,
	}
	if opts.Plan != nil {
		m.bridge = NewBridge(opts.Runner, opts.Plan)
	}
	m.explain = m.explain.SetText(m.explainFor(opts.Indicator.Current()))

	return m, nil
}

// Init sets the window title and starts the driver.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{tea.SetWindowTitle(m.title), m.spinner.Tick}
	if m.bridge != nil {
		cmds = append(cmds, m.bridge.Start())
	} else {
		cmds = append(cmds, m.tick())
	}
	return tea.Batch(cmds...)
}

func (m Model) tick() tea.Cmd {
	return tea.Tick(m.interval, func(t time.Time) tea.Msg {
		return AdvanceMsg{At: t}
	})
}

// Update handles messages. It is the only place the indicator is mutated.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.explain = m.explain.SetWidth(min(msg.Width-4, 70))
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			if m.bridge != nil {
				m.bridge.Cancel()
			}
			m.quitting = true
			return m, tea.Quit
		case "enter":
			if m.Finished() {
				m.quitting = true
				return m, tea.Quit
			}
		case "?":
			m.explain = m.explain.SetVisible(!m.explain.visible)
		}
		return m, nil

	case AdvanceMsg:
		m.indicator.Advance()
		m.explain = m.explain.SetText(m.explainFor(m.indicator.Current()))
		return m, m.tick()

	case StepStartMsg:
		if err := m.indicator.SetCurrent(msg.Index); err == nil {
			m.explain = m.explain.SetText(msg.Explain)
		}
		return m, m.next()

	case StepDoneMsg:
		return m, m.next()

	case StepErrorMsg:
		m.failed = &msg
		return m, m.next()

	case PlanDoneMsg:
		m.result = &msg.Result
		if msg.Result.Err == nil {
			m.indicator.Complete()
			m.explain = m.explain.SetText("")
		}
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	return m, nil
}

// View renders the banner, the indicator and the status line.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	b.WriteString(components.RenderBanner(m.styles, m.title))
	b.WriteString("\n\n")

	panel := m.explain.View()
	rows := m.height - chromeRows
	if panel != "" {
		rows -= lipgloss.Height(panel) + 1
	}
	vp := canvas.Viewport{Cols: m.width, Rows: max(rows, minCanvasRows)}

	frame := m.indicator.Draw(vp.Bounds(), m.palette, m.font)
	b.WriteString(canvas.New(vp, m.renderer).Render(frame))
	b.WriteString("\n\n")

	b.WriteString(m.status())
	b.WriteString("\n")

	if panel != "" {
		b.WriteString("\n")
		b.WriteString(panel)
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.styles.Footer.Render(m.footer()))

	return b.String()
}

func (m Model) status() string {
	switch {
	case m.failed != nil:
		return m.styles.Error.Render(fmt.Sprintf("  %s %s failed: %v", m.styles.StatusFail, m.failed.Label, m.failed.Err))
	case m.result != nil && m.result.Err != nil:
		return m.styles.Error.Render(fmt.Sprintf("  %s %v", m.styles.StatusFail, m.result.Err))
	case m.result != nil:
		return m.styles.Success.Render(fmt.Sprintf("  %s Installation complete (%d completed, %d skipped)",
			m.styles.StatusDone, m.result.Completed, m.result.Skipped))
	}

	cur := m.indicator.Current()
	if cur >= m.indicator.Len() {
		return m.styles.Success.Render("  " + m.styles.StatusDone + " Installation complete")
	}
	label := m.indicator.Steps()[cur]
	return fmt.Sprintf("  %s %s", m.spinner.View(),
		m.styles.Body.Render(fmt.Sprintf("Step %d/%d: %s", cur+1, m.indicator.Len(), label)))
}

func (m Model) footer() string {
	if m.Finished() {
		return "  enter/q: exit"
	}
	return "  q: quit  ?: toggle explain"
}

// next waits for the bridge's next message.
func (m Model) next() tea.Cmd {
	if m.bridge == nil {
		return nil
	}
	return m.bridge.NextMsg()
}

func (m Model) explainFor(i int) string {
	if i < 0 || i >= len(m.texts) {
		return ""
	}
	return m.texts[i]
}

// Finished reports whether a plan has run to completion or failed.
func (m Model) Finished() bool {
	return m.result != nil
}

// Result returns the plan result, or nil if no plan finished.
func (m Model) Result() *plan.Result {
	return m.result
}

// Indicator returns the indicator the model drives.
func (m Model) Indicator() *progress.Indicator {
	return m.indicator
}
