// Package progress implements the step indicator: an ordered list of step
// labels, the index of the step in progress, and the drawing of that state
// as circles, labels and connecting dashes.
package progress

import (
	"errors"
	"fmt"
	"strings"

	"github.com/neora-dev/neora/internal/theme"
)

var (
	// ErrNoSteps is returned when an indicator is built without steps.
	ErrNoSteps = errors.New("at least one step is required")

	// ErrStepOutOfRange is returned when the initial step is not a valid index.
	ErrStepOutOfRange = errors.New("current step out of range")

	// ErrInvalidOrientation is returned for unknown orientation names.
	ErrInvalidOrientation = errors.New("invalid orientation")
)

// Orientation selects the axis the steps are laid out along.
type Orientation int

const (
	Horizontal Orientation = iota // default
	Vertical
)

// String returns the lowercase name of the orientation.
func (o Orientation) String() string {
	switch o {
	case Horizontal:
		return "horizontal"
	case Vertical:
		return "vertical"
	default:
		return fmt.Sprintf("Orientation(%d)", int(o))
	}
}

// MarshalText implements encoding.TextMarshaler.
func (o Orientation) MarshalText() ([]byte, error) {
	return []byte(o.String()), nil
}

// ParseOrientation accepts "horizontal" or "vertical" (case-insensitive).
// An empty string yields Horizontal.
func ParseOrientation(s string) (Orientation, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "horizontal", "row":
		return Horizontal, nil
	case "vertical", "column":
		return Vertical, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrInvalidOrientation, s)
	}
}

// Options configures a new Indicator.
type Options struct {
	// Steps are the display labels, in order. Required.
	Steps []string

	// CurrentStep is the initial step index. Defaults to 0.
	CurrentStep int

	// DashColor strokes the connectors. The zero value means opaque black.
	DashColor theme.Color

	// Orientation defaults to Horizontal.
	Orientation Orientation
}

// Indicator is the step indicator state. The step list is fixed after
// construction; only the current step changes, through Advance, Complete
// and Reset. An Indicator is owned by a single goroutine.
type Indicator struct {
	steps       []string
	current     int
	dashColor   theme.Color
	orientation Orientation
}

// New validates opts and returns an Indicator.
func New(opts Options) (*Indicator, error) {
	if len(opts.Steps) == 0 {
		return nil, ErrNoSteps
	}
	if opts.CurrentStep < 0 || opts.CurrentStep >= len(opts.Steps) {
		return nil, fmt.Errorf("%w: %d not in [0, %d)", ErrStepOutOfRange, opts.CurrentStep, len(opts.Steps))
	}
	if opts.Orientation != Horizontal && opts.Orientation != Vertical {
		return nil, fmt.Errorf("%w: %d", ErrInvalidOrientation, int(opts.Orientation))
	}

	dash := opts.DashColor
	if dash == (theme.Color{}) {
		dash = theme.Black
	}

	steps := make([]string, len(opts.Steps))
	copy(steps, opts.Steps)

	return &Indicator{
		steps:       steps,
		current:     opts.CurrentStep,
		dashColor:   dash,
		orientation: opts.Orientation,
	}, nil
}

// Advance moves to the next step, wrapping to the first step after the last.
func (ind *Indicator) Advance() {
	ind.current++
	if ind.current >= len(ind.steps) {
		ind.current = 0
	}
}

// Complete marks every step as done. No step is drawn as current until the
// next Advance or Reset.
func (ind *Indicator) Complete() {
	ind.current = len(ind.steps)
}

// Reset returns to the first step.
func (ind *Indicator) Reset() {
	ind.current = 0
}

// SetCurrent moves to step i. Values past the last step mean Complete.
func (ind *Indicator) SetCurrent(i int) error {
	if i < 0 || i > len(ind.steps) {
		return fmt.Errorf("%w: %d not in [0, %d]", ErrStepOutOfRange, i, len(ind.steps))
	}
	ind.current = i
	return nil
}

// Current returns the index of the step in progress, or Len() once complete.
func (ind *Indicator) Current() int { return ind.current }

// Done reports whether every step is complete.
func (ind *Indicator) Done() bool { return ind.current >= len(ind.steps) }

// Len returns the number of steps.
func (ind *Indicator) Len() int { return len(ind.steps) }

// Steps returns a copy of the step labels.
func (ind *Indicator) Steps() []string {
	out := make([]string, len(ind.steps))
	copy(out, ind.steps)
	return out
}

// Orientation returns the layout axis.
func (ind *Indicator) Orientation() Orientation { return ind.orientation }

// SetOrientation changes the layout axis.
func (ind *Indicator) SetOrientation(o Orientation) error {
	if o != Horizontal && o != Vertical {
		return fmt.Errorf("%w: %d", ErrInvalidOrientation, int(o))
	}
	ind.orientation = o
	return nil
}

// DashColor returns the connector color.
func (ind *Indicator) DashColor() theme.Color { return ind.dashColor }
