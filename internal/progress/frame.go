package progress

import "github.com/neora-dev/neora/internal/theme"

// Point is a position in device-independent units.
type Point struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
}

// Rect is a drawing area in local widget coordinates.
type Rect struct {
	X      float64 `json:"x" yaml:"x"`
	Y      float64 `json:"y" yaml:"y"`
	Width  float64 `json:"width" yaml:"width"`
	Height float64 `json:"height" yaml:"height"`
}

// Alignment positions text relative to its anchor point.
type Alignment int

const (
	AlignCenter Alignment = iota
	AlignStart
	AlignEnd
)

func (a Alignment) String() string {
	switch a {
	case AlignStart:
		return "start"
	case AlignEnd:
		return "end"
	default:
		return "center"
	}
}

// MarshalText implements encoding.TextMarshaler.
func (a Alignment) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}

// Shaping selects the text shaper a renderer should use.
type Shaping int

const (
	ShapingBasic Shaping = iota
	// ShapingAdvanced is required for emoji and non-Latin labels.
	ShapingAdvanced
)

func (s Shaping) String() string {
	if s == ShapingAdvanced {
		return "advanced"
	}
	return "basic"
}

// MarshalText implements encoding.TextMarshaler.
func (s Shaping) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Circle is a filled circle.
type Circle struct {
	Center Point       `json:"center" yaml:"center"`
	Radius float64     `json:"radius" yaml:"radius"`
	Fill   theme.Color `json:"fill" yaml:"fill"`
}

// Line is a stroked straight segment.
type Line struct {
	From   Point       `json:"from" yaml:"from"`
	To     Point       `json:"to" yaml:"to"`
	Stroke theme.Color `json:"stroke" yaml:"stroke"`
}

// Label is a run of text anchored at Position.
type Label struct {
	Content  string      `json:"content" yaml:"content"`
	Position Point       `json:"position" yaml:"position"`
	Color    theme.Color `json:"color" yaml:"color"`
	Font     theme.Font  `json:"font" yaml:"font"`
	HAlign   Alignment   `json:"h_align" yaml:"h_align"`
	VAlign   Alignment   `json:"v_align" yaml:"v_align"`
	Shaping  Shaping     `json:"shaping" yaml:"shaping"`
}

// Bold reports whether the label uses a bold weight.
func (l Label) Bold() bool {
	return l.Font.Weight == theme.WeightBold
}

// Frame is the immutable output of one draw: every primitive in the order
// it should be painted (lines, then circles, then labels).
type Frame struct {
	Bounds  Rect     `json:"bounds" yaml:"bounds"`
	Lines   []Line   `json:"lines" yaml:"lines"`
	Circles []Circle `json:"circles" yaml:"circles"`
	Labels  []Label  `json:"labels" yaml:"labels"`
}

// Empty reports whether the frame has nothing to paint.
func (f Frame) Empty() bool {
	return len(f.Lines) == 0 && len(f.Circles) == 0 && len(f.Labels) == 0
}
