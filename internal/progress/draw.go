package progress

import "github.com/neora-dev/neora/internal/theme"

const (
	// StepRadius is the radius of every step circle.
	StepRadius = 8.0

	// LabelSize is the label font size.
	LabelSize = 16.0

	// labelAbove is how far a horizontal label sits above its circle.
	labelAbove = 24.0

	// labelRight is how far a vertical label sits right of its circle.
	labelRight = 8.0 * 16.0

	// CompletedMark is appended to the label of every finished step.
	CompletedMark = "✅"
)

// Label returns the text drawn for step i, or "" if i is not a step.
func (ind *Indicator) Label(i int) string {
	if i < 0 || i >= len(ind.steps) {
		return ""
	}
	if i < ind.current {
		return ind.steps[i] + " " + CompletedMark
	}
	return ind.steps[i]
}

// IsCurrent reports whether step i is the one in progress.
func (ind *Indicator) IsCurrent(i int) bool {
	return i == ind.current
}

// Centers returns the circle centers for bounds, in step order.
func (ind *Indicator) Centers(bounds Rect) []Point {
	n := len(ind.steps)
	if n == 0 {
		return nil
	}

	centers := make([]Point, n)
	switch ind.orientation {
	case Vertical:
		seg := bounds.Height / float64(n)
		cx := bounds.X + bounds.Width/2
		for i := range centers {
			centers[i] = Point{X: cx, Y: bounds.Y + float64(i)*seg + seg/2}
		}
	default:
		seg := bounds.Width / float64(n)
		cy := bounds.Y + bounds.Height/2
		for i := range centers {
			centers[i] = Point{X: bounds.X + float64(i)*seg + seg/2, Y: cy}
		}
	}
	return centers
}

// Draw lays the indicator out in bounds and returns the resulting frame.
// It does not modify the indicator. A nil or empty indicator draws nothing.
func (ind *Indicator) Draw(bounds Rect, pal theme.Palette, font theme.Font) Frame {
	frame := Frame{Bounds: bounds}
	if ind == nil || len(ind.steps) == 0 {
		return frame
	}
	// Family comes from the theme; the label size is fixed.
	font.Size = LabelSize

	centers := ind.Centers(bounds)
	frame.Circles = make([]Circle, 0, len(centers))
	frame.Labels = make([]Label, 0, len(centers))
	frame.Lines = make([]Line, 0, len(centers)-1)

	for i, c := range centers {
		if i > 0 {
			frame.Lines = append(frame.Lines, ind.connector(centers[i-1], c))
		}

		frame.Circles = append(frame.Circles, Circle{
			Center: c,
			Radius: StepRadius,
			Fill:   pal.Primary,
		})

		lf := font.Normal()
		if ind.IsCurrent(i) {
			lf = font.Bold()
		}
		frame.Labels = append(frame.Labels, Label{
			Content:  ind.Label(i),
			Position: ind.labelAnchor(c),
			Color:    pal.Text,
			Font:     lf,
			HAlign:   AlignCenter,
			VAlign:   AlignCenter,
			Shaping:  ShapingAdvanced,
		})
	}

	return frame
}

// connector joins two adjacent circles, stopping StepRadius short of each
// center.
func (ind *Indicator) connector(prev, next Point) Line {
	line := Line{From: prev, To: next, Stroke: ind.dashColor}
	if ind.orientation == Vertical {
		line.From.Y += StepRadius
		line.To.Y -= StepRadius
	} else {
		line.From.X += StepRadius
		line.To.X -= StepRadius
	}
	return line
}

func (ind *Indicator) labelAnchor(c Point) Point {
	if ind.orientation == Vertical {
		return Point{X: c.X + labelRight, Y: c.Y}
	}
	return Point{X: c.X, Y: c.Y - labelAbove}
}
