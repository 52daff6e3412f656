package theme

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"
)

// ErrInvalidColor is returned when a color string cannot be parsed.
var ErrInvalidColor = errors.New("invalid color")

// Color is an RGBA color with channels in the range [0, 1].
type Color struct {
	R, G, B, A float64
}

// RGB returns an opaque color.
func RGB(r, g, b float64) Color {
	return Color{R: r, G: g, B: b, A: 1}
}

// Black is the default connector color.
var Black = RGB(0, 0, 0)

// ParseColor parses "#rgb", "#rrggbb" or "#rrggbbaa".
func ParseColor(s string) (Color, error) {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "#") {
		return Color{}, fmt.Errorf("%w: %q must start with '#'", ErrInvalidColor, s)
	}
	switch len(s) {
	case 4, 7, 9:
	default:
		return Color{}, fmt.Errorf("%w: %q has %d hex digits", ErrInvalidColor, s, len(s)-1)
	}

	alpha := 1.0
	hex := s
	if len(s) == 9 {
		a, err := strconv.ParseUint(s[7:], 16, 8)
		if err != nil {
			return Color{}, fmt.Errorf("%w: %q: bad alpha", ErrInvalidColor, s)
		}
		alpha = float64(a) / 255
		hex = s[:7]
	}

	c, err := colorful.Hex(hex)
	if err != nil {
		return Color{}, fmt.Errorf("%w: %q", ErrInvalidColor, s)
	}
	return Color{R: c.R, G: c.G, B: c.B, A: alpha}, nil
}

// Hex formats the color as "#rrggbb", or "#rrggbbaa" when not opaque.
func (c Color) Hex() string {
	hex := colorful.Color{R: c.R, G: c.G, B: c.B}.Clamped().Hex()
	if c.A >= 1 {
		return hex
	}
	return fmt.Sprintf("%s%02x", hex, uint8(math.Round(clamp01(c.A)*255)))
}

// Lipgloss converts the color for terminal styling. Alpha is dropped.
func (c Color) Lipgloss() lipgloss.Color {
	return lipgloss.Color(colorful.Color{R: c.R, G: c.G, B: c.B}.Clamped().Hex())
}

// MarshalText implements encoding.TextMarshaler.
func (c Color) MarshalText() ([]byte, error) {
	return []byte(c.Hex()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (c *Color) UnmarshalText(text []byte) error {
	parsed, err := ParseColor(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

func (c Color) String() string {
	return c.Hex()
}

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}
