// Package theme provides the light and dark palettes and the label font
// used when drawing the progress indicator.
package theme

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// ErrUnknownTheme is returned by Lookup for names other than light, dark
// and auto.
var ErrUnknownTheme = errors.New("unknown theme")

// Palette holds the colors the indicator draws with.
type Palette struct {
	Name       string
	Primary    Color // step circles
	Text       Color // step labels
	Background Color
}

// Light returns the light palette.
func Light() Palette {
	return Palette{
		Name:       "light",
		Primary:    RGB(0x5e/255.0, 0x7c/255.0, 0xe2/255.0),
		Text:       RGB(0, 0, 0),
		Background: RGB(1, 1, 1),
	}
}

// Dark returns the dark palette.
func Dark() Palette {
	return Palette{
		Name:       "dark",
		Primary:    RGB(0x5e/255.0, 0x7c/255.0, 0xe2/255.0),
		Text:       RGB(0.9, 0.9, 0.9),
		Background: RGB(0x20/255.0, 0x22/255.0, 0x25/255.0),
	}
}

// Lookup returns the palette for name. "auto" picks dark or light from the
// terminal background; an empty name means light.
func Lookup(name string) (Palette, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "light":
		return Light(), nil
	case "dark":
		return Dark(), nil
	case "auto":
		if lipgloss.HasDarkBackground() {
			return Dark(), nil
		}
		return Light(), nil
	default:
		return Palette{}, fmt.Errorf("%w: %q (want light, dark or auto)", ErrUnknownTheme, name)
	}
}

// Weight is a font weight.
type Weight int

const (
	WeightNormal Weight = iota
	WeightBold
)

func (w Weight) String() string {
	switch w {
	case WeightNormal:
		return "normal"
	case WeightBold:
		return "bold"
	default:
		return fmt.Sprintf("Weight(%d)", int(w))
	}
}

// MarshalText implements encoding.TextMarshaler.
func (w Weight) MarshalText() ([]byte, error) {
	return []byte(w.String()), nil
}

// Font describes the label font.
type Font struct {
	Family string  `json:"family,omitempty" yaml:"family,omitempty"`
	Size   float64 `json:"size" yaml:"size"`
	Weight Weight  `json:"weight" yaml:"weight"`
}

// DefaultFont is the theme's label font: 16 units, normal weight.
func DefaultFont() Font {
	return Font{Size: 16, Weight: WeightNormal}
}

// Bold returns a copy of f with bold weight.
func (f Font) Bold() Font {
	f.Weight = WeightBold
	return f
}

// Normal returns a copy of f with normal weight.
func (f Font) Normal() Font {
	f.Weight = WeightNormal
	return f
}
