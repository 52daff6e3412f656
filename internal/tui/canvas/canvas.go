// Package canvas rasterizes a progress.Frame onto a grid of terminal cells.
//
// One cell covers CellWidth x CellHeight device-independent units, so a
// step circle (radius 8) occupies a single cell and a horizontal label sits
// two rows above its circle.
package canvas

import (
	"math"
	"strings"
	"unicode"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/neora-dev/neora/internal/progress"
	"github.com/neora-dev/neora/internal/theme"
)

const (
	CellWidth  = 8.0
	CellHeight = 16.0
)

// Glyphs used for each primitive.
const (
	GlyphStep     = '●'
	GlyphDashH    = '─'
	GlyphDashV    = '│'
	GlyphFallback = '?'
)

// Viewport is a terminal area measured in cells.
type Viewport struct {
	Cols int
	Rows int
}

// Bounds returns the frame bounds covering the whole viewport.
func (v Viewport) Bounds() progress.Rect {
	return progress.Rect{
		Width:  float64(max(v.Cols, 0)) * CellWidth,
		Height: float64(max(v.Rows, 0)) * CellHeight,
	}
}

type cellKind int

const (
	cellEmpty cellKind = iota
	cellLine
	cellStep
	cellText
	cellWide // right half of a double-width rune
)

type cell struct {
	r     rune
	kind  cellKind
	color theme.Color
	bold  bool
}

// Canvas paints frames for one viewport.
type Canvas struct {
	vp       Viewport
	renderer *lipgloss.Renderer
	grid     [][]cell
}

// New returns a Canvas for vp. A nil renderer uses lipgloss' default.
func New(vp Viewport, r *lipgloss.Renderer) *Canvas {
	if r == nil {
		r = lipgloss.DefaultRenderer()
	}
	return &Canvas{vp: vp, renderer: r}
}

// Render paints f and returns the styled rows joined by newlines.
// Anything falling outside the viewport is clipped.
func (c *Canvas) Render(f progress.Frame) string {
	if c.vp.Cols <= 0 || c.vp.Rows <= 0 {
		return ""
	}
	c.reset()

	for _, l := range f.Lines {
		c.line(l)
	}
	for _, s := range f.Circles {
		c.set(row(s.Center.Y), col(s.Center.X), cell{r: GlyphStep, kind: cellStep, color: s.Fill})
	}
	for _, l := range f.Labels {
		c.label(l)
	}

	return c.flush()
}

func (c *Canvas) reset() {
	c.grid = make([][]cell, c.vp.Rows)
	for i := range c.grid {
		c.grid[i] = make([]cell, c.vp.Cols)
	}
}

func (c *Canvas) line(l progress.Line) {
	ce := cell{kind: cellLine, color: l.Stroke}
	if row(l.From.Y) == row(l.To.Y) {
		ce.r = GlyphDashH
		r := row(l.From.Y)
		c0, c1 := ordered(col(l.From.X), col(l.To.X))
		for x := c0; x <= c1; x++ {
			c.set(r, x, ce)
		}
		return
	}

	ce.r = GlyphDashV
	x := col(l.From.X)
	r0, r1 := ordered(row(l.From.Y), row(l.To.Y))
	for y := r0; y <= r1; y++ {
		c.set(y, x, ce)
	}
}

func (c *Canvas) label(l progress.Label) {
	text := Shape(l.Content)
	w := runewidth.StringWidth(text)

	x := col(l.Position.X)
	switch l.HAlign {
	case progress.AlignCenter:
		x -= w / 2
	case progress.AlignEnd:
		x -= w
	}
	y := row(l.Position.Y)

	for _, r := range text {
		rw := runewidth.RuneWidth(r)
		if rw == 0 {
			continue
		}
		if x+rw > c.vp.Cols {
			return
		}
		if x < 0 {
			// Half a wide rune is still on screen: keep the column filled.
			if x+rw > 0 {
				c.set(y, 0, cell{r: ' ', kind: cellText, color: l.Color, bold: l.Bold()})
			}
			x += rw
			continue
		}
		c.set(y, x, cell{r: r, kind: cellText, color: l.Color, bold: l.Bold()})
		if rw == 2 {
			c.set(y, x+1, cell{kind: cellWide, color: l.Color, bold: l.Bold()})
		}
		x += rw
	}
}

// set writes ce at (y, x), clearing any double-width rune it splits.
func (c *Canvas) set(y, x int, ce cell) {
	if y < 0 || y >= c.vp.Rows || x < 0 || x >= c.vp.Cols {
		return
	}
	cells := c.grid[y]
	if cells[x].kind == cellWide && x > 0 && ce.kind != cellWide {
		cells[x-1] = cell{}
	}
	if x+1 < len(cells) && cells[x+1].kind == cellWide && ce.kind != cellWide {
		cells[x+1] = cell{}
	}
	cells[x] = ce
}

func (c *Canvas) flush() string {
	lines := make([]string, len(c.grid))
	for y, cells := range c.grid {
		var b strings.Builder
		var run strings.Builder
		var cur cell
		emit := func() {
			if run.Len() == 0 {
				return
			}
			b.WriteString(c.style(cur).Render(run.String()))
			run.Reset()
		}
		for _, ce := range cells {
			if ce.kind == cellWide {
				continue
			}
			if !sameStyle(ce, cur) {
				emit()
				cur = ce
			}
			if ce.kind == cellEmpty {
				run.WriteByte(' ')
			} else {
				run.WriteRune(ce.r)
			}
		}
		emit()
		lines[y] = b.String()
	}
	return strings.Join(lines, "\n")
}

func (c *Canvas) style(ce cell) lipgloss.Style {
	s := c.renderer.NewStyle()
	if ce.kind == cellEmpty {
		return s
	}
	return s.Foreground(ce.color.Lipgloss()).Bold(ce.bold)
}

func sameStyle(a, b cell) bool {
	if a.kind == cellEmpty || b.kind == cellEmpty {
		return a.kind == b.kind
	}
	return a.color == b.color && a.bold == b.bold
}

// Shape prepares label text for the terminal. Control and unprintable runes
// are replaced with GlyphFallback so a bad label still draws.
func Shape(s string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r == unicode.ReplacementChar:
			return GlyphFallback
		case unicode.IsPrint(r), r == '\u200d', r == '\ufe0f':
			return r
		default:
			return GlyphFallback
		}
	}, s)
}

func col(x float64) int { return int(math.Floor(x / CellWidth)) }
func row(y float64) int { return int(math.Floor(y / CellHeight)) }

func ordered(a, b int) (int, int) {
	if a > b {
		return b, a
	}
	return a, b
}
