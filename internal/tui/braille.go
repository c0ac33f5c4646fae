package tui

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"

	"quakemap/internal/scene"
)

type cellKind uint8

const (
	cellOutline cellKind = iota
	cellFill
	cellPanel
	cellText
	cellMark
)

type cell struct {
	kind  cellKind
	color string // hex, for cellFill
	r     rune   // overlay rune for cellText and cellMark
}

// brailleCanvas is a render.Canvas over a grid of braille cells, 2x4
// micro-pixels each. Every cell carries one colour; the last shape to touch
// a cell wins.
type brailleCanvas struct {
	w, h  int       // in cells
	m     [][]uint8 // per-cell 8-bit mask
	cells [][]cell
}

func newBrailleCanvas(w, h int) *brailleCanvas {
	m := make([][]uint8, h)
	cells := make([][]cell, h)
	for i := range m {
		m[i] = make([]uint8, w)
		cells[i] = make([]cell, w)
	}
	return &brailleCanvas{w: w, h: h, m: m, cells: cells}
}

func brailleBit(rx, ry int) uint8 {
	if rx == 0 {
		switch ry {
		case 0:
			return 0x01
		case 1:
			return 0x02
		case 2:
			return 0x04
		default:
			return 0x40
		}
	}
	switch ry {
	case 0:
		return 0x08
	case 1:
		return 0x10
	case 2:
		return 0x20
	default:
		return 0x80
	}
}

// locate maps micro coords to a cell. ok is false outside the grid.
func (b *brailleCanvas) locate(mx, my int) (cx, cy int, bit uint8, ok bool) {
	if mx < 0 || my < 0 {
		return 0, 0, 0, false
	}
	cx, cy = mx/2, my/4
	if cy >= b.h || cx >= b.w {
		return 0, 0, 0, false
	}
	return cx, cy, brailleBit(mx%2, my%4), true
}

// setPixel sets a micro-pixel at micro coords (2x4 per cell)
func (b *brailleCanvas) setPixel(mx, my int) {
	if cx, cy, bit, ok := b.locate(mx, my); ok {
		b.m[cy][cx] |= bit
	}
}

func (b *brailleCanvas) clearPixel(mx, my int) {
	if cx, cy, bit, ok := b.locate(mx, my); ok {
		b.m[cy][cx] &^= bit
	}
}

func (b *brailleCanvas) paint(mx, my int, c cell) {
	if cx, cy, bit, ok := b.locate(mx, my); ok {
		b.m[cy][cx] |= bit
		if k := b.cells[cy][cx].kind; k != cellText && k != cellMark {
			b.cells[cy][cx] = c
		}
	}
}

// drawLineMicro draws a line on the microgrid using Bresenham
func (b *brailleCanvas) drawLineMicro(x0, y0, x1, y1 int, plot func(x, y int)) {
	dx := abs(x1 - x0)
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	dy := -abs(y1 - y0)
	sy := -1
	if y0 < y1 {
		sy = 1
	}
	err := dx + dy
	for {
		plot(x0, y0)
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

func round(v float64) int { return int(math.Round(v)) }

func (b *brailleCanvas) Line(x0, y0, x1, y1 float64) {
	b.drawLineMicro(round(x0), round(y0), round(x1), round(y1), b.setPixel)
}

func (b *brailleCanvas) Disc(x, y, r float64, c colorful.Color) {
	fill := cell{kind: cellFill, color: c.Hex()}
	r2 := r * r
	for my := int(math.Floor(y - r)); my <= int(math.Ceil(y+r)); my++ {
		for mx := int(math.Floor(x - r)); mx <= int(math.Ceil(x+r)); mx++ {
			dx := float64(mx) + 0.5 - x
			dy := float64(my) + 0.5 - y
			if dx*dx+dy*dy <= r2 {
				b.paint(mx, my, fill)
			}
		}
	}
}

func (b *brailleCanvas) Panel(r scene.Rect) {
	x0, y0, x1, y1 := round(r.X0), round(r.Y0), round(r.X1), round(r.Y1)
	for my := y0; my <= y1; my++ {
		for mx := x0; mx <= x1; mx++ {
			b.clearPixel(mx, my)
		}
	}
	frame := func(x, y int) { b.paint(x, y, cell{kind: cellPanel}) }
	b.drawLineMicro(x0, y0, x1, y0, frame)
	b.drawLineMicro(x1, y0, x1, y1, frame)
	b.drawLineMicro(x1, y1, x0, y1, frame)
	b.drawLineMicro(x0, y1, x0, y0, frame)
}

func (b *brailleCanvas) Text(x, y float64, s string) {
	runes := []rune(s)
	cy := round(y) / 4
	cx := round(x)/2 - len(runes)/2
	for i, r := range runes {
		b.overlay(cx+i, cy, cell{kind: cellText, r: r})
	}
}

// mark overlays a single rune on the cell under micro coords.
func (b *brailleCanvas) mark(x, y float64, r rune) {
	b.overlay(round(x)/2, round(y)/4, cell{kind: cellMark, r: r})
}

func (b *brailleCanvas) overlay(cx, cy int, c cell) {
	if cx < 0 || cy < 0 || cx >= b.w || cy >= b.h {
		return
	}
	b.cells[cy][cx] = c
}

func (b *brailleCanvas) glyph(x, y int) rune {
	c := b.cells[y][x]
	if c.kind == cellText || c.kind == cellMark {
		return c.r
	}
	if mask := b.m[y][x]; mask != 0 {
		return rune(0x2800 + int(mask))
	}
	return ' '
}

func (b *brailleCanvas) style(c cell) lipgloss.Style {
	switch c.kind {
	case cellFill:
		return lipgloss.NewStyle().Foreground(lipgloss.Color(c.color))
	case cellPanel:
		return panelStyle
	case cellText:
		return labelStyle
	case cellMark:
		return hoverStyle
	}
	return outlineStyle
}

// toLines renders each row, one styled run per stretch of same-styled cells.
func (b *brailleCanvas) toLines() []string {
	out := make([]string, b.h)
	for y := 0; y < b.h; y++ {
		var sb strings.Builder
		var run []rune
		var cur cell
		flush := func() {
			if len(run) > 0 {
				sb.WriteString(b.style(cur).Render(string(run)))
				run = run[:0]
			}
		}
		for x := 0; x < b.w; x++ {
			c := b.cells[y][x]
			c.r = 0
			if x > 0 && c != cur {
				flush()
			}
			cur = c
			run = append(run, b.glyph(x, y))
		}
		flush()
		out[y] = sb.String()
	}
	return out
}
