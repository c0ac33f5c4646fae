package tui

import "strings"

// renderMap paints the surface at the current animation state onto a fresh
// braille canvas of w x h cells.
func (m Model) renderMap(w, h int) string {
	if w <= 0 || h <= 0 {
		return ""
	}
	c := newBrailleCanvas(w, h)
	m.surface.Draw(c, m.elapsed())

	// Hover highlight: orange ring on the hovered earthquake
	if q, ok := m.hovered(); ok {
		c.mark(q.X, q.Y, '◯')
	}
	return strings.Join(c.toLines(), "\n")
}
