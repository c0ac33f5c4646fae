// Package render holds the current shape set and paints it onto a Canvas.
package render

import (
	"time"

	"github.com/lucasb-eyer/go-colorful"

	"quakemap/internal/scene"
)

// Canvas is a drawing backend working in surface pixels.
type Canvas interface {
	// Line strokes a segment in the outline style.
	Line(x0, y0, x1, y1 float64)
	// Disc fills a circle.
	Disc(x, y, r float64, c colorful.Color)
	// Panel blanks a rectangle and frames it.
	Panel(r scene.Rect)
	// Text writes s centred on x at row y.
	Text(x, y float64, s string)
}

// Counts is the number of shapes a Surface holds.
type Counts struct {
	Countries   int
	Earthquakes int
	Legend      int
}

// Surface is the retained shape set for one map. Every replace discards the
// previous set in full; nothing is diffed.
type Surface struct {
	countries   []scene.Path
	earthquakes []scene.Circle
	legend      *scene.Legend
}

func NewSurface() *Surface { return &Surface{} }

// Clear drops every shape.
func (s *Surface) Clear() {
	s.countries = nil
	s.earthquakes = nil
	s.legend = nil
}

func (s *Surface) ReplaceCountries(paths []scene.Path) {
	s.countries = paths
}

func (s *Surface) ReplaceEarthquakes(circles []scene.Circle) {
	s.earthquakes = circles
}

func (s *Surface) SetLegend(l scene.Legend) {
	s.legend = &l
}

// Earthquakes returns the bound circles in draw order.
func (s *Surface) Earthquakes() []scene.Circle { return s.earthquakes }

func (s *Surface) Counts() Counts {
	c := Counts{Countries: len(s.countries), Earthquakes: len(s.earthquakes)}
	if s.legend != nil {
		c.Legend = len(s.legend.Entries)
	}
	return c
}

// Settled reports whether every circle has finished animating at elapsed.
func (s *Surface) Settled(elapsed time.Duration) bool {
	if n := len(s.earthquakes); n > 0 {
		return s.earthquakes[n-1].Settled(elapsed)
	}
	return true
}

// Draw paints countries, then earthquakes at their state after elapsed, then
// the legend on top.
func (s *Surface) Draw(c Canvas, elapsed time.Duration) {
	for _, p := range s.countries {
		for _, ring := range p.Rings {
			for i := 1; i < len(ring); i++ {
				c.Line(ring[i-1].X, ring[i-1].Y, ring[i].X, ring[i].Y)
			}
		}
	}
	for _, q := range s.earthquakes {
		r, col := q.At(elapsed)
		if r <= 0 {
			continue
		}
		c.Disc(q.X, q.Y, r, col)
	}
	if s.legend == nil {
		return
	}
	c.Panel(s.legend.Panel)
	for _, e := range s.legend.Entries {
		c.Disc(e.X, e.Y, e.Radius, e.Color)
		c.Text(e.LabelX, e.LabelY, e.Label)
	}
}
