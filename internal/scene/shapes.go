package scene

import (
	"time"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/samber/lo"

	"quakemap/internal/geom"
	"quakemap/internal/quake"
	"quakemap/internal/scale"
)

const (
	// GrowDuration is how long one circle takes to reach its size.
	GrowDuration = 900 * time.Millisecond
	// Stagger separates the start of consecutive circles.
	Stagger = 200 * time.Millisecond
)

type Point struct {
	X, Y float64
}

// Path is a projected country outline.
type Path struct {
	Rings [][]Point
}

// Circle is an earthquake marker. Radius and Color are the values the
// animation settles on.
type Circle struct {
	Index  int
	X, Y   float64
	Radius float64
	Color  colorful.Color
	Delay  time.Duration
	Event  quake.Event
}

// Countries projects every ring of every polygon.
func Countries(ctx Context, polygons []geom.Polygon) []Path {
	return lo.Map(polygons, func(poly geom.Polygon, _ int) Path {
		rings := make([][]Point, 0, len(poly))
		for _, ring := range poly {
			pts := make([]Point, len(ring))
			for i, p := range ring {
				x, y := ctx.Projection.Project(p[0], p[1])
				pts[i] = Point{X: x, Y: y}
			}
			rings = append(rings, pts)
		}
		return Path{Rings: rings}
	})
}

// Earthquakes binds one circle per located event, in order. Events without
// coordinates get no circle and do not take a stagger slot.
func Earthquakes(ctx Context, events []quake.Event) []Circle {
	circles := make([]Circle, 0, len(events))
	for _, e := range events {
		if !e.Located() {
			continue
		}
		i := len(circles)
		x, y := ctx.Projection.Project(e.Coordinates.Lon, e.Coordinates.Lat)
		circles = append(circles, Circle{
			Index:  i,
			X:      x,
			Y:      y,
			Radius: scale.Size(e.Magnitude),
			Color:  scale.Color(e.Magnitude),
			Delay:  time.Duration(i) * Stagger,
			Event:  e,
		})
	}
	return circles
}
