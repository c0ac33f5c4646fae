// Package scene turns fetched boundaries and earthquakes into positioned
// shapes for one viewport. Nothing here draws; see package render.
package scene

import (
	"github.com/pkg/errors"

	"quakemap/internal/projection"
)

// ErrNoSurface is returned when the drawing surface has no area to measure.
var ErrNoSurface = errors.New("drawing surface has no area")

// Context is the per-cycle render state: surface size in pixels and the
// projection derived from it. A new Context is built for every render cycle.
type Context struct {
	Width      int
	Height     int
	Projection projection.Mercator
}

func NewContext(width, height int) (Context, error) {
	if width <= 0 || height <= 0 {
		return Context{}, errors.Wrapf(ErrNoSurface, "%dx%d", width, height)
	}
	return Context{
		Width:      width,
		Height:     height,
		Projection: projection.ForViewport(width, height),
	}, nil
}
