// Package projection converts between lon/lat and surface pixels.
package projection

import "math"

// MaxLatitude keeps Mercator y finite; the square world map is bounded here.
const MaxLatitude = 85.0511287798066

// Mercator is a spherical Mercator projection with a pixel scale and
// translate: x = TX + Scale*lambda, y = TY - Scale*ln(tan(pi/4 + phi/2)).
type Mercator struct {
	Scale float64
	TX    float64
	TY    float64
}

// ForViewport fits the whole longitude range across width and centres the
// equator and prime meridian on the surface.
func ForViewport(width, height int) Mercator {
	return Mercator{
		Scale: float64(width-1) / 2 / math.Pi,
		TX:    float64(width) / 2,
		TY:    float64(height) / 2,
	}
}

// Project maps lon/lat degrees to surface pixels.
func (m Mercator) Project(lon, lat float64) (x, y float64) {
	lat = math.Max(-MaxLatitude, math.Min(MaxLatitude, lat))
	lambda := lon * math.Pi / 180
	phi := lat * math.Pi / 180
	x = m.TX + m.Scale*lambda
	y = m.TY - m.Scale*math.Log(math.Tan(math.Pi/4+phi/2))
	return x, y
}

// Invert maps surface pixels back to lon/lat degrees.
func (m Mercator) Invert(x, y float64) (lon, lat float64) {
	if m.Scale == 0 {
		return 0, 0
	}
	lambda := (x - m.TX) / m.Scale
	phi := 2*math.Atan(math.Exp((m.TY-y)/m.Scale)) - math.Pi/2
	return lambda * 180 / math.Pi, phi * 180 / math.Pi
}
