// Package quake models earthquake records read from a GeoJSON feed.
package quake

import (
	"time"

	geojson "github.com/paulmach/go.geojson"
	"github.com/samber/lo"
)

// Coordinates is a geographic position in degrees.
type Coordinates struct {
	Lon   float64
	Lat   float64
	Depth float64 // km, zero when the feed omits it
}

// Event is one feed record. Coordinates is nil when the feed carried no
// usable geometry.
type Event struct {
	ID          string
	Magnitude   float64
	Place       string
	Time        time.Time
	Coordinates *Coordinates
}

// Located reports whether the event can be placed on a map.
func (e Event) Located() bool { return e.Coordinates != nil }

// FromFeatureCollection converts feed features into events, in feed order.
// A null magnitude reads as 0.
func FromFeatureCollection(fc *geojson.FeatureCollection) []Event {
	if fc == nil {
		return nil
	}
	return lo.Map(fc.Features, func(f *geojson.Feature, _ int) Event {
		return fromFeature(f)
	})
}

func fromFeature(f *geojson.Feature) Event {
	var e Event
	if f == nil {
		return e
	}
	if id, ok := f.ID.(string); ok {
		e.ID = id
	}
	e.Magnitude = f.PropertyMustFloat64("mag", 0)
	e.Place = f.PropertyMustString("place", "")
	if ms := f.PropertyMustFloat64("time", 0); ms != 0 {
		e.Time = time.UnixMilli(int64(ms)).UTC()
	}
	if g := f.Geometry; g != nil && g.IsPoint() && len(g.Point) >= 2 {
		c := &Coordinates{Lon: g.Point[0], Lat: g.Point[1]}
		if len(g.Point) >= 3 {
			c.Depth = g.Point[2]
		}
		e.Coordinates = c
	}
	return e
}

// Prepare drops events without coordinates and reverses the remainder so the
// oldest event comes first. The feed is expected newest first; that ordering
// is not checked. events is left untouched.
func Prepare(events []Event) []Event {
	located := lo.Filter(events, func(e Event, _ int) bool {
		return e.Located()
	})
	return lo.Reverse(located)
}
