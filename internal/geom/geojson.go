package geom

import (
	geojson "github.com/paulmach/go.geojson"
)

// FromFeatures flattens Polygon and MultiPolygon features into Data.
// Features with no geometry or any other geometry type are ignored.
func FromFeatures(features []*geojson.Feature) Data {
	var d Data
	seen := false
	addPoly := func(rings [][][]float64) {
		var poly Polygon
		for _, r := range rings {
			ring := make(Ring, 0, len(r))
			for _, p := range r {
				if len(p) < 2 {
					continue
				}
				pt := [2]float64{p[0], p[1]}
				d.BBox = d.BBox.Extend(pt, !seen)
				seen = true
				ring = append(ring, pt)
			}
			if len(ring) > 0 {
				poly = append(poly, ring)
			}
		}
		if len(poly) > 0 {
			d.Polygons = append(d.Polygons, poly)
		}
	}
	var walkGeom func(g *geojson.Geometry)
	walkGeom = func(g *geojson.Geometry) {
		switch {
		case g == nil:
		case g.IsPolygon():
			addPoly(g.Polygon)
		case g.IsMultiPolygon():
			for _, p := range g.MultiPolygon {
				addPoly(p)
			}
		case g.IsCollection():
			for _, sub := range g.Geometries {
				walkGeom(sub)
			}
		}
	}
	for _, f := range features {
		if f == nil {
			continue
		}
		walkGeom(f.Geometry)
	}
	return d
}
