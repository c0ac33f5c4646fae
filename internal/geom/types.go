package geom

type BBox struct {
	MinX float64
	MinY float64
	MaxX float64
	MaxY float64
}

// Extend grows the box to cover pt. With first set the box restarts at pt.
func (b BBox) Extend(pt [2]float64, first bool) BBox {
	if first {
		return BBox{MinX: pt[0], MinY: pt[1], MaxX: pt[0], MaxY: pt[1]}
	}
	if pt[0] < b.MinX {
		b.MinX = pt[0]
	}
	if pt[1] < b.MinY {
		b.MinY = pt[1]
	}
	if pt[0] > b.MaxX {
		b.MaxX = pt[0]
	}
	if pt[1] > b.MaxY {
		b.MaxY = pt[1]
	}
	return b
}

// Ring is a closed sequence of lon/lat positions.
type Ring [][2]float64

// Polygon holds rings, first outer, following holes.
type Polygon []Ring

// Data is a minimal polygon container for rendering
type Data struct {
	Polygons []Polygon
	BBox     BBox
}
