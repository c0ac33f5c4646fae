package geom

import (
	"encoding/json"

	geojson "github.com/paulmach/go.geojson"
	"github.com/pkg/errors"
)

var (
	ErrNotTopology   = errors.New("document is not a topology")
	ErrUnknownObject = errors.New("topology object not found")
)

// Transform dequantizes delta-encoded arc positions.
type Transform struct {
	Scale     [2]float64 `json:"scale"`
	Translate [2]float64 `json:"translate"`
}

// TopoObject is a topology geometry or geometry collection. Arcs stays raw
// because its nesting depth depends on Type.
type TopoObject struct {
	Type       string                 `json:"type"`
	ID         interface{}            `json:"id,omitempty"`
	Properties map[string]interface{} `json:"properties,omitempty"`
	Arcs       json.RawMessage        `json:"arcs,omitempty"`
	Geometries []TopoObject           `json:"geometries,omitempty"`
}

// Topology is a decoded TopoJSON document with absolute arc positions.
type Topology struct {
	Type      string                `json:"type"`
	Transform *Transform            `json:"transform,omitempty"`
	Arcs      [][][]float64         `json:"arcs"`
	Objects   map[string]TopoObject `json:"objects"`
}

// ParseTopology decodes a TopoJSON document and resolves quantized arcs.
func ParseTopology(data []byte) (*Topology, error) {
	var t Topology
	if err := json.Unmarshal(data, &t); err != nil {
		return nil, errors.Wrap(err, "decode topology")
	}
	if t.Type != "Topology" {
		return nil, errors.Wrapf(ErrNotTopology, "type %q", t.Type)
	}
	if t.Transform != nil {
		t.Arcs = dequantize(t.Arcs, *t.Transform)
	}
	return &t, nil
}

func dequantize(arcs [][][]float64, tr Transform) [][][]float64 {
	out := make([][][]float64, len(arcs))
	for i, arc := range arcs {
		var x, y float64
		pts := make([][]float64, 0, len(arc))
		for _, p := range arc {
			if len(p) < 2 {
				continue
			}
			x += p[0]
			y += p[1]
			pts = append(pts, []float64{x*tr.Scale[0] + tr.Translate[0], y*tr.Scale[1] + tr.Translate[1]})
		}
		out[i] = pts
	}
	return out
}

// Features expands the named object into Polygon and MultiPolygon features.
// Geometries of any other type, or with no arcs, are skipped.
func (t *Topology) Features(object string) ([]*geojson.Feature, error) {
	obj, ok := t.Objects[object]
	if !ok {
		return nil, errors.Wrapf(ErrUnknownObject, "%q", object)
	}

	geoms := obj.Geometries
	if obj.Type != "GeometryCollection" {
		geoms = []TopoObject{obj}
	}

	features := make([]*geojson.Feature, 0, len(geoms))
	for i, g := range geoms {
		geometry, err := t.geometry(g)
		if err != nil {
			return nil, errors.Wrapf(err, "geometry %d", i)
		}
		if geometry == nil {
			continue
		}
		f := geojson.NewFeature(geometry)
		f.ID = g.ID
		for k, v := range g.Properties {
			f.SetProperty(k, v)
		}
		features = append(features, f)
	}
	return features, nil
}

func (t *Topology) geometry(g TopoObject) (*geojson.Geometry, error) {
	if len(g.Arcs) == 0 {
		return nil, nil
	}
	switch g.Type {
	case "Polygon":
		var arcs [][]int
		if err := json.Unmarshal(g.Arcs, &arcs); err != nil {
			return nil, errors.Wrap(err, "polygon arcs")
		}
		poly, err := t.polygon(arcs)
		if err != nil {
			return nil, err
		}
		return geojson.NewPolygonGeometry(poly), nil
	case "MultiPolygon":
		var arcs [][][]int
		if err := json.Unmarshal(g.Arcs, &arcs); err != nil {
			return nil, errors.Wrap(err, "multipolygon arcs")
		}
		polys := make([][][][]float64, 0, len(arcs))
		for _, p := range arcs {
			poly, err := t.polygon(p)
			if err != nil {
				return nil, err
			}
			polys = append(polys, poly)
		}
		return geojson.NewMultiPolygonGeometry(polys...), nil
	}
	return nil, nil
}

func (t *Topology) polygon(rings [][]int) ([][][]float64, error) {
	out := make([][][]float64, 0, len(rings))
	for _, r := range rings {
		ring, err := t.ring(r)
		if err != nil {
			return nil, err
		}
		out = append(out, ring)
	}
	return out, nil
}

// ring stitches arcs end to end. Consecutive arcs share a vertex, so the last
// point collected so far is dropped before appending the next arc.
func (t *Topology) ring(indices []int) ([][]float64, error) {
	var points [][]float64
	for _, i := range indices {
		reverse := i < 0
		if reverse {
			i = ^i
		}
		if i >= len(t.Arcs) {
			return nil, errors.Errorf("arc %d out of range (%d arcs)", i, len(t.Arcs))
		}
		if len(points) > 0 {
			points = points[:len(points)-1]
		}
		arc := t.Arcs[i]
		for k := range arc {
			p := arc[k]
			if reverse {
				p = arc[len(arc)-1-k]
			}
			points = append(points, []float64{p[0], p[1]})
		}
	}
	for len(points) > 0 && len(points) < 4 {
		points = append(points, points[0])
	}
	return points, nil
}
