package geom

import (
	"testing"

	geojson "github.com/paulmach/go.geojson"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromFeatures(t *testing.T) {
	features := []*geojson.Feature{
		geojson.NewFeature(geojson.NewPolygonGeometry([][][]float64{
			{{0, 0}, {10, 0}, {10, 10}, {0, 0}},
		})),
		geojson.NewFeature(geojson.NewMultiPolygonGeometry(
			[][][]float64{{{-20, -5}, {-15, -5}, {-15, 0}, {-20, -5}}},
			[][][]float64{{{30, 40}, {35, 40}, {35, 45}, {30, 40}}},
		)),
		geojson.NewFeature(geojson.NewPointGeometry([]float64{100, 80})),
		{Type: "Feature"},
		nil,
	}

	d := FromFeatures(features)

	require.Len(t, d.Polygons, 3)
	assert.Equal(t, Ring{{0, 0}, {10, 0}, {10, 10}, {0, 0}}, d.Polygons[0][0])
	assert.Equal(t, BBox{MinX: -20, MinY: -5, MaxX: 35, MaxY: 45}, d.BBox)
}

func TestFromFeatures_Empty(t *testing.T) {
	d := FromFeatures(nil)
	assert.Empty(t, d.Polygons)
	assert.Equal(t, BBox{}, d.BBox)
}
