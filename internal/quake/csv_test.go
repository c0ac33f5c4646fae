package quake

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const feedCSV = `time,latitude,longitude,depth,mag,magType,id,place
2024-05-01T10:00:00.000Z,61.2,-150.5,33.1,2.4,ml,ak1,"10 km N of Anchorage, Alaska"
2024-05-01T09:00:00.000Z,,,,1.1,md,nc1,nowhere
2024-05-01T08:00:00.000Z,-20,170,10,,mb,us1,Vanuatu
`

func TestFromCSV(t *testing.T) {
	events, err := FromCSV(strings.NewReader(feedCSV))
	require.NoError(t, err)
	require.Len(t, events, 3)

	e := events[0]
	assert.Equal(t, "ak1", e.ID)
	assert.Equal(t, 2.4, e.Magnitude)
	assert.Equal(t, "10 km N of Anchorage, Alaska", e.Place)
	assert.Equal(t, 2024, e.Time.Year())
	require.NotNil(t, e.Coordinates)
	assert.Equal(t, Coordinates{Lon: -150.5, Lat: 61.2, Depth: 33.1}, *e.Coordinates)

	assert.False(t, events[1].Located())
	assert.Zero(t, events[2].Magnitude)

	assert.Len(t, Prepare(events), 2)
}

func TestFromCSV_HeaderAliases(t *testing.T) {
	events, err := FromCSV(strings.NewReader("Lng,LAT\n1,2\n"))
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, Coordinates{Lon: 1, Lat: 2}, *events[0].Coordinates)
}

func TestFromCSV_Errors(t *testing.T) {
	_, err := FromCSV(strings.NewReader(""))
	assert.Error(t, err)

	_, err = FromCSV(strings.NewReader("mag,place\n1,x\n"))
	assert.ErrorIs(t, err, ErrNoCoordinateColumns)
}
