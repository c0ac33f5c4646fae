package quake

import (
	"encoding/csv"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"
)

var ErrNoCoordinateColumns = errors.New("csv: latitude/longitude columns not found")

type csvColumns struct {
	lat, lon, depth, mag, place, time, id int
}

// detectColumns finds the columns of interest by header name,
// case-insensitive. Missing optional columns are -1.
func detectColumns(header []string) (csvColumns, error) {
	c := csvColumns{-1, -1, -1, -1, -1, -1, -1}
	set := func(idx *int, i int) {
		if *idx == -1 {
			*idx = i
		}
	}
	for i, h := range header {
		switch strings.ToLower(strings.TrimSpace(h)) {
		case "lat", "latitude", "y":
			set(&c.lat, i)
		case "lon", "lng", "long", "longitude", "x":
			set(&c.lon, i)
		case "depth":
			set(&c.depth, i)
		case "mag", "magnitude":
			set(&c.mag, i)
		case "place":
			set(&c.place, i)
		case "time":
			set(&c.time, i)
		case "id":
			set(&c.id, i)
		}
	}
	if c.lat == -1 || c.lon == -1 {
		return c, ErrNoCoordinateColumns
	}
	return c, nil
}

// FromCSV reads the CSV flavour of the feed. Rows whose latitude or longitude
// does not parse come back without Coordinates, like null geometries in the
// GeoJSON feed.
func FromCSV(r io.Reader) ([]Event, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true
	cr.FieldsPerRecord = -1
	recs, err := cr.ReadAll()
	if err != nil {
		return nil, errors.Wrap(err, "csv")
	}
	if len(recs) == 0 {
		return nil, errors.New("empty csv")
	}
	cols, err := detectColumns(recs[0])
	if err != nil {
		return nil, err
	}

	events := make([]Event, 0, len(recs)-1)
	for _, row := range recs[1:] {
		field := func(i int) string {
			if i < 0 || i >= len(row) {
				return ""
			}
			return strings.TrimSpace(row[i])
		}
		number := func(i int) float64 {
			v, _ := strconv.ParseFloat(field(i), 64)
			return v
		}

		e := Event{
			ID:        field(cols.id),
			Magnitude: number(cols.mag),
			Place:     field(cols.place),
		}
		if t, err := time.Parse(time.RFC3339Nano, field(cols.time)); err == nil {
			e.Time = t.UTC()
		}
		lon, err1 := strconv.ParseFloat(field(cols.lon), 64)
		lat, err2 := strconv.ParseFloat(field(cols.lat), 64)
		if err1 == nil && err2 == nil {
			e.Coordinates = &Coordinates{Lon: lon, Lat: lat, Depth: number(cols.depth)}
		}
		events = append(events, e)
	}
	return events, nil
}
