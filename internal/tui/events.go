package tui

import (
	"fmt"
	"time"

	table "github.com/charmbracelet/bubbles/table"
	"github.com/samber/lo"

	"quakemap/internal/scene"
)

func eventColumns() []table.Column {
	return []table.Column{
		{Title: "#", Width: 4},
		{Title: "time (UTC)", Width: 19},
		{Title: "mag", Width: 5},
		{Title: "place", Width: 36},
		{Title: "lon", Width: 9},
		{Title: "lat", Width: 8},
		{Title: "depth", Width: 7},
	}
}

func eventRow(i int, c scene.Circle) table.Row {
	e := c.Event
	t := ""
	if !e.Time.IsZero() {
		t = e.Time.UTC().Format(time.DateTime)
	}
	return table.Row{
		fmt.Sprintf("%d", i+1),
		t,
		fmt.Sprintf("%.1f", e.Magnitude),
		e.Place,
		fmt.Sprintf("%.3f", e.Coordinates.Lon),
		fmt.Sprintf("%.3f", e.Coordinates.Lat),
		fmt.Sprintf("%.1f", e.Coordinates.Depth),
	}
}

// refreshEvents rebuilds the table from the plotted earthquakes, newest
// first.
func (m *Model) refreshEvents() {
	circles := m.surface.Earthquakes()
	rows := lo.Times(len(circles), func(i int) table.Row {
		return eventRow(i, circles[len(circles)-1-i])
	})
	// Avoid transient mismatch: clear rows, set columns, then set rows
	m.tbl.SetRows(nil)
	m.tbl.SetColumns(eventColumns())
	m.tbl.SetRows(rows)
	m.tbl.GotoTop()
}

// hovered returns the circle under the pointer, if any.
func (m Model) hovered() (scene.Circle, bool) {
	qs := m.surface.Earthquakes()
	if m.hoverQuake < 0 || m.hoverQuake >= len(qs) {
		return scene.Circle{}, false
	}
	return qs[m.hoverQuake], true
}
