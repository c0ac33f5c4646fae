package tui

import (
	"math"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.tbl.SetHeight(max(3, min(m.height-headerHeight-footerHeight-4, 20)))
		cmd := m.startCycle("resize")
		return m, cmd
	case boundariesMsg:
		cmd := m.onBoundaries(msg)
		return m, cmd
	case earthquakesMsg:
		cmd := m.onEarthquakes(msg)
		return m, cmd
	case cycleErrMsg:
		m.onCycleErr(msg)
		return m, nil
	case frameMsg:
		if msg.cycle != m.cycle {
			return m, nil
		}
		return m, m.nextFrame()
	case spinner.TickMsg:
		if m.phase == phaseIdle {
			return m, nil
		}
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			m.Close()
			return m, tea.Quit
		case "r":
			cmd := m.startCycle("reload")
			return m, cmd
		case "h":
			m.helpVisible = !m.helpVisible
			return m, nil
		case "a":
			m.showEvents = !m.showEvents
			return m, nil
		case "esc":
			m.showEvents = false
			return m, nil
		}
		if m.showEvents {
			var cmd tea.Cmd
			m.tbl, cmd = m.tbl.Update(msg)
			return m, cmd
		}
	case tea.MouseMsg:
		m.hover(msg.X, msg.Y)
	}
	return m, nil
}

// hover tracks the lon/lat under the pointer and the earthquake nearest to it.
func (m *Model) hover(x, y int) {
	w, h := m.mapSize()
	cx, cy := x, y-headerHeight
	if m.showEvents || cx < 0 || cy < 0 || cx >= w || cy >= h || m.rc.Width == 0 {
		m.hoverHasGeo = false
		m.hoverQuake = -1
		return
	}
	// centre of the cell in micro-pixels
	px := float64(cx*2) + 1
	py := float64(cy*4) + 2
	m.hoverLon, m.hoverLat = m.rc.Projection.Invert(px, py)
	m.hoverHasGeo = true

	m.hoverQuake = -1
	best := math.Inf(1)
	for i, c := range m.surface.Earthquakes() {
		d := math.Hypot(c.X-px, c.Y-py)
		if d <= c.Radius+hoverSlack && d < best {
			best = d
			m.hoverQuake = i
		}
	}
}
