package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}
	mapWidth, mapHeight := m.mapSize()
	mapHeight = max(1, mapHeight)

	// Header
	header := titleStyle.Render(" quakemap ─ earthquakes, last day ")
	header = lipgloss.NewStyle().Width(m.width).Padding(0).Render(header)

	var body string
	if m.showEvents {
		colW := 0
		for _, c := range m.tbl.Columns() {
			colW += c.Width + 2
		}
		maxW := min(mapWidth, colW+4)
		m.tbl.SetWidth(max(10, maxW-4))
		box := boxStyle.Width(maxW).Render(m.tbl.View())
		body = lipgloss.Place(mapWidth, mapHeight, lipgloss.Center, lipgloss.Center, box)
	} else {
		body = lipgloss.NewStyle().Width(mapWidth).Height(mapHeight).Render(m.renderMap(mapWidth, mapHeight))
	}

	// Footer / help
	left := lipgloss.JoinHorizontal(lipgloss.Bottom, m.renderStatus(), m.renderHelp())
	coords := m.renderHover()
	spacerW := max(0, m.width-lipgloss.Width(left)-lipgloss.Width(coords))
	right := lipgloss.Place(spacerW+lipgloss.Width(coords), 1, lipgloss.Right, lipgloss.Center, coords)
	footer := lipgloss.NewStyle().Width(m.width).MaxHeight(footerHeight).Render(lipgloss.JoinHorizontal(lipgloss.Bottom, left, right))

	ui := lipgloss.JoinVertical(lipgloss.Left, header, body, footer)
	return appStyle.Width(m.width).Height(m.height).Render(ui)
}

func (m Model) renderStatus() string {
	if m.phase != phaseIdle {
		return dimStyle.Render(" "+m.spin.View()+" ") + dimStyle.Render(m.status+" ")
	}
	if strings.HasPrefix(m.status, "error:") {
		return errorStyle.Render(" " + m.status + " ")
	}
	return dimStyle.Render(" " + m.status + " ")
}

// renderHover shows the pointer position and the earthquake under it.
func (m Model) renderHover() string {
	if !m.hoverHasGeo {
		return ""
	}
	s := fmt.Sprintf("lon=%.3f lat=%.3f", m.hoverLon, m.hoverLat)
	if q, ok := m.hovered(); ok {
		s = fmt.Sprintf("M%.1f %s  %s", q.Event.Magnitude, q.Event.Place, s)
	}
	return dimStyle.Render("  " + s + "  ")
}

func (m Model) renderHelp() string {
	if !m.helpVisible {
		return ""
	}
	keys := []string{
		"r reload",
		"a events",
		"h help",
		"q quit",
	}
	if m.showEvents {
		keys = []string{"↑↓ scroll", "esc map", "h help", "q quit"}
	}
	return dimStyle.Render("  " + strings.Join(keys, "  "))
}
