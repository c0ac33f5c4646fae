package tui

const (
	headerHeight = 1
	footerHeight = 1

	// hoverSlack widens the hit area around a circle, in micro-pixels.
	hoverSlack = 3.0
)

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// mapSize is the map area in terminal cells.
func (m Model) mapSize() (int, int) {
	return m.width, m.height - headerHeight - footerHeight
}
