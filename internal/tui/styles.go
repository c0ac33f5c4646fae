package tui

import "github.com/charmbracelet/lipgloss"

// Styles
var (
	baseFg    = lipgloss.Color("#E6E6E6")
	baseDimFg = lipgloss.AdaptiveColor{Light: "#6B7280", Dark: "#6B7280"}
	accentFg  = lipgloss.Color("#7C3AED")
	borderCol = lipgloss.Color("#243141")
	outlineFg = lipgloss.Color("#4B5A6B")
	hoverFg   = lipgloss.Color("#FFA500")
	errorFg   = lipgloss.Color("#F87171")

	appStyle     = lipgloss.NewStyle().Foreground(baseFg)
	boxStyle     = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(borderCol).Padding(0, 1)
	titleStyle   = lipgloss.NewStyle().Foreground(accentFg).Bold(true)
	dimStyle     = lipgloss.NewStyle().Foreground(baseDimFg)
	errorStyle   = lipgloss.NewStyle().Foreground(errorFg)
	outlineStyle = lipgloss.NewStyle().Foreground(outlineFg)
	panelStyle   = lipgloss.NewStyle().Foreground(borderCol)
	labelStyle   = lipgloss.NewStyle().Foreground(baseFg)
	hoverStyle   = lipgloss.NewStyle().Foreground(hoverFg)
)
