package scene

import (
	"strconv"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/samber/lo"

	"quakemap/internal/scale"
)

// Legend layout in pixels.
const (
	LegendNodeSize  = 16.0
	LegendXOffset   = 6.0
	LegendYOffset   = 2.0
	LegendLabelLift = 6.0
)

type Rect struct {
	X0, Y0, X1, Y1 float64
}

type LegendEntry struct {
	Magnitude float64
	X, Y      float64
	Radius    float64
	Color     colorful.Color
	Label     string
	// LabelX, LabelY is the centre of the label text.
	LabelX, LabelY float64
}

type Legend struct {
	Panel   Rect
	Entries []LegendEntry
}

// NewLegend lays out one entry per magnitude breakpoint along the bottom-left
// of the surface, using the same scales as the earthquake circles.
func NewLegend(ctx Context) Legend {
	n := float64(len(scale.MagnitudeDomain))
	h := float64(ctx.Height)
	bottom := h - LegendYOffset

	panel := Rect{
		X0: LegendXOffset,
		Y0: h - LegendNodeSize - LegendNodeSize/3 - LegendYOffset,
		X1: (LegendNodeSize + 1) * n,
		Y1: bottom,
	}

	entries := lo.Map(scale.MagnitudeDomain, func(mag float64, i int) LegendEntry {
		x := 2*LegendXOffset + LegendNodeSize*float64(i)
		y := bottom - LegendNodeSize/2
		return LegendEntry{
			Magnitude: mag,
			X:         x,
			Y:         y,
			Radius:    scale.Size(mag),
			Color:     scale.Color(mag),
			Label:     "M" + strconv.FormatFloat(mag, 'f', -1, 64),
			LabelX:    x,
			LabelY:    y - LegendLabelLift,
		}
	})

	return Legend{Panel: panel, Entries: entries}
}
