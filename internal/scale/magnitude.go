package scale

import "github.com/lucasb-eyer/go-colorful"

// MagnitudeDomain is the breakpoint domain shared by the size and colour
// scales and by the legend.
var MagnitudeDomain = []float64{-1, 0, 1, 2, 3, 4, 5, 6, 9}

var (
	magnitudeSizes = []float64{1, 1, 1.5, 3, 4.5, 6, 7.5, 9, 13.5}

	// colorbrewer OrRd, 9 classes
	magnitudeColors = []string{
		"#fff7ec", "#fee8c8",
		"#fdd49e", "#fdbb84",
		"#fc8d59", "#ef6548",
		"#d7301f", "#b30000", "#7f0000",
	}

	sizeScale  = mustLinear(MagnitudeDomain, magnitudeSizes)
	colorScale = mustColors(MagnitudeDomain, magnitudeColors)
)

// Size is the circle radius, in pixels, for a magnitude.
func Size(mag float64) float64 { return sizeScale.At(mag) }

// Color is the circle fill for a magnitude.
func Color(mag float64) colorful.Color { return colorScale.At(mag) }

func mustLinear(domain, values []float64) Linear {
	s, err := NewLinear(domain, values)
	if err != nil {
		panic(err)
	}
	return s
}

func mustColors(domain []float64, hex []string) Colors {
	s, err := NewColors(domain, hex)
	if err != nil {
		panic(err)
	}
	return s
}
