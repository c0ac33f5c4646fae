// Package scale maps earthquake magnitude to circle size and colour.
package scale

import (
	"fmt"
	"sort"

	"github.com/lucasb-eyer/go-colorful"
)

// segment returns the index i of the domain segment [domain[i], domain[i+1]]
// used for x and the position t of x inside it. Values past either end use the
// edge segment, so t may fall outside [0, 1].
func segment(domain []float64, x float64) (int, float64) {
	i := sort.SearchFloat64s(domain, x) - 1
	if i < 0 {
		i = 0
	}
	if i > len(domain)-2 {
		i = len(domain) - 2
	}
	span := domain[i+1] - domain[i]
	if span == 0 {
		return i, 0
	}
	return i, (x - domain[i]) / span
}

// Linear is a piecewise-linear scale over an ascending domain.
type Linear struct {
	domain []float64
	values []float64
}

func NewLinear(domain, values []float64) (Linear, error) {
	if err := checkDomain(domain, len(values)); err != nil {
		return Linear{}, err
	}
	return Linear{domain: append([]float64(nil), domain...), values: append([]float64(nil), values...)}, nil
}

// At extrapolates linearly beyond the domain ends.
func (s Linear) At(x float64) float64 {
	i, t := segment(s.domain, x)
	return s.values[i] + t*(s.values[i+1]-s.values[i])
}

// Colors is a piecewise RGB interpolation over an ascending domain.
type Colors struct {
	domain []float64
	values []colorful.Color
}

func NewColors(domain []float64, hex []string) (Colors, error) {
	if err := checkDomain(domain, len(hex)); err != nil {
		return Colors{}, err
	}
	values := make([]colorful.Color, len(hex))
	for i, h := range hex {
		c, err := colorful.Hex(h)
		if err != nil {
			return Colors{}, fmt.Errorf("colour %d: %w", i, err)
		}
		values[i] = c
	}
	return Colors{domain: append([]float64(nil), domain...), values: values}, nil
}

// At clamps to the edge colours outside the domain.
func (s Colors) At(x float64) colorful.Color {
	switch {
	case x <= s.domain[0]:
		return s.values[0]
	case x >= s.domain[len(s.domain)-1]:
		return s.values[len(s.values)-1]
	}
	i, t := segment(s.domain, x)
	return s.values[i].BlendRgb(s.values[i+1], t).Clamped()
}

func checkDomain(domain []float64, n int) error {
	if len(domain) < 2 {
		return fmt.Errorf("domain needs at least 2 breakpoints, got %d", len(domain))
	}
	if len(domain) != n {
		return fmt.Errorf("domain has %d breakpoints but range has %d values", len(domain), n)
	}
	for i := 1; i < len(domain); i++ {
		if domain[i] < domain[i-1] {
			return fmt.Errorf("domain not ascending at %d", i)
		}
	}
	return nil
}
