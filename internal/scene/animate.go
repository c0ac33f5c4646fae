package scene

import (
	"math"
	"time"

	"github.com/lucasb-eyer/go-colorful"
)

// StartColor is the fill a circle has before its transition begins.
var StartColor = colorful.Color{}

const (
	elasticAmplitude = 1.0
	elasticPeriod    = 0.45
)

// Elastic is an elastic easing that overshoots and rings around 1 before
// settling. Input and output are clamped to 0 at t<=0 and 1 at t>=1.
func Elastic(t float64) float64 {
	if t <= 0 {
		return 0
	}
	if t >= 1 {
		return 1
	}
	s := elasticPeriod / (2 * math.Pi) * math.Asin(1/elasticAmplitude)
	return 1 + elasticAmplitude*math.Pow(2, -10*t)*math.Sin((t-s)*2*math.Pi/elasticPeriod)
}

// At returns the radius and fill at elapsed time since the cycle bound its
// circles.
func (c Circle) At(elapsed time.Duration) (float64, colorful.Color) {
	if elapsed < c.Delay {
		return 0, StartColor
	}
	t := float64(elapsed-c.Delay) / float64(GrowDuration)
	e := Elastic(t)
	r := math.Max(0, c.Radius*e)
	return r, StartColor.BlendRgb(c.Color, e).Clamped()
}

// Settled reports whether the circle has finished animating.
func (c Circle) Settled(elapsed time.Duration) bool {
	return elapsed >= c.Delay+GrowDuration
}
