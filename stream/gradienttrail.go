package stream

import (
	"fmt"
	"math"
	"time"
)

// A GradientTrail is an Animation that cycles a gradient along an led strip.
type GradientTrail struct {
	numPixels   int
	gradient    *Gradient
	trailLength int
	speed       float64 // pixels per second
	saturation  float64
	luminance   float64
}

// NewGradientTrail creates an instance of a GradientTrail object.
func NewGradientTrail(numPixels int, gradient *Gradient, trailLength int, speed float64) (*GradientTrail, error) {
	if trailLength <= 0 {
		return nil, fmt.Errorf("trail length must be positive, got %d", trailLength)
	}

	g := new(GradientTrail)
	g.numPixels = numPixels
	g.gradient = gradient
	g.trailLength = trailLength
	g.speed = speed
	g.saturation = 1.0
	g.luminance = 0.05

	return g, nil
}

// CalculateFrame creates a new Frame instance.
func (g *GradientTrail) CalculateFrame(runtime time.Duration) *Frame {
	f := NewFrame(g.numPixels)
	trail := float64(g.trailLength)
	current := math.Mod(runtime.Seconds()*g.speed, trail)
	for i := 0; i < g.numPixels; i++ {
		pos := math.Mod(float64(i)-current, trail)
		if pos < 0 {
			pos += trail
		}
		f.pixels[i] = g.gradient.GetColor(pos/trail, g.saturation, g.luminance)
	}

	return f
}
