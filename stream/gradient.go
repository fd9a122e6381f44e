package stream

import (
	"fmt"
	"math"
	"time"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/matt-g-everett/ledtween/anim"
)

// GradientTable stores a look-up table of colours interpolated by hue.
// Positions must not decrease.
type GradientTable []struct {
	Hue float64
	Pos float64
}

// Rainbow is the default gradient used by the trail animation.
var Rainbow = GradientTable{
	{0.0, 0.0},
	{6.0, 0.04},   // Pink
	{87.0, 0.14},  // Red
	{88.0, 0.28},  // Orange
	{98.0, 0.42},  // Yellow
	{180.0, 0.56}, // Green
	{190.0, 0.70}, // Turquiose
	{320.0, 0.84}, // Blue
	{328.0, 0.91}, // Violet
	{360.0, 1.0},  // Pink wrap
}

// gradientScale maps one unit of table position onto timeline time.
const gradientScale = float64(time.Second)

// A Gradient is a GradientTable compiled into a hue timeline.
type Gradient struct {
	hue   *anim.Timeline[float64]
	start float64
	span  float64
}

// NewGradient compiles a table. Entries sharing a position become a hard
// step from one hue to the next.
func NewGradient(table GradientTable) (*Gradient, error) {
	if len(table) < 2 {
		return nil, fmt.Errorf("gradient needs at least two entries, got %d", len(table))
	}

	var keyframes []anim.Keyframe[float64]
	for i := 0; i < len(table)-1; i++ {
		c1 := table[i]
		c2 := table[i+1]
		if c2.Pos < c1.Pos {
			return nil, fmt.Errorf("gradient position %v after %v", c2.Pos, c1.Pos)
		}
		d := time.Duration(math.Round((c2.Pos - c1.Pos) * gradientScale))
		if d <= 0 {
			continue
		}
		keyframes = append(keyframes, anim.Absolute(d, c1.Hue, c2.Hue))
	}

	hue, err := anim.NewTimeline(keyframes, nil)
	if err != nil {
		return nil, fmt.Errorf("gradient: %w", err)
	}

	g := new(Gradient)
	g.hue = hue
	g.start = table[0].Pos
	g.span = table[len(table)-1].Pos - table[0].Pos
	return g, nil
}

// Hue gets the hue at the specified point on the look-up table. Points
// outside the table, and NaN, are clamped to its ends.
func (g *Gradient) Hue(t float64) float64 {
	p := (t - g.start) / g.span
	if math.IsNaN(p) {
		p = 0
	}
	return g.hue.Transform(math.Max(0, math.Min(1, p)))
}

// GetColor gets a colour at the specified point on the look-up table.
func (g *Gradient) GetColor(t, s, l float64) colorful.Color {
	return colorful.Hcl(g.Hue(t), s, l)
}
