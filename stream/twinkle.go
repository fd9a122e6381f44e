package stream

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/fogleman/ease"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/matt-g-everett/ledtween/anim"
)

type twinkleParticle struct {
	pixel int
	phase time.Duration
}

// A Twinkle is an Animation that twinkles random particles.
type Twinkle struct {
	numPixels  int
	backColour colorful.Color
	colour     colorful.Color

	brightness *anim.Timeline[float64]
	particles  []twinkleParticle
}

// NewTwinkle creates an instance of a Twinkle object. numParticles pixels,
// picked from seed, pulse between backColour and colour once per period,
// each at its own phase.
func NewTwinkle(numPixels, numParticles int, backColour, colour colorful.Color,
	period time.Duration, seed int64) (*Twinkle, error) {

	if numPixels <= 0 {
		return nil, fmt.Errorf("twinkle needs pixels, got %d", numPixels)
	}
	brightness, err := anim.NewTimeline([]anim.Keyframe[float64]{
		anim.Eased(anim.Absolute(period/2, 0.0, 1.0), ease.InOutSine),
		anim.Eased(anim.Relative(period-period/2, 0.0), ease.InOutSine),
	}, anim.Lerp[float64])
	if err != nil {
		return nil, fmt.Errorf("twinkle: %w", err)
	}

	t := new(Twinkle)
	t.numPixels = numPixels
	t.backColour = backColour
	t.colour = colour
	t.brightness = brightness

	rng := rand.New(rand.NewSource(seed))
	t.particles = make([]twinkleParticle, numParticles)
	for i := range t.particles {
		t.particles[i] = twinkleParticle{
			pixel: rng.Intn(numPixels),
			phase: time.Duration(rng.Int63n(int64(brightness.TotalDuration()))),
		}
	}

	return t, nil
}

// CalculateFrame creates a new Frame instance.
func (t *Twinkle) CalculateFrame(runtime time.Duration) *Frame {
	f := NewFrame(t.numPixels)
	f.Fill(t.backColour)

	period := t.brightness.TotalDuration()
	for _, p := range t.particles {
		elapsed := (runtime + p.phase) % period
		if elapsed < 0 {
			elapsed += period
		}
		f.pixels[p.pixel] = anim.LerpHcl(t.backColour, t.colour, t.brightness.At(elapsed))
	}

	return f
}
