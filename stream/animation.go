package stream

import (
	"time"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/matt-g-everett/ledtween/anim"
)

// An Animation implements a way to render a specific animation.
type Animation interface {
	CalculateFrame(runtime time.Duration) *Frame
}

// Solid fills the strip with the current value of a colour sequencer.
type Solid struct {
	numPixels int
	colour    *anim.Sequencer[colorful.Color]
}

// NewSolid creates an instance of a Solid animation.
func NewSolid(numPixels int, colour *anim.Sequencer[colorful.Color]) *Solid {
	s := new(Solid)
	s.numPixels = numPixels
	s.colour = colour
	return s
}

// CalculateFrame creates a new Frame instance.
func (s *Solid) CalculateFrame(runtime time.Duration) *Frame {
	f := NewFrame(s.numPixels)
	f.Fill(s.colour.Value())
	return f
}

// Playback loops a colour timeline over the whole strip.
type Playback struct {
	numPixels int
	timeline  *anim.Timeline[colorful.Color]
	start     time.Duration
}

// NewPlayback creates an instance of a Playback animation. The timeline
// starts from its beginning at runtime start.
func NewPlayback(numPixels int, timeline *anim.Timeline[colorful.Color], start time.Duration) *Playback {
	p := new(Playback)
	p.numPixels = numPixels
	p.timeline = timeline
	p.start = start
	return p
}

// CalculateFrame creates a new Frame instance.
func (p *Playback) CalculateFrame(runtime time.Duration) *Frame {
	elapsed := runtime - p.start
	if elapsed < 0 {
		elapsed = 0
	}
	elapsed %= p.timeline.TotalDuration()

	f := NewFrame(p.numPixels)
	f.Fill(p.timeline.At(elapsed))
	return f
}
