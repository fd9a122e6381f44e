package stream

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/lucasb-eyer/go-colorful"
)

type stripe struct {
	colour colorful.Color
	length int
}

// An InfinityStripe is an Animation that scrolls an endless run of coloured
// stripes along the strip, stretched towards its far end.
type InfinityStripe struct {
	numPixels int
	speed     float64 // pixels per second
	stretch   float64

	palette   []colorful.Color
	current   int
	minLength int
	maxLength int
	rng       *rand.Rand

	stripes []stripe
	base    float64 // distance at which stripes[0] starts
}

// NewInfinityStripe creates an instance of a InfinityStripe object. Stripe
// colours come from palette, never repeating back to back, or are random
// hues when palette is empty.
func NewInfinityStripe(numPixels int, speed float64, palette []colorful.Color, seed int64) (*InfinityStripe, error) {
	if speed < 0 {
		return nil, fmt.Errorf("stripe speed must not be negative, got %v", speed)
	}

	s := new(InfinityStripe)
	s.numPixels = numPixels
	s.speed = speed
	s.stretch = 1.4
	s.palette = palette
	s.current = -1
	s.minLength = 150
	s.maxLength = 400
	s.rng = rand.New(rand.NewSource(seed))
	s.stripes = make([]stripe, 0, 20)

	return s, nil
}

func (s *InfinityStripe) addStripe() {
	var colour colorful.Color
	switch len(s.palette) {
	case 0:
		colour = colorful.Hsl(s.rng.Float64()*360.0, 1.0, 0.2)
	case 1:
		colour = s.palette[0]
	default:
		// Choose a new colour that's different from the previous colour
		next := s.rng.Intn(len(s.palette) - 1)
		if next >= s.current && s.current >= 0 {
			next++
		}
		s.current = next
		colour = s.palette[next]
	}

	length := s.rng.Intn(s.maxLength-s.minLength) + s.minLength
	s.stripes = append(s.stripes, stripe{colour, length})
}

// CalculateFrame creates a new Frame instance. runtime must not decrease
// between calls.
func (s *InfinityStripe) CalculateFrame(runtime time.Duration) *Frame {
	head := runtime.Seconds() * s.speed

	// Cull stripes that have passed
	for len(s.stripes) > 0 && s.base+float64(s.stripes[0].length) <= head {
		s.base += float64(s.stripes[0].length)
		s.stripes = s.stripes[1:]
	}
	if len(s.stripes) == 0 {
		s.addStripe()
	}

	f := NewFrame(s.numPixels)
	index := 0
	end := s.base + float64(s.stripes[0].length)
	for i := 0; i < s.numPixels; i++ {
		factor := 1.0 + s.stretch*(float64(i)/float64(s.numPixels))
		offset := head + factor*float64(i)
		for offset >= end {
			index++
			if index == len(s.stripes) {
				s.addStripe()
			}
			end += float64(s.stripes[index].length)
		}
		f.pixels[i] = s.stripes[index].colour
	}

	return f
}
