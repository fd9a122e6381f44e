package stream

import (
	"fmt"
	"math"
	"math/rand"
	"time"

	"github.com/fogleman/ease"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/matt-g-everett/ledtween/anim"
)

type streakParticle struct {
	start float64 // pixel position of the tail when born
	born  time.Duration
}

// A Streak is an Animation that creates streaks across the tree that fade in then out.
type Streak struct {
	numPixels  int
	backColour colorful.Color
	colour     colorful.Color
	chance     int32
	speed      float64 // pixels per second
	length     int

	gain      *anim.Timeline[float64]
	rng       *rand.Rand
	particles []streakParticle
}

// NewStreak creates an instance of a Streak object. On each frame a new
// streak starts with probability 1/chance; each one fades in over ramp and
// back out over ramp. The same seed gives the same streaks.
func NewStreak(numPixels int, backColour, colour colorful.Color, chance int32,
	ramp time.Duration, seed int64) (*Streak, error) {

	if chance <= 0 {
		return nil, fmt.Errorf("streak chance must be positive, got %d", chance)
	}
	gain, err := anim.NewTimeline([]anim.Keyframe[float64]{
		anim.Eased(anim.Absolute(ramp, 0.0, 1.0), ease.InOutQuad),
		anim.Eased(anim.Relative(ramp, 0.0), ease.InOutQuad),
	}, anim.Lerp[float64])
	if err != nil {
		return nil, fmt.Errorf("streak: %w", err)
	}

	s := new(Streak)
	s.numPixels = numPixels
	s.backColour = backColour
	s.colour = colour
	s.chance = chance
	s.speed = 6
	s.length = 10
	s.gain = gain
	s.rng = rand.New(rand.NewSource(seed))

	return s, nil
}

// CalculateFrame creates a new Frame instance.
func (s *Streak) CalculateFrame(runtime time.Duration) *Frame {
	f := NewFrame(s.numPixels)
	f.Fill(s.backColour)

	live := s.particles[:0]
	for _, p := range s.particles {
		age := runtime - p.born
		if age < 0 {
			age = 0
		}
		if age >= s.gain.TotalDuration() {
			continue
		}
		s.addStreak(f, p, age)
		live = append(live, p)
	}
	s.particles = live

	if s.rng.Int31n(s.chance) == 0 {
		s.particles = append(s.particles, streakParticle{
			start: s.rng.Float64() * float64(s.numPixels),
			born:  runtime,
		})
	}

	return f
}

func (s *Streak) addStreak(f *Frame, p streakParticle, age time.Duration) {
	bias := s.gain.At(age)
	current := p.start + age.Seconds()*s.speed
	first := max(int(math.Ceil(current)), 0)
	last := min(int(math.Floor(current+float64(s.length))), s.numPixels-1)
	for i := first; i <= last; i++ {
		f.pixels[i] = anim.LerpHcl(f.pixels[i], s.colour, bias)
	}
}
