package stream

import (
	"sync"
	"time"

	"github.com/fogleman/ease"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/matt-g-everett/ledtween/anim"
)

// ColourState is a snapshot of the strip colour sequencer.
type ColourState struct {
	Colour  colorful.Color
	Active  bool
	Pending int
}

// Controller that manages animations. It is safe for concurrent use; every
// method holds the same lock.
type Controller struct {
	mu            sync.Mutex
	animation     Animation
	nextAnimation Animation
	runtime       time.Duration

	transition     *anim.Sequencer[float64]
	transitionTime time.Duration
	colour         *anim.Sequencer[colorful.Color]
}

// NewController creates an instance of a Controller showing animation.
// Switching animation cross-fades over transitionTime.
func NewController(animation Animation, colour *anim.Sequencer[colorful.Color],
	transitionTime time.Duration) (*Controller, error) {

	transition, err := anim.NewSequencer(0.0, nil)
	if err != nil {
		return nil, err
	}
	if transitionTime <= 0 {
		return nil, anim.NewError(anim.ErrCodeInvalidDuration,
			"transition time must be positive, got %s", transitionTime)
	}

	c := new(Controller)
	c.animation = animation
	c.nextAnimation = nil
	c.transition = transition
	c.transitionTime = transitionTime
	c.colour = colour

	return c, nil
}

// Switch starts a cross-fade to next. If a fade is already running, the
// animation it was fading to becomes current and the new fade starts from it.
func (c *Controller) Switch(next Animation) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.nextAnimation != nil {
		c.animation = c.nextAnimation
	}

	// transitionTime is validated by NewController
	r, _ := anim.NewRequest(1.0, c.transitionTime, ease.InOutQuad)
	c.nextAnimation = next
	c.transition.Set(0)
	c.transition.Push(r, anim.Replace)
}

// Tick advances the controller's clock and sequencers by delta.
func (c *Controller) Tick(delta time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.runtime += delta
	c.transition.Tick(delta)
	c.colour.Tick(delta)
}

// Runtime returns the total time ticked so far.
func (c *Controller) Runtime() time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.runtime
}

// CalculateFrame renders the current animation, blended with the next one
// while a fade is running.
func (c *Controller) CalculateFrame() *Frame {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.nextAnimation == nil {
		return c.animation.CalculateFrame(c.runtime)
	}

	f1 := c.animation.CalculateFrame(c.runtime)
	f2 := c.nextAnimation.CalculateFrame(c.runtime)
	f := f1.InterpolateFrame(f2, c.transition.Value())

	if !c.transition.IsActive() {
		c.animation = c.nextAnimation
		c.nextAnimation = nil
		c.transition.Set(0)
	}

	return f
}

// Fading reports whether a cross-fade is in progress.
func (c *Controller) Fading() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.nextAnimation != nil
}

// PushColour queues a transition of the strip colour.
func (c *Controller) PushColour(r anim.Request[colorful.Color], mode anim.Mode) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.colour.Push(r, mode)
}

// SetColour jumps the strip colour to v, cancelling queued transitions.
func (c *Controller) SetColour(v colorful.Color) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.colour.Set(v)
}

// Colour returns the state of the strip colour sequencer.
func (c *Controller) Colour() ColourState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return ColourState{
		Colour:  c.colour.Value(),
		Active:  c.colour.IsActive(),
		Pending: c.colour.Len(),
	}
}

// SubscribeColour registers l for strip colour changes. l is called with the
// controller locked and must not call back into it. Subscribe before the
// streamer starts; the returned subscription is not guarded by the lock.
func (c *Controller) SubscribeColour(l anim.Listener[colorful.Color]) anim.Subscription {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.colour.Subscribe(l)
}
