package anim

import (
	"time"
)

// A Request asks a Sequencer to move to a target value over a duration.
type Request[T any] struct {
	target   T
	duration time.Duration
	curve    Curve
}

// NewRequest creates a Request. The duration must be positive; a nil curve
// is linear.
func NewRequest[T any](target T, duration time.Duration, curve Curve) (Request[T], error) {
	if duration <= 0 {
		return Request[T]{}, NewError(ErrCodeInvalidDuration,
			"request has non-positive duration %s", duration)
	}
	if curve == nil {
		curve = Linear
	}
	return Request[T]{target: target, duration: duration, curve: curve}, nil
}

// Target is the value the request ends at.
func (r Request[T]) Target() T { return r.target }

// Duration is how long the request takes.
func (r Request[T]) Duration() time.Duration { return r.duration }

// Curve is the easing applied to the request's progress.
func (r Request[T]) Curve() Curve { return r.curve }
