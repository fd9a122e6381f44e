package anim

import (
	"math"
	"time"
)

// runner tracks the progress of the request a Sequencer is working on.
type runner[T any] struct {
	from     T
	to       T
	duration time.Duration
	curve    Curve
	elapsed  float64 // fraction of duration, may pass 1 before completion
}

func newRunner[T any](from T, r Request[T]) *runner[T] {
	return newRunnerAt(from, r, 0)
}

// newRunnerAt creates a runner that has already covered the given fraction
// of its request.
func newRunnerAt[T any](from T, r Request[T], elapsed float64) *runner[T] {
	return &runner[T]{
		from:     from,
		to:       r.target,
		duration: r.duration,
		curve:    r.curve,
		elapsed:  elapsed,
	}
}

// advance moves the runner on by delta and returns the value there.
func (r *runner[T]) advance(delta time.Duration, lerp Interpolator[T]) T {
	if r.duration <= 0 {
		precondition("runner has non-positive duration %s", r.duration)
	}
	r.elapsed += float64(delta) / float64(r.duration)
	return r.value(lerp)
}

func (r *runner[T]) value(lerp Interpolator[T]) T {
	t := math.Max(0, math.Min(1, r.elapsed))
	return lerp(r.from, r.to, r.curve(t))
}

func (r *runner[T]) done() bool {
	return r.elapsed >= 1.0
}
