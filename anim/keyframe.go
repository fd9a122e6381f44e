package anim

import (
	"time"
)

// A Keyframe is one timed segment of a Timeline. The value of a keyframe at
// local progress t may depend on the end value of the keyframe before it,
// which the Timeline resolves.
type Keyframe[T any] interface {
	// Duration is the length of the segment. It must be positive.
	Duration() time.Duration

	// compute returns the value at local progress t of the keyframe at index.
	compute(tl *Timeline[T], index int, t float64) T

	// validate reports a keyframe that cannot be resolved at index.
	validate(index int) error
}

type absolute[T any] struct {
	duration time.Duration
	from     T
	to       T
}

// Absolute creates a keyframe that moves from one value to another,
// independent of its neighbours.
func Absolute[T any](duration time.Duration, from, to T) Keyframe[T] {
	return absolute[T]{duration: duration, from: from, to: to}
}

func (k absolute[T]) Duration() time.Duration { return k.duration }
func (k absolute[T]) validate(int) error      { return nil }

func (k absolute[T]) compute(tl *Timeline[T], _ int, t float64) T {
	return tl.lerp(k.from, k.to, t)
}

type relative[T any] struct {
	duration time.Duration
	target   T
}

// Relative creates a keyframe that moves from wherever the previous keyframe
// ended to target. As the first keyframe it holds target for its duration.
func Relative[T any](duration time.Duration, target T) Keyframe[T] {
	return relative[T]{duration: duration, target: target}
}

func (k relative[T]) Duration() time.Duration { return k.duration }
func (k relative[T]) validate(int) error      { return nil }

func (k relative[T]) compute(tl *Timeline[T], index int, t float64) T {
	if index == 0 {
		return k.target
	}
	return tl.lerp(tl.end(index-1), k.target, t)
}

type still[T any] struct {
	duration time.Duration
	value    T
	hasValue bool
}

// Still creates a keyframe that holds value for its duration.
func Still[T any](duration time.Duration, value T) Keyframe[T] {
	return still[T]{duration: duration, value: value, hasValue: true}
}

// Hold creates a keyframe that holds the end value of the previous keyframe.
// It cannot be the first keyframe of a Timeline.
func Hold[T any](duration time.Duration) Keyframe[T] {
	return still[T]{duration: duration}
}

func (k still[T]) Duration() time.Duration { return k.duration }

func (k still[T]) validate(index int) error {
	if !k.hasValue && index == 0 {
		return NewError(ErrCodeMissingValue, "still keyframe without a value cannot be first")
	}
	return nil
}

func (k still[T]) compute(tl *Timeline[T], index int, _ float64) T {
	if k.hasValue {
		return k.value
	}
	if index == 0 {
		precondition("still keyframe without a value at index 0")
	}
	return tl.end(index - 1)
}

type eased[T any] struct {
	Keyframe[T]
	curve Curve
}

// Eased applies curve to the local progress of keyframe.
func Eased[T any](keyframe Keyframe[T], curve Curve) Keyframe[T] {
	if curve == nil {
		return keyframe
	}
	return eased[T]{Keyframe: keyframe, curve: curve}
}

func (k eased[T]) compute(tl *Timeline[T], index int, t float64) T {
	return k.Keyframe.compute(tl, index, k.curve(t))
}
