package anim

import (
	"math"
	"time"
)

// A Timeline joins a sequence of keyframes into one function from progress
// to value. It is immutable once built and safe to share.
type Timeline[T any] struct {
	keyframes []Keyframe[T]
	total     time.Duration
	lerp      Interpolator[T]

	// ends[i] is the value of keyframe i at local progress 1.
	ends []T
}

// NewTimeline creates a Timeline from keyframes. A nil lerp selects the
// default interpolator for T.
func NewTimeline[T any](keyframes []Keyframe[T], lerp Interpolator[T]) (*Timeline[T], error) {
	if len(keyframes) == 0 {
		return nil, NewError(ErrCodeInvalidKeyframes, "timeline needs at least one keyframe")
	}

	lerp, err := resolveInterpolator(lerp)
	if err != nil {
		return nil, err
	}

	tl := new(Timeline[T])
	tl.keyframes = make([]Keyframe[T], len(keyframes))
	copy(tl.keyframes, keyframes)
	tl.lerp = lerp

	for i, kf := range tl.keyframes {
		if kf == nil {
			return nil, NewError(ErrCodeInvalidKeyframes, "keyframe %d is nil", i)
		}
		if kf.Duration() <= 0 {
			return nil, NewError(ErrCodeInvalidDuration,
				"keyframe %d has non-positive duration %s", i, kf.Duration())
		}
		if err := kf.validate(i); err != nil {
			return nil, err
		}
		if tl.total > math.MaxInt64-kf.Duration() {
			return nil, NewError(ErrCodeInvalidDuration,
				"total duration overflows at keyframe %d", i)
		}
		tl.total += kf.Duration()
	}

	// Each end value only looks one keyframe back, so resolving them in order
	// makes every chain of relative and still keyframes O(1) per sample.
	tl.ends = make([]T, len(tl.keyframes))
	for i, kf := range tl.keyframes {
		tl.ends[i] = kf.compute(tl, i, 1.0)
	}

	return tl, nil
}

// TotalDuration is the sum of all keyframe durations.
func (tl *Timeline[T]) TotalDuration() time.Duration {
	return tl.total
}

// Len returns the number of keyframes.
func (tl *Timeline[T]) Len() int {
	return len(tl.keyframes)
}

// Transform returns the value at progress, which must be in [0, 1].
//
// Progress is converted to elapsed time by flooring, so a sample never
// strays into the following keyframe. Progress 1 always gives the end value
// of the last keyframe.
func (tl *Timeline[T]) Transform(progress float64) T {
	if math.IsNaN(progress) || progress < 0 || progress > 1 {
		precondition("progress %v outside [0, 1]", progress)
	}
	elapsed := tl.total
	if e := math.Floor(progress * float64(tl.total)); e < float64(tl.total) {
		elapsed = time.Duration(e)
	}
	return tl.At(elapsed)
}

// At returns the value after elapsed time. Elapsed times at or beyond the
// total duration give the end value of the last keyframe.
func (tl *Timeline[T]) At(elapsed time.Duration) T {
	if elapsed < 0 {
		precondition("negative elapsed time %s", elapsed)
	}

	var lower time.Duration
	for i, kf := range tl.keyframes {
		upper := lower + kf.Duration()
		if elapsed < upper {
			t := float64(elapsed-lower) / float64(kf.Duration())
			return kf.compute(tl, i, t)
		}
		lower = upper
	}

	last := len(tl.keyframes) - 1
	return tl.keyframes[last].compute(tl, last, 1.0)
}

// end returns the resolved end value of the keyframe at index.
func (tl *Timeline[T]) end(index int) T {
	return tl.ends[index]
}
