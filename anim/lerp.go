package anim

import (
	"math"
	"time"

	"github.com/lucasb-eyer/go-colorful"
)

// An Interpolator computes the value a fraction t of the way from a to b.
// t is normally in [0, 1] but curves such as outBack overshoot it.
type Interpolator[T any] func(a, b T, t float64) T

// Float is the set of floating point value types.
type Float interface {
	~float32 | ~float64
}

// Integer is the set of integer value types.
type Integer interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 | ~uintptr
}

// Point is a location in 2D space.
type Point struct {
	X float64 `json:"x" yaml:"x" toml:"x"`
	Y float64 `json:"y" yaml:"y" toml:"y"`
}

// Size is a width and height.
type Size struct {
	Width  float64 `json:"width" yaml:"width" toml:"width"`
	Height float64 `json:"height" yaml:"height" toml:"height"`
}

// Lerp linearly interpolates between two floats.
func Lerp[F Float](a, b F, t float64) F {
	return F(float64(a) + (float64(b)-float64(a))*t)
}

// LerpInt linearly interpolates between two integers and rounds the result
// to the nearest integer, halves away from zero.
func LerpInt[I Integer](a, b I, t float64) I {
	return I(math.Round(float64(a) + (float64(b)-float64(a))*t))
}

// LerpPoint interpolates each coordinate independently.
func LerpPoint(a, b Point, t float64) Point {
	return Point{
		X: Lerp(a.X, b.X, t),
		Y: Lerp(a.Y, b.Y, t),
	}
}

// LerpSize interpolates width and height independently.
func LerpSize(a, b Size, t float64) Size {
	return Size{
		Width:  Lerp(a.Width, b.Width, t),
		Height: Lerp(a.Height, b.Height, t),
	}
}

// Nullable lifts an interpolator to pointer values. If either endpoint is
// nil the result is nil.
func Nullable[T any](lerp Interpolator[T]) Interpolator[*T] {
	return func(a, b *T, t float64) *T {
		if a == nil || b == nil {
			return nil
		}
		v := lerp(*a, *b, t)
		return &v
	}
}

// DefaultInterpolator returns the built-in interpolator for T. Types without
// one (including named types defined outside this package) fail with
// ErrCodeUnsupportedType and need an explicit Interpolator.
func DefaultInterpolator[T any]() (Interpolator[T], error) {
	var zero T
	var lerp any
	switch any(zero).(type) {
	case float64:
		lerp = Interpolator[float64](Lerp[float64])
	case float32:
		lerp = Interpolator[float32](Lerp[float32])
	case int:
		lerp = Interpolator[int](LerpInt[int])
	case int8:
		lerp = Interpolator[int8](LerpInt[int8])
	case int16:
		lerp = Interpolator[int16](LerpInt[int16])
	case int32:
		lerp = Interpolator[int32](LerpInt[int32])
	case int64:
		lerp = Interpolator[int64](LerpInt[int64])
	case uint:
		lerp = Interpolator[uint](LerpInt[uint])
	case uint8:
		lerp = Interpolator[uint8](LerpInt[uint8])
	case uint16:
		lerp = Interpolator[uint16](LerpInt[uint16])
	case uint32:
		lerp = Interpolator[uint32](LerpInt[uint32])
	case uint64:
		lerp = Interpolator[uint64](LerpInt[uint64])
	case time.Duration:
		lerp = Interpolator[time.Duration](LerpInt[time.Duration])
	case Point:
		lerp = Interpolator[Point](LerpPoint)
	case Size:
		lerp = Interpolator[Size](LerpSize)
	case colorful.Color:
		lerp = Interpolator[colorful.Color](LerpRgb)
	case *float64:
		lerp = Nullable(Lerp[float64])
	case *float32:
		lerp = Nullable(Lerp[float32])
	case *int:
		lerp = Nullable(LerpInt[int])
	case *int64:
		lerp = Nullable(LerpInt[int64])
	case *time.Duration:
		lerp = Nullable(LerpInt[time.Duration])
	case *Point:
		lerp = Nullable(LerpPoint)
	case *Size:
		lerp = Nullable(LerpSize)
	case *colorful.Color:
		lerp = Nullable(LerpRgb)
	}

	if fn, ok := lerp.(Interpolator[T]); ok {
		return fn, nil
	}
	return nil, NewError(ErrCodeUnsupportedType,
		"no default interpolation for %T, supply an explicit Interpolator", zero)
}

// resolveInterpolator returns lerp, or the default for T when lerp is nil.
func resolveInterpolator[T any](lerp Interpolator[T]) (Interpolator[T], error) {
	if lerp != nil {
		return lerp, nil
	}
	return DefaultInterpolator[T]()
}
