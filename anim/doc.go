/*
Package anim computes animated values from declarative descriptions of how
they change over time.

It has two engines, both generic over the animated value type.

A Timeline is an ordered list of keyframes. Each keyframe covers a slice of
the timeline's total duration and has its own rule for computing a value:

	Absolute(d, from, to) // moves from one value to another
	Relative(d, target)   // moves from the previous keyframe's end to target
	Still(d, value)       // holds value
	Hold(d)               // holds the previous keyframe's end value

Transform maps progress in [0, 1] onto the keyframe covering it.

A Sequencer holds a single value and a FIFO queue of Requests ("go to X over
D with curve C"). Each call to Tick advances the request at the head of the
queue; when it completes the next one starts from wherever the value ended.
Push in Replace mode and Set are the only ways to drop queued work.

Neither engine reads the clock. Callers pass elapsed time in, which keeps
every result reproducible.

Values are blended by an Interpolator. Built-in interpolators exist for
numbers, Point, Size, colorful.Color and pointers to these (nil propagates).
Any other type needs an explicit Interpolator, otherwise construction fails
with ErrCodeUnsupportedType.

Calling Transform with progress outside [0, 1] is a programming error and
panics with an *Error carrying ErrCodePrecondition.
*/
package anim
