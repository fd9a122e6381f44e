package anim

import (
	"time"
)

// Mode controls how Push treats requests that are already queued.
type Mode int

const (
	// Append queues the request behind any others.
	Append Mode = iota
	// Replace drops the active and queued requests before queueing.
	Replace
)

// A Sequencer moves a value through a queue of requests, one at a time and
// in the order they were pushed. It only changes when Push, Set or Tick are
// called, so the same calls always give the same values.
//
// A Sequencer is not safe for concurrent use.
type Sequencer[T any] struct {
	value   T
	pending []Request[T]
	active  *runner[T]
	lerp    Interpolator[T]
	events  broadcaster[T]
}

// NewSequencer creates a Sequencer at initial. A nil lerp selects the default
// interpolator for T.
func NewSequencer[T any](initial T, lerp Interpolator[T]) (*Sequencer[T], error) {
	lerp, err := resolveInterpolator(lerp)
	if err != nil {
		return nil, err
	}

	s := new(Sequencer[T])
	s.value = initial
	s.lerp = lerp
	return s, nil
}

// Push queues a request. If nothing is running the request starts at once
// from the current value. Requests must come from NewRequest.
func (s *Sequencer[T]) Push(r Request[T], mode Mode) {
	if r.duration <= 0 {
		precondition("request was not built with NewRequest")
	}
	if mode == Replace {
		s.pending = nil
		s.active = nil
	}
	s.pending = append(s.pending, r)
	if s.active == nil {
		s.startNext()
	}
	s.emit(EventPushed)
}

// Set jumps to v, dropping the active and queued requests.
func (s *Sequencer[T]) Set(v T) {
	s.value = v
	s.pending = nil
	s.active = nil
	s.emit(EventSet)
}

// Tick advances the active request by delta. It does nothing when idle or
// when delta is zero.
func (s *Sequencer[T]) Tick(delta time.Duration) {
	if delta == 0 {
		return
	}
	if s.active == nil {
		if len(s.pending) == 0 {
			return
		}
		s.startNext()
	}

	s.value = s.active.advance(delta, s.lerp)
	if !s.active.done() {
		s.emit(EventTicked)
		return
	}

	// Curves need not end exactly at 1.
	s.value = s.active.to
	s.active = nil
	if len(s.pending) > 0 {
		s.startNext()
	}
	s.emit(EventCompleted)
}

// Value returns the current value.
func (s *Sequencer[T]) Value() T {
	return s.value
}

// IsActive reports whether there is a request running or queued.
func (s *Sequencer[T]) IsActive() bool {
	return s.active != nil || len(s.pending) > 0
}

// Len returns the number of unfinished requests, including the active one.
func (s *Sequencer[T]) Len() int {
	n := len(s.pending)
	if s.active != nil {
		n++
	}
	return n
}

// Pending returns a copy of the requests waiting behind the active one.
func (s *Sequencer[T]) Pending() []Request[T] {
	out := make([]Request[T], len(s.pending))
	copy(out, s.pending)
	return out
}

// Subscribe registers l to be called after every state change.
func (s *Sequencer[T]) Subscribe(l Listener[T]) Subscription {
	return s.events.subscribe(l)
}

// startNext pops the head of the queue into a runner.
func (s *Sequencer[T]) startNext() {
	next := s.pending[0]
	s.pending = s.pending[1:]
	s.active = newRunner(s.value, next)
}

func (s *Sequencer[T]) emit(kind EventKind) {
	s.events.emit(Event[T]{
		Kind:    kind,
		Value:   s.value,
		Active:  s.IsActive(),
		Pending: s.Len(),
	})
}
