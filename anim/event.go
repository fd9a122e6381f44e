package anim

// EventKind says which operation changed a Sequencer.
type EventKind int

const (
	// EventPushed follows a Push.
	EventPushed EventKind = iota
	// EventSet follows a Set.
	EventSet
	// EventTicked follows a Tick that advanced the active request.
	EventTicked
	// EventCompleted follows a Tick that finished the active request.
	EventCompleted
)

func (k EventKind) String() string {
	switch k {
	case EventPushed:
		return "pushed"
	case EventSet:
		return "set"
	case EventTicked:
		return "ticked"
	case EventCompleted:
		return "completed"
	}
	return "unknown"
}

// An Event describes a Sequencer after a state change.
type Event[T any] struct {
	Kind    EventKind
	Value   T
	Active  bool
	Pending int
}

// A Listener is told about every state change of a Sequencer it subscribed to.
type Listener[T any] func(Event[T])

// A Subscription is a registered Listener.
type Subscription struct {
	cancel func()
}

// Unsubscribe stops the listener being called. It is safe to call more
// than once.
func (s Subscription) Unsubscribe() {
	if s.cancel != nil {
		s.cancel()
	}
}

type subscriber[T any] struct {
	id       uint64
	listener Listener[T]
}

// broadcaster calls listeners in subscription order.
type broadcaster[T any] struct {
	nextID      uint64
	subscribers []subscriber[T]
}

func (b *broadcaster[T]) subscribe(l Listener[T]) Subscription {
	b.nextID++
	id := b.nextID
	b.subscribers = append(b.subscribers, subscriber[T]{id: id, listener: l})
	return Subscription{cancel: func() { b.remove(id) }}
}

func (b *broadcaster[T]) remove(id uint64) {
	for i, s := range b.subscribers {
		if s.id == id {
			b.subscribers = append(b.subscribers[:i:i], b.subscribers[i+1:]...)
			return
		}
	}
}

func (b *broadcaster[T]) emit(e Event[T]) {
	// Listeners may subscribe or unsubscribe while being called.
	subs := b.subscribers
	for _, s := range subs {
		s.listener(e)
	}
}
