// Package notify provides typed observer feeds used by the terminal
// collaborators to publish selection, property and keyboard changes.
package notify

import (
	"sync"
	"sync/atomic"

	"github.com/google/uuid"
)

// State represents the state of a subscription.
type State int32

const (
	// StateActive means the subscription is receiving events.
	StateActive State = iota

	// StatePaused means the subscription is temporarily not receiving events.
	StatePaused

	// StateCancelled means the subscription has been permanently cancelled.
	StateCancelled
)

// String returns a human-readable state name.
func (s State) String() string {
	switch s {
	case StateActive:
		return "active"
	case StatePaused:
		return "paused"
	case StateCancelled:
		return "cancelled"
	default:
		return "unknown"
	}
}

// Subscription is a handle to a registered listener.
// Events published while the subscription is paused are dropped, not queued.
type Subscription struct {
	id     string
	state  atomic.Int32
	remove func()
	once   sync.Once
}

// ID returns the unique subscription identifier.
func (s *Subscription) ID() string {
	return s.id
}

// State returns the current subscription state.
func (s *Subscription) State() State {
	return State(s.state.Load())
}

// IsActive returns true if the subscription can receive events.
func (s *Subscription) IsActive() bool {
	return s.State() == StateActive
}

// Pause temporarily stops event delivery to this subscription.
func (s *Subscription) Pause() {
	s.state.CompareAndSwap(int32(StateActive), int32(StatePaused))
}

// Resume restarts event delivery after a pause.
func (s *Subscription) Resume() {
	s.state.CompareAndSwap(int32(StatePaused), int32(StateActive))
}

// Cancel permanently removes the subscription from its feed.
// Calling Cancel more than once is a no-op.
func (s *Subscription) Cancel() {
	s.once.Do(func() {
		s.state.Store(int32(StateCancelled))
		if s.remove != nil {
			s.remove()
		}
	})
}

type listener[T any] struct {
	sub *Subscription
	fn  func(T)
}

// Feed delivers values of type T to its subscribers synchronously, in
// subscription order. The zero value is ready to use.
type Feed[T any] struct {
	mu        sync.Mutex
	listeners []listener[T]
}

// Subscribe registers fn and returns the handle controlling its lifetime.
func (f *Feed[T]) Subscribe(fn func(T)) *Subscription {
	sub := &Subscription{id: uuid.NewString()}
	sub.remove = func() { f.unsubscribe(sub) }

	f.mu.Lock()
	f.listeners = append(f.listeners, listener[T]{sub: sub, fn: fn})
	f.mu.Unlock()

	return sub
}

func (f *Feed[T]) unsubscribe(sub *Subscription) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for i, l := range f.listeners {
		if l.sub == sub {
			f.listeners = append(f.listeners[:i:i], f.listeners[i+1:]...)
			return
		}
	}
}

// Emit publishes v to every active subscriber. Listeners may subscribe or
// cancel from inside a callback; the change applies to the next Emit.
func (f *Feed[T]) Emit(v T) {
	f.mu.Lock()
	snapshot := make([]listener[T], len(f.listeners))
	copy(snapshot, f.listeners)
	f.mu.Unlock()

	for _, l := range snapshot {
		if l.sub.IsActive() {
			l.fn(v)
		}
	}
}

// Len returns the number of registered subscriptions, paused ones included.
func (f *Feed[T]) Len() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.listeners)
}
