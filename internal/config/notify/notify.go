// Package notify delivers change notifications to an ordered list of
// observers.
//
// Delivery is synchronous: Notify returns after every observer has run, in
// subscription order. Observers run outside the notifier's lock, so they
// may subscribe or unsubscribe while being notified.
package notify

import (
	"sync"

	"github.com/google/uuid"
)

// Observer is called with each change.
type Observer[T any] func(change T)

// Subscription represents an active observer subscription.
type Subscription struct {
	id     string
	cancel func(id string)
	once   sync.Once
}

// ID returns the subscription's unique identifier.
func (s *Subscription) ID() string {
	return s.id
}

// Unsubscribe removes this subscription. It is safe to call more than
// once.
func (s *Subscription) Unsubscribe() {
	if s == nil || s.cancel == nil {
		return
	}
	s.once.Do(func() { s.cancel(s.id) })
}

type entry[T any] struct {
	id       string
	observer Observer[T]
}

// Notifier manages subscriptions for changes of type T.
type Notifier[T any] struct {
	mu        sync.RWMutex
	observers []entry[T]
	closed    bool
}

// New creates a new Notifier.
func New[T any]() *Notifier[T] {
	return &Notifier[T]{}
}

// Subscribe registers an observer. Observers are notified in the order
// they subscribed.
func (n *Notifier[T]) Subscribe(observer Observer[T]) *Subscription {
	n.mu.Lock()
	defer n.mu.Unlock()

	id := uuid.NewString()
	n.observers = append(n.observers, entry[T]{id: id, observer: observer})
	return &Subscription{id: id, cancel: n.unsubscribe}
}

// Notify delivers change to every observer. It is a no-op after Close.
func (n *Notifier[T]) Notify(change T) {
	n.mu.RLock()
	if n.closed {
		n.mu.RUnlock()
		return
	}
	observers := make([]Observer[T], len(n.observers))
	for i, e := range n.observers {
		observers[i] = e.observer
	}
	n.mu.RUnlock()

	for _, obs := range observers {
		obs(change)
	}
}

// Len returns the number of active subscriptions.
func (n *Notifier[T]) Len() int {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return len(n.observers)
}

// Close drops all observers and stops delivery. It is safe to call Close
// multiple times.
func (n *Notifier[T]) Close() {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.closed = true
	n.observers = nil
}

func (n *Notifier[T]) unsubscribe(id string) {
	n.mu.Lock()
	defer n.mu.Unlock()

	for i, e := range n.observers {
		if e.id == id {
			n.observers = append(n.observers[:i:i], n.observers[i+1:]...)
			return
		}
	}
}
