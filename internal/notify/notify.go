// Package notify provides synchronous change notifications. Publishing with
// no subscribers is a no-op.
package notify

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Meta identifies a single published event.
type Meta struct {
	EventID string
	At      time.Time
}

// NewMeta stamps a new event.
func NewMeta() Meta {
	return Meta{EventID: uuid.NewString(), At: time.Now().UTC()}
}

// Hub fans events of type T out to subscribers in subscription order.
type Hub[T any] struct {
	mu     sync.Mutex
	nextID int
	subs   []subscription[T]
}

type subscription[T any] struct {
	id int
	fn func(T)
}

// Subscribe registers fn and returns a function that removes it.
func (h *Hub[T]) Subscribe(fn func(T)) (unsubscribe func()) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.nextID++
	id := h.nextID
	h.subs = append(h.subs, subscription[T]{id: id, fn: fn})

	var once sync.Once
	return func() {
		once.Do(func() { h.remove(id) })
	}
}

// Publish delivers ev to every subscriber on the calling goroutine.
func (h *Hub[T]) Publish(ev T) {
	h.mu.Lock()
	subs := make([]subscription[T], len(h.subs))
	copy(subs, h.subs)
	h.mu.Unlock()

	for _, s := range subs {
		s.fn(ev)
	}
}

// Len returns the number of subscribers.
func (h *Hub[T]) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subs)
}

func (h *Hub[T]) remove(id int) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for i, s := range h.subs {
		if s.id == id {
			h.subs = append(h.subs[:i], h.subs[i+1:]...)
			return
		}
	}
}
