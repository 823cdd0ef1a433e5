// Package events is a small in-process publish/subscribe bus.
// Delivery is synchronous: Publish returns after every handler has run.
package events

import (
	"sync"

	"github.com/idilsaglam/compare/internal/model"
)

// Kind names a notification.
type Kind string

const (
	Change      Kind = "compare:change"
	ItemAdded   Kind = "compare:itemAdded"
	ItemUpdated Kind = "compare:itemUpdated"
	ItemRemoved Kind = "compare:itemRemoved"
)

// Event carries the affected item. Item is nil for Change and for a
// removal that matched nothing.
type Event struct {
	Kind Kind
	Item *model.Item
}

type Handler func(Event)

type subscription struct {
	id   uint64
	kind Kind // empty: every kind
	fn   Handler
}

// Bus keeps subscribers in registration order.
// The mutex only guards the subscriber table; handlers run outside it.
type Bus struct {
	mu     sync.Mutex
	nextID uint64
	subs   []subscription
}

func NewBus() *Bus { return &Bus{} }

// Subscribe registers h for one kind. The returned func unsubscribes and
// is safe to call more than once.
func (b *Bus) Subscribe(kind Kind, h Handler) func() {
	return b.add(kind, h)
}

// SubscribeAll registers h for every kind.
func (b *Bus) SubscribeAll(h Handler) func() {
	return b.add("", h)
}

func (b *Bus) add(kind Kind, h Handler) func() {
	b.mu.Lock()
	b.nextID++
	id := b.nextID
	b.subs = append(b.subs, subscription{id: id, kind: kind, fn: h})
	b.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() { b.remove(id) })
	}
}

func (b *Bus) remove(id uint64) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for i, s := range b.subs {
		if s.id == id {
			// copy so a Publish iterating the old slice is unaffected
			next := make([]subscription, 0, len(b.subs)-1)
			next = append(next, b.subs[:i]...)
			b.subs = append(next, b.subs[i+1:]...)
			return
		}
	}
}

// Publish delivers ev to the subscribers registered at call time.
func (b *Bus) Publish(ev Event) {
	b.mu.Lock()
	subs := b.subs
	b.mu.Unlock()

	for _, s := range subs {
		if s.kind == "" || s.kind == ev.Kind {
			s.fn(ev)
		}
	}
}
