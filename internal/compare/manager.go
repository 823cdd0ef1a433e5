// Package compare manages a bounded, ordered list of items a user wants to
// compare side by side, persists it through a store.Adapter and publishes
// every change on an events.Bus.
//
// A Manager has a single owner and is not safe for concurrent mutation.
package compare

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/idilsaglam/compare/internal/events"
	"github.com/idilsaglam/compare/internal/model"
	"github.com/idilsaglam/compare/internal/store"
)

const (
	Version = "1.0.0"

	DefaultLimit = 4
	DefaultKey   = "compare"
	DefaultURL   = "http://www.comparecourses.com.au"
)

// Snapshot is the persisted form of the list.
type Snapshot struct {
	Items []model.Record `json:"items"`
}

// Warner surfaces user-facing warnings, such as a full list.
type Warner interface {
	Warn(msg string)
}

// WarnFunc adapts a func to Warner.
type WarnFunc func(msg string)

func (f WarnFunc) Warn(msg string) { f(msg) }

type Manager struct {
	items []*model.Item

	adapter *store.Adapter
	bus     *events.Bus
	log     *zap.Logger
	warner  Warner
	limit   int
	key     string
}

type Option func(*Manager)

// WithLimit sets the maximum number of items. Values below 1 are ignored.
func WithLimit(n int) Option {
	return func(m *Manager) {
		if n > 0 {
			m.limit = n
		}
	}
}

// WithKey sets the storage key the list is saved under.
func WithKey(k string) Option {
	return func(m *Manager) {
		if k != "" {
			m.key = k
		}
	}
}

func WithBus(b *events.Bus) Option {
	return func(m *Manager) { m.bus = b }
}

func WithLogger(l *zap.Logger) Option {
	return func(m *Manager) { m.log = l }
}

func WithWarner(w Warner) Option {
	return func(m *Manager) { m.warner = w }
}

// New returns an uninitialized Manager; call Start (or Init/Restore) before use.
func New(adapter *store.Adapter, opts ...Option) *Manager {
	m := &Manager{
		adapter: adapter,
		limit:   DefaultLimit,
		key:     DefaultKey,
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.bus == nil {
		m.bus = events.NewBus()
	}
	if m.log == nil {
		m.log = zap.NewNop()
	}
	if m.warner == nil {
		m.warner = WarnFunc(func(msg string) {
			m.log.Warn(msg, zap.Int("limit", m.limit))
		})
	}
	return m
}

func (m *Manager) Bus() *events.Bus { return m.bus }
func (m *Manager) Limit() int       { return m.limit }
func (m *Manager) Key() string      { return m.key }

// Init resets the list to empty. Persistence is not touched.
func (m *Manager) Init() {
	m.items = []*model.Item{}
}

// AddItem appends a new item when the id is unknown and there is room.
// A known id only publishes ItemUpdated with the existing item; its fields
// are not changed. A full list calls the Warner. Change is published in
// every case.
func (m *Manager) AddItem(id, name string) {
	if existing := m.ItemByID(id); existing != nil {
		m.publish(events.ItemUpdated, existing)
	} else if m.TotalUniqueItems() < m.limit {
		it := model.NewItem(id, name)
		m.items = append(m.items, it)
		m.log.Debug("item added", zap.String("id", id), zap.Int("count", len(m.items)))
		m.publish(events.ItemAdded, it)
	} else {
		m.log.Debug("limit reached", zap.String("id", id), zap.Int("limit", m.limit))
		m.warner.Warn("Sorry, you reached limit")
	}
	m.publish(events.Change, nil)
}

// ItemByID returns the first item with the id, or nil.
func (m *Manager) ItemByID(id string) *model.Item {
	for _, it := range m.items {
		if it.ID() == id {
			return it
		}
	}
	return nil
}

// Items returns the items in insertion order. The slice is a copy; the
// items are shared.
func (m *Manager) Items() []*model.Item {
	out := make([]*model.Item, len(m.items))
	copy(out, m.items)
	return out
}

func (m *Manager) TotalUniqueItems() int {
	return len(m.items)
}

// RemoveItem removes the item at index. An out-of-range index removes
// nothing and publishes ItemRemoved with a nil item.
func (m *Manager) RemoveItem(index int) {
	var removed *model.Item
	if index >= 0 && index < len(m.items) {
		removed = m.items[index]
		m.items = append(m.items[:index:index], m.items[index+1:]...)
	}
	m.publish(events.ItemRemoved, removed)
	m.publish(events.Change, nil)
}

// RemoveItemByID removes the item with the id. A miss still publishes
// ItemRemoved (with a nil item) and Change.
func (m *Manager) RemoveItemByID(id string) {
	var removed *model.Item
	for i, it := range m.items {
		if it.ID() == id {
			removed = it
			m.items = append(m.items[:i:i], m.items[i+1:]...)
			break
		}
	}
	if removed == nil {
		m.log.Debug("remove miss", zap.String("id", id))
	}
	m.publish(events.ItemRemoved, removed)
	m.publish(events.Change, nil)
}

// Empty clears the list and deletes the persisted record. Change is
// published before the list is cleared.
func (m *Manager) Empty() error {
	m.publish(events.Change, nil)
	m.items = []*model.Item{}
	if err := m.adapter.Remove(m.key); err != nil {
		m.log.Error("delete record", zap.String("key", m.key), zap.Error(err))
		return fmt.Errorf("empty: %w", err)
	}
	return nil
}

func (m *Manager) IsEmpty() bool {
	return len(m.items) == 0
}

// Snapshot returns the plain form of the list, or false when it is empty.
func (m *Manager) Snapshot() (Snapshot, bool) {
	if len(m.items) == 0 {
		return Snapshot{}, false
	}
	return m.snapshot(), true
}

func (m *Manager) snapshot() Snapshot {
	s := Snapshot{Items: make([]model.Record, 0, len(m.items))}
	for _, it := range m.items {
		s.Items = append(s.Items, it.Record())
	}
	return s
}

// Restore replaces the list with the records in s, in order, and saves.
// No events are published.
func (m *Manager) Restore(s Snapshot) error {
	m.Init()
	for _, rec := range s.Items {
		m.items = append(m.items, model.NewItem(rec.ID, rec.Name))
	}
	m.log.Debug("restored", zap.Int("count", len(m.items)))
	return m.Save()
}

// Save writes the current list under the key. An empty list is written as
// an empty items array, not deleted.
func (m *Manager) Save() error {
	if _, err := m.adapter.Set(m.key, m.snapshot()); err != nil {
		return fmt.Errorf("save: %w", err)
	}
	return nil
}

func (m *Manager) publish(kind events.Kind, it *model.Item) {
	m.bus.Publish(events.Event{Kind: kind, Item: it})
}
