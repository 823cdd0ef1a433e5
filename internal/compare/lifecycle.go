package compare

import (
	"go.uber.org/zap"

	"github.com/idilsaglam/compare/internal/events"
)

// Start wires autosave and loads the persisted list. Every Change event
// saves the list; save failures are logged. If a record exists it is
// restored, otherwise the list starts empty. An unreadable record is
// logged and treated as absent.
//
// The returned func removes the autosave subscription.
func (m *Manager) Start() (stop func()) {
	stop = m.bus.Subscribe(events.Change, func(events.Event) {
		if err := m.Save(); err != nil {
			m.log.Error("autosave", zap.String("key", m.key), zap.Error(err))
		}
	})

	var s Snapshot
	ok, err := m.adapter.Get(m.key, &s)
	switch {
	case err != nil:
		m.log.Warn("ignoring stored list", zap.String("key", m.key), zap.Error(err))
		m.Init()
	case ok:
		if err := m.Restore(s); err != nil {
			m.log.Error("restore", zap.String("key", m.key), zap.Error(err))
		}
	default:
		m.Init()
	}
	return stop
}
