package cli

import (
	"fmt"
	"io"

	"go.uber.org/zap"

	"github.com/idilsaglam/compare/internal/compare"
	"github.com/idilsaglam/compare/internal/config"
	"github.com/idilsaglam/compare/internal/events"
	"github.com/idilsaglam/compare/internal/store"
	"github.com/idilsaglam/compare/internal/store/jsonstore"
	"github.com/idilsaglam/compare/internal/store/memstore"
	"github.com/idilsaglam/compare/internal/store/sqlitestore"
)

// app is one opened comparison list: medium, manager and autosave.
type app struct {
	ctrl   *compare.Controller
	bus    *events.Bus
	stop   func()
	closer io.Closer
}

// openMedium also reports where the list lives: the database file, the
// record directory, or "memory".
func openMedium(sc config.StorageConfig) (store.Medium, io.Closer, string, error) {
	switch sc.Backend {
	case config.BackendSQLite:
		s, err := sqlitestore.Open(sc.Path)
		if err != nil {
			return nil, nil, "", err
		}
		return s, s, s.Path(), nil
	case config.BackendMemory:
		s := memstore.New()
		return s, s, config.BackendMemory, nil
	default:
		s, err := jsonstore.New(sc.Path)
		if err != nil {
			return nil, nil, "", err
		}
		return s, nil, s.Dir(), nil
	}
}

func (s *state) open(w compare.Warner) (*app, error) {
	medium, closer, location, err := openMedium(s.cfg.Storage)
	if err != nil {
		return nil, fmt.Errorf("open %s store: %w", s.cfg.Storage.Backend, err)
	}
	s.log.Debug("store opened",
		zap.String("backend", s.cfg.Storage.Backend),
		zap.String("location", location),
		zap.String("key", s.cfg.Storage.Key))

	bus := events.NewBus()
	m := compare.New(store.New(medium),
		compare.WithLimit(s.cfg.Limit),
		compare.WithKey(s.cfg.Storage.Key),
		compare.WithBus(bus),
		compare.WithLogger(s.log.Named("compare")),
		compare.WithWarner(w),
	)
	return &app{
		ctrl:   compare.NewController(m),
		bus:    bus,
		stop:   m.Start(),
		closer: closer,
	}, nil
}

func (a *app) Close() error {
	a.stop()
	if a.closer != nil {
		return a.closer.Close()
	}
	return nil
}

// closeWith closes a and folds a close failure into err unless err is
// already set.
func (a *app) closeWith(err error) error {
	if cerr := a.Close(); cerr != nil && err == nil {
		return fmt.Errorf("close store: %w", cerr)
	}
	return err
}
