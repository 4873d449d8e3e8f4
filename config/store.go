package config

import (
	"path/filepath"
	"sync/atomic"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"github.com/MohinVinayak/Code-Dog/core"
	"github.com/MohinVinayak/Code-Dog/dog"
)

// Store holds the live configuration snapshot. Reads are lock-free; a
// reload swaps the whole snapshot, so the controller sees new values on
// its next rule evaluation with no retroactive effect on in-flight timers.
type Store struct {
	path    string
	current atomic.Pointer[Config]
	watcher *fsnotify.Watcher
	done    chan struct{}
}

// NewStore loads path (defaults on error) and returns a live store
func NewStore(path string) *Store {
	s := &Store{path: path, done: make(chan struct{})}
	cfg, err := Load(path)
	if err != nil {
		core.Log().Warn("config load failed, using defaults", zap.Error(err))
	}
	s.current.Store(&cfg)
	return s
}

// Config returns the current snapshot
func (s *Store) Config() Config {
	return *s.current.Load()
}

// Settings implements dog.SettingsSource
func (s *Store) Settings() dog.Settings {
	return s.current.Load().settings()
}

// Watch begins reloading the file on filesystem changes. The parent
// directory is watched because editors replace files rather than write
// in place. No-op when the store has no path.
func (s *Store) Watch() error {
	if s.path == "" {
		return nil
	}
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	if err := w.Add(filepath.Dir(s.path)); err != nil {
		w.Close()
		return err
	}
	s.watcher = w

	core.Go(func() {
		for {
			select {
			case <-s.done:
				return
			case ev, ok := <-w.Events:
				if !ok {
					return
				}
				if ev.Name != s.path {
					continue
				}
				if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) {
					continue
				}
				s.reload()
			case err, ok := <-w.Errors:
				if !ok {
					return
				}
				core.Log().Debug("config watcher error", zap.Error(err))
			}
		}
	})
	return nil
}

// Close stops the watcher. Idempotent.
func (s *Store) Close() {
	select {
	case <-s.done:
	default:
		close(s.done)
	}
	if s.watcher != nil {
		s.watcher.Close()
	}
}

func (s *Store) reload() {
	cfg, err := Load(s.path)
	if err != nil {
		core.Log().Warn("config reload failed, keeping previous", zap.Error(err))
		return
	}
	s.current.Store(&cfg)
	core.Log().Debug("config reloaded", zap.String("path", s.path))
}
