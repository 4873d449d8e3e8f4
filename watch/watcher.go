// Package watch sources activity signals when no editor host is driving
// the dog. Filesystem changes under a workspace root map to edit/save
// signals; task execution maps to the task lifecycle.
package watch

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"github.com/MohinVinayak/Code-Dog/core"
	"github.com/MohinVinayak/Code-Dog/engine"
	"github.com/MohinVinayak/Code-Dog/events"
	"github.com/MohinVinayak/Code-Dog/parameter"
)

// skipDirs are never watched
var skipDirs = map[string]bool{
	".git":         true,
	"node_modules": true,
	".idea":        true,
	"vendor":       true,
}

// Watcher maps workspace filesystem activity to inbound signals:
// creates are edits, writes are saves, removals are large deletions.
type Watcher struct {
	sched   *engine.Scheduler
	root    string
	watcher *fsnotify.Watcher
	done    chan struct{}
	log     *zap.Logger
}

// NewWatcher creates a watcher over root, recursing into subdirectories
func NewWatcher(sched *engine.Scheduler, root string) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	w := &Watcher{
		sched:   sched,
		root:    root,
		watcher: fsw,
		done:    make(chan struct{}),
		log:     core.Log(),
	}

	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil // unreadable subtree, keep walking
		}
		if !d.IsDir() {
			return nil
		}
		if skipDirs[d.Name()] || strings.HasPrefix(d.Name(), ".") && path != root {
			return filepath.SkipDir
		}
		return fsw.Add(path)
	})
	if err != nil {
		fsw.Close()
		return nil, err
	}
	return w, nil
}

// Start begins translating filesystem events into signals
func (w *Watcher) Start() {
	core.Go(func() {
		for {
			select {
			case <-w.done:
				return
			case ev, ok := <-w.watcher.Events:
				if !ok {
					return
				}
				w.handle(ev)
			case err, ok := <-w.watcher.Errors:
				if !ok {
					return
				}
				w.log.Debug("workspace watcher error", zap.Error(err))
			}
		}
	})
}

// Stop halts the watcher. Idempotent.
func (w *Watcher) Stop() {
	select {
	case <-w.done:
	default:
		close(w.done)
	}
	w.watcher.Close()
}

func (w *Watcher) handle(ev fsnotify.Event) {
	base := filepath.Base(ev.Name)
	if strings.HasPrefix(base, ".") {
		return
	}

	switch {
	case ev.Has(fsnotify.Create):
		if isDir(ev.Name) {
			// New directories join the watch set
			_ = w.watcher.Add(ev.Name)
			return
		}
		w.sched.Push(events.Signal{
			Type:    events.SignalEditChanged,
			Payload: &events.EditChangedPayload{},
		})
	case ev.Has(fsnotify.Write):
		w.sched.Push(events.Signal{Type: events.SignalSaved})
	case ev.Has(fsnotify.Remove), ev.Has(fsnotify.Rename):
		// A vanished file reads as a large deletion
		w.sched.Push(events.Signal{
			Type:    events.SignalEditChanged,
			Payload: &events.EditChangedPayload{DeletionSize: parameter.BiteDeletionThreshold},
		})
	}
}

func isDir(path string) bool {
	fi, err := os.Stat(path)
	if err != nil {
		return false
	}
	return fi.IsDir()
}
