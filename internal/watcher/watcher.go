// Package watcher provides file watching with debouncing using fsnotify.
package watcher

import (
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// Watcher watches individual files and coalesces rapid change bursts
// (editors typically emit several events per save) into single callbacks.
type Watcher struct {
	fs        *fsnotify.Watcher
	debouncer *Debouncer
	paths     map[string]bool
	onChange  func(path string)
	done      chan struct{}
}

// New creates a Watcher that invokes onChange with the changed path after
// the debounce window closes.
func New(onChange func(path string)) (*Watcher, error) {
	fs, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	w := &Watcher{
		fs:        fs,
		debouncer: NewDebouncer(0),
		paths:     make(map[string]bool),
		onChange:  onChange,
		done:      make(chan struct{}),
	}
	go w.loop()
	return w, nil
}

// Add watches a single file. The containing directory is registered with
// fsnotify so atomic-rename saves are still observed.
func (w *Watcher) Add(path string) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return err
	}
	w.paths[abs] = true
	return w.fs.Add(filepath.Dir(abs))
}

// Close stops the watcher.
func (w *Watcher) Close() error {
	close(w.done)
	w.debouncer.Cancel()
	return w.fs.Close()
}

func (w *Watcher) loop() {
	for {
		select {
		case <-w.done:
			return
		case ev, ok := <-w.fs.Events:
			if !ok {
				return
			}
			if !ev.Op.Has(fsnotify.Write) && !ev.Op.Has(fsnotify.Create) && !ev.Op.Has(fsnotify.Rename) {
				continue
			}
			path := ev.Name
			if abs, err := filepath.Abs(path); err == nil {
				path = abs
			}
			if !w.paths[path] {
				continue
			}
			w.debouncer.Trigger(func() { w.onChange(path) })
		case _, ok := <-w.fs.Errors:
			if !ok {
				return
			}
			// Watch errors are non-fatal; the next poll of the file by a
			// manual refresh still picks up changes.
		}
	}
}
