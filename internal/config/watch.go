package config

import (
	"github.com/cr545l/hecaton-plugin-claude-dashboard/internal/watcher"
)

// WatchSettings watches the host settings file and invokes onChange with the
// freshly loaded effort level after each (debounced) modification. It
// returns a stop function. A watcher that cannot be created is non-fatal:
// the stop function is a no-op and settings are simply not live-reloaded.
func WatchSettings(onChange func(EffortLevel)) func() {
	path := SettingsPath()
	if path == "" {
		return func() {}
	}
	stop, err := newSettingsWatcher(path, onChange)
	if err != nil {
		return func() {}
	}
	return stop
}

func newSettingsWatcher(path string, onChange func(EffortLevel)) (func(), error) {
	w, err := watcher.New(func(changed string) {
		onChange(loadEffortFrom(changed))
	})
	if err != nil {
		return nil, err
	}
	if err := w.Add(path); err != nil {
		w.Close()
		return nil, err
	}
	return func() { w.Close() }, nil
}
