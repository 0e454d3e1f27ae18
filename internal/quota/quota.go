// Package quota defines the usage snapshot model and the refresh state
// machine that keeps it current.
package quota

import "time"

// WindowKey names a rate-limit accounting window.
type WindowKey string

const (
	WindowFiveHour     WindowKey = "five_hour"
	WindowSevenDay     WindowKey = "seven_day"
	WindowSevenDayOpus WindowKey = "seven_day_opus"
)

// RenderOrder is the fixed display order for windows. A window absent from a
// snapshot is skipped, never rendered as zero.
var RenderOrder = []WindowKey{WindowFiveHour, WindowSevenDay, WindowSevenDayOpus}

// Labels maps window keys to their display labels.
var Labels = map[WindowKey]string{
	WindowFiveHour:     "5-hour",
	WindowSevenDay:     "7-day",
	WindowSevenDayOpus: "7-day (Opus)",
}

// Window is one rate-limit window as reported by the usage endpoint.
type Window struct {
	Utilization float64    // 0-100
	ResetsAt    *time.Time // nil when the endpoint reports no reset time
}

// Snapshot is an immutable set of reported windows. Each successful refresh
// replaces the previous snapshot wholesale; snapshots are never merged.
type Snapshot struct {
	Windows   map[WindowKey]Window
	FetchedAt time.Time
}

// Window returns the named window and whether it was reported.
func (s *Snapshot) Window(key WindowKey) (Window, bool) {
	if s == nil {
		return Window{}, false
	}
	w, ok := s.Windows[key]
	return w, ok
}

// Empty reports whether no window was present in the snapshot.
func (s *Snapshot) Empty() bool {
	return s == nil || len(s.Windows) == 0
}
