// Package view holds the panel's single source of truth and turns it into
// content lines for the compositor.
package view

import (
	"time"

	"github.com/cr545l/hecaton-plugin-claude-dashboard/internal/config"
	"github.com/cr545l/hecaton-plugin-claude-dashboard/internal/quota"
)

// Model is the authoritative display state. It is owned by the event loop
// and mutated only there, one trigger at a time; exactly one of loading,
// error, or data describes the panel at any observation point.
type Model struct {
	Loading bool
	Err     string
	Metrics *quota.Snapshot

	Display config.Display
	Effort  config.EffortLevel

	StartedAt     time.Time
	LastRefreshAt *time.Time
	RefreshCount  int

	Cols, Rows int

	ShowDebug     bool
	LastFetchTook time.Duration
}

// NewModel builds the startup state: loading, no data, conventional
// 80x24 dimensions until the host reports real ones.
func NewModel(display config.Display, effort config.EffortLevel, now time.Time) *Model {
	return &Model{
		Loading:   true,
		Display:   display,
		Effort:    effort,
		StartedAt: now,
		Cols:      80,
		Rows:      24,
	}
}

// BeginRefresh moves the model into the loading state.
func (m *Model) BeginRefresh() {
	m.Loading = true
	m.Err = ""
}

// ApplyResult folds a completed refresh cycle into the model. A missing
// credential keeps the previous metrics and does not count as a completed
// data cycle; a handled fetch failure replaces them with "no data".
func (m *Model) ApplyResult(res quota.Result, now time.Time) {
	m.Loading = false
	m.LastFetchTook = res.Took

	if res.Err != "" {
		m.Err = res.Err
		return
	}

	m.Err = ""
	m.Metrics = res.Snapshot
	t := now
	m.LastRefreshAt = &t
	m.RefreshCount++
}

// Resize applies new terminal dimensions; zero fields keep prior values.
func (m *Model) Resize(cols, rows int) {
	if cols > 0 {
		m.Cols = cols
	}
	if rows > 0 {
		m.Rows = rows
	}
}
