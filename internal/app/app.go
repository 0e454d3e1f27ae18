// Package app wires the plugin together and runs the event loop. The loop
// is the single owner of the view model: every trigger source (keystrokes,
// host envelopes, the refresh timer, fetch completions, settings changes)
// is funneled into one goroutine, so no mutation ever races a repaint.
package app

import (
	"context"
	"io"
	"sync"
	"time"

	"github.com/cr545l/hecaton-plugin-claude-dashboard/internal/config"
	"github.com/cr545l/hecaton-plugin-claude-dashboard/internal/host"
	"github.com/cr545l/hecaton-plugin-claude-dashboard/internal/quota"
	"github.com/cr545l/hecaton-plugin-claude-dashboard/internal/tui/panel"
	"github.com/cr545l/hecaton-plugin-claude-dashboard/internal/tui/theme"
	"github.com/cr545l/hecaton-plugin-claude-dashboard/internal/view"
)

// Options configures an App. Zero values fall back to production wiring
// where that makes sense; Input, TermOut, CtrlOut, and Refresher are
// required.
type Options struct {
	Input     io.Reader // host input stream (envelopes + keystrokes)
	TermOut   io.Writer // painted terminal output
	CtrlOut   io.Writer // outbound control envelopes
	Refresher *quota.Refresher

	Display  config.Display
	Effort   config.EffortLevel
	Interval time.Duration // periodic refresh cadence

	Now func() time.Time

	// WatchSettings defaults to config.WatchSettings.
	WatchSettings func(onChange func(config.EffortLevel)) func()
}

// App is the running plugin.
type App struct {
	model     *view.Model
	styles    theme.Styles
	painter   *panel.Painter
	encoder   *host.Encoder
	refresher *quota.Refresher

	messages chan host.Message
	decoder  *host.Decoder
	interval time.Duration
	now      func() time.Time
	watch    func(func(config.EffortLevel)) func()

	teardown sync.Once
	debug    *debugLog
}

// New builds the app around its collaborators.
func New(opts Options) *App {
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	interval := opts.Interval
	if interval <= 0 {
		interval = 60 * time.Second
	}
	watch := opts.WatchSettings
	if watch == nil {
		watch = config.WatchSettings
	}

	return &App{
		model:     view.NewModel(opts.Display, opts.Effort, now()),
		styles:    theme.DefaultStyles(theme.Current()),
		painter:   panel.NewPainter(opts.TermOut),
		encoder:   host.NewEncoder(opts.CtrlOut),
		refresher: opts.Refresher,
		messages:  make(chan host.Message, 16),
		decoder:   host.NewDecoder(opts.Input),
		interval:  interval,
		now:       now,
		watch:     watch,
		debug:     newDebugLog(),
	}
}

// SetInitialSize seeds the terminal dimensions before the host sends a
// resize (standalone mode).
func (a *App) SetInitialSize(cols, rows int) {
	a.model.Resize(cols, rows)
}

// Run drives the event loop until the context is canceled, the input
// stream ends, or the user quits. The cursor-restore sequence runs exactly
// once on every exit path.
func (a *App) Run(ctx context.Context) error {
	ticker := time.NewTicker(a.interval)
	defer ticker.Stop()

	effortCh := make(chan config.EffortLevel, 1)
	stopWatch := a.watch(func(e config.EffortLevel) {
		select {
		case effortCh <- e:
		default:
		}
	})
	defer stopWatch()

	go a.decoder.Run(a.messages)

	// Initial refresh and paint.
	a.model.BeginRefresh()
	a.refresher.Trigger(ctx)
	a.repaint()

	for {
		select {
		case <-ctx.Done():
			a.shutdown()
			return nil

		case msg, ok := <-a.messages:
			if !ok {
				// Host hung up.
				a.shutdown()
				return nil
			}
			if quit := a.dispatch(ctx, msg); quit {
				a.shutdown()
				return a.encoder.RequestClose()
			}

		case <-ticker.C:
			if a.refresher.Trigger(ctx) {
				a.model.BeginRefresh()
				a.repaint()
			}

		case res := <-a.refresher.Results():
			a.debug.printf("refresh done in %s (err=%q, data=%v)", res.Took, res.Err, res.Snapshot != nil)
			a.model.ApplyResult(res, a.now())
			a.repaint()

		case e := <-effortCh:
			a.model.Effort = e
			a.repaint()
		}
	}
}

// repaint composes and paints the full panel for the current model state.
func (a *App) repaint() {
	boxWidth := panel.BoxWidth(a.model.Cols)
	lines := view.Render(a.styles, a.model, boxWidth-4, a.now())
	rows := panel.Compose(a.styles, lines, boxWidth)
	startRow, startCol := panel.Origin(a.model.Cols, a.model.Rows, boxWidth, len(rows))
	a.painter.Paint(rows, startRow, startCol)
}

// shutdown restores the terminal exactly once, whichever trigger got here
// first.
func (a *App) shutdown() {
	a.teardown.Do(func() {
		a.painter.Restore()
		a.debug.close()
	})
}
