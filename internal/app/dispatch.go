package app

import (
	"context"

	"github.com/cr545l/hecaton-plugin-claude-dashboard/internal/config"
	"github.com/cr545l/hecaton-plugin-claude-dashboard/internal/host"
)

// dispatch handles one classified inbound message. It returns true when the
// user asked to quit.
func (a *App) dispatch(ctx context.Context, msg host.Message) bool {
	switch msg.Kind {
	case host.KindEnvelope:
		a.handleEnvelope(msg.Envelope)
	case host.KindKeys:
		for _, key := range msg.Keys {
			if quit := a.handleKey(ctx, key); quit {
				return true
			}
		}
	}
	return false
}

// handleEnvelope applies a host protocol message. Unrecognized methods are
// ignored; the host may speak a newer protocol than we do.
func (a *App) handleEnvelope(env *host.Envelope) {
	if p, ok := env.Resize(); ok {
		a.model.Resize(p.Cols, p.Rows)
		a.repaint()
		return
	}
	a.debug.printf("ignoring host method %q", env.Method)
}

// handleKey runs the single-character command table. Unrecognized keys are
// ignored without error.
func (a *App) handleKey(ctx context.Context, key byte) bool {
	switch key {
	case 'r', 'R':
		if a.refresher.Trigger(ctx) {
			a.model.BeginRefresh()
			a.repaint()
		}
	case 'q', 'Q':
		return true
	case '1':
		a.model.Display.Mode = config.ModeCompact
		a.repaint()
	case '2':
		a.model.Display.Mode = config.ModeNormal
		a.repaint()
	case '3':
		a.model.Display.Mode = config.ModeDetailed
		a.repaint()
	case 'd':
		a.model.ShowDebug = !a.model.ShowDebug
		a.repaint()
	}
	return false
}
