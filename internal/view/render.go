package view

import (
	"fmt"
	"time"

	"github.com/cr545l/hecaton-plugin-claude-dashboard/internal/config"
	"github.com/cr545l/hecaton-plugin-claude-dashboard/internal/quota"
	"github.com/cr545l/hecaton-plugin-claude-dashboard/internal/tui/components"
	"github.com/cr545l/hecaton-plugin-claude-dashboard/internal/tui/layout"
	"github.com/cr545l/hecaton-plugin-claude-dashboard/internal/tui/theme"
)

const (
	title    = "Claude Usage"
	barWidth = 25
)

var effortAbbrev = map[config.EffortLevel]string{
	config.EffortLow:    "low",
	config.EffortMedium: "med",
	config.EffortHigh:   "high",
}

// Render produces the content lines for the current model state, each at
// most width display cells. The line policy is a contract: windows render
// in their fixed slots, absent windows are skipped, and absence is never
// shown as zero.
func Render(st theme.Styles, m *Model, width int, now time.Time) []string {
	r := renderer{st: st, m: m, width: width, now: now}
	switch {
	case m.Err != "":
		return r.errorLines()
	case m.Loading:
		return r.loadingLines()
	default:
		return r.dataLines()
	}
}

type renderer struct {
	st    theme.Styles
	m     *Model
	width int
	now   time.Time
	lines []string
}

func (r *renderer) add(s string) {
	r.lines = append(r.lines, s)
}

func (r *renderer) addCentered(s string) {
	r.add(layout.Center(s, r.width))
}

func (r *renderer) title() {
	r.addCentered(r.st.Title.Render(title))
	r.add("")
}

func (r *renderer) errorLines() []string {
	r.title()
	r.addCentered(r.st.Error.Render(r.m.Err))
	r.addCentered(r.st.Hint.Render("press r to retry"))
	return r.lines
}

func (r *renderer) loadingLines() []string {
	r.title()
	r.addCentered(r.st.Hint.Render("Loading..."))
	return r.lines
}

func (r *renderer) dataLines() []string {
	r.title()

	if r.m.Effort != config.EffortHigh {
		r.add(r.st.Hint.Render("effort: " + effortAbbrev[r.m.Effort]))
		r.add("")
	}

	r.section("Rate Limits")
	r.rateLimits()

	if r.m.Display.Mode != config.ModeCompact {
		r.add("")
		r.section("Session")
		r.session()

		r.add("")
		r.section("Account")
		r.add(r.st.Text.Render("plan: " + planName(r.m.Display.Plan)))
	}

	r.add("")
	r.addCentered(r.st.Hint.Render("r refresh · 1/2/3 view · q quit"))

	if r.m.ShowDebug {
		r.addCentered(r.st.Dim.Render(fmt.Sprintf("fetch took %dms", r.m.LastFetchTook.Milliseconds())))
	}
	return r.lines
}

func (r *renderer) section(name string) {
	r.add(r.st.Title.Render(name))
}

// rateLimits renders each reported window in its fixed slot, or a single
// no-data line when nothing was reported.
func (r *renderer) rateLimits() {
	rendered := 0
	for _, key := range quota.RenderOrder {
		w, ok := r.m.Metrics.Window(key)
		if !ok {
			continue
		}
		rendered++
		r.add(r.windowLine(key, w))
		if r.m.Display.Mode == config.ModeDetailed && w.ResetsAt != nil {
			r.add(r.st.Dim.Render("  resets " + w.ResetsAt.Local().Format("Mon 15:04")))
		}
	}
	if rendered == 0 {
		if r.m.Metrics == nil {
			r.add(r.st.Hint.Render("no data (failed to fetch)"))
		} else {
			r.add(r.st.Hint.Render("no data"))
		}
	}
}

func (r *renderer) windowLine(key quota.WindowKey, w quota.Window) string {
	line := layout.Pad(r.st.Text.Render(quota.Labels[key]), 14) +
		components.ProgressBar(r.st, w.Utilization, barWidth) + " " +
		components.FormatPercent(r.st, w.Utilization)
	if cd := components.FormatCountdown(w.ResetsAt, r.now); cd != "" {
		line += " " + r.st.Dim.Render("("+cd+")")
	}
	return layout.Truncate(line, r.width)
}

func (r *renderer) session() {
	uptime := r.now.Sub(r.m.StartedAt)
	if uptime < 0 {
		uptime = 0
	}
	r.add(r.st.Text.Render(fmt.Sprintf("uptime %s · refreshes %d",
		components.FormatDuration(uptime), r.m.RefreshCount)))
	if r.m.LastRefreshAt != nil {
		ago := int(r.now.Sub(*r.m.LastRefreshAt).Seconds())
		if ago < 0 {
			ago = 0
		}
		r.add(r.st.Hint.Render(fmt.Sprintf("last update %ds ago", ago)))
	}
}

func planName(p config.Plan) string {
	switch p {
	case config.PlanPro:
		return "Pro"
	default:
		return "Max"
	}
}
