package view

import (
	"strings"
	"testing"
	"time"

	"github.com/cr545l/hecaton-plugin-claude-dashboard/internal/config"
	"github.com/cr545l/hecaton-plugin-claude-dashboard/internal/quota"
	"github.com/cr545l/hecaton-plugin-claude-dashboard/internal/tui/theme"
)

var (
	testStyles = theme.DefaultStyles(theme.Current())
	testNow    = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
)

func testModel() *Model {
	m := NewModel(config.DefaultDisplay(), config.EffortHigh, testNow.Add(-30*time.Minute))
	m.Loading = false
	return m
}

func snapshotWith(keys ...quota.WindowKey) *quota.Snapshot {
	reset := testNow.Add(90 * time.Minute)
	windows := make(map[quota.WindowKey]quota.Window)
	for _, k := range keys {
		windows[k] = quota.Window{Utilization: 42, ResetsAt: &reset}
	}
	return &quota.Snapshot{Windows: windows, FetchedAt: testNow}
}

func joined(lines []string) string {
	return strings.Join(lines, "\n")
}

func countRateLimitLines(lines []string) int {
	n := 0
	for _, l := range lines {
		if strings.Contains(l, "█") || strings.Contains(l, "░") {
			n++
		}
	}
	return n
}

func TestRenderLoading(t *testing.T) {
	m := testModel()
	m.Loading = true

	out := joined(Render(testStyles, m, 60, testNow))
	if !strings.Contains(out, "Loading...") {
		t.Errorf("loading view missing loading line:\n%s", out)
	}
	if strings.Contains(out, "Rate Limits") {
		t.Errorf("loading view renders data sections:\n%s", out)
	}
}

func TestRenderError(t *testing.T) {
	m := testModel()
	m.Err = quota.ErrNoCredentials

	lines := Render(testStyles, m, 60, testNow)
	out := joined(lines)

	if !strings.Contains(out, "No credentials found") {
		t.Errorf("error view missing error:\n%s", out)
	}
	if !strings.Contains(out, "press r to retry") {
		t.Errorf("error view missing hint:\n%s", out)
	}
	if got := countRateLimitLines(lines); got != 0 {
		t.Errorf("error view has %d progress bars, want 0", got)
	}
}

func TestRenderFixedWindowOrder(t *testing.T) {
	m := testModel()
	m.Metrics = snapshotWith(quota.WindowSevenDayOpus, quota.WindowFiveHour)

	out := joined(Render(testStyles, m, 60, testNow))
	five := strings.Index(out, "5-hour")
	opus := strings.Index(out, "7-day (Opus)")

	if five == -1 || opus == -1 {
		t.Fatalf("window labels missing:\n%s", out)
	}
	if five > opus {
		t.Errorf("windows not in fixed order:\n%s", out)
	}
}

func TestRenderSingleWindowInFixedSlot(t *testing.T) {
	m := testModel()
	m.Metrics = snapshotWith(quota.WindowSevenDay)

	lines := Render(testStyles, m, 60, testNow)
	if got := countRateLimitLines(lines); got != 1 {
		t.Errorf("got %d rate-limit lines, want 1:\n%s", got, joined(lines))
	}
	out := joined(lines)
	if !strings.Contains(out, "7-day") {
		t.Errorf("seven-day label missing:\n%s", out)
	}
	if strings.Contains(out, "5-hour") {
		t.Errorf("absent window rendered:\n%s", out)
	}
}

func TestRenderWindowLine(t *testing.T) {
	m := testModel()
	m.Metrics = snapshotWith(quota.WindowFiveHour)

	lines := Render(testStyles, m, 72, testNow)
	var line string
	for _, l := range lines {
		if strings.Contains(l, "5-hour") {
			line = l
		}
	}
	if line == "" {
		t.Fatalf("five-hour line missing:\n%s", joined(lines))
	}

	// round(42/100*25) = 11 filled cells, 42% in the ok color band,
	// countdown from the 90-minute reset.
	if got := strings.Count(line, "█"); got != 11 {
		t.Errorf("filled cells = %d, want 11: %q", got, line)
	}
	if got := strings.Count(line, "░"); got != 14 {
		t.Errorf("empty cells = %d, want 14: %q", got, line)
	}
	if !strings.Contains(line, "42%") {
		t.Errorf("percent missing: %q", line)
	}
	if !strings.Contains(line, "(1h30m)") {
		t.Errorf("countdown missing: %q", line)
	}
}

func TestRenderNoData(t *testing.T) {
	m := testModel()

	// Fetch failed: metrics nil.
	out := joined(Render(testStyles, m, 60, testNow))
	if !strings.Contains(out, "no data (failed to fetch)") {
		t.Errorf("nil metrics missing fetch-failed hint:\n%s", out)
	}

	// Endpoint reported nothing: empty snapshot.
	m.Metrics = &quota.Snapshot{Windows: map[quota.WindowKey]quota.Window{}}
	out = joined(Render(testStyles, m, 60, testNow))
	if !strings.Contains(out, "no data") || strings.Contains(out, "failed to fetch") {
		t.Errorf("empty snapshot renders wrong no-data line:\n%s", out)
	}
}

func TestRenderEffortLine(t *testing.T) {
	m := testModel()
	m.Metrics = snapshotWith(quota.WindowFiveHour)

	// Default high effort is not shown.
	out := joined(Render(testStyles, m, 60, testNow))
	if strings.Contains(out, "effort:") {
		t.Errorf("default effort rendered:\n%s", out)
	}

	m.Effort = config.EffortMedium
	out = joined(Render(testStyles, m, 60, testNow))
	if !strings.Contains(out, "effort: med") {
		t.Errorf("non-default effort not rendered:\n%s", out)
	}
}

func TestRenderDisplayModes(t *testing.T) {
	m := testModel()
	m.Metrics = snapshotWith(quota.WindowFiveHour)

	m.Display.Mode = config.ModeCompact
	out := joined(Render(testStyles, m, 60, testNow))
	if strings.Contains(out, "Session") || strings.Contains(out, "Account") {
		t.Errorf("compact mode renders full sections:\n%s", out)
	}

	m.Display.Mode = config.ModeNormal
	out = joined(Render(testStyles, m, 60, testNow))
	if !strings.Contains(out, "Session") || !strings.Contains(out, "plan: Max") {
		t.Errorf("normal mode missing sections:\n%s", out)
	}
	if strings.Contains(out, "resets ") {
		t.Errorf("normal mode shows detailed reset line:\n%s", out)
	}

	m.Display.Mode = config.ModeDetailed
	out = joined(Render(testStyles, m, 60, testNow))
	if !strings.Contains(out, "resets ") {
		t.Errorf("detailed mode missing reset line:\n%s", out)
	}
}

func TestRenderSessionSection(t *testing.T) {
	m := testModel()
	m.Metrics = snapshotWith(quota.WindowFiveHour)
	m.RefreshCount = 4
	last := testNow.Add(-32 * time.Second)
	m.LastRefreshAt = &last

	out := joined(Render(testStyles, m, 60, testNow))
	if !strings.Contains(out, "uptime 30m · refreshes 4") {
		t.Errorf("session line wrong:\n%s", out)
	}
	if !strings.Contains(out, "last update 32s ago") {
		t.Errorf("last-update line wrong:\n%s", out)
	}
}

func TestApplyResult(t *testing.T) {
	m := NewModel(config.DefaultDisplay(), config.EffortHigh, testNow)

	// Completed successful cycle.
	m.BeginRefresh()
	m.ApplyResult(quota.Result{Snapshot: snapshotWith(quota.WindowFiveHour)}, testNow)
	if m.Loading || m.Err != "" {
		t.Errorf("after success: loading=%v err=%q", m.Loading, m.Err)
	}
	if m.RefreshCount != 1 || m.LastRefreshAt == nil {
		t.Errorf("after success: count=%d last=%v", m.RefreshCount, m.LastRefreshAt)
	}

	// Credential failure: error set, no cycle counted, metrics kept.
	m.BeginRefresh()
	m.ApplyResult(quota.Result{Err: quota.ErrNoCredentials}, testNow)
	if m.Loading {
		t.Error("loading still set after credential failure")
	}
	if m.Err != quota.ErrNoCredentials {
		t.Errorf("err = %q", m.Err)
	}
	if m.RefreshCount != 1 {
		t.Errorf("credential failure counted as refresh: %d", m.RefreshCount)
	}
	if m.Metrics == nil {
		t.Error("credential failure dropped previous metrics")
	}

	// Handled fetch failure: no error, metrics replaced by nil, cycle counted.
	m.BeginRefresh()
	m.ApplyResult(quota.Result{}, testNow)
	if m.Err != "" {
		t.Errorf("fetch failure surfaced error: %q", m.Err)
	}
	if m.Metrics != nil {
		t.Error("fetch failure kept stale metrics")
	}
	if m.RefreshCount != 2 {
		t.Errorf("fetch failure not counted: %d", m.RefreshCount)
	}
}

func TestResize(t *testing.T) {
	m := testModel()
	m.Resize(120, 40)
	if m.Cols != 120 || m.Rows != 40 {
		t.Errorf("resize not applied: %dx%d", m.Cols, m.Rows)
	}

	// Zero fields keep prior values.
	m.Resize(0, 50)
	if m.Cols != 120 || m.Rows != 50 {
		t.Errorf("zero cols overwrote prior value: %dx%d", m.Cols, m.Rows)
	}
}
