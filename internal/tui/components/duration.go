package components

import (
	"fmt"
	"time"
)

// FormatDuration renders a non-negative duration as a compact hour/minute
// string: "1h30m", "1h", "45m". Minutes are always shown when there are no
// whole hours, including "0m". Callers clamp negative inputs.
func FormatDuration(d time.Duration) string {
	hours := int(d / time.Hour)
	minutes := int(d % time.Hour / time.Minute)

	switch {
	case hours > 0 && minutes > 0:
		return fmt.Sprintf("%dh%dm", hours, minutes)
	case hours > 0:
		return fmt.Sprintf("%dh", hours)
	default:
		return fmt.Sprintf("%dm", minutes)
	}
}

// FormatCountdown renders the time remaining until resetsAt relative to now.
// A nil reset time yields ""; a reset in the past yields "now".
func FormatCountdown(resetsAt *time.Time, now time.Time) string {
	if resetsAt == nil {
		return ""
	}
	if !now.Before(*resetsAt) {
		return "now"
	}
	return FormatDuration(resetsAt.Sub(now))
}
