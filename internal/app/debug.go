package app

import (
	"fmt"
	"log"
	"os"
)

// debugEnv names a file path for diagnostic logging. The plugin owns both
// stdout and stderr framing, so debug output can never share those streams.
const debugEnv = "CLAUDE_DASHBOARD_DEBUG"

type debugLog struct {
	l *log.Logger
	f *os.File
}

// newDebugLog opens the debug sink named by the environment, or a no-op
// logger when unset or unopenable.
func newDebugLog() *debugLog {
	path := os.Getenv(debugEnv)
	if path == "" {
		return &debugLog{}
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return &debugLog{}
	}
	return &debugLog{l: log.New(f, "", log.LstdFlags|log.Lmsgprefix), f: f}
}

func (d *debugLog) printf(format string, args ...any) {
	if d == nil || d.l == nil {
		return
	}
	d.l.Output(2, fmt.Sprintf(format, args...))
}

func (d *debugLog) close() {
	if d != nil && d.f != nil {
		d.f.Close()
	}
}
