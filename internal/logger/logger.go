// Package logger holds the process-wide structured logger shared by the
// model, geometry and viewer packages.
package logger

import (
	"context"
	"log/slog"
	"sync/atomic"
)

// nopHandler discards all records. Enabled returns false so callers skip
// message formatting entirely when logging is off.
type nopHandler struct{}

func (nopHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (nopHandler) Handle(context.Context, slog.Record) error { return nil }
func (nopHandler) WithAttrs([]slog.Attr) slog.Handler        { return nopHandler{} }
func (nopHandler) WithGroup(string) slog.Handler             { return nopHandler{} }

// active stores the current logger. Accessed atomically so SetLogger can be
// called concurrently with logging from any goroutine.
var active atomic.Pointer[slog.Logger]

func init() {
	l := slog.New(nopHandler{})
	active.Store(l)
}

// SetLogger installs l as the shared logger. Pass nil to silence all output.
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = slog.New(nopHandler{})
	}
	active.Store(l)
}

// Logger returns the current shared logger. Packages call this at the log
// site rather than holding their own reference, so SetLogger takes effect
// everywhere at once.
func Logger() *slog.Logger {
	return active.Load()
}
