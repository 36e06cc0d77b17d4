package gpu

import (
	"context"
	"log/slog"
	"sync/atomic"

	"github.com/gogpu/triangle"
)

// nopHandler silently discards all log records.
type nopHandler struct{}

func (nopHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (nopHandler) Handle(context.Context, slog.Record) error { return nil }
func (nopHandler) WithAttrs([]slog.Attr) slog.Handler        { return nopHandler{} }
func (nopHandler) WithGroup(string) slog.Handler             { return nopHandler{} }

// loggerPtr stores the active logger. Accessed atomically for thread safety.
var loggerPtr atomic.Pointer[slog.Logger]

// loggerSink forwards triangle.SetLogger to this package.
type loggerSink struct{}

func (loggerSink) SetLogger(l *slog.Logger) { setLogger(l) }

func init() {
	loggerPtr.Store(slog.New(nopHandler{}))
	triangle.AttachLogger(loggerSink{})
}

// slogger returns the current package logger.
// All logging in internal/gpu goes through this function.
func slogger() *slog.Logger { return loggerPtr.Load() }

// setLogger updates the package-level logger.
func setLogger(l *slog.Logger) {
	if l == nil {
		l = slog.New(nopHandler{})
	}
	loggerPtr.Store(l)
}
