package triangle

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"
)

// nopHandler is a slog.Handler that silently discards all log records.
// The Enabled method returns false so the caller skips message formatting
// entirely, making disabled logging effectively zero-cost.
type nopHandler struct{}

func (nopHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (nopHandler) Handle(context.Context, slog.Record) error { return nil }
func (nopHandler) WithAttrs([]slog.Attr) slog.Handler        { return nopHandler{} }
func (nopHandler) WithGroup(string) slog.Handler             { return nopHandler{} }

// newNopLogger creates a logger that silently discards all output.
func newNopLogger() *slog.Logger { return slog.New(nopHandler{}) }

// loggerPtr stores the active logger. Accessed atomically so that
// SetLogger can be called concurrently with logging from any goroutine.
var loggerPtr atomic.Pointer[slog.Logger]

var (
	sinksMu sync.RWMutex
	sinks   []LoggerSetter
)

func init() {
	loggerPtr.Store(newNopLogger())
}

// LoggerSetter is implemented by sub-packages that keep their own logger
// and want to follow SetLogger.
type LoggerSetter interface {
	SetLogger(*slog.Logger)
}

// SetLogger configures the logger for triangle and all its sub-packages.
// By default, nothing is logged. Call SetLogger to enable logging.
//
// SetLogger is safe for concurrent use. Pass nil to restore the default
// silent behavior.
//
// Log levels used:
//   - [slog.LevelDebug]: buffer uploads, pipeline state, ignored input
//   - [slog.LevelInfo]: adapter selection, device init, control changes
//   - [slog.LevelWarn]: release errors, surface format changes
//
// Example:
//
//	triangle.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
//	    Level: slog.LevelDebug,
//	})))
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = newNopLogger()
	}
	loggerPtr.Store(l)

	sinksMu.RLock()
	defer sinksMu.RUnlock()
	for _, s := range sinks {
		s.SetLogger(l)
	}
}

// Logger returns the current logger.
//
// Logger is safe for concurrent use.
func Logger() *slog.Logger {
	return loggerPtr.Load()
}

// AttachLogger registers s to receive the logger on every SetLogger call.
// The current logger is passed to s immediately.
func AttachLogger(s LoggerSetter) {
	if s == nil {
		return
	}
	sinksMu.Lock()
	sinks = append(sinks, s)
	sinksMu.Unlock()
	s.SetLogger(Logger())
}
