package gphoto2

import (
	"context"
	"log/slog"
	"sync/atomic"

	"github.com/maxicarlos08/gphoto2-go/internal/executor"
	"github.com/maxicarlos08/gphoto2-go/internal/native"
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

func init() {
	l := newNopLogger()
	loggerPtr.Store(l)
}

// SetLogger configures the logger for gphoto2 and all its sub-packages.
// By default, gphoto2 produces no log output. Call SetLogger to enable it.
//
// SetLogger is safe for concurrent use: it stores the new logger atomically.
// Pass nil to disable logging (restore default silent behavior).
//
// Log levels used by gphoto2:
//   - [slog.LevelDebug]: task lifecycle, libgphoto2's own debug stream
//   - [slog.LevelInfo]: session lifecycle, native status/message reports
//   - [slog.LevelWarn]: native-reported errors, recovered closure panics
//
// Example:
//
//	// Enable info-level logging to stderr:
//	gphoto2.SetLogger(slog.Default())
//
//	// Enable debug-level logging for full diagnostics:
//	gphoto2.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
//	    Level: slog.LevelDebug,
//	})))
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = newNopLogger()
	}
	loggerPtr.Store(l)

	// The camera thread and the cgo trampolines log through their own
	// packages; keep them on the same configuration.
	executor.SetLogger(l)
	native.SetLogger(l)
}

// Logger returns the current logger used by gphoto2.
//
// Logger is safe for concurrent use.
func Logger() *slog.Logger {
	return loggerPtr.Load()
}
