package vkg

import (
	"context"
	"log/slog"
	"sync/atomic"
)

type nopHandler struct{}

func (nopHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (nopHandler) Handle(context.Context, slog.Record) error { return nil }
func (nopHandler) WithAttrs([]slog.Attr) slog.Handler        { return nopHandler{} }
func (nopHandler) WithGroup(string) slog.Handler             { return nopHandler{} }

var loggerPtr atomic.Pointer[slog.Logger]

func init() {
	loggerPtr.Store(slog.New(nopHandler{}))
}

// SetLogger configures the logger used by vkg. By default nothing is logged.
// Passing nil restores the silent default. Safe for concurrent use.
//
// Levels:
//   - Debug: allocator and pool diagnostics
//   - Info: device selection, swapchain (re)creation
//   - Warn: validation layer messages, missing optional layers
//   - Error: validation layer errors
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = slog.New(nopHandler{})
	}
	loggerPtr.Store(l)
}

// Logger returns the logger currently used by vkg.
func Logger() *slog.Logger {
	return loggerPtr.Load()
}
