package core

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync/atomic"
)

// nopHandler discards every record. Enabled returns false so callers skip
// formatting entirely.
type nopHandler struct{}

func (nopHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (nopHandler) Handle(context.Context, slog.Record) error { return nil }
func (nopHandler) WithAttrs([]slog.Attr) slog.Handler        { return nopHandler{} }
func (nopHandler) WithGroup(string) slog.Handler             { return nopHandler{} }

var loggerPtr atomic.Pointer[slog.Logger]

func init() {
	loggerPtr.Store(slog.New(nopHandler{}))
}

// SetLogger configures the logger shared by all raytracer packages.
// By default nothing is logged. Passing nil restores the silent default.
//
// Levels used:
//   - [slog.LevelDebug]: per-scanline progress
//   - [slog.LevelInfo]: render lifecycle (start, partition, finish, output written)
//   - [slog.LevelWarn]: recoverable problems (settings file missing, defaults used)
//
// SetLogger is safe for concurrent use.
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = slog.New(nopHandler{})
	}
	loggerPtr.Store(l)
}

// Log returns the current shared logger
func Log() *slog.Logger {
	return loggerPtr.Load()
}

// PrintfHandler is a slog.Handler that forwards each record as one formatted
// line to a printf-style Logger.
type PrintfHandler struct {
	out   Logger
	level slog.Leveler
	attrs []slog.Attr
}

// NewPrintfHandler creates a handler writing records at or above level to out
func NewPrintfHandler(out Logger, level slog.Leveler) *PrintfHandler {
	if level == nil {
		level = slog.LevelInfo
	}
	return &PrintfHandler{out: out, level: level}
}

func (h *PrintfHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level.Level()
}

func (h *PrintfHandler) Handle(_ context.Context, r slog.Record) error {
	var b strings.Builder
	b.WriteString(r.Message)
	write := func(a slog.Attr) bool {
		fmt.Fprintf(&b, " %s=%v", a.Key, a.Value.Any())
		return true
	}
	for _, a := range h.attrs {
		write(a)
	}
	r.Attrs(write)
	h.out.Printf("%s", b.String())
	return nil
}

func (h *PrintfHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	merged := make([]slog.Attr, 0, len(h.attrs)+len(attrs))
	merged = append(merged, h.attrs...)
	merged = append(merged, attrs...)
	return &PrintfHandler{out: h.out, level: h.level, attrs: merged}
}

// WithGroup is not supported; groups are flattened.
func (h *PrintfHandler) WithGroup(string) slog.Handler {
	return h
}
