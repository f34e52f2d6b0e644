// Package logger provides the terminal slog handler used by examctl.
package logger

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"
)

const (
	reset  = "\033[0m"
	red    = "\033[31m"
	green  = "\033[32m"
	yellow = "\033[33m"
	purple = "\033[35m"
	cyan   = "\033[36m"
	gray   = "\033[37m"
)

// Options configures a PrettyHandler.
type Options struct {
	Level   slog.Leveler
	NoColor bool
}

// PrettyHandler writes one human-readable line per record:
//
//	15:04:05.000 INFO  message key=value
type PrettyHandler struct {
	level   slog.Leveler
	noColor bool
	w       io.Writer
	mu      *sync.Mutex
	attrs   []slog.Attr
	group   string
}

func NewPrettyHandler(w io.Writer, opts *Options) *PrettyHandler {
	if opts == nil {
		opts = &Options{}
	}
	level := opts.Level
	if level == nil {
		level = slog.LevelInfo
	}
	return &PrettyHandler{
		level:   level,
		noColor: opts.NoColor,
		w:       w,
		mu:      &sync.Mutex{},
	}
}

func (h *PrettyHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level.Level()
}

func (h *PrettyHandler) Handle(_ context.Context, r slog.Record) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	fmt.Fprintf(h.w, "%s ", h.paint(gray, r.Time.Format("15:04:05.000")))
	fmt.Fprintf(h.w, "%s %s", h.paint(levelColor(r.Level), fmt.Sprintf("%-5s", r.Level.String())), r.Message)

	for _, a := range h.attrs {
		h.writeAttr("", a)
	}
	r.Attrs(func(a slog.Attr) bool {
		h.writeAttr(h.group, a)
		return true
	})

	_, err := fmt.Fprintln(h.w)
	return err
}

func (h *PrettyHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	next := h.clone()
	for _, a := range attrs {
		if h.group != "" {
			a.Key = h.group + "." + a.Key
		}
		next.attrs = append(next.attrs, a)
	}
	return next
}

func (h *PrettyHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	next := h.clone()
	if next.group != "" {
		next.group += "." + name
	} else {
		next.group = name
	}
	return next
}

func (h *PrettyHandler) clone() *PrettyHandler {
	attrs := make([]slog.Attr, len(h.attrs))
	copy(attrs, h.attrs)
	return &PrettyHandler{
		level:   h.level,
		noColor: h.noColor,
		w:       h.w,
		mu:      h.mu,
		attrs:   attrs,
		group:   h.group,
	}
}

// writeAttr prints a with group prepended to its key. Attrs stored by
// WithAttrs are already qualified.
func (h *PrettyHandler) writeAttr(group string, a slog.Attr) {
	if a.Equal(slog.Attr{}) {
		return
	}
	key := a.Key
	if group != "" {
		key = group + "." + key
	}

	val := a.Value.Resolve().Any()
	switch v := val.(type) {
	case time.Time:
		val = v.Format(time.RFC3339)
	case time.Duration:
		val = v.Round(time.Microsecond).String()
	}

	fmt.Fprintf(h.w, " %s=%v", h.paint(cyan, key), val)
}

func (h *PrettyHandler) paint(color, s string) string {
	if h.noColor {
		return s
	}
	return color + s + reset
}

func levelColor(level slog.Level) string {
	switch {
	case level >= slog.LevelError:
		return red
	case level >= slog.LevelWarn:
		return yellow
	case level >= slog.LevelInfo:
		return green
	default:
		return purple
	}
}
