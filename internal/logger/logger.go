// Package logger provides structured logging setup for clientdesk.
package logger

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/lmittmann/tint"
	"github.com/mattn/go-colorable"
	"github.com/mattn/go-isatty"

	"github.com/Strob0t/clientdesk/internal/config"
)

// New creates a *slog.Logger from the given Logging config.
// The default output is JSON to stdout with a "service" attribute on every
// record. Format "text" switches to a colored console handler on stderr.
func New(cfg config.Logging) *slog.Logger {
	var h slog.Handler
	if strings.EqualFold(cfg.Format, "text") {
		h = newConsoleHandler(os.Stderr, parseLevel(cfg.Level))
	} else {
		h = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: parseLevel(cfg.Level)})
	}
	return slog.New(&contextHandler{inner: h}).With("service", cfg.Service)
}

// newConsoleHandler returns a tint handler; colors are disabled when f is not a terminal.
func newConsoleHandler(f *os.File, level slog.Level) slog.Handler {
	var w io.Writer = f
	noColor := !isatty.IsTerminal(f.Fd()) && !isatty.IsCygwinTerminal(f.Fd())
	if !noColor {
		w = colorable.NewColorable(f)
	}
	return tint.NewHandler(w, &tint.Options{
		Level:      level,
		TimeFormat: time.TimeOnly,
		NoColor:    noColor,
	})
}

// parseLevel converts a string log level to slog.Level.
func parseLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// contextHandler adds the request ID stored in the context to every record.
type contextHandler struct {
	inner slog.Handler
}

func (h *contextHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.inner.Enabled(ctx, level)
}

func (h *contextHandler) Handle(ctx context.Context, rec slog.Record) error { //nolint:gocritic // slog.Handler interface requires value receiver
	if id := RequestID(ctx); id != "" {
		rec.AddAttrs(slog.String("request_id", id))
	}
	return h.inner.Handle(ctx, rec)
}

func (h *contextHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &contextHandler{inner: h.inner.WithAttrs(attrs)}
}

func (h *contextHandler) WithGroup(name string) slog.Handler {
	return &contextHandler{inner: h.inner.WithGroup(name)}
}
