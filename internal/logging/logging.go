package logging

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
)

const maxLogSize = 5 * 1024 * 1024 // 5MB

// Setup logs JSON to logPath. With verbose set, records are also written to
// console in charm's human-readable format. The returned closer releases the
// log file.
func Setup(logPath string, verbose bool, console io.Writer) (*slog.Logger, io.Closer, error) {
	if err := os.MkdirAll(filepath.Dir(logPath), 0755); err != nil {
		return nil, nil, err
	}

	if err := RotateIfNeeded(logPath); err != nil {
		return nil, nil, err
	}

	f, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, nil, err
	}

	var handler slog.Handler = slog.NewJSONHandler(f, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	})

	if verbose && console != nil {
		handler = TeeHandler{handler, NewConsoleHandler(console)}
	}

	return slog.New(handler), f, nil
}

// NewConsoleHandler returns a charm log handler writing to w.
func NewConsoleHandler(w io.Writer) slog.Handler {
	return log.NewWithOptions(w, log.Options{
		Level:           log.DebugLevel,
		ReportTimestamp: true,
		Prefix:          "neora",
	})
}

func RotateIfNeeded(logPath string) error {
	info, err := os.Stat(logPath)
	if err != nil {
		return nil // file doesn't exist yet
	}

	if info.Size() <= maxLogSize {
		return nil
	}

	backup := logPath + ".old"
	os.Remove(backup)
	return os.Rename(logPath, backup)
}

// TeeHandler sends every record to all of its handlers.
type TeeHandler []slog.Handler

func (t TeeHandler) Enabled(ctx context.Context, level slog.Level) bool {
	for _, h := range t {
		if h.Enabled(ctx, level) {
			return true
		}
	}
	return false
}

func (t TeeHandler) Handle(ctx context.Context, r slog.Record) error {
	var errs []error
	for _, h := range t {
		if h.Enabled(ctx, r.Level) {
			errs = append(errs, h.Handle(ctx, r.Clone()))
		}
	}
	return errors.Join(errs...)
}

func (t TeeHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	out := make(TeeHandler, len(t))
	for i, h := range t {
		out[i] = h.WithAttrs(attrs)
	}
	return out
}

func (t TeeHandler) WithGroup(name string) slog.Handler {
	out := make(TeeHandler, len(t))
	for i, h := range t {
		out[i] = h.WithGroup(name)
	}
	return out
}

type NopHandler struct{}

func (NopHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (NopHandler) Handle(context.Context, slog.Record) error { return nil }
func (h NopHandler) WithAttrs([]slog.Attr) slog.Handler      { return h }
func (h NopHandler) WithGroup(string) slog.Handler            { return h }
