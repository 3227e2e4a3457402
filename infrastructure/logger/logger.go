package logger

import (
	"io"
	"log/slog"
	"os"

	"github.com/lmittmann/tint"
)

func New(verbose bool) *slog.Logger {
	return NewWithWriter(os.Stdout, verbose)
}

// NewWithWriter returns a colored text logger writing UTC timestamps with
// millisecond precision. Empty string attributes are dropped.
func NewWithWriter(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(tint.NewHandler(w, &tint.Options{
		Level:      level,
		TimeFormat: "2006-01-02T15:04:05.000Z",
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if a.Key == slog.TimeKey && len(groups) == 0 {
				a.Value = slog.TimeValue(a.Value.Time().UTC())
			}
			if s, ok := a.Value.Any().(string); ok && s == "" {
				return slog.Attr{}
			}
			return a
		},
	}))
}

// Discard is a logger for tests and commands that print their own output.
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
