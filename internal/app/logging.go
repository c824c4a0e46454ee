package app

import (
	"io"
	"log/slog"
	"os"
)

// NewLogger returns a text logger writing to w at level.
// A nil w writes to os.Stderr.
func NewLogger(w io.Writer, level slog.Level) *slog.Logger {
	if w == nil {
		w = os.Stderr
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})).
		With("app", "tilesmith")
}
