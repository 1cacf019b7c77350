package echochat

import (
	"io"
	"log/slog"
)

// NewLogger creates a text logger writing to w. Debug enables debug-level
// records, including per-frame timing stats.
func NewLogger(w io.Writer, debug bool) *slog.Logger {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: level,
	}))
}

// discardLogger is used when a Page is built without a logger.
func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
