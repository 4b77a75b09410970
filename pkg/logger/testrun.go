package logger

import (
	"io"
	"log/slog"
	"os"
)

// NewTextHandler is the human-readable handler used for local runs.
func NewTextHandler(level slog.Level) slog.Handler {
	return slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level})
}

func NewTestHandler(level slog.Level) slog.Handler {
	return slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: level})
}
