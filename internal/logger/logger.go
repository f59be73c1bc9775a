// File: internal/logger/logger.go
package logger

import (
	"io"
	"log/slog"
)

// Builds the process logger; debug lowers the level so per-push command output is visible
func NewLogger(w io.Writer, debug bool) *slog.Logger {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}

	handler := slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: level,
	})

	logger := slog.New(handler)

	slog.SetDefault(logger)
	return logger
}
