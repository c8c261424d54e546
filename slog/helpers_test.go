package slog_test

import (
	"bytes"
	"log/slog"
)

// newDebugLogger returns a text logger writing every level to buf.
func newDebugLogger(buf *bytes.Buffer) *slog.Logger {
	return slog.New(slog.NewTextHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
}
