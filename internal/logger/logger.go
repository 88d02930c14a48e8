package logger

import (
	"io"
	"log/slog"
	"strings"

	"github.com/google/uuid"
)

// New builds a logger writing to w. JSON output suits the web server; the TUI
// writes text to a log file. Every record carries a session id.
func New(w io.Writer, level string, json bool) *slog.Logger {
	opts := &slog.HandlerOptions{Level: ParseLevel(level)}

	var handler slog.Handler
	if json {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}

	return slog.New(handler).With("service", "surf-spots", "session", uuid.NewString())
}

// ParseLevel maps a config string onto a slog level, defaulting to info
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
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
