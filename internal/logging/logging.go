package logging

import (
	"log/slog"
	"os"
	"strings"
)

// Setup creates and sets the package-level default slog logger. The CLI
// writes NDJSON results on stdout, so logs always go to stderr; machineOut
// switches the handler to JSON so the two streams stay parseable together.
func Setup(machineOut bool, level slog.Level) {
	opts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler
	if machineOut {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	} else {
		handler = slog.NewTextHandler(os.Stderr, opts)
	}
	slog.SetDefault(slog.New(handler))
}

// ParseLevel converts a level name to slog.Level. Unknown names default to
// LevelInfo.
func ParseLevel(s string) slog.Level {
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
