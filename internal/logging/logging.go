// Package logging sets up structured JSON logging to stderr.
//
// The level comes from the caller (usually the --log-level flag) or, when
// that is empty, from the LOG_LEVEL environment variable. Every record
// carries the module name and version.
package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// EnvLevel names the environment variable consulted when no level is given.
const EnvLevel = "LOG_LEVEL"

// ParseLevel maps a case-insensitive level name to a slog level. Unknown or
// empty names yield info.
func ParseLevel(name string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(name)) {
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

// New returns a JSON logger writing to stderr.
func New(name, version, level string) *slog.Logger {
	return NewWithWriter(os.Stderr, name, version, level)
}

// NewWithWriter returns a JSON logger writing to w. Debug level adds the
// source location.
func NewWithWriter(w io.Writer, name, version, level string) *slog.Logger {
	if level == "" {
		level = os.Getenv(EnvLevel)
	}
	lvl := ParseLevel(level)
	handler := slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level:     lvl,
		AddSource: lvl <= slog.LevelDebug,
	})
	return slog.New(handler).With("module", name, "version", version)
}

// SetDefault installs New(name, version, level) as the slog default.
func SetDefault(name, version, level string) *slog.Logger {
	logger := New(name, version, level)
	slog.SetDefault(logger)
	return logger
}
