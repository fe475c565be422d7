// Package logging builds the process wide zerolog logger.
package logging

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// New returns a logger writing to stdout. Debug mode logs human readable lines at debug
// level; otherwise JSON at the given level (info if unrecognised).
func New(level string, debug bool) zerolog.Logger {
	return newLogger(os.Stdout, level, debug)
}

func newLogger(out io.Writer, level string, debug bool) zerolog.Logger {
	lvl := ParseLevel(level)
	if debug {
		lvl = zerolog.DebugLevel
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339}
	}
	return zerolog.New(out).
		Level(lvl).
		With().
		Timestamp().
		Str("service", "easel").
		Logger()
}

// ParseLevel reads a level name, defaulting to info.
func ParseLevel(level string) zerolog.Level {
	lvl, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil || level == "" {
		return zerolog.InfoLevel
	}
	return lvl
}
