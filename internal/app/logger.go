package app

import (
	"io"
	"log/slog"
)

// newLogger builds the app-owned logger from the log-level and log-format
// flags. The logger writes to the app's output stream and is never
// installed as the process default, so concurrent App instances (and
// parallel tests) each observe only their own records.
func newLogger(levelStr, formatStr string, outW io.Writer) *slog.Logger {
	var level slog.Level
	if err := level.UnmarshalText([]byte(levelStr)); err != nil {
		// The CLI validates the flag; a bad value reaching this point came
		// from a host embedding App directly, so fall back rather than fail.
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}
	if formatStr == "json" {
		return slog.New(slog.NewJSONHandler(outW, opts))
	}
	return slog.New(slog.NewTextHandler(outW, opts))
}
