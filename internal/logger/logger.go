// Package logger holds the process-wide slog instance. Packages log through
// Log directly; main reconfigures it once the config is loaded.
package logger

import (
	"log/slog"
	"os"
	"strings"
)

var Log *slog.Logger

var levels = map[string]slog.Level{
	"debug":   slog.LevelDebug,
	"info":    slog.LevelInfo,
	"warn":    slog.LevelWarn,
	"warning": slog.LevelWarn,
	"error":   slog.LevelError,
}

func init() {
	// Tests and tools run with these defaults; main calls Setup again
	// with the configured level and format.
	Setup("info", false)
}

// Setup replaces the global logger. Unknown level names fall back to info.
func Setup(level string, useJSON bool) {
	opts := &slog.HandlerOptions{
		Level:     levelFor(level),
		AddSource: true,
	}

	var handler slog.Handler = slog.NewTextHandler(os.Stderr, opts)
	if useJSON {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	}

	Log = slog.New(handler)
	slog.SetDefault(Log)
}

func levelFor(name string) slog.Level {
	if lvl, ok := levels[strings.ToLower(name)]; ok {
		return lvl
	}
	return slog.LevelInfo
}
