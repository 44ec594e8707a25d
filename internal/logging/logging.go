// Package logging provides the process-wide structured logger.
//
// Logs always go to stderr: in preprocessor mode stdout carries the book JSON
// back to mdbook and must not be interleaved with anything else.
package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"
	"time"
)

// LevelEnv names the environment variable that selects the log level.
const LevelEnv = "AUTOSUMMARY_LOG"

var defaultLogger *slog.Logger

func init() {
	Init(os.Stderr, ParseLevel(os.Getenv(LevelEnv)))
}

// ParseLevel maps debug|info|warn|error to a slog level. Unknown values
// fall back to info.
func ParseLevel(raw string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "debug", "trace":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Init replaces the global logger with a text handler writing to w.
func Init(w io.Writer, level slog.Level) {
	opts := &slog.HandlerOptions{
		Level: level,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if a.Key == slog.TimeKey {
				return slog.String(slog.TimeKey, a.Value.Time().Format(time.RFC3339))
			}
			return a
		},
	}
	defaultLogger = slog.New(slog.NewTextHandler(w, opts))
}

// Logger returns the global logger.
func Logger() *slog.Logger {
	return defaultLogger
}

// With returns a child of the global logger carrying the given attributes.
func With(args ...any) *slog.Logger {
	return defaultLogger.With(args...)
}

func Debug(msg string, args ...any) { defaultLogger.Debug(msg, args...) }
func Info(msg string, args ...any)  { defaultLogger.Info(msg, args...) }
func Warn(msg string, args ...any)  { defaultLogger.Warn(msg, args...) }
func Error(msg string, args ...any) { defaultLogger.Error(msg, args...) }
