// Package logger provides centralized slog.Logger construction with
// configurable level, output format (text or JSON) and optional rotating
// file output.
package logger

import (
	"io"
	"log/slog"
	"os"

	"gopkg.in/natefinch/lumberjack.v2"
)

// FileOptions configures rotating file output. An empty Path disables it.
type FileOptions struct {
	Path       string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
	Compress   bool
}

// New creates a *slog.Logger configured with the given level and format.
// Level: "debug", "info", "warn", "error" (default: "info").
// Format: "json" or "text" (default: "text").
// Output goes to stderr.
func New(level, format string) *slog.Logger {
	return NewWithWriter(os.Stderr, level, format)
}

// NewWithFile creates a *slog.Logger writing to stderr and, when fo.Path is
// set, to a size-rotated log file. The returned closer releases the file and
// is a no-op without one.
func NewWithFile(level, format string, fo FileOptions) (*slog.Logger, io.Closer) {
	if fo.Path == "" {
		return New(level, format), nopCloser{}
	}

	rotating := NewRotatingWriter(fo)
	return NewWithWriter(io.MultiWriter(os.Stderr, rotating), level, format), rotating
}

// NewRotatingWriter returns a lumberjack writer for fo. Zero sizes fall back
// to lumberjack's defaults (100 MB, keep all backups, no age limit).
func NewRotatingWriter(fo FileOptions) *lumberjack.Logger {
	return &lumberjack.Logger{
		Filename:   fo.Path,
		MaxSize:    fo.MaxSizeMB,
		MaxBackups: fo.MaxBackups,
		MaxAge:     fo.MaxAgeDays,
		Compress:   fo.Compress,
	}
}

// NewWithWriter creates a *slog.Logger writing to w.
// Useful for testing or redirecting output.
func NewWithWriter(w io.Writer, level, format string) *slog.Logger {
	opts := &slog.HandlerOptions{Level: ParseLevel(level)}

	var handler slog.Handler
	if format == "json" {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}

	return slog.New(handler)
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// ParseLevel converts a level string to slog.Level.
// Recognized values: "debug", "warn", "error". Everything else returns LevelInfo.
func ParseLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
