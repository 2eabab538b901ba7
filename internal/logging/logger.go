// Package logging builds the slog loggers used across duetoday. The TUI owns
// the terminal, so log output goes to a file or nowhere.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

type Options struct {
	// File is appended to as JSON lines when set.
	File string
	// Level is one of debug, info, warn, error. Defaults to info.
	Level string
	// Stderr mirrors text output to w when no file is set.
	Stderr io.Writer
}

// New returns a logger and a close func for the underlying file.
func New(opts Options) (*slog.Logger, func() error, error) {
	handlerOpts := &slog.HandlerOptions{Level: ParseLevel(opts.Level)}
	if path := strings.TrimSpace(opts.File); path != "" {
		if dir := filepath.Dir(path); dir != "." && dir != "" {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return Discard(), noopClose, fmt.Errorf("logging: ensure log dir: %w", err)
			}
		}
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return Discard(), noopClose, fmt.Errorf("logging: open log file: %w", err)
		}
		return slog.New(slog.NewJSONHandler(f, handlerOpts)), f.Close, nil
	}
	if opts.Stderr != nil {
		return slog.New(slog.NewTextHandler(opts.Stderr, handlerOpts)), noopClose, nil
	}
	return Discard(), noopClose, nil
}

// Discard returns a logger that drops everything.
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// OrDiscard returns l, or a discarding logger when l is nil.
func OrDiscard(l *slog.Logger) *slog.Logger {
	if l == nil {
		return Discard()
	}
	return l
}

func ParseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
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

func noopClose() error { return nil }
