package logger

import (
	"fmt"
	"io"
	"log/slog"
	"os"
)

// New returns JSON logger writing to stdout with level taken from LOG_LEVEL (default info).
func New() *slog.Logger {
	return NewWithWriter(os.Stdout, os.Getenv("LOG_LEVEL"))
}

// NewWithWriter returns JSON logger writing to w. Unknown or empty level means info.
func NewWithWriter(w io.Writer, level string) *slog.Logger {
	lvl := slog.LevelInfo
	if level != "" {
		var parsed slog.Level
		if err := parsed.UnmarshalText([]byte(level)); err == nil {
			lvl = parsed
		}
	}
	h := slog.NewJSONHandler(w, &slog.HandlerOptions{Level: lvl})
	return slog.New(h)
}

// Open returns logger for the extension: path selects a log file (appended),
// empty path means stderr, so records never mix with console output on stdout.
// LOG_LEVEL overrides level when set. The returned closer must be called on unload.
func Open(path, level string) (*slog.Logger, io.Closer, error) {
	return open(path, level, os.Stderr)
}

func open(path, level string, fallback io.Writer) (*slog.Logger, io.Closer, error) {
	if env := os.Getenv("LOG_LEVEL"); env != "" {
		level = env
	}
	if path == "" {
		return NewWithWriter(fallback, level), nopCloser{}, nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600) // #nosec G304 -- путь из конфига.
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}
	return NewWithWriter(f, level), f, nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
