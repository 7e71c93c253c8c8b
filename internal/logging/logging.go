// Package logging configures the structured logger shared by every command.
package logging

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
)

// DefaultFile is where logs go when no --log-file is given.
const DefaultFile = "logs/docnote.log"

// New returns a JSONL logger writing to w.
func New(w io.Writer, level slog.Level) *slog.Logger {
	return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level}))
}

// Setup configures slog to write JSONL to both stderr and a log file.
// An empty logFile logs to stderr only. Returns a logger and a cleanup
// function to close the file handle.
func Setup(logFile string, level slog.Level) (*slog.Logger, func(), error) {
	if logFile == "" {
		return New(os.Stderr, level), func() {}, nil
	}

	if err := os.MkdirAll(filepath.Dir(logFile), 0o755); err != nil {
		return nil, nil, err
	}

	f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, err
	}

	logger := New(io.MultiWriter(os.Stderr, f), level)

	cleanup := func() {
		_ = f.Close()
	}

	return logger, cleanup, nil
}
