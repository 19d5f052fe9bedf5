package commands

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/damyar/vetchat/internal/config"
)

// setupLogging opens the log file for appending. The terminal belongs to
// the UI, so logs never go to stdout or stderr. On failure the returned
// logger discards everything and is still safe to use.
func setupLogging(cfg config.Config) (*slog.Logger, func(), error) {
	level := slog.LevelInfo
	if cfg.Verbose {
		level = slog.LevelDebug
	}

	discard := slog.New(slog.NewTextHandler(io.Discard, nil))

	path, err := config.GetLogPath(cfg)
	if err != nil {
		return discard, func() {}, err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return discard, func() {}, fmt.Errorf("failed to create log directory: %w", err)
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return discard, func() {}, fmt.Errorf("failed to open log file: %w", err)
	}

	logger := slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: level}))
	return logger, func() { _ = f.Close() }, nil
}
