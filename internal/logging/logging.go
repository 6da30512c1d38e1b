// Package logging builds the structured logger used across greedysnake.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/greedysnake/internal/config"
)

// DefaultFilePath is where the interactive game logs when no path is
// configured, so log lines never land on the game screen.
const DefaultFilePath = "~/.greedysnake/greedysnake.log"

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// New creates a logger from cfg. With cfg.Path set, records are appended to
// that file (parent directories are created); otherwise they go to fallback.
// The returned closer releases the file and is always non-nil.
func New(cfg config.LoggerConfig, prefix string, fallback io.Writer) (*log.Logger, io.Closer, error) {
	level, err := cfg.ParseLevel()
	if err != nil {
		return nil, nil, err
	}

	var (
		w      = fallback
		closer io.Closer = nopCloser{}
	)
	if cfg.Path != "" {
		f, err := openLogFile(cfg.Path)
		if err != nil {
			return nil, nil, err
		}
		w, closer = f, f
	}
	if w == nil {
		w = os.Stderr
	}

	timeFormat := cfg.TimeFormat
	if timeFormat == "" {
		timeFormat = "2006/01/02 15:04:05"
	}

	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      timeFormat,
		Prefix:          prefix,
		Level:           level,
	})
	return logger, closer, nil
}

// Discard returns a logger that drops everything.
func Discard() *log.Logger {
	return log.New(io.Discard)
}

func openLogFile(path string) (*os.File, error) {
	path, err := ExpandHome(path)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("logging: cannot create directory for %s: %w", path, err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("logging: cannot open %s: %w", path, err)
	}
	return f, nil
}

// ExpandHome replaces a leading ~ with the user's home directory.
func ExpandHome(path string) (string, error) {
	if path == "" || path[0] != '~' {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("logging: cannot expand home directory: %w", err)
	}
	return filepath.Join(home, path[1:]), nil
}
