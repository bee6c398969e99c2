// Package logger configures fortio.org/log for the viewer: level and an
// optional append-only log file next to stderr.
package logger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"fortio.org/log"

	"floorspin/internal/config"
)

// Setup applies cfg to the global logger. The returned closer flushes and
// closes the log file, if any; it is safe to call when no file was opened.
func Setup(cfg config.Log) (io.Closer, error) {
	if cfg.Level != "" {
		lvl, err := log.ValidateLevel(cfg.Level)
		if err != nil {
			return nopCloser{}, fmt.Errorf("log level %q: %w", cfg.Level, err)
		}
		log.SetLogLevel(lvl)
	}
	if cfg.File == "" {
		return nopCloser{}, nil
	}
	f, err := openAppend(cfg.File)
	if err != nil {
		return nopCloser{}, err
	}
	log.SetOutput(io.MultiWriter(os.Stderr, f))
	log.Infof("logging to %s", cfg.File)
	return &fileCloser{f: f}, nil
}

func openAppend(path string) (*os.File, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create log dir: %w", err)
		}
	}
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	return f, nil
}

type fileCloser struct {
	f *os.File
}

// Close points the logger back at stderr before closing the file.
func (c *fileCloser) Close() error {
	log.SetOutput(os.Stderr)
	return c.f.Close()
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
