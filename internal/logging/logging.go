// Package logging builds the structured logger used by the installer.
package logging

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/vibe-x-ai/discuss-skills/internal/config"
)

// NewFromConfig creates a new slog.Logger based on configuration.
// When a log file is configured it is opened in append mode under baseDir
// and written alongside stderr; the returned Closer releases it.
func NewFromConfig(cfg *config.Config, baseDir string) (*slog.Logger, io.Closer, error) {
	return newLogger(cfg, baseDir, os.Stderr, parseLevel(cfg.Logging.Level))
}

// NewVerbose is NewFromConfig with the level forced to debug.
func NewVerbose(cfg *config.Config, baseDir string) (*slog.Logger, io.Closer, error) {
	return newLogger(cfg, baseDir, os.Stderr, slog.LevelDebug)
}

func newLogger(cfg *config.Config, baseDir string, w io.Writer, level slog.Level) (*slog.Logger, io.Closer, error) {
	handler := newHandler(cfg.Logging.Format, w, level)

	var closer io.Closer
	if cfg.Logging.File != "" {
		logPath := cfg.LogFile(baseDir)

		if err := os.MkdirAll(filepath.Dir(logPath), 0755); err != nil {
			return nil, nil, err
		}

		file, err := os.OpenFile(logPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
		if err != nil {
			return nil, nil, err
		}
		closer = file

		handler = newHandler(cfg.Logging.Format, io.MultiWriter(w, file), level)
	}

	return slog.New(handler), closer, nil
}

// NewDefault creates a default logger writing warnings to stderr.
func NewDefault() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelWarn,
	}))
}

// NewForTest creates a silent logger for tests.
func NewForTest() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{
		Level: slog.LevelError,
	}))
}

// OrDiscard returns logger, or a silent logger when it is nil.
func OrDiscard(logger *slog.Logger) *slog.Logger {
	if logger != nil {
		return logger
	}
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// parseLevel converts config log level to slog.Level.
func parseLevel(level config.LogLevel) slog.Level {
	switch level {
	case config.LogLevelDebug:
		return slog.LevelDebug
	case config.LogLevelInfo:
		return slog.LevelInfo
	case config.LogLevelWarn:
		return slog.LevelWarn
	case config.LogLevelError:
		return slog.LevelError
	default:
		return slog.LevelWarn
	}
}

// newHandler creates a slog.Handler based on format.
func newHandler(format config.LogFormat, w io.Writer, level slog.Level) slog.Handler {
	opts := &slog.HandlerOptions{
		Level: level,
	}

	switch format {
	case config.LogFormatJSON:
		return slog.NewJSONHandler(w, opts)
	default:
		return slog.NewTextHandler(w, opts)
	}
}

// WithPlatform returns a logger with platform context.
func WithPlatform(logger *slog.Logger, platformID string) *slog.Logger {
	return logger.With("platform", platformID)
}
