package slogutil

import (
	"io"
	"log/slog"

	"kindsort/internal/config"
	"kindsort/internal/paths"
)

// LoggerFactory creates loggers for commands.
// Level precedence: CLI flags > config > default (info).
type LoggerFactory struct {
	repoRoot string
	config   *config.Config
	cliLevel *slog.Level
	closers  []io.Closer
}

// NewLoggerFactory creates a new logger factory. A nil cliLevel means no CLI override.
func NewLoggerFactory(repoRoot string, cfg *config.Config, cliLevel *slog.Level) *LoggerFactory {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	return &LoggerFactory{
		repoRoot: repoRoot,
		config:   cfg,
		cliLevel: cliLevel,
	}
}

// Level returns the effective log level.
func (f *LoggerFactory) Level() slog.Level {
	if f.cliLevel != nil {
		return *f.cliLevel
	}
	if f.config.Logging.Level != "" {
		return LevelFromString(f.config.Logging.Level)
	}
	return slog.LevelInfo
}

// CommandLogger creates a logger writing to w in the configured format.
func (f *LoggerFactory) CommandLogger(w io.Writer) *slog.Logger {
	return NewFormatLogger(w, f.config.Logging.Format, f.Level())
}

// WatchLogger creates a logger that writes to w and to <repoRoot>/.kindsort/logs/watch.log.
// It falls back to the command logger when the log file cannot be opened.
func (f *LoggerFactory) WatchLogger(w io.Writer) *slog.Logger {
	console := f.CommandLogger(w)
	if f.repoRoot == "" {
		return console
	}
	if _, err := paths.EnsureLogsDir(f.repoRoot); err != nil {
		return console
	}
	fileLogger, file, err := NewFileLogger(paths.WatchLogPath(f.repoRoot), slog.LevelDebug)
	if err != nil {
		return console
	}
	f.closers = append(f.closers, file)
	return slog.New(NewTeeHandler(console.Handler(), fileLogger.Handler()))
}

// Close closes all open log files.
func (f *LoggerFactory) Close() error {
	var firstErr error
	for _, c := range f.closers {
		if err := c.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	f.closers = nil
	return firstErr
}
