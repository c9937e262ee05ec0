// Package logging sets up the structured file logger. The terminal belongs to the UI,
// so nothing is ever written to stdout or stderr.
package logging

import (
	"io"
	"log/slog"

	"gopkg.in/natefinch/lumberjack.v2"
)

// Options configures the logger
type Options struct {
	Path  string // log file, rotated by size
	Debug bool
}

// New returns a JSON logger writing to a rotating file.
// The closer releases the file and must be called on exit.
func New(opts Options) (*slog.Logger, io.Closer) {
	logFile := &lumberjack.Logger{
		Filename:   opts.Path,
		MaxSize:    5, // megabytes
		MaxBackups: 3,
		MaxAge:     28, // days
	}

	level := slog.LevelInfo
	if opts.Debug {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewJSONHandler(logFile, &slog.HandlerOptions{Level: level}))
	return logger, logFile
}

// Discard returns a logger that drops everything
func Discard() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}
