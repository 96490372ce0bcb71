// Package logger configures the zerolog global logger used across the trainer.
package logger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Logger owns the writers behind the global zerolog logger.
type Logger struct {
	file *os.File
}

// Config holds logger configuration
type Config struct {
	Level   string    // debug, info, warn, error
	File    string    // diagnostics file path, empty disables it
	Console bool      // mirror output to Stderr
	Pretty  bool      // human readable console lines
	Stderr  io.Writer // console destination, os.Stderr when nil
}

// New creates a logger and installs it as log.Logger.
func New(cfg Config) (*Logger, error) {
	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil || cfg.Level == "" {
		level = zerolog.InfoLevel
	}

	var writers []io.Writer

	if cfg.Console {
		var console io.Writer = cfg.Stderr
		if console == nil {
			console = os.Stderr
		}
		if cfg.Pretty {
			console = zerolog.ConsoleWriter{
				Out:        console,
				TimeFormat: time.TimeOnly,
			}
		}
		writers = append(writers, console)
	}

	var file *os.File
	if cfg.File != "" {
		if err := os.MkdirAll(filepath.Dir(cfg.File), 0o755); err != nil {
			return nil, fmt.Errorf("create log directory: %w", err)
		}
		file, err = os.OpenFile(cfg.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, fmt.Errorf("open log file: %w", err)
		}
		writers = append(writers, file)
	}

	var writer io.Writer
	switch len(writers) {
	case 0:
		writer = io.Discard
	case 1:
		writer = writers[0]
	default:
		writer = io.MultiWriter(writers...)
	}

	log.Logger = zerolog.New(writer).
		Level(level).
		With().
		Timestamp().
		Logger()

	return &Logger{file: file}, nil
}

// Close releases the diagnostics file and detaches the global logger from it.
func (l *Logger) Close() error {
	if l == nil || l.file == nil {
		return nil
	}
	log.Logger = zerolog.Nop()
	err := l.file.Close()
	l.file = nil
	return err
}
