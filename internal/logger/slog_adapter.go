package logger

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"gopkg.in/natefinch/lumberjack.v2"
)

// SlogLogger implements Logger on top of log/slog
type SlogLogger struct {
	logger    *slog.Logger
	sanitizer *Sanitizer // nil when path redaction is off
	writers   []io.WriteCloser
}

// NewSlogLogger creates a logger writing to the configured outputs
func NewSlogLogger(config Config) (*SlogLogger, error) {
	var sanitizer *Sanitizer
	if config.RedactPaths {
		sanitizer = NewSanitizer()
	}

	var writers []io.Writer
	var closeableWriters []io.WriteCloser

	for _, output := range config.Outputs {
		switch output.Type {
		case OutputStdout:
			if output.Writer != nil {
				writers = append(writers, output.Writer)
			} else {
				writers = append(writers, os.Stdout)
			}
		case OutputStderr:
			if output.Writer != nil {
				writers = append(writers, output.Writer)
			} else {
				writers = append(writers, os.Stderr)
			}
		case OutputFile:
			if config.File.Enabled {
				fileWriter, err := createFileWriter(config.File)
				if err != nil {
					return nil, fmt.Errorf("failed to create file writer: %w", err)
				}
				writers = append(writers, fileWriter)
				closeableWriters = append(closeableWriters, fileWriter)
			}
		}
	}

	if len(writers) == 0 {
		writers = append(writers, os.Stderr)
	}

	multiWriter := io.MultiWriter(writers...)

	opts := &slog.HandlerOptions{
		Level: convertLevel(config.Level),
	}

	var handler slog.Handler
	switch config.Format {
	case FormatJSON:
		handler = slog.NewJSONHandler(multiWriter, opts)
	default:
		handler = slog.NewTextHandler(multiWriter, opts)
	}

	return &SlogLogger{
		logger:    slog.New(handler),
		sanitizer: sanitizer,
		writers:   closeableWriters,
	}, nil
}

// createFileWriter builds a rotating file writer via lumberjack
func createFileWriter(config FileConfig) (io.WriteCloser, error) {
	if config.Path == "" {
		return nil, fmt.Errorf("log file path cannot be empty")
	}

	dir := filepath.Dir(config.Path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	return &lumberjack.Logger{
		Filename:   config.Path,
		MaxSize:    config.MaxSizeMB,
		MaxAge:     config.MaxAgeDays,
		MaxBackups: config.MaxBackups,
		Compress:   config.Compress,
	}, nil
}

func convertLevel(level Level) slog.Level {
	switch level {
	case LevelDebug:
		return slog.LevelDebug
	case LevelWarn:
		return slog.LevelWarn
	case LevelError:
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func sanitizeMsg(s *Sanitizer, msg string) string {
	if s == nil {
		return msg
	}
	return s.Sanitize(msg)
}

func sanitizeArgs(s *Sanitizer, args []any) []any {
	if s == nil {
		return args
	}
	return s.SanitizeArgs(args)
}

func (l *SlogLogger) Debug(msg string, args ...any) {
	l.logger.Debug(sanitizeMsg(l.sanitizer, msg), sanitizeArgs(l.sanitizer, args)...)
}

func (l *SlogLogger) Info(msg string, args ...any) {
	l.logger.Info(sanitizeMsg(l.sanitizer, msg), sanitizeArgs(l.sanitizer, args)...)
}

func (l *SlogLogger) Warn(msg string, args ...any) {
	l.logger.Warn(sanitizeMsg(l.sanitizer, msg), sanitizeArgs(l.sanitizer, args)...)
}

func (l *SlogLogger) Error(msg string, args ...any) {
	l.logger.Error(sanitizeMsg(l.sanitizer, msg), sanitizeArgs(l.sanitizer, args)...)
}

// With creates a child logger. Children do not own the writers, so closing
// a child never closes the shared outputs.
func (l *SlogLogger) With(args ...any) Logger {
	return &childLogger{
		logger:    l.logger.With(sanitizeArgs(l.sanitizer, args)...),
		sanitizer: l.sanitizer,
	}
}

// Sync is a no-op; slog has no buffering of its own and lumberjack flushes
// on write
func (l *SlogLogger) Sync() error {
	return nil
}

// Shutdown closes all owned writers
func (l *SlogLogger) Shutdown() error {
	var lastErr error
	for _, w := range l.writers {
		if err := w.Close(); err != nil {
			lastErr = err
		}
	}
	return lastErr
}

type childLogger struct {
	logger    *slog.Logger
	sanitizer *Sanitizer
}

func (c *childLogger) Debug(msg string, args ...any) {
	c.logger.Debug(sanitizeMsg(c.sanitizer, msg), sanitizeArgs(c.sanitizer, args)...)
}

func (c *childLogger) Info(msg string, args ...any) {
	c.logger.Info(sanitizeMsg(c.sanitizer, msg), sanitizeArgs(c.sanitizer, args)...)
}

func (c *childLogger) Warn(msg string, args ...any) {
	c.logger.Warn(sanitizeMsg(c.sanitizer, msg), sanitizeArgs(c.sanitizer, args)...)
}

func (c *childLogger) Error(msg string, args ...any) {
	c.logger.Error(sanitizeMsg(c.sanitizer, msg), sanitizeArgs(c.sanitizer, args)...)
}

func (c *childLogger) With(args ...any) Logger {
	return &childLogger{
		logger:    c.logger.With(sanitizeArgs(c.sanitizer, args)...),
		sanitizer: c.sanitizer,
	}
}

func (c *childLogger) Sync() error {
	return nil
}

func (c *childLogger) Shutdown() error {
	return nil
}
