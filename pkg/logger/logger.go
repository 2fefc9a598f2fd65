// Package logger provides structured diagnostics for onchange.
//
// Diagnostics are kept apart from the watched command's output: by default
// only warnings and errors reach standard error, and the destination can be
// redirected to a file so that the terminal shows nothing but command runs.
//
// Example usage:
//
//	log := logger.New(logger.Config{
//	    Level:  "debug",
//	    Output: "/tmp/onchange.log",
//	    Format: "json",
//	})
//	defer log.Close()
//	log.Debug("batch received", "events", 3)
package logger

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
)

// Logger provides leveled, structured logging.
type Logger interface {
	// Debug logs a debug message with optional key-value pairs.
	Debug(msg string, keysAndValues ...interface{})

	// Info logs an informational message with optional key-value pairs.
	Info(msg string, keysAndValues ...interface{})

	// Warn logs a warning message with optional key-value pairs.
	Warn(msg string, keysAndValues ...interface{})

	// Error logs an error message with optional key-value pairs.
	Error(msg string, keysAndValues ...interface{})

	// With returns a logger that adds the given fields to every record.
	// The returned logger shares the parent's destination.
	With(keysAndValues ...interface{}) Logger

	// Close releases the destination if it is a file opened by New.
	// Closing any logger derived through With closes the shared file.
	Close() error
}

// Config contains logger configuration.
type Config struct {
	// Level is the minimum log level (debug, info, warn, error).
	Level string

	// Output is the destination (stderr, stdout, discard, or a file path).
	Output string

	// Format is the record format (text, json).
	Format string
}

// logger implements Logger on top of slog.
type logger struct {
	slogger *slog.Logger
	closer  io.Closer
}

// New creates a logger from cfg.
//
// Unknown levels fall back to warn and unknown formats to text. If the
// output file cannot be opened, records go to stderr and a warning
// describing the failure is logged first.
func New(cfg Config) Logger {
	writer, closer, err := openOutput(cfg.Output)
	if err != nil {
		writer, closer = os.Stderr, nil
	}

	l := newLogger(writer, cfg)
	l.closer = closer

	if err != nil {
		l.Warn("falling back to stderr for logs", "error", err)
	}

	return l
}

// NewWriter creates a logger writing to w. The caller owns w.
func NewWriter(w io.Writer, cfg Config) Logger {
	return newLogger(w, cfg)
}

func newLogger(w io.Writer, cfg Config) *logger {
	opts := &slog.HandlerOptions{
		Level: ParseLevel(cfg.Level),
	}

	var handler slog.Handler
	switch strings.ToLower(cfg.Format) {
	case "json":
		handler = slog.NewJSONHandler(w, opts)
	default:
		handler = slog.NewTextHandler(w, opts)
	}

	return &logger{
		slogger: slog.New(handler).With("app", "onchange"),
	}
}

// Debug implements Logger.Debug.
func (l *logger) Debug(msg string, keysAndValues ...interface{}) {
	l.slogger.Debug(msg, keysAndValues...)
}

// Info implements Logger.Info.
func (l *logger) Info(msg string, keysAndValues ...interface{}) {
	l.slogger.Info(msg, keysAndValues...)
}

// Warn implements Logger.Warn.
func (l *logger) Warn(msg string, keysAndValues ...interface{}) {
	l.slogger.Warn(msg, keysAndValues...)
}

// Error implements Logger.Error.
func (l *logger) Error(msg string, keysAndValues ...interface{}) {
	l.slogger.Error(msg, keysAndValues...)
}

// With implements Logger.With.
func (l *logger) With(keysAndValues ...interface{}) Logger {
	return &logger{
		slogger: l.slogger.With(keysAndValues...),
		closer:  l.closer,
	}
}

// Close implements Logger.Close.
func (l *logger) Close() error {
	if l.closer == nil {
		return nil
	}
	err := l.closer.Close()
	l.closer = nil
	return err
}

// ParseLevel converts a level name to slog.Level.
//
// Supported levels: debug, info, warn (warning), error.
// Anything else maps to warn.
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelWarn
	}
}

// openOutput resolves an output destination.
//
// Supported destinations:
//   - "stderr" or "": standard error
//   - "stdout": standard output
//   - "discard": no output
//   - file path: opened for appending, created with 0600 if missing
//
// The returned closer is nil unless a file was opened.
func openOutput(output string) (io.Writer, io.Closer, error) {
	switch strings.ToLower(output) {
	case "stderr", "":
		return os.Stderr, nil, nil
	case "stdout":
		return os.Stdout, nil, nil
	case "discard":
		return io.Discard, nil, nil
	default:
		// #nosec G304: output path comes from trusted config
		f, err := os.OpenFile(output, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0600) // nolint:gosec
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open log file %s: %w", output, err)
		}
		return f, f, nil
	}
}

// Default returns a logger writing warnings and errors to stderr as text.
func Default() Logger {
	return New(Config{
		Level:  "warn",
		Output: "stderr",
		Format: "text",
	})
}

// Noop returns a logger that discards all records.
//
// Useful for testing.
func Noop() Logger {
	return NewWriter(io.Discard, Config{})
}
