// Package logger provides a simple logging interface for tusk components.
// It allows packages to log debug, info, warn, and error messages without
// being coupled to a specific logging implementation.
//
// The production implementation is backed by logrus. While the terminal UI
// owns the screen, logs go to a file (or nowhere) and to a Ring that the
// debug tab renders.
package logger

import (
	"fmt"
	"io"
	"os"

	log "github.com/sirupsen/logrus"

	"github.com/rileyhilliard/tusk/internal/errors"
)

// Logger defines the interface for logging operations.
// All methods accept a format string and arguments, similar to fmt.Printf.
type Logger interface {
	Debug(format string, args ...interface{})
	Info(format string, args ...interface{})
	Warn(format string, args ...interface{})
	Error(format string, args ...interface{})
}

// logrusLogger implements Logger on top of a logrus entry tagged with a component.
type logrusLogger struct {
	entry *log.Entry
}

// New creates a logger writing through base. The prefix is attached as the
// "component" field (e.g., "collector" or "source"). A nil base uses the
// logrus standard logger.
func New(prefix string, base *log.Logger) Logger {
	if base == nil {
		base = log.StandardLogger()
	}
	entry := log.NewEntry(base)
	if prefix != "" {
		entry = entry.WithField("component", prefix)
	}
	return &logrusLogger{entry: entry}
}

func (l *logrusLogger) Debug(format string, args ...interface{}) { l.entry.Debugf(format, args...) }
func (l *logrusLogger) Info(format string, args ...interface{})  { l.entry.Infof(format, args...) }
func (l *logrusLogger) Warn(format string, args ...interface{})  { l.entry.Warnf(format, args...) }
func (l *logrusLogger) Error(format string, args ...interface{}) { l.entry.Errorf(format, args...) }

// Options configures the logrus backend built by Setup.
type Options struct {
	Level string // logrus level name; empty means "info"
	File  string // append logs to this file; empty discards file output
	Ring  *Ring  // optional in-memory sink
}

// Setup builds a logrus logger from opts. The returned closer releases the
// log file, if any, and is always non-nil.
func Setup(opts Options) (*log.Logger, io.Closer, error) {
	base := log.New()
	base.SetFormatter(&log.TextFormatter{DisableColors: true, FullTimestamp: true})

	level := log.InfoLevel
	if opts.Level != "" {
		parsed, err := log.ParseLevel(opts.Level)
		if err != nil {
			return nil, nil, errors.WrapWithCode(err, errors.ErrConfig,
				fmt.Sprintf("Unknown log level %q", opts.Level),
				"Use one of: trace, debug, info, warn, error")
		}
		level = parsed
	}
	base.SetLevel(level)

	var closer io.Closer = nopCloser{}
	base.SetOutput(io.Discard)
	if opts.File != "" {
		f, err := os.OpenFile(opts.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, errors.WrapWithCode(err, errors.ErrConfig,
				fmt.Sprintf("Can't open log file %s", opts.File),
				"Check the log.file path and its permissions")
		}
		base.SetOutput(f)
		closer = f
	}

	if opts.Ring != nil {
		base.AddHook(opts.Ring)
	}
	return base, closer, nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// noopLogger implements Logger but discards all messages.
// Useful for testing or when logging is not desired.
type noopLogger struct{}

// Noop returns a logger that discards all messages.
func Noop() Logger {
	return &noopLogger{}
}

func (l *noopLogger) Debug(format string, args ...interface{}) {}
func (l *noopLogger) Info(format string, args ...interface{})  {}
func (l *noopLogger) Warn(format string, args ...interface{})  {}
func (l *noopLogger) Error(format string, args ...interface{}) {}

// LogMessage represents a captured log message.
type LogMessage struct {
	Level   string
	Message string
}

// BufferLogger captures log messages for testing.
// Exported for use in test assertions.
type BufferLogger struct {
	Messages []LogMessage
}

// NewBufferLogger creates a logger that captures messages for inspection.
func NewBufferLogger() *BufferLogger {
	return &BufferLogger{
		Messages: make([]LogMessage, 0),
	}
}

func (l *BufferLogger) Debug(format string, args ...interface{}) { l.add("debug", format, args) }
func (l *BufferLogger) Info(format string, args ...interface{})  { l.add("info", format, args) }
func (l *BufferLogger) Warn(format string, args ...interface{})  { l.add("warn", format, args) }
func (l *BufferLogger) Error(format string, args ...interface{}) { l.add("error", format, args) }

func (l *BufferLogger) add(level, format string, args []interface{}) {
	l.Messages = append(l.Messages, LogMessage{Level: level, Message: fmt.Sprintf(format, args...)})
}

// HasLevel returns true if any message was logged at the given level.
func (l *BufferLogger) HasLevel(level string) bool {
	for _, m := range l.Messages {
		if m.Level == level {
			return true
		}
	}
	return false
}

// Clear removes all captured messages.
func (l *BufferLogger) Clear() {
	l.Messages = l.Messages[:0]
}
