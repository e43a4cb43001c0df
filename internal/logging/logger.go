// Package logging provides the application logger built on charmbracelet/log.
package logging

import (
	"io"
	"os"
	"sync/atomic"

	"github.com/charmbracelet/log"
)

// Options configures the application logger.
type Options struct {
	Level      string
	Format     string
	Timestamps bool
	Prefix     string
}

// DefaultOptions returns the options used before Configure is called.
func DefaultOptions() Options {
	return Options{
		Level:  "info",
		Format: "text",
		Prefix: "futurtask",
	}
}

var current atomic.Pointer[log.Logger]

func init() {
	current.Store(New(os.Stderr, DefaultOptions()))
}

// New builds a logger writing to w.
func New(w io.Writer, opts Options) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		Level:           ParseLevel(opts.Level),
		Formatter:       ParseFormatter(opts.Format),
		ReportTimestamp: opts.Timestamps,
		Prefix:          opts.Prefix,
	})
}

// Configure replaces the package logger and returns it.
func Configure(w io.Writer, opts Options) *log.Logger {
	logger := New(w, opts)
	current.Store(logger)
	return logger
}

// SetLogger replaces the package logger. Tests use it to capture output.
func SetLogger(logger *log.Logger) {
	if logger != nil {
		current.Store(logger)
	}
}

// Logger returns the package logger.
func Logger() *log.Logger {
	return current.Load()
}

// ParseLevel maps a level name to a charmbracelet/log level. Unknown names map to info.
func ParseLevel(level string) log.Level {
	switch level {
	case "debug":
		return log.DebugLevel
	case "info":
		return log.InfoLevel
	case "warn", "warning":
		return log.WarnLevel
	case "error":
		return log.ErrorLevel
	case "fatal":
		return log.FatalLevel
	default:
		return log.InfoLevel
	}
}

// ParseFormatter maps a format name to a charmbracelet/log formatter.
func ParseFormatter(format string) log.Formatter {
	switch format {
	case "json":
		return log.JSONFormatter
	case "logfmt":
		return log.LogfmtFormatter
	default:
		return log.TextFormatter
	}
}

// Warn logs a warning with key/value pairs.
func Warn(msg string, keyvals ...interface{}) {
	Logger().Warn(msg, keyvals...)
}

// Error logs an error with key/value pairs.
func Error(msg string, keyvals ...interface{}) {
	Logger().Error(msg, keyvals...)
}

// Info logs an informational message with key/value pairs.
func Info(msg string, keyvals ...interface{}) {
	Logger().Info(msg, keyvals...)
}
