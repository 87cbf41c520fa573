// Package logging provides a structured logging wrapper around charmbracelet/log.
package logging

import (
	"io"
	"os"
	"strings"
	"sync"

	"github.com/charmbracelet/log"
)

var (
	defaultMu     sync.Mutex
	defaultLogger *log.Logger
)

// Options configures a logger created with NewWithOptions.
type Options struct {
	// Level is one of "debug", "info", "warn", "error". Unknown levels
	// fall back to info.
	Level string
	// Output defaults to os.Stderr. The serve command writes frames to
	// stdout, so logs must never go there.
	Output io.Writer
	// Timestamp adds a timestamp to every record.
	Timestamp bool
	// Prefix is prepended to every message.
	Prefix string
}

// New creates a new logger writing to stderr with the specified level.
// Valid levels: "debug", "info", "warn", "error".
func New(level string) *log.Logger {
	return NewWithOptions(Options{Level: level})
}

// NewWithOptions creates a new logger from opts.
func NewWithOptions(opts Options) *log.Logger {
	out := opts.Output
	if out == nil {
		out = os.Stderr
	}

	logger := log.NewWithOptions(out, log.Options{
		ReportTimestamp: opts.Timestamp,
		ReportCaller:    false,
		Prefix:          opts.Prefix,
	})
	logger.SetLevel(ParseLevel(opts.Level))

	return logger
}

// Discard returns a logger that drops every record.
func Discard() *log.Logger {
	return NewWithOptions(Options{Output: io.Discard, Level: "error"})
}

// ParseLevel maps a level name to a log.Level, case-insensitively.
func ParseLevel(level string) log.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return log.DebugLevel
	case "info":
		return log.InfoLevel
	case "warn", "warning":
		return log.WarnLevel
	case "error":
		return log.ErrorLevel
	default:
		return log.InfoLevel
	}
}

// ValidLevel reports whether level names a known log level.
func ValidLevel(level string) bool {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug", "info", "warn", "warning", "error":
		return true
	}
	return false
}

// Default returns the package-level default logger.
func Default() *log.Logger {
	defaultMu.Lock()
	defer defaultMu.Unlock()

	if defaultLogger == nil {
		defaultLogger = New("info")
	}
	return defaultLogger
}

// SetDefault sets the package-level default logger.
func SetDefault(logger *log.Logger) {
	defaultMu.Lock()
	defer defaultMu.Unlock()
	defaultLogger = logger
}

// SetLevel updates the log level of the default logger.
func SetLevel(level string) {
	Default().SetLevel(ParseLevel(level))
}
