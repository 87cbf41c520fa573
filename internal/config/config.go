// Package config loads editor settings from defaults, an optional TOML or
// YAML file and HIDDERS_* environment variables, in that order of
// increasing precedence. Command-line flags are applied last by the caller.
package config

import (
	"errors"
	"fmt"
	"strconv"
	"unicode/utf8"

	"github.com/HIDDERS-OFFICIAL/hidders-dev/internal/engine"
	"github.com/HIDDERS-OFFICIAL/hidders-dev/internal/logging"
)

// Default values.
const (
	DefaultLogLevel       = "info"
	DefaultWorkers        = 4
	DefaultMaxMessageSize = 1 << 20
)

// Config holds every setting the editor core reads.
type Config struct {
	Document DocumentConfig `toml:"document" yaml:"document"`
	Log      LogConfig      `toml:"log" yaml:"log"`
	Host     HostConfig     `toml:"host" yaml:"host"`
}

// DocumentConfig configures the shared document.
type DocumentConfig struct {
	// Seed is the text the document holds before the first edit.
	Seed string `toml:"seed" yaml:"seed"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level     string `toml:"level" yaml:"level"`
	Timestamp bool   `toml:"timestamp" yaml:"timestamp"`
}

// HostConfig configures the command bridge.
type HostConfig struct {
	// Workers bounds how many requests are handled at once.
	Workers int `toml:"workers" yaml:"workers"`
	// MaxMessageSize bounds the body of a single framed request, in bytes.
	MaxMessageSize int `toml:"max_message_size" yaml:"max_message_size"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Document: DocumentConfig{Seed: engine.DefaultSeed},
		Log:      LogConfig{Level: DefaultLogLevel},
		Host: HostConfig{
			Workers:        DefaultWorkers,
			MaxMessageSize: DefaultMaxMessageSize,
		},
	}
}

// Validate checks every setting and reports all problems at once.
func (c Config) Validate() error {
	var errs []error

	if !logging.ValidLevel(c.Log.Level) {
		errs = append(errs, &ValidationError{
			Path:    "log.level",
			Value:   c.Log.Level,
			Message: "must be one of debug, info, warn, error",
		})
	}
	if !utf8.ValidString(c.Document.Seed) {
		errs = append(errs, &ValidationError{
			Path:    "document.seed",
			Value:   strconv.QuoteToASCII(c.Document.Seed),
			Message: "must be valid UTF-8",
		})
	}
	if c.Host.Workers <= 0 {
		errs = append(errs, &ValidationError{
			Path:    "host.workers",
			Value:   c.Host.Workers,
			Message: "must be positive",
		})
	}
	if c.Host.MaxMessageSize <= 0 {
		errs = append(errs, &ValidationError{
			Path:    "host.max_message_size",
			Value:   c.Host.MaxMessageSize,
			Message: "must be positive",
		})
	}

	if len(errs) > 0 {
		return fmt.Errorf("config: %w", errors.Join(errs...))
	}
	return nil
}
