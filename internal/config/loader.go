package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// FileSystem is an abstraction for file system operations.
// This allows for easy testing with in-memory file systems.
type FileSystem interface {
	// ReadFile reads the entire file at path.
	ReadFile(path string) ([]byte, error)
}

// OSFS implements FileSystem using the real OS file system.
type OSFS struct{}

// ReadFile reads the entire file at path.
func (OSFS) ReadFile(path string) ([]byte, error) {
	return os.ReadFile(path)
}

// Loader builds a Config from defaults, a file and the environment.
type Loader struct {
	fs     FileSystem
	lookup func(string) (string, bool)
}

// LoaderOption configures a Loader.
type LoaderOption func(*Loader)

// WithFileSystem sets the file system config files are read from.
func WithFileSystem(fsys FileSystem) LoaderOption {
	return func(l *Loader) {
		l.fs = fsys
	}
}

// WithLookupEnv sets the environment lookup function.
func WithLookupEnv(lookup func(string) (string, bool)) LoaderOption {
	return func(l *Loader) {
		l.lookup = lookup
	}
}

// NewLoader creates a Loader reading from the OS.
func NewLoader(opts ...LoaderOption) *Loader {
	l := &Loader{
		fs:     OSFS{},
		lookup: os.LookupEnv,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Load is shorthand for NewLoader().Load(path).
func Load(path string) (Config, error) {
	return NewLoader().Load(path)
}

// Load returns the defaults overlaid with the file at path (if path is
// non-empty and the file exists) and then with the environment. The result
// is validated.
func (l *Loader) Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		if err := l.loadFile(path, &cfg); err != nil {
			return Config{}, err
		}
	}

	if err := applyEnv(&cfg, l.lookup); err != nil {
		return Config{}, err
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// loadFile decodes path over cfg. A missing file is not an error.
func (l *Loader) loadFile(path string, cfg *Config) error {
	data, err := l.fs.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("reading config file %s: %w", path, err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return parseTOML(path, data, cfg)
	case ".yaml", ".yml":
		return parseYAML(path, data, cfg)
	default:
		return fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
	}
}

func parseTOML(source string, data []byte, cfg *Config) error {
	if err := toml.Unmarshal(data, cfg); err != nil {
		perr := &ParseError{Path: source, Message: err.Error(), Err: err}

		var derr *toml.DecodeError
		if errors.As(err, &derr) {
			perr.Line, perr.Column = derr.Position()
		}
		return perr
	}
	return nil
}

func parseYAML(source string, data []byte, cfg *Config) error {
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return &ParseError{Path: source, Message: err.Error(), Err: err}
	}
	return nil
}
