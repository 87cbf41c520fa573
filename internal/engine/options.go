package engine

import (
	"github.com/charmbracelet/log"

	"github.com/HIDDERS-OFFICIAL/hidders-dev/internal/engine/buffer"
)

// DefaultSeed is the placeholder text a document starts with.
const DefaultSeed = "// Hidders Editor v0.1\n// Type here..."

// Option configures an Engine during creation.
type Option func(*Engine)

// WithSeed sets the text the document is created with on first access.
func WithSeed(seed string) Option {
	return func(e *Engine) {
		e.seed = seed
	}
}

// WithLogger sets the logger used for edit and failure records.
func WithLogger(logger *log.Logger) Option {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// WithBufferOptions passes options through to the underlying buffer.
func WithBufferOptions(opts ...buffer.Option) Option {
	return func(e *Engine) {
		e.bufOpts = append(e.bufOpts, opts...)
	}
}
