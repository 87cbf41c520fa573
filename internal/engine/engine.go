package engine

import (
	"fmt"
	"math"
	"strings"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/HIDDERS-OFFICIAL/hidders-dev/internal/engine/buffer"
	"github.com/HIDDERS-OFFICIAL/hidders-dev/internal/logging"
)

// Re-export commonly used types for convenience.
type (
	// CharOffset is an absolute 0-based character offset.
	CharOffset = buffer.CharOffset

	// LineIndex is a 0-based line number.
	LineIndex = buffer.LineIndex

	// ColumnOffset is a 0-based character offset from the start of a line.
	// It is not checked against the line's length.
	ColumnOffset = int64

	// RevisionID identifies a document revision.
	RevisionID = buffer.RevisionID

	// Snapshot is an immutable view of the document.
	Snapshot = buffer.Snapshot
)

// Engine is the only entry point to the shared document. Every operation
// holds an exclusive lock for its whole duration, so concurrent callers
// never observe a partial edit. Reads and writes serialize against each
// other alike.
//
// The document is created from the seed on first access. A seed that is not
// valid UTF-8 makes every call fail with ErrInvalidChar. If an operation
// panics while holding the document, the lock is released, the engine is
// poisoned and every later call fails with ErrLockPoisoned.
type Engine struct {
	mu       sync.Mutex
	buf      *buffer.Buffer
	poisoned bool

	// Configuration
	seed    string
	bufOpts []buffer.Option
	logger  *log.Logger
}

// New creates a new Engine with the given options.
func New(opts ...Option) *Engine {
	e := &Engine{
		seed: DefaultSeed,
	}

	for _, opt := range opts {
		opt(e)
	}

	if e.logger == nil {
		e.logger = logging.Default()
	}
	e.logger = e.logger.WithPrefix("engine")

	return e
}

// guard runs fn with exclusive access to the document.
func (e *Engine) guard(op string, fn func(buf *buffer.Buffer) error) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.poisoned {
		return fmt.Errorf("%s: %w", op, ErrLockPoisoned)
	}

	// Runs before the unlock above, so no caller sees the document
	// between the panic and the poisoning.
	defer func() {
		if r := recover(); r != nil {
			e.poisoned = true
			e.logger.Error("operation panicked; document poisoned", "op", op, "panic", r)
			panic(r)
		}
	}()

	if e.buf == nil {
		buf, err := buffer.NewBufferFromReader(strings.NewReader(e.seed), e.bufOpts...)
		if err != nil {
			e.logger.Error("seed rejected", logging.FieldError, err)
			return fmt.Errorf("%s: load seed: %w", op, err)
		}
		e.buf = buf
		e.logger.Debug("document created",
			logging.FieldTotalLines, e.buf.LineCount(),
			logging.FieldTotalChars, e.buf.Len())
	}

	return fn(e.buf)
}

// InsertChar inserts ch at column col of line. The target offset is the
// start of line plus col; a column past the end of the line is allowed and
// lands in a following line, as long as the offset stays within the
// document.
//
// Fails with an error matching ErrOutOfBounds when the offset is past the
// end of the document or line is greater than LineCount(); the document is
// unchanged in that case.
func (e *Engine) InsertChar(ch rune, line LineIndex, col ColumnOffset) error {
	return e.guard("insert_char", func(buf *buffer.Buffer) error {
		start, err := buf.LineToChar(line)
		if err == nil {
			// Compare before adding so a huge column cannot overflow.
			if col < 0 || col > buf.Len()-start {
				err = &OutOfBoundsError{
					Kind:  buffer.BoundOffset,
					Value: saturatingAdd(start, col),
					Max:   buf.Len(),
				}
			} else {
				err = buf.Insert(start+col, ch)
			}
		}
		if err != nil {
			e.logger.Warn("insert rejected",
				logging.FieldLine, line,
				logging.FieldColumn, col,
				logging.FieldError, err)
			return err
		}

		e.logger.Debug("inserted",
			logging.FieldChar, string(ch),
			logging.FieldOffset, start+col,
			logging.FieldTotalLines, buf.LineCount())
		return nil
	})
}

// Viewport returns up to height lines starting at startLine. A startLine
// past the end of the document yields an empty result, not an error;
// ranges running past the end are truncated.
func (e *Engine) Viewport(startLine LineIndex, height uint32) (ViewportLines, error) {
	var vp ViewportLines
	err := e.guard("get_viewport", func(buf *buffer.Buffer) error {
		total := buf.LineCount()
		end := viewportEnd(startLine, height, total)

		lines := make([]string, 0, end-startLine)
		for it := buf.Lines(startLine, end); it.Next(); {
			lines = append(lines, it.Text())
		}

		vp = ViewportLines{
			StartLine:  startLine,
			Lines:      lines,
			TotalLines: total,
		}
		return nil
	})
	return vp, err
}

// Text returns the full document content.
func (e *Engine) Text() (string, error) {
	var text string
	err := e.guard("text", func(buf *buffer.Buffer) error {
		text = buf.Text()
		return nil
	})
	return text, err
}

// LineCount returns the number of lines in the document.
func (e *Engine) LineCount() (uint32, error) {
	var n uint32
	err := e.guard("line_count", func(buf *buffer.Buffer) error {
		n = buf.LineCount()
		return nil
	})
	return n, err
}

// Len returns the number of characters in the document.
func (e *Engine) Len() (CharOffset, error) {
	var n CharOffset
	err := e.guard("len", func(buf *buffer.Buffer) error {
		n = buf.Len()
		return nil
	})
	return n, err
}

// RevisionID returns the current document revision.
func (e *Engine) RevisionID() (RevisionID, error) {
	var rev RevisionID
	err := e.guard("revision", func(buf *buffer.Buffer) error {
		rev = buf.RevisionID()
		return nil
	})
	return rev, err
}

// Snapshot returns an immutable view of the current document. The
// snapshot may be read without holding the engine's lock.
func (e *Engine) Snapshot() (*Snapshot, error) {
	var snap *Snapshot
	err := e.guard("snapshot", func(buf *buffer.Buffer) error {
		snap = buf.Snapshot()
		return nil
	})
	return snap, err
}

// saturatingAdd returns a+b, clamped to math.MaxInt64. a must not be
// negative.
func saturatingAdd(a, b int64) int64 {
	if b > math.MaxInt64-a {
		return math.MaxInt64
	}
	return a + b
}

// Poisoned reports whether a previous operation panicked.
func (e *Engine) Poisoned() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.poisoned
}
