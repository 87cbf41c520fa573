package rope

import (
	"bytes"
	"errors"
	"io"
	"unicode/utf8"
)

// ErrInvalidUTF8 is returned by Builder.Build when the written text is not
// valid UTF-8.
var ErrInvalidUTF8 = errors.New("rope: invalid UTF-8")

// readBufferSize is the read size used by Builder.ReadFrom.
const readBufferSize = 32 * 1024

// Builder assembles a rope from text that arrives in pieces, such as reads
// from a file or pipe. A piece may end in the middle of a rune or between
// '\r' and '\n'; the builder holds such tails back until the next piece, so
// chunks always contain whole runes and line endings are normalized the
// same way no matter where the input was split.
//
// The zero value is ready to use and keeps line endings as written.
type Builder struct {
	chunks  []Chunk
	pending []byte

	normalize bool
	pendingCR bool
	invalid   bool
}

// NewBuilder returns an empty builder. When normalizeNewlines is set,
// "\r\n" and a lone '\r' are stored as '\n'.
func NewBuilder(normalizeNewlines bool) *Builder {
	return &Builder{normalize: normalizeNewlines}
}

// Write implements io.Writer. It never fails; invalid UTF-8 is reported
// by Build.
func (b *Builder) Write(p []byte) (int, error) {
	n := len(p)
	if n == 0 {
		return 0, nil
	}
	if b.normalize {
		p = b.translateCR(p)
	}

	b.pending = append(b.pending, p...)
	if len(b.pending) >= 2*MaxChunkSize {
		b.flush(false)
	}
	return n, nil
}

// WriteString appends s.
func (b *Builder) WriteString(s string) (int, error) {
	return b.Write([]byte(s))
}

// ReadFrom implements io.ReaderFrom.
func (b *Builder) ReadFrom(r io.Reader) (int64, error) {
	buf := make([]byte, readBufferSize)
	var total int64

	for {
		n, err := r.Read(buf)
		if n > 0 {
			_, _ = b.Write(buf[:n])
			total += int64(n)
		}
		if errors.Is(err, io.EOF) {
			return total, nil
		}
		if err != nil {
			return total, err
		}
	}
}

// translateCR rewrites line endings in p. A trailing '\r' is withheld
// until the next byte shows whether it starts a "\r\n" pair.
func (b *Builder) translateCR(p []byte) []byte {
	if !b.pendingCR && bytes.IndexByte(p, '\r') < 0 {
		return p
	}

	out := make([]byte, 0, len(p)+1)
	if b.pendingCR {
		b.pendingCR = false
		out = append(out, '\n')
		if p[0] == '\n' {
			p = p[1:]
		}
	}

	for i := 0; i < len(p); i++ {
		if p[i] != '\r' {
			out = append(out, p[i])
			continue
		}
		if i == len(p)-1 {
			b.pendingCR = true
			break
		}
		out = append(out, '\n')
		if p[i+1] == '\n' {
			i++
		}
	}
	return out
}

// flush moves pending bytes into chunks. Unless final is set, an
// incomplete trailing rune stays pending.
func (b *Builder) flush(final bool) {
	keep := 0
	if !final {
		keep = partialRuneLen(b.pending)
	}
	ready := b.pending[:len(b.pending)-keep]

	if !utf8.Valid(ready) {
		b.invalid = true
	} else if !b.invalid && len(ready) > 0 {
		b.chunks = append(b.chunks, splitIntoChunks(string(ready))...)
	}

	b.pending = append(b.pending[:0], b.pending[len(ready):]...)
}

// partialRuneLen returns the length of an incomplete UTF-8 sequence at the
// end of p, or 0 if p ends on a rune boundary.
func partialRuneLen(p []byte) int {
	for i := 1; i < utf8.UTFMax && i <= len(p); i++ {
		if utf8.RuneStart(p[len(p)-i]) {
			if utf8.FullRune(p[len(p)-i:]) {
				return 0
			}
			return i
		}
	}
	return 0
}

// Build returns the rope holding everything written so far and resets the
// builder. It fails with ErrInvalidUTF8 if any written byte sequence was
// not valid UTF-8.
func (b *Builder) Build() (Rope, error) {
	if b.pendingCR {
		b.pending = append(b.pending, '\n')
	}
	b.flush(true)

	chunks, invalid := b.chunks, b.invalid
	b.Reset()

	if invalid {
		return Rope{}, ErrInvalidUTF8
	}
	return buildFromChunks(chunks), nil
}

// Reset discards everything written so far.
func (b *Builder) Reset() {
	b.chunks = nil
	b.pending = b.pending[:0]
	b.pendingCR = false
	b.invalid = false
}
