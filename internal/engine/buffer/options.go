package buffer

import "strings"

// Option is a functional option for configuring a Buffer.
type Option func(*Buffer)

// WithNormalizedNewlines controls whether text loaded into the buffer has
// "\r\n" and lone "\r" rewritten to "\n". It is enabled by default. Single
// characters passed to Insert are never rewritten.
func WithNormalizedNewlines(enable bool) Option {
	return func(b *Buffer) {
		b.normalize = enable
	}
}

// normalizeNewlines converts CRLF and CR line endings to LF.
func normalizeNewlines(s string) string {
	if !strings.ContainsRune(s, '\r') {
		return s
	}
	s = strings.ReplaceAll(s, "\r\n", "\n")
	return strings.ReplaceAll(s, "\r", "\n")
}
