package rope

import (
	"strings"
	"testing"
	"unicode/utf8"
)

// FuzzFromString tests rope creation from arbitrary strings.
func FuzzFromString(f *testing.F) {
	f.Add("")
	f.Add("hello")
	f.Add("hello\nworld")
	f.Add("hello\r\nworld")
	f.Add("日本語")
	f.Add("emoji 🎉 test")
	f.Add("\x00\x01\x02")

	f.Fuzz(func(t *testing.T, s string) {
		// The rope stores Unicode scalar values only.
		if !utf8.ValidString(s) {
			return
		}

		r := FromString(s)

		if r.Len() != CountChars(s) {
			t.Errorf("length mismatch: got %d, want %d", r.Len(), CountChars(s))
		}
		if r.String() != s {
			t.Errorf("content mismatch")
		}
		if r.LineCount() != CountLines(s)+1 {
			t.Errorf("line count mismatch: got %d, want %d", r.LineCount(), CountLines(s)+1)
		}
	})
}

// FuzzInsertRune tests single-character insertion against a rune slice.
func FuzzInsertRune(f *testing.F) {
	f.Add("hello", 0, 'x')
	f.Add("hello", 5, 'x')
	f.Add("AA\nBB", 1, '\n')
	f.Add("", 0, 'a')
	f.Add("日本語", 2, '🎉')

	f.Fuzz(func(t *testing.T, initial string, offset int, ch rune) {
		if !utf8.ValidString(initial) || !utf8.ValidRune(ch) {
			return
		}

		runes := []rune(initial)
		if offset < 0 {
			offset = 0
		}
		if offset > len(runes) {
			offset = len(runes)
		}

		result := FromString(initial).InsertRune(CharOffset(offset), ch)

		expected := string(runes[:offset]) + string(ch) + string(runes[offset:])
		if result.String() != expected {
			t.Errorf("insert mismatch at offset %d", offset)
		}
		if got, _ := result.CharAt(CharOffset(offset)); got != ch {
			t.Errorf("CharAt(%d) = %q, want %q", offset, got, ch)
		}
	})
}

// FuzzLineToChar checks line starts against strings.Split.
func FuzzLineToChar(f *testing.F) {
	f.Add("AA\nBB")
	f.Add("\n\n\n")
	f.Add("no newline")
	f.Add(strings.Repeat("line\n", 100))

	f.Fuzz(func(t *testing.T, s string) {
		if !utf8.ValidString(s) {
			return
		}

		r := FromString(s)
		var start CharOffset
		for i, line := range strings.Split(s, "\n") {
			if got := r.LineToChar(uint32(i)); got != start {
				t.Fatalf("LineToChar(%d) = %d, want %d", i, got, start)
			}
			if got := r.LineText(uint32(i)); got != line {
				t.Fatalf("LineText(%d) = %q, want %q", i, got, line)
			}
			start += CountChars(line) + 1
		}
		if got := r.LineToChar(r.LineCount()); got != r.Len() {
			t.Errorf("LineToChar(LineCount()) = %d, want %d", got, r.Len())
		}
	})
}
