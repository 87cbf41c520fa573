package buffer

import (
	"errors"
	"strings"
	"testing"
	"testing/iotest"
)

func TestNewBuffer(t *testing.T) {
	b := NewBuffer()

	if !b.IsEmpty() {
		t.Error("new buffer should be empty")
	}

	if b.Len() != 0 {
		t.Errorf("expected length 0, got %d", b.Len())
	}

	if b.LineCount() != 1 {
		t.Errorf("expected 1 line, got %d", b.LineCount())
	}

	line, err := b.LineText(0)
	if err != nil || line != "" {
		t.Errorf("expected empty line 0, got %q, %v", line, err)
	}
}

func TestNewBufferFromStringMultiline(t *testing.T) {
	b := NewBufferFromString("line1\nline2\nline3")

	if b.LineCount() != 3 {
		t.Fatalf("expected 3 lines, got %d", b.LineCount())
	}

	for i, want := range []string{"line1", "line2", "line3"} {
		got, err := b.LineText(LineIndex(i))
		if err != nil {
			t.Fatalf("LineText(%d): %v", i, err)
		}
		if got != want {
			t.Errorf("LineText(%d) = %q, want %q", i, got, want)
		}
	}
}

func TestNewBufferNormalizesNewlines(t *testing.T) {
	b := NewBufferFromString("a\r\nb\rc")
	if b.Text() != "a\nb\nc" {
		t.Errorf("expected normalized text, got %q", b.Text())
	}

	raw := NewBufferFromString("a\r\nb", WithNormalizedNewlines(false))
	if raw.Text() != "a\r\nb" {
		t.Errorf("expected raw text, got %q", raw.Text())
	}
	if raw.LineCount() != 2 {
		t.Errorf("expected 2 lines, got %d", raw.LineCount())
	}
	line, _ := raw.LineText(0)
	if line != "a\r" {
		t.Errorf("expected carriage return kept in line, got %q", line)
	}
}

func TestNewBufferFromReader(t *testing.T) {
	b, err := NewBufferFromReader(strings.NewReader("héllo\nwörld"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if b.Len() != 11 {
		t.Errorf("expected 11 characters, got %d", b.Len())
	}

	_, err = NewBufferFromReader(strings.NewReader("bad \xff byte"))
	if !errors.Is(err, ErrInvalidChar) {
		t.Errorf("expected ErrInvalidChar, got %v", err)
	}
}

func TestNewBufferFromReaderNormalizesSplitCRLF(t *testing.T) {
	r := iotest.OneByteReader(strings.NewReader("a\r\nb\rc"))
	b, err := NewBufferFromReader(r)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if b.Text() != "a\nb\nc" {
		t.Errorf("expected normalized text, got %q", b.Text())
	}

	raw, err := NewBufferFromReader(strings.NewReader("a\r\nb"), WithNormalizedNewlines(false))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if raw.Text() != "a\r\nb" {
		t.Errorf("expected raw text, got %q", raw.Text())
	}
}

func TestNewBufferFromReaderError(t *testing.T) {
	boom := errors.New("boom")
	_, err := NewBufferFromReader(iotest.ErrReader(boom))
	if !errors.Is(err, boom) {
		t.Errorf("expected read error, got %v", err)
	}
}

func TestBufferInsert(t *testing.T) {
	tests := []struct {
		name   string
		text   string
		offset CharOffset
		ch     rune
		want   string
		lines  LineIndex
	}{
		{"end of first line", "AA\nBB", 2, 'X', "AAX\nBB", 2},
		{"split line", "AA\nBB", 1, '\n', "A\nA\nBB", 3},
		{"start", "AA\nBB", 0, 'Z', "ZAA\nBB", 2},
		{"append", "AA\nBB", 5, '!', "AA\nBB!", 2},
		{"empty doc", "", 0, 'a', "a", 1},
		{"newline into empty doc", "", 0, '\n', "\n", 2},
		{"multibyte neighbour", "é\nü", 1, 'x', "éx\nü", 2},
		{"multibyte char", "ab", 1, '世', "a世b", 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := NewBufferFromString(tt.text)
			before := b.Len()

			if err := b.Insert(tt.offset, tt.ch); err != nil {
				t.Fatalf("insert failed: %v", err)
			}
			if b.Text() != tt.want {
				t.Errorf("expected %q, got %q", tt.want, b.Text())
			}
			if b.Len() != before+1 {
				t.Errorf("expected length %d, got %d", before+1, b.Len())
			}
			if b.LineCount() != tt.lines {
				t.Errorf("expected %d lines, got %d", tt.lines, b.LineCount())
			}
			if ch, _ := b.CharAt(tt.offset); ch != tt.ch {
				t.Errorf("expected %q at %d, got %q", tt.ch, tt.offset, ch)
			}
		})
	}
}

func TestBufferInsertOutOfBounds(t *testing.T) {
	b := NewBufferFromString("AA\nBB")
	rev := b.RevisionID()

	for _, offset := range []CharOffset{-1, 6, 100} {
		err := b.Insert(offset, 'X')
		if !errors.Is(err, ErrOutOfBounds) {
			t.Fatalf("Insert(%d): expected ErrOutOfBounds, got %v", offset, err)
		}

		var oob *OutOfBoundsError
		if !errors.As(err, &oob) {
			t.Fatalf("expected *OutOfBoundsError, got %T", err)
		}
		if oob.Kind != BoundOffset || oob.Value != offset || oob.Max != 5 {
			t.Errorf("unexpected error fields: %+v", oob)
		}
	}

	if b.Text() != "AA\nBB" {
		t.Errorf("buffer changed after failed insert: %q", b.Text())
	}
	if b.RevisionID() != rev {
		t.Error("revision changed after failed insert")
	}
}

func TestBufferInsertInvalidChar(t *testing.T) {
	b := NewBufferFromString("ab")

	for _, ch := range []rune{0xD800, 0xDFFF, 0x110000, -1} {
		if err := b.Insert(1, ch); !errors.Is(err, ErrInvalidChar) {
			t.Errorf("Insert(%U): expected ErrInvalidChar, got %v", ch, err)
		}
	}

	if b.Text() != "ab" {
		t.Errorf("buffer changed: %q", b.Text())
	}
}

func TestBufferInsertText(t *testing.T) {
	b := NewBufferFromString("Hello World")

	if err := b.InsertText(5, ","); err != nil {
		t.Fatalf("insert failed: %v", err)
	}
	if b.Text() != "Hello, World" {
		t.Errorf("expected 'Hello, World', got %q", b.Text())
	}

	if err := b.InsertText(0, "a\r\nb "); err != nil {
		t.Fatalf("insert failed: %v", err)
	}
	if b.Text() != "a\nb Hello, World" {
		t.Errorf("expected normalized insert, got %q", b.Text())
	}

	rev := b.RevisionID()
	if err := b.InsertText(3, ""); err != nil {
		t.Fatalf("empty insert failed: %v", err)
	}
	if b.RevisionID() != rev {
		t.Error("empty insert should not create a revision")
	}

	if err := b.InsertText(0, "\xff"); !errors.Is(err, ErrInvalidChar) {
		t.Errorf("expected ErrInvalidChar, got %v", err)
	}
	if err := b.InsertText(b.Len()+1, "x"); !errors.Is(err, ErrOutOfBounds) {
		t.Errorf("expected ErrOutOfBounds, got %v", err)
	}
}

func TestBufferRevisionAdvances(t *testing.T) {
	b := NewBuffer()
	rev := b.RevisionID()

	if err := b.Insert(0, 'a'); err != nil {
		t.Fatal(err)
	}
	if b.RevisionID() == rev {
		t.Error("revision should change after insert")
	}
}

func TestBufferLineToChar(t *testing.T) {
	b := NewBufferFromString("AA\nBB\n")

	tests := []struct {
		line LineIndex
		want CharOffset
	}{
		{0, 0},
		{1, 3},
		{2, 6},
		{3, 6}, // end-of-document sentinel
	}

	for _, tt := range tests {
		got, err := b.LineToChar(tt.line)
		if err != nil {
			t.Fatalf("LineToChar(%d): %v", tt.line, err)
		}
		if got != tt.want {
			t.Errorf("LineToChar(%d) = %d, want %d", tt.line, got, tt.want)
		}
	}

	_, err := b.LineToChar(4)
	var oob *OutOfBoundsError
	if !errors.As(err, &oob) || oob.Kind != BoundLine || oob.Max != 3 {
		t.Errorf("expected line out of bounds with max 3, got %v", err)
	}
}

func TestBufferLineText(t *testing.T) {
	b := NewBufferFromString("one\ntwo\n")

	if b.LineCount() != 3 {
		t.Fatalf("expected trailing newline to produce 3 lines, got %d", b.LineCount())
	}

	last, err := b.LineText(2)
	if err != nil || last != "" {
		t.Errorf("expected empty last line, got %q, %v", last, err)
	}

	if _, err := b.LineText(3); !errors.Is(err, ErrOutOfBounds) {
		t.Errorf("expected ErrOutOfBounds, got %v", err)
	}
}

func TestBufferCharToLine(t *testing.T) {
	b := NewBufferFromString("AA\nBB")

	tests := []struct {
		offset CharOffset
		want   LineIndex
	}{
		{0, 0},
		{2, 0},
		{3, 1},
		{5, 1},
	}

	for _, tt := range tests {
		got, err := b.CharToLine(tt.offset)
		if err != nil {
			t.Fatalf("CharToLine(%d): %v", tt.offset, err)
		}
		if got != tt.want {
			t.Errorf("CharToLine(%d) = %d, want %d", tt.offset, got, tt.want)
		}
	}

	if _, err := b.CharToLine(6); !errors.Is(err, ErrOutOfBounds) {
		t.Errorf("expected ErrOutOfBounds, got %v", err)
	}
}

func TestBufferCharAt(t *testing.T) {
	b := NewBufferFromString("aé")

	ch, err := b.CharAt(1)
	if err != nil || ch != 'é' {
		t.Errorf("CharAt(1) = %q, %v", ch, err)
	}

	if _, err := b.CharAt(2); !errors.Is(err, ErrOutOfBounds) {
		t.Errorf("expected ErrOutOfBounds, got %v", err)
	}
	if _, err := b.CharAt(-1); !errors.Is(err, ErrOutOfBounds) {
		t.Errorf("expected ErrOutOfBounds, got %v", err)
	}
}

func TestBufferSliceAndRanges(t *testing.T) {
	b := NewBufferFromString("héllo\nwörld")

	got, err := b.Slice(1, 4)
	if err != nil || got != "éll" {
		t.Errorf("Slice(1, 4) = %q, %v", got, err)
	}

	if _, err := b.Slice(4, 1); !errors.Is(err, ErrRangeInvalid) {
		t.Errorf("expected ErrRangeInvalid, got %v", err)
	}
	if _, err := b.Slice(0, 100); !errors.Is(err, ErrRangeInvalid) {
		t.Errorf("expected ErrRangeInvalid, got %v", err)
	}

	r, err := b.LineRange(1)
	if err != nil {
		t.Fatal(err)
	}
	if r != NewRange(6, 11) {
		t.Errorf("LineRange(1) = %s", r)
	}
	if text, _ := b.TextInRange(r); text != "wörld" {
		t.Errorf("TextInRange = %q", text)
	}
}

func TestBufferLines(t *testing.T) {
	b := NewBufferFromString("a\nb\nc\nd")

	var got []string
	it := b.Lines(1, 10)
	for it.Next() {
		got = append(got, it.Text())
	}

	want := []string{"b", "c", "d"}
	if strings.Join(got, ",") != strings.Join(want, ",") {
		t.Errorf("Lines(1, 10) = %v, want %v", got, want)
	}
}

func TestSnapshotIsolation(t *testing.T) {
	b := NewBufferFromString("AA\nBB")
	snap := b.Snapshot()

	if err := b.Insert(1, '\n'); err != nil {
		t.Fatal(err)
	}

	if snap.Text() != "AA\nBB" {
		t.Errorf("snapshot changed: %q", snap.Text())
	}
	if snap.LineCount() != 2 {
		t.Errorf("expected snapshot to keep 2 lines, got %d", snap.LineCount())
	}
	if snap.RevisionID() == b.RevisionID() {
		t.Error("snapshot revision should differ after edit")
	}

	var joined strings.Builder
	for it := snap.Chunks(); it.Next(); {
		joined.WriteString(it.Chunk().String())
	}
	if joined.String() != "AA\nBB" {
		t.Errorf("chunks = %q", joined.String())
	}
}

// TestInsertKeepsLineStructure checks that every insert changes the line
// count only for newlines and leaves other lines untouched.
func TestInsertKeepsLineStructure(t *testing.T) {
	b := NewBufferFromString("first\nsecond\nthird")
	chars := []rune("x\nyé\n\n")

	for i, ch := range chars {
		line := LineIndex(i % int(b.LineCount()))
		start, err := b.LineToChar(line)
		if err != nil {
			t.Fatal(err)
		}

		before := b.Text()
		lines := b.LineCount()
		if err := b.Insert(start, ch); err != nil {
			t.Fatal(err)
		}

		wantLines := lines
		if ch == '\n' {
			wantLines++
		}
		if b.LineCount() != wantLines {
			t.Errorf("after inserting %q: %d lines, want %d", ch, b.LineCount(), wantLines)
		}

		runes := []rune(before)
		want := string(runes[:start]) + string(ch) + string(runes[start:])
		if b.Text() != want {
			t.Errorf("after inserting %q at %d: %q, want %q", ch, start, b.Text(), want)
		}
	}
}
