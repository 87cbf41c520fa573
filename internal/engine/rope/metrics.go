package rope

import "unicode/utf8"

// CharOffset is an absolute, 0-based position in the rope measured in
// Unicode scalar values (runes), not bytes.
type CharOffset uint64

// TextSummary holds aggregated metrics for a text span.
// Summaries form a monoid under Add, which lets internal nodes answer
// offset and line queries without touching their leaves.
type TextSummary struct {
	// Bytes is the UTF-8 byte count.
	Bytes uint64

	// Chars is the rune count.
	Chars CharOffset

	// Lines is the number of newline characters.
	Lines uint32

	// Flags indicate text properties for fast paths.
	Flags TextFlags
}

// TextFlags indicate text properties for optimization fast paths.
type TextFlags uint8

const (
	// FlagASCII indicates all characters are ASCII (< 128), so byte and
	// character offsets coincide.
	FlagASCII TextFlags = 1 << iota

	// FlagHasNewlines indicates the text contains newline characters.
	FlagHasNewlines
)

// Add combines two summaries (monoid operation).
func (s TextSummary) Add(other TextSummary) TextSummary {
	if s.Bytes == 0 {
		return other
	}
	if other.Bytes == 0 {
		return s
	}

	result := TextSummary{
		Bytes: s.Bytes + other.Bytes,
		Chars: s.Chars + other.Chars,
		Lines: s.Lines + other.Lines,
		Flags: (s.Flags & other.Flags) & FlagASCII,
	}
	if (s.Flags|other.Flags)&FlagHasNewlines != 0 {
		result.Flags |= FlagHasNewlines
	}
	return result
}

// Zero returns the identity element for the summary monoid.
func (TextSummary) Zero() TextSummary {
	return TextSummary{Flags: FlagASCII}
}

// IsZero returns true if this is the zero/identity summary.
func (s TextSummary) IsZero() bool {
	return s.Bytes == 0
}

// ComputeSummary calculates metrics for a string.
func ComputeSummary(s string) TextSummary {
	if len(s) == 0 {
		return TextSummary{Flags: FlagASCII}
	}

	sum := TextSummary{
		Bytes: uint64(len(s)),
		Flags: FlagASCII,
	}

	for _, r := range s {
		sum.Chars++
		if r >= utf8.RuneSelf {
			sum.Flags &^= FlagASCII
		}
		if r == '\n' {
			sum.Lines++
			sum.Flags |= FlagHasNewlines
		}
	}

	return sum
}

// CountChars returns the number of runes in s.
func CountChars(s string) CharOffset {
	return CharOffset(utf8.RuneCountInString(s))
}

// CountLines returns the number of newlines in a string.
func CountLines(s string) uint32 {
	var count uint32
	for i := 0; i < len(s); i++ {
		if s[i] == '\n' {
			count++
		}
	}
	return count
}
