package buffer

import "fmt"

// Range represents a half-open range of character offsets [Start, End).
type Range struct {
	Start CharOffset
	End   CharOffset
}

// NewRange creates a new Range.
func NewRange(start, end CharOffset) Range {
	return Range{Start: start, End: end}
}

// String returns a human-readable representation of the range.
func (r Range) String() string {
	return fmt.Sprintf("[%d, %d)", r.Start, r.End)
}

// Len returns the number of characters in the range.
func (r Range) Len() CharOffset {
	return r.End - r.Start
}

// IsEmpty returns true if the range contains no characters.
func (r Range) IsEmpty() bool {
	return r.Start == r.End
}

// IsValid returns true if Start <= End and Start is not negative.
func (r Range) IsValid() bool {
	return r.Start >= 0 && r.Start <= r.End
}

// Contains returns true if the offset is within the range.
func (r Range) Contains(offset CharOffset) bool {
	return offset >= r.Start && offset < r.End
}
