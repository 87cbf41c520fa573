// Package buffer holds the editor's document: a mutable sequence of Unicode
// characters organized for line-based and character-offset addressing.
//
// Offsets are counted in characters (runes), lines are 0-based and split on
// '\n'. The newline is structural: LineText never includes it. An empty
// document has exactly one empty line, and offset Len() is a valid
// insertion point.
//
// Basic usage:
//
//	buf := buffer.NewBufferFromString("AA\nBB")
//	_ = buf.Insert(2, 'X')          // "AAX\nBB"
//	start, _ := buf.LineToChar(1)   // 4
//	line, _ := buf.LineText(0)      // "AAX"
//
// Complexity: Insert, LineToChar, CharToLine and CharAt are O(log n) in
// document size; LineText is O(log n) plus the length of the line.
//
// Thread Safety:
//
// Buffer does no locking of its own; its owner must serialize access.
// Snapshot values are immutable and may be shared freely.
package buffer
