// Package rope provides an immutable rope for text storage addressed by
// character (rune) offsets and line numbers.
//
// The rope is a B+ tree: leaves hold bounded text chunks, and every node
// caches the character, byte and newline counts of its subtree. Queries
// descend the tree using those counts, so translating between lines and
// character offsets never rescans the text.
//
// Complexity, for a document of n characters:
//   - Insert, CharAt, LineToChar, CharToLine: O(log n), plus a scan of one
//     chunk of at most MaxChunkSize bytes
//   - LineText: O(log n + length of the line)
//
// Insert copies only the root-to-leaf path it touches and shares every other
// node with the original, so old Rope values remain valid snapshots.
//
// Basic usage:
//
//	r := rope.FromString("AA\nBB")
//	r = r.InsertRune(2, 'X')       // "AAX\nBB"
//	start := r.LineToChar(1)       // 4
//	text := r.LineText(0)          // "AAX"
package rope
