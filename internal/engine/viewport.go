package engine

// ViewportLines is a contiguous run of lines fetched for display.
type ViewportLines struct {
	// StartLine echoes the requested first line, even when it lies past
	// the end of the document.
	StartLine LineIndex `json:"start_line" yaml:"start_line"`

	// Lines holds the text of each line, newline stripped, in order.
	// It is empty, never nil, when StartLine >= TotalLines.
	Lines []string `json:"lines" yaml:"lines"`

	// TotalLines is the document's line count at the time of the call.
	TotalLines uint32 `json:"total_lines" yaml:"total_lines"`
}

// EndLine returns the index one past the last returned line.
func (v ViewportLines) EndLine() LineIndex {
	return v.StartLine + LineIndex(len(v.Lines))
}

// viewportEnd returns min(start+height, total) without overflowing.
func viewportEnd(start LineIndex, height, total uint32) LineIndex {
	if start >= total {
		return start
	}
	if height > total-start {
		return total
	}
	return start + height
}
