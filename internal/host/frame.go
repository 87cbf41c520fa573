package host

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"
)

// DefaultMaxContentLength bounds a frame body when no limit is configured.
const DefaultMaxContentLength = 1 << 20

// ErrMissingContentLength indicates a header block without Content-Length.
var ErrMissingContentLength = errors.New("missing Content-Length header")

// FrameTooLargeError reports a frame whose body exceeded the size limit.
// The body has already been discarded, so the stream is still in sync.
type FrameTooLargeError struct {
	Length int
	Max    int
}

func (e *FrameTooLargeError) Error() string {
	return fmt.Sprintf("content-length %d exceeds maximum allowed %d", e.Length, e.Max)
}

// Message is one framed request or response body.
type Message struct {
	// ContentType is the MIME type (optional).
	ContentType string

	// Content is the JSON body.
	Content []byte
}

// FrameReader reads Content-Length framed messages.
type FrameReader struct {
	r   *bufio.Reader
	max int
}

// NewFrameReader creates a reader rejecting bodies larger than max bytes.
// A non-positive max selects DefaultMaxContentLength.
func NewFrameReader(r io.Reader, max int) *FrameReader {
	if max <= 0 {
		max = DefaultMaxContentLength
	}
	return &FrameReader{r: bufio.NewReader(r), max: max}
}

// Read reads the next message. It returns io.EOF when the stream ends
// cleanly between messages.
func (fr *FrameReader) Read() (*Message, error) {
	contentLength := -1
	var contentType string

	for first := true; ; first = false {
		line, err := fr.r.ReadString('\n')
		if err != nil {
			if first && line == "" && errors.Is(err, io.EOF) {
				return nil, io.EOF
			}
			return nil, fmt.Errorf("read header: %w", err)
		}

		line = strings.TrimRight(line, "\r\n")
		if line == "" {
			break
		}

		name, value, ok := strings.Cut(line, ":")
		if !ok {
			return nil, fmt.Errorf("invalid header: %s", line)
		}
		value = strings.TrimSpace(value)

		switch strings.ToLower(strings.TrimSpace(name)) {
		case "content-length":
			length, err := strconv.Atoi(value)
			if err != nil || length < 0 {
				return nil, fmt.Errorf("invalid content-length %q", value)
			}
			contentLength = length
		case "content-type":
			contentType = value
		}
	}

	if contentLength < 0 {
		return nil, ErrMissingContentLength
	}

	if contentLength > fr.max {
		if _, err := io.CopyN(io.Discard, fr.r, int64(contentLength)); err != nil {
			return nil, fmt.Errorf("discard content: %w", err)
		}
		return nil, &FrameTooLargeError{Length: contentLength, Max: fr.max}
	}

	content := make([]byte, contentLength)
	if _, err := io.ReadFull(fr.r, content); err != nil {
		return nil, fmt.Errorf("read content: %w", err)
	}

	return &Message{ContentType: contentType, Content: content}, nil
}

// FrameWriter writes Content-Length framed messages. It is safe for
// concurrent use; each message is written whole.
type FrameWriter struct {
	mu sync.Mutex
	w  io.Writer
}

// NewFrameWriter creates a FrameWriter.
func NewFrameWriter(w io.Writer) *FrameWriter {
	return &FrameWriter{w: w}
}

// Write writes msg with its headers.
func (fw *FrameWriter) Write(msg *Message) error {
	fw.mu.Lock()
	defer fw.mu.Unlock()

	headers := fmt.Sprintf("Content-Length: %d\r\n", len(msg.Content))
	if msg.ContentType != "" {
		headers += fmt.Sprintf("Content-Type: %s\r\n", msg.ContentType)
	}
	headers += "\r\n"

	if _, err := io.WriteString(fw.w, headers); err != nil {
		return fmt.Errorf("write headers: %w", err)
	}
	if _, err := fw.w.Write(msg.Content); err != nil {
		return fmt.Errorf("write content: %w", err)
	}
	return nil
}
