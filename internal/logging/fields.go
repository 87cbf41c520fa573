package logging

// Field name constants for structured logging.
const (
	// Common fields.
	FieldError     = "error"
	FieldComponent = "component"
	FieldSession   = "session"
	FieldPath      = "path"

	// Document fields.
	FieldLine       = "line"
	FieldColumn     = "col"
	FieldOffset     = "offset"
	FieldChar       = "char"
	FieldTotalLines = "total_lines"
	FieldTotalChars = "total_chars"
	FieldStartLine  = "start_line"
	FieldHeight     = "height"
	FieldRevision   = "revision"

	// Host fields.
	FieldRequestID = "request_id"
	FieldCommand   = "command"
	FieldKind      = "kind"
	FieldWorkers   = "workers"
	FieldDuration  = "duration"

	// Version fields.
	FieldVersion = "version"
	FieldCommit  = "commit"
	FieldBuilt   = "built"
)
