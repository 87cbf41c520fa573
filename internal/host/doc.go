// Package host bridges an external caller to the document engine.
//
// Requests and responses are JSON bodies framed with Content-Length
// headers, the same framing LSP and DAP use:
//
//	Content-Length: 75\r\n
//	\r\n
//	{"id":1,"command":"insert_char","args":{"char":"X","lineIdx":0,"colIdx":2}}
//
// Two commands are registered by default:
//
//   - insert_char: args char (one-character string), lineIdx, colIdx.
//     Result is null.
//   - get_viewport: args startLine, height. Result is
//     {"start_line":..,"lines":[..],"total_lines":..}.
//
// Failures are reported as {"id":..,"error":{"kind":..,"message":..}} with
// kind one of OutOfBounds, LockFailure, InvalidChar, BadRequest,
// UnknownCommand or Internal. A LockFailure ends the session.
//
// Requests run concurrently on a bounded worker pool, so responses may
// arrive out of order.
package host
