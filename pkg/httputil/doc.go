// Package httputil holds the JSON response helpers shared by slabtower's
// HTTP handlers.
//
// Every error response has the same shape:
//
//	{"code": "MALFORMED_INPUT", "message": "line 3: ..."}
//
// and its status is derived from the error code by [StatusFor]:
//
//   - MALFORMED_INPUT, COLLISION: 422 Unprocessable Entity
//   - INVALID_INPUT, INVALID_FORMAT: 400 Bad Request
//   - NOT_FOUND: 404 Not Found
//   - UNSUPPORTED: 501 Not Implemented
//   - anything else: 500 Internal Server Error
//
// Handlers write results with [WriteJSON] and failures with [WriteError].
package httputil
