// Package httputil provides the HTTP plumbing of the growthchart server.
//
// # Request IDs
//
// [RequestID] is a middleware that tags every request with an ID, taken
// from the incoming X-Request-ID header when it is a valid UUID and
// generated otherwise. The ID is echoed on the response and available to
// handlers through [RequestIDFromContext].
//
// # Responses
//
// [WriteJSON] writes a JSON body with a status code. [WriteError] writes the
// uniform error envelope:
//
//	{"error": {"code": "INVALID_CONFIG", "message": "...", "request_id": "..."}}
//
// [StatusFor] maps an error code from the errors package to an HTTP status,
// so handlers can return typed errors and let [WriteError] pick the status.
//
// # Request bodies
//
// [DecodeJSON] reads a size-limited JSON body and rejects unknown fields.
package httputil
