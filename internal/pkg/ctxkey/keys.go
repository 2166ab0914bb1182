// Package ctxkey defines type-safe keys for context.Value.
package ctxkey

// Key avoids the built-in string type for context keys (staticcheck SA1029).
type Key string

const (
	// RequestID is the server-generated ID attached to every request; it is
	// echoed on error pages so caseworkers can quote it to support.
	RequestID Key = "ctx_request_id"

	// Caseworker is the authenticated domain.Caseworker for the request.
	Caseworker Key = "ctx_caseworker"

	// SessionID is the server-side session record ID for the request.
	SessionID Key = "ctx_session_id"
)
