package gate

import (
	"github.com/jonwraymond/authgate/token"
)

// Decision is the gate's verdict for a single request. It is built once
// per request and never mutated afterwards; anything downstream reads it
// through FromContext.
type Decision struct {
	// Authenticated is true when the request carried a valid credential.
	// Excluded paths and optional paths without a token proceed with
	// Authenticated=false.
	Authenticated bool

	// Identity holds the verified token claims. Nil when Authenticated
	// is false.
	Identity *token.Claims

	// Permissions are the caller's resolved permissions. Nil for
	// unauthenticated decisions and for api-key identities.
	Permissions []string
}

// Subject returns the authenticated principal's id, or empty string.
func (d *Decision) Subject() string {
	if d == nil || d.Identity == nil {
		return ""
	}
	return d.Identity.Subject()
}

// Role returns the authenticated identity's role, or empty string.
func (d *Decision) Role() string {
	if d == nil || d.Identity == nil {
		return ""
	}
	return d.Identity.Role
}
