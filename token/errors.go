package token

import "errors"

// Sentinel errors for token issuance and verification.
var (
	// Verification errors. Expiry is distinct from the other failures so
	// callers can trigger refresh flows specifically on expiry.
	ErrTokenExpired     = errors.New("token: expired")
	ErrTokenMalformed   = errors.New("token: malformed")
	ErrSignatureInvalid = errors.New("token: signature invalid")
	ErrKindMismatch     = errors.New("token: kind mismatch")

	// Configuration errors. These are startup-fatal, not per-request.
	ErrNoSigningSecret = errors.New("token: signing secret is required")
	ErrInvalidTTL      = errors.New("token: invalid ttl format")
)
