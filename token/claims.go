package token

import (
	"github.com/golang-jwt/jwt/v5"
)

// Kind is the functional class of a token. Kinds are enforced as a hard
// separation: a token only verifies against the kind the call site expects.
type Kind string

const (
	KindAccess  Kind = "access"
	KindRefresh Kind = "refresh"
	KindAPIKey  Kind = "api_key"
)

// String returns the wire value of the kind.
func (k Kind) String() string {
	return string(k)
}

// Claims is the payload carried by a signed token.
//
// User tokens (access/refresh) identify a subject via UserID; api-key
// tokens identify a calling service via Identifier and carry no role or
// permissions.
type Claims struct {
	// UserID is the subject's unique identifier.
	UserID string `json:"userId,omitempty"`

	// Identifier names the calling service on api-key tokens.
	Identifier string `json:"identifier,omitempty"`

	// Email is the subject's email address, when known.
	Email string `json:"email,omitempty"`

	// Phone is the subject's phone number, when known.
	Phone string `json:"phone,omitempty"`

	// Role is the subject's role name (e.g. "admin", "user").
	Role string `json:"role,omitempty"`

	// Permissions are explicit permissions embedded at issue time.
	Permissions []string `json:"permissions,omitempty"`

	// Kind is the token's functional class. Set by Issue, never by callers.
	Kind Kind `json:"type"`

	jwt.RegisteredClaims
}

// Subject returns the principal this token speaks for: UserID for user
// tokens, Identifier for api-key tokens.
func (c *Claims) Subject() string {
	if c.UserID != "" {
		return c.UserID
	}
	return c.Identifier
}

// identityOnly returns a copy of the claims stripped of kind and validity
// window, suitable for re-issuing a fresh token.
func (c *Claims) identityOnly() Claims {
	return Claims{
		UserID:      c.UserID,
		Identifier:  c.Identifier,
		Email:       c.Email,
		Phone:       c.Phone,
		Role:        c.Role,
		Permissions: c.Permissions,
	}
}
