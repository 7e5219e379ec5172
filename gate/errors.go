package gate

import (
	"fmt"
	"net/http"
)

// Wire codes returned in rejection bodies. Stable: clients match on
// these, not on messages.
const (
	CodeMissingCredential = "MISSING_CREDENTIAL"
	CodeTokenExpired      = "TOKEN_EXPIRED"
	CodeTokenInvalid      = "TOKEN_INVALID"
	CodeAPIKeyInvalid     = "API_KEY_INVALID"
	CodeAuthRequired      = "AUTH_REQUIRED"
	CodePermissionDenied  = "PERMISSION_DENIED"
	CodeRoleDenied        = "ROLE_DENIED"
)

// Error is a gate rejection: an HTTP status plus a stable wire code.
// Permission and role rejections additionally carry what was required
// and what the caller actually holds.
type Error struct {
	// Status is the HTTP status to respond with (401 or 403).
	Status int

	// Code is the stable wire code.
	Code string

	// Message is a human-readable explanation.
	Message string

	// Required lists the permissions or role the endpoint demands.
	Required []string

	// Current lists what the caller holds.
	Current []string

	cause error
}

// Error returns the error message.
func (e *Error) Error() string {
	return fmt.Sprintf("gate: %s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying verification error, if any.
func (e *Error) Unwrap() error {
	return e.cause
}

func missingCredential(msg string) *Error {
	return &Error{Status: http.StatusUnauthorized, Code: CodeMissingCredential, Message: msg}
}

func tokenExpired(cause error) *Error {
	return &Error{
		Status:  http.StatusUnauthorized,
		Code:    CodeTokenExpired,
		Message: "access token expired",
		cause:   cause,
	}
}

func tokenInvalid(cause error) *Error {
	return &Error{
		Status:  http.StatusUnauthorized,
		Code:    CodeTokenInvalid,
		Message: "access token invalid",
		cause:   cause,
	}
}

func apiKeyInvalid(cause error) *Error {
	return &Error{
		Status:  http.StatusUnauthorized,
		Code:    CodeAPIKeyInvalid,
		Message: "api key invalid",
		cause:   cause,
	}
}

func authRequired() *Error {
	return &Error{
		Status:  http.StatusUnauthorized,
		Code:    CodeAuthRequired,
		Message: "authentication required",
	}
}

func permissionDenied(required, current []string) *Error {
	return &Error{
		Status:   http.StatusForbidden,
		Code:     CodePermissionDenied,
		Message:  "insufficient permissions",
		Required: required,
		Current:  current,
	}
}

func roleDenied(required, current string) *Error {
	return &Error{
		Status:   http.StatusForbidden,
		Code:     CodeRoleDenied,
		Message:  "insufficient role",
		Required: []string{required},
		Current:  []string{current},
	}
}
