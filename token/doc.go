// Package token issues and verifies the signed bearer tokens used by the
// authentication gate.
//
// Tokens are compact HS256 JWTs signed with a single shared secret. Each
// token carries a Kind (access, refresh, api_key) that is enforced at
// verification time: a refresh token presented where an access token is
// expected fails with ErrKindMismatch, never with a signature error.
//
// The Service type implements the token lifecycle: issuing an
// access/refresh pair at login, re-issuing access tokens from refresh
// tokens, and advisory expiry queries. Refresh tokens are not single-use
// and there is no revocation store; a refresh token stays valid until its
// natural expiry.
package token
