// Package login exposes the credential-exchange HTTP endpoints: email
// and phone password login, and access-token refresh.
//
// Responses use a uniform JSON envelope {success, message, data}. Failed
// logins never say which part of the credential was wrong, and repeated
// attempts against the same identifier are throttled.
package login
