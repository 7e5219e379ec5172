// Package gate decides, per request, whether the caller may proceed.
//
// The gate runs a fixed state machine: classify the path against the
// policy rule set, extract the credential the classification calls for
// (bearer token or api key), verify it, and resolve the caller's
// permissions. The outcome is an immutable Decision attached to the
// request context; handlers downstream read it through FromContext and
// the Require* middleware.
//
// Rejections carry a typed *Error with an HTTP status and a stable wire
// code so clients can distinguish an expired token from a malformed one
// without parsing messages.
//
// Example:
//
//	g, _ := gate.New(rules, codec, gate.Options{})
//	mux.Handle("/", g.Middleware(appHandler))
//	mux.Handle("/admin/", g.Middleware(gate.RequireRole(policy.RoleAdmin)(adminHandler)))
package gate
