package gate

import (
	"context"
)

// Context keys for gate-related values.
type contextKey int

const (
	decisionKey contextKey = iota
)

// WithDecision returns a new context with the given decision attached.
func WithDecision(ctx context.Context, d *Decision) context.Context {
	return context.WithValue(ctx, decisionKey, d)
}

// FromContext retrieves the decision from the context.
// Returns nil if no decision is present.
func FromContext(ctx context.Context) *Decision {
	d, _ := ctx.Value(decisionKey).(*Decision)
	return d
}

// SubjectFromContext retrieves the authenticated subject id from the
// context. Returns empty string if no authenticated decision is present.
func SubjectFromContext(ctx context.Context) string {
	return FromContext(ctx).Subject()
}
