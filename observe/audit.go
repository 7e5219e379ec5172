package observe

import (
	"context"
	"time"
)

// Audit records authentication outcomes and notable user actions as
// structured events. Every gate rejection and every successful
// authentication passes through here before the request proceeds.
//
// Contract:
// - Concurrency: safe for concurrent use (delegates to Logger).
// - Errors: best-effort; auditing never fails the request.
type Audit struct {
	logger Logger
}

// NewAudit creates an audit sink writing through the given logger. A nil
// logger discards all events.
func NewAudit(logger Logger) *Audit {
	if logger == nil {
		logger = &noopLogger{}
	}
	return &Audit{logger: logger}
}

// AuthSuccess records a successful authentication decision.
func (a *Audit) AuthSuccess(ctx context.Context, meta RequestMeta, role string, elapsed time.Duration) {
	a.logger.WithRequest(meta).Info(ctx, "auth_success",
		Field{Key: "action", Value: "auth_success"},
		Field{Key: "role", Value: role},
		Field{Key: "duration_ms", Value: durationMs(elapsed)},
	)
}

// AuthFailure records a rejected request with its failure reason.
func (a *Audit) AuthFailure(ctx context.Context, meta RequestMeta, reason string, elapsed time.Duration) {
	a.logger.WithRequest(meta).Warn(ctx, "auth_failure",
		Field{Key: "action", Value: "auth_failure"},
		Field{Key: "reason", Value: reason},
		Field{Key: "duration_ms", Value: durationMs(elapsed)},
	)
}

// UserAction records a business-level user action such as a login or a
// token refresh.
func (a *Audit) UserAction(ctx context.Context, userID, action string, fields ...Field) {
	all := make([]Field, 0, len(fields)+2)
	all = append(all,
		Field{Key: "userId", Value: userID},
		Field{Key: "action", Value: action},
	)
	all = append(all, fields...)
	a.logger.Info(ctx, action, all...)
}

func durationMs(d time.Duration) float64 {
	return float64(d.Microseconds()) / 1000.0
}
