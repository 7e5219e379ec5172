package resilience

import "errors"

// Sentinel errors for throttling operations.
var (
	// ErrRateLimitExceeded is returned when the rate limit is exceeded.
	ErrRateLimitExceeded = errors.New("resilience: rate limit exceeded")
)
