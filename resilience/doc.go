// Package resilience provides request throttling primitives.
//
// RateLimiter is a token bucket; KeyedLimiter maintains one bucket per
// key (login identifier, client IP) with idle eviction, and is what the
// login handlers use to slow down credential-stuffing attempts.
//
//	limiter := resilience.NewKeyedLimiter(resilience.KeyedLimiterConfig{
//	    Rate:  1,  // attempts per second per identifier
//	    Burst: 5,
//	})
//	if !limiter.Allow("alice@example.com") {
//	    // reply 429
//	}
package resilience
