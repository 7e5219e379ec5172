package resilience

import (
	"sync"
	"time"
)

// KeyedLimiterConfig configures a per-key limiter.
type KeyedLimiterConfig struct {
	// Rate is the number of operations per second allowed for each key.
	// Default: 1
	Rate float64

	// Burst is the maximum burst size per key.
	// Default: 5
	Burst int

	// IdleTTL is how long an untouched key's bucket is kept before
	// eviction. Default: 10 minutes.
	IdleTTL time.Duration
}

// KeyedLimiter maintains one token bucket per key. Buckets are created
// on first use and evicted after IdleTTL without activity, so the map
// stays bounded by the working set of active keys.
type KeyedLimiter struct {
	config KeyedLimiterConfig

	mu      sync.Mutex
	buckets map[string]*keyedBucket
}

type keyedBucket struct {
	limiter  *RateLimiter
	lastSeen time.Time
}

// NewKeyedLimiter creates a new per-key limiter.
func NewKeyedLimiter(config KeyedLimiterConfig) *KeyedLimiter {
	// Apply defaults
	if config.Rate <= 0 {
		config.Rate = 1
	}
	if config.Burst <= 0 {
		config.Burst = 5
	}
	if config.IdleTTL <= 0 {
		config.IdleTTL = 10 * time.Minute
	}

	return &KeyedLimiter{
		config:  config,
		buckets: make(map[string]*keyedBucket),
	}
}

// Allow checks if one operation is allowed for the given key.
func (kl *KeyedLimiter) Allow(key string) bool {
	kl.mu.Lock()
	b, ok := kl.buckets[key]
	if !ok {
		b = &keyedBucket{
			limiter: NewRateLimiter(RateLimiterConfig{
				Rate:  kl.config.Rate,
				Burst: kl.config.Burst,
			}),
		}
		kl.buckets[key] = b
		kl.evictIdleLocked()
	}
	b.lastSeen = time.Now()
	kl.mu.Unlock()

	return b.limiter.Allow()
}

// Len returns the number of live buckets.
func (kl *KeyedLimiter) Len() int {
	kl.mu.Lock()
	defer kl.mu.Unlock()
	return len(kl.buckets)
}

// Forget drops the bucket for a key, restoring its full burst. Used
// after a successful login so earlier failed attempts stop counting.
func (kl *KeyedLimiter) Forget(key string) {
	kl.mu.Lock()
	defer kl.mu.Unlock()
	delete(kl.buckets, key)
}

// evictIdleLocked drops buckets idle past the TTL. Called on bucket
// creation so eviction cost is amortized over new keys. Callers hold
// the lock.
func (kl *KeyedLimiter) evictIdleLocked() {
	cutoff := time.Now().Add(-kl.config.IdleTTL)
	for key, b := range kl.buckets {
		if b.lastSeen.Before(cutoff) {
			delete(kl.buckets, key)
		}
	}
}
