package resilience

import (
	"fmt"
	"sync"
	"testing"
	"time"
)

func TestKeyedLimiter_IndependentKeys(t *testing.T) {
	kl := NewKeyedLimiter(KeyedLimiterConfig{Rate: 0.001, Burst: 2})

	for i := 0; i < 2; i++ {
		if !kl.Allow("alice") {
			t.Fatalf("alice attempt %d should be allowed", i)
		}
	}
	if kl.Allow("alice") {
		t.Error("alice should be throttled after burst")
	}

	// A different key has its own bucket.
	if !kl.Allow("bob") {
		t.Error("bob should not be affected by alice's throttle")
	}
}

func TestKeyedLimiter_Forget(t *testing.T) {
	kl := NewKeyedLimiter(KeyedLimiterConfig{Rate: 0.001, Burst: 1})

	kl.Allow("alice")
	if kl.Allow("alice") {
		t.Fatal("alice should be throttled")
	}

	kl.Forget("alice")
	if !kl.Allow("alice") {
		t.Error("forget should restore alice's burst")
	}
}

func TestKeyedLimiter_IdleEviction(t *testing.T) {
	kl := NewKeyedLimiter(KeyedLimiterConfig{Rate: 1, Burst: 1, IdleTTL: 10 * time.Millisecond})

	kl.Allow("stale")
	if kl.Len() != 1 {
		t.Fatalf("expected 1 bucket, got %d", kl.Len())
	}

	time.Sleep(20 * time.Millisecond)

	// Eviction runs when a new key arrives.
	kl.Allow("fresh")
	if kl.Len() != 1 {
		t.Errorf("expected stale bucket evicted, got %d buckets", kl.Len())
	}
}

func TestKeyedLimiter_Concurrent(t *testing.T) {
	kl := NewKeyedLimiter(KeyedLimiterConfig{Rate: 1000, Burst: 1000})

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			key := fmt.Sprintf("user-%d", n%3)
			for j := 0; j < 50; j++ {
				kl.Allow(key)
			}
		}(i)
	}
	wg.Wait()

	if kl.Len() != 3 {
		t.Errorf("expected 3 buckets, got %d", kl.Len())
	}
}

func BenchmarkKeyedLimiter_Allow(b *testing.B) {
	kl := NewKeyedLimiter(KeyedLimiterConfig{Rate: 1e9, Burst: 1 << 30})

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		kl.Allow("bench-key")
	}
}
