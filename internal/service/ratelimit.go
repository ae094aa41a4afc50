package service

import (
	"sync"
	"time"
)

// LoginThrottle is an in-memory per-key rate limiter using the token
// bucket algorithm, applied to sign-in attempts keyed by client IP. It is
// safe for concurrent use. Stale buckets are cleaned up in the background.
type LoginThrottle struct {
	mu       sync.Mutex
	buckets  map[string]*bucket
	rate     float64 // tokens added per second
	capacity float64 // maximum tokens
	now      func() time.Time
}

type bucket struct {
	tokens float64
	last   time.Time
}

// NewLoginThrottle creates a throttle allowing bursts of up to capacity
// attempts per key, refilling at the given rate (attempts per second). It
// starts a background goroutine that periodically removes stale buckets.
func NewLoginThrottle(rate, capacity float64) *LoginThrottle {
	lt := &LoginThrottle{
		buckets:  make(map[string]*bucket),
		rate:     rate,
		capacity: capacity,
		now:      time.Now,
	}
	go lt.cleanup()
	return lt
}

// Allow reports whether the given key may attempt a sign-in. Each call
// consumes one token. Returns false when the bucket is empty.
func (lt *LoginThrottle) Allow(key string) bool {
	lt.mu.Lock()
	defer lt.mu.Unlock()

	b, ok := lt.buckets[key]
	if !ok {
		b = &bucket{tokens: lt.capacity, last: lt.now()}
		lt.buckets[key] = b
	}

	now := lt.now()
	elapsed := now.Sub(b.last).Seconds()
	b.tokens = min(b.tokens+elapsed*lt.rate, lt.capacity)
	b.last = now

	if b.tokens >= 1 {
		b.tokens--
		return true
	}
	return false
}

// cleanup runs periodically and removes buckets idle for over 10 minutes.
func (lt *LoginThrottle) cleanup() {
	ticker := time.NewTicker(5 * time.Minute)
	for range ticker.C {
		lt.mu.Lock()
		cutoff := lt.now().Add(-10 * time.Minute)
		for key, b := range lt.buckets {
			if b.last.Before(cutoff) {
				delete(lt.buckets, key)
			}
		}
		lt.mu.Unlock()
	}
}
