// Package ratelimit provides per-key token bucket rate limiting, used to
// throttle guess submissions per game session.
package ratelimit

import (
	"context"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// KeyedRateLimiter maintains a token bucket per key.
type KeyedRateLimiter struct {
	mu       sync.RWMutex
	limiters map[string]*entry
	limit    rate.Limit
	burst    int
	done     chan struct{}
	stopOnce sync.Once
}

type entry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// New creates a keyed rate limiter allowing rps events per second with the
// given burst. A background goroutine evicts keys idle for over an hour;
// call Stop to release it.
func New(rps float64, burst int) *KeyedRateLimiter {
	rl := &KeyedRateLimiter{
		limiters: make(map[string]*entry),
		limit:    rate.Limit(rps),
		burst:    burst,
		done:     make(chan struct{}),
	}
	go rl.cleanup()
	return rl
}

// Allow reports whether an event for key may happen now.
func (rl *KeyedRateLimiter) Allow(key string) bool {
	return rl.getLimiter(key).Allow()
}

// Wait blocks until an event for key is permitted or ctx is done.
func (rl *KeyedRateLimiter) Wait(ctx context.Context, key string) error {
	return rl.getLimiter(key).Wait(ctx)
}

// Stop terminates the cleanup goroutine.
func (rl *KeyedRateLimiter) Stop() {
	rl.stopOnce.Do(func() {
		close(rl.done)
	})
}

func (rl *KeyedRateLimiter) getLimiter(key string) *rate.Limiter {
	rl.mu.RLock()
	e, ok := rl.limiters[key]
	rl.mu.RUnlock()
	if ok {
		rl.mu.Lock()
		e.lastSeen = time.Now()
		rl.mu.Unlock()
		return e.limiter
	}

	rl.mu.Lock()
	defer rl.mu.Unlock()
	// Double-check after acquiring the write lock.
	if e, ok := rl.limiters[key]; ok {
		e.lastSeen = time.Now()
		return e.limiter
	}
	e = &entry{
		limiter:  rate.NewLimiter(rl.limit, rl.burst),
		lastSeen: time.Now(),
	}
	rl.limiters[key] = e
	return e.limiter
}

func (rl *KeyedRateLimiter) cleanup() {
	ticker := time.NewTicker(10 * time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-rl.done:
			return
		case <-ticker.C:
			cutoff := time.Now().Add(-time.Hour)
			rl.mu.Lock()
			for key, e := range rl.limiters {
				if e.lastSeen.Before(cutoff) {
					delete(rl.limiters, key)
				}
			}
			rl.mu.Unlock()
		}
	}
}
