package ratelimiter

import (
	"context"
	"errors"
	"sync"
	"time"
)

var (
	// ErrRateLimitExceeded is returned when the rate limit is exceeded
	ErrRateLimitExceeded = errors.New("rate limit exceeded")
)

// Clock returns the current time. A nil Clock means time.Now.
type Clock func() time.Time

// RateLimiter limits calls within a sliding time window. It keeps the
// timestamp of every accepted call still inside the window.
type RateLimiter struct {
	mu             sync.Mutex
	maxCalls       int
	windowDuration time.Duration
	callTimestamps []time.Time
	now            Clock
}

// NewRateLimiter creates a new rate limiter with the specified max calls and window duration
func NewRateLimiter(maxCalls int, windowDuration time.Duration, clock Clock) *RateLimiter {
	if maxCalls <= 0 {
		maxCalls = 1 // Minimum 1 call
	}
	if windowDuration <= 0 {
		windowDuration = time.Minute // Default to 1 minute
	}
	if clock == nil {
		clock = time.Now
	}

	return &RateLimiter{
		maxCalls:       maxCalls,
		windowDuration: windowDuration,
		callTimestamps: make([]time.Time, 0, min(maxCalls, 16)),
		now:            clock,
	}
}

// Allow records a call and returns ErrRateLimitExceeded if the window is
// already full. Rejected calls are not recorded.
func (rl *RateLimiter) Allow(_ context.Context) error {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	rl.evict(now)

	if len(rl.callTimestamps) >= rl.maxCalls {
		return ErrRateLimitExceeded
	}

	rl.callTimestamps = append(rl.callTimestamps, now)
	return nil
}

// Remaining reports how many calls would still be accepted right now.
func (rl *RateLimiter) Remaining() int {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	rl.evict(rl.now())
	return rl.maxCalls - len(rl.callTimestamps)
}

// Idle reports whether no accepted call is left inside the window.
func (rl *RateLimiter) Idle() bool {
	return rl.Remaining() == rl.maxCalls
}

// evict drops timestamps outside the window. Timestamps are appended in
// order, so the valid ones form a suffix.
func (rl *RateLimiter) evict(now time.Time) {
	cutoff := now.Add(-rl.windowDuration)
	i := 0
	for i < len(rl.callTimestamps) && !rl.callTimestamps[i].After(cutoff) {
		i++
	}
	if i > 0 {
		rl.callTimestamps = append(rl.callTimestamps[:0], rl.callTimestamps[i:]...)
	}
}
