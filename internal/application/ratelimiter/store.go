package ratelimiter

import (
	"context"
	"errors"
	"sync"
	"time"

	"tokengateway/internal/domain"
)

// Store keeps one RateLimiter per client identity. Its Allow method matches
// echo's middleware.RateLimiterStore.
type Store struct {
	limiters  domain.Cache[string, *RateLimiter]
	maxCalls  int
	window    time.Duration
	now       Clock
	mu        sync.Mutex
	lastSweep time.Time
}

func NewStore(limiters domain.Cache[string, *RateLimiter], maxCalls int, window time.Duration, clock Clock) *Store {
	if clock == nil {
		clock = time.Now
	}
	return &Store{
		limiters:  limiters,
		maxCalls:  maxCalls,
		window:    window,
		now:       clock,
		lastSweep: clock(),
	}
}

// Allow reports whether the client identified by identifier may make one more
// request. The request is counted when allowed.
func (s *Store) Allow(identifier string) (bool, error) {
	ctx := context.Background()
	s.sweep(ctx)

	limiter := s.limiters.GetOrSet(ctx, identifier, func() *RateLimiter {
		return NewRateLimiter(s.maxCalls, s.window, s.now)
	})

	if err := limiter.Allow(ctx); err != nil {
		if errors.Is(err, ErrRateLimitExceeded) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// Clients returns the number of tracked client identities.
func (s *Store) Clients() int {
	return s.limiters.Len()
}

// sweep drops idle clients at most once per window.
func (s *Store) sweep(ctx context.Context) {
	s.mu.Lock()
	now := s.now()
	if now.Sub(s.lastSweep) < s.window {
		s.mu.Unlock()
		return
	}
	s.lastSweep = now
	s.mu.Unlock()

	s.limiters.DeleteFunc(ctx, func(_ string, rl *RateLimiter) bool {
		return rl.Idle()
	})
}
