package auth

import (
	"fmt"
	"sync"
	"time"
)

// RateLimitConfig holds connection rate limiting configuration.
type RateLimitConfig struct {
	// ConnectionRateLimit is the maximum number of new connections per key
	// within RateLimitWindow. Zero disables limiting.
	ConnectionRateLimit int
	RateLimitWindow     time.Duration
}

// RateLimitError represents a rate limit exceeded error
type RateLimitError struct {
	Key     string
	Current int
	Max     int
}

func (e *RateLimitError) Error() string {
	return fmt.Sprintf("rate limit exceeded for %s (current: %d, max: %d)", e.Key, e.Current, e.Max)
}

// ConnectionLimiter is a sliding-window limiter on new connections per key
// (the relay keys on client IP).
type ConnectionLimiter struct {
	timestamps map[string][]time.Time
	mu         sync.Mutex
	config     RateLimitConfig
	now        func() time.Time
}

func NewConnectionLimiter(config RateLimitConfig) *ConnectionLimiter {
	if config.RateLimitWindow <= 0 {
		config.RateLimitWindow = time.Minute
	}
	return &ConnectionLimiter{
		timestamps: make(map[string][]time.Time),
		config:     config,
		now:        time.Now,
	}
}

// Allow records a connection attempt for key, or returns a *RateLimitError
// when the window is full.
func (l *ConnectionLimiter) Allow(key string) error {
	if l.config.ConnectionRateLimit <= 0 {
		return nil
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	l.pruneLocked(now)

	current := len(l.timestamps[key])
	if current >= l.config.ConnectionRateLimit {
		return &RateLimitError{Key: key, Current: current, Max: l.config.ConnectionRateLimit}
	}
	l.timestamps[key] = append(l.timestamps[key], now)
	return nil
}

// pruneLocked drops timestamps outside the window and empty keys.
func (l *ConnectionLimiter) pruneLocked(now time.Time) {
	windowStart := now.Add(-l.config.RateLimitWindow)
	for key, ts := range l.timestamps {
		i := 0
		for i < len(ts) && !ts[i].After(windowStart) {
			i++
		}
		if i == len(ts) {
			delete(l.timestamps, key)
			continue
		}
		l.timestamps[key] = ts[i:]
	}
}
