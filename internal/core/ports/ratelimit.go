package ports

import (
	"context"
	"time"
)

// RateCounter is the counting service behind the message rate limiter.
// Implementations keep a fixed-window counter per key: the first increment of
// a window (or the first after the previous window elapsed) starts a fresh
// window ending at now+window. This is a fixed window with reset on next
// access, not a sliding window — bursts straddling a reset boundary can admit
// up to twice the limit in a short span.
type RateCounter interface {
	// Increment adds one to the counter for key and returns the new count
	// together with the time the current window ends.
	Increment(ctx context.Context, key string, window time.Duration) (count int64, resetAt time.Time, err error)
}

// RateLimiter gates message creation per sender. Check returns a
// RateLimitError carrying the window reset time when the sender is over quota.
type RateLimiter interface {
	Check(ctx context.Context, userID string) error
}
