package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/inkmarket/commission-market/internal/core/domain"
	"github.com/inkmarket/commission-market/internal/core/ports"
)

const (
	// DefaultRateLimitWindow is the fixed message window per sender.
	DefaultRateLimitWindow = time.Hour
	// DefaultRateLimit is the number of messages allowed per window.
	DefaultRateLimit = 50
)

// FixedWindowLimiter gates senders against a fixed-window counter. The
// counting itself lives behind ports.RateCounter so the same semantics run on
// the in-process map or on Redis for multi-instance deployments.
type FixedWindowLimiter struct {
	counter ports.RateCounter
	limit   int64
	window  time.Duration
	logger  zerolog.Logger
}

func NewFixedWindowLimiter(counter ports.RateCounter, limit int64, window time.Duration, logger zerolog.Logger) *FixedWindowLimiter {
	if limit <= 0 {
		limit = DefaultRateLimit
	}
	if window <= 0 {
		window = DefaultRateLimitWindow
	}
	return &FixedWindowLimiter{counter: counter, limit: limit, window: window, logger: logger}
}

// Check counts one send attempt for userID. Calls 1..limit within a window
// are allowed; later calls fail with a RateLimitError carrying the window
// reset time. A counter backend failure is logged and the send allowed rather
// than blocking all messaging on the counter store.
func (l *FixedWindowLimiter) Check(ctx context.Context, userID string) error {
	count, resetAt, err := l.counter.Increment(ctx, userID, l.window)
	if err != nil {
		l.logger.Warn().Err(err).Str("user_id", userID).Msg("rate counter unavailable, allowing send")
		return nil
	}
	if count > l.limit {
		return &domain.RateLimitError{Limit: int(l.limit), ResetAt: resetAt}
	}
	return nil
}
