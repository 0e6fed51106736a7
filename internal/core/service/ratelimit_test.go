package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/inkmarket/commission-market/internal/core/domain"
)

func TestFixedWindowLimiterBoundary(t *testing.T) {
	counter := &stubCounter{}
	limiter := NewFixedWindowLimiter(counter, 50, time.Hour, zerolog.Nop())

	for i := 1; i <= 50; i++ {
		if err := limiter.Check(context.Background(), testUserID); err != nil {
			t.Fatalf("check %d: %v, want allowed", i, err)
		}
	}

	err := limiter.Check(context.Background(), testUserID)
	var rl *domain.RateLimitError
	if !errors.As(err, &rl) {
		t.Fatalf("check 51: err = %v, want RateLimitError", err)
	}
	if rl.Limit != 50 {
		t.Errorf("limit in error = %d, want 50", rl.Limit)
	}
	if rl.ResetAt.IsZero() {
		t.Error("reset time missing from rejection")
	}
}

func TestFixedWindowLimiterFailOpen(t *testing.T) {
	counter := &stubCounter{err: errors.New("counter store down")}
	limiter := NewFixedWindowLimiter(counter, 50, time.Hour, zerolog.Nop())

	// A broken counter must not block all messaging.
	if err := limiter.Check(context.Background(), testUserID); err != nil {
		t.Fatalf("check with failing counter: %v, want allowed", err)
	}
}

func TestFixedWindowLimiterDefaults(t *testing.T) {
	counter := &stubCounter{}
	limiter := NewFixedWindowLimiter(counter, 0, 0, zerolog.Nop())

	if limiter.limit != DefaultRateLimit {
		t.Errorf("limit = %d, want %d", limiter.limit, DefaultRateLimit)
	}
	if limiter.window != DefaultRateLimitWindow {
		t.Errorf("window = %v, want %v", limiter.window, DefaultRateLimitWindow)
	}
}
