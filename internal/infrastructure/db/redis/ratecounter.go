package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RateCounter provides the shared fixed-window message counter backed by
// Redis, for deployments running more than one API instance.
// Key format: ratelimit:<user_id>
type RateCounter struct {
	client *redis.Client
}

// NewRateCounter creates a RateCounter wrapping the given Redis client.
func NewRateCounter(client *redis.Client) *RateCounter {
	return &RateCounter{client: client}
}

// Increment adds one to the window counter for key. The first increment of a
// window sets its expiry; the window end is derived from the key's remaining
// TTL so every instance reports the same reset time.
func (c *RateCounter) Increment(ctx context.Context, key string, window time.Duration) (int64, time.Time, error) {
	k := c.key(key)

	count, err := c.client.Incr(ctx, k).Result()
	if err != nil {
		return 0, time.Time{}, fmt.Errorf("rate counter incr: %w", err)
	}
	if count == 1 {
		if err := c.client.Expire(ctx, k, window).Err(); err != nil {
			return 0, time.Time{}, fmt.Errorf("rate counter expire: %w", err)
		}
		return count, time.Now().Add(window), nil
	}

	ttl, err := c.client.TTL(ctx, k).Result()
	if err != nil || ttl < 0 {
		// Lost or missing expiry; report a full window rather than a
		// counter that never resets.
		ttl = window
	}
	return count, time.Now().Add(ttl), nil
}

func (c *RateCounter) key(userID string) string {
	return fmt.Sprintf("ratelimit:%s", userID)
}
