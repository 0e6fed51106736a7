// Package ratelimit provides the process-local fixed-window rate counter.
// State lives in a plain map, is created lazily per key, reset on the first
// increment after a window elapses, and destroyed only by process restart.
// It is not shared across instances; multi-instance deployments use the
// Redis-backed counter instead.
package ratelimit

import (
	"context"
	"sync"
	"time"
)

type window struct {
	count   int64
	resetAt time.Time
}

// MemoryCounter implements ports.RateCounter in process memory. The mutex
// makes the check-and-increment atomic under parallel handlers.
type MemoryCounter struct {
	mu      sync.Mutex
	windows map[string]*window
	now     func() time.Time
}

func NewMemoryCounter() *MemoryCounter {
	return &MemoryCounter{
		windows: make(map[string]*window),
		now:     time.Now,
	}
}

// Increment counts one event for key within the current fixed window and
// returns the new count and the window end. A window that has elapsed is
// replaced on this access, not in the background — a burst straddling the
// boundary can therefore see up to two windows' worth of allowance.
func (c *MemoryCounter) Increment(_ context.Context, key string, windowLen time.Duration) (int64, time.Time, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	w, ok := c.windows[key]
	if !ok || now.After(w.resetAt) {
		w = &window{resetAt: now.Add(windowLen)}
		c.windows[key] = w
	}
	w.count++
	return w.count, w.resetAt, nil
}
