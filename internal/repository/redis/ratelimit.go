package redis

import (
	"context"
	"fmt"
	"time"
)

const rateLimitPrefix = "ratelimit:"

// RateLimiter is a fixed-window request counter shared by every replica
// through Redis. The per-minute budget is requestsPerMinute plus a burst
// allowance, so a caller pacing right at the limit is not rejected over
// minor timing jitter.
type RateLimiter struct {
	client *Client
	limit  int64
}

// NewRateLimiter creates a new rate limiter
func NewRateLimiter(client *Client, requestsPerMinute, burst int) *RateLimiter {
	if burst < 0 {
		burst = 0
	}
	return &RateLimiter{client: client, limit: int64(requestsPerMinute + burst)}
}

// Allow counts one request against the key's current window and reports
// whether it fits the budget, how much budget remains, and when the window
// resets. The window starts at the key's first increment, so the reset time
// comes from the key's remaining TTL rather than the wall clock. An error
// means Redis was unreachable; the caller decides whether that fails open
// or closed.
func (r *RateLimiter) Allow(ctx context.Context, key string) (bool, int, time.Time, error) {
	pipe := r.client.rdb.Pipeline()
	count := pipe.Incr(ctx, rateLimitPrefix+key)
	pipe.ExpireNX(ctx, rateLimitPrefix+key, time.Minute)
	ttl := pipe.TTL(ctx, rateLimitPrefix+key)
	if _, err := pipe.Exec(ctx); err != nil {
		return false, 0, time.Time{}, fmt.Errorf("failed to execute rate limit check: %w", err)
	}

	reset := windowReset(time.Now(), ttl.Val())
	used := count.Val()
	remaining := r.limit - used
	if remaining < 0 {
		remaining = 0
	}
	return used <= r.limit, int(remaining), reset, nil
}

// windowReset turns the key's remaining TTL into an absolute reset time.
// A non-positive TTL means the expiry was not visible yet (the increment
// racing another replica's ExpireNX), which reads as a fresh full window.
func windowReset(now time.Time, ttl time.Duration) time.Time {
	if ttl <= 0 {
		ttl = time.Minute
	}
	return now.Add(ttl)
}
