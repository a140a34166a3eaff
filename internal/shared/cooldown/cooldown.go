// Package cooldown enforces the per-user trade cooldown window.
//
// The cooldown is held server-side, keyed by user id, so that two browser
// sessions of the same user share one limit. The Redis implementation is the
// default; the in-process implementation is the fallback for deployments
// without Redis (single node only).
package cooldown

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// DefaultWindow is the minimum interval between two trades of one user.
const DefaultWindow = 5 * time.Second

// RedisCooldown stores the cooldown as a TTL key per user. Expiry is handled
// entirely by Redis.
type RedisCooldown struct {
	client *redis.Client
	prefix string
	window time.Duration
}

// NewRedisCooldown creates a Redis-backed cooldown. If window is 0 it
// defaults to DefaultWindow; if prefix is empty it uses "trade_cooldown".
func NewRedisCooldown(client *redis.Client, prefix string, window time.Duration) *RedisCooldown {
	if window <= 0 {
		window = DefaultWindow
	}
	if prefix == "" {
		prefix = "trade_cooldown"
	}
	return &RedisCooldown{client: client, prefix: prefix, window: window}
}

// key returns the Redis key for a user's cooldown.
func (c *RedisCooldown) key(userID uint) string {
	return fmt.Sprintf("%s:user:%d", c.prefix, userID)
}

// Active reports whether the user's cooldown key still exists.
func (c *RedisCooldown) Active(ctx context.Context, userID uint) (bool, error) {
	n, err := c.client.Exists(ctx, c.key(userID)).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// Mark starts the cooldown window. Called only after a successful trade.
func (c *RedisCooldown) Mark(ctx context.Context, userID uint) error {
	return c.client.Set(ctx, c.key(userID), time.Now().Unix(), c.window).Err()
}

// MemoryCooldown keeps last trade times in process memory. It does not
// protect against concurrent sessions across nodes.
type MemoryCooldown struct {
	mu     sync.Mutex
	window time.Duration
	last   map[uint]time.Time
	now    func() time.Time
}

// NewMemoryCooldown creates an in-process cooldown with the given window.
func NewMemoryCooldown(window time.Duration) *MemoryCooldown {
	if window <= 0 {
		window = DefaultWindow
	}
	return &MemoryCooldown{
		window: window,
		last:   make(map[uint]time.Time),
		now:    time.Now,
	}
}

// WithClock overrides the time source. For tests.
func (c *MemoryCooldown) WithClock(now func() time.Time) *MemoryCooldown {
	c.now = now
	return c
}

// Active reports whether the user traded within the window.
func (c *MemoryCooldown) Active(_ context.Context, userID uint) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	last, ok := c.last[userID]
	if !ok {
		return false, nil
	}
	if c.now().Sub(last) >= c.window {
		delete(c.last, userID)
		return false, nil
	}
	return true, nil
}

// Mark records the trade time for the user.
func (c *MemoryCooldown) Mark(_ context.Context, userID uint) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.last[userID] = c.now()
	return nil
}
