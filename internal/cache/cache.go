package cache

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// Client wraps redis.Client but fails safe by swallowing connectivity errors.
// A Client created without an address is disabled and every counter reads zero.
type Client struct {
	client *redis.Client
}

// New creates a new Redis client. An empty addr yields a disabled client.
func New(addr, password string, db int) *Client {
	if addr == "" {
		return &Client{}
	}
	opts := &redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	}
	return &Client{client: redis.NewClient(opts)}
}

// Enabled reports whether the client is backed by a Redis connection.
func (c *Client) Enabled() bool {
	return c != nil && c.client != nil
}

// Incr increments the counter at key and, in the same transaction, starts its
// TTL unless one is already running. It reports 0 when redis is unavailable.
// EXPIRE NX needs Redis 7 or newer.
func (c *Client) Incr(ctx context.Context, key string, ttl time.Duration) (int64, error) {
	if !c.Enabled() {
		return 0, nil
	}
	pipe := c.client.TxPipeline()
	incr := pipe.Incr(ctx, key)
	pipe.ExpireNX(ctx, key, ttl)
	if _, err := pipe.Exec(ctx); err != nil {
		return 0, nil
	}
	return incr.Val(), nil
}

// Count returns the integer stored at key, or 0 when missing or redis unavailable.
func (c *Client) Count(ctx context.Context, key string) (int64, error) {
	if !c.Enabled() {
		return 0, nil
	}
	n, err := c.client.Get(ctx, key).Int64()
	if err != nil {
		return 0, nil
	}
	return n, nil
}

// Delete removes a key, ignoring redis errors.
func (c *Client) Delete(ctx context.Context, key string) error {
	if !c.Enabled() {
		return nil
	}
	_ = c.client.Del(ctx, key).Err()
	return nil
}

// Close releases the underlying connection pool.
func (c *Client) Close() error {
	if !c.Enabled() {
		return nil
	}
	return c.client.Close()
}
