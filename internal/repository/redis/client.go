// Package redis implements the primary session store: one JSON document per
// session key with a rolling TTL.
package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/anuragkar/scambait/internal/config"
)

const dialTimeout = 5 * time.Second

// Client wraps the Redis client
type Client struct {
	rdb *redis.Client
}

// NewClient creates a Redis client and verifies the connection with a ping.
// On ping failure the client is returned alongside the error: go-redis
// connects lazily, so a Redis that comes up later is reached on the next
// command without a restart.
func NewClient(cfg config.RedisConfig) (*Client, error) {
	var opts *redis.Options
	if cfg.URL != "" {
		parsed, err := redis.ParseURL(cfg.URL)
		if err != nil {
			return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
		}
		opts = parsed
	} else {
		opts = &redis.Options{
			Addr:     cfg.Addr(),
			Password: cfg.Password,
			DB:       cfg.DB,
		}
	}
	opts.DialTimeout = dialTimeout
	opts.ReadTimeout = dialTimeout
	opts.WriteTimeout = dialTimeout

	client := &Client{rdb: redis.NewClient(opts)}

	ctx, cancel := context.WithTimeout(context.Background(), dialTimeout)
	defer cancel()
	if err := client.rdb.Ping(ctx).Err(); err != nil {
		return client, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	return client, nil
}

// Close closes the Redis connection
func (c *Client) Close() error {
	return c.rdb.Close()
}

// Client returns the underlying Redis client
func (c *Client) Client() *redis.Client {
	return c.rdb
}
