package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"credo-consent/internal/platform/config"
)

// Client is the shared connection backing the interaction session store.
type Client struct {
	*redis.Client
}

// New dials Redis and verifies the connection with a PING.
// It returns (nil, nil) when no URL is configured so callers can fall back to
// the in-memory interaction store.
func New(ctx context.Context, cfg config.RedisConfig) (*Client, error) {
	if cfg.URL == "" {
		return nil, nil
	}
	opts, err := options(cfg)
	if err != nil {
		return nil, err
	}

	rdb := redis.NewClient(opts)
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("ping redis at %s: %w", opts.Addr, err)
	}
	return &Client{Client: rdb}, nil
}

func options(cfg config.RedisConfig) (*redis.Options, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("parse redis URL: %w", err)
	}
	opts.MinIdleConns = cfg.MinIdleConns
	if cfg.PoolSize > 0 {
		opts.PoolSize = cfg.PoolSize
	}
	override(&opts.DialTimeout, cfg.DialTimeout)
	override(&opts.ReadTimeout, cfg.ReadTimeout)
	override(&opts.WriteTimeout, cfg.WriteTimeout)
	return opts, nil
}

func override(dst *time.Duration, v time.Duration) {
	if v > 0 {
		*dst = v
	}
}

// Health reports whether the server still answers PING.
func (c *Client) Health(ctx context.Context) error {
	if err := c.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis unhealthy: %w", err)
	}
	return nil
}
