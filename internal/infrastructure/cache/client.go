// Package cache holds the Redis-backed pieces of the service.
package cache

import (
	"context"
	"fmt"
	"time"

	"drivebuddy-admin/internal/config"

	"github.com/redis/go-redis/v9"
)

const dialTimeout = 5 * time.Second

// NewClient opens a Redis client and pings it once.
func NewClient(cfg config.RedisConfig) (*redis.Client, error) {
	cli := redis.NewClient(&redis.Options{
		Addr:        cfg.Addr,
		Password:    cfg.Password,
		DB:          cfg.DB,
		DialTimeout: dialTimeout,
	})

	ctx, cancel := context.WithTimeout(context.Background(), dialTimeout)
	defer cancel()
	if err := cli.Ping(ctx).Err(); err != nil {
		_ = cli.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return cli, nil
}
