// Package redis backs the profile cache. The cache is best effort: callers
// treat every error from it as a miss.
package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	defaultTimeout    = 5 * time.Second
	defaultOpTimeout  = 500 * time.Millisecond
	defaultClientName = "realty-api"
)

// Config holds the cache connection settings.
type Config struct {
	Addr     string
	Password string
	DB       int
	// Timeout bounds the initial ping.
	Timeout time.Duration
	// OpTimeout bounds every read and write so a slow cache never stalls a
	// profile request for long.
	OpTimeout time.Duration
}

// Connect opens the cache client and pings it once.
func Connect(ctx context.Context, cfg Config) (*redis.Client, error) {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	opTimeout := cfg.OpTimeout
	if opTimeout <= 0 {
		opTimeout = defaultOpTimeout
	}

	client := redis.NewClient(&redis.Options{
		Addr:         cfg.Addr,
		Password:     cfg.Password,
		DB:           cfg.DB,
		ClientName:   defaultClientName,
		ReadTimeout:  opTimeout,
		WriteTimeout: opTimeout,
	})

	pingCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping %s: %w", cfg.Addr, err)
	}

	return client, nil
}
