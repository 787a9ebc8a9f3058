// Package redis wraps the go-redis client used for session snapshots.
package redis

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

// Options tunes a client dialed from a plain host:port address.
// URL addresses carry their own settings and ignore Options.
type Options struct {
	Password    string
	DB          int
	MaxRetries  int
	DialTimeout time.Duration
	UseTLS      bool
}

// Dial builds a client for addr, which is either host:port or a
// redis:// / rediss:// URL. No connection is made until first use; call
// Ping to fail fast on a bad endpoint.
func Dial(addr string, opts Options) (Client, error) {
	addr = strings.TrimSpace(addr)
	if addr == "" {
		return nil, errors.New("redis: address is required")
	}

	if strings.Contains(addr, "://") {
		parsed, err := redis.ParseURL(addr)
		if err != nil {
			return nil, fmt.Errorf("redis: invalid url: %w", err)
		}
		return redis.NewClient(parsed), nil
	}

	ro := &redis.Options{
		Addr:        addr,
		Password:    opts.Password,
		DB:          opts.DB,
		MaxRetries:  opts.MaxRetries,
		DialTimeout: opts.DialTimeout,
	}
	if opts.UseTLS {
		ro.TLSConfig = &tls.Config{MinVersion: tls.VersionTLS12}
	}
	return redis.NewClient(ro), nil
}

// Ping checks connectivity, bounded by timeout when positive
func Ping(ctx context.Context, client Client, timeout time.Duration) error {
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}
	return client.Ping(ctx).Err()
}
