// Package cache provides a small Redis-backed cache used to memoize
// read-side queries such as the daily report.
package cache

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

// Cache is the port the HTTP layer depends on; Redis implements it.
type Cache interface {
	Set(ctx context.Context, key, value string, ttl time.Duration) error
	Get(ctx context.Context, key string) (string, bool, error)
	Key(parts ...string) string
}

// Redis caches values under service-prefixed keys.
type Redis struct {
	client *redis.Client
	prefix string
}

// NewRedis connects to the given address. The prefix namespaces keys so
// several services can share one instance.
func NewRedis(addr, prefix string) *Redis {
	return &Redis{
		client: redis.NewClient(&redis.Options{Addr: addr}),
		prefix: prefix,
	}
}

func (r *Redis) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	return r.client.Set(ctx, key, value, ttl).Err()
}

// Get returns the cached value; the bool is false on a miss.
func (r *Redis) Get(ctx context.Context, key string) (string, bool, error) {
	val, err := r.client.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return val, true, nil
}

func (r *Redis) Key(parts ...string) string {
	return strings.Join(append([]string{r.prefix}, parts...), ":")
}
