package idgen

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-redis/redis/v8"
)

// DefaultRedisPrefix namespaces the counter keys.
const DefaultRedisPrefix = "sousolidario:seq:"

// RedisAllocator uses INCR on one key per kind.
type RedisAllocator struct {
	c      *redis.Client
	prefix string
}

func NewRedisAllocator(c *redis.Client, prefix string) *RedisAllocator {
	if prefix == "" {
		prefix = DefaultRedisPrefix
	}
	return &RedisAllocator{c: c, prefix: prefix}
}

func (a *RedisAllocator) Next(ctx context.Context, kind string) (int64, error) {
	kind = strings.TrimSpace(kind)
	if kind == "" {
		return 0, ErrEmptyKind
	}
	n, err := a.c.Incr(ctx, a.prefix+kind).Result()
	if err != nil {
		return 0, fmt.Errorf("idgen: incr %s: %w", kind, err)
	}
	return n, nil
}
