package dispatch

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// Guard suppresses duplicate submissions for the same object. A nil Guard
// disables deduplication, which is the default: the upstream event source
// gives no idempotency promise either way.
type Guard interface {
	// FirstSeen reports whether this is the first event observed for key.
	FirstSeen(ctx context.Context, key string) (bool, error)
}

// BuildGuard returns the Redis guard when the policy enables deduplication
// and an address is configured; otherwise nil, leaving deduplication off.
func BuildGuard(enabled bool, addr, password string) *RedisGuard {
	if !enabled || addr == "" {
		return nil
	}
	return NewRedisGuard(addr, password)
}

// RedisGuard implements Guard with a SETNX marker per object key.
type RedisGuard struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisGuard(addr, password string) *RedisGuard {
	return &RedisGuard{
		client: redis.NewClient(&redis.Options{
			Addr:     addr,
			Password: password,
		}),
		ttl: 24 * time.Hour,
	}
}

func (g *RedisGuard) FirstSeen(ctx context.Context, key string) (bool, error) {
	return g.client.SetNX(ctx, "dispatch:seen:"+key, 1, g.ttl).Result()
}

func (g *RedisGuard) Close() error {
	return g.client.Close()
}
