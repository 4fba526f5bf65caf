package loader

import (
	"context"
	"errors"

	"github.com/redis/go-redis/v9"
)

// RedisSource is a Source[string, string] backed by a Redis GET. Put behind
// a Loader it collapses a thundering herd for a hot key into a single
// round-trip.
type RedisSource struct {
	client *redis.Client
}

// NewRedisSource creates a RedisSource over client. Panics if client is nil.
func NewRedisSource(client *redis.Client) *RedisSource {
	if client == nil {
		panic("loader: redis client must not be nil")
	}
	return &RedisSource{client: client}
}

// Load fetches key from Redis. A missing key is reported as ErrNotFound.
func (s *RedisSource) Load(ctx context.Context, key string) (string, error) {
	val, err := s.client.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", err
	}
	return val, nil
}
