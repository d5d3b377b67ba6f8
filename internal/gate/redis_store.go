package gate

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

const submittedKeyPrefix = "gate:submitted:"

// RedisStore keeps the submitted flag in Redis so gate state survives
// reloads across multiple API instances. The TTL approximates the
// lifetime of a browser session.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisStore(client *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{client: client, ttl: ttl}
}

func (s *RedisStore) IsSubmitted(ctx context.Context, sessionID string) (bool, error) {
	val, err := s.client.Get(ctx, submittedKeyPrefix+sessionID).Result()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return val == "true", nil
}

func (s *RedisStore) MarkSubmitted(ctx context.Context, sessionID string) error {
	return s.client.Set(ctx, submittedKeyPrefix+sessionID, "true", s.ttl).Err()
}
