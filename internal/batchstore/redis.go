package batchstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"onmodel/internal/domain"
)

const redisKeyPrefix = "onmodel:batch:"

// redisKV is the slice of the go-redis client the store uses.
type redisKV interface {
	Set(ctx context.Context, key string, value any, expiration time.Duration) *redis.StatusCmd
	Get(ctx context.Context, key string) *redis.StringCmd
}

// RedisStore keeps batches as JSON strings with a TTL.
type RedisStore struct {
	client redisKV
	ttl    time.Duration
}

// NewRedisStore accepts a *redis.Client. A non-positive ttl keeps keys forever.
func NewRedisStore(client redisKV, ttl time.Duration) *RedisStore {
	if ttl < 0 {
		ttl = 0
	}
	return &RedisStore{client: client, ttl: ttl}
}

func (s *RedisStore) Save(ctx context.Context, batch domain.Batch) error {
	raw, err := json.Marshal(batch)
	if err != nil {
		return fmt.Errorf("batchstore: marshal batch: %w", err)
	}
	if err := s.client.Set(ctx, redisKeyPrefix+batch.ID, raw, s.ttl).Err(); err != nil {
		return fmt.Errorf("batchstore: redis set: %w", err)
	}
	return nil
}

func (s *RedisStore) Get(ctx context.Context, id string) (domain.Batch, error) {
	raw, err := s.client.Get(ctx, redisKeyPrefix+id).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return domain.Batch{}, domain.ErrNotFound
		}
		return domain.Batch{}, fmt.Errorf("batchstore: redis get: %w", err)
	}
	var batch domain.Batch
	if err := json.Unmarshal(raw, &batch); err != nil {
		return domain.Batch{}, fmt.Errorf("batchstore: decode batch: %w", err)
	}
	return batch, nil
}
