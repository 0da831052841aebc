package batchstore

import (
	"context"
	"time"

	"github.com/patrickmn/go-cache"

	"onmodel/internal/domain"
)

// MemoryStore keeps batches in process memory with a TTL.
type MemoryStore struct {
	cache *cache.Cache
}

// NewMemoryStore expires entries after ttl and sweeps twice per ttl. A
// non-positive ttl keeps batches until the process exits.
func NewMemoryStore(ttl time.Duration) *MemoryStore {
	if ttl <= 0 {
		return &MemoryStore{cache: cache.New(cache.NoExpiration, 0)}
	}
	return &MemoryStore{cache: cache.New(ttl, ttl/2)}
}

func (s *MemoryStore) Save(ctx context.Context, batch domain.Batch) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	stored := batch
	stored.Results = append(domain.BatchResult(nil), batch.Results...)
	s.cache.Set(batch.ID, stored, cache.DefaultExpiration)
	return nil
}

func (s *MemoryStore) Get(ctx context.Context, id string) (domain.Batch, error) {
	if err := ctx.Err(); err != nil {
		return domain.Batch{}, err
	}
	v, ok := s.cache.Get(id)
	if !ok {
		return domain.Batch{}, domain.ErrNotFound
	}
	batch := v.(domain.Batch)
	batch.Results = append(domain.BatchResult(nil), batch.Results...)
	return batch, nil
}
