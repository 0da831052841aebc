// Package batchstore keeps finished batches so clients can fetch them again
// after the generate request returns.
package batchstore

import (
	"context"

	"onmodel/internal/domain"
)

// Store persists finished batches. Get returns domain.ErrNotFound for unknown
// or expired IDs.
type Store interface {
	Save(ctx context.Context, batch domain.Batch) error
	Get(ctx context.Context, id string) (domain.Batch, error)
}

// Purger is implemented by stores that need an explicit expiry sweep.
type Purger interface {
	PurgeExpired(ctx context.Context) (int64, error)
}
