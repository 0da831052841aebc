package batchstore

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"onmodel/internal/domain"
	"onmodel/internal/infra"
	"onmodel/internal/sqlinline"
)

// PostgresStore persists batches in the onmodel_batches table.
type PostgresStore struct {
	db  infra.SQLExecutor
	ttl time.Duration
	now func() time.Time
}

// NewPostgresStore wraps a marker-checking runner. A non-positive ttl keeps
// batches forever.
func NewPostgresStore(db infra.SQLExecutor, ttl time.Duration) *PostgresStore {
	return &PostgresStore{db: db, ttl: ttl, now: time.Now}
}

// EnsureSchema creates the table when it does not exist yet.
func (s *PostgresStore) EnsureSchema(ctx context.Context) error {
	if _, err := s.db.Exec(ctx, sqlinline.QCreateBatchesTable); err != nil {
		return fmt.Errorf("batchstore: ensure schema: %w", err)
	}
	return nil
}

func (s *PostgresStore) Save(ctx context.Context, batch domain.Batch) error {
	params, err := json.Marshal(batch.Params)
	if err != nil {
		return fmt.Errorf("batchstore: marshal params: %w", err)
	}
	results, err := json.Marshal(batch.Results)
	if err != nil {
		return fmt.Errorf("batchstore: marshal results: %w", err)
	}
	succeeded, failed := batch.Results.Counts()

	createdAt := batch.CreatedAt
	if createdAt.IsZero() {
		createdAt = s.now()
	}
	var expiresAt *time.Time
	if s.ttl > 0 {
		t := createdAt.Add(s.ttl)
		expiresAt = &t
	}

	if _, err := s.db.Exec(ctx, sqlinline.QInsertBatch,
		batch.ID,
		batch.RequestID,
		string(params),
		string(results),
		succeeded,
		failed,
		createdAt,
		expiresAt,
		batch.ReferenceKey,
	); err != nil {
		return fmt.Errorf("batchstore: insert batch: %w", err)
	}
	return nil
}

func (s *PostgresStore) Get(ctx context.Context, id string) (domain.Batch, error) {
	var (
		batch   domain.Batch
		params  []byte
		results []byte
	)
	err := s.db.QueryRow(ctx, sqlinline.QGetBatch, id).Scan(
		&batch.ID,
		&batch.RequestID,
		&params,
		&results,
		&batch.ReferenceKey,
		&batch.CreatedAt,
	)
	if err != nil {
		if infra.IsNoRows(err) {
			return domain.Batch{}, domain.ErrNotFound
		}
		return domain.Batch{}, fmt.Errorf("batchstore: get batch: %w", err)
	}
	if err := json.Unmarshal(params, &batch.Params); err != nil {
		return domain.Batch{}, fmt.Errorf("batchstore: decode params: %w", err)
	}
	if err := json.Unmarshal(results, &batch.Results); err != nil {
		return domain.Batch{}, fmt.Errorf("batchstore: decode results: %w", err)
	}
	return batch, nil
}

// PurgeExpired deletes batches past their expiry and reports how many went.
func (s *PostgresStore) PurgeExpired(ctx context.Context) (int64, error) {
	tag, err := s.db.Exec(ctx, sqlinline.QPurgeExpiredBatches)
	if err != nil {
		return 0, fmt.Errorf("batchstore: purge expired: %w", err)
	}
	return tag.RowsAffected(), nil
}
