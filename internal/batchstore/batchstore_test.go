package batchstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/redis/go-redis/v9"

	"onmodel/internal/domain"
	"onmodel/internal/infra"
)

func sampleBatch() domain.Batch {
	return domain.Batch{
		ID:        "batch-1",
		RequestID: "req-1",
		Params:    domain.BatchParams{ProductName: "Silk Dress", Vibe: "luxury", TargetCustomer: "genz-trend", PricePoint: "premium"},
		Results: domain.BatchResult{
			{ID: "c1", Status: domain.JobStatusSucceeded, ImageURL: "https://x/1.png", Prompt: "p", NegativePrompt: "n", Seed: 11},
			domain.FailedResult("c2", "Generation timed out."),
		},
		CreatedAt: time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC),
	}
}

func TestMemoryStoreRoundTrip(t *testing.T) {
	store := NewMemoryStore(time.Hour)
	ctx := context.Background()

	if _, err := store.Get(ctx, "missing"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	batch := sampleBatch()
	if err := store.Save(ctx, batch); err != nil {
		t.Fatalf("Save error: %v", err)
	}
	batch.Results[0].ImageURL = "mutated"

	got, err := store.Get(ctx, "batch-1")
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if got.Results[0].ImageURL != "https://x/1.png" {
		t.Fatalf("stored batch aliased caller slice")
	}
	if len(got.Results) != 2 || got.Params.ProductName != "Silk Dress" {
		t.Fatalf("unexpected batch: %+v", got)
	}
}

func TestMemoryStoreExpires(t *testing.T) {
	store := NewMemoryStore(20 * time.Millisecond)
	if err := store.Save(context.Background(), sampleBatch()); err != nil {
		t.Fatalf("Save error: %v", err)
	}
	time.Sleep(40 * time.Millisecond)
	if _, err := store.Get(context.Background(), "batch-1"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected expired batch, got %v", err)
	}
}

func TestMemoryStoreZeroTTLKeepsBatches(t *testing.T) {
	for _, ttl := range []time.Duration{0, -time.Minute} {
		store := NewMemoryStore(ttl)
		if err := store.Save(context.Background(), sampleBatch()); err != nil {
			t.Fatalf("Save error: %v", err)
		}
		_, expires, ok := store.cache.GetWithExpiration("batch-1")
		if !ok {
			t.Fatalf("ttl %v: batch missing", ttl)
		}
		if !expires.IsZero() {
			t.Fatalf("ttl %v: batch expires at %v, want never", ttl, expires)
		}
	}
}

type execCall struct {
	query string
	args  []any
}

type fakeRow struct {
	values []any
	err    error
}

func (r fakeRow) Scan(dest ...any) error {
	if r.err != nil {
		return r.err
	}
	if len(dest) != len(r.values) {
		return fmt.Errorf("scan: %d dest for %d values", len(dest), len(r.values))
	}
	for i, d := range dest {
		switch p := d.(type) {
		case *string:
			*p = r.values[i].(string)
		case *[]byte:
			*p = r.values[i].([]byte)
		case *time.Time:
			*p = r.values[i].(time.Time)
		default:
			return fmt.Errorf("scan: unsupported dest %T", d)
		}
	}
	return nil
}

type fakeExecutor struct {
	execs []execCall
	row   fakeRow
	tag   pgconn.CommandTag
}

func (f *fakeExecutor) Exec(_ context.Context, query string, args ...any) (pgconn.CommandTag, error) {
	f.execs = append(f.execs, execCall{query: query, args: args})
	return f.tag, nil
}

func (f *fakeExecutor) QueryRow(_ context.Context, query string, args ...any) pgx.Row {
	f.execs = append(f.execs, execCall{query: query, args: args})
	return f.row
}

func TestPostgresStoreSave(t *testing.T) {
	exec := &fakeExecutor{tag: pgconn.NewCommandTag("INSERT 0 1")}
	runner := infra.NewSQLRunner(exec, infra.NewLogger("test"))
	store := NewPostgresStore(runner, time.Hour)

	if err := store.Save(context.Background(), sampleBatch()); err != nil {
		t.Fatalf("Save error: %v", err)
	}
	if len(exec.execs) != 1 {
		t.Fatalf("exec count = %d", len(exec.execs))
	}
	call := exec.execs[0]
	if strings.HasPrefix(call.query, "--sql") || !strings.Contains(call.query, "insert into onmodel_batches") {
		t.Fatalf("unexpected query: %q", call.query)
	}
	if call.args[0] != "batch-1" || call.args[1] != "req-1" {
		t.Fatalf("unexpected ids: %v", call.args[:2])
	}
	if call.args[4] != 1 || call.args[5] != 1 {
		t.Fatalf("succeeded/failed = %v/%v", call.args[4], call.args[5])
	}
	var results []domain.JobResult
	if err := json.Unmarshal([]byte(call.args[3].(string)), &results); err != nil || len(results) != 2 {
		t.Fatalf("results arg = %v (%v)", call.args[3], err)
	}
	expires, ok := call.args[7].(*time.Time)
	if !ok || !expires.Equal(sampleBatch().CreatedAt.Add(time.Hour)) {
		t.Fatalf("expires_at = %v", call.args[7])
	}
}

func TestPostgresStoreGet(t *testing.T) {
	batch := sampleBatch()
	params, _ := json.Marshal(batch.Params)
	results, _ := json.Marshal(batch.Results)
	exec := &fakeExecutor{row: fakeRow{values: []any{batch.ID, batch.RequestID, params, results, "references/2024/05/batch-1.png", batch.CreatedAt}}}
	store := NewPostgresStore(infra.NewSQLRunner(exec, infra.NewLogger("test")), 0)

	got, err := store.Get(context.Background(), "batch-1")
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if got.ReferenceKey != "references/2024/05/batch-1.png" {
		t.Fatalf("reference key = %q", got.ReferenceKey)
	}
	if got.ID != "batch-1" || got.Params.Vibe != "luxury" || len(got.Results) != 2 || got.Results[1].Error != "Generation timed out." {
		t.Fatalf("unexpected batch: %+v", got)
	}

	exec.row = fakeRow{err: pgx.ErrNoRows}
	if _, err := store.Get(context.Background(), "missing"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestPostgresStorePurgeExpired(t *testing.T) {
	exec := &fakeExecutor{tag: pgconn.NewCommandTag("DELETE 3")}
	store := NewPostgresStore(infra.NewSQLRunner(exec, infra.NewLogger("test")), time.Hour)

	n, err := store.PurgeExpired(context.Background())
	if err != nil || n != 3 {
		t.Fatalf("PurgeExpired = %d, %v", n, err)
	}
	if err := store.EnsureSchema(context.Background()); err != nil {
		t.Fatalf("EnsureSchema error: %v", err)
	}
	if !strings.Contains(exec.execs[1].query, "create table if not exists onmodel_batches") {
		t.Fatalf("unexpected schema query: %q", exec.execs[1].query)
	}
}

type fakeRedis struct {
	data map[string]string
	ttls map[string]time.Duration
}

func newFakeRedis() *fakeRedis {
	return &fakeRedis{data: map[string]string{}, ttls: map[string]time.Duration{}}
}

func (f *fakeRedis) Set(_ context.Context, key string, value any, expiration time.Duration) *redis.StatusCmd {
	switch v := value.(type) {
	case []byte:
		f.data[key] = string(v)
	case string:
		f.data[key] = v
	}
	f.ttls[key] = expiration
	return redis.NewStatusResult("OK", nil)
}

func (f *fakeRedis) Get(_ context.Context, key string) *redis.StringCmd {
	v, ok := f.data[key]
	if !ok {
		return redis.NewStringResult("", redis.Nil)
	}
	return redis.NewStringResult(v, nil)
}

func TestRedisStoreRoundTrip(t *testing.T) {
	kv := newFakeRedis()
	store := NewRedisStore(kv, 2*time.Hour)
	ctx := context.Background()

	if err := store.Save(ctx, sampleBatch()); err != nil {
		t.Fatalf("Save error: %v", err)
	}
	if kv.ttls["onmodel:batch:batch-1"] != 2*time.Hour {
		t.Fatalf("ttl = %v", kv.ttls["onmodel:batch:batch-1"])
	}
	got, err := store.Get(ctx, "batch-1")
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if got.RequestID != "req-1" || len(got.Results) != 2 || !got.CreatedAt.Equal(sampleBatch().CreatedAt) {
		t.Fatalf("unexpected batch: %+v", got)
	}
	if _, err := store.Get(ctx, "missing"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
