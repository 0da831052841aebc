package infra

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

type recordingExecutor struct {
	lastQuery string
	lastArgs  []any
}

func (r *recordingExecutor) Exec(ctx context.Context, query string, args ...any) (pgconn.CommandTag, error) {
	r.lastQuery = query
	r.lastArgs = args
	return pgconn.NewCommandTag("INSERT 0 1"), nil
}

func (r *recordingExecutor) QueryRow(ctx context.Context, query string, args ...any) pgx.Row {
	r.lastQuery = query
	r.lastArgs = args
	return errorRow{err: pgx.ErrNoRows}
}

func TestExtractMarker(t *testing.T) {
	marker, body, err := ExtractMarker("--sql 0f6a2d7e-31c4-4f0e-9a57-3c1d2b7e8a90\nselect 1;")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if marker != "0f6a2d7e-31c4-4f0e-9a57-3c1d2b7e8a90" {
		t.Fatalf("marker = %q", marker)
	}
	if body != "select 1;" {
		t.Fatalf("body = %q", body)
	}

	if _, _, err := ExtractMarker("select 1;"); !errors.Is(err, ErrMissingMarker) {
		t.Fatalf("expected ErrMissingMarker, got %v", err)
	}
}

func TestSQLRunnerStripsMarker(t *testing.T) {
	exec := &recordingExecutor{}
	runner := NewSQLRunner(exec, NewLogger("test"))

	if _, err := runner.Exec(context.Background(), "--sql 0f6a2d7e-31c4-4f0e-9a57-3c1d2b7e8a90\ndelete from t where id = $1;", "x"); err != nil {
		t.Fatalf("Exec error: %v", err)
	}
	if exec.lastQuery != "delete from t where id = $1;" {
		t.Fatalf("marker not stripped: %q", exec.lastQuery)
	}

	err := runner.QueryRow(context.Background(), "--sql 0f6a2d7e-31c4-4f0e-9a57-3c1d2b7e8a90\nselect 1;").Scan()
	if !IsNoRows(err) {
		t.Fatalf("expected no rows, got %v", err)
	}

	if _, err := runner.Exec(context.Background(), "select 1;"); err == nil {
		t.Fatalf("expected error for unmarked query")
	}
}
