package infra

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// SQLExecutor is the subset of pgx used by the stores. Tests substitute fakes.
type SQLExecutor interface {
	Exec(ctx context.Context, query string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, query string, args ...any) pgx.Row
}

// ErrMissingMarker is returned for queries without a "--sql <uuid>" first line.
var ErrMissingMarker = errors.New("sql marker missing or invalid")

var markerRegexp = regexp.MustCompile(`^--sql [0-9a-f]{8}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{12}$`)

// SQLRunner executes marked queries and logs each one by marker, so log lines
// can be traced back to a query without printing SQL text.
type SQLRunner struct {
	db     SQLExecutor
	logger Logger
}

// NewSQLRunner wraps db (usually a *pgxpool.Pool).
func NewSQLRunner(db SQLExecutor, logger Logger) *SQLRunner {
	return &SQLRunner{db: db, logger: logger}
}

func (r *SQLRunner) Exec(ctx context.Context, query string, args ...any) (pgconn.CommandTag, error) {
	marker, body, err := ExtractMarker(query)
	if err != nil {
		return pgconn.CommandTag{}, err
	}
	started := time.Now()
	tag, err := r.db.Exec(ctx, body, args...)
	if err != nil {
		r.logger.Error().Err(err).Str("sql", marker).Msg("sql exec failed")
		return tag, err
	}
	r.logger.Debug().Str("sql", marker).Dur("elapsed", time.Since(started)).Int64("rows", tag.RowsAffected()).Msg("sql exec")
	return tag, nil
}

func (r *SQLRunner) QueryRow(ctx context.Context, query string, args ...any) pgx.Row {
	marker, body, err := ExtractMarker(query)
	if err != nil {
		return errorRow{err: err}
	}
	r.logger.Debug().Str("sql", marker).Msg("sql query_row")
	return loggingRow{row: r.db.QueryRow(ctx, body, args...), logger: r.logger, marker: marker}
}

type loggingRow struct {
	row    pgx.Row
	logger Logger
	marker string
}

func (l loggingRow) Scan(dest ...any) error {
	err := l.row.Scan(dest...)
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		l.logger.Error().Err(err).Str("sql", l.marker).Msg("sql scan failed")
	}
	return err
}

type errorRow struct {
	err error
}

func (e errorRow) Scan(dest ...any) error {
	return e.err
}

// ExtractMarker splits a marked query into its marker ID and executable body.
func ExtractMarker(query string) (string, string, error) {
	trimmed := strings.TrimSpace(query)
	markerLine, body, _ := strings.Cut(trimmed, "\n")
	markerLine = strings.TrimSpace(markerLine)
	if !markerRegexp.MatchString(markerLine) {
		return "", "", ErrMissingMarker
	}
	return strings.TrimPrefix(markerLine, "--sql "), body, nil
}

// IsNoRows reports whether err means the query matched nothing.
func IsNoRows(err error) bool {
	return errors.Is(err, pgx.ErrNoRows)
}

var _ SQLExecutor = (*SQLRunner)(nil)
