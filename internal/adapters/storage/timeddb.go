package storage

import (
	"context"
	"database/sql"
	"time"

	"github.com/rs/zerolog/log"

	"fringe/internal/adapters/metrics"
)

// SQLDB is the database interface used by all stores.
// Both *sql.DB and *TimedDB satisfy this interface.
type SQLDB interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
	BeginTx(ctx context.Context, opts *sql.TxOptions) (*sql.Tx, error)
}

// Compile-time check that *sql.DB satisfies SQLDB.
var _ SQLDB = (*sql.DB)(nil)

// DefaultSlowQueryMs is the default threshold for slow query warnings.
const DefaultSlowQueryMs = 50

// TimedDB wraps a *sql.DB to record query durations to Prometheus and
// log slow queries. Satisfies SQLDB so it can be passed to any store.
type TimedDB struct {
	db        *sql.DB
	threshold time.Duration
}

// Compile-time check that *TimedDB satisfies SQLDB.
var _ SQLDB = (*TimedDB)(nil)

// NewTimedDB wraps a *sql.DB with timing instrumentation.
// PRE: db is a valid database connection; slowQueryMs > 0
// POST: Returns a TimedDB that records durations and warns on slow queries
func NewTimedDB(db *sql.DB, slowQueryMs int) *TimedDB {
	if slowQueryMs <= 0 {
		slowQueryMs = DefaultSlowQueryMs
	}
	return &TimedDB{
		db:        db,
		threshold: time.Duration(slowQueryMs) * time.Millisecond,
	}
}

// RawDB returns the underlying *sql.DB (needed for migrations and pool config).
func (t *TimedDB) RawDB() *sql.DB {
	return t.db
}

// observe records a query timing and warns when it crosses the slow threshold.
func (t *TimedDB) observe(op, query string, start time.Time) {
	elapsed := time.Since(start)
	metrics.DBQueryDuration.WithLabelValues(op).Observe(elapsed.Seconds())
	if elapsed >= t.threshold {
		log.Warn().
			Str("op", op).
			Str("query", truncateQuery(query)).
			Dur("elapsed", elapsed).
			Msg("slow query")
	}
}

// ExecContext runs a statement with timing instrumentation.
func (t *TimedDB) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	start := time.Now()
	res, err := t.db.ExecContext(ctx, query, args...)
	t.observe("exec", query, start)
	return res, err
}

// QueryContext runs a query with timing instrumentation.
func (t *TimedDB) QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	start := time.Now()
	rows, err := t.db.QueryContext(ctx, query, args...)
	t.observe("query", query, start)
	return rows, err
}

// QueryRowContext runs a single-row query with timing instrumentation.
func (t *TimedDB) QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row {
	start := time.Now()
	row := t.db.QueryRowContext(ctx, query, args...)
	t.observe("query_row", query, start)
	return row
}

// BeginTx starts a transaction on the underlying connection.
func (t *TimedDB) BeginTx(ctx context.Context, opts *sql.TxOptions) (*sql.Tx, error) {
	return t.db.BeginTx(ctx, opts)
}

// truncateQuery keeps slow-query log lines readable.
func truncateQuery(q string) string {
	const max = 120
	if len(q) <= max {
		return q
	}
	return q[:max] + "..."
}
