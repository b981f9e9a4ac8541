package audit

import (
	"context"
	"time"

	"fringe/internal/adapters/storage"
	domain "fringe/internal/domain/audit"
)

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db storage.SQLDB
}

// NewSQLiteStore creates a new SQLiteStore.
func NewSQLiteStore(db storage.SQLDB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

const auditColumns = `id, timestamp, category, action, severity, actor_id, actor_email,
		resource_id, resource_type, description, ip_address`

// Record appends an audit event.
// PRE: event.ID and event.Timestamp are set
// POST: Event is persisted; events are never updated
func (s *SQLiteStore) Record(ctx context.Context, event domain.Event) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO audit_event (id, timestamp, category, action, severity, actor_id, actor_email,
		   resource_id, resource_type, description, ip_address)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		event.ID, event.Timestamp.UTC().Format(storage.TimeLayout), event.Category, event.Action,
		event.Severity, event.ActorID, event.ActorEmail, event.ResourceID, event.ResourceType,
		event.Description, event.IPAddress)
	return err
}

// List returns audit events matching the filter, newest first.
func (s *SQLiteStore) List(ctx context.Context, filter ListFilter) ([]domain.Event, error) {
	query := `SELECT ` + auditColumns + ` FROM audit_event` + filterClause(filter)
	args := filterArgs(filter)
	query += ` ORDER BY timestamp DESC`
	if filter.Limit > 0 {
		query += ` LIMIT ?`
		args = append(args, filter.Limit)
	}
	if filter.Offset > 0 {
		query += ` OFFSET ?`
		args = append(args, filter.Offset)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []domain.Event
	for rows.Next() {
		var event domain.Event
		var timestamp string
		if err := rows.Scan(&event.ID, &timestamp, &event.Category, &event.Action, &event.Severity,
			&event.ActorID, &event.ActorEmail, &event.ResourceID, &event.ResourceType,
			&event.Description, &event.IPAddress); err != nil {
			return nil, err
		}
		event.Timestamp = storage.ParseTime(timestamp, "timestamp", event.ID)
		events = append(events, event)
	}
	return events, rows.Err()
}

// Count returns the number of audit events matching the filter.
func (s *SQLiteStore) Count(ctx context.Context, filter ListFilter) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM audit_event`+filterClause(filter), filterArgs(filter)...).Scan(&n)
	return n, err
}

// DeleteOlderThan prunes events with timestamp before cutoff.
func (s *SQLiteStore) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	res, err := s.db.ExecContext(ctx,
		`DELETE FROM audit_event WHERE timestamp < ?`, cutoff.UTC().Format(storage.TimeLayout))
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func filterClause(filter ListFilter) string {
	clause := ` WHERE 1=1`
	if filter.Category != "" {
		clause += ` AND category = ?`
	}
	if filter.Action != "" {
		clause += ` AND action = ?`
	}
	if filter.ActorID != "" {
		clause += ` AND actor_id = ?`
	}
	if !filter.From.IsZero() {
		clause += ` AND timestamp >= ?`
	}
	if !filter.To.IsZero() {
		clause += ` AND timestamp < ?`
	}
	return clause
}

func filterArgs(filter ListFilter) []any {
	args := []any{}
	if filter.Category != "" {
		args = append(args, string(filter.Category))
	}
	if filter.Action != "" {
		args = append(args, string(filter.Action))
	}
	if filter.ActorID != "" {
		args = append(args, filter.ActorID)
	}
	if !filter.From.IsZero() {
		args = append(args, filter.From.UTC().Format(storage.TimeLayout))
	}
	if !filter.To.IsZero() {
		args = append(args, filter.To.UTC().Format(storage.TimeLayout))
	}
	return args
}
