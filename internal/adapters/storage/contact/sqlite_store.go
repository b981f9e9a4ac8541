package contact

import (
	"context"
	"database/sql"
	"time"

	"fringe/internal/adapters/storage"
	domain "fringe/internal/domain/contact"
)

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db storage.SQLDB
}

// NewSQLiteStore creates a new SQLiteStore.
func NewSQLiteStore(db storage.SQLDB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

const messageColumns = `id, name, email, phone, subject, body, status, received_at, read_at, replied_at`

// GetByID retrieves a message by ID.
// PRE: id is non-empty
// POST: Returns the entity or an error if not found
func (s *SQLiteStore) GetByID(ctx context.Context, id string) (domain.Message, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+messageColumns+` FROM contact_message WHERE id = ?`, id)
	return scanMessage(row.Scan)
}

// Save inserts or updates a message.
// PRE: entity has been validated
// POST: Entity is persisted (insert or update)
func (s *SQLiteStore) Save(ctx context.Context, m domain.Message) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO contact_message (id, name, email, phone, subject, body, status, received_at, read_at, replied_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
		   name=excluded.name, email=excluded.email, phone=excluded.phone, subject=excluded.subject,
		   body=excluded.body, status=excluded.status, read_at=excluded.read_at, replied_at=excluded.replied_at`,
		m.ID, m.Name, m.Email, m.Phone, m.Subject, m.Body, m.Status,
		m.ReceivedAt.Format(storage.TimeLayout), storage.NullableTime(m.ReadAt), storage.NullableTime(m.RepliedAt))
	return err
}

// Delete removes a message by ID.
func (s *SQLiteStore) Delete(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM contact_message WHERE id = ?`, id)
	return err
}

// List returns messages matching the filter, newest first.
func (s *SQLiteStore) List(ctx context.Context, filter ListFilter) ([]domain.Message, error) {
	query := `SELECT ` + messageColumns + ` FROM contact_message` + filterClause(filter)
	args := filterArgs(filter)
	query += ` ORDER BY received_at DESC`
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

	var messages []domain.Message
	for rows.Next() {
		m, err := scanMessage(rows.Scan)
		if err != nil {
			return nil, err
		}
		messages = append(messages, m)
	}
	return messages, rows.Err()
}

// Count returns the number of messages matching the filter.
func (s *SQLiteStore) Count(ctx context.Context, filter ListFilter) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM contact_message`+filterClause(filter), filterArgs(filter)...).Scan(&n)
	return n, err
}

// CountReceivedBetween counts messages received in [from, to).
// PRE: from is before to
// POST: Returns the count for the window
func (s *SQLiteStore) CountReceivedBetween(ctx context.Context, from, to time.Time) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM contact_message WHERE received_at >= ? AND received_at < ?`,
		from.UTC().Format(storage.TimeLayout), to.UTC().Format(storage.TimeLayout)).Scan(&n)
	return n, err
}

func filterClause(filter ListFilter) string {
	clause := ` WHERE 1=1`
	if filter.Status != "" {
		clause += ` AND status = ?`
	}
	if filter.Search != "" {
		clause += ` AND (name LIKE ? OR email LIKE ? OR subject LIKE ?)`
	}
	return clause
}

func filterArgs(filter ListFilter) []any {
	args := []any{}
	if filter.Status != "" {
		args = append(args, filter.Status)
	}
	if filter.Search != "" {
		like := "%" + filter.Search + "%"
		args = append(args, like, like, like)
	}
	return args
}

func scanMessage(scan func(dest ...any) error) (domain.Message, error) {
	var m domain.Message
	var receivedAt string
	var readAt, repliedAt sql.NullString
	err := scan(&m.ID, &m.Name, &m.Email, &m.Phone, &m.Subject, &m.Body, &m.Status, &receivedAt, &readAt, &repliedAt)
	if err != nil {
		return domain.Message{}, err
	}
	m.ReceivedAt = storage.ParseTime(receivedAt, "received_at", m.ID)
	m.ReadAt = storage.ParseNullableTime(readAt, "read_at", m.ID)
	m.RepliedAt = storage.ParseNullableTime(repliedAt, "replied_at", m.ID)
	return m, nil
}
