package subscriber

import (
	"context"
	"database/sql"
	"time"

	"fringe/internal/adapters/storage"
	domain "fringe/internal/domain/subscriber"
)

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db storage.SQLDB
}

// NewSQLiteStore creates a new SQLiteStore.
func NewSQLiteStore(db storage.SQLDB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

const subscriberColumns = `id, email, name, source, status, subscribed_at, unsubscribed_at`

// GetByID retrieves a subscriber by ID.
// PRE: id is non-empty
// POST: Returns the entity or an error if not found
func (s *SQLiteStore) GetByID(ctx context.Context, id string) (domain.Subscriber, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+subscriberColumns+` FROM subscriber WHERE id = ?`, id)
	return scanSubscriber(row.Scan)
}

// GetByEmail retrieves a subscriber by email.
func (s *SQLiteStore) GetByEmail(ctx context.Context, email string) (domain.Subscriber, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+subscriberColumns+` FROM subscriber WHERE email = ?`, email)
	return scanSubscriber(row.Scan)
}

// Save inserts or updates a subscriber.
// PRE: entity has been validated
// POST: Entity is persisted (insert or update)
func (s *SQLiteStore) Save(ctx context.Context, sub domain.Subscriber) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO subscriber (id, email, name, source, status, subscribed_at, unsubscribed_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
		   email=excluded.email, name=excluded.name, source=excluded.source,
		   status=excluded.status, unsubscribed_at=excluded.unsubscribed_at`,
		sub.ID, sub.Email, sub.Name, sub.Source, sub.Status,
		sub.SubscribedAt.Format(storage.TimeLayout), storage.NullableTime(sub.UnsubscribedAt))
	return err
}

// Delete removes a subscriber by ID.
func (s *SQLiteStore) Delete(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM subscriber WHERE id = ?`, id)
	return err
}

// List returns subscribers matching the filter, newest first.
func (s *SQLiteStore) List(ctx context.Context, filter ListFilter) ([]domain.Subscriber, error) {
	query := `SELECT ` + subscriberColumns + ` FROM subscriber` + filterClause(filter)
	args := filterArgs(filter)
	query += ` ORDER BY subscribed_at DESC`
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
	return scanSubscribers(rows)
}

// Count returns the number of subscribers matching the filter.
func (s *SQLiteStore) Count(ctx context.Context, filter ListFilter) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM subscriber`+filterClause(filter), filterArgs(filter)...).Scan(&n)
	return n, err
}

// CountSubscribedBetween counts subscriptions started in [from, to).
func (s *SQLiteStore) CountSubscribedBetween(ctx context.Context, from, to time.Time) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM subscriber WHERE subscribed_at >= ? AND subscribed_at < ?`,
		from.UTC().Format(storage.TimeLayout), to.UTC().Format(storage.TimeLayout)).Scan(&n)
	return n, err
}

// ListActive returns all active subscribers ordered by email.
// POST: Only status='active' rows are returned
func (s *SQLiteStore) ListActive(ctx context.Context) ([]domain.Subscriber, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+subscriberColumns+` FROM subscriber WHERE status = ? ORDER BY email ASC`,
		domain.StatusActive)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanSubscribers(rows)
}

func filterClause(filter ListFilter) string {
	clause := ` WHERE 1=1`
	if filter.Status != "" {
		clause += ` AND status = ?`
	}
	if filter.Source != "" {
		clause += ` AND source = ?`
	}
	if filter.Search != "" {
		clause += ` AND (email LIKE ? OR name LIKE ?)`
	}
	return clause
}

func filterArgs(filter ListFilter) []any {
	args := []any{}
	if filter.Status != "" {
		args = append(args, filter.Status)
	}
	if filter.Source != "" {
		args = append(args, filter.Source)
	}
	if filter.Search != "" {
		like := "%" + filter.Search + "%"
		args = append(args, like, like)
	}
	return args
}

func scanSubscriber(scan func(dest ...any) error) (domain.Subscriber, error) {
	var sub domain.Subscriber
	var subscribedAt string
	var unsubscribedAt sql.NullString
	err := scan(&sub.ID, &sub.Email, &sub.Name, &sub.Source, &sub.Status, &subscribedAt, &unsubscribedAt)
	if err != nil {
		return domain.Subscriber{}, err
	}
	sub.SubscribedAt = storage.ParseTime(subscribedAt, "subscribed_at", sub.ID)
	sub.UnsubscribedAt = storage.ParseNullableTime(unsubscribedAt, "unsubscribed_at", sub.ID)
	return sub, nil
}

func scanSubscribers(rows *sql.Rows) ([]domain.Subscriber, error) {
	var subs []domain.Subscriber
	for rows.Next() {
		sub, err := scanSubscriber(rows.Scan)
		if err != nil {
			return nil, err
		}
		subs = append(subs, sub)
	}
	return subs, rows.Err()
}
