package offer

import (
	"context"
	"database/sql"
	"time"

	"fringe/internal/adapters/storage"
	domain "fringe/internal/domain/offer"
)

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db storage.SQLDB
}

// NewSQLiteStore creates a new SQLiteStore.
func NewSQLiteStore(db storage.SQLDB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

const offerColumns = `id, title, description, code, discount_pct, target, target_id,
		valid_from, valid_until, active, created_at, updated_at`

// GetByID retrieves an offer by ID.
// PRE: id is non-empty
// POST: Returns the entity or an error if not found
func (s *SQLiteStore) GetByID(ctx context.Context, id string) (domain.Offer, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+offerColumns+` FROM offer WHERE id = ?`, id)
	return scanOffer(row.Scan)
}

// GetByCode retrieves an offer by its promo code.
func (s *SQLiteStore) GetByCode(ctx context.Context, code string) (domain.Offer, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+offerColumns+` FROM offer WHERE code = ?`, code)
	return scanOffer(row.Scan)
}

// Save inserts or updates an offer.
// PRE: entity has been validated
// POST: Entity is persisted (insert or update)
func (s *SQLiteStore) Save(ctx context.Context, o domain.Offer) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO offer (id, title, description, code, discount_pct, target, target_id,
		   valid_from, valid_until, active, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
		   title=excluded.title, description=excluded.description, code=excluded.code,
		   discount_pct=excluded.discount_pct, target=excluded.target, target_id=excluded.target_id,
		   valid_from=excluded.valid_from, valid_until=excluded.valid_until,
		   active=excluded.active, updated_at=excluded.updated_at`,
		o.ID, o.Title, o.Description, o.Code, o.DiscountPct, o.Target, storage.NullableString(o.TargetID),
		storage.NullableTime(o.ValidFrom), storage.NullableTime(o.ValidUntil),
		storage.BoolToInt(o.Active), o.CreatedAt.Format(storage.TimeLayout), storage.NullableTime(o.UpdatedAt))
	return err
}

// Delete removes an offer by ID.
func (s *SQLiteStore) Delete(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM offer WHERE id = ?`, id)
	return err
}

// List returns offers matching the filter, newest first.
func (s *SQLiteStore) List(ctx context.Context, filter ListFilter) ([]domain.Offer, error) {
	query := `SELECT ` + offerColumns + ` FROM offer` + filterClause(filter)
	args := filterArgs(filter)
	query += ` ORDER BY created_at DESC`
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

	var offers []domain.Offer
	for rows.Next() {
		o, err := scanOffer(rows.Scan)
		if err != nil {
			return nil, err
		}
		offers = append(offers, o)
	}
	return offers, rows.Err()
}

// Count returns the number of offers matching the filter.
func (s *SQLiteStore) Count(ctx context.Context, filter ListFilter) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM offer`+filterClause(filter), filterArgs(filter)...).Scan(&n)
	return n, err
}

// DeactivateExpired flips expired active offers to inactive.
// PRE: now is the current time
// POST: Returns the number of offers deactivated
func (s *SQLiteStore) DeactivateExpired(ctx context.Context, now time.Time) (int64, error) {
	res, err := s.db.ExecContext(ctx,
		`UPDATE offer SET active = 0, updated_at = ?
		 WHERE active = 1 AND valid_until IS NOT NULL AND valid_until < ?`,
		now.UTC().Format(storage.TimeLayout), now.UTC().Format(storage.TimeLayout))
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func filterClause(filter ListFilter) string {
	clause := ` WHERE 1=1`
	if filter.Target != "" {
		clause += ` AND target = ?`
	}
	if filter.ActiveOnly {
		clause += ` AND active = 1`
	}
	return clause
}

func filterArgs(filter ListFilter) []any {
	args := []any{}
	if filter.Target != "" {
		args = append(args, filter.Target)
	}
	return args
}

func scanOffer(scan func(dest ...any) error) (domain.Offer, error) {
	var o domain.Offer
	var active int
	var createdAt string
	var targetID, validFrom, validUntil, updatedAt sql.NullString
	err := scan(&o.ID, &o.Title, &o.Description, &o.Code, &o.DiscountPct, &o.Target, &targetID,
		&validFrom, &validUntil, &active, &createdAt, &updatedAt)
	if err != nil {
		return domain.Offer{}, err
	}
	o.Active = active != 0
	if targetID.Valid {
		o.TargetID = targetID.String
	}
	o.ValidFrom = storage.ParseNullableTime(validFrom, "valid_from", o.ID)
	o.ValidUntil = storage.ParseNullableTime(validUntil, "valid_until", o.ID)
	o.CreatedAt = storage.ParseTime(createdAt, "created_at", o.ID)
	o.UpdatedAt = storage.ParseNullableTime(updatedAt, "updated_at", o.ID)
	return o, nil
}
