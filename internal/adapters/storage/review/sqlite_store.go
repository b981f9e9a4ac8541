package review

import (
	"context"
	"database/sql"
	"time"

	"fringe/internal/adapters/storage"
	domain "fringe/internal/domain/review"
)

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db storage.SQLDB
}

// NewSQLiteStore creates a new SQLiteStore.
func NewSQLiteStore(db storage.SQLDB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

const reviewColumns = `id, subject, subject_id, author, email, rating, title, body, status,
		submitted_at, moderated_at, moderated_by`

// GetByID retrieves a review by ID.
// PRE: id is non-empty
// POST: Returns the entity or an error if not found
func (s *SQLiteStore) GetByID(ctx context.Context, id string) (domain.Review, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+reviewColumns+` FROM review WHERE id = ?`, id)
	return scanReview(row.Scan)
}

// Save inserts or updates a review.
// PRE: entity has been validated
// POST: Entity is persisted (insert or update)
func (s *SQLiteStore) Save(ctx context.Context, r domain.Review) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO review (id, subject, subject_id, author, email, rating, title, body, status,
		   submitted_at, moderated_at, moderated_by)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
		   subject=excluded.subject, subject_id=excluded.subject_id, author=excluded.author,
		   email=excluded.email, rating=excluded.rating, title=excluded.title, body=excluded.body,
		   status=excluded.status, moderated_at=excluded.moderated_at, moderated_by=excluded.moderated_by`,
		r.ID, r.Subject, r.SubjectID, r.Author, r.Email, r.Rating, r.Title, r.Body, r.Status,
		r.SubmittedAt.Format(storage.TimeLayout), storage.NullableTime(r.ModeratedAt),
		storage.NullableString(r.ModeratedBy))
	return err
}

// Delete removes a review by ID.
func (s *SQLiteStore) Delete(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM review WHERE id = ?`, id)
	return err
}

// List returns reviews matching the filter, newest first.
func (s *SQLiteStore) List(ctx context.Context, filter ListFilter) ([]domain.Review, error) {
	query := `SELECT ` + reviewColumns + ` FROM review` + filterClause(filter)
	args := filterArgs(filter)
	query += ` ORDER BY submitted_at DESC`
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

	var reviews []domain.Review
	for rows.Next() {
		r, err := scanReview(rows.Scan)
		if err != nil {
			return nil, err
		}
		reviews = append(reviews, r)
	}
	return reviews, rows.Err()
}

// Count returns the number of reviews matching the filter.
func (s *SQLiteStore) Count(ctx context.Context, filter ListFilter) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM review`+filterClause(filter), filterArgs(filter)...).Scan(&n)
	return n, err
}

// CountSubmittedBetween counts reviews submitted in [from, to).
func (s *SQLiteStore) CountSubmittedBetween(ctx context.Context, from, to time.Time) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM review WHERE submitted_at >= ? AND submitted_at < ?`,
		from.UTC().Format(storage.TimeLayout), to.UTC().Format(storage.TimeLayout)).Scan(&n)
	return n, err
}

// AverageApprovedRating returns the mean rating over approved reviews.
// POST: Returns 0 when no approved reviews exist
func (s *SQLiteStore) AverageApprovedRating(ctx context.Context) (float64, error) {
	var avg sql.NullFloat64
	err := s.db.QueryRowContext(ctx,
		`SELECT AVG(rating) FROM review WHERE status = ?`, domain.StatusApproved).Scan(&avg)
	if err != nil {
		return 0, err
	}
	if !avg.Valid {
		return 0, nil
	}
	return avg.Float64, nil
}

func filterClause(filter ListFilter) string {
	clause := ` WHERE 1=1`
	if filter.Status != "" {
		clause += ` AND status = ?`
	}
	if filter.Subject != "" {
		clause += ` AND subject = ?`
	}
	if filter.SubjectID != "" {
		clause += ` AND subject_id = ?`
	}
	return clause
}

func filterArgs(filter ListFilter) []any {
	args := []any{}
	if filter.Status != "" {
		args = append(args, filter.Status)
	}
	if filter.Subject != "" {
		args = append(args, filter.Subject)
	}
	if filter.SubjectID != "" {
		args = append(args, filter.SubjectID)
	}
	return args
}

func scanReview(scan func(dest ...any) error) (domain.Review, error) {
	var r domain.Review
	var submittedAt string
	var moderatedAt, moderatedBy sql.NullString
	err := scan(&r.ID, &r.Subject, &r.SubjectID, &r.Author, &r.Email, &r.Rating, &r.Title, &r.Body,
		&r.Status, &submittedAt, &moderatedAt, &moderatedBy)
	if err != nil {
		return domain.Review{}, err
	}
	r.SubmittedAt = storage.ParseTime(submittedAt, "submitted_at", r.ID)
	r.ModeratedAt = storage.ParseNullableTime(moderatedAt, "moderated_at", r.ID)
	if moderatedBy.Valid {
		r.ModeratedBy = moderatedBy.String
	}
	return r, nil
}
