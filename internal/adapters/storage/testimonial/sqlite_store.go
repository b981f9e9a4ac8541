package testimonial

import (
	"context"
	"database/sql"

	"fringe/internal/adapters/storage"
	domain "fringe/internal/domain/testimonial"
)

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db storage.SQLDB
}

// NewSQLiteStore creates a new SQLiteStore.
func NewSQLiteStore(db storage.SQLDB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

const testimonialColumns = `id, author, affiliation, quote, rating, approved, featured, display_order, created_at, updated_at`

// GetByID retrieves a testimonial by ID.
// PRE: id is non-empty
// POST: Returns the entity or an error if not found
func (s *SQLiteStore) GetByID(ctx context.Context, id string) (domain.Testimonial, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+testimonialColumns+` FROM testimonial WHERE id = ?`, id)
	return scanTestimonial(row.Scan)
}

// Save inserts or updates a testimonial.
// PRE: entity has been validated
// POST: Entity is persisted (insert or update)
func (s *SQLiteStore) Save(ctx context.Context, t domain.Testimonial) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO testimonial (id, author, affiliation, quote, rating, approved, featured, display_order, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
		   author=excluded.author, affiliation=excluded.affiliation, quote=excluded.quote,
		   rating=excluded.rating, approved=excluded.approved, featured=excluded.featured,
		   display_order=excluded.display_order, updated_at=excluded.updated_at`,
		t.ID, t.Author, t.Affiliation, t.Quote, t.Rating, storage.BoolToInt(t.Approved),
		storage.BoolToInt(t.Featured), t.DisplayOrder,
		t.CreatedAt.Format(storage.TimeLayout), storage.NullableTime(t.UpdatedAt))
	return err
}

// Delete removes a testimonial by ID.
func (s *SQLiteStore) Delete(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM testimonial WHERE id = ?`, id)
	return err
}

// List returns testimonials matching the filter, ordered by display order.
func (s *SQLiteStore) List(ctx context.Context, filter ListFilter) ([]domain.Testimonial, error) {
	query := `SELECT ` + testimonialColumns + ` FROM testimonial` + filterClause(filter)
	args := []any{}
	query += ` ORDER BY display_order ASC, created_at DESC`
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

	var testimonials []domain.Testimonial
	for rows.Next() {
		t, err := scanTestimonial(rows.Scan)
		if err != nil {
			return nil, err
		}
		testimonials = append(testimonials, t)
	}
	return testimonials, rows.Err()
}

// Count returns the number of testimonials matching the filter.
func (s *SQLiteStore) Count(ctx context.Context, filter ListFilter) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM testimonial`+filterClause(filter)).Scan(&n)
	return n, err
}

func filterClause(filter ListFilter) string {
	clause := ` WHERE 1=1`
	if filter.ApprovedOnly {
		clause += ` AND approved = 1`
	}
	if filter.FeaturedOnly {
		clause += ` AND featured = 1`
	}
	return clause
}

func scanTestimonial(scan func(dest ...any) error) (domain.Testimonial, error) {
	var t domain.Testimonial
	var approved, featured int
	var createdAt string
	var updatedAt sql.NullString
	err := scan(&t.ID, &t.Author, &t.Affiliation, &t.Quote, &t.Rating, &approved, &featured,
		&t.DisplayOrder, &createdAt, &updatedAt)
	if err != nil {
		return domain.Testimonial{}, err
	}
	t.Approved = approved != 0
	t.Featured = featured != 0
	t.CreatedAt = storage.ParseTime(createdAt, "created_at", t.ID)
	t.UpdatedAt = storage.ParseNullableTime(updatedAt, "updated_at", t.ID)
	return t, nil
}
