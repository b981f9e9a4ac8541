package course

import (
	"context"
	"database/sql"

	"fringe/internal/adapters/storage"
	domain "fringe/internal/domain/course"
)

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db storage.SQLDB
}

// NewSQLiteStore creates a new SQLiteStore.
func NewSQLiteStore(db storage.SQLDB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

const courseColumns = `id, title, slug, category_id, description, price_cents, duration_weeks,
		level, capacity, start_date, image_url, status, featured, created_at, updated_at, published_at`

// sortColumns maps filter sort keys to ORDER BY expressions.
var sortColumns = map[string]string{
	"title":      "title",
	"price":      "price_cents",
	"start_date": "start_date",
	"status":     "status",
	"created_at": "created_at",
}

// GetByID retrieves a course by ID.
// PRE: id is non-empty
// POST: Returns the entity or an error if not found
func (s *SQLiteStore) GetByID(ctx context.Context, id string) (domain.Course, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+courseColumns+` FROM course WHERE id = ?`, id)
	return scanCourse(row.Scan)
}

// GetBySlug retrieves a course by slug.
func (s *SQLiteStore) GetBySlug(ctx context.Context, slug string) (domain.Course, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+courseColumns+` FROM course WHERE slug = ?`, slug)
	return scanCourse(row.Scan)
}

// Save inserts or updates a course.
// PRE: entity has been validated
// POST: Entity is persisted (insert or update)
func (s *SQLiteStore) Save(ctx context.Context, c domain.Course) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO course (id, title, slug, category_id, description, price_cents, duration_weeks,
		   level, capacity, start_date, image_url, status, featured, created_at, updated_at, published_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
		   title=excluded.title, slug=excluded.slug, category_id=excluded.category_id,
		   description=excluded.description, price_cents=excluded.price_cents,
		   duration_weeks=excluded.duration_weeks, level=excluded.level, capacity=excluded.capacity,
		   start_date=excluded.start_date, image_url=excluded.image_url, status=excluded.status,
		   featured=excluded.featured, updated_at=excluded.updated_at, published_at=excluded.published_at`,
		c.ID, c.Title, c.Slug, c.CategoryID, c.Description, c.PriceCents, c.DurationWeeks,
		c.Level, c.Capacity, storage.NullableTime(c.StartDate), c.ImageURL, c.Status,
		storage.BoolToInt(c.Featured), c.CreatedAt.Format(storage.TimeLayout),
		storage.NullableTime(c.UpdatedAt), storage.NullableTime(c.PublishedAt))
	return err
}

// Delete removes a course by ID.
func (s *SQLiteStore) Delete(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM course WHERE id = ?`, id)
	return err
}

// List returns courses matching the filter.
// PRE: filter.Sort, if set, is an allow-listed column
// POST: Returns matching courses in the requested order
func (s *SQLiteStore) List(ctx context.Context, filter ListFilter) ([]domain.Course, error) {
	query := `SELECT ` + courseColumns + ` FROM course` + filterClause(filter)
	args := filterArgs(filter)

	col, ok := sortColumns[filter.Sort]
	if !ok {
		col = "created_at"
	}
	dir := "ASC"
	if filter.Dir == "desc" || filter.Sort == "" {
		dir = "DESC"
	}
	query += ` ORDER BY ` + col + ` ` + dir

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

	var courses []domain.Course
	for rows.Next() {
		c, err := scanCourse(rows.Scan)
		if err != nil {
			return nil, err
		}
		courses = append(courses, c)
	}
	return courses, rows.Err()
}

// Count returns the number of courses matching the filter.
func (s *SQLiteStore) Count(ctx context.Context, filter ListFilter) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM course`+filterClause(filter), filterArgs(filter)...).Scan(&n)
	return n, err
}

func filterClause(filter ListFilter) string {
	clause := ` WHERE 1=1`
	if filter.CategoryID != "" {
		clause += ` AND category_id = ?`
	}
	if filter.Status != "" {
		clause += ` AND status = ?`
	}
	if filter.Level != "" {
		clause += ` AND level = ?`
	}
	if filter.Search != "" {
		clause += ` AND (title LIKE ? OR slug LIKE ?)`
	}
	return clause
}

func filterArgs(filter ListFilter) []any {
	args := []any{}
	if filter.CategoryID != "" {
		args = append(args, filter.CategoryID)
	}
	if filter.Status != "" {
		args = append(args, filter.Status)
	}
	if filter.Level != "" {
		args = append(args, filter.Level)
	}
	if filter.Search != "" {
		like := "%" + filter.Search + "%"
		args = append(args, like, like)
	}
	return args
}

func scanCourse(scan func(dest ...any) error) (domain.Course, error) {
	var c domain.Course
	var featured int
	var createdAt string
	var startDate, updatedAt, publishedAt sql.NullString
	err := scan(&c.ID, &c.Title, &c.Slug, &c.CategoryID, &c.Description, &c.PriceCents, &c.DurationWeeks,
		&c.Level, &c.Capacity, &startDate, &c.ImageURL, &c.Status, &featured, &createdAt, &updatedAt, &publishedAt)
	if err != nil {
		return domain.Course{}, err
	}
	c.Featured = featured != 0
	c.StartDate = storage.ParseNullableTime(startDate, "start_date", c.ID)
	c.CreatedAt = storage.ParseTime(createdAt, "created_at", c.ID)
	c.UpdatedAt = storage.ParseNullableTime(updatedAt, "updated_at", c.ID)
	c.PublishedAt = storage.ParseNullableTime(publishedAt, "published_at", c.ID)
	return c, nil
}
