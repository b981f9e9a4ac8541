package service

import (
	"context"
	"database/sql"

	"fringe/internal/adapters/storage"
	domain "fringe/internal/domain/service"
)

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db storage.SQLDB
}

// NewSQLiteStore creates a new SQLiteStore.
func NewSQLiteStore(db storage.SQLDB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

const serviceColumns = `id, title, slug, category_id, description, price_cents, duration_minutes,
		image_url, status, featured, created_at, updated_at`

var sortColumns = map[string]string{
	"title":      "title",
	"price":      "price_cents",
	"status":     "status",
	"created_at": "created_at",
}

// GetByID retrieves a service by ID.
// PRE: id is non-empty
// POST: Returns the entity or an error if not found
func (s *SQLiteStore) GetByID(ctx context.Context, id string) (domain.Service, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+serviceColumns+` FROM service WHERE id = ?`, id)
	return scanService(row.Scan)
}

// GetBySlug retrieves a service by slug.
func (s *SQLiteStore) GetBySlug(ctx context.Context, slug string) (domain.Service, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+serviceColumns+` FROM service WHERE slug = ?`, slug)
	return scanService(row.Scan)
}

// Save inserts or updates a service.
// PRE: entity has been validated
// POST: Entity is persisted (insert or update)
func (s *SQLiteStore) Save(ctx context.Context, v domain.Service) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO service (id, title, slug, category_id, description, price_cents, duration_minutes,
		   image_url, status, featured, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
		   title=excluded.title, slug=excluded.slug, category_id=excluded.category_id,
		   description=excluded.description, price_cents=excluded.price_cents,
		   duration_minutes=excluded.duration_minutes, image_url=excluded.image_url,
		   status=excluded.status, featured=excluded.featured, updated_at=excluded.updated_at`,
		v.ID, v.Title, v.Slug, v.CategoryID, v.Description, v.PriceCents, v.DurationMinutes,
		v.ImageURL, v.Status, storage.BoolToInt(v.Featured),
		v.CreatedAt.Format(storage.TimeLayout), storage.NullableTime(v.UpdatedAt))
	return err
}

// Delete removes a service by ID.
func (s *SQLiteStore) Delete(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM service WHERE id = ?`, id)
	return err
}

// List returns services matching the filter.
func (s *SQLiteStore) List(ctx context.Context, filter ListFilter) ([]domain.Service, error) {
	query := `SELECT ` + serviceColumns + ` FROM service` + filterClause(filter)
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

	var services []domain.Service
	for rows.Next() {
		v, err := scanService(rows.Scan)
		if err != nil {
			return nil, err
		}
		services = append(services, v)
	}
	return services, rows.Err()
}

// Count returns the number of services matching the filter.
func (s *SQLiteStore) Count(ctx context.Context, filter ListFilter) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM service`+filterClause(filter), filterArgs(filter)...).Scan(&n)
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
	if filter.Search != "" {
		like := "%" + filter.Search + "%"
		args = append(args, like, like)
	}
	return args
}

func scanService(scan func(dest ...any) error) (domain.Service, error) {
	var v domain.Service
	var featured int
	var createdAt string
	var updatedAt sql.NullString
	err := scan(&v.ID, &v.Title, &v.Slug, &v.CategoryID, &v.Description, &v.PriceCents, &v.DurationMinutes,
		&v.ImageURL, &v.Status, &featured, &createdAt, &updatedAt)
	if err != nil {
		return domain.Service{}, err
	}
	v.Featured = featured != 0
	v.CreatedAt = storage.ParseTime(createdAt, "created_at", v.ID)
	v.UpdatedAt = storage.ParseNullableTime(updatedAt, "updated_at", v.ID)
	return v, nil
}
