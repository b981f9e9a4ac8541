package category

import (
	"context"
	"database/sql"

	"fringe/internal/adapters/storage"
	domain "fringe/internal/domain/category"
)

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db storage.SQLDB
}

// NewSQLiteStore creates a new SQLiteStore.
func NewSQLiteStore(db storage.SQLDB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

const categoryColumns = `id, name, slug, kind, description, display_order, active, created_at, updated_at`

// GetByID retrieves a category by ID.
// PRE: id is non-empty
// POST: Returns the entity or an error if not found
func (s *SQLiteStore) GetByID(ctx context.Context, id string) (domain.Category, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+categoryColumns+` FROM category WHERE id = ?`, id)
	return scanCategory(row.Scan)
}

// GetBySlug retrieves a category by slug.
func (s *SQLiteStore) GetBySlug(ctx context.Context, slug string) (domain.Category, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+categoryColumns+` FROM category WHERE slug = ?`, slug)
	return scanCategory(row.Scan)
}

// Save inserts or updates a category.
// PRE: entity has been validated
// POST: Entity is persisted (insert or update)
func (s *SQLiteStore) Save(ctx context.Context, c domain.Category) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO category (id, name, slug, kind, description, display_order, active, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
		   name=excluded.name, slug=excluded.slug, kind=excluded.kind, description=excluded.description,
		   display_order=excluded.display_order, active=excluded.active, updated_at=excluded.updated_at`,
		c.ID, c.Name, c.Slug, c.Kind, c.Description, c.DisplayOrder, storage.BoolToInt(c.Active),
		c.CreatedAt.Format(storage.TimeLayout), storage.NullableTime(c.UpdatedAt))
	return err
}

// Delete removes a category by ID.
func (s *SQLiteStore) Delete(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM category WHERE id = ?`, id)
	return err
}

// List returns categories matching the filter, ordered by display order.
func (s *SQLiteStore) List(ctx context.Context, filter ListFilter) ([]domain.Category, error) {
	query := `SELECT ` + categoryColumns + ` FROM category` + filterClause(filter)
	args := filterArgs(filter)
	query += ` ORDER BY display_order ASC, name ASC`
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

	var categories []domain.Category
	for rows.Next() {
		c, err := scanCategory(rows.Scan)
		if err != nil {
			return nil, err
		}
		categories = append(categories, c)
	}
	return categories, rows.Err()
}

// Count returns the number of categories matching the filter.
func (s *SQLiteStore) Count(ctx context.Context, filter ListFilter) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM category`+filterClause(filter), filterArgs(filter)...).Scan(&n)
	return n, err
}

func filterClause(filter ListFilter) string {
	clause := ` WHERE 1=1`
	if filter.Kind != "" {
		clause += ` AND kind = ?`
	}
	if filter.ActiveOnly {
		clause += ` AND active = 1`
	}
	return clause
}

func filterArgs(filter ListFilter) []any {
	args := []any{}
	if filter.Kind != "" {
		args = append(args, filter.Kind)
	}
	return args
}

func scanCategory(scan func(dest ...any) error) (domain.Category, error) {
	var c domain.Category
	var active int
	var createdAt string
	var updatedAt sql.NullString
	err := scan(&c.ID, &c.Name, &c.Slug, &c.Kind, &c.Description, &c.DisplayOrder, &active, &createdAt, &updatedAt)
	if err != nil {
		return domain.Category{}, err
	}
	c.Active = active != 0
	c.CreatedAt = storage.ParseTime(createdAt, "created_at", c.ID)
	c.UpdatedAt = storage.ParseNullableTime(updatedAt, "updated_at", c.ID)
	return c, nil
}
