package faq

import (
	"context"
	"database/sql"

	"fringe/internal/adapters/storage"
	domain "fringe/internal/domain/faq"
)

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db storage.SQLDB
}

// NewSQLiteStore creates a new SQLiteStore.
func NewSQLiteStore(db storage.SQLDB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

const faqColumns = `id, question, answer, section, display_order, published, created_at, updated_at`

// GetByID retrieves a FAQ by ID.
// PRE: id is non-empty
// POST: Returns the entity or an error if not found
func (s *SQLiteStore) GetByID(ctx context.Context, id string) (domain.FAQ, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+faqColumns+` FROM faq WHERE id = ?`, id)
	return scanFAQ(row.Scan)
}

// Save inserts or updates a FAQ.
// PRE: entity has been validated
// POST: Entity is persisted (insert or update)
func (s *SQLiteStore) Save(ctx context.Context, f domain.FAQ) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO faq (id, question, answer, section, display_order, published, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
		   question=excluded.question, answer=excluded.answer, section=excluded.section,
		   display_order=excluded.display_order, published=excluded.published, updated_at=excluded.updated_at`,
		f.ID, f.Question, f.Answer, f.Section, f.DisplayOrder, storage.BoolToInt(f.Published),
		f.CreatedAt.Format(storage.TimeLayout), storage.NullableTime(f.UpdatedAt))
	return err
}

// Delete removes a FAQ by ID.
func (s *SQLiteStore) Delete(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM faq WHERE id = ?`, id)
	return err
}

// List returns FAQs matching the filter, ordered by section then display order.
func (s *SQLiteStore) List(ctx context.Context, filter ListFilter) ([]domain.FAQ, error) {
	query := `SELECT ` + faqColumns + ` FROM faq` + filterClause(filter)
	args := filterArgs(filter)
	query += ` ORDER BY section ASC, display_order ASC`
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

	var faqs []domain.FAQ
	for rows.Next() {
		f, err := scanFAQ(rows.Scan)
		if err != nil {
			return nil, err
		}
		faqs = append(faqs, f)
	}
	return faqs, rows.Err()
}

// Count returns the number of FAQs matching the filter.
func (s *SQLiteStore) Count(ctx context.Context, filter ListFilter) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM faq`+filterClause(filter), filterArgs(filter)...).Scan(&n)
	return n, err
}

func filterClause(filter ListFilter) string {
	clause := ` WHERE 1=1`
	if filter.Section != "" {
		clause += ` AND section = ?`
	}
	if filter.PublishedOnly {
		clause += ` AND published = 1`
	}
	return clause
}

func filterArgs(filter ListFilter) []any {
	args := []any{}
	if filter.Section != "" {
		args = append(args, filter.Section)
	}
	return args
}

func scanFAQ(scan func(dest ...any) error) (domain.FAQ, error) {
	var f domain.FAQ
	var published int
	var createdAt string
	var updatedAt sql.NullString
	err := scan(&f.ID, &f.Question, &f.Answer, &f.Section, &f.DisplayOrder, &published, &createdAt, &updatedAt)
	if err != nil {
		return domain.FAQ{}, err
	}
	f.Published = published != 0
	f.CreatedAt = storage.ParseTime(createdAt, "created_at", f.ID)
	f.UpdatedAt = storage.ParseNullableTime(updatedAt, "updated_at", f.ID)
	return f, nil
}
