package settings

import (
	"context"
	"database/sql"

	"fringe/internal/adapters/storage"
	domain "fringe/internal/domain/settings"
)

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db storage.SQLDB
}

// NewSQLiteStore creates a new SQLiteStore.
func NewSQLiteStore(db storage.SQLDB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

// Get retrieves a setting by key.
// PRE: key is non-empty
// POST: Returns the setting or sql.ErrNoRows if missing
func (s *SQLiteStore) Get(ctx context.Context, key string) (domain.Setting, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT key, value, updated_at, updated_by FROM site_setting WHERE key = ?`, key)
	return scanSetting(row.Scan)
}

// All returns every setting ordered by key.
func (s *SQLiteStore) All(ctx context.Context) ([]domain.Setting, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT key, value, updated_at, updated_by FROM site_setting ORDER BY key ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var all []domain.Setting
	for rows.Next() {
		setting, err := scanSetting(rows.Scan)
		if err != nil {
			return nil, err
		}
		all = append(all, setting)
	}
	return all, rows.Err()
}

// Upsert writes a single setting.
// PRE: setting has been validated
// POST: Setting is persisted (insert or update)
func (s *SQLiteStore) Upsert(ctx context.Context, setting domain.Setting) error {
	_, err := s.db.ExecContext(ctx, upsertSQL,
		setting.Key, setting.Value, setting.UpdatedAt.Format(storage.TimeLayout), setting.UpdatedBy)
	return err
}

// UpsertMany writes several settings atomically.
// POST: Either every setting is written or none is
func (s *SQLiteStore) UpsertMany(ctx context.Context, values []domain.Setting) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, setting := range values {
		if _, err := tx.ExecContext(ctx, upsertSQL,
			setting.Key, setting.Value, setting.UpdatedAt.Format(storage.TimeLayout), setting.UpdatedBy); err != nil {
			return err
		}
	}
	return tx.Commit()
}

const upsertSQL = `INSERT INTO site_setting (key, value, updated_at, updated_by)
	 VALUES (?, ?, ?, ?)
	 ON CONFLICT(key) DO UPDATE SET
	   value=excluded.value, updated_at=excluded.updated_at, updated_by=excluded.updated_by`

func scanSetting(scan func(dest ...any) error) (domain.Setting, error) {
	var setting domain.Setting
	var updatedAt string
	var updatedBy sql.NullString
	err := scan(&setting.Key, &setting.Value, &updatedAt, &updatedBy)
	if err != nil {
		return domain.Setting{}, err
	}
	setting.UpdatedAt = storage.ParseTime(updatedAt, "updated_at", setting.Key)
	if updatedBy.Valid {
		setting.UpdatedBy = updatedBy.String
	}
	return setting, nil
}
