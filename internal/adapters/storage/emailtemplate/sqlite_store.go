package emailtemplate

import (
	"context"
	"database/sql"

	"fringe/internal/adapters/storage"
	domain "fringe/internal/domain/emailtemplate"
)

// SQLiteTemplateStore implements TemplateStore using SQLite.
type SQLiteTemplateStore struct {
	db storage.SQLDB
}

// NewSQLiteTemplateStore creates a new SQLiteTemplateStore.
func NewSQLiteTemplateStore(db storage.SQLDB) *SQLiteTemplateStore {
	return &SQLiteTemplateStore{db: db}
}

const templateColumns = `id, key, name, subject, body, active, created_at, updated_at`

// GetByID retrieves a template by ID.
// PRE: id is non-empty
// POST: Returns the entity or an error if not found
func (s *SQLiteTemplateStore) GetByID(ctx context.Context, id string) (domain.Template, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+templateColumns+` FROM email_template WHERE id = ?`, id)
	return scanTemplate(row.Scan)
}

// GetByKey retrieves a template by its well-known key.
func (s *SQLiteTemplateStore) GetByKey(ctx context.Context, key string) (domain.Template, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+templateColumns+` FROM email_template WHERE key = ?`, key)
	return scanTemplate(row.Scan)
}

// Save inserts or updates a template.
// PRE: entity has been validated
// POST: Entity is persisted (insert or update)
func (s *SQLiteTemplateStore) Save(ctx context.Context, t domain.Template) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO email_template (id, key, name, subject, body, active, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
		   key=excluded.key, name=excluded.name, subject=excluded.subject,
		   body=excluded.body, active=excluded.active, updated_at=excluded.updated_at`,
		t.ID, t.Key, t.Name, t.Subject, t.Body, storage.BoolToInt(t.Active),
		t.CreatedAt.Format(storage.TimeLayout), storage.NullableTime(t.UpdatedAt))
	return err
}

// Delete removes a template by ID.
func (s *SQLiteTemplateStore) Delete(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM email_template WHERE id = ?`, id)
	return err
}

// List returns templates matching the filter, ordered by name.
func (s *SQLiteTemplateStore) List(ctx context.Context, filter ListFilter) ([]domain.Template, error) {
	query := `SELECT ` + templateColumns + ` FROM email_template` + templateFilterClause(filter)
	args := []any{}
	query += ` ORDER BY name ASC`
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

	var templates []domain.Template
	for rows.Next() {
		t, err := scanTemplate(rows.Scan)
		if err != nil {
			return nil, err
		}
		templates = append(templates, t)
	}
	return templates, rows.Err()
}

// Count returns the number of templates matching the filter.
func (s *SQLiteTemplateStore) Count(ctx context.Context, filter ListFilter) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM email_template`+templateFilterClause(filter)).Scan(&n)
	return n, err
}

func templateFilterClause(filter ListFilter) string {
	clause := ` WHERE 1=1`
	if filter.ActiveOnly {
		clause += ` AND active = 1`
	}
	return clause
}

func scanTemplate(scan func(dest ...any) error) (domain.Template, error) {
	var t domain.Template
	var active int
	var createdAt string
	var updatedAt sql.NullString
	err := scan(&t.ID, &t.Key, &t.Name, &t.Subject, &t.Body, &active, &createdAt, &updatedAt)
	if err != nil {
		return domain.Template{}, err
	}
	t.Active = active != 0
	t.CreatedAt = storage.ParseTime(createdAt, "created_at", t.ID)
	t.UpdatedAt = storage.ParseNullableTime(updatedAt, "updated_at", t.ID)
	return t, nil
}

// SQLiteTriggerStore implements TriggerStore using SQLite.
type SQLiteTriggerStore struct {
	db storage.SQLDB
}

// NewSQLiteTriggerStore creates a new SQLiteTriggerStore.
func NewSQLiteTriggerStore(db storage.SQLDB) *SQLiteTriggerStore {
	return &SQLiteTriggerStore{db: db}
}

const triggerColumns = `id, event, template_key, recipient, enabled, created_at, updated_at`

// GetByID retrieves a trigger by ID.
func (s *SQLiteTriggerStore) GetByID(ctx context.Context, id string) (domain.Trigger, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+triggerColumns+` FROM email_trigger WHERE id = ?`, id)
	return scanTrigger(row.Scan)
}

// ListByEvent returns enabled triggers for an event.
// POST: Disabled triggers are excluded
func (s *SQLiteTriggerStore) ListByEvent(ctx context.Context, event string) ([]domain.Trigger, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+triggerColumns+` FROM email_trigger WHERE event = ? AND enabled = 1 ORDER BY recipient ASC`,
		event)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanTriggers(rows)
}

// Save inserts or updates a trigger.
// PRE: entity has been validated
// POST: Entity is persisted (insert or update)
func (s *SQLiteTriggerStore) Save(ctx context.Context, tr domain.Trigger) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO email_trigger (id, event, template_key, recipient, enabled, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
		   event=excluded.event, template_key=excluded.template_key, recipient=excluded.recipient,
		   enabled=excluded.enabled, updated_at=excluded.updated_at`,
		tr.ID, tr.Event, tr.TemplateKey, tr.Recipient, storage.BoolToInt(tr.Enabled),
		tr.CreatedAt.Format(storage.TimeLayout), storage.NullableTime(tr.UpdatedAt))
	return err
}

// Delete removes a trigger by ID.
func (s *SQLiteTriggerStore) Delete(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM email_trigger WHERE id = ?`, id)
	return err
}

// List returns all triggers ordered by event then recipient.
func (s *SQLiteTriggerStore) List(ctx context.Context) ([]domain.Trigger, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+triggerColumns+` FROM email_trigger ORDER BY event ASC, recipient ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanTriggers(rows)
}

func scanTrigger(scan func(dest ...any) error) (domain.Trigger, error) {
	var tr domain.Trigger
	var enabled int
	var createdAt string
	var updatedAt sql.NullString
	err := scan(&tr.ID, &tr.Event, &tr.TemplateKey, &tr.Recipient, &enabled, &createdAt, &updatedAt)
	if err != nil {
		return domain.Trigger{}, err
	}
	tr.Enabled = enabled != 0
	tr.CreatedAt = storage.ParseTime(createdAt, "created_at", tr.ID)
	tr.UpdatedAt = storage.ParseNullableTime(updatedAt, "updated_at", tr.ID)
	return tr, nil
}

func scanTriggers(rows *sql.Rows) ([]domain.Trigger, error) {
	var triggers []domain.Trigger
	for rows.Next() {
		tr, err := scanTrigger(rows.Scan)
		if err != nil {
			return nil, err
		}
		triggers = append(triggers, tr)
	}
	return triggers, rows.Err()
}
