package storage

import (
	"database/sql"
	"fmt"
)

// LatestSchemaVersion is bumped whenever a migration is appended.
func LatestSchemaVersion() int {
	return len(migrations)
}

// InitDB creates the full schema on a fresh database and records the
// latest schema version.
// PRE: db is a valid database connection
// POST: All tables exist, schema_version is current
func InitDB(db *sql.DB) error {
	if _, err := db.Exec("PRAGMA foreign_keys=ON"); err != nil {
		return fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	schema := `
	CREATE TABLE IF NOT EXISTS schema_version (
		version INTEGER NOT NULL
	);

	CREATE TABLE IF NOT EXISTS account (
		id TEXT PRIMARY KEY,
		email TEXT NOT NULL UNIQUE,
		password_hash TEXT NOT NULL DEFAULT '',
		role TEXT NOT NULL,
		created_at TEXT NOT NULL,
		failed_logins INTEGER NOT NULL DEFAULT 0,
		locked_until TEXT
	);

	CREATE TABLE IF NOT EXISTS category (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		slug TEXT NOT NULL UNIQUE,
		kind TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		display_order INTEGER NOT NULL DEFAULT 0,
		active INTEGER NOT NULL DEFAULT 1,
		created_at TEXT NOT NULL,
		updated_at TEXT
	);

	CREATE TABLE IF NOT EXISTS course (
		id TEXT PRIMARY KEY,
		title TEXT NOT NULL,
		slug TEXT NOT NULL UNIQUE,
		category_id TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		price_cents INTEGER NOT NULL DEFAULT 0,
		duration_weeks INTEGER NOT NULL DEFAULT 0,
		level TEXT NOT NULL DEFAULT 'all',
		capacity INTEGER NOT NULL DEFAULT 0,
		start_date TEXT,
		image_url TEXT NOT NULL DEFAULT '',
		status TEXT NOT NULL DEFAULT 'draft',
		featured INTEGER NOT NULL DEFAULT 0,
		created_at TEXT NOT NULL,
		updated_at TEXT,
		published_at TEXT,
		FOREIGN KEY (category_id) REFERENCES category(id)
	);

	CREATE TABLE IF NOT EXISTS service (
		id TEXT PRIMARY KEY,
		title TEXT NOT NULL,
		slug TEXT NOT NULL UNIQUE,
		category_id TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		price_cents INTEGER NOT NULL DEFAULT 0,
		duration_minutes INTEGER NOT NULL DEFAULT 0,
		image_url TEXT NOT NULL DEFAULT '',
		status TEXT NOT NULL DEFAULT 'draft',
		featured INTEGER NOT NULL DEFAULT 0,
		created_at TEXT NOT NULL,
		updated_at TEXT,
		FOREIGN KEY (category_id) REFERENCES category(id)
	);

	CREATE TABLE IF NOT EXISTS offer (
		id TEXT PRIMARY KEY,
		title TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		code TEXT NOT NULL UNIQUE,
		discount_pct INTEGER NOT NULL,
		target TEXT NOT NULL,
		target_id TEXT,
		valid_from TEXT,
		valid_until TEXT,
		active INTEGER NOT NULL DEFAULT 1,
		created_at TEXT NOT NULL,
		updated_at TEXT
	);

	CREATE TABLE IF NOT EXISTS faq (
		id TEXT PRIMARY KEY,
		question TEXT NOT NULL,
		answer TEXT NOT NULL,
		section TEXT NOT NULL DEFAULT '',
		display_order INTEGER NOT NULL DEFAULT 0,
		published INTEGER NOT NULL DEFAULT 0,
		created_at TEXT NOT NULL,
		updated_at TEXT
	);

	CREATE TABLE IF NOT EXISTS contact_message (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		email TEXT NOT NULL,
		phone TEXT NOT NULL DEFAULT '',
		subject TEXT NOT NULL DEFAULT '',
		body TEXT NOT NULL,
		status TEXT NOT NULL DEFAULT 'new',
		received_at TEXT NOT NULL,
		read_at TEXT,
		replied_at TEXT
	);

	CREATE TABLE IF NOT EXISTS subscriber (
		id TEXT PRIMARY KEY,
		email TEXT NOT NULL UNIQUE,
		name TEXT NOT NULL DEFAULT '',
		source TEXT NOT NULL DEFAULT 'website',
		status TEXT NOT NULL DEFAULT 'active',
		subscribed_at TEXT NOT NULL,
		unsubscribed_at TEXT
	);

	CREATE TABLE IF NOT EXISTS testimonial (
		id TEXT PRIMARY KEY,
		author TEXT NOT NULL,
		affiliation TEXT NOT NULL DEFAULT '',
		quote TEXT NOT NULL,
		rating INTEGER NOT NULL DEFAULT 5,
		approved INTEGER NOT NULL DEFAULT 0,
		featured INTEGER NOT NULL DEFAULT 0,
		display_order INTEGER NOT NULL DEFAULT 0,
		created_at TEXT NOT NULL,
		updated_at TEXT
	);

	CREATE TABLE IF NOT EXISTS review (
		id TEXT PRIMARY KEY,
		subject TEXT NOT NULL,
		subject_id TEXT NOT NULL,
		author TEXT NOT NULL,
		email TEXT NOT NULL,
		rating INTEGER NOT NULL,
		title TEXT NOT NULL DEFAULT '',
		body TEXT NOT NULL DEFAULT '',
		status TEXT NOT NULL DEFAULT 'pending',
		submitted_at TEXT NOT NULL,
		moderated_at TEXT,
		moderated_by TEXT
	);

	CREATE TABLE IF NOT EXISTS email_template (
		id TEXT PRIMARY KEY,
		key TEXT NOT NULL UNIQUE,
		name TEXT NOT NULL,
		subject TEXT NOT NULL,
		body TEXT NOT NULL,
		active INTEGER NOT NULL DEFAULT 1,
		created_at TEXT NOT NULL,
		updated_at TEXT
	);

	CREATE TABLE IF NOT EXISTS email_trigger (
		id TEXT PRIMARY KEY,
		event TEXT NOT NULL,
		template_key TEXT NOT NULL,
		recipient TEXT NOT NULL,
		enabled INTEGER NOT NULL DEFAULT 1,
		created_at TEXT NOT NULL,
		updated_at TEXT,
		UNIQUE(event, recipient)
	);

	CREATE TABLE IF NOT EXISTS site_setting (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL DEFAULT '',
		updated_at TEXT NOT NULL,
		updated_by TEXT NOT NULL DEFAULT ''
	);

	CREATE TABLE IF NOT EXISTS audit_event (
		id TEXT PRIMARY KEY,
		timestamp TEXT NOT NULL,
		category TEXT NOT NULL,
		action TEXT NOT NULL,
		severity TEXT NOT NULL DEFAULT 'info',
		actor_id TEXT NOT NULL DEFAULT '',
		actor_email TEXT NOT NULL DEFAULT '',
		resource_id TEXT NOT NULL DEFAULT '',
		resource_type TEXT NOT NULL DEFAULT '',
		description TEXT NOT NULL DEFAULT '',
		ip_address TEXT NOT NULL DEFAULT ''
	);

	CREATE TABLE IF NOT EXISTS outbox (
		id TEXT PRIMARY KEY,
		action_type TEXT NOT NULL,
		payload TEXT NOT NULL,
		status TEXT NOT NULL DEFAULT 'pending',
		attempts INTEGER NOT NULL DEFAULT 0,
		max_attempts INTEGER NOT NULL DEFAULT 5,
		last_attempted_at TEXT,
		created_at TEXT NOT NULL,
		external_id TEXT NOT NULL DEFAULT '',
		error_message TEXT NOT NULL DEFAULT ''
	);

	CREATE INDEX IF NOT EXISTS idx_course_status ON course(status);
	CREATE INDEX IF NOT EXISTS idx_review_status ON review(status);
	CREATE INDEX IF NOT EXISTS idx_contact_status ON contact_message(status);
	CREATE INDEX IF NOT EXISTS idx_subscriber_status ON subscriber(status);
	CREATE INDEX IF NOT EXISTS idx_audit_timestamp ON audit_event(timestamp);
	CREATE INDEX IF NOT EXISTS idx_outbox_status ON outbox(status);
	`

	if _, err := db.Exec(schema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}

// migration is a single ALTER/backfill step applied in order by MigrateDB.
type migration struct {
	version int
	stmts   []string
}

// migrations lists schema changes since the initial release. Append only.
var migrations = []migration{
	{version: 1, stmts: nil}, // initial schema, created by InitDB
}

// MigrateDB brings an existing database up to the latest schema version.
// PRE: db is a valid database connection
// POST: schema_version equals LatestSchemaVersion()
func MigrateDB(db *sql.DB) error {
	if err := InitDB(db); err != nil {
		return err
	}

	var current int
	row := db.QueryRow(`SELECT version FROM schema_version LIMIT 1`)
	if err := row.Scan(&current); err == sql.ErrNoRows {
		if _, err := db.Exec(`INSERT INTO schema_version (version) VALUES (?)`, LatestSchemaVersion()); err != nil {
			return fmt.Errorf("failed to record schema version: %w", err)
		}
		return nil
	} else if err != nil {
		return fmt.Errorf("failed to read schema version: %w", err)
	}

	for _, m := range migrations {
		if m.version <= current {
			continue
		}
		for _, stmt := range m.stmts {
			if _, err := db.Exec(stmt); err != nil {
				return fmt.Errorf("migration %d failed: %w", m.version, err)
			}
		}
	}

	if current != LatestSchemaVersion() {
		if _, err := db.Exec(`UPDATE schema_version SET version = ?`, LatestSchemaVersion()); err != nil {
			return fmt.Errorf("failed to update schema version: %w", err)
		}
	}
	return nil
}
