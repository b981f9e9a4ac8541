package storage

import (
	"database/sql"
	"time"

	"github.com/rs/zerolog/log"
)

// TimeLayout is the canonical timestamp format for all TEXT columns.
const TimeLayout = "2006-01-02T15:04:05Z07:00"

// NullableString returns nil for empty strings so the column stores NULL.
func NullableString(s string) any {
	if s == "" {
		return nil
	}
	return s
}

// NullableTime returns nil for zero times so the column stores NULL.
func NullableTime(t time.Time) any {
	if t.IsZero() {
		return nil
	}
	return t.Format(TimeLayout)
}

// BoolToInt converts a bool to the 0/1 representation used in SQLite.
func BoolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

// ParseTime parses a stored timestamp, logging a warning on failure.
func ParseTime(raw, field, rowID string) time.Time {
	if raw == "" {
		return time.Time{}
	}
	t, err := time.Parse(TimeLayout, raw)
	if err != nil {
		log.Warn().Str("field", field).Str("row_id", rowID).Str("raw", raw).Err(err).Msg("failed to parse stored time")
	}
	return t
}

// ParseNullableTime parses a nullable stored timestamp.
func ParseNullableTime(ns sql.NullString, field, rowID string) time.Time {
	if !ns.Valid {
		return time.Time{}
	}
	return ParseTime(ns.String, field, rowID)
}
