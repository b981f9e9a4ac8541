package settings

import (
	"errors"
	"strings"
	"time"
)

// Well-known setting keys.
const (
	KeySiteName        = "site_name"
	KeyTagline         = "tagline"
	KeyContactEmail    = "contact_email"
	KeyContactPhone    = "contact_phone"
	KeyAddress         = "address"
	KeyFacebookURL     = "facebook_url"
	KeyInstagramURL    = "instagram_url"
	KeyMaintenanceMode = "maintenance_mode"
)

// KnownKeys lists every setting the console manages, in display order.
var KnownKeys = []string{
	KeySiteName,
	KeyTagline,
	KeyContactEmail,
	KeyContactPhone,
	KeyAddress,
	KeyFacebookURL,
	KeyInstagramURL,
	KeyMaintenanceMode,
}

// Domain errors
var (
	ErrEmptyKey   = errors.New("key is required")
	ErrUnknownKey = errors.New("unknown setting key")
)

// Setting is a single site configuration value.
type Setting struct {
	Key       string
	Value     string
	UpdatedAt time.Time
	UpdatedBy string // account ID of the last editor
}

// Validate checks that the Setting has a recognised key.
// PRE: Setting struct is populated
// POST: Returns nil if valid, error otherwise
func (s *Setting) Validate() error {
	if strings.TrimSpace(s.Key) == "" {
		return ErrEmptyKey
	}
	if !IsKnownKey(s.Key) {
		return ErrUnknownKey
	}
	return nil
}

// IsKnownKey reports whether key is one the console manages.
func IsKnownKey(key string) bool {
	for _, k := range KnownKeys {
		if key == k {
			return true
		}
	}
	return false
}

// Defaults returns the seed values applied on first boot.
func Defaults() map[string]string {
	return map[string]string{
		KeySiteName:        "The Fringe",
		KeyTagline:         "Courses and services for curious people",
		KeyContactEmail:    "hello@thefringe.co.nz",
		KeyContactPhone:    "",
		KeyAddress:         "",
		KeyFacebookURL:     "",
		KeyInstagramURL:    "",
		KeyMaintenanceMode: "off",
	}
}
