package category

import (
	"errors"
	"regexp"
	"strings"
	"time"
)

// Kind constants — what a category groups.
const (
	KindCourse  = "course"
	KindService = "service"
)

// Domain errors
var (
	ErrEmptyName   = errors.New("name is required")
	ErrEmptySlug   = errors.New("slug is required")
	ErrInvalidSlug = errors.New("slug may only contain lowercase letters, digits and hyphens")
	ErrInvalidKind = errors.New("kind must be 'course' or 'service'")
)

var slugPattern = regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)

// Category groups courses or services for the public catalogue.
type Category struct {
	ID           string
	Name         string
	Slug         string
	Kind         string
	Description  string
	DisplayOrder int
	Active       bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Validate checks that the Category has valid data.
// PRE: Category struct is populated
// POST: Returns nil if valid, error otherwise
func (c *Category) Validate() error {
	if strings.TrimSpace(c.Name) == "" {
		return ErrEmptyName
	}
	if c.Slug == "" {
		return ErrEmptySlug
	}
	if !slugPattern.MatchString(c.Slug) {
		return ErrInvalidSlug
	}
	if c.Kind != KindCourse && c.Kind != KindService {
		return ErrInvalidKind
	}
	return nil
}

// Slugify derives a URL slug from a name.
// POST: Returns lowercase text with non-alphanumerics collapsed to single hyphens
func Slugify(name string) string {
	s := strings.ToLower(strings.TrimSpace(name))
	var b strings.Builder
	lastHyphen := true // suppress leading hyphen
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z' || r >= '0' && r <= '9':
			b.WriteRune(r)
			lastHyphen = false
		default:
			if !lastHyphen {
				b.WriteByte('-')
				lastHyphen = true
			}
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}
