package course

import (
	"errors"
	"strings"
	"time"
)

// Status constants for the course publication lifecycle.
const (
	StatusDraft     = "draft"
	StatusPublished = "published"
	StatusArchived  = "archived"
)

// Level constants.
const (
	LevelBeginner     = "beginner"
	LevelIntermediate = "intermediate"
	LevelAdvanced     = "advanced"
	LevelAllLevels    = "all"
)

// Max length constants for user-editable fields.
const (
	MaxTitleLength       = 200
	MaxDescriptionLength = 20000
)

// Domain errors
var (
	ErrEmptyTitle       = errors.New("title is required")
	ErrTitleTooLong     = errors.New("title exceeds maximum length")
	ErrEmptySlug        = errors.New("slug is required")
	ErrEmptyCategory    = errors.New("category_id is required")
	ErrNegativePrice    = errors.New("price cannot be negative")
	ErrInvalidCapacity  = errors.New("capacity cannot be negative")
	ErrInvalidLevel     = errors.New("level must be one of: beginner, intermediate, advanced, all")
	ErrInvalidStatus    = errors.New("status must be one of: draft, published, archived")
	ErrAlreadyPublished = errors.New("course is already published")
	ErrNotPublished     = errors.New("only published courses can be archived")
)

// Course is a bookable course in the catalogue.
type Course struct {
	ID            string
	Title         string
	Slug          string
	CategoryID    string
	Description   string // markdown
	PriceCents    int
	DurationWeeks int
	Level         string
	Capacity      int
	StartDate     time.Time
	ImageURL      string
	Status        string
	Featured      bool
	CreatedAt     time.Time
	UpdatedAt     time.Time
	PublishedAt   time.Time
}

// Validate checks that the Course has valid data.
// PRE: Course struct is populated
// POST: Returns nil if valid, error otherwise
func (c *Course) Validate() error {
	if strings.TrimSpace(c.Title) == "" {
		return ErrEmptyTitle
	}
	if len(c.Title) > MaxTitleLength {
		return ErrTitleTooLong
	}
	if c.Slug == "" {
		return ErrEmptySlug
	}
	if c.CategoryID == "" {
		return ErrEmptyCategory
	}
	if len(c.Description) > MaxDescriptionLength {
		return errors.New("description exceeds maximum length")
	}
	if c.PriceCents < 0 {
		return ErrNegativePrice
	}
	if c.Capacity < 0 {
		return ErrInvalidCapacity
	}
	switch c.Level {
	case LevelBeginner, LevelIntermediate, LevelAdvanced, LevelAllLevels:
	default:
		return ErrInvalidLevel
	}
	switch c.Status {
	case StatusDraft, StatusPublished, StatusArchived:
	default:
		return ErrInvalidStatus
	}
	return nil
}

// Publish transitions a draft course to published.
// PRE: Status is draft or archived
// POST: Status is published, PublishedAt set
func (c *Course) Publish(now time.Time) error {
	if c.Status == StatusPublished {
		return ErrAlreadyPublished
	}
	c.Status = StatusPublished
	c.PublishedAt = now
	return nil
}

// Archive transitions a published course to archived.
// PRE: Status is published
// POST: Status is archived
func (c *Course) Archive() error {
	if c.Status != StatusPublished {
		return ErrNotPublished
	}
	c.Status = StatusArchived
	return nil
}

// IsPublished reports whether the course is visible to the public site.
func (c *Course) IsPublished() bool {
	return c.Status == StatusPublished
}
