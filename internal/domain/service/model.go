package service

import (
	"errors"
	"strings"
	"time"
)

// Status constants for the service publication lifecycle.
const (
	StatusDraft     = "draft"
	StatusPublished = "published"
	StatusArchived  = "archived"
)

// MaxTitleLength bounds user-editable titles.
const MaxTitleLength = 200

// Domain errors
var (
	ErrEmptyTitle    = errors.New("title is required")
	ErrTitleTooLong  = errors.New("title exceeds maximum length")
	ErrEmptySlug     = errors.New("slug is required")
	ErrEmptyCategory = errors.New("category_id is required")
	ErrNegativePrice = errors.New("price cannot be negative")
	ErrInvalidStatus = errors.New("status must be one of: draft, published, archived")
)

// Service is a bookable service offering (consults, hires, one-offs).
type Service struct {
	ID              string
	Title           string
	Slug            string
	CategoryID      string
	Description     string // markdown
	PriceCents      int
	DurationMinutes int
	ImageURL        string
	Status          string
	Featured        bool
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// Validate checks that the Service has valid data.
// PRE: Service struct is populated
// POST: Returns nil if valid, error otherwise
func (s *Service) Validate() error {
	if strings.TrimSpace(s.Title) == "" {
		return ErrEmptyTitle
	}
	if len(s.Title) > MaxTitleLength {
		return ErrTitleTooLong
	}
	if s.Slug == "" {
		return ErrEmptySlug
	}
	if s.CategoryID == "" {
		return ErrEmptyCategory
	}
	if s.PriceCents < 0 {
		return ErrNegativePrice
	}
	switch s.Status {
	case StatusDraft, StatusPublished, StatusArchived:
	default:
		return ErrInvalidStatus
	}
	return nil
}

// IsPublished reports whether the service is visible to the public site.
func (s *Service) IsPublished() bool {
	return s.Status == StatusPublished
}
