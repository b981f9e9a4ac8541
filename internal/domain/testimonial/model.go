package testimonial

import (
	"errors"
	"strings"
	"time"
)

// Domain errors
var (
	ErrEmptyAuthor   = errors.New("author is required")
	ErrEmptyQuote    = errors.New("quote is required")
	ErrInvalidRating = errors.New("rating must be between 1 and 5")
)

// Testimonial is a curated customer quote shown on the public site.
type Testimonial struct {
	ID           string
	Author       string
	Affiliation  string // role or company line under the author name
	Quote        string
	Rating       int
	Approved     bool
	Featured     bool
	DisplayOrder int
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Validate checks that the Testimonial has valid data.
func (t *Testimonial) Validate() error {
	if strings.TrimSpace(t.Author) == "" {
		return ErrEmptyAuthor
	}
	if strings.TrimSpace(t.Quote) == "" {
		return ErrEmptyQuote
	}
	if t.Rating < 1 || t.Rating > 5 {
		return ErrInvalidRating
	}
	return nil
}
