package faq

import (
	"errors"
	"strings"
	"time"
)

// Domain errors
var (
	ErrEmptyQuestion = errors.New("question is required")
	ErrEmptyAnswer   = errors.New("answer is required")
)

// FAQ is a question/answer pair shown on the public site.
type FAQ struct {
	ID           string
	Question     string
	Answer       string // markdown
	Section      string // free-text grouping, e.g. "Booking", "Payments"
	DisplayOrder int
	Published    bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Validate checks that the FAQ has valid data.
func (f *FAQ) Validate() error {
	if strings.TrimSpace(f.Question) == "" {
		return ErrEmptyQuestion
	}
	if strings.TrimSpace(f.Answer) == "" {
		return ErrEmptyAnswer
	}
	return nil
}
