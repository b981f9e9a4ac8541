package review

import (
	"errors"
	"net/mail"
	"strings"
	"time"
)

// Status constants for the review moderation lifecycle.
const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusRejected = "rejected"
)

// Subject constants — what a review is attached to.
const (
	SubjectCourse  = "course"
	SubjectService = "service"
)

// Max length constants for user-editable fields.
const (
	MaxTitleLength = 150
	MaxBodyLength  = 3000
)

// Domain errors
var (
	ErrEmptyAuthor    = errors.New("author is required")
	ErrInvalidEmail   = errors.New("a valid email address is required")
	ErrInvalidRating  = errors.New("rating must be between 1 and 5")
	ErrInvalidSubject = errors.New("subject must be 'course' or 'service'")
	ErrEmptySubjectID = errors.New("subject_id is required")
	ErrBodyTooLong    = errors.New("body exceeds maximum length")
	ErrNotPending     = errors.New("only pending reviews can be moderated")
)

// Review is a customer-submitted product review awaiting moderation.
type Review struct {
	ID          string
	Subject     string // course or service
	SubjectID   string
	Author      string
	Email       string
	Rating      int
	Title       string
	Body        string
	Status      string
	SubmittedAt time.Time
	ModeratedAt time.Time
	ModeratedBy string // account ID of the moderator
}

// Validate checks that the Review has valid data.
// PRE: Review struct is populated
// POST: Returns nil if valid, error otherwise; Email is normalised to lowercase
func (r *Review) Validate() error {
	if strings.TrimSpace(r.Author) == "" {
		return ErrEmptyAuthor
	}
	addr, err := mail.ParseAddress(r.Email)
	if err != nil {
		return ErrInvalidEmail
	}
	r.Email = strings.ToLower(addr.Address)
	if r.Rating < 1 || r.Rating > 5 {
		return ErrInvalidRating
	}
	if r.Subject != SubjectCourse && r.Subject != SubjectService {
		return ErrInvalidSubject
	}
	if r.SubjectID == "" {
		return ErrEmptySubjectID
	}
	if len(r.Title) > MaxTitleLength {
		r.Title = r.Title[:MaxTitleLength]
	}
	if len(r.Body) > MaxBodyLength {
		return ErrBodyTooLong
	}
	return nil
}

// Approve transitions a pending review to approved.
// PRE: Status is pending
// POST: Status is approved, moderation fields set
func (r *Review) Approve(moderatorID string, now time.Time) error {
	if r.Status != StatusPending {
		return ErrNotPending
	}
	r.Status = StatusApproved
	r.ModeratedBy = moderatorID
	r.ModeratedAt = now
	return nil
}

// Reject transitions a pending review to rejected.
// PRE: Status is pending
// POST: Status is rejected, moderation fields set
func (r *Review) Reject(moderatorID string, now time.Time) error {
	if r.Status != StatusPending {
		return ErrNotPending
	}
	r.Status = StatusRejected
	r.ModeratedBy = moderatorID
	r.ModeratedAt = now
	return nil
}
