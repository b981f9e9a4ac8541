package subscriber

import (
	"errors"
	"net/mail"
	"strings"
	"time"
)

// Status constants for the subscriber lifecycle.
const (
	StatusActive       = "active"
	StatusUnsubscribed = "unsubscribed"
	StatusBounced      = "bounced"
)

// Source constants — where a subscription came from.
const (
	SourceWebsite = "website"
	SourceImport  = "import"
	SourceManual  = "manual"
)

// Domain errors
var (
	ErrInvalidEmail        = errors.New("a valid email address is required")
	ErrInvalidStatus       = errors.New("status must be one of: active, unsubscribed, bounced")
	ErrAlreadyUnsubscribed = errors.New("subscriber is already unsubscribed")
)

// Subscriber is a newsletter list member.
type Subscriber struct {
	ID             string
	Email          string
	Name           string
	Source         string
	Status         string
	SubscribedAt   time.Time
	UnsubscribedAt time.Time
}

// Validate checks that the Subscriber has valid data.
// PRE: Subscriber struct is populated
// POST: Returns nil if valid, error otherwise; Email is normalised to lowercase
func (s *Subscriber) Validate() error {
	addr, err := mail.ParseAddress(s.Email)
	if err != nil {
		return ErrInvalidEmail
	}
	s.Email = strings.ToLower(addr.Address)
	switch s.Status {
	case StatusActive, StatusUnsubscribed, StatusBounced:
	default:
		return ErrInvalidStatus
	}
	if s.Source == "" {
		s.Source = SourceWebsite
	}
	return nil
}

// Unsubscribe transitions the subscriber off the list.
// PRE: Status is active or bounced
// POST: Status is unsubscribed, UnsubscribedAt set
func (s *Subscriber) Unsubscribe(now time.Time) error {
	if s.Status == StatusUnsubscribed {
		return ErrAlreadyUnsubscribed
	}
	s.Status = StatusUnsubscribed
	s.UnsubscribedAt = now
	return nil
}

// Resubscribe puts a previously unsubscribed address back on the list.
// POST: Status is active, UnsubscribedAt cleared
func (s *Subscriber) Resubscribe() {
	s.Status = StatusActive
	s.UnsubscribedAt = time.Time{}
}
