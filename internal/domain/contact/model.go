package contact

import (
	"errors"
	"net/mail"
	"strings"
	"time"
)

// Status constants for the contact message lifecycle.
const (
	StatusNew      = "new"
	StatusRead     = "read"
	StatusReplied  = "replied"
	StatusArchived = "archived"
)

// Max length constants for user-editable fields.
const (
	MaxNameLength    = 120
	MaxSubjectLength = 200
	MaxMessageLength = 5000
)

// Domain errors
var (
	ErrEmptyName      = errors.New("name is required")
	ErrInvalidEmail   = errors.New("a valid email address is required")
	ErrEmptyMessage   = errors.New("message is required")
	ErrMessageTooLong = errors.New("message exceeds maximum length")
	ErrInvalidStatus  = errors.New("status must be one of: new, read, replied, archived")
)

// Message is an inbound contact-form submission.
type Message struct {
	ID         string
	Name       string
	Email      string
	Phone      string
	Subject    string
	Body       string
	Status     string
	ReceivedAt time.Time
	ReadAt     time.Time
	RepliedAt  time.Time
}

// Validate checks that the Message has valid data.
// PRE: Message struct is populated
// POST: Returns nil if valid, error otherwise; Email is normalised to lowercase
func (m *Message) Validate() error {
	if strings.TrimSpace(m.Name) == "" || len(m.Name) > MaxNameLength {
		return ErrEmptyName
	}
	addr, err := mail.ParseAddress(m.Email)
	if err != nil {
		return ErrInvalidEmail
	}
	m.Email = strings.ToLower(addr.Address)
	if strings.TrimSpace(m.Body) == "" {
		return ErrEmptyMessage
	}
	if len(m.Body) > MaxMessageLength {
		return ErrMessageTooLong
	}
	if len(m.Subject) > MaxSubjectLength {
		m.Subject = m.Subject[:MaxSubjectLength]
	}
	switch m.Status {
	case StatusNew, StatusRead, StatusReplied, StatusArchived:
	default:
		return ErrInvalidStatus
	}
	return nil
}

// MarkRead records that an admin opened the message.
// POST: Status is read (unless already replied/archived), ReadAt set once
func (m *Message) MarkRead(now time.Time) {
	if m.ReadAt.IsZero() {
		m.ReadAt = now
	}
	if m.Status == StatusNew {
		m.Status = StatusRead
	}
}

// MarkReplied records that an admin replied.
// POST: Status is replied, RepliedAt set
func (m *Message) MarkReplied(now time.Time) {
	m.Status = StatusReplied
	m.RepliedAt = now
	if m.ReadAt.IsZero() {
		m.ReadAt = now
	}
}
