package emailtemplate

import (
	"errors"
	"strings"
	"time"
)

// Well-known template keys seeded at startup.
const (
	KeyContactReceived   = "contact_received"
	KeySubscriberWelcome = "subscriber_welcome"
	KeyReviewApproved    = "review_approved"
	KeyCampaign          = "campaign"
)

// Event constants — things that can fire an email trigger.
const (
	EventContactReceived   = "contact.received"
	EventSubscriberWelcome = "subscriber.welcome"
	EventReviewApproved    = "review.approved"
	EventCampaignSend      = "campaign.send"
)

// Recipient constants — who a trigger emails.
const (
	RecipientAdmin    = "admin"
	RecipientCustomer = "customer"
)

// ValidEvents contains all recognised trigger events.
var ValidEvents = []string{
	EventContactReceived,
	EventSubscriberWelcome,
	EventReviewApproved,
	EventCampaignSend,
}

// Domain errors
var (
	ErrEmptyKey         = errors.New("key is required")
	ErrEmptyName        = errors.New("name is required")
	ErrEmptySubject     = errors.New("subject is required")
	ErrEmptyBody        = errors.New("body is required")
	ErrInvalidEvent     = errors.New("unknown trigger event")
	ErrInvalidRecipient = errors.New("recipient must be 'admin' or 'customer'")
	ErrEmptyTemplateKey = errors.New("template_key is required")
)

// Template is a keyed email template. Body is markdown with
// {{placeholder}} substitution applied before rendering.
type Template struct {
	ID        string
	Key       string
	Name      string
	Subject   string
	Body      string
	Active    bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Validate checks that the Template has valid data.
// PRE: Template struct is populated
// POST: Returns nil if valid, error otherwise
func (t *Template) Validate() error {
	if strings.TrimSpace(t.Key) == "" {
		return ErrEmptyKey
	}
	if strings.TrimSpace(t.Name) == "" {
		return ErrEmptyName
	}
	if strings.TrimSpace(t.Subject) == "" {
		return ErrEmptySubject
	}
	if strings.TrimSpace(t.Body) == "" {
		return ErrEmptyBody
	}
	return nil
}

// Render substitutes {{placeholder}} tokens in the subject and body.
// PRE: vars maps placeholder names to replacement text
// POST: Returns the substituted subject and body; unknown tokens are left as-is
func (t *Template) Render(vars map[string]string) (subject, body string) {
	subject = t.Subject
	body = t.Body
	for k, v := range vars {
		token := "{{" + k + "}}"
		subject = strings.ReplaceAll(subject, token, v)
		body = strings.ReplaceAll(body, token, v)
	}
	return subject, body
}

// Trigger binds an event to a template and recipient kind.
type Trigger struct {
	ID          string
	Event       string
	TemplateKey string
	Recipient   string
	Enabled     bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Validate checks that the Trigger has valid data.
// PRE: Trigger struct is populated
// POST: Returns nil if valid, error otherwise
func (tr *Trigger) Validate() error {
	if !IsValidEvent(tr.Event) {
		return ErrInvalidEvent
	}
	if tr.TemplateKey == "" {
		return ErrEmptyTemplateKey
	}
	if tr.Recipient != RecipientAdmin && tr.Recipient != RecipientCustomer {
		return ErrInvalidRecipient
	}
	return nil
}

// IsValidEvent reports whether event is a recognised trigger event.
func IsValidEvent(event string) bool {
	for _, e := range ValidEvents {
		if event == e {
			return true
		}
	}
	return false
}
