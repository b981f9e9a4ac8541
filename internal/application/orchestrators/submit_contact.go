package orchestrators

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	contactStore "fringe/internal/adapters/storage/contact"
	domain "fringe/internal/domain/contact"
	"fringe/internal/domain/emailtemplate"
)

// SubmitContactInput carries a contact form submission from the public site.
type SubmitContactInput struct {
	Name    string
	Email   string
	Phone   string
	Subject string
	Body    string
}

// SubmitContactDeps holds dependencies for SubmitContact.
type SubmitContactDeps struct {
	ContactStore contactStore.Store
	FireTrigger  FireTriggerDeps
	GenerateID   func() string
	Now          func() time.Time
}

// ExecuteSubmitContact stores a contact message and notifies via email triggers.
// PRE: Input carries the raw form fields
// POST: Message persisted with status 'new'; contact.received trigger fired
// INVARIANT: A trigger failure never loses the stored message
func ExecuteSubmitContact(ctx context.Context, input SubmitContactInput, deps SubmitContactDeps) (domain.Message, error) {
	msg := domain.Message{
		ID:         deps.GenerateID(),
		Name:       input.Name,
		Email:      input.Email,
		Phone:      input.Phone,
		Subject:    input.Subject,
		Body:       input.Body,
		Status:     domain.StatusNew,
		ReceivedAt: deps.Now(),
	}
	if err := msg.Validate(); err != nil {
		return domain.Message{}, err
	}

	if err := deps.ContactStore.Save(ctx, msg); err != nil {
		return domain.Message{}, err
	}

	_, err := ExecuteFireTrigger(ctx, FireTriggerInput{
		Event: emailtemplate.EventContactReceived,
		Vars: map[string]string{
			"name":    msg.Name,
			"email":   msg.Email,
			"subject": msg.Subject,
			"message": msg.Body,
		},
		CustomerEmail: msg.Email,
	}, deps.FireTrigger)
	if err != nil {
		log.Error().Err(err).Str("message_id", msg.ID).Msg("contact trigger failed")
	}

	log.Info().Str("event", "contact_received").Str("message_id", msg.ID).Str("email", msg.Email).Msg("engagement event")
	return msg, nil
}
