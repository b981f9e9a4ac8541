package orchestrators

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/yuin/goldmark"
	goldmarkHTML "github.com/yuin/goldmark/renderer/html"

	templateStore "fringe/internal/adapters/storage/emailtemplate"
	outboxStore "fringe/internal/adapters/storage/outbox"
	emailDomain "fringe/internal/domain/emailtemplate"
	outboxDomain "fringe/internal/domain/outbox"
)

// mdRenderer is a goldmark instance configured for email-safe HTML output.
var mdRenderer = goldmark.New(
	goldmark.WithRendererOptions(
		goldmarkHTML.WithHardWraps(),
	),
)

// RenderMarkdown converts markdown to HTML for email bodies.
func RenderMarkdown(md string) (string, error) {
	var buf bytes.Buffer
	if err := mdRenderer.Convert([]byte(md), &buf); err != nil {
		return "", fmt.Errorf("render markdown: %w", err)
	}
	return buf.String(), nil
}

// EmailPayload is the JSON structure queued in the outbox for email delivery.
type EmailPayload struct {
	To      []string `json:"to"`
	Subject string   `json:"subject"`
	HTML    string   `json:"html"`
	ReplyTo string   `json:"reply_to,omitempty"`
}

// FireTriggerInput carries input for the fire-trigger orchestrator.
type FireTriggerInput struct {
	Event         string
	Vars          map[string]string // {{placeholder}} substitutions
	CustomerEmail string            // recipient when a trigger targets the customer
}

// FireTriggerDeps holds dependencies for FireTrigger.
type FireTriggerDeps struct {
	TemplateStore templateStore.TemplateStore
	TriggerStore  templateStore.TriggerStore
	OutboxStore   outboxStore.Store
	GenerateID    func() string
	Now           func() time.Time
	AdminEmail    string // recipient when a trigger targets the admin
	ReplyTo       string
}

// ExecuteFireTrigger enqueues one outbox email per enabled trigger bound to the event.
// PRE: Event is a recognised trigger event
// POST: One outbox entry per trigger with a rendered, addressed email payload;
// triggers with a missing or inactive template are skipped
// INVARIANT: No email is sent synchronously — delivery happens via the outbox
func ExecuteFireTrigger(ctx context.Context, input FireTriggerInput, deps FireTriggerDeps) (int, error) {
	if !emailDomain.IsValidEvent(input.Event) {
		return 0, emailDomain.ErrInvalidEvent
	}

	triggers, err := deps.TriggerStore.ListByEvent(ctx, input.Event)
	if err != nil {
		return 0, fmt.Errorf("list triggers for %s: %w", input.Event, err)
	}

	queued := 0
	for _, trigger := range triggers {
		tpl, err := deps.TemplateStore.GetByKey(ctx, trigger.TemplateKey)
		if err != nil || !tpl.Active {
			log.Warn().Str("event", input.Event).Str("template_key", trigger.TemplateKey).
				Msg("trigger skipped: template missing or inactive")
			continue
		}

		var to string
		switch trigger.Recipient {
		case emailDomain.RecipientAdmin:
			to = deps.AdminEmail
		case emailDomain.RecipientCustomer:
			to = input.CustomerEmail
		}
		if to == "" {
			log.Warn().Str("event", input.Event).Str("recipient", trigger.Recipient).
				Msg("trigger skipped: no recipient address")
			continue
		}

		subject, body := tpl.Render(input.Vars)
		html, err := RenderMarkdown(body)
		if err != nil {
			return queued, err
		}

		payload, err := json.Marshal(EmailPayload{
			To:      []string{to},
			Subject: subject,
			HTML:    html,
			ReplyTo: deps.ReplyTo,
		})
		if err != nil {
			return queued, err
		}

		entry := outboxDomain.Entry{
			ID:          deps.GenerateID(),
			ActionType:  outboxDomain.ActionTypeEmail,
			Payload:     string(payload),
			Status:      outboxDomain.StatusPending,
			MaxAttempts: 5,
			CreatedAt:   deps.Now(),
		}
		if err := entry.Validate(); err != nil {
			return queued, err
		}
		if err := deps.OutboxStore.Save(ctx, entry); err != nil {
			return queued, fmt.Errorf("enqueue outbox entry: %w", err)
		}
		queued++
	}

	log.Info().Str("event", input.Event).Int("queued", queued).Msg("trigger fired")
	return queued, nil
}
