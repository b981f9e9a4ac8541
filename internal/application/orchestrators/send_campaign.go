package orchestrators

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/rs/zerolog/log"

	templateStore "fringe/internal/adapters/storage/emailtemplate"
	outboxStore "fringe/internal/adapters/storage/outbox"
	subscriberStore "fringe/internal/adapters/storage/subscriber"
	outboxDomain "fringe/internal/domain/outbox"
)

// SendCampaignInput carries input for the campaign orchestrator.
type SendCampaignInput struct {
	TemplateKey string
	ActorID     string
}

// SendCampaignResult reports how many sends were queued.
type SendCampaignResult struct {
	Recipients int `json:"recipients"`
	Queued     int `json:"queued"`
}

// SendCampaignDeps holds dependencies for SendCampaign.
type SendCampaignDeps struct {
	TemplateStore   templateStore.TemplateStore
	SubscriberStore subscriberStore.Store
	OutboxStore     outboxStore.Store
	GenerateID      func() string
	Now             func() time.Time
	ReplyTo         string
}

var (
	ErrTemplateInactive = errors.New("template is not active")
	ErrNoSubscribers    = errors.New("no active subscribers to send to")
)

// ExecuteSendCampaign queues one outbox email per active subscriber.
// PRE: TemplateKey refers to an active template
// POST: One outbox entry per active subscriber; {{name}}/{{email}} substituted per recipient
// INVARIANT: Unsubscribed and bounced addresses are never queued
func ExecuteSendCampaign(ctx context.Context, input SendCampaignInput, deps SendCampaignDeps) (SendCampaignResult, error) {
	tpl, err := deps.TemplateStore.GetByKey(ctx, input.TemplateKey)
	if err != nil {
		return SendCampaignResult{}, err
	}
	if !tpl.Active {
		return SendCampaignResult{}, ErrTemplateInactive
	}

	subs, err := deps.SubscriberStore.ListActive(ctx)
	if err != nil {
		return SendCampaignResult{}, err
	}
	if len(subs) == 0 {
		return SendCampaignResult{}, ErrNoSubscribers
	}

	result := SendCampaignResult{Recipients: len(subs)}
	for _, sub := range subs {
		subject, body := tpl.Render(map[string]string{
			"name":  sub.Name,
			"email": sub.Email,
		})
		html, err := RenderMarkdown(body)
		if err != nil {
			return result, err
		}

		payload, err := json.Marshal(EmailPayload{
			To:      []string{sub.Email},
			Subject: subject,
			HTML:    html,
			ReplyTo: deps.ReplyTo,
		})
		if err != nil {
			return result, err
		}

		entry := outboxDomain.Entry{
			ID:          deps.GenerateID(),
			ActionType:  outboxDomain.ActionTypeEmail,
			Payload:     string(payload),
			Status:      outboxDomain.StatusPending,
			MaxAttempts: 5,
			CreatedAt:   deps.Now(),
		}
		if err := deps.OutboxStore.Save(ctx, entry); err != nil {
			return result, err
		}
		result.Queued++
	}

	log.Info().Str("actor", input.ActorID).Str("template_key", input.TemplateKey).
		Int("recipients", result.Recipients).Int("queued", result.Queued).Msg("campaign queued")
	return result, nil
}
