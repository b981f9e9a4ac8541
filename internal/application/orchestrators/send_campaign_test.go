package orchestrators

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	emailDomain "fringe/internal/domain/emailtemplate"
	"fringe/internal/domain/subscriber"
)

func TestExecuteSendCampaign_QueuesPerSubscriber(t *testing.T) {
	templates := newMockTemplateStore(emailDomain.Template{
		Key: "campaign", Name: "Newsletter", Subject: "News for {{name}}", Body: "Hi {{name}}", Active: true,
	})
	subs := newMockSubscriberStore()
	subs.subs["s-1"] = subscriber.Subscriber{ID: "s-1", Email: "a@example.com", Name: "Ana", Status: subscriber.StatusActive}
	subs.subs["s-2"] = subscriber.Subscriber{ID: "s-2", Email: "b@example.com", Name: "Ben", Status: subscriber.StatusActive}
	subs.subs["s-3"] = subscriber.Subscriber{ID: "s-3", Email: "c@example.com", Status: subscriber.StatusUnsubscribed}
	outbox := newMockOutboxStore()

	result, err := ExecuteSendCampaign(context.Background(), SendCampaignInput{
		TemplateKey: "campaign",
		ActorID:     "admin-1",
	}, SendCampaignDeps{
		TemplateStore:   templates,
		SubscriberStore: subs,
		OutboxStore:     outbox,
		GenerateID:      sequentialID(),
		Now:             fixedNow,
		ReplyTo:         "hello@thefringe.co.nz",
	})
	require.NoError(t, err)

	assert.Equal(t, 2, result.Recipients, "unsubscribed addresses excluded")
	assert.Equal(t, 2, result.Queued)
	require.Len(t, outbox.entries, 2)

	// Each payload is personalised for its recipient.
	seen := map[string]string{}
	for _, entry := range outbox.entries {
		var payload EmailPayload
		require.NoError(t, json.Unmarshal([]byte(entry.Payload), &payload))
		require.Len(t, payload.To, 1)
		seen[payload.To[0]] = payload.Subject
	}
	assert.Equal(t, "News for Ana", seen["a@example.com"])
	assert.Equal(t, "News for Ben", seen["b@example.com"])
}

func TestExecuteSendCampaign_InactiveTemplate(t *testing.T) {
	templates := newMockTemplateStore(emailDomain.Template{
		Key: "campaign", Name: "Newsletter", Subject: "s", Body: "b", Active: false,
	})
	subs := newMockSubscriberStore()
	subs.subs["s-1"] = subscriber.Subscriber{ID: "s-1", Email: "a@example.com", Status: subscriber.StatusActive}

	_, err := ExecuteSendCampaign(context.Background(), SendCampaignInput{
		TemplateKey: "campaign",
	}, SendCampaignDeps{
		TemplateStore:   templates,
		SubscriberStore: subs,
		OutboxStore:     newMockOutboxStore(),
		GenerateID:      sequentialID(),
		Now:             fixedNow,
	})
	assert.ErrorIs(t, err, ErrTemplateInactive)
}

func TestExecuteSendCampaign_NoActiveSubscribers(t *testing.T) {
	templates := newMockTemplateStore(emailDomain.Template{
		Key: "campaign", Name: "Newsletter", Subject: "s", Body: "b", Active: true,
	})

	_, err := ExecuteSendCampaign(context.Background(), SendCampaignInput{
		TemplateKey: "campaign",
	}, SendCampaignDeps{
		TemplateStore:   templates,
		SubscriberStore: newMockSubscriberStore(),
		OutboxStore:     newMockOutboxStore(),
		GenerateID:      sequentialID(),
		Now:             fixedNow,
	})
	assert.ErrorIs(t, err, ErrNoSubscribers)
}
