package orchestrators

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	emailDomain "fringe/internal/domain/emailtemplate"
	outboxDomain "fringe/internal/domain/outbox"
)

func fireDeps(templates *mockTemplateStore, triggers *mockTriggerStore, outbox *mockOutboxStore) FireTriggerDeps {
	return FireTriggerDeps{
		TemplateStore: templates,
		TriggerStore:  triggers,
		OutboxStore:   outbox,
		GenerateID:    sequentialID(),
		Now:           fixedNow,
		AdminEmail:    "admin@thefringe.co.nz",
		ReplyTo:       "hello@thefringe.co.nz",
	}
}

func TestExecuteFireTrigger_QueuesRenderedEmail(t *testing.T) {
	templates := newMockTemplateStore(emailDomain.Template{
		ID: "t-1", Key: "contact_received", Name: "Contact received",
		Subject: "New enquiry from {{name}}", Body: "**{{name}}** wrote: {{message}}", Active: true,
	})
	triggers := &mockTriggerStore{triggers: []emailDomain.Trigger{
		{ID: "trg-1", Event: emailDomain.EventContactReceived, TemplateKey: "contact_received", Recipient: emailDomain.RecipientAdmin, Enabled: true},
	}}
	outbox := newMockOutboxStore()

	queued, err := ExecuteFireTrigger(context.Background(), FireTriggerInput{
		Event: emailDomain.EventContactReceived,
		Vars:  map[string]string{"name": "Rose", "message": "hi"},
	}, fireDeps(templates, triggers, outbox))
	require.NoError(t, err)
	require.Equal(t, 1, queued)

	entry, ok := outbox.entries["id-1"]
	require.True(t, ok, "expected outbox entry queued")
	assert.Equal(t, outboxDomain.ActionTypeEmail, entry.ActionType)
	assert.Equal(t, outboxDomain.StatusPending, entry.Status)

	var payload EmailPayload
	require.NoError(t, json.Unmarshal([]byte(entry.Payload), &payload))
	assert.Equal(t, []string{"admin@thefringe.co.nz"}, payload.To)
	assert.Equal(t, "New enquiry from Rose", payload.Subject)
	assert.Contains(t, payload.HTML, "<strong>Rose</strong>")
	assert.Equal(t, "hello@thefringe.co.nz", payload.ReplyTo)
}

func TestExecuteFireTrigger_CustomerRecipient(t *testing.T) {
	templates := newMockTemplateStore(emailDomain.Template{
		Key: "subscriber_welcome", Name: "Welcome", Subject: "Welcome {{name}}", Body: "Kia ora", Active: true,
	})
	triggers := &mockTriggerStore{triggers: []emailDomain.Trigger{
		{Event: emailDomain.EventSubscriberWelcome, TemplateKey: "subscriber_welcome", Recipient: emailDomain.RecipientCustomer, Enabled: true},
	}}
	outbox := newMockOutboxStore()

	queued, err := ExecuteFireTrigger(context.Background(), FireTriggerInput{
		Event:         emailDomain.EventSubscriberWelcome,
		CustomerEmail: "rose@example.com",
	}, fireDeps(templates, triggers, outbox))
	require.NoError(t, err)
	require.Equal(t, 1, queued)

	var payload EmailPayload
	require.NoError(t, json.Unmarshal([]byte(outbox.entries["id-1"].Payload), &payload))
	assert.Equal(t, []string{"rose@example.com"}, payload.To)
}

func TestExecuteFireTrigger_SkipsInactiveTemplate(t *testing.T) {
	templates := newMockTemplateStore(emailDomain.Template{
		Key: "contact_received", Name: "Contact", Subject: "s", Body: "b", Active: false,
	})
	triggers := &mockTriggerStore{triggers: []emailDomain.Trigger{
		{Event: emailDomain.EventContactReceived, TemplateKey: "contact_received", Recipient: emailDomain.RecipientAdmin, Enabled: true},
	}}
	outbox := newMockOutboxStore()

	queued, err := ExecuteFireTrigger(context.Background(), FireTriggerInput{
		Event: emailDomain.EventContactReceived,
	}, fireDeps(templates, triggers, outbox))
	require.NoError(t, err)
	assert.Zero(t, queued)
	assert.Empty(t, outbox.entries)
}

func TestExecuteFireTrigger_SkipsMissingCustomerAddress(t *testing.T) {
	templates := newMockTemplateStore(emailDomain.Template{
		Key: "review_approved", Name: "Approved", Subject: "s", Body: "b", Active: true,
	})
	triggers := &mockTriggerStore{triggers: []emailDomain.Trigger{
		{Event: emailDomain.EventReviewApproved, TemplateKey: "review_approved", Recipient: emailDomain.RecipientCustomer, Enabled: true},
	}}
	outbox := newMockOutboxStore()

	queued, err := ExecuteFireTrigger(context.Background(), FireTriggerInput{
		Event: emailDomain.EventReviewApproved, // no CustomerEmail
	}, fireDeps(templates, triggers, outbox))
	require.NoError(t, err)
	assert.Zero(t, queued)
}

func TestExecuteFireTrigger_UnknownEvent(t *testing.T) {
	_, err := ExecuteFireTrigger(context.Background(), FireTriggerInput{
		Event: "order.placed",
	}, fireDeps(newMockTemplateStore(), &mockTriggerStore{}, newMockOutboxStore()))
	assert.ErrorIs(t, err, emailDomain.ErrInvalidEvent)
}

func TestRenderMarkdown(t *testing.T) {
	html, err := RenderMarkdown("# Hello\n\nSome *text*.")
	require.NoError(t, err)
	assert.Contains(t, html, "<h1>Hello</h1>")
	assert.Contains(t, html, "<em>text</em>")
}
