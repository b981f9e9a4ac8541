package emailtemplate_test

import (
	"testing"

	"fringe/internal/domain/emailtemplate"
)

// TestTemplate_Render tests {{placeholder}} substitution.
func TestTemplate_Render(t *testing.T) {
	tpl := emailtemplate.Template{
		Subject: "Thanks {{name}}",
		Body:    "Hi {{name}}, we got your message about {{subject}}. {{missing}} stays.",
	}

	subject, body := tpl.Render(map[string]string{
		"name":    "Mere",
		"subject": "workshops",
	})

	if subject != "Thanks Mere" {
		t.Errorf("subject = %q", subject)
	}
	if body != "Hi Mere, we got your message about workshops. {{missing}} stays." {
		t.Errorf("body = %q", body)
	}
}

// TestTemplate_Validate tests required template fields.
func TestTemplate_Validate(t *testing.T) {
	valid := emailtemplate.Template{Key: "campaign", Name: "Campaign", Subject: "s", Body: "b"}

	tests := []struct {
		name    string
		mutate  func(tpl *emailtemplate.Template)
		wantErr error
	}{
		{name: "valid", mutate: func(_ *emailtemplate.Template) {}, wantErr: nil},
		{name: "empty key", mutate: func(tpl *emailtemplate.Template) { tpl.Key = " " }, wantErr: emailtemplate.ErrEmptyKey},
		{name: "empty name", mutate: func(tpl *emailtemplate.Template) { tpl.Name = "" }, wantErr: emailtemplate.ErrEmptyName},
		{name: "empty subject", mutate: func(tpl *emailtemplate.Template) { tpl.Subject = "" }, wantErr: emailtemplate.ErrEmptySubject},
		{name: "empty body", mutate: func(tpl *emailtemplate.Template) { tpl.Body = "" }, wantErr: emailtemplate.ErrEmptyBody},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tpl := valid
			tt.mutate(&tpl)
			if err := tpl.Validate(); err != tt.wantErr {
				t.Errorf("Validate() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

// TestTrigger_Validate tests trigger event and recipient checks.
func TestTrigger_Validate(t *testing.T) {
	tests := []struct {
		name    string
		trigger emailtemplate.Trigger
		wantErr error
	}{
		{
			name:    "valid admin trigger",
			trigger: emailtemplate.Trigger{Event: emailtemplate.EventContactReceived, TemplateKey: "contact_received", Recipient: emailtemplate.RecipientAdmin},
			wantErr: nil,
		},
		{
			name:    "valid customer trigger",
			trigger: emailtemplate.Trigger{Event: emailtemplate.EventReviewApproved, TemplateKey: "review_approved", Recipient: emailtemplate.RecipientCustomer},
			wantErr: nil,
		},
		{
			name:    "unknown event",
			trigger: emailtemplate.Trigger{Event: "order.placed", TemplateKey: "k", Recipient: emailtemplate.RecipientAdmin},
			wantErr: emailtemplate.ErrInvalidEvent,
		},
		{
			name:    "missing template key",
			trigger: emailtemplate.Trigger{Event: emailtemplate.EventContactReceived, Recipient: emailtemplate.RecipientAdmin},
			wantErr: emailtemplate.ErrEmptyTemplateKey,
		},
		{
			name:    "bogus recipient",
			trigger: emailtemplate.Trigger{Event: emailtemplate.EventContactReceived, TemplateKey: "k", Recipient: "everyone"},
			wantErr: emailtemplate.ErrInvalidRecipient,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.trigger.Validate(); err != tt.wantErr {
				t.Errorf("Validate() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}
