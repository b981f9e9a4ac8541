package contact_test

import (
	"testing"
	"time"

	"fringe/internal/domain/contact"
)

// TestMessage_Validate tests validation of contact messages.
func TestMessage_Validate(t *testing.T) {
	valid := contact.Message{
		ID: "1", Name: "Hemi", Email: "hemi@example.com",
		Body: "Do you run evening classes?", Status: contact.StatusNew,
	}

	tests := []struct {
		name    string
		mutate  func(m *contact.Message)
		wantErr error
	}{
		{name: "valid message", mutate: func(_ *contact.Message) {}, wantErr: nil},
		{name: "empty name", mutate: func(m *contact.Message) { m.Name = " " }, wantErr: contact.ErrEmptyName},
		{name: "bad email", mutate: func(m *contact.Message) { m.Email = "nope" }, wantErr: contact.ErrInvalidEmail},
		{name: "empty body", mutate: func(m *contact.Message) { m.Body = "" }, wantErr: contact.ErrEmptyMessage},
		{name: "bogus status", mutate: func(m *contact.Message) { m.Status = "open" }, wantErr: contact.ErrInvalidStatus},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := valid
			tt.mutate(&m)
			if err := m.Validate(); err != tt.wantErr {
				t.Errorf("Validate() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

// TestMessage_MarkRead tests the read transition.
func TestMessage_MarkRead(t *testing.T) {
	now := time.Date(2026, 8, 1, 14, 0, 0, 0, time.UTC)
	later := now.Add(time.Hour)

	m := contact.Message{Status: contact.StatusNew}
	m.MarkRead(now)
	if m.Status != contact.StatusRead {
		t.Errorf("expected status=read, got %s", m.Status)
	}
	if !m.ReadAt.Equal(now) {
		t.Errorf("expected ReadAt=%v, got %v", now, m.ReadAt)
	}

	// Re-reading never moves the first-read timestamp.
	m.MarkRead(later)
	if !m.ReadAt.Equal(now) {
		t.Errorf("expected ReadAt unchanged, got %v", m.ReadAt)
	}
}

// TestMessage_MarkReplied tests the replied transition.
func TestMessage_MarkReplied(t *testing.T) {
	now := time.Date(2026, 8, 1, 14, 0, 0, 0, time.UTC)

	m := contact.Message{Status: contact.StatusNew}
	m.MarkReplied(now)
	if m.Status != contact.StatusReplied {
		t.Errorf("expected status=replied, got %s", m.Status)
	}
	if !m.RepliedAt.Equal(now) || !m.ReadAt.Equal(now) {
		t.Errorf("expected replied and read timestamps set, got read=%v replied=%v", m.ReadAt, m.RepliedAt)
	}
}
