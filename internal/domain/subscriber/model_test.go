package subscriber_test

import (
	"testing"
	"time"

	"fringe/internal/domain/subscriber"
)

// TestSubscriber_Validate tests validation of Subscriber.
func TestSubscriber_Validate(t *testing.T) {
	tests := []struct {
		name    string
		sub     subscriber.Subscriber
		wantErr error
	}{
		{
			name:    "valid subscriber",
			sub:     subscriber.Subscriber{Email: "kia@example.com", Status: subscriber.StatusActive},
			wantErr: nil,
		},
		{
			name:    "invalid email",
			sub:     subscriber.Subscriber{Email: "nope", Status: subscriber.StatusActive},
			wantErr: subscriber.ErrInvalidEmail,
		},
		{
			name:    "bogus status",
			sub:     subscriber.Subscriber{Email: "kia@example.com", Status: "paused"},
			wantErr: subscriber.ErrInvalidStatus,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.sub.Validate(); err != tt.wantErr {
				t.Errorf("Validate() error = %v, want %v", err, tt.wantErr)
			}
		})
	}

	t.Run("defaults source to website", func(t *testing.T) {
		s := subscriber.Subscriber{Email: "kia@example.com", Status: subscriber.StatusActive}
		if err := s.Validate(); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if s.Source != subscriber.SourceWebsite {
			t.Errorf("expected source=website, got %s", s.Source)
		}
	})
}

// TestSubscriber_Unsubscribe tests the unsubscribe transition.
func TestSubscriber_Unsubscribe(t *testing.T) {
	now := time.Date(2026, 8, 1, 8, 0, 0, 0, time.UTC)

	t.Run("active to unsubscribed", func(t *testing.T) {
		s := subscriber.Subscriber{Status: subscriber.StatusActive}
		if err := s.Unsubscribe(now); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if s.Status != subscriber.StatusUnsubscribed {
			t.Errorf("expected status=unsubscribed, got %s", s.Status)
		}
		if !s.UnsubscribedAt.Equal(now) {
			t.Errorf("expected UnsubscribedAt=%v, got %v", now, s.UnsubscribedAt)
		}
	})

	t.Run("already unsubscribed", func(t *testing.T) {
		s := subscriber.Subscriber{Status: subscriber.StatusUnsubscribed}
		if err := s.Unsubscribe(now); err != subscriber.ErrAlreadyUnsubscribed {
			t.Errorf("expected ErrAlreadyUnsubscribed, got %v", err)
		}
	})

	t.Run("resubscribe clears timestamp", func(t *testing.T) {
		s := subscriber.Subscriber{Status: subscriber.StatusUnsubscribed, UnsubscribedAt: now}
		s.Resubscribe()
		if s.Status != subscriber.StatusActive {
			t.Errorf("expected status=active, got %s", s.Status)
		}
		if !s.UnsubscribedAt.IsZero() {
			t.Errorf("expected UnsubscribedAt cleared, got %v", s.UnsubscribedAt)
		}
	})
}
