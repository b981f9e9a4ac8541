package outbox_test

import (
	"errors"
	"testing"
	"time"

	"fringe/internal/domain/outbox"
)

// TestEntry_Lifecycle tests the attempt/success/failure transitions.
func TestEntry_Lifecycle(t *testing.T) {
	t.Run("attempt marks retrying", func(t *testing.T) {
		e := outbox.Entry{Status: outbox.StatusPending, MaxAttempts: 3}
		e.MarkAttempt()
		if e.Status != outbox.StatusRetrying {
			t.Errorf("expected status=retrying, got %s", e.Status)
		}
		if e.Attempts != 1 {
			t.Errorf("expected attempts=1, got %d", e.Attempts)
		}
	})

	t.Run("success records external id", func(t *testing.T) {
		e := outbox.Entry{Status: outbox.StatusRetrying, Attempts: 2, MaxAttempts: 3}
		e.MarkSuccess("msg-123")
		if e.Status != outbox.StatusDone {
			t.Errorf("expected status=done, got %s", e.Status)
		}
		if e.ExternalID != "msg-123" {
			t.Errorf("expected external id recorded, got %q", e.ExternalID)
		}
	})

	t.Run("failure below max attempts stays retryable", func(t *testing.T) {
		e := outbox.Entry{Status: outbox.StatusRetrying, Attempts: 1, MaxAttempts: 3}
		e.MarkFailed(errors.New("provider down"))
		if !e.CanRetry() {
			t.Error("expected entry to remain retryable")
		}
	})

	t.Run("failure at max attempts is terminal", func(t *testing.T) {
		e := outbox.Entry{Status: outbox.StatusRetrying, Attempts: 3, MaxAttempts: 3}
		e.MarkFailed(errors.New("provider down"))
		if e.Status != outbox.StatusFailed {
			t.Errorf("expected status=failed, got %s", e.Status)
		}
		if e.CanRetry() {
			t.Error("expected entry not retryable")
		}
		if !e.IsTerminal() {
			t.Error("expected entry terminal")
		}
	})

	t.Run("abandoned is terminal", func(t *testing.T) {
		e := outbox.Entry{Status: outbox.StatusRetrying, Attempts: 1, MaxAttempts: 3}
		e.MarkAbandoned()
		if e.Status != outbox.StatusAbandoned || !e.IsTerminal() {
			t.Errorf("expected abandoned terminal entry, got %s", e.Status)
		}
	})
}

// TestEntry_NextRetryDelay tests exponential backoff with a cap.
func TestEntry_NextRetryDelay(t *testing.T) {
	base := 30 * time.Second
	max := time.Hour

	tests := []struct {
		attempts int
		want     time.Duration
	}{
		{attempts: 0, want: 0},
		{attempts: 1, want: 30 * time.Second},
		{attempts: 2, want: time.Minute},
		{attempts: 3, want: 2 * time.Minute},
		{attempts: 10, want: time.Hour},
	}

	for _, tt := range tests {
		e := outbox.Entry{Attempts: tt.attempts}
		if got := e.NextRetryDelay(base, max); got != tt.want {
			t.Errorf("attempts=%d: NextRetryDelay() = %v, want %v", tt.attempts, got, tt.want)
		}
	}
}
