package review_test

import (
	"testing"
	"time"

	"fringe/internal/domain/review"
)

// TestReview_Validate tests validation of Review.
func TestReview_Validate(t *testing.T) {
	valid := review.Review{
		ID: "1", Subject: review.SubjectCourse, SubjectID: "c-1",
		Author: "Aroha", Email: "aroha@example.com", Rating: 5,
		Status: review.StatusPending,
	}

	tests := []struct {
		name    string
		mutate  func(r *review.Review)
		wantErr error
	}{
		{name: "valid review", mutate: func(_ *review.Review) {}, wantErr: nil},
		{name: "empty author", mutate: func(r *review.Review) { r.Author = " " }, wantErr: review.ErrEmptyAuthor},
		{name: "bad email", mutate: func(r *review.Review) { r.Email = "not-an-email" }, wantErr: review.ErrInvalidEmail},
		{name: "rating too low", mutate: func(r *review.Review) { r.Rating = 0 }, wantErr: review.ErrInvalidRating},
		{name: "rating too high", mutate: func(r *review.Review) { r.Rating = 6 }, wantErr: review.ErrInvalidRating},
		{name: "bogus subject", mutate: func(r *review.Review) { r.Subject = "venue" }, wantErr: review.ErrInvalidSubject},
		{name: "missing subject id", mutate: func(r *review.Review) { r.SubjectID = "" }, wantErr: review.ErrEmptySubjectID},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := valid
			tt.mutate(&r)
			if err := r.Validate(); err != tt.wantErr {
				t.Errorf("Validate() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

// TestReview_Validate_NormalisesEmail verifies email lowercasing.
func TestReview_Validate_NormalisesEmail(t *testing.T) {
	r := review.Review{
		Subject: review.SubjectService, SubjectID: "s-1",
		Author: "Ben", Email: "Ben@Example.COM", Rating: 4,
	}
	if err := r.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r.Email != "ben@example.com" {
		t.Errorf("expected lowercase email, got %s", r.Email)
	}
}

// TestReview_Moderation tests the approve/reject transitions.
func TestReview_Moderation(t *testing.T) {
	now := time.Date(2026, 8, 1, 9, 0, 0, 0, time.UTC)

	t.Run("approve pending", func(t *testing.T) {
		r := review.Review{Status: review.StatusPending}
		if err := r.Approve("admin-1", now); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if r.Status != review.StatusApproved {
			t.Errorf("expected status=approved, got %s", r.Status)
		}
		if r.ModeratedBy != "admin-1" || !r.ModeratedAt.Equal(now) {
			t.Errorf("moderation fields not set: by=%s at=%v", r.ModeratedBy, r.ModeratedAt)
		}
	})

	t.Run("reject pending", func(t *testing.T) {
		r := review.Review{Status: review.StatusPending}
		if err := r.Reject("admin-1", now); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if r.Status != review.StatusRejected {
			t.Errorf("expected status=rejected, got %s", r.Status)
		}
	})

	t.Run("approve already approved", func(t *testing.T) {
		r := review.Review{Status: review.StatusApproved}
		if err := r.Approve("admin-1", now); err != review.ErrNotPending {
			t.Errorf("expected ErrNotPending, got %v", err)
		}
	})

	t.Run("reject already rejected", func(t *testing.T) {
		r := review.Review{Status: review.StatusRejected}
		if err := r.Reject("admin-1", now); err != review.ErrNotPending {
			t.Errorf("expected ErrNotPending, got %v", err)
		}
	})
}
