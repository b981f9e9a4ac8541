package orchestrators

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog/log"

	reviewStore "fringe/internal/adapters/storage/review"
	"fringe/internal/domain/emailtemplate"
	domain "fringe/internal/domain/review"
)

// ModerationDecision is the admin's verdict on a pending review.
type ModerationDecision string

const (
	DecisionApprove ModerationDecision = "approve"
	DecisionReject  ModerationDecision = "reject"
)

// ModerateReviewInput carries input for the moderation orchestrator.
type ModerateReviewInput struct {
	ReviewID    string
	Decision    ModerationDecision
	ModeratorID string
}

// ModerateReviewDeps holds dependencies for ModerateReview.
type ModerateReviewDeps struct {
	ReviewStore reviewStore.Store
	FireTrigger FireTriggerDeps
	Now         func() time.Time
}

// ErrUnknownDecision is returned for a decision other than approve/reject.
var ErrUnknownDecision = errors.New("decision must be 'approve' or 'reject'")

// ExecuteModerateReview approves or rejects a pending review.
// PRE: ReviewID refers to a pending review
// POST: Review status updated with moderation fields set;
// review.approved trigger fired on approval
func ExecuteModerateReview(ctx context.Context, input ModerateReviewInput, deps ModerateReviewDeps) (domain.Review, error) {
	rev, err := deps.ReviewStore.GetByID(ctx, input.ReviewID)
	if err != nil {
		return domain.Review{}, err
	}

	now := deps.Now()
	switch input.Decision {
	case DecisionApprove:
		if err := rev.Approve(input.ModeratorID, now); err != nil {
			return domain.Review{}, err
		}
	case DecisionReject:
		if err := rev.Reject(input.ModeratorID, now); err != nil {
			return domain.Review{}, err
		}
	default:
		return domain.Review{}, ErrUnknownDecision
	}

	if err := deps.ReviewStore.Save(ctx, rev); err != nil {
		return domain.Review{}, err
	}

	if input.Decision == DecisionApprove {
		_, err := ExecuteFireTrigger(ctx, FireTriggerInput{
			Event: emailtemplate.EventReviewApproved,
			Vars: map[string]string{
				"name":  rev.Author,
				"title": rev.Title,
			},
			CustomerEmail: rev.Email,
		}, deps.FireTrigger)
		if err != nil {
			log.Error().Err(err).Str("review_id", rev.ID).Msg("review approved trigger failed")
		}
	}

	log.Info().Str("event", "review_moderated").Str("review_id", rev.ID).
		Str("decision", string(input.Decision)).Str("moderator", input.ModeratorID).Msg("engagement event")
	return rev, nil
}
