package orchestrators

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog/log"

	subscriberStore "fringe/internal/adapters/storage/subscriber"
	"fringe/internal/domain/emailtemplate"
	domain "fringe/internal/domain/subscriber"
)

// SubscribeInput carries a newsletter signup.
type SubscribeInput struct {
	Email  string
	Name   string
	Source string // defaults to website when empty
}

// SubscribeDeps holds dependencies for Subscribe.
type SubscribeDeps struct {
	SubscriberStore subscriberStore.Store
	FireTrigger     FireTriggerDeps
	GenerateID      func() string
	Now             func() time.Time
}

// ErrAlreadySubscribed is returned for an email that is already active.
var ErrAlreadySubscribed = errors.New("email is already subscribed")

// ExecuteSubscribe adds or reactivates a newsletter subscriber.
// PRE: Email provided
// POST: Subscriber is active; subscriber.welcome trigger fired for new signups
// INVARIANT: One subscriber row per email; resubscribing keeps the original ID
func ExecuteSubscribe(ctx context.Context, input SubscribeInput, deps SubscribeDeps) (domain.Subscriber, error) {
	source := input.Source
	if source == "" {
		source = domain.SourceWebsite
	}

	existing, err := deps.SubscriberStore.GetByEmail(ctx, input.Email)
	if err == nil {
		if existing.Status == domain.StatusActive {
			return domain.Subscriber{}, ErrAlreadySubscribed
		}
		existing.Resubscribe()
		if err := deps.SubscriberStore.Save(ctx, existing); err != nil {
			return domain.Subscriber{}, err
		}
		log.Info().Str("event", "resubscribed").Str("email", existing.Email).Msg("engagement event")
		return existing, nil
	}

	sub := domain.Subscriber{
		ID:           deps.GenerateID(),
		Email:        input.Email,
		Name:         input.Name,
		Source:       source,
		Status:       domain.StatusActive,
		SubscribedAt: deps.Now(),
	}
	if err := sub.Validate(); err != nil {
		return domain.Subscriber{}, err
	}
	if err := deps.SubscriberStore.Save(ctx, sub); err != nil {
		return domain.Subscriber{}, err
	}

	_, err = ExecuteFireTrigger(ctx, FireTriggerInput{
		Event:         emailtemplate.EventSubscriberWelcome,
		Vars:          map[string]string{"name": sub.Name, "email": sub.Email},
		CustomerEmail: sub.Email,
	}, deps.FireTrigger)
	if err != nil {
		log.Error().Err(err).Str("subscriber_id", sub.ID).Msg("welcome trigger failed")
	}

	log.Info().Str("event", "subscribed").Str("email", sub.Email).Str("source", source).Msg("engagement event")
	return sub, nil
}

// UnsubscribeDeps holds dependencies for Unsubscribe.
type UnsubscribeDeps struct {
	SubscriberStore subscriberStore.Store
	Now             func() time.Time
}

// ExecuteUnsubscribe marks a subscriber as unsubscribed by email.
// PRE: Email provided
// POST: Subscriber status is unsubscribed with the timestamp recorded
func ExecuteUnsubscribe(ctx context.Context, email string, deps UnsubscribeDeps) error {
	sub, err := deps.SubscriberStore.GetByEmail(ctx, email)
	if err != nil {
		return err
	}
	if err := sub.Unsubscribe(deps.Now()); err != nil {
		return err
	}
	if err := deps.SubscriberStore.Save(ctx, sub); err != nil {
		return err
	}
	log.Info().Str("event", "unsubscribed").Str("email", sub.Email).Msg("engagement event")
	return nil
}
