package orchestrators

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	auditStore "fringe/internal/adapters/storage/audit"
	offerStore "fringe/internal/adapters/storage/offer"
	auditDomain "fringe/internal/domain/audit"
)

// ExpireOffersDeps holds dependencies for the expired-offer sweep.
type ExpireOffersDeps struct {
	OfferStore offerStore.Store
	Now        func() time.Time
}

// ExecuteExpireOffers deactivates offers whose end date has passed.
// POST: Expired offers are inactive; returns how many were swept
// INVARIANT: Offers without an end date are never touched
func ExecuteExpireOffers(ctx context.Context, deps ExpireOffersDeps) (int64, error) {
	swept, err := deps.OfferStore.DeactivateExpired(ctx, deps.Now())
	if err != nil {
		return 0, err
	}
	if swept > 0 {
		log.Info().Int64("swept", swept).Msg("expired offers deactivated")
	}
	return swept, nil
}

// PruneAuditDeps holds dependencies for the audit retention prune.
type PruneAuditDeps struct {
	AuditStore auditStore.Store
	Now        func() time.Time
}

// ExecutePruneAudit deletes audit events past the retention window.
// POST: Events older than RetentionDays are removed; returns how many were pruned
func ExecutePruneAudit(ctx context.Context, deps PruneAuditDeps) (int64, error) {
	cutoff := deps.Now().AddDate(0, 0, -auditDomain.RetentionDays)
	pruned, err := deps.AuditStore.DeleteOlderThan(ctx, cutoff)
	if err != nil {
		return 0, err
	}
	if pruned > 0 {
		log.Info().Int64("pruned", pruned).Time("cutoff", cutoff).Msg("audit events pruned")
	}
	return pruned, nil
}
