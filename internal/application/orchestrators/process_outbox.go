package orchestrators

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	emailAdapter "fringe/internal/adapters/email"
	"fringe/internal/adapters/metrics"
	outboxStore "fringe/internal/adapters/storage/outbox"
	domain "fringe/internal/domain/outbox"
)

// OutboxProcessor drains deferred external actions with retry and backoff.
type OutboxProcessor struct {
	store     outboxStore.Store
	executors map[string]ActionExecutor
	baseDelay time.Duration
	maxDelay  time.Duration
	batchSize int
}

// ActionExecutor executes a specific type of external action.
type ActionExecutor interface {
	// Execute runs the external action with the given payload.
	// Returns the provider's external ID and any error.
	Execute(ctx context.Context, payload string) (string, error)
}

// BatchActionExecutor is implemented by executors whose provider offers a
// batch endpoint. The processor hands over every due payload of the action
// type in one call; results are positional.
type BatchActionExecutor interface {
	ActionExecutor
	ExecuteBatch(ctx context.Context, payloads []string) []BatchResult
}

// BatchResult is the per-payload outcome of a batch delivery.
type BatchResult struct {
	ExternalID string
	Err        error
}

// NewOutboxProcessor creates a new outbox processor.
func NewOutboxProcessor(store outboxStore.Store, executors map[string]ActionExecutor) *OutboxProcessor {
	return &OutboxProcessor{
		store:     store,
		executors: executors,
		baseDelay: 30 * time.Second,
		maxDelay:  1 * time.Hour,
		batchSize: 25,
	}
}

// ProcessPending processes pending outbox entries with retries.
// Due entries are grouped by action type; when the executor supports
// batch delivery every payload in the group goes out in one provider call.
// PRE: Context is valid
// POST: Pending entries are processed, failed entries marked for retry
func (p *OutboxProcessor) ProcessPending(ctx context.Context) error {
	entries, err := p.store.ListPending(ctx, p.batchSize)
	if err != nil {
		return fmt.Errorf("list pending outbox entries: %w", err)
	}

	byType := make(map[string][]domain.Entry)
	var typeOrder []string
	for _, entry := range entries {
		if p.inBackoff(entry) {
			continue
		}
		if _, seen := byType[entry.ActionType]; !seen {
			typeOrder = append(typeOrder, entry.ActionType)
		}
		byType[entry.ActionType] = append(byType[entry.ActionType], entry)
	}

	for _, actionType := range typeOrder {
		group := byType[actionType]
		executor, ok := p.executors[actionType]
		if !ok {
			for _, entry := range group {
				if err := p.abandonNoExecutor(ctx, entry); err != nil {
					log.Error().Err(err).Str("entry_id", entry.ID).Msg("outbox abandon failed")
				}
			}
			continue
		}

		if batcher, ok := executor.(BatchActionExecutor); ok && len(group) > 1 {
			p.processBatch(ctx, batcher, group)
			continue
		}
		for _, entry := range group {
			if err := p.deliver(ctx, executor, entry); err != nil {
				log.Error().Err(err).Str("entry_id", entry.ID).Str("action_type", entry.ActionType).Msg("outbox process failed")
			}
		}
	}

	return nil
}

// inBackoff reports whether the entry's retry window has not yet elapsed.
func (p *OutboxProcessor) inBackoff(entry domain.Entry) bool {
	if entry.LastAttemptedAt.IsZero() {
		return false
	}
	return time.Since(entry.LastAttemptedAt) < entry.NextRetryDelay(p.baseDelay, p.maxDelay)
}

// abandonNoExecutor parks an entry whose action type has no executor.
// No executor will appear for the type while the process runs; abandoning
// stops the entry being re-picked every sweep.
func (p *OutboxProcessor) abandonNoExecutor(ctx context.Context, entry domain.Entry) error {
	entry.ErrorMessage = fmt.Sprintf("no executor registered for action type: %s", entry.ActionType)
	entry.MarkAbandoned()
	metrics.OutboxProcessed.WithLabelValues("abandoned").Inc()
	return p.store.Save(ctx, entry)
}

// deliver runs one entry through its executor and records the outcome.
func (p *OutboxProcessor) deliver(ctx context.Context, executor ActionExecutor, entry domain.Entry) error {
	entry.MarkAttempt()
	externalID, err := executor.Execute(ctx, entry.Payload)
	p.recordOutcome(&entry, externalID, err)
	return p.store.Save(ctx, entry)
}

// processBatch delivers a group of same-type entries in one provider call.
func (p *OutboxProcessor) processBatch(ctx context.Context, executor BatchActionExecutor, group []domain.Entry) {
	payloads := make([]string, len(group))
	for i := range group {
		group[i].MarkAttempt()
		payloads[i] = group[i].Payload
	}

	results := executor.ExecuteBatch(ctx, payloads)
	for i := range group {
		var res BatchResult
		if i < len(results) {
			res = results[i]
		} else {
			res.Err = fmt.Errorf("batch executor returned no result for payload %d", i)
		}
		p.recordOutcome(&group[i], res.ExternalID, res.Err)
		if err := p.store.Save(ctx, group[i]); err != nil {
			log.Error().Err(err).Str("entry_id", group[i].ID).Msg("outbox save failed")
		}
	}
}

// recordOutcome applies a delivery result to the entry and counts it.
func (p *OutboxProcessor) recordOutcome(entry *domain.Entry, externalID string, err error) {
	if err != nil {
		entry.MarkFailed(err)
		metrics.OutboxProcessed.WithLabelValues("failed").Inc()
		log.Warn().Err(err).Str("entry_id", entry.ID).Int("attempt", entry.Attempts).Msg("outbox action failed")
		return
	}
	entry.MarkSuccess(externalID)
	metrics.OutboxProcessed.WithLabelValues("done").Inc()
	log.Info().Str("entry_id", entry.ID).Str("action_type", entry.ActionType).
		Str("external_id", externalID).Msg("outbox action succeeded")
}

// ProcessSingle manually processes a single outbox entry (for admin retry).
// PRE: entryID is non-empty
// POST: Entry is processed, status updated
func (p *OutboxProcessor) ProcessSingle(ctx context.Context, entryID string) error {
	entry, err := p.store.GetByID(ctx, entryID)
	if err != nil {
		return fmt.Errorf("get outbox entry: %w", err)
	}

	if entry.IsTerminal() {
		return fmt.Errorf("entry %s is in terminal state and cannot be retried", entryID)
	}

	executor, ok := p.executors[entry.ActionType]
	if !ok {
		return fmt.Errorf("no executor registered for action type: %s", entry.ActionType)
	}

	entry.MarkAttempt()
	externalID, err := executor.Execute(ctx, entry.Payload)
	if err != nil {
		entry.MarkFailed(err)
		metrics.OutboxProcessed.WithLabelValues("failed").Inc()
	} else {
		entry.MarkSuccess(externalID)
		metrics.OutboxProcessed.WithLabelValues("done").Inc()
	}

	return p.store.Save(ctx, entry)
}

// AbandonEntry marks an entry as abandoned by an admin.
// PRE: entryID is non-empty
// POST: Entry status set to abandoned
func (p *OutboxProcessor) AbandonEntry(ctx context.Context, entryID string) error {
	entry, err := p.store.GetByID(ctx, entryID)
	if err != nil {
		return fmt.Errorf("get outbox entry: %w", err)
	}

	entry.MarkAbandoned()
	metrics.OutboxProcessed.WithLabelValues("abandoned").Inc()
	return p.store.Save(ctx, entry)
}

// --- Email Executor ---

// EmailExecutor delivers queued email payloads via the configured sender.
type EmailExecutor struct {
	Sender emailAdapter.Sender
	From   string
}

// Execute sends an email from the payload.
// PRE: payload is valid JSON matching EmailPayload
// POST: Email delivered via configured sender, returns the provider message ID
// INVARIANT: Outbox entry status is managed by the caller
func (e *EmailExecutor) Execute(ctx context.Context, payload string) (string, error) {
	var p EmailPayload
	if err := json.Unmarshal([]byte(payload), &p); err != nil {
		return "", fmt.Errorf("unmarshal email payload: %w", err)
	}
	if len(p.To) == 0 {
		return "", fmt.Errorf("email payload has no recipients")
	}

	result, err := e.Sender.Send(ctx, e.toSendRequest(p))
	if err != nil {
		return "", err
	}
	return result.MessageID, nil
}

// ExecuteBatch sends several email payloads in one provider call.
// Payloads that fail to decode get a per-item error without blocking the
// rest; a provider failure is applied to every dispatched item.
func (e *EmailExecutor) ExecuteBatch(ctx context.Context, payloads []string) []BatchResult {
	results := make([]BatchResult, len(payloads))
	var reqs []emailAdapter.SendRequest
	var reqIdx []int

	for i, payload := range payloads {
		var p EmailPayload
		if err := json.Unmarshal([]byte(payload), &p); err != nil {
			results[i].Err = fmt.Errorf("unmarshal email payload: %w", err)
			continue
		}
		if len(p.To) == 0 {
			results[i].Err = fmt.Errorf("email payload has no recipients")
			continue
		}
		reqs = append(reqs, e.toSendRequest(p))
		reqIdx = append(reqIdx, i)
	}

	if len(reqs) == 0 {
		return results
	}

	sent, err := e.Sender.SendBatch(ctx, reqs)
	for j, i := range reqIdx {
		if j < len(sent) {
			results[i].ExternalID = sent[j].MessageID
			continue
		}
		if err != nil {
			results[i].Err = err
		} else {
			results[i].Err = fmt.Errorf("provider returned no result for batch item %d", j)
		}
	}
	return results
}

func (e *EmailExecutor) toSendRequest(p EmailPayload) emailAdapter.SendRequest {
	return emailAdapter.SendRequest{
		To:      p.To,
		From:    e.From,
		Subject: p.Subject,
		HTML:    p.HTML,
		ReplyTo: p.ReplyTo,
	}
}
