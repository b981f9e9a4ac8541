package orchestrators

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fringe/internal/adapters/email"
	outboxDomain "fringe/internal/domain/outbox"
)

// stubExecutor records calls and returns a canned result.
type stubExecutor struct {
	calls      int
	externalID string
	err        error
}

func (s *stubExecutor) Execute(_ context.Context, _ string) (string, error) {
	s.calls++
	return s.externalID, s.err
}

func pendingEntry(id string) outboxDomain.Entry {
	return outboxDomain.Entry{
		ID:          id,
		ActionType:  outboxDomain.ActionTypeEmail,
		Payload:     `{"to":["a@example.com"],"subject":"s","html":"<p>b</p>"}`,
		Status:      outboxDomain.StatusPending,
		MaxAttempts: 5,
		CreatedAt:   fixedTime,
	}
}

func TestOutboxProcessor_ProcessPending_Success(t *testing.T) {
	store := newMockOutboxStore()
	store.entries["e-1"] = pendingEntry("e-1")
	exec := &stubExecutor{externalID: "msg-1"}
	p := NewOutboxProcessor(store, map[string]ActionExecutor{outboxDomain.ActionTypeEmail: exec})

	require.NoError(t, p.ProcessPending(context.Background()))

	assert.Equal(t, 1, exec.calls)
	got := store.entries["e-1"]
	assert.Equal(t, outboxDomain.StatusDone, got.Status)
	assert.Equal(t, "msg-1", got.ExternalID)
}

func TestOutboxProcessor_ProcessPending_FailureKeepsRetrying(t *testing.T) {
	store := newMockOutboxStore()
	store.entries["e-1"] = pendingEntry("e-1")
	exec := &stubExecutor{err: errors.New("provider down")}
	p := NewOutboxProcessor(store, map[string]ActionExecutor{outboxDomain.ActionTypeEmail: exec})

	require.NoError(t, p.ProcessPending(context.Background()))

	got := store.entries["e-1"]
	assert.Equal(t, outboxDomain.StatusRetrying, got.Status)
	assert.Equal(t, 1, got.Attempts)
	assert.Equal(t, "provider down", got.ErrorMessage)
	assert.True(t, got.CanRetry())
}

func TestOutboxProcessor_ProcessPending_HonoursBackoff(t *testing.T) {
	store := newMockOutboxStore()
	e := pendingEntry("e-1")
	e.Status = outboxDomain.StatusRetrying
	e.Attempts = 1
	e.LastAttemptedAt = time.Now() // just attempted, inside the backoff window
	store.entries["e-1"] = e
	exec := &stubExecutor{externalID: "msg-1"}
	p := NewOutboxProcessor(store, map[string]ActionExecutor{outboxDomain.ActionTypeEmail: exec})

	require.NoError(t, p.ProcessPending(context.Background()))
	assert.Zero(t, exec.calls, "entry inside backoff window must not be attempted")
}

func TestOutboxProcessor_ProcessPending_NoExecutor(t *testing.T) {
	store := newMockOutboxStore()
	e := pendingEntry("e-1")
	e.ActionType = "sms"
	store.entries["e-1"] = e
	p := NewOutboxProcessor(store, nil)

	require.NoError(t, p.ProcessPending(context.Background()))

	got := store.entries["e-1"]
	assert.Contains(t, got.ErrorMessage, "no executor")
	assert.Equal(t, outboxDomain.StatusAbandoned, got.Status, "entry without an executor must not be re-picked forever")
	assert.True(t, got.IsTerminal())
}

func TestOutboxProcessor_ProcessSingle_TerminalEntry(t *testing.T) {
	store := newMockOutboxStore()
	e := pendingEntry("e-1")
	e.Status = outboxDomain.StatusDone
	store.entries["e-1"] = e
	p := NewOutboxProcessor(store, nil)

	err := p.ProcessSingle(context.Background(), "e-1")
	assert.Error(t, err)
}

func TestOutboxProcessor_AbandonEntry(t *testing.T) {
	store := newMockOutboxStore()
	store.entries["e-1"] = pendingEntry("e-1")
	p := NewOutboxProcessor(store, nil)

	require.NoError(t, p.AbandonEntry(context.Background(), "e-1"))
	assert.Equal(t, outboxDomain.StatusAbandoned, store.entries["e-1"].Status)
}

// recordingSender captures the last send request.
type recordingSender struct {
	last email.SendRequest
	err  error
}

func (s *recordingSender) Send(_ context.Context, req email.SendRequest) (email.SendResult, error) {
	s.last = req
	if s.err != nil {
		return email.SendResult{}, s.err
	}
	return email.SendResult{MessageID: "provider-1"}, nil
}

func (s *recordingSender) SendBatch(ctx context.Context, reqs []email.SendRequest) ([]email.SendResult, error) {
	results := make([]email.SendResult, 0, len(reqs))
	for _, req := range reqs {
		r, err := s.Send(ctx, req)
		if err != nil {
			return results, err
		}
		results = append(results, r)
	}
	return results, nil
}

// batchSender counts provider calls so tests can assert that several
// queued emails went out in a single batch request.
type batchSender struct {
	batchCalls int
	sendCalls  int
	lastBatch  []email.SendRequest
	err        error
}

func (s *batchSender) Send(_ context.Context, _ email.SendRequest) (email.SendResult, error) {
	s.sendCalls++
	return email.SendResult{MessageID: "single-1"}, s.err
}

func (s *batchSender) SendBatch(_ context.Context, reqs []email.SendRequest) ([]email.SendResult, error) {
	s.batchCalls++
	s.lastBatch = reqs
	if s.err != nil {
		return nil, s.err
	}
	results := make([]email.SendResult, len(reqs))
	for i := range reqs {
		results[i] = email.SendResult{MessageID: fmt.Sprintf("batch-%d", i)}
	}
	return results, nil
}

func TestOutboxProcessor_ProcessPending_BatchesSameType(t *testing.T) {
	store := newMockOutboxStore()
	store.entries["e-1"] = pendingEntry("e-1")
	store.entries["e-2"] = pendingEntry("e-2")
	store.entries["e-3"] = pendingEntry("e-3")
	sender := &batchSender{}
	exec := &EmailExecutor{Sender: sender, From: "noreply@thefringe.co.nz"}
	p := NewOutboxProcessor(store, map[string]ActionExecutor{outboxDomain.ActionTypeEmail: exec})

	require.NoError(t, p.ProcessPending(context.Background()))

	assert.Equal(t, 1, sender.batchCalls, "same-type entries should go out in one provider call")
	assert.Zero(t, sender.sendCalls)
	assert.Len(t, sender.lastBatch, 3)

	seen := make(map[string]bool)
	for id, e := range store.entries {
		assert.Equal(t, outboxDomain.StatusDone, e.Status, id)
		assert.Equal(t, 1, e.Attempts, id)
		assert.NotEmpty(t, e.ExternalID, id)
		seen[e.ExternalID] = true
	}
	assert.Len(t, seen, 3, "each entry gets its own provider message ID")
}

func TestOutboxProcessor_ProcessPending_SingleEntrySkipsBatch(t *testing.T) {
	store := newMockOutboxStore()
	store.entries["e-1"] = pendingEntry("e-1")
	sender := &batchSender{}
	exec := &EmailExecutor{Sender: sender, From: "noreply@thefringe.co.nz"}
	p := NewOutboxProcessor(store, map[string]ActionExecutor{outboxDomain.ActionTypeEmail: exec})

	require.NoError(t, p.ProcessPending(context.Background()))

	assert.Zero(t, sender.batchCalls)
	assert.Equal(t, 1, sender.sendCalls)
	assert.Equal(t, outboxDomain.StatusDone, store.entries["e-1"].Status)
}

func TestOutboxProcessor_ProcessPending_BatchFailureRetriesAll(t *testing.T) {
	store := newMockOutboxStore()
	store.entries["e-1"] = pendingEntry("e-1")
	store.entries["e-2"] = pendingEntry("e-2")
	sender := &batchSender{err: errors.New("provider down")}
	exec := &EmailExecutor{Sender: sender, From: "noreply@thefringe.co.nz"}
	p := NewOutboxProcessor(store, map[string]ActionExecutor{outboxDomain.ActionTypeEmail: exec})

	require.NoError(t, p.ProcessPending(context.Background()))

	for id, e := range store.entries {
		assert.Equal(t, outboxDomain.StatusRetrying, e.Status, id)
		assert.Equal(t, 1, e.Attempts, id)
		assert.Equal(t, "provider down", e.ErrorMessage, id)
	}
}

func TestEmailExecutor_ExecuteBatch_MixedPayloads(t *testing.T) {
	sender := &batchSender{}
	exec := &EmailExecutor{Sender: sender, From: "noreply@thefringe.co.nz"}

	results := exec.ExecuteBatch(context.Background(), []string{
		`{"to":["a@example.com"],"subject":"one","html":"<p>1</p>"}`,
		"not json",
		`{"subject":"no recipients"}`,
		`{"to":["b@example.com"],"subject":"two","html":"<p>2</p>"}`,
	})

	require.Len(t, results, 4)
	assert.NoError(t, results[0].Err)
	assert.Equal(t, "batch-0", results[0].ExternalID)
	assert.Error(t, results[1].Err)
	assert.Error(t, results[2].Err)
	assert.NoError(t, results[3].Err)
	assert.Equal(t, "batch-1", results[3].ExternalID)

	require.Len(t, sender.lastBatch, 2, "bad payloads must not reach the provider")
	assert.Equal(t, []string{"a@example.com"}, sender.lastBatch[0].To)
	assert.Equal(t, []string{"b@example.com"}, sender.lastBatch[1].To)
}

func TestEmailExecutor_ExecuteBatch_AllInvalidSkipsProvider(t *testing.T) {
	sender := &batchSender{}
	exec := &EmailExecutor{Sender: sender, From: "noreply@thefringe.co.nz"}

	results := exec.ExecuteBatch(context.Background(), []string{"not json", `{"subject":"x"}`})

	require.Len(t, results, 2)
	assert.Error(t, results[0].Err)
	assert.Error(t, results[1].Err)
	assert.Zero(t, sender.batchCalls)
}

func TestEmailExecutor_Execute(t *testing.T) {
	sender := &recordingSender{}
	exec := &EmailExecutor{Sender: sender, From: "The Fringe <noreply@thefringe.co.nz>"}

	id, err := exec.Execute(context.Background(),
		`{"to":["a@example.com"],"subject":"Hello","html":"<p>hi</p>","reply_to":"hello@thefringe.co.nz"}`)
	require.NoError(t, err)

	assert.Equal(t, "provider-1", id)
	assert.Equal(t, []string{"a@example.com"}, sender.last.To)
	assert.Equal(t, "The Fringe <noreply@thefringe.co.nz>", sender.last.From)
	assert.Equal(t, "Hello", sender.last.Subject)
	assert.Equal(t, "hello@thefringe.co.nz", sender.last.ReplyTo)
}

func TestEmailExecutor_Execute_BadPayload(t *testing.T) {
	exec := &EmailExecutor{Sender: &recordingSender{}}

	_, err := exec.Execute(context.Background(), "not json")
	assert.Error(t, err)

	_, err = exec.Execute(context.Background(), `{"subject":"no recipients"}`)
	assert.Error(t, err)
}
