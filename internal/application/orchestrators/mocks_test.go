package orchestrators

import (
	"context"
	"errors"
	"fmt"
	"time"

	contactStorePkg "fringe/internal/adapters/storage/contact"
	templateStorePkg "fringe/internal/adapters/storage/emailtemplate"
	outboxStorePkg "fringe/internal/adapters/storage/outbox"
	reviewStorePkg "fringe/internal/adapters/storage/review"
	subscriberStorePkg "fringe/internal/adapters/storage/subscriber"
	contactDomain "fringe/internal/domain/contact"
	emailDomain "fringe/internal/domain/emailtemplate"
	outboxDomain "fringe/internal/domain/outbox"
	reviewDomain "fringe/internal/domain/review"
	subscriberDomain "fringe/internal/domain/subscriber"
)

var errNotFound = errors.New("not found")

var fixedTime = time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)

func fixedNow() time.Time { return fixedTime }

// sequentialID returns a generator producing id-1, id-2, ...
func sequentialID() func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("id-%d", n)
	}
}

// --- template store mock ---

type mockTemplateStore struct {
	templates map[string]emailDomain.Template // keyed by Key
}

func newMockTemplateStore(templates ...emailDomain.Template) *mockTemplateStore {
	m := &mockTemplateStore{templates: make(map[string]emailDomain.Template)}
	for _, tpl := range templates {
		m.templates[tpl.Key] = tpl
	}
	return m
}

func (m *mockTemplateStore) GetByID(_ context.Context, id string) (emailDomain.Template, error) {
	for _, tpl := range m.templates {
		if tpl.ID == id {
			return tpl, nil
		}
	}
	return emailDomain.Template{}, errNotFound
}

func (m *mockTemplateStore) GetByKey(_ context.Context, key string) (emailDomain.Template, error) {
	tpl, ok := m.templates[key]
	if !ok {
		return emailDomain.Template{}, errNotFound
	}
	return tpl, nil
}

func (m *mockTemplateStore) Save(_ context.Context, tpl emailDomain.Template) error {
	m.templates[tpl.Key] = tpl
	return nil
}

func (m *mockTemplateStore) Delete(_ context.Context, id string) error {
	for key, tpl := range m.templates {
		if tpl.ID == id {
			delete(m.templates, key)
		}
	}
	return nil
}

func (m *mockTemplateStore) List(_ context.Context, _ templateStorePkg.ListFilter) ([]emailDomain.Template, error) {
	out := make([]emailDomain.Template, 0, len(m.templates))
	for _, tpl := range m.templates {
		out = append(out, tpl)
	}
	return out, nil
}

func (m *mockTemplateStore) Count(_ context.Context, _ templateStorePkg.ListFilter) (int, error) {
	return len(m.templates), nil
}

// --- trigger store mock ---

type mockTriggerStore struct {
	triggers []emailDomain.Trigger
}

func (m *mockTriggerStore) GetByID(_ context.Context, id string) (emailDomain.Trigger, error) {
	for _, trg := range m.triggers {
		if trg.ID == id {
			return trg, nil
		}
	}
	return emailDomain.Trigger{}, errNotFound
}

func (m *mockTriggerStore) ListByEvent(_ context.Context, event string) ([]emailDomain.Trigger, error) {
	var out []emailDomain.Trigger
	for _, trg := range m.triggers {
		if trg.Event == event && trg.Enabled {
			out = append(out, trg)
		}
	}
	return out, nil
}

func (m *mockTriggerStore) Save(_ context.Context, trg emailDomain.Trigger) error {
	for i, existing := range m.triggers {
		if existing.ID == trg.ID {
			m.triggers[i] = trg
			return nil
		}
	}
	m.triggers = append(m.triggers, trg)
	return nil
}

func (m *mockTriggerStore) Delete(_ context.Context, id string) error {
	for i, trg := range m.triggers {
		if trg.ID == id {
			m.triggers = append(m.triggers[:i], m.triggers[i+1:]...)
			return nil
		}
	}
	return nil
}

func (m *mockTriggerStore) List(_ context.Context) ([]emailDomain.Trigger, error) {
	return m.triggers, nil
}

// --- outbox store mock ---

type mockOutboxStore struct {
	entries map[string]outboxDomain.Entry
	saveErr error
}

func newMockOutboxStore() *mockOutboxStore {
	return &mockOutboxStore{entries: make(map[string]outboxDomain.Entry)}
}

func (m *mockOutboxStore) GetByID(_ context.Context, id string) (outboxDomain.Entry, error) {
	e, ok := m.entries[id]
	if !ok {
		return outboxDomain.Entry{}, errNotFound
	}
	return e, nil
}

func (m *mockOutboxStore) Save(_ context.Context, e outboxDomain.Entry) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.entries[e.ID] = e
	return nil
}

func (m *mockOutboxStore) ListPending(_ context.Context, limit int) ([]outboxDomain.Entry, error) {
	var out []outboxDomain.Entry
	for _, e := range m.entries {
		if e.CanRetry() {
			out = append(out, e)
		}
		if len(out) == limit {
			break
		}
	}
	return out, nil
}

func (m *mockOutboxStore) List(_ context.Context, _ outboxStorePkg.ListFilter) ([]outboxDomain.Entry, error) {
	out := make([]outboxDomain.Entry, 0, len(m.entries))
	for _, e := range m.entries {
		out = append(out, e)
	}
	return out, nil
}

func (m *mockOutboxStore) Count(_ context.Context, _ outboxStorePkg.ListFilter) (int, error) {
	return len(m.entries), nil
}

// --- subscriber store mock ---

type mockSubscriberStore struct {
	subs map[string]subscriberDomain.Subscriber // keyed by ID
}

func newMockSubscriberStore() *mockSubscriberStore {
	return &mockSubscriberStore{subs: make(map[string]subscriberDomain.Subscriber)}
}

func (m *mockSubscriberStore) GetByID(_ context.Context, id string) (subscriberDomain.Subscriber, error) {
	s, ok := m.subs[id]
	if !ok {
		return subscriberDomain.Subscriber{}, errNotFound
	}
	return s, nil
}

func (m *mockSubscriberStore) GetByEmail(_ context.Context, email string) (subscriberDomain.Subscriber, error) {
	for _, s := range m.subs {
		if s.Email == email {
			return s, nil
		}
	}
	return subscriberDomain.Subscriber{}, errNotFound
}

func (m *mockSubscriberStore) Save(_ context.Context, s subscriberDomain.Subscriber) error {
	m.subs[s.ID] = s
	return nil
}

func (m *mockSubscriberStore) Delete(_ context.Context, id string) error {
	delete(m.subs, id)
	return nil
}

func (m *mockSubscriberStore) List(_ context.Context, _ subscriberStorePkg.ListFilter) ([]subscriberDomain.Subscriber, error) {
	out := make([]subscriberDomain.Subscriber, 0, len(m.subs))
	for _, s := range m.subs {
		out = append(out, s)
	}
	return out, nil
}

func (m *mockSubscriberStore) Count(_ context.Context, _ subscriberStorePkg.ListFilter) (int, error) {
	return len(m.subs), nil
}

func (m *mockSubscriberStore) CountSubscribedBetween(_ context.Context, from, to time.Time) (int, error) {
	n := 0
	for _, s := range m.subs {
		if !s.SubscribedAt.Before(from) && s.SubscribedAt.Before(to) {
			n++
		}
	}
	return n, nil
}

func (m *mockSubscriberStore) ListActive(_ context.Context) ([]subscriberDomain.Subscriber, error) {
	var out []subscriberDomain.Subscriber
	for _, s := range m.subs {
		if s.Status == subscriberDomain.StatusActive {
			out = append(out, s)
		}
	}
	return out, nil
}

// --- contact store mock ---

type mockContactStore struct {
	messages map[string]contactDomain.Message
}

func newMockContactStore() *mockContactStore {
	return &mockContactStore{messages: make(map[string]contactDomain.Message)}
}

func (m *mockContactStore) GetByID(_ context.Context, id string) (contactDomain.Message, error) {
	msg, ok := m.messages[id]
	if !ok {
		return contactDomain.Message{}, errNotFound
	}
	return msg, nil
}

func (m *mockContactStore) Save(_ context.Context, msg contactDomain.Message) error {
	m.messages[msg.ID] = msg
	return nil
}

func (m *mockContactStore) Delete(_ context.Context, id string) error {
	delete(m.messages, id)
	return nil
}

func (m *mockContactStore) List(_ context.Context, _ contactStorePkg.ListFilter) ([]contactDomain.Message, error) {
	out := make([]contactDomain.Message, 0, len(m.messages))
	for _, msg := range m.messages {
		out = append(out, msg)
	}
	return out, nil
}

func (m *mockContactStore) Count(_ context.Context, _ contactStorePkg.ListFilter) (int, error) {
	return len(m.messages), nil
}

func (m *mockContactStore) CountReceivedBetween(_ context.Context, from, to time.Time) (int, error) {
	n := 0
	for _, msg := range m.messages {
		if !msg.ReceivedAt.Before(from) && msg.ReceivedAt.Before(to) {
			n++
		}
	}
	return n, nil
}

// --- review store mock ---

type mockReviewStore struct {
	reviews map[string]reviewDomain.Review
}

func newMockReviewStore(reviews ...reviewDomain.Review) *mockReviewStore {
	m := &mockReviewStore{reviews: make(map[string]reviewDomain.Review)}
	for _, r := range reviews {
		m.reviews[r.ID] = r
	}
	return m
}

func (m *mockReviewStore) GetByID(_ context.Context, id string) (reviewDomain.Review, error) {
	r, ok := m.reviews[id]
	if !ok {
		return reviewDomain.Review{}, errNotFound
	}
	return r, nil
}

func (m *mockReviewStore) Save(_ context.Context, r reviewDomain.Review) error {
	m.reviews[r.ID] = r
	return nil
}

func (m *mockReviewStore) Delete(_ context.Context, id string) error {
	delete(m.reviews, id)
	return nil
}

func (m *mockReviewStore) List(_ context.Context, _ reviewStorePkg.ListFilter) ([]reviewDomain.Review, error) {
	out := make([]reviewDomain.Review, 0, len(m.reviews))
	for _, r := range m.reviews {
		out = append(out, r)
	}
	return out, nil
}

func (m *mockReviewStore) Count(_ context.Context, _ reviewStorePkg.ListFilter) (int, error) {
	return len(m.reviews), nil
}

func (m *mockReviewStore) CountSubmittedBetween(_ context.Context, from, to time.Time) (int, error) {
	n := 0
	for _, r := range m.reviews {
		if !r.SubmittedAt.Before(from) && r.SubmittedAt.Before(to) {
			n++
		}
	}
	return n, nil
}

func (m *mockReviewStore) AverageApprovedRating(_ context.Context) (float64, error) {
	sum, n := 0, 0
	for _, r := range m.reviews {
		if r.Status == reviewDomain.StatusApproved {
			sum += r.Rating
			n++
		}
	}
	if n == 0 {
		return 0, nil
	}
	return float64(sum) / float64(n), nil
}
