package projections_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fringe/internal/application/projections"

	auditStore "fringe/internal/adapters/storage/audit"
	contactStore "fringe/internal/adapters/storage/contact"
	courseStore "fringe/internal/adapters/storage/course"
	reviewStore "fringe/internal/adapters/storage/review"
	serviceStore "fringe/internal/adapters/storage/service"
	subscriberStore "fringe/internal/adapters/storage/subscriber"
	auditDomain "fringe/internal/domain/audit"
	contactDomain "fringe/internal/domain/contact"
	courseDomain "fringe/internal/domain/course"
	reviewDomain "fringe/internal/domain/review"
	serviceDomain "fringe/internal/domain/service"
	subscriberDomain "fringe/internal/domain/subscriber"
)

func TestTrendPercent(t *testing.T) {
	tests := []struct {
		name              string
		current, previous int
		want              float64
	}{
		{"both zero", 0, 0, 0},
		{"previous zero reports full growth", 5, 0, 100},
		{"flat", 10, 10, 0},
		{"growth", 15, 10, 50},
		{"decline", 5, 10, -50},
		{"everything dried up", 0, 10, -100},
		{"rounded to one decimal", 1, 3, -66.7},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := projections.TrendPercent(tt.current, tt.previous); got != tt.want {
				t.Errorf("TrendPercent(%d, %d) = %v, want %v", tt.current, tt.previous, got, tt.want)
			}
		})
	}
}

// Stub stores returning canned counts. Only the methods the dashboard
// calls carry real values; the rest satisfy the interfaces.

type stubCourseStore struct{ published int }

func (s stubCourseStore) GetByID(context.Context, string) (courseDomain.Course, error) {
	return courseDomain.Course{}, nil
}
func (s stubCourseStore) GetBySlug(context.Context, string) (courseDomain.Course, error) {
	return courseDomain.Course{}, nil
}
func (s stubCourseStore) Save(context.Context, courseDomain.Course) error { return nil }
func (s stubCourseStore) Delete(context.Context, string) error            { return nil }
func (s stubCourseStore) List(context.Context, courseStore.ListFilter) ([]courseDomain.Course, error) {
	return nil, nil
}
func (s stubCourseStore) Count(_ context.Context, f courseStore.ListFilter) (int, error) {
	if f.Status == courseDomain.StatusPublished {
		return s.published, nil
	}
	return 0, nil
}

type stubServiceStore struct{ published int }

func (s stubServiceStore) GetByID(context.Context, string) (serviceDomain.Service, error) {
	return serviceDomain.Service{}, nil
}
func (s stubServiceStore) GetBySlug(context.Context, string) (serviceDomain.Service, error) {
	return serviceDomain.Service{}, nil
}
func (s stubServiceStore) Save(context.Context, serviceDomain.Service) error { return nil }
func (s stubServiceStore) Delete(context.Context, string) error              { return nil }
func (s stubServiceStore) List(context.Context, serviceStore.ListFilter) ([]serviceDomain.Service, error) {
	return nil, nil
}
func (s stubServiceStore) Count(_ context.Context, f serviceStore.ListFilter) (int, error) {
	if f.Status == serviceDomain.StatusPublished {
		return s.published, nil
	}
	return 0, nil
}

type stubContactStore struct {
	unread     int
	cur, prev  int
	windowFrom time.Time
}

func (s stubContactStore) GetByID(context.Context, string) (contactDomain.Message, error) {
	return contactDomain.Message{}, nil
}
func (s stubContactStore) Save(context.Context, contactDomain.Message) error { return nil }
func (s stubContactStore) Delete(context.Context, string) error              { return nil }
func (s stubContactStore) List(context.Context, contactStore.ListFilter) ([]contactDomain.Message, error) {
	return nil, nil
}
func (s stubContactStore) Count(_ context.Context, f contactStore.ListFilter) (int, error) {
	if f.Status == contactDomain.StatusNew {
		return s.unread, nil
	}
	return 0, nil
}
func (s stubContactStore) CountReceivedBetween(_ context.Context, from, _ time.Time) (int, error) {
	if from.Equal(s.windowFrom) {
		return s.cur, nil
	}
	return s.prev, nil
}

type stubSubscriberStore struct {
	active     int
	cur, prev  int
	windowFrom time.Time
}

func (s stubSubscriberStore) GetByID(context.Context, string) (subscriberDomain.Subscriber, error) {
	return subscriberDomain.Subscriber{}, nil
}
func (s stubSubscriberStore) GetByEmail(context.Context, string) (subscriberDomain.Subscriber, error) {
	return subscriberDomain.Subscriber{}, nil
}
func (s stubSubscriberStore) Save(context.Context, subscriberDomain.Subscriber) error { return nil }
func (s stubSubscriberStore) Delete(context.Context, string) error                    { return nil }
func (s stubSubscriberStore) List(context.Context, subscriberStore.ListFilter) ([]subscriberDomain.Subscriber, error) {
	return nil, nil
}
func (s stubSubscriberStore) Count(_ context.Context, f subscriberStore.ListFilter) (int, error) {
	if f.Status == subscriberDomain.StatusActive {
		return s.active, nil
	}
	return 0, nil
}
func (s stubSubscriberStore) CountSubscribedBetween(_ context.Context, from, _ time.Time) (int, error) {
	if from.Equal(s.windowFrom) {
		return s.cur, nil
	}
	return s.prev, nil
}
func (s stubSubscriberStore) ListActive(context.Context) ([]subscriberDomain.Subscriber, error) {
	return nil, nil
}

type stubReviewStore struct {
	pending    int
	avg        float64
	cur, prev  int
	windowFrom time.Time
}

func (s stubReviewStore) GetByID(context.Context, string) (reviewDomain.Review, error) {
	return reviewDomain.Review{}, nil
}
func (s stubReviewStore) Save(context.Context, reviewDomain.Review) error { return nil }
func (s stubReviewStore) Delete(context.Context, string) error            { return nil }
func (s stubReviewStore) List(context.Context, reviewStore.ListFilter) ([]reviewDomain.Review, error) {
	return nil, nil
}
func (s stubReviewStore) Count(_ context.Context, f reviewStore.ListFilter) (int, error) {
	if f.Status == reviewDomain.StatusPending {
		return s.pending, nil
	}
	return 0, nil
}
func (s stubReviewStore) CountSubmittedBetween(_ context.Context, from, _ time.Time) (int, error) {
	if from.Equal(s.windowFrom) {
		return s.cur, nil
	}
	return s.prev, nil
}
func (s stubReviewStore) AverageApprovedRating(context.Context) (float64, error) {
	return s.avg, nil
}

type stubAuditStore struct{ events []auditDomain.Event }

func (s stubAuditStore) Record(context.Context, auditDomain.Event) error { return nil }
func (s stubAuditStore) List(context.Context, auditStore.ListFilter) ([]auditDomain.Event, error) {
	return s.events, nil
}
func (s stubAuditStore) Count(context.Context, auditStore.ListFilter) (int, error) {
	return len(s.events), nil
}
func (s stubAuditStore) DeleteOlderThan(context.Context, time.Time) (int64, error) {
	return 0, nil
}

func TestGetDashboard(t *testing.T) {
	now := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	windowStart := now.AddDate(0, 0, -projections.TrendWindowDays)

	deps := projections.DashboardDeps{
		CourseStore:  stubCourseStore{published: 7},
		ServiceStore: stubServiceStore{published: 4},
		ContactStore: stubContactStore{unread: 3, cur: 12, prev: 8, windowFrom: windowStart},
		SubscriberStore: stubSubscriberStore{
			active: 150, cur: 20, prev: 0, windowFrom: windowStart,
		},
		ReviewStore: stubReviewStore{
			pending: 2, avg: 4.6333, cur: 5, prev: 10, windowFrom: windowStart,
		},
		AuditStore: stubAuditStore{events: []auditDomain.Event{
			{Timestamp: now, Category: auditDomain.CategoryCatalogue, Action: auditDomain.ActionCreate,
				ActorEmail: "admin@thefringe.co.nz", Description: "created course"},
		}},
		Now: func() time.Time { return now },
	}

	d, err := projections.GetDashboard(context.Background(), deps)
	require.NoError(t, err)

	assert.Equal(t, 7, d.PublishedCourses)
	assert.Equal(t, 4, d.ActiveServices)
	assert.Equal(t, 150, d.ActiveSubscribers)
	assert.Equal(t, 3, d.UnreadContacts)
	assert.Equal(t, 2, d.PendingReviews)
	assert.Equal(t, 4.6, d.AverageRating, "average rounded to one decimal")

	assert.Equal(t, 12, d.NewContacts.Count)
	assert.Equal(t, 50.0, d.NewContacts.TrendPercent)
	assert.Equal(t, 20, d.NewSubscribers.Count)
	assert.Equal(t, 100.0, d.NewSubscribers.TrendPercent, "zero previous window")
	assert.Equal(t, 5, d.NewReviews.Count)
	assert.Equal(t, -50.0, d.NewReviews.TrendPercent)

	require.Len(t, d.RecentActivity, 1)
	assert.Equal(t, "admin@thefringe.co.nz", d.RecentActivity[0].ActorEmail)
	assert.Equal(t, string(auditDomain.CategoryCatalogue), d.RecentActivity[0].Category)
}
