package projections

import (
	"context"
	"math"
	"time"

	"golang.org/x/sync/errgroup"

	auditStore "fringe/internal/adapters/storage/audit"
	contactStore "fringe/internal/adapters/storage/contact"
	courseStore "fringe/internal/adapters/storage/course"
	reviewStore "fringe/internal/adapters/storage/review"
	serviceStore "fringe/internal/adapters/storage/service"
	subscriberStore "fringe/internal/adapters/storage/subscriber"
	contactDomain "fringe/internal/domain/contact"
	courseDomain "fringe/internal/domain/course"
	reviewDomain "fringe/internal/domain/review"
	serviceDomain "fringe/internal/domain/service"
	subscriberDomain "fringe/internal/domain/subscriber"
)

// TrendWindowDays is the size of the rolling comparison window.
const TrendWindowDays = 30

// WindowStat is a 30-day count with its percent trend vs the previous window.
type WindowStat struct {
	Count        int     `json:"count"`
	TrendPercent float64 `json:"trend_percent"`
}

// Dashboard is the analytics payload for the console landing page.
type Dashboard struct {
	PublishedCourses  int        `json:"published_courses"`
	ActiveServices    int        `json:"active_services"`
	ActiveSubscribers int        `json:"active_subscribers"`
	UnreadContacts    int        `json:"unread_contacts"`
	PendingReviews    int        `json:"pending_reviews"`
	AverageRating     float64    `json:"average_rating"`
	NewContacts       WindowStat `json:"new_contacts"`
	NewSubscribers    WindowStat `json:"new_subscribers"`
	NewReviews        WindowStat `json:"new_reviews"`
	RecentActivity    []Activity `json:"recent_activity"`
}

// Activity is one row in the recent-activity feed.
type Activity struct {
	Timestamp   time.Time `json:"timestamp"`
	Category    string    `json:"category"`
	Action      string    `json:"action"`
	ActorEmail  string    `json:"actor_email"`
	Description string    `json:"description"`
}

// DashboardDeps holds the stores the dashboard reads from.
type DashboardDeps struct {
	CourseStore     courseStore.Store
	ServiceStore    serviceStore.Store
	ContactStore    contactStore.Store
	SubscriberStore subscriberStore.Store
	ReviewStore     reviewStore.Store
	AuditStore      auditStore.Store
	Now             func() time.Time
}

// recentActivityLimit bounds the activity feed on the dashboard.
const recentActivityLimit = 10

// GetDashboard computes the analytics dashboard with parallel count queries.
// PRE: All stores are wired
// POST: Returns totals, 30-day window stats with trends, and recent activity
// INVARIANT: A zero previous window with a non-zero current window reports +100%
func GetDashboard(ctx context.Context, deps DashboardDeps) (Dashboard, error) {
	now := deps.Now()
	windowStart := now.AddDate(0, 0, -TrendWindowDays)
	prevStart := now.AddDate(0, 0, -2*TrendWindowDays)

	var d Dashboard
	var contactsCur, contactsPrev int
	var subsCur, subsPrev int
	var reviewsCur, reviewsPrev int

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		n, err := deps.CourseStore.Count(gctx, courseStore.ListFilter{Status: courseDomain.StatusPublished})
		d.PublishedCourses = n
		return err
	})
	g.Go(func() error {
		n, err := deps.ServiceStore.Count(gctx, serviceStore.ListFilter{Status: serviceDomain.StatusPublished})
		d.ActiveServices = n
		return err
	})
	g.Go(func() error {
		n, err := deps.SubscriberStore.Count(gctx, subscriberStore.ListFilter{Status: subscriberDomain.StatusActive})
		d.ActiveSubscribers = n
		return err
	})
	g.Go(func() error {
		n, err := deps.ContactStore.Count(gctx, contactStore.ListFilter{Status: contactDomain.StatusNew})
		d.UnreadContacts = n
		return err
	})
	g.Go(func() error {
		n, err := deps.ReviewStore.Count(gctx, reviewStore.ListFilter{Status: reviewDomain.StatusPending})
		d.PendingReviews = n
		return err
	})
	g.Go(func() error {
		avg, err := deps.ReviewStore.AverageApprovedRating(gctx)
		d.AverageRating = math.Round(avg*10) / 10
		return err
	})
	g.Go(func() error {
		var err error
		contactsCur, err = deps.ContactStore.CountReceivedBetween(gctx, windowStart, now)
		return err
	})
	g.Go(func() error {
		var err error
		contactsPrev, err = deps.ContactStore.CountReceivedBetween(gctx, prevStart, windowStart)
		return err
	})
	g.Go(func() error {
		var err error
		subsCur, err = deps.SubscriberStore.CountSubscribedBetween(gctx, windowStart, now)
		return err
	})
	g.Go(func() error {
		var err error
		subsPrev, err = deps.SubscriberStore.CountSubscribedBetween(gctx, prevStart, windowStart)
		return err
	})
	g.Go(func() error {
		var err error
		reviewsCur, err = deps.ReviewStore.CountSubmittedBetween(gctx, windowStart, now)
		return err
	})
	g.Go(func() error {
		var err error
		reviewsPrev, err = deps.ReviewStore.CountSubmittedBetween(gctx, prevStart, windowStart)
		return err
	})
	g.Go(func() error {
		events, err := deps.AuditStore.List(gctx, auditStore.ListFilter{Limit: recentActivityLimit})
		if err != nil {
			return err
		}
		for _, ev := range events {
			d.RecentActivity = append(d.RecentActivity, Activity{
				Timestamp:   ev.Timestamp,
				Category:    string(ev.Category),
				Action:      string(ev.Action),
				ActorEmail:  ev.ActorEmail,
				Description: ev.Description,
			})
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return Dashboard{}, err
	}

	d.NewContacts = WindowStat{Count: contactsCur, TrendPercent: TrendPercent(contactsCur, contactsPrev)}
	d.NewSubscribers = WindowStat{Count: subsCur, TrendPercent: TrendPercent(subsCur, subsPrev)}
	d.NewReviews = WindowStat{Count: reviewsCur, TrendPercent: TrendPercent(reviewsCur, reviewsPrev)}

	return d, nil
}

// TrendPercent computes the percent change from previous to current.
// POST: Returns 0 when both are zero, +100 when only previous is zero,
// otherwise ((current-previous)/previous)*100 rounded to one decimal
func TrendPercent(current, previous int) float64 {
	if previous == 0 {
		if current == 0 {
			return 0
		}
		return 100
	}
	pct := (float64(current-previous) / float64(previous)) * 100
	return math.Round(pct*10) / 10
}
