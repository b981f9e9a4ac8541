package web

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"fringe/internal/adapters/email"
	"fringe/internal/adapters/http/middleware"
	"fringe/internal/adapters/metrics"
	accountStore "fringe/internal/adapters/storage/account"
	auditStore "fringe/internal/adapters/storage/audit"
	categoryStore "fringe/internal/adapters/storage/category"
	contactStore "fringe/internal/adapters/storage/contact"
	courseStore "fringe/internal/adapters/storage/course"
	templateStore "fringe/internal/adapters/storage/emailtemplate"
	faqStore "fringe/internal/adapters/storage/faq"
	offerStore "fringe/internal/adapters/storage/offer"
	outboxStore "fringe/internal/adapters/storage/outbox"
	reviewStore "fringe/internal/adapters/storage/review"
	serviceStore "fringe/internal/adapters/storage/service"
	settingsStore "fringe/internal/adapters/storage/settings"
	subscriberStore "fringe/internal/adapters/storage/subscriber"
	testimonialStore "fringe/internal/adapters/storage/testimonial"
	"fringe/internal/application/orchestrators"
	"fringe/internal/domain/account"
)

// Stores holds all storage dependencies.
type Stores struct {
	AccountStore     accountStore.Store
	CategoryStore    categoryStore.Store
	CourseStore      courseStore.Store
	ServiceStore     serviceStore.Store
	OfferStore       offerStore.Store
	FAQStore         faqStore.Store
	ContactStore     contactStore.Store
	SubscriberStore  subscriberStore.Store
	TestimonialStore testimonialStore.Store
	ReviewStore      reviewStore.Store
	TemplateStore    templateStore.TemplateStore
	TriggerStore     templateStore.TriggerStore
	SettingsStore    settingsStore.Store
	AuditStore       auditStore.Store
	OutboxStore      outboxStore.Store
}

// Config carries the HTTP-layer settings the router needs.
type Config struct {
	Production     bool
	CSRFKey        []byte
	RatePerSecond  int
	CacheTTL       time.Duration
	AdminEmail     string
	EmailFrom      string
	ReplyTo        string
	TrustedOrigins []string
}

// Global wiring (set by NewRouter)
var (
	stores       *Stores
	sessions     *middleware.SessionStore
	emailSender  email.Sender
	outboxRunner *orchestrators.OutboxProcessor
	adminEmail   string
	emailFrom    string
	emailReplyTo string

	analyticsCache *responseCache
)

// timeNow is a variable for testability.
var timeNow = time.Now

// generateID creates a new UUID string.
func generateID() string {
	return uuid.New().String()
}

// SetEmailSender sets the email sender and addressing for the application.
func SetEmailSender(sender email.Sender, from, replyTo string) {
	emailSender = sender
	emailFrom = from
	emailReplyTo = replyTo
}

// roles allowed per tier
var (
	rolesRead  = []string{account.RoleAdmin, account.RoleEditor, account.RoleViewer}
	rolesWrite = []string{account.RoleAdmin, account.RoleEditor}
	rolesAdmin = []string{account.RoleAdmin}
)

// NewRouter wires HTTP handlers for the console.
// PRE: All stores are non-nil; SetEmailSender has been called
// POST: Returns a handler serving /api/v1, /metrics and /healthz
func NewRouter(cfg Config, s *Stores, processor *orchestrators.OutboxProcessor) http.Handler {
	stores = s
	sessions = middleware.NewSessionStore()
	outboxRunner = processor
	adminEmail = cfg.AdminEmail
	middleware.SecureCookies = cfg.Production

	if cfg.CacheTTL <= 0 {
		cfg.CacheTTL = 30 * time.Second
	}
	analyticsCache = newResponseCache(cfg.CacheTTL)

	limiter := middleware.NewRateLimiter(cfg.RatePerSecond, time.Second)

	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.RequestLog)
	r.Use(middleware.Metrics)
	r.Use(middleware.SecurityHeaders)
	r.Use(middleware.RateLimit(limiter))
	r.Use(middleware.CSRF(cfg.CSRFKey, cfg.Production, cfg.TrustedOrigins, sessions))
	r.Use(middleware.Auth(sessions))

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Method(http.MethodGet, "/metrics", metrics.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		// Public endpoints — no session required
		r.Post("/auth/login", handleLogin)
		r.Route("/public", func(r chi.Router) {
			r.Post("/contact", handlePublicContact)
			r.Post("/subscribe", handlePublicSubscribe)
			r.Post("/unsubscribe", handlePublicUnsubscribe)
			r.Post("/reviews", handlePublicReviewSubmit)
			r.Get("/courses", handlePublicCourses)
			r.Get("/services", handlePublicServices)
			r.Get("/faqs", handlePublicFAQs)
			r.Get("/testimonials", handlePublicTestimonials)
		})

		// Authenticated console endpoints
		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireRole(rolesRead...))
			r.Post("/auth/logout", handleLogout)
			r.Get("/auth/me", handleMe)
			r.Post("/auth/change-password", handleChangePassword)

			r.Get("/categories", handleCategoryList)
			r.Get("/categories/{id}", handleCategoryGet)
			r.Get("/courses", handleCourseList)
			r.Get("/courses/{id}", handleCourseGet)
			r.Get("/services", handleServiceList)
			r.Get("/services/{id}", handleServiceGet)
			r.Get("/offers", handleOfferList)
			r.Get("/offers/{id}", handleOfferGet)
			r.Get("/faqs", handleFAQList)
			r.Get("/faqs/{id}", handleFAQGet)
			r.Get("/testimonials", handleTestimonialList)
			r.Get("/testimonials/{id}", handleTestimonialGet)
			r.Get("/contacts", handleContactList)
			r.Get("/contacts/{id}", handleContactGet)
			r.Get("/subscribers", handleSubscriberList)
			r.Get("/subscribers/export", handleSubscriberExport)
			r.Get("/reviews", handleReviewList)
			r.Get("/reviews/{id}", handleReviewGet)
			r.Get("/templates", handleTemplateList)
			r.Get("/templates/{id}", handleTemplateGet)
			r.Get("/triggers", handleTriggerList)
			r.Get("/settings", handleSettingsList)
			r.Get("/analytics/dashboard", analyticsCache.Wrap(handleDashboard))
		})

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireRole(rolesWrite...))
			r.Post("/categories", handleCategoryCreate)
			r.Put("/categories/{id}", handleCategoryUpdate)
			r.Delete("/categories/{id}", handleCategoryDelete)

			r.Post("/courses", handleCourseCreate)
			r.Put("/courses/{id}", handleCourseUpdate)
			r.Delete("/courses/{id}", handleCourseDelete)
			r.Post("/courses/{id}/publish", handleCoursePublish)
			r.Post("/courses/{id}/archive", handleCourseArchive)

			r.Post("/services", handleServiceCreate)
			r.Put("/services/{id}", handleServiceUpdate)
			r.Delete("/services/{id}", handleServiceDelete)

			r.Post("/offers", handleOfferCreate)
			r.Put("/offers/{id}", handleOfferUpdate)
			r.Delete("/offers/{id}", handleOfferDelete)

			r.Post("/faqs", handleFAQCreate)
			r.Put("/faqs/{id}", handleFAQUpdate)
			r.Delete("/faqs/{id}", handleFAQDelete)

			r.Post("/testimonials", handleTestimonialCreate)
			r.Put("/testimonials/{id}", handleTestimonialUpdate)
			r.Delete("/testimonials/{id}", handleTestimonialDelete)

			r.Post("/contacts/{id}/read", handleContactMarkRead)
			r.Post("/contacts/{id}/replied", handleContactMarkReplied)
			r.Delete("/contacts/{id}", handleContactDelete)

			r.Post("/subscribers", handleSubscriberCreate)
			r.Post("/subscribers/import", handleSubscriberImport)
			r.Delete("/subscribers/{id}", handleSubscriberDelete)

			r.Post("/reviews/{id}/approve", handleReviewApprove)
			r.Post("/reviews/{id}/reject", handleReviewReject)
			r.Delete("/reviews/{id}", handleReviewDelete)

			r.Post("/templates", handleTemplateCreate)
			r.Put("/templates/{id}", handleTemplateUpdate)
			r.Delete("/templates/{id}", handleTemplateDelete)
			r.Post("/triggers", handleTriggerCreate)
			r.Put("/triggers/{id}", handleTriggerUpdate)
			r.Delete("/triggers/{id}", handleTriggerDelete)
		})

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireRole(rolesAdmin...))
			r.Get("/accounts", handleAccountList)
			r.Post("/accounts", handleAccountCreate)
			r.Get("/accounts/{id}", handleAccountGet)
			r.Delete("/accounts/{id}", handleAccountDelete)

			r.Put("/settings", handleSettingsUpdate)
			r.Post("/campaigns", handleCampaignSend)

			r.Get("/audit", handleAuditList)
			r.Get("/outbox", handleOutboxList)
			r.Post("/outbox/{id}/retry", handleOutboxRetry)
			r.Post("/outbox/{id}/abandon", handleOutboxAbandon)
		})
	})

	return r
}

// fireTriggerDeps assembles the dependencies for trigger-driven email.
func fireTriggerDeps() orchestrators.FireTriggerDeps {
	return orchestrators.FireTriggerDeps{
		TemplateStore: stores.TemplateStore,
		TriggerStore:  stores.TriggerStore,
		OutboxStore:   stores.OutboxStore,
		GenerateID:    generateID,
		Now:           timeNow,
		AdminEmail:    adminEmail,
		ReplyTo:       emailReplyTo,
	}
}
