package main

import (
	"context"
	"crypto/rand"
	"database/sql"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	_ "modernc.org/sqlite"

	emailPkg "fringe/internal/adapters/email"
	web "fringe/internal/adapters/http"
	"fringe/internal/adapters/storage"
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
	"fringe/internal/config"
	outboxDomain "fringe/internal/domain/outbox"
)

// version is set at build time via -ldflags "-X main.version=..."
var version = "dev"

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("load configuration")
	}

	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	if !cfg.IsProduction() {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}

	dsn := cfg.DBPath + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=foreign_keys(ON)&_pragma=synchronous(NORMAL)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		log.Fatal().Err(err).Msg("open database")
	}
	defer db.Close()

	// Pool sizing for WAL mode
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)

	if err := db.Ping(); err != nil {
		log.Fatal().Err(err).Msg("database unreachable")
	}
	if err := storage.MigrateDB(db); err != nil {
		log.Fatal().Err(err).Msg("migrate database")
	}

	timedDB := storage.NewTimedDB(db, cfg.SlowQueryMs)

	acctStore := accountStore.NewSQLiteStore(timedDB)
	tplStore := templateStore.NewSQLiteTemplateStore(timedDB)
	trgStore := templateStore.NewSQLiteTriggerStore(timedDB)
	setStore := settingsStore.NewSQLiteStore(timedDB)
	stores := &web.Stores{
		AccountStore:     acctStore,
		CategoryStore:    categoryStore.NewSQLiteStore(timedDB),
		CourseStore:      courseStore.NewSQLiteStore(timedDB),
		ServiceStore:     serviceStore.NewSQLiteStore(timedDB),
		OfferStore:       offerStore.NewSQLiteStore(timedDB),
		FAQStore:         faqStore.NewSQLiteStore(timedDB),
		ContactStore:     contactStore.NewSQLiteStore(timedDB),
		SubscriberStore:  subscriberStore.NewSQLiteStore(timedDB),
		TestimonialStore: testimonialStore.NewSQLiteStore(timedDB),
		ReviewStore:      reviewStore.NewSQLiteStore(timedDB),
		TemplateStore:    tplStore,
		TriggerStore:     trgStore,
		SettingsStore:    setStore,
		AuditStore:       auditStore.NewSQLiteStore(timedDB),
		OutboxStore:      outboxStore.NewSQLiteStore(timedDB),
	}

	seedDeps := orchestrators.SeedDeps{
		AccountStore:  acctStore,
		TemplateStore: tplStore,
		TriggerStore:  trgStore,
		SettingsStore: setStore,
		GenerateID:    func() string { return uuid.New().String() },
		Now:           time.Now,
	}
	if err := orchestrators.SeedAdminAccount(context.Background(), cfg.AdminEmail, cfg.AdminPassword, seedDeps); err != nil {
		log.Fatal().Err(err).Msg("seed admin account")
	}
	if err := orchestrators.SeedEmailTemplates(context.Background(), seedDeps); err != nil {
		log.Fatal().Err(err).Msg("seed email templates")
	}
	if err := orchestrators.SeedSettings(context.Background(), seedDeps); err != nil {
		log.Fatal().Err(err).Msg("seed settings")
	}

	var sender emailPkg.Sender
	if cfg.ResendKey != "" {
		sender = emailPkg.NewResendSender(cfg.ResendKey, cfg.EmailFrom)
		log.Info().Msg("email sender configured (resend)")
	} else {
		sender = emailPkg.NewNoopSender()
		if cfg.IsProduction() {
			log.Warn().Msg("FRINGE_RESEND_KEY is not set, email delivery is disabled in production")
		} else {
			log.Info().Msg("email sender configured (noop)")
		}
	}
	web.SetEmailSender(sender, cfg.EmailFrom, cfg.EmailReplyTo)

	processor := orchestrators.NewOutboxProcessor(stores.OutboxStore, map[string]orchestrators.ActionExecutor{
		outboxDomain.ActionTypeEmail: &orchestrators.EmailExecutor{Sender: sender, From: cfg.EmailFrom},
	})

	scheduler := cron.New()
	_, _ = scheduler.AddFunc("@every 1m", func() {
		if err := processor.ProcessPending(context.Background()); err != nil {
			log.Error().Err(err).Msg("outbox drain failed")
		}
	})
	_, _ = scheduler.AddFunc("@daily", func() {
		if _, err := orchestrators.ExecuteExpireOffers(context.Background(), orchestrators.ExpireOffersDeps{
			OfferStore: stores.OfferStore,
			Now:        time.Now,
		}); err != nil {
			log.Error().Err(err).Msg("offer expiry sweep failed")
		}
	})
	_, _ = scheduler.AddFunc("@daily", func() {
		if _, err := orchestrators.ExecutePruneAudit(context.Background(), orchestrators.PruneAuditDeps{
			AuditStore: stores.AuditStore,
			Now:        time.Now,
		}); err != nil {
			log.Error().Err(err).Msg("audit prune failed")
		}
	})
	scheduler.Start()
	defer scheduler.Stop()

	csrfKey := []byte(cfg.CSRFKey)
	if len(csrfKey) == 0 {
		// Ephemeral key; sessions won't survive a restart without FRINGE_CSRF_KEY.
		csrfKey = make([]byte, 32)
		if _, err := rand.Read(csrfKey); err != nil {
			log.Fatal().Err(err).Msg("generate csrf key")
		}
	}

	handler := web.NewRouter(web.Config{
		Production:    cfg.IsProduction(),
		CSRFKey:       csrfKey,
		RatePerSecond: cfg.RatePerSecond,
		CacheTTL:      time.Duration(cfg.CacheTTL) * time.Second,
		AdminEmail:    cfg.AdminEmail,
		EmailFrom:     cfg.EmailFrom,
		ReplyTo:       cfg.EmailReplyTo,
	}, stores, processor)

	server := &http.Server{
		Addr:              cfg.Addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		log.Info().Str("version", version).Str("addr", cfg.Addr).Str("env", cfg.Env).
			Int("schema", storage.LatestSchemaVersion()).Msg("server starting")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("shutdown failed")
	}
	log.Info().Msg("server stopped")
}
