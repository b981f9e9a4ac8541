package orchestrators

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	accountStore "fringe/internal/adapters/storage/account"
	templateStore "fringe/internal/adapters/storage/emailtemplate"
	settingsStore "fringe/internal/adapters/storage/settings"
	"fringe/internal/domain/account"
	"fringe/internal/domain/emailtemplate"
	"fringe/internal/domain/settings"
)

// SeedDeps holds dependencies for the startup seed orchestrators.
type SeedDeps struct {
	AccountStore  accountStore.Store
	TemplateStore templateStore.TemplateStore
	TriggerStore  templateStore.TriggerStore
	SettingsStore settingsStore.Store
	GenerateID    func() string
	Now           func() time.Time
}

// SeedAdminAccount creates the initial admin account if no account exists for the email.
// PRE: email and password come from configuration
// POST: Admin account exists; an existing account is never overwritten
func SeedAdminAccount(ctx context.Context, email, password string, deps SeedDeps) error {
	if email == "" || password == "" {
		return nil
	}
	if _, err := deps.AccountStore.GetByEmail(ctx, email); err == nil {
		return nil
	}

	acct := account.Account{
		ID:        deps.GenerateID(),
		Email:     email,
		Role:      account.RoleAdmin,
		CreatedAt: deps.Now(),
	}
	if err := acct.SetPassword(password); err != nil {
		return err
	}
	if err := deps.AccountStore.Save(ctx, acct); err != nil {
		return err
	}
	log.Info().Str("email", email).Msg("admin account seeded")
	return nil
}

// seedTemplates are the default email templates installed on first boot.
var seedTemplates = []emailtemplate.Template{
	{
		Key:     emailtemplate.KeyContactReceived,
		Name:    "Contact received",
		Subject: "New enquiry from {{name}}",
		Body:    "**{{name}}** ({{email}}) wrote:\n\n{{message}}",
	},
	{
		Key:     emailtemplate.KeySubscriberWelcome,
		Name:    "Subscriber welcome",
		Subject: "Welcome to the newsletter",
		Body:    "Hi {{name}},\n\nThanks for subscribing. You can unsubscribe at any time.",
	},
	{
		Key:     emailtemplate.KeyReviewApproved,
		Name:    "Review approved",
		Subject: "Your review has been published",
		Body:    "Hi {{name}},\n\nYour review \"{{title}}\" is now live on our site. Thank you!",
	},
	{
		Key:     emailtemplate.KeyCampaign,
		Name:    "Newsletter campaign",
		Subject: "News from The Fringe",
		Body:    "Hi {{name}},\n\nHere is what's new.",
	},
}

// seedTriggers bind the default events to the default templates.
var seedTriggers = []emailtemplate.Trigger{
	{Event: emailtemplate.EventContactReceived, TemplateKey: emailtemplate.KeyContactReceived, Recipient: emailtemplate.RecipientAdmin},
	{Event: emailtemplate.EventSubscriberWelcome, TemplateKey: emailtemplate.KeySubscriberWelcome, Recipient: emailtemplate.RecipientCustomer},
	{Event: emailtemplate.EventReviewApproved, TemplateKey: emailtemplate.KeyReviewApproved, Recipient: emailtemplate.RecipientCustomer},
	{Event: emailtemplate.EventCampaignSend, TemplateKey: emailtemplate.KeyCampaign, Recipient: emailtemplate.RecipientCustomer},
}

// SeedEmailTemplates installs the default templates and triggers if missing.
// POST: Every well-known template key and event binding exists;
// existing rows are never overwritten
func SeedEmailTemplates(ctx context.Context, deps SeedDeps) error {
	now := deps.Now()
	seeded := 0

	for _, tpl := range seedTemplates {
		if _, err := deps.TemplateStore.GetByKey(ctx, tpl.Key); err == nil {
			continue
		}
		tpl.ID = deps.GenerateID()
		tpl.Active = true
		tpl.CreatedAt = now
		if err := deps.TemplateStore.Save(ctx, tpl); err != nil {
			return err
		}
		seeded++
	}

	existing, err := deps.TriggerStore.List(ctx)
	if err != nil {
		return err
	}
	have := make(map[string]bool, len(existing))
	for _, tr := range existing {
		have[tr.Event+"/"+tr.Recipient] = true
	}
	for _, tr := range seedTriggers {
		if have[tr.Event+"/"+tr.Recipient] {
			continue
		}
		tr.ID = deps.GenerateID()
		tr.Enabled = true
		tr.CreatedAt = now
		if err := deps.TriggerStore.Save(ctx, tr); err != nil {
			return err
		}
		seeded++
	}

	if seeded > 0 {
		log.Info().Int("seeded", seeded).Msg("email templates and triggers seeded")
	}
	return nil
}

// SeedSettings installs default values for any missing site settings.
// POST: Every known setting key has a row; existing values are never overwritten
func SeedSettings(ctx context.Context, deps SeedDeps) error {
	existing, err := deps.SettingsStore.All(ctx)
	if err != nil {
		return err
	}
	have := make(map[string]bool, len(existing))
	for _, s := range existing {
		have[s.Key] = true
	}

	now := deps.Now()
	var missing []settings.Setting
	defaults := settings.Defaults()
	for _, key := range settings.KnownKeys {
		if have[key] {
			continue
		}
		missing = append(missing, settings.Setting{
			Key:       key,
			Value:     defaults[key],
			UpdatedAt: now,
		})
	}
	if len(missing) == 0 {
		return nil
	}
	if err := deps.SettingsStore.UpsertMany(ctx, missing); err != nil {
		return err
	}
	log.Info().Int("seeded", len(missing)).Msg("site settings seeded")
	return nil
}
