package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Config holds all runtime configuration, parsed from FRINGE_* environment variables.
type Config struct {
	Env           string `env:"FRINGE_ENV" envDefault:"development"`
	Addr          string `env:"FRINGE_ADDR" envDefault:":8080"`
	DBPath        string `env:"FRINGE_DB_PATH" envDefault:"fringe.db"`
	AdminEmail    string `env:"FRINGE_ADMIN_EMAIL" envDefault:"admin@thefringe.co.nz"`
	AdminPassword string `env:"FRINGE_ADMIN_PASSWORD" envDefault:"Fringe benefits"`
	ResendKey     string `env:"FRINGE_RESEND_KEY"`
	EmailFrom     string `env:"FRINGE_EMAIL_FROM" envDefault:"The Fringe <noreply@thefringe.co.nz>"`
	EmailReplyTo  string `env:"FRINGE_REPLY_TO" envDefault:"hello@thefringe.co.nz"`
	CSRFKey       string `env:"FRINGE_CSRF_KEY"`
	RatePerSecond int    `env:"FRINGE_RATE_PER_SECOND" envDefault:"10"`
	CacheTTL      int    `env:"FRINGE_CACHE_TTL_SECONDS" envDefault:"30"`
	SlowQueryMs   int    `env:"FRINGE_SLOW_QUERY_MS" envDefault:"50"`
}

// Load parses configuration from the environment.
// PRE: none
// POST: Returns a Config with defaults applied for unset variables
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}

// IsProduction reports whether the service runs in production mode.
func (c Config) IsProduction() bool {
	return c.Env == "production"
}
