package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// RuntimeConfig holds settings read from the Nakama runtime env or the process env.
type RuntimeConfig struct {
	DefaultPlayers    int           `env:"SHITHEAD_DEFAULT_PLAYERS"    envDefault:"3"`
	StorageCollection string        `env:"SHITHEAD_STORAGE_COLLECTION" envDefault:"shithead"`
	RulesPath         string        `env:"SHITHEAD_RULES_PATH"`
	TicketSecret      string        `env:"SHITHEAD_TICKET_SECRET"`
	TicketIssuer      string        `env:"SHITHEAD_TICKET_ISSUER"      envDefault:"shithead"`
	TicketTTL         time.Duration `env:"SHITHEAD_TICKET_TTL"         envDefault:"15m"`
	BotDelay          time.Duration `env:"SHITHEAD_BOT_DELAY"          envDefault:"0s"`
}

// ParseRuntime reads configuration from an explicit variable map, such as the
// one Nakama stores under runtime.RUNTIME_CTX_ENV.
func ParseRuntime(vars map[string]string) (RuntimeConfig, error) {
	var cfg RuntimeConfig
	if err := env.ParseWithOptions(&cfg, env.Options{Environment: vars}); err != nil {
		return RuntimeConfig{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, cfg.Validate()
}

// LoadRuntime reads configuration from the process environment.
func LoadRuntime() (RuntimeConfig, error) {
	var cfg RuntimeConfig
	if err := env.Parse(&cfg); err != nil {
		return RuntimeConfig{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, cfg.Validate()
}

// Validate rejects values no component can run with.
func (c RuntimeConfig) Validate() error {
	if c.DefaultPlayers <= 0 {
		return fmt.Errorf("SHITHEAD_DEFAULT_PLAYERS must be positive, got %d", c.DefaultPlayers)
	}
	if c.StorageCollection == "" {
		return fmt.Errorf("SHITHEAD_STORAGE_COLLECTION is required")
	}
	if c.TicketTTL <= 0 {
		return fmt.Errorf("SHITHEAD_TICKET_TTL must be positive, got %s", c.TicketTTL)
	}
	if c.BotDelay < 0 {
		return fmt.Errorf("SHITHEAD_BOT_DELAY must not be negative, got %s", c.BotDelay)
	}
	return nil
}

// TicketsEnabled reports whether a ticket secret was configured.
func (c RuntimeConfig) TicketsEnabled() bool { return c.TicketSecret != "" }
