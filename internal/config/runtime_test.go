package config

import (
	"testing"
	"time"
)

func TestParseRuntimeDefaults(t *testing.T) {
	cfg, err := ParseRuntime(map[string]string{})
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if cfg.DefaultPlayers != 3 || cfg.StorageCollection != "shithead" || cfg.TicketIssuer != "shithead" {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
	if cfg.TicketTTL != 15*time.Minute {
		t.Fatalf("ticket ttl = %s, want 15m", cfg.TicketTTL)
	}
	if cfg.TicketsEnabled() {
		t.Fatalf("tickets should be disabled without a secret")
	}
}

func TestParseRuntimeOverrides(t *testing.T) {
	cfg, err := ParseRuntime(map[string]string{
		"SHITHEAD_DEFAULT_PLAYERS":    "4",
		"SHITHEAD_STORAGE_COLLECTION": "games",
		"SHITHEAD_TICKET_SECRET":      "s3cret",
		"SHITHEAD_TICKET_TTL":         "90s",
		"SHITHEAD_BOT_DELAY":          "250ms",
	})
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if cfg.DefaultPlayers != 4 || cfg.StorageCollection != "games" || !cfg.TicketsEnabled() {
		t.Fatalf("overrides not applied: %+v", cfg)
	}
	if cfg.TicketTTL != 90*time.Second || cfg.BotDelay != 250*time.Millisecond {
		t.Fatalf("durations not parsed: %+v", cfg)
	}
}

func TestParseRuntimeErrors(t *testing.T) {
	tests := []struct {
		name string
		vars map[string]string
	}{
		{"not a number", map[string]string{"SHITHEAD_DEFAULT_PLAYERS": "many"}},
		{"zero players", map[string]string{"SHITHEAD_DEFAULT_PLAYERS": "0"}},
		{"bad duration", map[string]string{"SHITHEAD_TICKET_TTL": "soon"}},
		{"negative ttl", map[string]string{"SHITHEAD_TICKET_TTL": "-1m"}},
		{"negative bot delay", map[string]string{"SHITHEAD_BOT_DELAY": "-1s"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ParseRuntime(tt.vars); err == nil {
				t.Fatalf("expected error")
			}
		})
	}
}

func TestLoadRuntimeFromProcessEnv(t *testing.T) {
	t.Setenv("SHITHEAD_DEFAULT_PLAYERS", "5")
	cfg, err := LoadRuntime()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.DefaultPlayers != 5 {
		t.Fatalf("default players = %d, want 5", cfg.DefaultPlayers)
	}
}
