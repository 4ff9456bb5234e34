package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"shithead/internal/domain"
)

// RulesConfig is the on-disk deck description.
type RulesConfig struct {
	Suits        []string `json:"suits"`
	Ranks        []string `json:"ranks"`
	SpecialRanks []string `json:"special_ranks"`
}

// LoadRulesConfig loads a deck configuration from path. An empty path or a
// missing file yields the standard deck.
func LoadRulesConfig(path string) (domain.DeckConfig, error) {
	if path == "" {
		return domain.DefaultDeckConfig(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return domain.DefaultDeckConfig(), nil
		}
		return domain.DeckConfig{}, fmt.Errorf("failed to read rules config: %w", err)
	}

	var rc RulesConfig
	if err := json.Unmarshal(data, &rc); err != nil {
		return domain.DeckConfig{}, fmt.Errorf("failed to unmarshal rules config: %w", err)
	}
	return rc.DeckConfig()
}

// DeckConfig validates rc and builds the immutable domain configuration.
// Empty lists fall back to the standard deck's.
func (rc RulesConfig) DeckConfig() (domain.DeckConfig, error) {
	def := domain.DefaultDeckConfig()
	suits, ranks, specials := rc.Suits, rc.Ranks, rc.SpecialRanks
	if len(suits) == 0 {
		suits = def.Suits()
	}
	if len(ranks) == 0 {
		ranks = def.Ranks()
	}
	if specials == nil {
		specials = []string{"3", "7", "10"}
	}

	if err := unique("suit", suits); err != nil {
		return domain.DeckConfig{}, err
	}
	if err := unique("rank", ranks); err != nil {
		return domain.DeckConfig{}, err
	}
	known := make(map[string]bool, len(ranks))
	for _, r := range ranks {
		known[r] = true
	}
	for _, r := range specials {
		if !known[r] {
			return domain.DeckConfig{}, fmt.Errorf("special rank %q is not a configured rank", r)
		}
	}
	return domain.NewDeckConfig(suits, ranks, specials), nil
}

func unique(kind string, values []string) error {
	seen := make(map[string]bool, len(values))
	for _, v := range values {
		if v == "" {
			return fmt.Errorf("empty %s in rules config", kind)
		}
		if seen[v] {
			return fmt.Errorf("duplicate %s %q in rules config", kind, v)
		}
		seen[v] = true
	}
	return nil
}
