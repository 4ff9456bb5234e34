package domain

import (
	"crypto/md5"
	"encoding/hex"
	"strconv"
)

// Card is a single playing card. Value and IsSpecial are derived from the
// rank through a DeckConfig and persisted alongside it.
type Card struct {
	ID        string `json:"id"`
	Suit      string `json:"suit"`
	Rank      string `json:"rank"`
	Value     int    `json:"value"`
	IsSpecial bool   `json:"is_special"`
	PlayedBy  string `json:"played_by,omitempty"`
}

// DeckConfig is the fixed enumeration a deck is built from.
// Ranks are ordered lowest first; the first rank has value 2.
type DeckConfig struct {
	suits    []string
	ranks    []string
	specials map[string]bool
}

var (
	defaultSuits    = []string{"C", "D", "H", "S"}
	defaultRanks    = []string{"2", "3", "4", "5", "6", "7", "8", "9", "10", "J", "Q", "K", "A"}
	defaultSpecials = []string{"3", "7", "10"}
)

// Rank values with rule-breaking semantics under the default configuration.
const (
	ValueAny       = 0
	ValueReset     = 2
	ValueInvisible = 3
	ValueLower     = 7
	ValueBurn      = 10
)

// DefaultDeckConfig returns the standard 52-card configuration with 3, 7 and 10 as special ranks.
func DefaultDeckConfig() DeckConfig {
	return NewDeckConfig(defaultSuits, defaultRanks, defaultSpecials)
}

// NewDeckConfig copies its inputs so the returned config cannot be mutated by the caller.
func NewDeckConfig(suits, ranks, specials []string) DeckConfig {
	cfg := DeckConfig{
		suits:    append([]string(nil), suits...),
		ranks:    append([]string(nil), ranks...),
		specials: make(map[string]bool, len(specials)),
	}
	for _, r := range specials {
		cfg.specials[r] = true
	}
	return cfg
}

// Suits returns a copy of the configured suits.
func (c DeckConfig) Suits() []string { return append([]string(nil), c.suits...) }

// Ranks returns a copy of the configured ranks, lowest first.
func (c DeckConfig) Ranks() []string { return append([]string(nil), c.ranks...) }

// Size is the number of distinct cards in a full deck.
func (c DeckConfig) Size() int { return len(c.suits) * len(c.ranks) }

// RankValue returns the rank's position in the ordering offset by 2, or 0 for an unknown rank.
func (c DeckConfig) RankValue(rank string) int {
	for i, r := range c.ranks {
		if r == rank {
			return i + 2
		}
	}
	return 0
}

// IsSpecialRank reports whether rank bypasses the ordering check.
func (c DeckConfig) IsSpecialRank(rank string) bool {
	return c.specials[rank]
}

// NewCard builds a card with its derived attributes. The salt keeps ids
// opaque to anyone who has not seen the card face up in this game.
func (c DeckConfig) NewCard(salt, suit, rank string) Card {
	value := c.RankValue(rank)
	return Card{
		ID:        CardID(salt, suit, value),
		Suit:      suit,
		Rank:      rank,
		Value:     value,
		IsSpecial: c.IsSpecialRank(rank),
	}
}

// CardID derives a stable id from the card's content.
func CardID(salt, suit string, value int) string {
	sum := md5.Sum([]byte(salt + suit + strconv.Itoa(value)))
	return hex.EncodeToString(sum[:])
}
