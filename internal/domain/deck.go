package domain

import (
	"math/rand"
	"sort"
)

// NewDeck returns one card per (suit, rank) pair in configuration order.
func NewDeck(cfg DeckConfig, salt string) []Card {
	deck := make([]Card, 0, cfg.Size())
	for _, s := range cfg.suits {
		for _, r := range cfg.ranks {
			deck = append(deck, cfg.NewCard(salt, s, r))
		}
	}
	return deck
}

// BuildShuffledDeck returns a full deck in uniformly random order.
func BuildShuffledDeck(cfg DeckConfig, salt string, rng *rand.Rand) []Card {
	deck := NewDeck(cfg, salt)
	rng.Shuffle(len(deck), func(i, j int) { deck[i], deck[j] = deck[j], deck[i] })
	return deck
}

// SortCards orders cards by ascending value, then suit.
func SortCards(cards []Card) {
	sort.SliceStable(cards, func(i, j int) bool {
		if cards[i].Value != cards[j].Value {
			return cards[i].Value < cards[j].Value
		}
		return cards[i].Suit < cards[j].Suit
	})
}

func cloneCards(cards []Card) []Card {
	if cards == nil {
		return nil
	}
	out := make([]Card, len(cards))
	copy(out, cards)
	return out
}

func indexOfCard(cards []Card, id string) int {
	for i, c := range cards {
		if c.ID == id {
			return i
		}
	}
	return -1
}

// pop removes and returns the last card.
func pop(cards *[]Card) Card {
	s := *cards
	c := s[len(s)-1]
	*cards = s[:len(s)-1]
	return c
}
