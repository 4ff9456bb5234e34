package bot

import (
	"strings"

	"shithead/internal/domain"
)

var testDeck = domain.DefaultDeckConfig()

// cards builds cards from "rank+suit" codes such as "10H" or "QS".
func cards(codes ...string) []domain.Card {
	out := make([]domain.Card, 0, len(codes))
	for _, code := range codes {
		suit := code[len(code)-1:]
		rank := strings.TrimSuffix(code, suit)
		out = append(out, testDeck.NewCard("bot-test", suit, rank))
	}
	return out
}

// playing returns a PLAYING state where bot is active against one opponent.
func playing(hand []domain.Card, table []domain.Card, current int) (*domain.GameState, *domain.Player) {
	bot := &domain.Player{ID: "bot", Order: 0, Hand: hand, Table: []domain.Card{}, Hidden: []domain.Card{}, IsActive: true, IsReady: true, CanPlay: true}
	other := &domain.Player{ID: "other", Order: 1, Hand: cards("5C"), Table: []domain.Card{}, Hidden: []domain.Card{}, IsReady: true}
	g := &domain.GameState{
		Phase:        domain.PhasePlaying,
		TotalPlayers: 2,
		Players:      []*domain.Player{bot, other},
		Table:        table,
		Stack:        cards("AS"),
		Dead:         []domain.Card{},
		CurrentValue: current,
	}
	return g, bot
}
