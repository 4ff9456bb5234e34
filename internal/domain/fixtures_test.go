package domain

import (
	"fmt"
	"math/rand"
	"testing"
)

var testCfg = DefaultDeckConfig()

func card(rank, suit string) Card {
	return testCfg.NewCard(testSalt, suit, rank)
}

func cards(specs ...string) []Card {
	out := make([]Card, 0, len(specs))
	for _, s := range specs {
		out = append(out, card(s[:len(s)-1], s[len(s)-1:]))
	}
	return out
}

// playingState builds a PLAYING game from hand-made players. The first
// player is made active.
func playingState(players ...*Player) *GameState {
	for i, p := range players {
		p.Order = i
		if p.Hand == nil {
			p.Hand = []Card{}
		}
		if p.Table == nil {
			p.Table = []Card{}
		}
		if p.Hidden == nil {
			p.Hidden = []Card{}
		}
		p.IsReady = true
	}
	players[0].IsActive = true
	return &GameState{
		Phase:        PhasePlaying,
		TotalPlayers: len(players),
		Players:      players,
		Table:        []Card{},
		Stack:        []Card{},
		Dead:         []Card{},
		DeckSalt:     testSalt,
	}
}

// dealtGame runs a real lobby through deal with a seeded shuffle.
func dealtGame(t *testing.T, n int, seed int64) *GameState {
	t.Helper()
	g := NewGameState(n, BuildShuffledDeck(testCfg, testSalt, rand.New(rand.NewSource(seed))), testSalt)
	for i := 0; i < n; i++ {
		if err := g.AddPlayer(fmt.Sprintf("p%d", i)); err != nil {
			t.Fatalf("AddPlayer: %v", err)
		}
	}
	if err := g.Deal("p0"); err != nil {
		t.Fatalf("Deal: %v", err)
	}
	return g
}

func readyAll(t *testing.T, g *GameState) {
	t.Helper()
	for _, p := range g.Players {
		if err := g.PlayerReady(p.ID); err != nil {
			t.Fatalf("PlayerReady(%s): %v", p.ID, err)
		}
	}
}
