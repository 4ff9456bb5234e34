package domain

import (
	"errors"
	"reflect"
	"testing"
)

func TestCheckInvariants(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(g *GameState)
	}{
		{"duplicate card", func(g *GameState) { g.Players[0].Hand = append(g.Players[0].Hand, g.Stack[0]) }},
		{"missing card", func(g *GameState) { g.Stack = g.Stack[1:] }},
		{"foreign card", func(g *GameState) { g.Stack[0] = Card{ID: "bogus"} }},
		{"order gap", func(g *GameState) { g.Players[1].Order = 5 }},
		{"duplicate order", func(g *GameState) { g.Players[1].Order = 0 }},
		{"no active player", func(g *GameState) {
			for _, p := range g.Players {
				p.IsActive = false
			}
		}},
		{"two active players", func(g *GameState) {
			for _, p := range g.Players {
				p.IsActive = true
			}
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := dealtGame(t, 3, 21)
			readyAll(t, g)
			if err := g.CheckInvariants(testCfg); err != nil {
				t.Fatalf("fresh game violates invariants: %v", err)
			}
			tt.mutate(g)
			if err := g.CheckInvariants(testCfg); !errors.Is(err, ErrInvariant) {
				t.Fatalf("expected ErrInvariant, got %v", err)
			}
		})
	}
}

func TestInvariantsHoldThroughLobby(t *testing.T) {
	g := NewGameState(2, NewDeck(testCfg, testSalt), testSalt)
	if err := g.CheckInvariants(testCfg); err != nil {
		t.Fatalf("empty lobby: %v", err)
	}
	_ = g.AddPlayer("a")
	_ = g.AddPlayer("b")
	if err := g.CheckInvariants(testCfg); err != nil {
		t.Fatalf("full lobby: %v", err)
	}
}

func TestSnapshotRoundTrip(t *testing.T) {
	g := dealtGame(t, 3, 31)
	readyAll(t, g)
	active, _ := g.ActivePlayer()
	if _, err := g.PickupTable(active.ID); err != nil {
		t.Fatalf("pickup: %v", err)
	}

	raw, err := EncodeState(g)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	back, err := DecodeState(raw)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !reflect.DeepEqual(g, back) {
		t.Fatalf("round trip changed state")
	}
	if err := back.CheckInvariants(testCfg); err != nil {
		t.Fatalf("restored state: %v", err)
	}

	next, _ := back.ActivePlayer()
	if next.ID == active.ID {
		t.Fatalf("turn did not survive the round trip")
	}
}

func TestDecodeStateRejectsGarbage(t *testing.T) {
	if _, err := DecodeState([]byte("{")); err == nil {
		t.Fatalf("expected error for truncated json")
	}
	if _, err := DecodeState([]byte("{}")); err == nil {
		t.Fatalf("expected error for empty object")
	}
}
