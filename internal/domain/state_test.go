package domain

import (
	"errors"
	"testing"
)

func TestPlayable(t *testing.T) {
	tests := []struct {
		name    string
		value   int
		special bool
		current int
		want    bool
	}{
		{"empty pile", 4, false, ValueAny, true},
		{"higher", 9, false, 6, true},
		{"equal", 6, false, 6, true},
		{"lower", 5, false, 6, false},
		{"special ignores order", 3, true, 14, true},
		{"under seven", 4, false, ValueLower, true},
		{"over seven", 8, false, ValueLower, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Playable(tt.value, tt.special, tt.current); got != tt.want {
				t.Fatalf("Playable(%d, %v, %d) = %v, want %v", tt.value, tt.special, tt.current, got, tt.want)
			}
		})
	}
}

func TestPlayerCanPlay(t *testing.T) {
	tests := []struct {
		name    string
		player  *Player
		current int
		want    bool
	}{
		{"beatable hand", &Player{ID: "p0", Hand: cards("9H")}, 8, true},
		{"unbeatable hand", &Player{ID: "p0", Hand: cards("4H", "5D")}, 8, false},
		{"special in hand", &Player{ID: "p0", Hand: cards("4H", "3D")}, 13, true},
		{"table used when hand empty", &Player{ID: "p0", Table: cards("KH")}, 12, true},
		{"hand shadows table", &Player{ID: "p0", Hand: cards("4H"), Table: cards("KH")}, 12, false},
		{"only hidden can always try", &Player{ID: "p0", Hidden: cards("4C")}, 14, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := playingState(tt.player, &Player{ID: "p1", Hand: cards("2C")})
			g.CurrentValue = tt.current
			got, err := g.PlayerCanPlay("p0")
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Fatalf("PlayerCanPlay() = %v, want %v", got, tt.want)
			}
		})
	}

	g := playingState(&Player{ID: "p0"}, &Player{ID: "p1"})
	if _, err := g.PlayerCanPlay("ghost"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestNextPlayerWraps(t *testing.T) {
	p0 := &Player{ID: "p0", IsOut: true}
	p1 := &Player{ID: "p1", Hand: cards("4C")}
	p2 := &Player{ID: "p2", Hand: cards("5C")}
	g := playingState(p0, p1, p2)
	p0.IsActive = false
	p2.IsActive = true

	next, err := g.NextPlayer()
	if err != nil {
		t.Fatalf("NextPlayer: %v", err)
	}
	if next.ID != "p1" {
		t.Fatalf("next = %s, want p1", next.ID)
	}
}

func TestNextPlayerNoCandidate(t *testing.T) {
	p0 := &Player{ID: "p0", Hand: cards("4C")}
	p1 := &Player{ID: "p1", IsOut: true}
	g := playingState(p0, p1)

	if _, err := g.NextPlayer(); !errors.Is(err, ErrInvariant) {
		t.Fatalf("expected ErrInvariant, got %v", err)
	}

	p0.IsActive = false
	if _, err := g.NextPlayer(); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound without an active player, got %v", err)
	}
}

func TestStateCounts(t *testing.T) {
	g := dealtGame(t, 4, 5)
	if g.NPlayers() != 4 {
		t.Fatalf("NPlayers = %d, want 4", g.NPlayers())
	}
	if g.PlayersReady() != 0 {
		t.Fatalf("PlayersReady = %d, want 0", g.PlayersReady())
	}
	_ = g.PlayerReady("p2")
	if g.PlayersReady() != 1 {
		t.Fatalf("PlayersReady = %d, want 1", g.PlayersReady())
	}
	g.Players[3].IsOut = true
	if g.PlayersRemaining() != 3 {
		t.Fatalf("PlayersRemaining = %d, want 3", g.PlayersRemaining())
	}
	if _, err := g.Player("p9"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestBurnTableAndTopRun(t *testing.T) {
	g := playingState(&Player{ID: "p0"}, &Player{ID: "p1"})
	if g.TopRun() != 0 {
		t.Fatalf("TopRun on empty pile = %d", g.TopRun())
	}
	g.Table = cards("9C", "4D", "4H")
	g.CurrentValue = 4
	if g.TopRun() != 2 {
		t.Fatalf("TopRun = %d, want 2", g.TopRun())
	}

	g.BurnTable()
	if len(g.Table) != 0 || len(g.Dead) != 3 || g.CurrentValue != ValueAny {
		t.Fatalf("after burn: table=%d dead=%d value=%d", len(g.Table), len(g.Dead), g.CurrentValue)
	}
}

func TestCloneIsDeep(t *testing.T) {
	g := dealtGame(t, 2, 9)
	cp := g.Clone()
	cp.Players[0].Hand[0] = Card{ID: "mutated"}
	cp.Players[1].IsReady = true
	cp.Stack = cp.Stack[:1]

	if g.Players[0].Hand[0].ID == "mutated" || g.Players[1].IsReady || len(g.Stack) == 1 {
		t.Fatalf("clone shares memory with original")
	}
}

func TestGameErrorMessage(t *testing.T) {
	err := phaseError("play", PhasePlaying, PhasePrep)
	want := "play: invalid state (expected phase PLAYING, got PREP)"
	if err.Error() != want {
		t.Fatalf("Error() = %q, want %q", err.Error(), want)
	}

	var gerr *GameError
	err = cardNotFound("play", "p0", "abc", "hand")
	if !errors.As(err, &gerr) || gerr.CardID != "abc" || !errors.Is(err, ErrNotFound) {
		t.Fatalf("unexpected error shape: %v", err)
	}
}
